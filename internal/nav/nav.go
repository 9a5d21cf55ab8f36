// Package nav moves the global selection index over a paginated match list.
// Every function is pure: it takes the pages and the current index and
// returns the next index.
package nav

import "github.com/kk-code-lab/rmenu/internal/layout"

// Total returns the number of candidates the pages cover.
func Total(pages []layout.Page) int {
	if len(pages) == 0 {
		return 0
	}
	return pages[len(pages)-1].End
}

// Resolve maps a global index to its page and the offset inside that page.
func Resolve(pages []layout.Page, index int) (page, local int, ok bool) {
	if index < 0 {
		return 0, 0, false
	}
	rest := index
	for i, p := range pages {
		if rest < p.Len() {
			return i, rest, true
		}
		rest -= p.Len()
	}
	return 0, 0, false
}

// Global is the inverse of Resolve.
func Global(pages []layout.Page, page, local int) (int, bool) {
	if page < 0 || page >= len(pages) || local < 0 || local >= pages[page].Len() {
		return 0, false
	}
	index := local
	for _, p := range pages[:page] {
		index += p.Len()
	}
	return index, true
}

// Next moves one candidate forward without wrapping.
func Next(pages []layout.Page, index int) int {
	if index+1 >= Total(pages) {
		return index
	}
	return index + 1
}

// Prev moves one candidate back without wrapping.
func Prev(pages []layout.Page, index int) int {
	if index <= 0 {
		return index
	}
	return index - 1
}

// PageDown jumps to the first candidate of the following page.
func PageDown(pages []layout.Page, index int) int {
	page, _, ok := Resolve(pages, index)
	if !ok || page+1 >= len(pages) {
		return index
	}
	return pages[page+1].Start
}

// PageUp jumps to the first candidate of the preceding page.
func PageUp(pages []layout.Page, index int) int {
	page, _, ok := Resolve(pages, index)
	if !ok || page == 0 {
		return index
	}
	return pages[page-1].Start
}

// First selects the first candidate; no-op without candidates.
func First(pages []layout.Page, index int) int {
	if Total(pages) == 0 {
		return index
	}
	return 0
}

// Last selects the last candidate; no-op without candidates.
func Last(pages []layout.Page, index int) int {
	total := Total(pages)
	if total == 0 {
		return index
	}
	return total - 1
}

// Clamp keeps index inside [0, total) and returns 0 for an empty list.
func Clamp(pages []layout.Page, index int) int {
	total := Total(pages)
	switch {
	case total == 0 || index < 0:
		return 0
	case index >= total:
		return total - 1
	default:
		return index
	}
}
