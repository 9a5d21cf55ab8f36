// Package layout splits matched candidates into pages that fit the menu line
// and builds the view the renderer draws. All widths are in terminal cells.
package layout

import "github.com/kk-code-lab/rmenu/internal/search"

// Measurer reports the cell width a text occupies once drawn, padding
// included.
type Measurer interface {
	TextWidth(text string) int
}

// Params are the geometry and rendering switches for one pagination pass.
type Params struct {
	// Lines > 0 selects vertical mode with that many items per page.
	Lines int
	// Width is the available line width.
	Width int
	// Prompt, More and Back are the measured widths of the prompt label and
	// of the trailing and leading page indicators.
	Prompt int
	More   int
	Back   int

	Policy     WidthPolicy
	Flex       bool
	Overrun    bool
	RightAlign bool
}

// Vertical reports whether candidates are listed one per row.
func (p Params) Vertical() bool {
	return p.Lines > 0
}

// backReserve is the leading glyph width pages beyond the first set aside.
func (p Params) backReserve() int {
	if p.Policy.reservesBack() {
		return p.Back
	}
	return 0
}

// Page is a half-open range [Start, End) over the matched list. Slack is the
// width left unused on the line when the page is shown.
type Page struct {
	Start int
	End   int
	Slack int
}

// Len returns the number of candidates on the page.
func (p Page) Len() int {
	return p.End - p.Start
}

// Items returns the page's slice of matched.
func (p Page) Items(matched []search.Candidate) []search.Candidate {
	return matched[p.Start:p.End]
}

// InputWidth applies the width policy. queryWidth is the measured width of
// the formatted query and selected is the global selection index.
func InputWidth(p Params, matched, source []search.Candidate, selected, queryWidth int) int {
	third := p.Width / 3
	var w int
	switch p.Policy.Kind {
	case WidthMin:
		w = min(widest(matched), third, queryWidth)
	case WidthItems:
		w = min(widest(source), third)
	case WidthMax:
		w = p.Width - p.Prompt
		if len(matched) > 0 {
			sel := max(0, min(selected, len(matched)-1))
			w -= matched[sel].Width
			if sel < len(matched)-1 {
				w -= p.More
			}
			if sel > 0 {
				w -= p.Back
			}
		}
	case WidthCustom:
		w = p.Width * p.Policy.Percent / 100
	}
	return max(w, 0)
}

// FlexInputWidth grows the input toward desired by borrowing the page's
// slack.
func FlexInputWidth(inputWidth, desired, slack int) int {
	if desired <= inputWidth {
		return inputWidth
	}
	delta := desired - inputWidth - slack
	if delta < 0 {
		return desired
	}
	return desired - delta
}

// Paginate splits matched into pages. In vertical mode pages are chunks of
// Lines items. Otherwise candidates are packed left to right after the
// prompt and an input box of inputWidth cells.
func Paginate(matched []search.Candidate, p Params, inputWidth int) []Page {
	if len(matched) == 0 {
		return nil
	}
	if p.Vertical() {
		return chunk(len(matched), p.Lines)
	}
	return flow(matched, p, inputWidth)
}

func chunk(n, size int) []Page {
	pages := make([]Page, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		pages = append(pages, Page{Start: start, End: min(start+size, n)})
	}
	return pages
}

func flow(matched []search.Candidate, p Params, inputWidth int) []Page {
	back := p.backReserve()
	seed := p.Prompt + inputWidth
	x := seed
	if p.Policy.Kind == WidthItems {
		x += back
	}

	var pages []Page
	start := 0
	for i, c := range matched {
		last := i == len(matched)-1
		before := x
		x += c.Width

		limit := p.Width
		if !last {
			limit -= p.More
		}
		if x <= limit && p.Policy.Kind != WidthMax {
			continue
		}
		// Everything fits on one page once the trailing glyph is not needed.
		if len(pages) == 0 && last && x < p.Width+p.More {
			continue
		}
		if i == start {
			continue
		}
		pages = append(pages, Page{Start: start, End: i, Slack: limit - before})
		start = i
		x = seed + back + c.Width
	}

	slack := p.Width - x
	if len(pages) > 0 {
		slack -= back
	}
	return append(pages, Page{Start: start, End: len(matched), Slack: slack})
}

func widest(cands []search.Candidate) int {
	w := 0
	for _, c := range cands {
		w = max(w, c.Width)
	}
	return w
}
