package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// PasteTabWidth is the number of spaces a pasted tab turns into.
const PasteTabWidth = 4

// DisplayWidth reports the number of terminal cells text occupies. Width is
// computed per grapheme cluster so emoji sequences count once.
func DisplayWidth(text string) int {
	width := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += clusterWidth(cluster, w)
	}
	return width
}

func clusterWidth(cluster string, segmented int) int {
	if utf8.RuneCountInString(cluster) == 1 {
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			return 1
		}
		return w
	}
	if segmented <= 0 {
		return 1
	}
	return segmented
}

// TruncateToWidth cuts text so it fits in maxWidth cells, ending it with an
// ellipsis when anything was dropped. Clusters are never split.
func TruncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}

	const ellipsis = "…"
	if maxWidth == 1 {
		return ellipsis
	}

	available := maxWidth - 1
	var b strings.Builder
	used := 0
	for _, cluster := range Graphemes(text) {
		w := DisplayWidth(cluster)
		if used+w > available {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}
