package textutil

import "github.com/rivo/uniseg"

// Graphemes splits text into user-perceived characters.
func Graphemes(text string) []string {
	if text == "" {
		return nil
	}
	clusters := make([]string, 0, len(text))
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// GraphemeCount returns the number of grapheme clusters in text.
func GraphemeCount(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// GraphemeOffset converts a cluster index into a byte offset. Indexes past
// the end clamp to len(text).
func GraphemeOffset(text string, index int) int {
	if index <= 0 {
		return 0
	}
	offset := 0
	state := -1
	rest := text
	for i := 0; i < index && len(rest) > 0; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
	return offset
}

// TakeGraphemes returns the first n clusters of text.
func TakeGraphemes(text string, n int) string {
	return text[:GraphemeOffset(text, n)]
}
