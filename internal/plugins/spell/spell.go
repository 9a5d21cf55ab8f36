// Package spell suggests corrections for the last word of the query, using
// the input lines as the dictionary.
package spell

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/kk-code-lab/rmenu/internal/search"
)

// DefaultMaxDistance is the largest edit distance offered as a suggestion.
const DefaultMaxDistance = 2

// Checker is both the stdin processor that builds the dictionary and the
// matcher that looks words up in it.
type Checker struct {
	maxDistance int
	width       func(string) int
	fold        cases.Caser
}

func New(maxDistance int, width func(string) int) *Checker {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Checker{maxDistance: maxDistance, width: width, fold: cases.Fold()}
}

// ProcessStdin case-folds the word list and drops blanks and duplicates.
func (c *Checker) ProcessStdin(lines []string) ([]string, error) {
	seen := make(map[string]struct{}, len(lines))
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		word := c.fold.String(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words, nil
}

type suggestion struct {
	cand     search.Candidate
	distance int
}

// Match returns the query itself when its last word is spelled correctly,
// otherwise the query with that word replaced by each suggestion, nearest
// first.
func (c *Checker) Match(dict []search.Candidate, query string) ([]search.Candidate, error) {
	head, word := splitLastWord(query)
	if word == "" {
		return nil, nil
	}
	key := c.fold.String(word)

	var found []suggestion
	for _, entry := range dict {
		if entry.Text == key {
			return []search.Candidate{c.candidate(query, entry.Index)}, nil
		}
		if d := levenshtein.ComputeDistance(key, entry.Text); d <= c.maxDistance {
			found = append(found, suggestion{cand: entry, distance: d})
		}
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})

	out := make([]search.Candidate, len(found))
	for i, s := range found {
		out[i] = c.candidate(head+s.cand.Text, s.cand.Index)
	}
	return out, nil
}

func (c *Checker) candidate(text string, index int) search.Candidate {
	cand := search.Candidate{Text: text, Index: index}
	if c.width != nil {
		cand.Width = c.width(text)
	}
	return cand
}

func splitLastWord(query string) (head, word string) {
	trimmed := strings.TrimRightFunc(query, unicode.IsSpace)
	i := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return "", trimmed
	}
	_, size := utf8.DecodeRuneInString(trimmed[i:])
	return trimmed[:i+size], trimmed[i+size:]
}
