// Package fuzzy ranks candidates by subsequence match quality.
package fuzzy

import (
	"sort"

	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/kk-code-lab/rmenu/internal/search"
)

// Matcher orders matches by score, then by shorter text, then by input
// order. Candidates that do not contain the query as a subsequence are
// dropped.
type Matcher struct{}

// New returns the fuzzy matcher.
func New() Matcher {
	return Matcher{}
}

// source adapts candidates to sahilm/fuzzy.
type source []search.Candidate

func (s source) String(i int) string { return s[i].Text }
func (s source) Len() int            { return len(s) }

func (Matcher) Match(cands []search.Candidate, query string) ([]search.Candidate, error) {
	if query == "" {
		out := make([]search.Candidate, len(cands))
		copy(out, cands)
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Text) < len(out[j].Text)
		})
		return out, nil
	}

	matches := sfuzzy.FindFrom(query, source(cands))
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Str) != len(b.Str) {
			return len(a.Str) < len(b.Str)
		}
		return a.Index < b.Index
	})

	out := make([]search.Candidate, len(matches))
	for i, m := range matches {
		out[i] = cands[m.Index]
	}
	return out, nil
}
