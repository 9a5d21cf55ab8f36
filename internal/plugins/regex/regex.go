// Package regex treats the query as a regular expression.
package regex

import (
	"fmt"

	"github.com/kk-code-lab/rmenu/internal/search"
)

// Matcher classifies candidates by where the pattern first matches, ranking
// exact before prefix before substring matches.
type Matcher struct {
	CaseSensitive bool
}

func New(caseSensitive bool) Matcher {
	return Matcher{CaseSensitive: caseSensitive}
}

func (m Matcher) Match(cands []search.Candidate, query string) ([]search.Candidate, error) {
	matched, err := search.MatchPattern(cands, query, m.CaseSensitive)
	if err != nil {
		return nil, fmt.Errorf("regex: %w", err)
	}
	return matched, nil
}
