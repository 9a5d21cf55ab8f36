package search

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// LiteralMatcher finds the query as a literal substring and ranks exact
// matches before prefixes before plain substrings.
type LiteralMatcher struct {
	CaseSensitive bool
}

// Match filters cands by query. An empty query matches every candidate at
// offset zero, so the whole list comes back in input order.
func (m LiteralMatcher) Match(cands []Candidate, query string) ([]Candidate, error) {
	return MatchPattern(cands, regexp.QuoteMeta(query), m.CaseSensitive)
}

// MatchPattern compiles pattern and partitions cands by where it first
// matches. Both pattern and candidate text are NFC-normalized first.
func MatchPattern(cands []Candidate, pattern string, caseSensitive bool) ([]Candidate, error) {
	re, err := compile(pattern, caseSensitive)
	if err != nil {
		return nil, err
	}
	return Partition(cands, func(c Candidate) MatchClass {
		text := norm.NFC.String(c.Text)
		return Classify(text, re.FindStringIndex(text))
	}), nil
}

func compile(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	pattern = norm.NFC.String(pattern)
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re, nil
}
