// Package maxlength ends the session once the query is long enough.
package maxlength

import (
	"fmt"

	"github.com/kk-code-lab/rmenu/internal/hooks"
	"github.com/kk-code-lab/rmenu/internal/search"
	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

// Postprocessor commits the first Limit graphemes of the query as soon as the
// query reaches that length. A zero limit disables it.
type Postprocessor struct {
	Limit int
}

func New(limit int) (Postprocessor, error) {
	if limit < 0 {
		return Postprocessor{}, fmt.Errorf("maxlength must be a positive integer, got %d", limit)
	}
	return Postprocessor{Limit: limit}, nil
}

func (p Postprocessor) PostprocessMatches(query string, matched []search.Candidate) hooks.PostResult {
	// >= rather than == so a paste that overshoots still commits.
	if p.Limit > 0 && textutil.GraphemeCount(query) >= p.Limit {
		return hooks.PostResult{Matches: matched, Dispose: true, Text: textutil.TakeGraphemes(query, p.Limit)}
	}
	return hooks.PostResult{Matches: matched}
}
