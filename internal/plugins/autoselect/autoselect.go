// Package autoselect commits the only remaining match without waiting for
// Enter.
package autoselect

import (
	"github.com/kk-code-lab/rmenu/internal/hooks"
	"github.com/kk-code-lab/rmenu/internal/search"
)

type Postprocessor struct{}

func New() Postprocessor {
	return Postprocessor{}
}

func (Postprocessor) PostprocessMatches(_ string, matched []search.Candidate) hooks.PostResult {
	if len(matched) == 1 {
		return hooks.PostResult{Matches: matched, Dispose: true, Text: matched[0].Text}
	}
	return hooks.PostResult{Matches: matched}
}
