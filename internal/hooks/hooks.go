// Package hooks defines the strategy points the menu pipeline calls into and
// the default strategy for each. Exactly one implementation per hook is
// active; a Set holds them.
package hooks

import (
	"errors"
	"fmt"
	"io"

	"github.com/kk-code-lab/rmenu/internal/search"
)

// ErrHookConflict reports two plugins overriding the same hook.
var ErrHookConflict = errors.New("hook already overridden")

// Matcher filters and ranks candidates for a query.
type Matcher interface {
	Match(cands []search.Candidate, query string) ([]search.Candidate, error)
}

// InputFormatter turns the query into the text shown in the input box.
type InputFormatter interface {
	FormatInput(text string) string
}

// StdinProcessor rewrites the raw input lines before they become candidates.
type StdinProcessor interface {
	ProcessStdin(lines []string) ([]string, error)
}

// PromptSetter is implemented by stdin processors that derive the prompt
// from what they read.
type PromptSetter interface {
	Prompt(current string) string
}

// PostResult is what a match postprocessor hands back. With Dispose set the
// session emits Text and ends without drawing Matches.
type PostResult struct {
	Matches []search.Candidate
	Dispose bool
	Text    string
}

// MatchPostprocessor runs after every match pass.
type MatchPostprocessor interface {
	PostprocessMatches(query string, matched []search.Candidate) PostResult
}

// Disposer emits a committed value. recommendExit is false for keep-open
// commits; the returned bool tells the caller whether to end the session.
type Disposer interface {
	Dispose(text string, recommendExit bool) (bool, error)
}

// Identity leaves input, stdin lines and matches untouched.
type Identity struct{}

func (Identity) FormatInput(text string) string { return text }

func (Identity) ProcessStdin(lines []string) ([]string, error) { return lines, nil }

func (Identity) PostprocessMatches(_ string, matched []search.Candidate) PostResult {
	return PostResult{Matches: matched}
}

// LineDisposer writes each committed value on its own line.
type LineDisposer struct {
	W io.Writer
}

func (d LineDisposer) Dispose(text string, recommendExit bool) (bool, error) {
	if _, err := fmt.Fprintln(d.W, text); err != nil {
		return false, fmt.Errorf("write selection: %w", err)
	}
	return recommendExit, nil
}
