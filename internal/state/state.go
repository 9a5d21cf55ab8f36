package state

import (
	"fmt"

	"github.com/kk-code-lab/rmenu/internal/editline"
	"github.com/kk-code-lab/rmenu/internal/hooks"
	"github.com/kk-code-lab/rmenu/internal/layout"
	"github.com/kk-code-lab/rmenu/internal/search"
)

// Page indicator glyphs.
const (
	BackGlyph = "<"
	MoreGlyph = ">"
)

// Disposition tells the event loop whether the session goes on.
type Disposition int

const (
	Continue Disposition = iota
	// Exit follows a commit; the process exits 0.
	Exit
	// Cancel follows Escape; the process exits 1 without output.
	Cancel
)

func (d Disposition) String() string {
	switch d {
	case Exit:
		return "exit"
	case Cancel:
		return "cancel"
	default:
		return "continue"
	}
}

// Geometry is the terminal size in cells.
type Geometry struct {
	Width  int
	Height int
}

// Settings are the layout switches fixed for the session.
type Settings struct {
	Lines      int
	Prompt     string
	Policy     layout.WidthPolicy
	Flex       bool
	Overrun    bool
	RightAlign bool
}

// ===== STATE DEFINITIONS =====

// MenuState is the single source of truth for one menu session.
type MenuState struct {
	// Query
	Buffer *editline.Buffer

	// Candidates
	Source  []search.Candidate // Processed stdin lines, in input order
	Matched []search.Candidate // Matcher output after postprocessing

	// Pagination & selection
	Pages      []layout.Page
	Selected   int // Global index into Matched
	InputWidth int // Policy width used for the last pagination
	View       layout.View

	// Environment
	Prompt   string
	Geometry Geometry
	Settings Settings
	Hooks    *hooks.Set
	Measurer layout.Measurer

	// Outcome
	LastError   error
	Disposition Disposition
}

// NewMenuState runs the stdin processor over lines and builds the candidate
// list. Matching starts with the first RematchAction.
func NewMenuState(lines []string, settings Settings, set *hooks.Set, m layout.Measurer) (*MenuState, error) {
	processed, err := set.Stdin.ProcessStdin(lines)
	if err != nil {
		return nil, fmt.Errorf("process stdin: %w", err)
	}
	prompt := settings.Prompt
	if ps, ok := set.Stdin.(hooks.PromptSetter); ok {
		prompt = ps.Prompt(prompt)
	}
	return &MenuState{
		Buffer:   editline.New(""),
		Source:   search.NewCandidates(processed, m.TextWidth),
		Prompt:   prompt,
		Settings: settings,
		Hooks:    set,
		Measurer: m,
	}, nil
}

// Query returns the raw buffer text.
func (s *MenuState) Query() string {
	return s.Buffer.Text()
}

// Total returns the number of matched candidates.
func (s *MenuState) Total() int {
	return len(s.Matched)
}

// SelectedCandidate returns the highlighted candidate, if any.
func (s *MenuState) SelectedCandidate() (search.Candidate, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Matched) {
		return search.Candidate{}, false
	}
	return s.Matched[s.Selected], true
}

// Flow reports whether candidates are packed on the prompt line.
func (s *MenuState) Flow() bool {
	return s.Settings.Lines <= 0
}
