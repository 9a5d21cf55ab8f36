package state

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/rmenu/internal/layout"
	"github.com/kk-code-lab/rmenu/internal/nav"
	"github.com/kk-code-lab/rmenu/internal/search"
	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

// ErrMatch marks a matcher failure. The previous matches stay on screen and
// editing continues.
var ErrMatch = errors.New("match failed")

// StateReducer applies actions to a MenuState.
type StateReducer struct{}

func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies one action and relays out the menu. Errors wrapping
// ErrMatch are per-frame; any other error ends the session.
func (r *StateReducer) Reduce(state *MenuState, action Action) (*MenuState, error) {
	var err error

	switch a := action.(type) {

	// ===== EDIT =====

	case InsertTextAction:
		err = r.edit(state, state.Buffer.Insert(a.Text))
	case PasteAction:
		err = r.edit(state, state.Buffer.Paste(a.Text))
	case DeleteLeftAction:
		err = r.edit(state, state.Buffer.DeleteLeft())
	case DeleteRightAction:
		err = r.edit(state, state.Buffer.DeleteRight())
	case DeleteWordLeftAction:
		err = r.edit(state, state.Buffer.DeleteWordLeft())
	case DeleteWordRightAction:
		err = r.edit(state, state.Buffer.DeleteWordRight())
	case ClearLeftAction:
		err = r.edit(state, state.Buffer.ClearLeft())
	case ClearRightAction:
		err = r.edit(state, state.Buffer.ClearRight())

	// ===== CURSOR =====

	case MoveLeftAction:
		if state.Flow() && state.Buffer.AtEnd() && state.Selected > 0 {
			state.Selected = nav.Prev(state.Pages, state.Selected)
		} else {
			state.Buffer.Move(-1)
		}
	case MoveRightAction:
		if !state.Buffer.AtEnd() {
			state.Buffer.Move(1)
		} else if state.Flow() {
			state.Selected = nav.Next(state.Pages, state.Selected)
		}
	case WordLeftAction:
		state.Buffer.WordLeft()
	case WordRightAction:
		state.Buffer.WordRight()

	// ===== NAVIGATION =====

	case SelectPrevAction:
		state.Selected = nav.Prev(state.Pages, state.Selected)
	case SelectNextAction:
		state.Selected = nav.Next(state.Pages, state.Selected)
	case PageUpAction:
		state.Selected = nav.PageUp(state.Pages, state.Selected)
	case PageDownAction:
		state.Selected = nav.PageDown(state.Pages, state.Selected)
	case HomeAction:
		if state.Total() == 0 {
			return state, nil
		}
		if next := nav.First(state.Pages, state.Selected); next != state.Selected {
			state.Selected = next
		} else {
			state.Buffer.Home()
		}
	case EndAction:
		if state.Total() == 0 {
			return state, nil
		}
		if next := nav.Last(state.Pages, state.Selected); next != state.Selected {
			state.Selected = next
		} else {
			state.Buffer.End()
		}
	case SelectItemAction:
		if index, ok := nav.Global(state.Pages, a.Page, a.Local); ok {
			state.Selected = index
		}
	case CompleteAction:
		cand, ok := state.SelectedCandidate()
		if !ok {
			return state, nil
		}
		state.Buffer.SetText(cand.Text)
		err = r.rematch(state)

	// ===== SESSION =====

	case CommitAction:
		if err := r.commit(state, a); err != nil {
			return state, err
		}
	case CancelAction:
		state.Disposition = Cancel
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		state.Geometry = Geometry{Width: a.Width, Height: a.Height}
	case RematchAction:
		err = r.rematch(state)

	default:
		return state, fmt.Errorf("unknown action %T", action)
	}

	if err != nil && !errors.Is(err, ErrMatch) {
		return state, err
	}
	r.relayout(state)
	return state, err
}

// edit rematches after a buffer mutation that changed the text.
func (r *StateReducer) edit(state *MenuState, changed bool) error {
	if !changed {
		return nil
	}
	return r.rematch(state)
}

// rematch runs the matcher and postprocessor on the current query. On a
// matcher error the previous matches and selection are kept.
func (r *StateReducer) rematch(state *MenuState) error {
	query := state.Query()
	matched, err := state.Hooks.Matcher.Match(state.Source, query)
	if err != nil {
		state.LastError = err
		return fmt.Errorf("%w: %w", ErrMatch, err)
	}
	state.LastError = nil

	post := state.Hooks.Post.PostprocessMatches(query, matched)
	state.Matched = post.Matches
	state.Selected = 0
	r.paginate(state)
	if post.Dispose {
		return r.dispose(state, post.Text, true)
	}
	return nil
}

func (r *StateReducer) commit(state *MenuState, a CommitAction) error {
	cand, ok := state.SelectedCandidate()
	text := state.Query()
	if !a.Raw && ok {
		text = cand.Text
	}
	if err := r.dispose(state, text, !a.KeepOpen); err != nil {
		return err
	}
	if a.KeepOpen && !a.Raw && ok && state.Disposition == Continue {
		state.Source = search.MarkOut(state.Source, cand.Index)
		state.Matched = search.MarkOut(state.Matched, cand.Index)
	}
	return nil
}

func (r *StateReducer) dispose(state *MenuState, text string, recommendExit bool) error {
	exit, err := state.Hooks.Disposer.Dispose(text, recommendExit)
	if err != nil {
		return fmt.Errorf("dispose: %w", err)
	}
	if exit {
		state.Disposition = Exit
	}
	return nil
}

// params measures the fixed parts of the menu line for the current geometry.
func (r *StateReducer) params(state *MenuState) layout.Params {
	s := state.Settings
	p := layout.Params{
		Lines:      s.Lines,
		Width:      state.Geometry.Width,
		More:       state.Measurer.TextWidth(MoreGlyph),
		Back:       state.Measurer.TextWidth(BackGlyph),
		Policy:     s.Policy,
		Flex:       s.Flex || s.Overrun,
		Overrun:    s.Overrun,
		RightAlign: s.RightAlign,
	}
	if state.Prompt != "" {
		p.Prompt = state.Measurer.TextWidth(state.Prompt)
	}
	// The prompt row takes one line of the screen.
	if p.Lines > 0 && state.Geometry.Height > 1 {
		p.Lines = min(p.Lines, state.Geometry.Height-1)
	}
	return p
}

func (r *StateReducer) formattedInput(state *MenuState) string {
	return state.Hooks.Formatter.FormatInput(state.Query())
}

// paginate recomputes pages for the current matches and selection.
func (r *StateReducer) paginate(state *MenuState) {
	p := r.params(state)
	queryWidth := state.Measurer.TextWidth(r.formattedInput(state))
	state.InputWidth = layout.InputWidth(p, state.Matched, state.Source, state.Selected, queryWidth)
	state.Pages = layout.Paginate(state.Matched, p, state.InputWidth)
	state.Selected = nav.Clamp(state.Pages, state.Selected)
}

// relayout repaginates and rebuilds the view. Pagination depends on the
// selection under the max width policy, so it runs after every action.
func (r *StateReducer) relayout(state *MenuState) {
	r.paginate(state)

	p := r.params(state)
	input := r.formattedInput(state)
	frame := layout.Frame{
		Prompt:     state.Prompt,
		Input:      input,
		InputWidth: state.Measurer.TextWidth(input),
		Cursor:     textutil.DisplayWidth(state.Hooks.Formatter.FormatInput(state.Buffer.BeforeCursor())),
	}
	if state.LastError != nil {
		frame.Error = state.LastError.Error()
	}
	page, local, _ := nav.Resolve(state.Pages, state.Selected)
	state.View = layout.NewView(state.Matched, state.Pages, page, local, state.InputWidth, p, frame)
}
