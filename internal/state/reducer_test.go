package state

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kk-code-lab/rmenu/internal/hooks"
	"github.com/kk-code-lab/rmenu/internal/layout"
	"github.com/kk-code-lab/rmenu/internal/search"
	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

type cellMeasurer struct{}

func (cellMeasurer) TextWidth(text string) int {
	return textutil.DisplayWidth(text) + 2
}

func newTestState(t *testing.T, lines []string, settings Settings, overrides ...hooks.Overrides) (*MenuState, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	set := hooks.Defaults(true, out)
	for i, o := range overrides {
		if err := set.Apply(string(rune('a'+i)), o); err != nil {
			t.Fatalf("apply overrides: %v", err)
		}
	}
	state, err := NewMenuState(lines, settings, set, cellMeasurer{})
	if err != nil {
		t.Fatalf("NewMenuState: %v", err)
	}
	reduce(t, state, ResizeAction{Width: 80, Height: 24})
	reduce(t, state, RematchAction{})
	return state, out
}

func reduce(t *testing.T, state *MenuState, actions ...Action) {
	t.Helper()
	r := NewStateReducer()
	for _, action := range actions {
		if _, err := r.Reduce(state, action); err != nil {
			t.Fatalf("Reduce(%T): %v", action, err)
		}
	}
}

func typeText(t *testing.T, state *MenuState, text string) {
	t.Helper()
	for _, g := range textutil.Graphemes(text) {
		reduce(t, state, InsertTextAction{Text: g})
	}
}

func matchedTexts(state *MenuState) []string {
	return search.Texts(state.Matched)
}

var fruit = []string{"pineapple", "apple", "application", "app", "grape"}

func TestEmptyQueryListsEverything(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	if !reflect.DeepEqual(matchedTexts(state), fruit) {
		t.Fatalf("matched = %v", matchedTexts(state))
	}
	if len(state.View.Items) == 0 || !state.View.Items[0].Selected {
		t.Fatalf("view has no selected first item: %+v", state.View.Items)
	}
}

func TestTypingNarrowsAndResetsSelection(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	typeText(t, state, "app")
	want := []string{"app", "apple", "application", "pineapple"}
	if !reflect.DeepEqual(matchedTexts(state), want) {
		t.Fatalf("matched = %v, want %v", matchedTexts(state), want)
	}

	reduce(t, state, SelectNextAction{})
	if state.Selected != 1 {
		t.Fatalf("selected = %d", state.Selected)
	}
	typeText(t, state, "l")
	if state.Selected != 0 {
		t.Fatalf("edit kept selection %d", state.Selected)
	}
	if !reflect.DeepEqual(matchedTexts(state), []string{"apple", "application", "pineapple"}) {
		t.Fatalf("matched = %v", matchedTexts(state))
	}

	reduce(t, state, DeleteLeftAction{})
	if state.Query() != "app" || state.Total() != 4 {
		t.Fatalf("backspace: query %q total %d", state.Query(), state.Total())
	}
}

func TestNavigationOnlyActionsKeepMatches(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	before := matchedTexts(state)
	reduce(t, state, SelectNextAction{}, SelectNextAction{}, SelectPrevAction{})
	if state.Selected != 1 {
		t.Fatalf("selected = %d", state.Selected)
	}
	if !reflect.DeepEqual(matchedTexts(state), before) {
		t.Fatalf("navigation changed matches")
	}
}

func TestCompleteWithoutMatchesIsNoop(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	typeText(t, state, "zzz")
	reduce(t, state, CompleteAction{})
	if state.Query() != "zzz" || state.Buffer.Cursor() != 3 {
		t.Fatalf("complete changed buffer to %q@%d", state.Query(), state.Buffer.Cursor())
	}
}

func TestCompleteCopiesSelection(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	typeText(t, state, "app")
	reduce(t, state, SelectNextAction{}, CompleteAction{})
	if state.Query() != "apple" || !state.Buffer.AtEnd() {
		t.Fatalf("query = %q cursor %d", state.Query(), state.Buffer.Cursor())
	}
	if state.Selected != 0 || !reflect.DeepEqual(matchedTexts(state), []string{"apple", "pineapple"}) {
		t.Fatalf("after complete: selected %d matched %v", state.Selected, matchedTexts(state))
	}
}

func TestCommitSelected(t *testing.T) {
	state, out := newTestState(t, fruit, Settings{})
	typeText(t, state, "gr")
	reduce(t, state, CommitAction{})
	if state.Disposition != Exit {
		t.Fatalf("disposition = %v", state.Disposition)
	}
	if out.String() != "grape\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestCommitRawAndUnmatched(t *testing.T) {
	state, out := newTestState(t, fruit, Settings{})
	typeText(t, state, "ap")
	reduce(t, state, CommitAction{Raw: true})
	if out.String() != "ap\n" {
		t.Fatalf("raw commit wrote %q", out.String())
	}

	state, out = newTestState(t, fruit, Settings{})
	typeText(t, state, "kiwi")
	reduce(t, state, CommitAction{})
	if out.String() != "kiwi\n" || state.Disposition != Exit {
		t.Fatalf("unmatched commit wrote %q (%v)", out.String(), state.Disposition)
	}
}

func TestCommitKeepOpenMarksOut(t *testing.T) {
	state, out := newTestState(t, fruit, Settings{})
	reduce(t, state, SelectNextAction{}, CommitAction{KeepOpen: true})
	if state.Disposition != Continue {
		t.Fatalf("keep-open commit ended the session")
	}
	if out.String() != "apple\n" {
		t.Fatalf("output = %q", out.String())
	}
	if !state.Matched[1].Out || !state.Source[1].Out || state.Matched[0].Out {
		t.Fatalf("out flags: matched %+v", state.Matched)
	}
	if !state.View.Items[1].Out {
		t.Fatalf("view lost the out flag")
	}

	// Out survives a rematch.
	typeText(t, state, "apple")
	if !state.Matched[0].Out {
		t.Fatalf("out flag lost after rematch: %+v", state.Matched)
	}
}

func TestCancel(t *testing.T) {
	state, out := newTestState(t, fruit, Settings{})
	reduce(t, state, CancelAction{})
	if state.Disposition != Cancel || out.Len() != 0 {
		t.Fatalf("cancel: %v %q", state.Disposition, out.String())
	}
}

type pickyMatcher struct{}

func (pickyMatcher) Match(cands []search.Candidate, query string) ([]search.Candidate, error) {
	if strings.Contains(query, "(") {
		return nil, errors.New("unbalanced")
	}
	return search.LiteralMatcher{CaseSensitive: true}.Match(cands, query)
}

func TestMatcherErrorKeepsPreviousFrame(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{}, hooks.Overrides{Matcher: pickyMatcher{}})
	typeText(t, state, "ap")
	reduce(t, state, SelectNextAction{})
	before := matchedTexts(state)

	_, err := NewStateReducer().Reduce(state, InsertTextAction{Text: "("})
	if !errors.Is(err, ErrMatch) {
		t.Fatalf("err = %v, want ErrMatch", err)
	}
	if state.Query() != "ap(" {
		t.Fatalf("edit was dropped: %q", state.Query())
	}
	if !reflect.DeepEqual(matchedTexts(state), before) || state.Selected != 1 {
		t.Fatalf("previous frame lost: %v sel %d", matchedTexts(state), state.Selected)
	}
	if state.LastError == nil || state.View.Error == "" {
		t.Fatalf("error not surfaced")
	}

	reduce(t, state, DeleteLeftAction{})
	if state.LastError != nil || state.View.Error != "" {
		t.Fatalf("error not cleared: %v", state.LastError)
	}
}

func TestHomeEndMoveSelectionThenCursor(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	typeText(t, state, "ap")

	reduce(t, state, EndAction{})
	if state.Selected != state.Total()-1 || state.Buffer.Cursor() != 2 {
		t.Fatalf("end: selected %d cursor %d", state.Selected, state.Buffer.Cursor())
	}
	reduce(t, state, HomeAction{})
	if state.Selected != 0 || state.Buffer.Cursor() != 2 {
		t.Fatalf("home: selected %d cursor %d", state.Selected, state.Buffer.Cursor())
	}
	reduce(t, state, HomeAction{})
	if state.Buffer.Cursor() != 0 {
		t.Fatalf("second home should move the cursor, at %d", state.Buffer.Cursor())
	}
	reduce(t, state, EndAction{}, EndAction{})
	if state.Buffer.Cursor() != 2 {
		t.Fatalf("second end should move the cursor, at %d", state.Buffer.Cursor())
	}
}

func TestHomeEndWithoutMatchesAreNoops(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	typeText(t, state, "qqq")
	if state.Total() != 0 {
		t.Fatalf("expected no matches, got %d", state.Total())
	}

	reduce(t, state, HomeAction{})
	if state.Buffer.Cursor() != 3 {
		t.Fatalf("home moved the cursor to %d", state.Buffer.Cursor())
	}
	reduce(t, state, MoveLeftAction{}, EndAction{})
	if state.Buffer.Cursor() != 2 {
		t.Fatalf("end moved the cursor to %d", state.Buffer.Cursor())
	}
}

func TestLeftRightInFlowMode(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	typeText(t, state, "a")

	reduce(t, state, MoveRightAction{})
	if state.Selected != 1 {
		t.Fatalf("right at end should select next, selected %d", state.Selected)
	}
	reduce(t, state, MoveLeftAction{})
	if state.Selected != 0 || state.Buffer.Cursor() != 1 {
		t.Fatalf("left: selected %d cursor %d", state.Selected, state.Buffer.Cursor())
	}
	reduce(t, state, MoveLeftAction{})
	if state.Buffer.Cursor() != 0 {
		t.Fatalf("left at first item should move the cursor, at %d", state.Buffer.Cursor())
	}
	reduce(t, state, MoveRightAction{})
	if state.Buffer.Cursor() != 1 || state.Selected != 0 {
		t.Fatalf("right inside text: cursor %d selected %d", state.Buffer.Cursor(), state.Selected)
	}
}

func TestLeftRightInVerticalModeMoveCursorOnly(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{Lines: 3})
	typeText(t, state, "ap")
	reduce(t, state, MoveRightAction{})
	if state.Selected != 0 {
		t.Fatalf("right moved the selection in vertical mode")
	}
	reduce(t, state, MoveLeftAction{})
	if state.Buffer.Cursor() != 1 {
		t.Fatalf("cursor = %d", state.Buffer.Cursor())
	}
}

func TestPagingInVerticalMode(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{Lines: 2})
	if len(state.Pages) != 3 {
		t.Fatalf("pages = %+v", state.Pages)
	}
	reduce(t, state, PageDownAction{})
	if state.Selected != 2 || state.View.Page != 1 {
		t.Fatalf("page down: selected %d page %d", state.Selected, state.View.Page)
	}
	reduce(t, state, SelectNextAction{}, PageDownAction{})
	if state.Selected != 4 {
		t.Fatalf("page down from page middle: %d", state.Selected)
	}
	reduce(t, state, PageDownAction{})
	if state.Selected != 4 {
		t.Fatalf("page down on last page moved to %d", state.Selected)
	}
	reduce(t, state, PageUpAction{}, PageUpAction{}, PageUpAction{})
	if state.Selected != 0 {
		t.Fatalf("page up: %d", state.Selected)
	}
}

func TestSelectItemUsesPageCoordinates(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{Lines: 2})
	reduce(t, state, SelectItemAction{Page: 1, Local: 1})
	if state.Selected != 3 {
		t.Fatalf("selected = %d, want 3", state.Selected)
	}
	reduce(t, state, SelectItemAction{Page: 2, Local: 1})
	if state.Selected != 3 {
		t.Fatalf("out-of-range item moved selection to %d", state.Selected)
	}
}

func TestVerticalLinesCappedByHeight(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{Lines: 10})
	reduce(t, state, ResizeAction{Width: 80, Height: 3})
	if len(state.Pages) != 3 || state.Pages[0].Len() != 2 {
		t.Fatalf("pages = %+v", state.Pages)
	}
}

type disposeOn struct{ query string }

func (d disposeOn) PostprocessMatches(query string, matched []search.Candidate) hooks.PostResult {
	if query == d.query {
		return hooks.PostResult{Matches: matched, Dispose: true, Text: "auto:" + query}
	}
	return hooks.PostResult{Matches: matched}
}

func TestPostprocessorCanDispose(t *testing.T) {
	state, out := newTestState(t, fruit, Settings{}, hooks.Overrides{Post: disposeOn{query: "gr"}})
	typeText(t, state, "g")
	if state.Disposition != Continue {
		t.Fatalf("disposed early")
	}
	typeText(t, state, "r")
	if state.Disposition != Exit || out.String() != "auto:gr\n" {
		t.Fatalf("disposition %v output %q", state.Disposition, out.String())
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestDisposeFailureIsFatal(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{}, hooks.Overrides{Disposer: hooks.LineDisposer{W: brokenWriter{}}})
	_, err := NewStateReducer().Reduce(state, CommitAction{})
	if err == nil || errors.Is(err, ErrMatch) {
		t.Fatalf("err = %v, want fatal dispose error", err)
	}
}

func TestPasteInsertsSanitizedText(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{})
	reduce(t, state, PasteAction{Text: "app\n"})
	if state.Query() != "app" || state.Total() != 4 {
		t.Fatalf("paste: %q total %d", state.Query(), state.Total())
	}
}

type promptingStdin struct{}

func (promptingStdin) ProcessStdin([]string) ([]string, error) { return nil, nil }
func (promptingStdin) Prompt(string) string                    { return "[Search]" }

func TestStdinProcessorCanSetPrompt(t *testing.T) {
	state, _ := newTestState(t, fruit, Settings{Prompt: "run"}, hooks.Overrides{Stdin: promptingStdin{}})
	if state.Prompt != "[Search]" || state.View.Prompt != "[Search]" {
		t.Fatalf("prompt = %q", state.Prompt)
	}
	if len(state.Source) != 0 {
		t.Fatalf("stdin processor output ignored: %d candidates", len(state.Source))
	}
}

func TestFlowLayoutFitsScreen(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = strings.Repeat("x", i%7+1)
	}
	state, _ := newTestState(t, lines, Settings{Prompt: "pick", Policy: layout.WidthPolicy{Kind: layout.WidthItems}})
	if len(state.Pages) < 2 {
		t.Fatalf("expected several pages, got %d", len(state.Pages))
	}
	for i := 0; i < state.Total(); i++ {
		for _, it := range state.View.Items {
			if it.X+it.Width > state.Geometry.Width {
				t.Fatalf("item %q overflows at %d+%d", it.Text, it.X, it.Width)
			}
		}
		reduce(t, state, SelectNextAction{})
	}
	if state.Selected != state.Total()-1 || state.View.Page != len(state.Pages)-1 {
		t.Fatalf("walked to %d on page %d", state.Selected, state.View.Page)
	}
}
