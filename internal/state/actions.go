package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== EDIT ACTIONS =====

type InsertTextAction struct {
	Text string
}
type PasteAction struct {
	Text string
}
type DeleteLeftAction struct{}
type DeleteRightAction struct{}
type DeleteWordLeftAction struct{}
type DeleteWordRightAction struct{}
type ClearLeftAction struct{}
type ClearRightAction struct{}

// ===== CURSOR ACTIONS =====

// MoveLeftAction and MoveRightAction move the selection in flow mode when
// the cursor is at the end of the query, and the cursor otherwise.
type MoveLeftAction struct{}
type MoveRightAction struct{}
type WordLeftAction struct{}
type WordRightAction struct{}

// ===== NAVIGATION ACTIONS =====

type SelectPrevAction struct{}
type SelectNextAction struct{}
type PageUpAction struct{}
type PageDownAction struct{}
type HomeAction struct{}
type EndAction struct{}

// SelectItemAction selects the item at position Local of page Page, as
// shown on screen (mouse clicks).
type SelectItemAction struct {
	Page  int
	Local int
}

// CompleteAction copies the selected candidate into the query (Tab).
type CompleteAction struct{}

// ===== SESSION ACTIONS =====

// CommitAction emits the selection, or the raw query when Raw is set or
// nothing matches. KeepOpen leaves the session running.
type CommitAction struct {
	Raw      bool
	KeepOpen bool
}
type CancelAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// RematchAction reruns the matcher on the current query.
type RematchAction struct{}

// SuspendAction stops the process (Ctrl-Z). The application loop handles it
// before the reducer sees it.
type SuspendAction struct{}
