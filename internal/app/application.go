package app

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rmenu/internal/hooks"
	statepkg "github.com/kk-code-lab/rmenu/internal/state"
	inputui "github.com/kk-code-lab/rmenu/internal/ui/input"
	renderui "github.com/kk-code-lab/rmenu/internal/ui/render"
)

// Options configure one menu session.
type Options struct {
	Lines    []string
	Settings statepkg.Settings
	Hooks    *hooks.Set
	Bottom   bool
	// Clipboard feeds Ctrl-y. Nil uses the system clipboard.
	Clipboard inputui.ClipboardReader
	Logger    *slog.Logger
}

// Application represents the running app.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.MenuState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	logger     *slog.Logger
	shouldQuit bool
	err        error

	lastClickKey  string
	lastClickTime time.Time
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}

// State returns the menu state.
func (app *Application) State() *statepkg.MenuState {
	return app.state
}
