package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rmenu/internal/state"
	"github.com/kk-code-lab/rmenu/internal/ui/input"
	renderui "github.com/kk-code-lab/rmenu/internal/ui/render"
)

const doubleClickThreshold = 300 * time.Millisecond

func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	app, err := newApplication(screen, opts)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// newApplication wires the session to an initialized screen and runs the
// first match, which may already dispose (autoselect, maxlength).
func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard()
	}

	state, err := statepkg.NewMenuState(opts.Lines, opts.Settings, opts.Hooks, renderui.Measurer{})
	if err != nil {
		return nil, err
	}

	actionCh := make(chan statepkg.Action, 10)
	app := &Application{
		screen:   screen,
		state:    state,
		reducer:  statepkg.NewStateReducer(),
		renderer: renderui.NewRenderer(screen, renderui.Options{Bottom: opts.Bottom, Lines: opts.Settings.Lines}),
		input:    input.NewInputHandler(actionCh, clip),
		actionCh: actionCh,
		logger:   logger,
	}

	app.engage()
	app.handleAction(statepkg.RematchAction{})
	if app.err != nil {
		return nil, app.err
	}
	logger.Debug("session started", "candidates", len(state.Source), "matched", state.Total())
	return app, nil
}

// Run processes events until the menu commits or is cancelled. A session
// that stops without a commit reports Cancel.
func (app *Application) Run() (statepkg.Disposition, error) {
	if app.done() {
		return app.result()
	}

	app.renderer.Render(app.state.View)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	for !app.done() {
		if renderPending {
			app.renderer.Render(app.state.View)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}

	return app.result()
}

// engage turns on bracketed paste and mouse reporting and syncs the state
// with the screen size. It runs at start and again after a resume.
func (app *Application) engage() {
	app.screen.EnablePaste()
	// Parse mouse sequences so clicks don't leak as key events.
	app.screen.EnableMouse(tcell.MouseButtonEvents)
	app.screen.Sync()
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.handleAction(statepkg.ResizeAction{Width: w, Height: h})
	}
}

func (app *Application) done() bool {
	return app.shouldQuit || app.err != nil || app.state.Disposition != statepkg.Continue
}

func (app *Application) result() (statepkg.Disposition, error) {
	disposition := app.state.Disposition
	if disposition == statepkg.Continue {
		disposition = statepkg.Cancel
	}
	app.logger.Info("session finished", "disposition", disposition, "err", app.err)
	return disposition, app.err
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventPaste, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
			if err := app.input.Err(); err != nil {
				app.err = err
			}
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps wheel scrolling to selection moves, clicks on the page
// indicators to paging and clicks on items to selection. A double click
// commits the item.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		app.actionCh <- statepkg.SelectPrevAction{}
		return true
	case buttons&tcell.WheelDown != 0:
		app.actionCh <- statepkg.SelectNextAction{}
		return true
	case buttons&tcell.Button1 == 0:
		return false
	}

	x, y := ev.Position()
	row := y - app.renderer.PromptRow()
	view := app.state.View
	measure := renderui.Measurer{}

	if row == 0 {
		if view.ShowBack && x >= view.BackX && x < view.BackX+measure.TextWidth(statepkg.BackGlyph) {
			app.actionCh <- statepkg.PageUpAction{}
			return true
		}
		if view.ShowMore && x >= view.MoreX {
			app.actionCh <- statepkg.PageDownAction{}
			return true
		}
	}

	for i, item := range view.Items {
		if item.Y != row || x < item.X || x >= item.X+item.Width {
			continue
		}
		clickKey := fmt.Sprintf("item-%d-%d", view.Page, i)
		doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
		app.lastClickKey = clickKey
		app.lastClickTime = time.Now()

		app.actionCh <- statepkg.SelectItemAction{Page: view.Page, Local: i}
		if doubleClick {
			app.actionCh <- statepkg.CommitAction{}
		}
		return true
	}
	return false
}

func (app *Application) processActions() bool {
	changed := false
	for !app.done() {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
	return changed
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	// The SIGCONT that follows a suspend brings the screen back.
	if _, ok := action.(statepkg.SuspendAction); ok {
		app.suspendToShell()
		return false
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		if !errors.Is(err, statepkg.ErrMatch) {
			app.err = err
			return false
		}
		app.logger.Debug("match failed", "query", app.state.Query(), "err", err)
	}
	return true
}
