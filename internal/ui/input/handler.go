package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rmenu/internal/state"
)

// ClipboardReader returns the current clipboard contents.
type ClipboardReader func() (string, error)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	clipboard  ClipboardReader

	pasting bool
	paste   strings.Builder
	err     error
}

// NewInputHandler creates a new input handler. A nil clipboard disables
// Ctrl-y.
func NewInputHandler(actionChan chan statepkg.Action, clipboard ClipboardReader) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		clipboard:  clipboard,
	}
}

// Err returns the error that stopped input processing, if any.
func (ih *InputHandler) Err() error {
	return ih.err
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the session should stop reading input.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		return ih.processPaste(ev)
	case *tcell.EventKey:
		if ih.pasting {
			ih.bufferPaste(ev)
			return true
		}
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// processPaste collects bracketed paste content between the start and end
// markers and emits it as one PasteAction.
func (ih *InputHandler) processPaste(ev *tcell.EventPaste) bool {
	if ev.Start() {
		ih.pasting = true
		ih.paste.Reset()
		return true
	}
	ih.pasting = false
	if ih.paste.Len() > 0 {
		ih.actionChan <- statepkg.PasteAction{Text: ih.paste.String()}
	}
	ih.paste.Reset()
	return true
}

func (ih *InputHandler) bufferPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		ih.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		ih.paste.WriteByte('\n')
	case tcell.KeyTab:
		ih.paste.WriteByte('\t')
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	mods := ev.Modifiers()
	ctrl := mods&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlG:
		ih.actionChan <- statepkg.CancelAction{}
		return false

	case tcell.KeyEnter, tcell.KeyCtrlJ:
		ih.actionChan <- statepkg.CommitAction{
			Raw:      mods&tcell.ModShift != 0,
			KeepOpen: ctrl && ev.Key() == tcell.KeyEnter,
		}
		return true

	case tcell.KeyTab:
		ih.actionChan <- statepkg.CompleteAction{}
		return true

	case tcell.KeyBackspace2:
		if ctrl || mods&tcell.ModAlt != 0 {
			ih.actionChan <- statepkg.DeleteWordLeftAction{}
		} else {
			ih.actionChan <- statepkg.DeleteLeftAction{}
		}
		return true

	case tcell.KeyBackspace:
		// Most terminals send ^H for Ctrl-Backspace; tcell reports it with
		// ModCtrl only when the terminal distinguishes the two.
		if ctrl {
			ih.actionChan <- statepkg.DeleteWordLeftAction{}
		} else {
			ih.actionChan <- statepkg.DeleteLeftAction{}
		}
		return true

	case tcell.KeyCtrlW:
		ih.actionChan <- statepkg.DeleteWordLeftAction{}
		return true

	case tcell.KeyDelete:
		if ctrl {
			ih.actionChan <- statepkg.DeleteWordRightAction{}
		} else {
			ih.actionChan <- statepkg.DeleteRightAction{}
		}
		return true

	case tcell.KeyCtrlD:
		ih.actionChan <- statepkg.DeleteRightAction{}
		return true

	case tcell.KeyCtrlK:
		ih.actionChan <- statepkg.ClearRightAction{}
		return true

	case tcell.KeyCtrlU:
		ih.actionChan <- statepkg.ClearLeftAction{}
		return true

	case tcell.KeyLeft:
		if ctrl {
			ih.actionChan <- statepkg.WordLeftAction{}
		} else {
			ih.actionChan <- statepkg.MoveLeftAction{}
		}
		return true

	case tcell.KeyRight:
		if ctrl {
			ih.actionChan <- statepkg.WordRightAction{}
		} else {
			ih.actionChan <- statepkg.MoveRightAction{}
		}
		return true

	case tcell.KeyCtrlB:
		ih.actionChan <- statepkg.MoveLeftAction{}
		return true

	case tcell.KeyCtrlF:
		ih.actionChan <- statepkg.MoveRightAction{}
		return true

	case tcell.KeyUp, tcell.KeyCtrlP:
		ih.actionChan <- statepkg.SelectPrevAction{}
		return true

	case tcell.KeyDown, tcell.KeyCtrlN:
		ih.actionChan <- statepkg.SelectNextAction{}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- statepkg.PageUpAction{}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- statepkg.PageDownAction{}
		return true

	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.HomeAction{}
		return true

	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.EndAction{}
		return true

	case tcell.KeyCtrlY:
		return ih.pasteClipboard()

	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
		return true

	case tcell.KeyRune:
		r := ev.Rune()
		if mods&tcell.ModAlt != 0 {
			ih.processAltRune(r)
			return true
		}
		if !unicode.IsControl(r) {
			ih.actionChan <- statepkg.InsertTextAction{Text: string(r)}
		}
		return true

	default:
		return true
	}
}

// processAltRune maps the vi-flavoured Alt bindings.
func (ih *InputHandler) processAltRune(r rune) {
	switch r {
	case 'b':
		ih.actionChan <- statepkg.WordLeftAction{}
	case 'f':
		ih.actionChan <- statepkg.WordRightAction{}
	case 'g':
		ih.actionChan <- statepkg.HomeAction{}
	case 'G':
		ih.actionChan <- statepkg.EndAction{}
	case 'h':
		ih.actionChan <- statepkg.SelectPrevAction{}
	case 'l':
		ih.actionChan <- statepkg.SelectNextAction{}
	case 'j':
		ih.actionChan <- statepkg.PageDownAction{}
	case 'k':
		ih.actionChan <- statepkg.PageUpAction{}
	}
}

func (ih *InputHandler) pasteClipboard() bool {
	if ih.clipboard == nil {
		return true
	}
	text, err := ih.clipboard()
	if err != nil {
		ih.err = fmt.Errorf("read clipboard: %w", err)
		return false
	}
	if text != "" {
		ih.actionChan <- statepkg.PasteAction{Text: text}
	}
	return true
}
