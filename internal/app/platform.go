package app

import (
	"errors"

	"github.com/atotto/clipboard"
	inputui "github.com/kk-code-lab/rmenu/internal/ui/input"
)

// ErrClipboardUnavailable is returned by Ctrl-y when no clipboard utility
// (pbpaste, xclip, xsel, wl-paste, termux) was found.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

var clipboardUnsupported = func() bool { return clipboard.Unsupported }

// systemClipboard returns the paste source for Ctrl-y.
func systemClipboard() inputui.ClipboardReader {
	if clipboardUnsupported() {
		return func() (string, error) {
			return "", ErrClipboardUnavailable
		}
	}
	return clipboard.ReadAll
}
