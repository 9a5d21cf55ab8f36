//go:build windows

package app

import "os"

// Windows consoles have no job control: Ctrl-Z does nothing and no resume
// signal exists.
func contSignals() []os.Signal { return nil }

func (app *Application) suspendToShell() {}

func (app *Application) resumeAfterStop() bool { return false }
