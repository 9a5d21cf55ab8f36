//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals are delivered when the shell resumes the stopped menu.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}

// suspendToShell hands the terminal back and stops the process (Ctrl-Z).
// Only this pid gets SIGTSTP; the rest of the pipeline is left alone.
func (app *Application) suspendToShell() {
	_ = app.screen.Suspend()
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// resumeAfterStop takes the terminal back after SIGCONT and lays the menu
// out again for whatever size the terminal has now.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.logger.Warn("resume failed", "err", err)
		return false
	}
	app.engage()
	return true
}
