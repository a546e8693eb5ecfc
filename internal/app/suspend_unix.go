//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/nav"
	renderui "github.com/kk-code-lab/imgview/internal/ui/render"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process so the shell keeps job control.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		return false
	}
	// Re-enable mouse reporting after resume
	app.screen.EnableMouse()
	app.screen.Sync()
	_ = app.screen.PostEvent(tcell.NewEventInterrupt("resume"))
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.ctrl.Reduce(nav.ResizeAction{Viewport: renderui.ViewportForScreen(w, h)})
	}
	return true
}
