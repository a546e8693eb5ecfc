package app

import (
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/config"
	"github.com/kk-code-lab/imgview/internal/nav"
	"github.com/sirupsen/logrus"
)

// NewApplication opens the terminal and loads path into the viewer.
func NewApplication(cfg *config.Config, path string, log logrus.FieldLogger) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	app, err := newApplication(screen, cfg, path, log)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// Run processes events until the user quits.
func (app *Application) Run() {
	app.startWatcher()
	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var watchCh <-chan struct{}
	if app.watcher != nil {
		watchCh = app.watcher.Changes()
	}

	frameInterval := app.cfg.Animation.FrameInterval
	var frameTimer *time.Timer
	var frameCh <-chan time.Time

	startFrames := func() {
		if frameCh != nil {
			return
		}
		if frameTimer == nil {
			frameTimer = time.NewTimer(frameInterval)
		} else {
			frameTimer.Reset(frameInterval)
		}
		frameCh = frameTimer.C
	}

	stopFrames := func() {
		if frameTimer == nil {
			return
		}
		if !frameTimer.Stop() {
			select {
			case <-frameTimer.C:
			default:
			}
		}
		frameCh = nil
	}

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		if app.ctrl.Animating() {
			startFrames()
		} else {
			stopFrames()
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case now := <-frameCh:
			frameCh = nil
			if app.handleAction(nav.TickAction{At: now}) {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-app.decodeCh:
			if app.handleAction(nav.RefreshAction{}) {
				renderPending = true
			}
		case <-watchCh:
			if app.handleAction(nav.ReloadAction{}) {
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

	stopFrames()
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev.(type) {
	case *tcell.EventKey, *tcell.EventResize, *tcell.EventMouse:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
		return false
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action nav.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case nav.QuitAction:
		app.shouldQuit = true
		return false
	case nav.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case nav.ReloadAction:
		app.reload()
		return true
	case nav.HelpToggleAction:
		app.setHelp(!app.showHelp)
		return true
	case nav.HelpHideAction:
		app.setHelp(false)
		return true
	case nav.ResizeAction:
		app.screen.Sync()
	}

	return app.ctrl.Reduce(action)
}

func (app *Application) setHelp(visible bool) {
	app.showHelp = visible
	app.input.SetHelpVisible(visible)
}

func (app *Application) reload() {
	if err := app.ctrl.Reload(); err != nil {
		app.lastErr = err
		app.log.WithError(err).Warn("reload failed")
		return
	}
	app.lastErr = nil
}
