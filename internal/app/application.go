package app

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/anim"
	"github.com/kk-code-lab/imgview/internal/catalog"
	"github.com/kk-code-lab/imgview/internal/config"
	"github.com/kk-code-lab/imgview/internal/decode"
	fsutil "github.com/kk-code-lab/imgview/internal/fs"
	"github.com/kk-code-lab/imgview/internal/layout"
	"github.com/kk-code-lab/imgview/internal/nav"
	"github.com/kk-code-lab/imgview/internal/surface"
	inputui "github.com/kk-code-lab/imgview/internal/ui/input"
	renderui "github.com/kk-code-lab/imgview/internal/ui/render"
	"github.com/kk-code-lab/imgview/internal/watch"
	"github.com/sirupsen/logrus"
)

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	cfg      *config.Config
	log      logrus.FieldLogger
	ctrl     *nav.Controller
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan nav.Action

	// decodeCh receives a signal whenever an async decode finishes.
	decodeCh chan struct{}
	async    *decode.Async

	watcher     *watch.Watcher
	stopWatcher context.CancelFunc

	showHelp   bool
	lastErr    error
	shouldQuit bool
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.stopWatcher != nil {
		app.stopWatcher()
	}
	if app.watcher != nil {
		_ = app.watcher.Close()
	}
	if app.async != nil {
		app.async.Close()
	}
	_ = flushConsoleInput()
	app.screen.Fini()
	return nil
}

// Controller exposes the navigation controller.
func (app *Application) Controller() *nav.Controller {
	return app.ctrl
}

// Settings derives navigation settings from cfg.
func Settings(cfg *config.Config) nav.Settings {
	return nav.Settings{
		Animate:         cfg.Animation.Enabled,
		AnimateOnKey:    cfg.Animation.OnKey,
		PageThreshold:   cfg.Navigation.PageThreshold,
		ScrollThreshold: cfg.Navigation.ScrollThreshold,
		FlingVelocity:   cfg.Navigation.FlingVelocity,
		Transition: anim.Options{
			MaxDuration: cfg.Animation.MaxDuration,
			PerPixel:    cfg.Animation.PerPixel,
			Easing:      anim.EasingByName(cfg.Animation.Easing),
		},
	}
}

// Params derives the initial layout parameters from cfg.
func Params(cfg *config.Config) (layout.Params, error) {
	mode, err := layout.ParseMode(cfg.View.Mode)
	if err != nil {
		return layout.Params{}, err
	}
	return layout.Params{
		Mode:     mode,
		Reversed: cfg.View.Reversed,
		Gap:      cfg.View.Gap,
		Prefetch: cfg.View.Prefetch,
	}, nil
}

// NewCatalog builds an empty catalog honouring the catalog section of cfg.
func NewCatalog(cfg *config.Config) *catalog.Catalog {
	return catalog.New(catalog.Options{
		Matcher:       fsutil.ExtensionMatcher(cfg.Catalog.Extensions),
		Sequencer:     catalog.NewNaturalSequencer(cfg.Catalog.Locale),
		IncludeHidden: cfg.Catalog.IncludeHidden,
	})
}

// Theme converts the theme section of cfg.
func Theme(cfg *config.Config) (renderui.ColorTheme, error) {
	return renderui.ParseTheme(renderui.ThemeColors{
		Background:  cfg.Theme.Background,
		MenuBar:     cfg.Theme.MenuBar,
		MenuText:    cfg.Theme.MenuText,
		MenuActive:  cfg.Theme.MenuActive,
		StatusBar:   cfg.Theme.StatusBar,
		StatusText:  cfg.Theme.StatusText,
		Placeholder: cfg.Theme.Placeholder,
		Error:       cfg.Theme.Error,
	})
}

func newApplication(screen tcell.Screen, cfg *config.Config, path string, log logrus.FieldLogger) (*Application, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	params, err := Params(cfg)
	if err != nil {
		return nil, err
	}
	theme, err := Theme(cfg)
	if err != nil {
		return nil, err
	}

	app := &Application{
		screen:   screen,
		cfg:      cfg,
		log:      log,
		actionCh: make(chan nav.Action, 10),
		decodeCh: make(chan struct{}, 1),
	}

	var dec decode.Decoder = decode.FileDecoder{MaxPixels: cfg.Decode.MaxPixels}
	if cfg.Decode.Async {
		app.async = decode.NewAsync(dec, app.decodeFinished, log)
		dec = app.async
	}

	renderer := renderui.NewRenderer(screen)
	renderer.SetTheme(theme)

	pool := surface.NewPool(renderui.NewImageSurface)
	engine := layout.NewEngine(NewCatalog(cfg), pool, dec, log)
	for _, o := range renderer.Overlays() {
		engine.AddOverlay(o)
	}
	w, h := screen.Size()
	engine.SetViewport(renderui.ViewportForScreen(w, h))

	app.renderer = renderer
	app.ctrl = nav.NewController(engine, params, Settings(cfg), log)
	app.input = inputui.NewInputHandler(app.actionCh)
	app.input.SetMenu(renderer)
	app.input.SetWheelStep(cfg.Navigation.WheelStep)

	if err := app.ctrl.Load(path); err != nil {
		if app.async != nil {
			app.async.Close()
		}
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	return app, nil
}

// decodeFinished runs on decoder goroutines and must not block.
func (app *Application) decodeFinished(string) {
	select {
	case app.decodeCh <- struct{}{}:
	default:
	}
}

// startWatcher observes the catalog directory when enabled.
func (app *Application) startWatcher() {
	if !app.cfg.Catalog.Watch || app.ctrl.Catalog().Dir() == "" {
		return
	}
	w, err := watch.New(app.ctrl.Catalog().Dir(), watch.DefaultDebounce, app.log)
	if err != nil {
		app.log.WithError(err).Warn("directory watch disabled")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	app.watcher = w
	app.stopWatcher = cancel
	go func() {
		if err := w.Run(ctx); err != nil && ctx.Err() == nil {
			app.log.WithError(err).Warn("directory watch stopped")
		}
	}()
}

func (app *Application) view() renderui.View {
	cat := app.ctrl.Catalog()
	eng := app.ctrl.Engine()
	v := renderui.View{
		Dir:          cat.Dir(),
		Name:         app.ctrl.CurrentName(),
		Focus:        cat.Focus(),
		Count:        cat.Len(),
		Surfaces:     eng.Visible(),
		Viewport:     eng.Viewport(),
		Params:       app.ctrl.Params(),
		AnimateOnKey: app.ctrl.Settings().AnimateOnKey,
		Phase:        app.ctrl.Phase().String(),
		ShowHelp:     app.showHelp,
	}
	if app.lastErr != nil {
		v.LastError = app.lastErr.Error()
	}
	return v
}

func (app *Application) render() {
	app.renderer.Render(app.view())
}
