package app

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/config"
	"github.com/kk-code-lab/imgview/internal/nav"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Decode.Async = false
	cfg.Catalog.Watch = false
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, path string) (*Application, tcell.SimulationScreen) {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	scr.SetSize(80, 24)

	logger, _ := test.NewNullLogger()
	app, err := newApplication(scr, cfg, path, logger)
	if err != nil {
		scr.Fini()
		t.Fatalf("newApplication: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, scr
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writePNG(t, filepath.Join(dir, name), 8, 6)
	}
	return dir
}

func screenRow(scr tcell.SimulationScreen, y int) string {
	w, _ := scr.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := scr.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestNewApplicationFocusesRequestedFile(t *testing.T) {
	dir := sampleDir(t)
	app, _ := newTestApp(t, testConfig(), filepath.Join(dir, "b.png"))

	v := app.view()
	if v.Count != 3 || v.Focus != 1 || v.Name != "b.png" {
		t.Fatalf("unexpected view: count=%d focus=%d name=%q", v.Count, v.Focus, v.Name)
	}
	if len(v.Surfaces) == 0 {
		t.Fatalf("expected arranged surfaces")
	}
}

func TestNewApplicationRejectsMissingPath(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer scr.Fini()

	_, err := newApplication(scr, testConfig(), filepath.Join(t.TempDir(), "missing"), logrus.New())
	if err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestRightKeyFollowsReadingDirection(t *testing.T) {
	dir := sampleDir(t)
	app, _ := newTestApp(t, testConfig(), filepath.Join(dir, "b.png"))

	app.handleEvent(tcell.NewEventKey(tcell.KeyRight, 0, 0))
	if !app.processActions() {
		t.Fatalf("expected redraw after step")
	}

	// Reading right to left by default: right shows the previous file.
	if got := app.ctrl.CurrentName(); got != "a.png" {
		t.Fatalf("expected a.png, got %q", got)
	}
	if !app.ctrl.Animating() {
		t.Fatalf("expected key step to animate in paged mode")
	}
}

func TestHelpOverlaySwallowsNavigation(t *testing.T) {
	dir := sampleDir(t)
	app, _ := newTestApp(t, testConfig(), filepath.Join(dir, "b.png"))

	app.handleAction(nav.HelpToggleAction{})
	if !app.view().ShowHelp {
		t.Fatalf("expected help to be visible")
	}

	app.handleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, 0))
	app.processActions()
	if got := app.ctrl.CurrentName(); got != "b.png" {
		t.Fatalf("navigation under help moved focus to %q", got)
	}

	app.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0))
	app.processActions()
	if app.showHelp || app.shouldQuit {
		t.Fatalf("escape should only close help: help=%v quit=%v", app.showHelp, app.shouldQuit)
	}
}

func TestQuitKeyStopsLoop(t *testing.T) {
	dir := sampleDir(t)
	app, _ := newTestApp(t, testConfig(), dir)

	app.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))
	if !app.shouldQuit {
		t.Fatalf("expected quit")
	}
}

func TestReloadKeepsFocusedFile(t *testing.T) {
	dir := sampleDir(t)
	app, _ := newTestApp(t, testConfig(), filepath.Join(dir, "b.png"))

	writePNG(t, filepath.Join(dir, "0.png"), 4, 4)
	app.handleAction(nav.ReloadAction{})

	v := app.view()
	if v.Count != 4 || v.Name != "b.png" || v.Focus != 2 {
		t.Fatalf("unexpected view after reload: count=%d focus=%d name=%q", v.Count, v.Focus, v.Name)
	}
}

func TestReloadFailureIsShownInStatusBar(t *testing.T) {
	dir := sampleDir(t)
	app, scr := newTestApp(t, testConfig(), dir)

	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	app.handleAction(nav.ReloadAction{})
	if app.lastErr == nil {
		t.Fatalf("expected reload error")
	}
	if app.view().Count != 3 {
		t.Fatalf("failed reload must keep the previous catalog")
	}

	app.render()
	_, h := scr.Size()
	if !strings.Contains(app.view().LastError, "no such file") {
		t.Fatalf("unexpected error text %q", app.view().LastError)
	}
	if row := screenRow(scr, h-1); !strings.Contains(row, "cannot open") {
		t.Fatalf("expected error in status bar, got %q", row)
	}
}

func TestRenderShowsMenuAndStatus(t *testing.T) {
	dir := sampleDir(t)
	app, scr := newTestApp(t, testConfig(), filepath.Join(dir, "c.png"))

	app.render()
	_, h := scr.Size()
	if row := screenRow(scr, 0); !strings.Contains(row, "imgview") {
		t.Fatalf("expected menu bar, got %q", row)
	}
	if row := screenRow(scr, h-1); !strings.Contains(row, "c.png") || !strings.Contains(row, "3/3") {
		t.Fatalf("expected status line, got %q", row)
	}
}

func TestMenuClickTogglesMode(t *testing.T) {
	dir := sampleDir(t)
	app, scr := newTestApp(t, testConfig(), dir)
	app.render()

	row := screenRow(scr, 0)
	x := strings.Index(row, "m: paged")
	if x < 0 {
		t.Fatalf("menu item not found in %q", row)
	}
	app.handleEvent(tcell.NewEventMouse(x+1, 0, tcell.Button1, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(x+1, 0, tcell.ButtonNone, tcell.ModNone))
	app.processActions()

	if got := app.ctrl.Params().Mode.String(); got != "continuous" {
		t.Fatalf("expected continuous mode, got %q", got)
	}
}

func TestDecodeFinishedCoalescesNotifications(t *testing.T) {
	app := &Application{decodeCh: make(chan struct{}, 1)}

	app.decodeFinished("a.png")
	app.decodeFinished("b.png")

	if len(app.decodeCh) != 1 {
		t.Fatalf("expected a single pending notification, got %d", len(app.decodeCh))
	}
}

func TestAsyncDecodeRefreshesPlaceholder(t *testing.T) {
	dir := sampleDir(t)
	cfg := testConfig()
	cfg.Decode.Async = true
	app, _ := newTestApp(t, cfg, filepath.Join(dir, "a.png"))

	focus, ok := app.ctrl.Engine().Window().Get(0)
	if !ok {
		t.Fatalf("expected focused slot")
	}

	deadline := time.After(2 * time.Second)
	for focus.Content().Pending {
		select {
		case <-app.decodeCh:
			app.handleAction(nav.RefreshAction{})
		case <-deadline:
			t.Fatalf("decode did not finish")
		}
	}
	if focus.Content().Image == nil {
		t.Fatalf("expected decoded image after refresh")
	}
}
