package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/nav"
)

type fakeMenu struct {
	x      int
	action nav.Action
}

func (m fakeMenu) MenuActionAt(x, y int) (nav.Action, bool) {
	if y == 0 && x == m.x {
		return m.action, true
	}
	return nil, false
}

func drain(ch chan nav.Action) []nav.Action {
	var out []nav.Action
	for {
		select {
		case a := <-ch:
			out = append(out, a)
		default:
			return out
		}
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name  string
		event *tcell.EventKey
		check func(nav.Action) bool
	}{
		{"right steps forward", tcell.NewEventKey(tcell.KeyRight, 0, 0), func(a nav.Action) bool {
			s, ok := a.(nav.StepAction)
			return ok && s.Delta == 1
		}},
		{"left steps back", tcell.NewEventKey(tcell.KeyLeft, 0, 0), func(a nav.Action) bool {
			s, ok := a.(nav.StepAction)
			return ok && s.Delta == -1
		}},
		{"page down follows catalog", tcell.NewEventKey(tcell.KeyPgDn, 0, 0), func(a nav.Action) bool {
			s, ok := a.(nav.CatalogStepAction)
			return ok && s.Delta == 1
		}},
		{"end seeks last", tcell.NewEventKey(tcell.KeyEnd, 0, 0), func(a nav.Action) bool {
			s, ok := a.(nav.SeekAction)
			return ok && s.Index == -1
		}},
		{"m toggles mode", tcell.NewEventKey(tcell.KeyRune, 'm', 0), func(a nav.Action) bool {
			_, ok := a.(nav.ToggleModeAction)
			return ok
		}},
		{"r toggles direction", tcell.NewEventKey(tcell.KeyRune, 'r', 0), func(a nav.Action) bool {
			_, ok := a.(nav.ToggleReversedAction)
			return ok
		}},
		{"] widens gap", tcell.NewEventKey(tcell.KeyRune, ']', 0), func(a nav.Action) bool {
			g, ok := a.(nav.AdjustGapAction)
			return ok && g.Delta == 1
		}},
		{"- shrinks prefetch", tcell.NewEventKey(tcell.KeyRune, '-', 0), func(a nav.Action) bool {
			p, ok := a.(nav.AdjustPrefetchAction)
			return ok && p.Delta == -1
		}},
		{"F5 reloads", tcell.NewEventKey(tcell.KeyF5, 0, 0), func(a nav.Action) bool {
			_, ok := a.(nav.ReloadAction)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actionChan := make(chan nav.Action, 4)
			handler := NewInputHandler(actionChan)

			if !handler.ProcessEvent(tt.event) {
				t.Fatalf("handler requested quit")
			}
			actions := drain(actionChan)
			if len(actions) != 1 || !tt.check(actions[0]) {
				t.Fatalf("unexpected actions %#v", actions)
			}
		})
	}
}

func TestQuitKeysStopTheLoop(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', 0),
		tcell.NewEventKey(tcell.KeyEscape, 0, 0),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, 0),
	} {
		actionChan := make(chan nav.Action, 1)
		handler := NewInputHandler(actionChan)
		if handler.ProcessEvent(ev) {
			t.Fatalf("expected %v to quit", ev.Name())
		}
		if _, ok := (<-actionChan).(nav.QuitAction); !ok {
			t.Fatalf("expected QuitAction for %v", ev.Name())
		}
	}
}

func TestEscapeHidesHelpInsteadOfQuitting(t *testing.T) {
	actionChan := make(chan nav.Action, 1)
	handler := NewInputHandler(actionChan)
	handler.SetHelpVisible(true)

	if !handler.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, 0)) {
		t.Fatalf("escape with help visible must not quit")
	}
	if _, ok := (<-actionChan).(nav.HelpHideAction); !ok {
		t.Fatalf("expected HelpHideAction")
	}

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRight, 0, 0))
	if actions := drain(actionChan); len(actions) != 0 {
		t.Fatalf("expected navigation to be ignored under help, got %#v", actions)
	}
}

func TestMouseDragProducesPointerActionsInPixels(t *testing.T) {
	actionChan := make(chan nav.Action, 8)
	handler := NewInputHandler(actionChan)

	handler.ProcessEvent(tcell.NewEventMouse(10, 3, tcell.Button1, tcell.ModNone))
	handler.ProcessEvent(tcell.NewEventMouse(14, 4, tcell.Button1, tcell.ModNone))
	handler.ProcessEvent(tcell.NewEventMouse(14, 4, tcell.ButtonNone, tcell.ModNone))
	handler.ProcessEvent(tcell.NewEventMouse(20, 4, tcell.ButtonNone, tcell.ModNone))

	actions := drain(actionChan)
	if len(actions) != 3 {
		t.Fatalf("expected down/move/up, got %#v", actions)
	}
	down, ok := actions[0].(nav.PointerDownAction)
	if !ok || down.X != 10 || down.Y != 6 {
		t.Fatalf("unexpected down %#v", actions[0])
	}
	if move, ok := actions[1].(nav.PointerMoveAction); !ok || move.X != 14 || move.Y != 8 {
		t.Fatalf("unexpected move %#v", actions[1])
	}
	if _, ok := actions[2].(nav.PointerUpAction); !ok {
		t.Fatalf("unexpected up %#v", actions[2])
	}
}

func TestMenuClickDispatchesMenuAction(t *testing.T) {
	actionChan := make(chan nav.Action, 4)
	handler := NewInputHandler(actionChan)
	handler.SetMenu(fakeMenu{x: 5, action: nav.ToggleModeAction{}})

	handler.ProcessEvent(tcell.NewEventMouse(5, 0, tcell.Button1, tcell.ModNone))
	handler.ProcessEvent(tcell.NewEventMouse(30, 5, tcell.Button1, tcell.ModNone))
	handler.ProcessEvent(tcell.NewEventMouse(30, 5, tcell.ButtonNone, tcell.ModNone))

	actions := drain(actionChan)
	if len(actions) != 1 {
		t.Fatalf("expected only the menu action, got %#v", actions)
	}
	if _, ok := actions[0].(nav.ToggleModeAction); !ok {
		t.Fatalf("expected ToggleModeAction, got %T", actions[0])
	}
}

func TestWheelUsesConfiguredStep(t *testing.T) {
	actionChan := make(chan nav.Action, 2)
	handler := NewInputHandler(actionChan)
	handler.SetWheelStep(6)

	handler.ProcessEvent(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone))
	handler.ProcessEvent(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone))

	actions := drain(actionChan)
	if len(actions) != 2 {
		t.Fatalf("expected two wheel actions, got %#v", actions)
	}
	if w := actions[0].(nav.WheelAction); w.Delta != 6 {
		t.Fatalf("expected +6, got %d", w.Delta)
	}
	if w := actions[1].(nav.WheelAction); w.Delta != -6 {
		t.Fatalf("expected -6, got %d", w.Delta)
	}
}

func TestResizeEmitsViewport(t *testing.T) {
	actionChan := make(chan nav.Action, 1)
	handler := NewInputHandler(actionChan)

	handler.ProcessEvent(tcell.NewEventResize(80, 24))

	resize, ok := (<-actionChan).(nav.ResizeAction)
	if !ok || resize.Viewport.Width != 80 || resize.Viewport.Height != 44 {
		t.Fatalf("unexpected resize action %#v", resize)
	}
}
