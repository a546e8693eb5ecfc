package input

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/imgview/internal/nav"
	renderui "github.com/kk-code-lab/imgview/internal/ui/render"
)

// DefaultWheelStep is the scroll distance of one wheel notch in pixels.
const DefaultWheelStep = 4

// MenuHitTester resolves clicks on the menu bar.
type MenuHitTester interface {
	MenuActionAt(x, y int) (nav.Action, bool)
}

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan  chan nav.Action
	menu        MenuHitTester
	wheelStep   int
	helpVisible bool

	buttonDown  bool
	pressOnMenu bool
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan nav.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
		wheelStep:  DefaultWheelStep,
	}
}

// SetMenu sets the menu bar used to resolve clicks on the top row.
func (ih *InputHandler) SetMenu(menu MenuHitTester) {
	ih.menu = menu
}

// SetWheelStep sets the pixels scrolled per wheel notch.
func (ih *InputHandler) SetWheelStep(step int) {
	if step > 0 {
		ih.wheelStep = step
	}
}

// SetHelpVisible tells the handler whether the help overlay is shown.
func (ih *InputHandler) SetHelpVisible(visible bool) {
	ih.helpVisible = visible
}

// ProcessEvent converts a tcell event into an Action. It returns false
// when the application should quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- nav.ResizeAction{Viewport: renderui.ViewportForScreen(w, h)}
		return true
	case *tcell.EventMouse:
		ih.processMouseEvent(ev)
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	at := ev.When()

	if ih.helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- nav.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- nav.HelpHideAction{}
			return true
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- nav.HelpHideAction{}
			}
			return true
		default:
			return true
		}
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ih.actionChan <- nav.QuitAction{}
		return false

	case tcell.KeyCtrlZ:
		ih.actionChan <- nav.SuspendAction{}
		return true

	case tcell.KeyLeft, tcell.KeyUp, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- nav.StepAction{Delta: -1, At: at}
		return true

	case tcell.KeyRight, tcell.KeyDown:
		ih.actionChan <- nav.StepAction{Delta: 1, At: at}
		return true

	case tcell.KeyPgUp:
		ih.actionChan <- nav.CatalogStepAction{Delta: -1, At: at}
		return true

	case tcell.KeyPgDn:
		ih.actionChan <- nav.CatalogStepAction{Delta: 1, At: at}
		return true

	case tcell.KeyHome:
		ih.actionChan <- nav.SeekAction{Index: 0}
		return true

	case tcell.KeyEnd:
		ih.actionChan <- nav.SeekAction{Index: -1}
		return true

	case tcell.KeyF5, tcell.KeyCtrlR:
		ih.actionChan <- nav.ReloadAction{}
		return true

	case tcell.KeyRune:
		return ih.processRune(ev)
	}

	return true
}

func (ih *InputHandler) processRune(ev *tcell.EventKey) bool {
	at := ev.When()
	switch ev.Rune() {
	case 'q', 'Q':
		ih.actionChan <- nav.QuitAction{}
		return false
	case ' ':
		ih.actionChan <- nav.CatalogStepAction{Delta: 1, At: at}
	case 'h', 'k':
		ih.actionChan <- nav.StepAction{Delta: -1, At: at}
	case 'l', 'j':
		ih.actionChan <- nav.StepAction{Delta: 1, At: at}
	case 'g':
		ih.actionChan <- nav.SeekAction{Index: 0}
	case 'G':
		ih.actionChan <- nav.SeekAction{Index: -1}
	case 'r':
		ih.actionChan <- nav.ToggleReversedAction{}
	case 'm':
		ih.actionChan <- nav.ToggleModeAction{}
	case 'a':
		ih.actionChan <- nav.ToggleAnimateOnKeyAction{}
	case '[':
		ih.actionChan <- nav.AdjustGapAction{Delta: -1}
	case ']':
		ih.actionChan <- nav.AdjustGapAction{Delta: 1}
	case '-':
		ih.actionChan <- nav.AdjustPrefetchAction{Delta: -1}
	case '+', '=':
		ih.actionChan <- nav.AdjustPrefetchAction{Delta: 1}
	case '?':
		ih.actionChan <- nav.HelpToggleAction{}
	}
	return true
}

// processMouseEvent derives press, drag and release from button state
// changes; tcell only reports which buttons are currently held.
func (ih *InputHandler) processMouseEvent(ev *tcell.EventMouse) {
	if ih.helpVisible {
		return
	}
	x, y := ev.Position()
	px, py := renderui.CellToPixel(x, y)
	at := ev.When()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		ih.actionChan <- nav.WheelAction{Delta: -ih.wheelStep, At: at}
		return
	case buttons&tcell.WheelDown != 0:
		ih.actionChan <- nav.WheelAction{Delta: ih.wheelStep, At: at}
		return
	}

	pressed := buttons&tcell.Button1 != 0
	switch {
	case pressed && !ih.buttonDown:
		ih.buttonDown = true
		ih.pressOnMenu = false
		if ih.menu != nil {
			if action, ok := ih.menu.MenuActionAt(x, y); ok {
				ih.pressOnMenu = true
				ih.actionChan <- action
				return
			}
		}
		if y == 0 {
			ih.pressOnMenu = true
			return
		}
		ih.actionChan <- nav.PointerDownAction{X: px, Y: py, At: at}

	case pressed:
		if !ih.pressOnMenu {
			ih.actionChan <- nav.PointerMoveAction{X: px, Y: py, At: at}
		}

	case ih.buttonDown:
		ih.buttonDown = false
		if !ih.pressOnMenu {
			ih.actionChan <- nav.PointerUpAction{X: px, Y: py, At: at}
		}
		ih.pressOnMenu = false
	}
}
