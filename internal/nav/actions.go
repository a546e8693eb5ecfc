package nav

import (
	"time"

	"github.com/kk-code-lab/imgview/internal/layout"
)

// Action is the base interface for all navigation input.
type Action interface{}

// ===== FOCUS ACTIONS =====

// StepAction moves the focus by Delta on screen: positive is right in
// Paged mode and down in Continuous mode.
type StepAction struct {
	Delta int
	At    time.Time
}

// CatalogStepAction moves the focus by Delta in catalog order, whatever
// the reading direction.
type CatalogStepAction struct {
	Delta int
	At    time.Time
}

// SeekAction jumps to Index. A negative index counts from the end.
type SeekAction struct {
	Index int
}

// ===== POINTER ACTIONS =====

// PointerDownAction presses the pointer at pixel (X, Y) and starts a drag.
type PointerDownAction struct {
	X, Y int
	At   time.Time
}

// PointerMoveAction reports the pressed pointer at a new position.
type PointerMoveAction struct {
	X, Y int
	At   time.Time
}

// PointerUpAction releases the pointer and classifies the gesture.
type PointerUpAction struct {
	X, Y int
	At   time.Time
}

// WheelAction scrolls by Delta pixels; positive moves forward through the
// sequence.
type WheelAction struct {
	Delta int
	At    time.Time
}

// TickAction advances the active transition.
type TickAction struct {
	At time.Time
}

// ===== VIEW ACTIONS =====

// ResizeAction installs a new viewport and refits every surface.
type ResizeAction struct {
	Viewport layout.Viewport
}

// RefreshAction re-runs the layout, e.g. after an asynchronous decode finished.
type RefreshAction struct{}

// ToggleReversedAction flips the Paged reading direction.
type ToggleReversedAction struct{}

// ToggleModeAction switches between Paged and Continuous layout.
type ToggleModeAction struct{}

// ToggleAnimateOnKeyAction turns animated key steps on or off.
type ToggleAnimateOnKeyAction struct{}

// AdjustGapAction changes the gap between surfaces by Delta pixels.
type AdjustGapAction struct {
	Delta int
}

// AdjustPrefetchAction changes the prefetch budget by Delta surfaces.
type AdjustPrefetchAction struct {
	Delta int
}

// ===== APPLICATION ACTIONS =====
// The controller ignores these; the application loop handles them.

// QuitAction exits the viewer.
type QuitAction struct{}

// SuspendAction stops the process to the shell (Ctrl+Z).
type SuspendAction struct{}

// ReloadAction rescans the directory, keeping the focused file.
type ReloadAction struct{}

// HelpToggleAction shows or hides the help overlay.
type HelpToggleAction struct{}

// HelpHideAction closes the help overlay.
type HelpHideAction struct{}
