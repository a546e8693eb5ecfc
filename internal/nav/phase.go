package nav

import (
	"image"
	"time"

	"github.com/kk-code-lab/imgview/internal/anim"
)

// Phase is the controller state: Idle, Dragging or Animating.
type Phase interface {
	String() string
	isPhase()
}

// Idle waits for input.
type Idle struct{}

// Dragging follows a pressed pointer.
type Dragging struct {
	Anchor     image.Point
	AnchorTime time.Time
	// Last and LastTime record the most recent sample that moved the
	// pointer along the navigation axis.
	Last     image.Point
	LastTime time.Time
	// Velocity along the navigation axis in pixels per millisecond.
	Velocity float64
	// Travel is the largest distance from the anchor seen so far.
	Travel int
}

// Animating settles the drag offset through a transition.
type Animating struct {
	Transition *anim.Transition
}

func (Idle) String() string      { return "idle" }
func (Dragging) String() string  { return "dragging" }
func (Animating) String() string { return "animating" }

func (Idle) isPhase()      {}
func (Dragging) isPhase()  {}
func (Animating) isPhase() {}
