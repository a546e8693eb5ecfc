package anim

// EasingFunc maps progress [0,1] to eased progress [0,1].
type EasingFunc func(t float64) float64

var (
	// EaseLinear - constant speed
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - smooth S-curve
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseOutCubic - fast start, decelerating
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	// EaseInOutCubic - slow start and end; the default for page slides
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

// EasingByName resolves a configured easing name. Unknown names fall back
// to EaseInOutCubic.
func EasingByName(name string) EasingFunc {
	switch name {
	case "linear":
		return EaseLinear
	case "smoothstep":
		return EaseSmoothstep
	case "out-cubic":
		return EaseOutCubic
	default:
		return EaseInOutCubic
	}
}
