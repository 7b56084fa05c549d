package highlight

import "fmt"

// Zoom limits, in percent.
const (
	MinZoom     = 25
	MaxZoom     = 300
	ZoomStep    = 25
	DefaultZoom = 100
)

// Zoom is the preview scale in percent. It is cosmetic and never affects
// formatting or locating.
type Zoom int

// ClampZoom returns percent limited to [MinZoom, MaxZoom]. Zero selects DefaultZoom.
func ClampZoom(percent int) Zoom {
	if percent == 0 {
		return DefaultZoom
	}
	return Zoom(max(MinZoom, min(MaxZoom, percent)))
}

// In returns the next larger step.
func (z Zoom) In() Zoom {
	return Zoom(min(int(z)+ZoomStep, MaxZoom))
}

// Out returns the next smaller step.
func (z Zoom) Out() Zoom {
	return Zoom(max(int(z)-ZoomStep, MinZoom))
}

// Reset returns DefaultZoom.
func (z Zoom) Reset() Zoom {
	return DefaultZoom
}

// Scale returns the zoom as a factor, 1.0 at 100%.
func (z Zoom) Scale() float64 {
	return float64(z) / 100
}

// Apply performs a named zoom action: "in", "out" or "reset".
func (z Zoom) Apply(action string) (Zoom, error) {
	switch action {
	case "in":
		return z.In(), nil
	case "out":
		return z.Out(), nil
	case "reset":
		return z.Reset(), nil
	default:
		return z, fmt.Errorf("unknown zoom action %q", action)
	}
}

func (z Zoom) String() string {
	return fmt.Sprintf("%d%%", int(z))
}
