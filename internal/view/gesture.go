package view

// Phase is the state of the pan gesture.
type Phase int

const (
	Idle Phase = iota
	Panning
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	default:
		return "unknown"
	}
}

// Gesture tracks a drag. Only one gesture is active at a time, and zoom
// is accepted only while Idle.
type Gesture struct {
	phase        Phase
	lastX, lastY float64
}

// Phase reports the current state.
func (g *Gesture) Phase() Phase { return g.phase }

// Down starts panning at the pointer position.
func (g *Gesture) Down(x, y float64) {
	g.phase = Panning
	g.lastX, g.lastY = x, y
}

// Move returns the pointer delta since the last event. ok is false when
// no drag is in progress.
func (g *Gesture) Move(x, y float64) (dx, dy float64, ok bool) {
	if g.phase != Panning {
		return 0, 0, false
	}
	dx, dy = x-g.lastX, y-g.lastY
	g.lastX, g.lastY = x, y
	return dx, dy, true
}

// Up ends the drag.
func (g *Gesture) Up() { g.phase = Idle }

// Leave cancels the drag when the pointer exits the viewport. Deltas
// already applied are kept.
func (g *Gesture) Leave() { g.phase = Idle }
