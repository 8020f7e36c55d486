package gizmo

// Axis identifies one of the gizmo's three translation handles.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "none"
}

// Index is the vector component the axis moves, or -1 for AxisNone.
func (a Axis) Index() int {
	switch a {
	case AxisX:
		return 0
	case AxisY:
		return 1
	case AxisZ:
		return 2
	}
	return -1
}

func axisFromIndex(i int) Axis {
	switch i {
	case 0:
		return AxisX
	case 1:
		return AxisY
	case 2:
		return AxisZ
	}
	return AxisNone
}

// State is the interaction state carried from one frame to the next.
// Hovered is recomputed every frame; Dragged sticks while the button is held.
type State struct {
	Hovered Axis
	Dragged Axis
}

func (s State) Active() bool { return s.Hovered != AxisNone || s.Dragged != AxisNone }

type Settings struct {
	// Pixel distance from a tip within which the pointer hovers it.
	MoveControlThreshold float32
	TipSize              float32
	HighlightTipSize     float32
}

func DefaultSettings() Settings {
	return Settings{
		MoveControlThreshold: 10,
		TipSize:              10,
		HighlightTipSize:     20,
	}
}
