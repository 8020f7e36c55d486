package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/viewport/rt/core"
	"github.com/gekko3d/gekko-editor/viewport/rt/input"
)

// Axis projections shorter than this (squared, in pixels) are treated as
// degenerate and produce no movement.
const degenerateAxisEpsilon = 1e-6

type Matrices struct {
	Model           mgl32.Mat4
	View            mgl32.Mat4
	Projection      mgl32.Mat4
	MV              mgl32.Mat4
	MVn             mgl32.Mat3
	MVP             mgl32.Mat4
	ModelToViewport mgl32.Mat4
}

func ComputeMatrices(t core.Transform, view, projection mgl32.Mat4, width, height float32) Matrices {
	model := t.ObjectToWorld()
	mv := view.Mul4(model)
	mvp := projection.Mul4(mv)
	return Matrices{
		Model:           model,
		View:            view,
		Projection:      projection,
		MV:              mv,
		MVn:             core.NormalMatrix(mv),
		MVP:             mvp,
		ModelToViewport: core.NDCToViewport(width, height).Mul4(mvp),
	}
}

// ProjectedAxes holds the gizmo origin and the unit axis tips in viewport
// pixels.
type ProjectedAxes struct {
	Origin mgl32.Vec2
	Tips   [3]mgl32.Vec2
}

var unitAxes = [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

func ProjectAxes(modelToViewport mgl32.Mat4) ProjectedAxes {
	var p ProjectedAxes
	p.Origin = screen(modelToViewport, mgl32.Vec3{})
	for i, a := range unitAxes {
		p.Tips[i] = screen(modelToViewport, a)
	}
	return p
}

func screen(m mgl32.Mat4, v mgl32.Vec3) mgl32.Vec2 {
	p := core.ProjectPoint(m, v)
	return mgl32.Vec2{p.X(), p.Y()}
}

// TipDistances is the pixel distance from pointer to each projected tip.
func TipDistances(pointer mgl32.Vec2, p ProjectedAxes) [3]float32 {
	var d [3]float32
	for i, tip := range p.Tips {
		d[i] = pointer.Sub(tip).Len()
	}
	return d
}

// SelectAxis returns the axis whose tip is nearest, provided it is closer
// than threshold. Equal distances resolve X, then Y, then Z; the order is
// arbitrary but kept stable.
func SelectAxis(d [3]float32, threshold float32) Axis {
	best := -1
	for i, v := range d {
		if math.IsNaN(float64(v)) || v >= threshold {
			continue
		}
		if best < 0 || v < d[best] {
			best = i
		}
	}
	return axisFromIndex(best)
}

// DragMove converts a pointer delta into a world-space offset along an axis
// whose projection on screen is axisDir. It reports false when the axis is
// degenerate on screen or the result is not finite.
func DragMove(axisDir, delta mgl32.Vec2) (float32, bool) {
	lenSq := axisDir.Dot(axisDir)
	if !(lenSq >= degenerateAxisEpsilon) {
		return 0, false
	}
	move := axisDir.Dot(delta) / lenSq
	if math.IsNaN(float64(move)) || math.IsInf(float64(move), 0) {
		return 0, false
	}
	return move, true
}

// FrameContext is everything the manipulator reads in one frame.
type FrameContext struct {
	Transform  core.Transform
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Pointer    input.Snapshot
}

type Result struct {
	State    State
	Matrices Matrices
	Axes     ProjectedAxes
	TipSizes [3]float32
	Position mgl32.Vec3
	Moved    bool
}

type Manipulator struct {
	Settings Settings
}

func NewManipulator(s Settings) Manipulator {
	return Manipulator{Settings: s}
}

// Step advances the interaction by one frame. It has no side effects; the
// caller writes Result.Position back to the entity when Moved is set.
func (m Manipulator) Step(f FrameContext, prev State) Result {
	mats := ComputeMatrices(f.Transform, f.View, f.Projection,
		float32(f.Pointer.Width), float32(f.Pointer.Height))
	axes := ProjectAxes(mats.ModelToViewport)

	next := State{Dragged: prev.Dragged}
	if f.Pointer.InCanvas {
		next.Hovered = SelectAxis(TipDistances(f.Pointer.Position, axes), m.Settings.MoveControlThreshold)
	}

	tips := [3]float32{m.Settings.TipSize, m.Settings.TipSize, m.Settings.TipSize}
	if i := next.Hovered.Index(); i >= 0 {
		tips[i] = m.Settings.HighlightTipSize
	}

	if f.Pointer.JustPressed && next.Hovered != AxisNone {
		next.Dragged = next.Hovered
	}
	// A drag ends on release wherever the pointer is.
	if f.Pointer.JustReleased || !f.Pointer.Down {
		next.Dragged = AxisNone
	}

	res := Result{
		State:    next,
		Matrices: mats,
		Axes:     axes,
		TipSizes: tips,
		Position: f.Transform.Position,
	}

	if i := next.Dragged.Index(); i >= 0 {
		dir := axes.Tips[i].Sub(axes.Origin)
		if move, ok := DragMove(dir, f.Pointer.Delta); ok && move != 0 {
			res.Position[i] += move
			res.Moved = true
		}
	}
	return res
}
