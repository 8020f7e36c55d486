package gekko

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-editor/viewport/rt/gizmo"
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu/gputest"
	"github.com/gekko3d/gekko-editor/viewport/rt/input"
)

// scriptedPointer replays one tracker action per polled frame.
type scriptedPointer struct {
	steps []func(t *input.Tracker)
	frame int
}

func (s *scriptedPointer) Poll(t *input.Tracker) {
	if s.frame < len(s.steps) && s.steps[s.frame] != nil {
		s.steps[s.frame](t)
	}
	s.frame++
}

// newGizmoApp looks down -Z from z=5 through a 20x10 orthographic window on
// a 200x100 canvas, so one world unit is 10 pixels and the origin lands on
// pixel (100, 50).
func newGizmoApp(t *testing.T, ctx *gputest.Context, pointer PointerSource) (*App, EntityId) {
	t.Helper()
	var logs bytes.Buffer
	app := NewAppBuilder().UseModule(
		LoggingModule{Logger: NewWriterLogger("test", false, &logs, &logs)},
		EditorSessionModule{},
		GpuModule{Context: ctx},
		ViewportInputModule{Source: pointer, Width: 200, Height: 100},
		AssetServerModule{},
		TransformGizmoModule{},
	).Build()

	cmd := app.Commands()
	cmd.AddEntity(CameraComponent{
		Position:     mgl32.Vec3{0, 0, 5},
		Near:         0.1,
		Far:          100,
		Orthographic: true,
		OrthoHeight:  10,
	})
	eid := cmd.AddEntity(NewTransformComponent(mgl32.Vec3{}), NameComponent{Name: "Cube"})
	app.FlushCommands()

	session, ok := Resource[EditorSession](app)
	require.True(t, ok)
	session.Inspect(eid)
	return app, eid
}

func TestTransformGizmo_DragWritesPosition(t *testing.T) {
	ctx := gputest.New()
	pointer := &scriptedPointer{steps: []func(*input.Tracker){
		func(tr *input.Tracker) { tr.Enter(); tr.MoveTo(109, 50) },
		func(tr *input.Tracker) { tr.Press() },
		func(tr *input.Tracker) { tr.MoveTo(111, 50) },
		func(tr *input.Tracker) { tr.Release() },
	}}
	app, eid := newGizmoApp(t, ctx, pointer)
	g, ok := Resource[TransformGizmo](app)
	require.True(t, ok)
	cmd := app.Commands()

	app.Step()
	assert.Equal(t, gizmo.AxisX, g.State().Hovered)
	assert.Equal(t, gizmo.AxisNone, g.State().Dragged)
	assert.True(t, g.Visible())

	app.Step()
	assert.Equal(t, gizmo.AxisX, g.State().Dragged)

	app.Step()
	tr, ok := GetComponent[TransformComponent](cmd, eid)
	require.True(t, ok)
	assert.InDelta(t, 0.2, tr.Position.X(), 1e-3)
	assert.Zero(t, tr.Position.Y())
	assert.Zero(t, tr.Position.Z())
	assert.True(t, g.LastResult().Moved)
	assert.True(t, g.LastResult().Matrices.Model.ApproxEqual(mgl32.Translate3D(tr.Position.X(), 0, 0)))

	app.Step()
	assert.Equal(t, gizmo.AxisNone, g.State().Dragged)
	tr, _ = GetComponent[TransformComponent](cmd, eid)
	assert.InDelta(t, 0.2, tr.Position.X(), 1e-3)
}

func TestTransformGizmo_RendersOnTopOfScene(t *testing.T) {
	ctx := gputest.New()
	app, _ := newGizmoApp(t, ctx, nil)
	app.Step()

	require.Len(t, ctx.Draws, 3)
	for _, d := range ctx.Draws {
		assert.False(t, d.DepthTest)
	}
	assert.True(t, ctx.Caps[gpu.DepthTest])
}

func TestTransformGizmo_HiddenWithoutSelection(t *testing.T) {
	ctx := gputest.New()
	app, eid := newGizmoApp(t, ctx, nil)
	g, _ := Resource[TransformGizmo](app)
	session, _ := Resource[EditorSession](app)

	session.ClearInspection()
	app.Step()
	assert.False(t, g.Visible())
	assert.Empty(t, ctx.Draws)

	// An entity without a transform hides the gizmo too.
	cmd := app.Commands()
	cmd.RemoveComponents(eid, TransformComponent{})
	app.FlushCommands()
	session.Inspect(eid)
	app.Step()
	assert.False(t, g.Visible())
	assert.Empty(t, ctx.Draws)
}

func TestTransformGizmo_SelectionChangeResetsDrag(t *testing.T) {
	ctx := gputest.New()
	pointer := &scriptedPointer{steps: []func(*input.Tracker){
		func(tr *input.Tracker) { tr.Enter(); tr.MoveTo(109, 50); tr.Press() },
	}}
	app, _ := newGizmoApp(t, ctx, pointer)
	g, _ := Resource[TransformGizmo](app)
	session, _ := Resource[EditorSession](app)

	app.Step()
	require.Equal(t, gizmo.AxisX, g.State().Dragged)

	cmd := app.Commands()
	other := cmd.AddEntity(NewTransformComponent(mgl32.Vec3{5, 0, 0}))
	app.FlushCommands()
	session.Inspect(other)
	app.Step()

	assert.Equal(t, gizmo.AxisNone, g.State().Dragged)
	tr, _ := GetComponent[TransformComponent](cmd, other)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, tr.Position)
}

func TestTransformGizmo_MaterialFailurePanics(t *testing.T) {
	ctx := gputest.New()
	ctx.LinkFail = true
	ctx.LinkFailLog = "varying mismatch"

	var logs bytes.Buffer
	assert.Panics(t, func() {
		NewAppBuilder().UseModule(
			LoggingModule{Logger: NewWriterLogger("test", false, &logs, &logs)},
			EditorSessionModule{},
			GpuModule{Context: ctx},
			ViewportInputModule{Width: 200, Height: 100},
			AssetServerModule{},
			TransformGizmoModule{},
		).Build()
	})
	assert.Contains(t, logs.String(), "gizmo point material")
	assert.Contains(t, logs.String(), "varying mismatch")
}
