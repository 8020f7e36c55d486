package gekko

import (
	"fmt"

	"github.com/gekko3d/gekko-editor/viewport/rt/gizmo"
	"github.com/gekko3d/gekko-editor/viewport/rt/shaders"
)

// TransformGizmoModule shows a translate gizmo on the inspected entity.
// GpuModule, AssetServerModule, ViewportInputModule and EditorSessionModule
// must be installed before it.
type TransformGizmoModule struct {
	Settings gizmo.Settings
	Style    gizmo.Style
}

type TransformGizmo struct {
	manipulator gizmo.Manipulator
	renderer    *gizmo.Renderer

	PointMaterial AssetId
	LineMaterial  AssetId

	state   gizmo.State
	target  EntityId
	visible bool
	last    gizmo.Result
}

// State is the hovered and dragged axis after the latest update.
func (g *TransformGizmo) State() gizmo.State { return g.state }

// Visible reports whether the gizmo will be drawn this frame.
func (g *TransformGizmo) Visible() bool { return g.visible }

func (g *TransformGizmo) LastResult() gizmo.Result { return g.last }

func (g *TransformGizmo) Release() {
	if g.renderer != nil {
		g.renderer.Release()
	}
}

func (g *TransformGizmo) reset() {
	g.state = gizmo.State{}
	g.visible = false
}

func (mod TransformGizmoModule) Install(app *App, cmd *Commands) {
	gs, ok := Resource[GpuState](app)
	if !ok {
		panic("TransformGizmoModule requires GpuModule")
	}
	assets, ok := Resource[AssetServer](app)
	if !ok {
		panic("TransformGizmoModule requires AssetServerModule")
	}

	settings := mod.Settings
	if settings.MoveControlThreshold <= 0 {
		settings = gizmo.DefaultSettings()
	}
	style := mod.Style
	if style.PointSize <= 0 {
		style = gizmo.DefaultStyle()
	}

	dialect := gs.Ctx.Dialect()
	pointId, err := assets.CreateMaterial(shaders.PointMaterial(dialect))
	if err != nil {
		app.Logger().Errorf("gizmo point material: %v", err)
		panic(fmt.Errorf("gizmo point material: %w", err))
	}
	lineId, err := assets.CreateMaterial(shaders.LineMaterial(dialect))
	if err != nil {
		app.Logger().Errorf("gizmo line material: %v", err)
		panic(fmt.Errorf("gizmo line material: %w", err))
	}
	point, _ := assets.Material(pointId)
	line, _ := assets.Material(lineId)

	renderer, err := gizmo.NewRenderer(gs.Ctx, point, line, style)
	if err != nil {
		panic(err)
	}

	cmd.AddResources(&TransformGizmo{
		manipulator:   gizmo.NewManipulator(settings),
		renderer:      renderer,
		PointMaterial: pointId,
		LineMaterial:  lineId,
	})
	app.UseSystem(
		System(transformGizmoUpdateSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(transformGizmoRenderSystem).
			InStage(Render),
	)
}

// firstCamera returns the first camera in query order.
func firstCamera(cmd *Commands) (CameraComponent, bool) {
	var cam CameraComponent
	found := false
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, c *CameraComponent) bool {
		cam = *c
		found = true
		return false
	})
	return cam, found
}

func transformGizmoUpdateSystem(cmd *Commands, g *TransformGizmo, session *EditorSession, vi *ViewportInput) {
	eid, ok := session.Inspected()
	if !ok {
		g.reset()
		return
	}
	tr, ok := GetComponent[TransformComponent](cmd, eid)
	if !ok {
		g.reset()
		return
	}
	if eid != g.target {
		g.state = gizmo.State{}
		g.target = eid
	}

	camComp, ok := firstCamera(cmd)
	if !ok || vi.Pointer.Width <= 0 || vi.Pointer.Height <= 0 {
		g.reset()
		return
	}
	cam := camComp.Camera()
	frame := gizmo.FrameContext{
		Transform:  tr.Transform(),
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(vi.Aspect()),
		Pointer:    vi.Pointer,
	}

	res := g.manipulator.Step(frame, g.state)
	if res.Moved {
		// Only the position is written back; rotation and scale stay as they are.
		tr.Position = res.Position
		res.Matrices = gizmo.ComputeMatrices(tr.Transform(), frame.View, frame.Projection,
			float32(vi.Pointer.Width), float32(vi.Pointer.Height))
	}

	g.state = res.State
	g.last = res
	g.visible = true
}

func transformGizmoRenderSystem(g *TransformGizmo) {
	if !g.visible {
		return
	}
	g.renderer.Draw(g.last.Matrices, g.last.TipSizes)
}
