//go:build js && wasm

// Command gizmo-editor-wasm runs the gizmo viewport on a page canvas with
// id "viewport".
package main

import (
	"log"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-editor"
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu/webgl"
	"github.com/gekko3d/gekko-editor/viewport/rt/platform"
)

func main() {
	el := js.Global().Get("document").Call("getElementById", "viewport")
	if el.IsNull() || el.IsUndefined() {
		log.Fatal("canvas #viewport not found")
	}

	gl, err := webgl.New(el)
	if err != nil {
		log.Fatalf("webgl: %v", err)
	}
	canvas := platform.NewCanvas(el)
	width, height := canvas.Size()

	cfg := gekko.DefaultConfig()
	app := gekko.NewAppBuilder().
		UseModule(
			gekko.LoggingModule{Prefix: "editor"},
			gekko.TimeModule{},
			gekko.EditorSessionModule{},
			gekko.ComponentRegistryModule{},
			gekko.GpuModule{Context: gl, ClearColor: [4]float32{0.12, 0.12, 0.14, 1}},
			gekko.AssetServerModule{},
			gekko.ViewportInputModule{Source: canvas, Width: width, Height: height},
			gekko.TransformGizmoModule{Settings: cfg.GizmoSettings(), Style: cfg.GizmoStyle()},
		).
		Build()

	cmd := app.Commands()
	cmd.AddEntity(cfg.CameraComponent(), gekko.NameComponent{Name: "Camera"})
	cube := cmd.AddEntity(gekko.NewTransformComponent(mgl32.Vec3{}), gekko.NameComponent{Name: "Cube"})
	app.FlushCommands()

	session, _ := gekko.Resource[gekko.EditorSession](app)
	session.Inspect(cube)

	app.UseSystem(gekko.System(func(g *gekko.TransformGizmo) {
		canvas.SetHoverCursor(g.State().Active())
	}).InStage(gekko.PostUpdate))

	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		if app.Quitting() {
			frame.Release()
			canvas.Release()
			return nil
		}
		app.Step()
		js.Global().Call("requestAnimationFrame", frame)
		return nil
	})
	js.Global().Call("requestAnimationFrame", frame)

	select {}
}
