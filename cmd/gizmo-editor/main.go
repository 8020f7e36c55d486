//go:build !js

// Command gizmo-editor opens a viewport with a translate gizmo on a demo
// entity.
package main

import (
	"flag"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	gekko "github.com/gekko3d/gekko-editor"
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu/glcore"
	"github.com/gekko3d/gekko-editor/viewport/rt/platform"
)

func main() {
	var (
		configPath = flag.String("config", "editor.toml", "TOML config file")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	cfg, err := gekko.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *debug {
		cfg.Log.Debug = true
	}

	window, err := platform.NewWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		log.Fatalf("window: %v", err)
	}
	defer window.Destroy()

	gl, err := glcore.New()
	if err != nil {
		log.Fatalf("gl: %v", err)
	}
	defer gl.Release()

	width, height := window.Size()
	app := gekko.NewAppBuilder().
		UseModule(
			gekko.LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Log.Debug},
			gekko.TimeModule{},
			gekko.EditorSessionModule{},
			gekko.ComponentRegistryModule{},
			gekko.GpuModule{Context: gl, ClearColor: [4]float32{0.12, 0.12, 0.14, 1}},
			gekko.AssetServerModule{},
			gekko.ViewportInputModule{Source: window, Width: width, Height: height},
			gekko.TransformGizmoModule{Settings: cfg.GizmoSettings(), Style: cfg.GizmoStyle()},
		).
		Build()

	logger := app.Logger()
	logger.Infof("OpenGL %s, canvas %dx%d", gl.Version(), width, height)

	assets, _ := gekko.Resource[gekko.AssetServer](app)
	defer assets.ReleaseAll()
	gizmo, _ := gekko.Resource[gekko.TransformGizmo](app)
	defer gizmo.Release()

	cmd := app.Commands()
	cmd.AddEntity(cfg.CameraComponent(), gekko.NameComponent{Name: "Camera"})
	cube := cmd.AddEntity(gekko.NewTransformComponent(mgl32.Vec3{}), gekko.NameComponent{Name: "Cube"})
	app.FlushCommands()

	session, _ := gekko.Resource[gekko.EditorSession](app)
	session.Inspect(cube)

	app.UseSystem(gekko.System(func(cmd *gekko.Commands) {
		if window.ShouldClose() {
			cmd.Quit()
		}
	}).InStage(gekko.Prelude))
	app.UseSystem(gekko.System(func(g *gekko.TransformGizmo) {
		window.SetHoverCursor(g.State().Active())
	}).InStage(gekko.PostUpdate))
	app.UseSystem(gekko.System(func() {
		window.SwapBuffers()
	}).InStage(gekko.Finale))

	app.Run()

	if tr, ok := gekko.GetComponent[gekko.TransformComponent](cmd, cube); ok {
		logger.Infof("cube left at %v", tr.Position)
	}
}
