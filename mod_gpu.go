package gekko

import (
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

type GpuModule struct {
	Context    gpu.Context
	ClearColor [4]float32
}

// GpuState gives systems the render context. It is only touched from the
// app loop.
type GpuState struct {
	Ctx        gpu.Context
	ClearColor [4]float32
}

func (mod GpuModule) Install(app *App, cmd *Commands) {
	if mod.Context == nil {
		panic("GpuModule needs a gpu.Context")
	}
	cmd.AddResources(&GpuState{
		Ctx:        mod.Context,
		ClearColor: mod.ClearColor,
	})
	app.UseSystem(
		System(gpuBeginFrameSystem).
			InStage(PreRender),
	)
}

// gpuBeginFrameSystem needs ViewportInputModule for the canvas size.
func gpuBeginFrameSystem(gs *GpuState, vi *ViewportInput) {
	gs.Ctx.Viewport(0, 0, int32(vi.Pointer.Width), int32(vi.Pointer.Height))
	c := gs.ClearColor
	gs.Ctx.ClearColor(c[0], c[1], c[2], c[3])
	gs.Ctx.Enable(gpu.DepthTest)
	gs.Ctx.Clear()
}
