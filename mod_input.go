package gekko

import (
	"github.com/gekko3d/gekko-editor/viewport/rt/input"
)

// PointerSource delivers platform pointer events to a tracker. Poll runs
// once per frame before the snapshot is taken; event-driven sources may
// feed the tracker from their callbacks instead and leave Poll empty.
type PointerSource interface {
	Poll(t *input.Tracker)
}

type ViewportInputModule struct {
	Source PointerSource
	Width  int
	Height int
}

// ViewportInput holds this frame's pointer snapshot for the viewport canvas.
type ViewportInput struct {
	Pointer input.Snapshot

	tracker *input.Tracker
	source  PointerSource
}

func (v *ViewportInput) Tracker() *input.Tracker { return v.tracker }

// Aspect is width over height of the viewport, or 1 before it has a size.
func (v *ViewportInput) Aspect() float32 {
	if v.Pointer.Width <= 0 || v.Pointer.Height <= 0 {
		return 1
	}
	return float32(v.Pointer.Width) / float32(v.Pointer.Height)
}

func (mod ViewportInputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&ViewportInput{
		tracker: input.NewTracker(mod.Width, mod.Height),
		source:  mod.Source,
	})
	app.UseSystem(
		System(viewportInputSystem).
			InStage(PreUpdate),
	)
}

func viewportInputSystem(vi *ViewportInput) {
	if vi.source != nil {
		vi.source.Poll(vi.tracker)
	}
	vi.Pointer = vi.tracker.Frame()
}
