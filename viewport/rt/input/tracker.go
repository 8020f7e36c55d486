package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Snapshot is the pointer state latched for one frame. Position is in
// viewport pixels with the origin at the top-left corner.
type Snapshot struct {
	InCanvas     bool
	Position     mgl32.Vec2
	Delta        mgl32.Vec2
	Down         bool
	JustPressed  bool
	JustReleased bool
	Width        int
	Height       int
}

// Tracker collects raw pointer events, possibly from callback goroutines,
// and hands the render loop one Snapshot per frame. It keeps only the
// latest state; intermediate moves between frames are folded into Delta.
type Tracker struct {
	mu sync.Mutex

	inCanvas bool
	pos      mgl32.Vec2
	lastPos  mgl32.Vec2
	seen     bool
	down     bool
	pressed  bool
	released bool
	width    int
	height   int
}

func NewTracker(width, height int) *Tracker {
	return &Tracker{width: width, height: height}
}

func (t *Tracker) MoveTo(x, y float32) {
	t.mu.Lock()
	t.pos = mgl32.Vec2{x, y}
	if !t.seen {
		t.lastPos = t.pos
		t.seen = true
	}
	t.mu.Unlock()
}

func (t *Tracker) Enter() {
	t.mu.Lock()
	t.inCanvas = true
	t.mu.Unlock()
}

func (t *Tracker) Leave() {
	t.mu.Lock()
	t.inCanvas = false
	t.mu.Unlock()
}

// Press only counts while the pointer is over the canvas.
func (t *Tracker) Press() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.inCanvas || t.down {
		return
	}
	t.down = true
	t.pressed = true
}

// Release is honored anywhere so a drag that leaves the canvas still ends.
func (t *Tracker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.down {
		return
	}
	t.down = false
	t.released = true
}

func (t *Tracker) Resize(width, height int) {
	t.mu.Lock()
	t.width, t.height = width, height
	t.mu.Unlock()
}

// Frame latches the current state and resets the per-frame edges.
func (t *Tracker) Frame() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		InCanvas:     t.inCanvas,
		Position:     t.pos,
		Delta:        t.pos.Sub(t.lastPos),
		Down:         t.down,
		JustPressed:  t.pressed,
		JustReleased: t.released,
		Width:        t.width,
		Height:       t.height,
	}
	t.lastPos = t.pos
	t.pressed = false
	t.released = false
	return s
}
