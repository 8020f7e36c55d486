package input

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTrackerDeltaBetweenFrames(t *testing.T) {
	tr := NewTracker(200, 100)
	tr.Enter()
	tr.MoveTo(10, 10)

	s := tr.Frame()
	assert.True(t, s.InCanvas)
	assert.Equal(t, mgl32.Vec2{10, 10}, s.Position)
	assert.Equal(t, mgl32.Vec2{0, 0}, s.Delta)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, 100, s.Height)

	tr.MoveTo(11, 12)
	tr.MoveTo(13, 9)
	s = tr.Frame()
	assert.Equal(t, mgl32.Vec2{3, -1}, s.Delta)

	s = tr.Frame()
	assert.Equal(t, mgl32.Vec2{0, 0}, s.Delta)
}

func TestTrackerPressEdges(t *testing.T) {
	tr := NewTracker(200, 100)
	tr.Enter()
	tr.Press()

	s := tr.Frame()
	assert.True(t, s.Down)
	assert.True(t, s.JustPressed)
	assert.False(t, s.JustReleased)

	s = tr.Frame()
	assert.True(t, s.Down)
	assert.False(t, s.JustPressed)

	tr.Release()
	s = tr.Frame()
	assert.False(t, s.Down)
	assert.True(t, s.JustReleased)

	s = tr.Frame()
	assert.False(t, s.JustReleased)
}

func TestTrackerPressOutsideCanvasIgnored(t *testing.T) {
	tr := NewTracker(200, 100)
	tr.Press()
	s := tr.Frame()
	assert.False(t, s.Down)
	assert.False(t, s.JustPressed)
}

func TestTrackerReleaseOutsideCanvasHonored(t *testing.T) {
	tr := NewTracker(200, 100)
	tr.Enter()
	tr.Press()
	tr.Frame()

	tr.Leave()
	tr.Release()
	s := tr.Frame()
	assert.False(t, s.InCanvas)
	assert.False(t, s.Down)
	assert.True(t, s.JustReleased)
}

func TestTrackerClickWithinOneFrame(t *testing.T) {
	tr := NewTracker(200, 100)
	tr.Enter()
	tr.Press()
	tr.Release()
	s := tr.Frame()
	assert.True(t, s.JustPressed)
	assert.True(t, s.JustReleased)
	assert.False(t, s.Down)
}

func TestTrackerResize(t *testing.T) {
	tr := NewTracker(0, 0)
	tr.Resize(640, 480)
	s := tr.Frame()
	assert.Equal(t, 640, s.Width)
	assert.Equal(t, 480, s.Height)
}

func TestTrackerConcurrentEvents(t *testing.T) {
	tr := NewTracker(200, 100)
	tr.Enter()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.MoveTo(float32(i), float32(j))
				tr.Press()
				tr.Release()
			}
		}(i)
	}
	for i := 0; i < 50; i++ {
		tr.Frame()
	}
	wg.Wait()
	s := tr.Frame()
	assert.False(t, s.Down)
}
