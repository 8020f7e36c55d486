//go:build js && wasm

// Package platform feeds DOM pointer events of the editor canvas into an
// input.Tracker.
package platform

import (
	"syscall/js"

	"github.com/gekko3d/gekko-editor/viewport/rt/input"
)

// Canvas listens to pointer events on a canvas element. Listeners run on
// the JS event loop and only touch the tracker.
type Canvas struct {
	el      js.Value
	tracker *input.Tracker
	subs    []listener
	hover   bool
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

func NewCanvas(el js.Value) *Canvas {
	return &Canvas{el: el}
}

// Size is the canvas drawing buffer size. It is synced to the CSS size
// times the device pixel ratio on every call.
func (c *Canvas) Size() (int, int) {
	dpr := js.Global().Get("devicePixelRatio").Float()
	if dpr <= 0 {
		dpr = 1
	}
	w := int(c.el.Get("clientWidth").Float() * dpr)
	h := int(c.el.Get("clientHeight").Float() * dpr)
	if c.el.Get("width").Int() != w || c.el.Get("height").Int() != h {
		c.el.Set("width", w)
		c.el.Set("height", h)
	}
	return w, h
}

// Poll attaches listeners on first use and keeps the tracker's size current.
func (c *Canvas) Poll(t *input.Tracker) {
	if c.tracker != t {
		c.attach(t)
	}
	t.Resize(c.Size())
}

func (c *Canvas) attach(t *input.Tracker) {
	c.Release()
	c.tracker = t

	toPixels := func(ev js.Value) (float32, float32) {
		rect := c.el.Call("getBoundingClientRect")
		dpr := js.Global().Get("devicePixelRatio").Float()
		if dpr <= 0 {
			dpr = 1
		}
		x := (ev.Get("clientX").Float() - rect.Get("left").Float()) * dpr
		y := (ev.Get("clientY").Float() - rect.Get("top").Float()) * dpr
		return float32(x), float32(y)
	}

	c.listen(c.el, "pointerenter", func(ev js.Value) {
		t.MoveTo(toPixels(ev))
		t.Enter()
	})
	c.listen(c.el, "pointerleave", func(js.Value) { t.Leave() })
	c.listen(c.el, "pointerdown", func(ev js.Value) {
		if ev.Get("button").Int() != 0 {
			return
		}
		t.MoveTo(toPixels(ev))
		t.Press()
	})
	// Moves and releases are taken from the window so a drag that leaves
	// the canvas keeps tracking and still ends.
	win := js.Global().Get("window")
	c.listen(win, "pointermove", func(ev js.Value) { t.MoveTo(toPixels(ev)) })
	c.listen(win, "pointerup", func(ev js.Value) {
		if ev.Get("button").Int() == 0 {
			t.Release()
		}
	})
}

func (c *Canvas) listen(target js.Value, event string, fn func(ev js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	target.Call("addEventListener", event, f)
	c.subs = append(c.subs, listener{target: target, event: event, fn: f})
}

func (c *Canvas) SetHoverCursor(hover bool) {
	if hover == c.hover {
		return
	}
	c.hover = hover
	cursor := "default"
	if hover {
		cursor = "pointer"
	}
	c.el.Get("style").Set("cursor", cursor)
}

func (c *Canvas) Release() {
	for _, l := range c.subs {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	c.subs = nil
	c.tracker = nil
}
