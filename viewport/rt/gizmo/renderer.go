package gizmo

import (
	"errors"

	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

type Style struct {
	PointSize  float32
	PointColor [4]float32
	// AxisColors are indexed X, Y, Z.
	AxisColors [3][4]float32
}

func DefaultStyle() Style {
	return Style{
		PointSize:  10,
		PointColor: [4]float32{1, 1, 1, 1},
		AxisColors: [3][4]float32{
			{1, 0, 0, 1},
			{0, 1, 0, 1},
			{0, 0, 1, 1},
		},
	}
}

type attribBuffer struct {
	name   string
	size   int32
	handle gpu.Handle
}

// Renderer draws the translate gizmo: a handle at the model origin, three
// unit axis lines and a sized point at each axis tip.
type Renderer struct {
	gl    gpu.Context
	point *gpu.Material
	line  *gpu.Material
	style Style

	originPos   gpu.Handle
	originSize  gpu.Handle
	originColor gpu.Handle
	linePos     gpu.Handle
	lineColor   gpu.Handle
	tipPos      gpu.Handle
	tipSize     gpu.Handle
	tipColor    gpu.Handle

	tipSizes    [3]float32
	tipsWritten bool
}

func NewRenderer(gl gpu.Context, point, line *gpu.Material, style Style) (*Renderer, error) {
	if gl == nil || point == nil || line == nil {
		return nil, errors.New("gizmo: renderer needs a context and point and line materials")
	}
	r := &Renderer{gl: gl, point: point, line: line, style: style}

	r.originPos = r.upload([]float32{0, 0, 0}, gpu.StaticDraw)
	r.originSize = r.upload([]float32{style.PointSize}, gpu.StaticDraw)
	r.originColor = r.upload(style.PointColor[:], gpu.StaticDraw)

	var linePos, lineColor, tipPos, tipColor []float32
	for i, a := range unitAxes {
		linePos = append(linePos, 0, 0, 0, a[0], a[1], a[2])
		c := style.AxisColors[i]
		lineColor = append(lineColor, c[:]...)
		lineColor = append(lineColor, c[:]...)
		tipPos = append(tipPos, a[0], a[1], a[2])
		tipColor = append(tipColor, c[:]...)
	}
	r.linePos = r.upload(linePos, gpu.StaticDraw)
	r.lineColor = r.upload(lineColor, gpu.StaticDraw)
	r.tipPos = r.upload(tipPos, gpu.StaticDraw)
	r.tipColor = r.upload(tipColor, gpu.StaticDraw)
	r.tipSize = r.gl.CreateBuffer()

	return r, nil
}

func (r *Renderer) upload(data []float32, usage gpu.BufferUsage) gpu.Handle {
	h := r.gl.CreateBuffer()
	r.gl.BindArrayBuffer(h)
	r.gl.ArrayBufferData(data, usage)
	return h
}

// Draw renders the gizmo on top of the scene. Depth testing is off while
// drawing and back on afterwards.
func (r *Renderer) Draw(m Matrices, tipSizes [3]float32) {
	if !r.tipsWritten || tipSizes != r.tipSizes {
		r.gl.BindArrayBuffer(r.tipSize)
		r.gl.ArrayBufferData(tipSizes[:], gpu.DynamicDraw)
		r.tipSizes = tipSizes
		r.tipsWritten = true
	}

	r.gl.Disable(gpu.DepthTest)

	r.draw(r.point, m, gpu.Points, 1,
		attribBuffer{"vPosition", 3, r.originPos},
		attribBuffer{"vSize", 1, r.originSize},
		attribBuffer{"vColor", 4, r.originColor})

	r.draw(r.line, m, gpu.Lines, 6,
		attribBuffer{"vPosition", 3, r.linePos},
		attribBuffer{"vColor", 4, r.lineColor})

	r.draw(r.point, m, gpu.Points, 3,
		attribBuffer{"vPosition", 3, r.tipPos},
		attribBuffer{"vSize", 1, r.tipSize},
		attribBuffer{"vColor", 4, r.tipColor})

	r.gl.Enable(gpu.DepthTest)
}

func (r *Renderer) draw(mat *gpu.Material, m Matrices, mode gpu.Primitive, count int32, buffers ...attribBuffer) {
	mat.Activate()
	mat.SetMatrix4("uMV", m.MV)
	mat.SetMatrix4("uP", m.Projection)
	mat.SetMatrix3("uMVn", m.MVn)
	mat.SetMatrix4("uMVP", m.MVP)
	for _, b := range buffers {
		r.gl.BindArrayBuffer(b.handle)
		mat.BindAttribute(b.name, b.size)
	}
	r.gl.DrawArrays(mode, 0, count)
	mat.Deactivate()
}

// Release deletes the vertex buffers. Materials belong to the caller.
func (r *Renderer) Release() {
	for _, h := range []*gpu.Handle{
		&r.originPos, &r.originSize, &r.originColor,
		&r.linePos, &r.lineColor,
		&r.tipPos, &r.tipSize, &r.tipColor,
	} {
		if *h != 0 {
			r.gl.DeleteBuffer(*h)
			*h = 0
		}
	}
}
