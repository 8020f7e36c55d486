package gizmo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-editor/viewport/rt/core"
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
	"github.com/gekko3d/gekko-editor/viewport/rt/gpu/gputest"
	"github.com/gekko3d/gekko-editor/viewport/rt/shaders"
)

func newTestRenderer(t *testing.T) (*gputest.Context, *Renderer, Matrices) {
	t.Helper()
	ctx := gputest.New()
	point, err := gpu.NewMaterial(ctx, shaders.PointMaterial(ctx.Dialect()))
	require.NoError(t, err)
	line, err := gpu.NewMaterial(ctx, shaders.LineMaterial(ctx.Dialect()))
	require.NoError(t, err)

	r, err := NewRenderer(ctx, point, line, DefaultStyle())
	require.NoError(t, err)

	view, proj := testView()
	return ctx, r, ComputeMatrices(core.NewTransform(), view, proj, 200, 100)
}

func TestRendererDrawOrderAndDepth(t *testing.T) {
	ctx, r, m := newTestRenderer(t)
	ctx.CapLog = nil

	r.Draw(m, [3]float32{20, 10, 10})

	require.Len(t, ctx.Draws, 3)
	assert.Equal(t, gpu.Points, ctx.Draws[0].Mode)
	assert.Equal(t, int32(1), ctx.Draws[0].Count)
	assert.Equal(t, gpu.Lines, ctx.Draws[1].Mode)
	assert.Equal(t, int32(6), ctx.Draws[1].Count)
	assert.Equal(t, gpu.Points, ctx.Draws[2].Mode)
	assert.Equal(t, int32(3), ctx.Draws[2].Count)

	for _, d := range ctx.Draws {
		assert.False(t, d.DepthTest)
		assert.Equal(t, m.MVP, d.Matrices["uMVP"])
		assert.Equal(t, m.MV, d.Matrices["uMV"])
		assert.Equal(t, m.Projection, d.Matrices["uP"])
	}
	assert.Equal(t, []string{"-depth", "+depth"}, ctx.CapLog)
	assert.True(t, ctx.Caps[gpu.DepthTest])
	assert.Empty(t, ctx.Enabled)
}

func TestRendererAxisColors(t *testing.T) {
	ctx, r, m := newTestRenderer(t)
	r.Draw(m, [3]float32{10, 10, 10})

	origin := ctx.Draws[0].Attribs
	assert.Equal(t, []float32{1, 1, 1, 1}, origin["vColor"])
	assert.Equal(t, []float32{10}, origin["vSize"])

	lines := ctx.Draws[1].Attribs
	require.Len(t, lines["vColor"], 24)
	assert.Equal(t, []float32{1, 0, 0, 1}, lines["vColor"][0:4])
	assert.Equal(t, []float32{0, 1, 0, 1}, lines["vColor"][8:12])
	assert.Equal(t, []float32{0, 0, 1, 1}, lines["vColor"][16:20])
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1}, lines["vPosition"])

	tips := ctx.Draws[2].Attribs
	assert.Equal(t, []float32{1, 0, 0, 1, 0, 1, 0, 1, 0, 0, 1, 1}, tips["vColor"])
	assert.Equal(t, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, tips["vPosition"])
}

func TestRendererTipSizesUploadedOnChange(t *testing.T) {
	ctx, r, m := newTestRenderer(t)

	r.Draw(m, [3]float32{10, 10, 10})
	r.Draw(m, [3]float32{10, 10, 10})
	assert.Equal(t, 1, ctx.Buffers[r.tipSize].Uploads)

	r.Draw(m, [3]float32{10, 20, 10})
	assert.Equal(t, 2, ctx.Buffers[r.tipSize].Uploads)
	assert.Equal(t, []float32{10, 20, 10}, ctx.Draws[len(ctx.Draws)-1].Attribs["vSize"])
}

func TestRendererRelease(t *testing.T) {
	ctx, r, _ := newTestRenderer(t)
	r.Release()
	_, _, _, buffers := ctx.Live()
	assert.Zero(t, buffers)
}

func TestNewRendererNeedsMaterials(t *testing.T) {
	_, err := NewRenderer(gputest.New(), nil, nil, DefaultStyle())
	assert.Error(t, err)
}
