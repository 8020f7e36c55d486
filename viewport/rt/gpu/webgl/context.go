//go:build js && wasm

// Package webgl implements gpu.Context on a browser WebGL context.
package webgl

import (
	"encoding/binary"
	"errors"
	"math"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

// Context maps numeric handles onto the JS objects WebGL hands out.
type Context struct {
	gl     js.Value
	consts glConsts

	next     uint32
	objects  map[gpu.Handle]js.Value
	uniforms map[gpu.UniformLocation]js.Value
	nextLoc  gpu.UniformLocation
}

type glConsts struct {
	vertexShader, fragmentShader         int
	compileStatus, linkStatus            int
	arrayBuffer, staticDraw, dynamicDraw int
	floatType, unsignedByte              int
	points, lines, triangles             int
	depthTest, blend                     int
	colorBufferBit, depthBufferBit       int
	texture0, texture2D                  int
	rgba                                 int
	textureMinFilter, textureMagFilter   int
	textureWrapS, textureWrapT           int
	linear, nearest, linearMipmapLinear  int
	repeat, clampToEdge                  int
}

// New wraps the "webgl" context of a canvas element.
func New(canvas js.Value) (*Context, error) {
	gl := canvas.Call("getContext", "webgl")
	if gl.IsUndefined() || gl.IsNull() {
		return nil, errors.New("webgl: context unavailable")
	}
	c := &Context{
		gl:       gl,
		objects:  make(map[gpu.Handle]js.Value),
		uniforms: make(map[gpu.UniformLocation]js.Value),
	}
	c.loadConsts()
	return c, nil
}

func (c *Context) loadConsts() {
	get := func(name string) int { return c.gl.Get(name).Int() }
	c.consts = glConsts{
		vertexShader:       get("VERTEX_SHADER"),
		fragmentShader:     get("FRAGMENT_SHADER"),
		compileStatus:      get("COMPILE_STATUS"),
		linkStatus:         get("LINK_STATUS"),
		arrayBuffer:        get("ARRAY_BUFFER"),
		staticDraw:         get("STATIC_DRAW"),
		dynamicDraw:        get("DYNAMIC_DRAW"),
		floatType:          get("FLOAT"),
		unsignedByte:       get("UNSIGNED_BYTE"),
		points:             get("POINTS"),
		lines:              get("LINES"),
		triangles:          get("TRIANGLES"),
		depthTest:          get("DEPTH_TEST"),
		blend:              get("BLEND"),
		colorBufferBit:     get("COLOR_BUFFER_BIT"),
		depthBufferBit:     get("DEPTH_BUFFER_BIT"),
		texture0:           get("TEXTURE0"),
		texture2D:          get("TEXTURE_2D"),
		rgba:               get("RGBA"),
		textureMinFilter:   get("TEXTURE_MIN_FILTER"),
		textureMagFilter:   get("TEXTURE_MAG_FILTER"),
		textureWrapS:       get("TEXTURE_WRAP_S"),
		textureWrapT:       get("TEXTURE_WRAP_T"),
		linear:             get("LINEAR"),
		nearest:            get("NEAREST"),
		linearMipmapLinear: get("LINEAR_MIPMAP_LINEAR"),
		repeat:             get("REPEAT"),
		clampToEdge:        get("CLAMP_TO_EDGE"),
	}
}

func (c *Context) track(v js.Value) gpu.Handle {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	c.next++
	h := gpu.Handle(c.next)
	c.objects[h] = v
	return h
}

func (c *Context) object(h gpu.Handle) js.Value {
	if v, ok := c.objects[h]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) forget(h gpu.Handle) js.Value {
	v := c.object(h)
	delete(c.objects, h)
	return v
}

func (c *Context) Dialect() gpu.Dialect { return gpu.DialectES100 }

func (c *Context) CreateShader(stage gpu.Stage) gpu.Handle {
	switch stage {
	case gpu.StageVertex:
		return c.track(c.gl.Call("createShader", c.consts.vertexShader))
	case gpu.StageFragment:
		return c.track(c.gl.Call("createShader", c.consts.fragmentShader))
	}
	return 0
}

func (c *Context) ShaderSource(shader gpu.Handle, source string) {
	c.gl.Call("shaderSource", c.object(shader), source)
}

func (c *Context) CompileShader(shader gpu.Handle) { c.gl.Call("compileShader", c.object(shader)) }

func (c *Context) ShaderCompiled(shader gpu.Handle) bool {
	return c.gl.Call("getShaderParameter", c.object(shader), c.consts.compileStatus).Bool()
}

func (c *Context) ShaderInfoLog(shader gpu.Handle) string {
	return c.gl.Call("getShaderInfoLog", c.object(shader)).String()
}

func (c *Context) DeleteShader(shader gpu.Handle) { c.gl.Call("deleteShader", c.forget(shader)) }

func (c *Context) CreateProgram() gpu.Handle { return c.track(c.gl.Call("createProgram")) }

func (c *Context) AttachShader(program, shader gpu.Handle) {
	c.gl.Call("attachShader", c.object(program), c.object(shader))
}

func (c *Context) LinkProgram(program gpu.Handle) { c.gl.Call("linkProgram", c.object(program)) }

func (c *Context) ProgramLinked(program gpu.Handle) bool {
	return c.gl.Call("getProgramParameter", c.object(program), c.consts.linkStatus).Bool()
}

func (c *Context) ProgramInfoLog(program gpu.Handle) string {
	return c.gl.Call("getProgramInfoLog", c.object(program)).String()
}

func (c *Context) DeleteProgram(program gpu.Handle) { c.gl.Call("deleteProgram", c.forget(program)) }
func (c *Context) UseProgram(program gpu.Handle)    { c.gl.Call("useProgram", c.object(program)) }

func (c *Context) AttribLocation(program gpu.Handle, name string) gpu.AttribLocation {
	return gpu.AttribLocation(c.gl.Call("getAttribLocation", c.object(program), name).Int())
}

func (c *Context) EnableVertexAttribArray(loc gpu.AttribLocation) {
	c.gl.Call("enableVertexAttribArray", int(loc))
}

func (c *Context) DisableVertexAttribArray(loc gpu.AttribLocation) {
	c.gl.Call("disableVertexAttribArray", int(loc))
}

func (c *Context) VertexAttribPointer(loc gpu.AttribLocation, size int32, stride, offset int32) {
	c.gl.Call("vertexAttribPointer", int(loc), size, c.consts.floatType, false, stride, offset)
}

// UniformLocation hands out small integers for WebGLUniformLocation
// objects; a missing uniform maps to gpu.NoUniform.
func (c *Context) UniformLocation(program gpu.Handle, name string) gpu.UniformLocation {
	v := c.gl.Call("getUniformLocation", c.object(program), name)
	if v.IsNull() || v.IsUndefined() {
		return gpu.NoUniform
	}
	loc := c.nextLoc
	c.nextLoc++
	c.uniforms[loc] = v
	return loc
}

func (c *Context) uniform(loc gpu.UniformLocation) (js.Value, bool) {
	v, ok := c.uniforms[loc]
	return v, ok
}

func (c *Context) UniformMatrix4(loc gpu.UniformLocation, m mgl32.Mat4) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniformMatrix4fv", u, false, float32Array(m[:]))
	}
}

func (c *Context) UniformMatrix3(loc gpu.UniformLocation, m mgl32.Mat3) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniformMatrix3fv", u, false, float32Array(m[:]))
	}
}

func (c *Context) Uniform1i(loc gpu.UniformLocation, v int32) {
	if u, ok := c.uniform(loc); ok {
		c.gl.Call("uniform1i", u, v)
	}
}

func (c *Context) CreateBuffer() gpu.Handle { return c.track(c.gl.Call("createBuffer")) }

func (c *Context) BindArrayBuffer(buffer gpu.Handle) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, c.object(buffer))
}

func (c *Context) ArrayBufferData(data []float32, usage gpu.BufferUsage) {
	u := c.consts.staticDraw
	if usage == gpu.DynamicDraw {
		u = c.consts.dynamicDraw
	}
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), u)
}

func (c *Context) DeleteBuffer(buffer gpu.Handle) { c.gl.Call("deleteBuffer", c.forget(buffer)) }

func (c *Context) CreateTexture() gpu.Handle { return c.track(c.gl.Call("createTexture")) }

func (c *Context) ActiveTexture(unit uint32) {
	c.gl.Call("activeTexture", c.consts.texture0+int(unit))
}

func (c *Context) BindTexture2D(texture gpu.Handle) {
	c.gl.Call("bindTexture", c.consts.texture2D, c.object(texture))
}

func (c *Context) TexImage2D(width, height int32, pix []byte) {
	var data any
	if len(pix) > 0 {
		arr := js.Global().Get("Uint8Array").New(len(pix))
		js.CopyBytesToJS(arr, pix)
		data = arr
	}
	c.gl.Call("texImage2D", c.consts.texture2D, 0, c.consts.rgba, width, height, 0,
		c.consts.rgba, c.consts.unsignedByte, data)
}

func (c *Context) GenerateMipmap2D() { c.gl.Call("generateMipmap", c.consts.texture2D) }

func (c *Context) SetTextureSampling(s gpu.TextureSampling) {
	c.gl.Call("texParameteri", c.consts.texture2D, c.consts.textureMinFilter, c.filter(s.MinFilter))
	c.gl.Call("texParameteri", c.consts.texture2D, c.consts.textureMagFilter, c.filter(s.MagFilter))
	c.gl.Call("texParameteri", c.consts.texture2D, c.consts.textureWrapS, c.wrap(s.Wrap))
	c.gl.Call("texParameteri", c.consts.texture2D, c.consts.textureWrapT, c.wrap(s.Wrap))
}

func (c *Context) DeleteTexture(texture gpu.Handle) { c.gl.Call("deleteTexture", c.forget(texture)) }

func (c *Context) Enable(capability gpu.Capability)  { c.gl.Call("enable", c.capability(capability)) }
func (c *Context) Disable(capability gpu.Capability) { c.gl.Call("disable", c.capability(capability)) }

func (c *Context) Viewport(x, y, width, height int32) { c.gl.Call("viewport", x, y, width, height) }
func (c *Context) ClearColor(r, g, b, a float32)      { c.gl.Call("clearColor", r, g, b, a) }

func (c *Context) Clear() {
	c.gl.Call("clear", c.consts.colorBufferBit|c.consts.depthBufferBit)
}

func (c *Context) DrawArrays(mode gpu.Primitive, first, count int32) {
	m := c.consts.triangles
	switch mode {
	case gpu.Points:
		m = c.consts.points
	case gpu.Lines:
		m = c.consts.lines
	}
	c.gl.Call("drawArrays", m, first, count)
}

func (c *Context) capability(capability gpu.Capability) int {
	if capability == gpu.Blend {
		return c.consts.blend
	}
	return c.consts.depthTest
}

func (c *Context) filter(f gpu.TextureFilter) int {
	switch f {
	case gpu.FilterNearest:
		return c.consts.nearest
	case gpu.FilterLinearMipmapLinear:
		return c.consts.linearMipmapLinear
	}
	return c.consts.linear
}

func (c *Context) wrap(w gpu.TextureWrap) int {
	if w == gpu.WrapClampToEdge {
		return c.consts.clampToEdge
	}
	return c.consts.repeat
}

// float32Array copies data into a new JS Float32Array.
func float32Array(data []float32) js.Value {
	buf := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	bytes := js.Global().Get("Uint8Array").New(len(buf))
	js.CopyBytesToJS(bytes, buf)
	return js.Global().Get("Float32Array").New(bytes.Get("buffer"))
}

var _ gpu.Context = (*Context)(nil)
