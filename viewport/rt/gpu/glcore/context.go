//go:build !js

// Package glcore implements gpu.Context on desktop OpenGL 4.1 core.
package glcore

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

// Context forwards to the GL context current on the calling thread.
// Core profile needs a bound vertex array object for attribute state, so
// one is created up front and kept bound.
type Context struct {
	vao uint32
}

// New loads the GL entry points. A context must already be current.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glcore: init: %w", err)
	}
	c := &Context{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

// Version reports the driver's GL version string.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (c *Context) Release() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) Dialect() gpu.Dialect { return gpu.DialectCore410 }

func (c *Context) CreateShader(stage gpu.Stage) gpu.Handle {
	switch stage {
	case gpu.StageVertex:
		return gpu.Handle(gl.CreateShader(gl.VERTEX_SHADER))
	case gpu.StageFragment:
		return gpu.Handle(gl.CreateShader(gl.FRAGMENT_SHADER))
	}
	return 0
}

func (c *Context) ShaderSource(shader gpu.Handle, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, csources, nil)
	free()
}

func (c *Context) CompileShader(shader gpu.Handle) { gl.CompileShader(uint32(shader)) }

func (c *Context) ShaderCompiled(shader gpu.Handle) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ShaderInfoLog(shader gpu.Handle) string {
	var logLength int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(shader), logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (c *Context) DeleteShader(shader gpu.Handle) { gl.DeleteShader(uint32(shader)) }

func (c *Context) CreateProgram() gpu.Handle { return gpu.Handle(gl.CreateProgram()) }

func (c *Context) AttachShader(program, shader gpu.Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (c *Context) LinkProgram(program gpu.Handle) { gl.LinkProgram(uint32(program)) }

func (c *Context) ProgramLinked(program gpu.Handle) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ProgramInfoLog(program gpu.Handle) string {
	var logLength int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	msg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(program), logLength, nil, gl.Str(msg))
	return strings.TrimRight(msg, "\x00")
}

func (c *Context) DeleteProgram(program gpu.Handle) { gl.DeleteProgram(uint32(program)) }
func (c *Context) UseProgram(program gpu.Handle)    { gl.UseProgram(uint32(program)) }

func (c *Context) AttribLocation(program gpu.Handle, name string) gpu.AttribLocation {
	return gpu.AttribLocation(gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00")))
}

func (c *Context) EnableVertexAttribArray(loc gpu.AttribLocation) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (c *Context) DisableVertexAttribArray(loc gpu.AttribLocation) {
	gl.DisableVertexAttribArray(uint32(loc))
}

// VertexAttribPointer reads float components from the bound array buffer;
// stride and offset are in bytes.
func (c *Context) VertexAttribPointer(loc gpu.AttribLocation, size int32, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, stride, uintptr(offset))
}

func (c *Context) UniformLocation(program gpu.Handle, name string) gpu.UniformLocation {
	return gpu.UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (c *Context) UniformMatrix4(loc gpu.UniformLocation, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *Context) UniformMatrix3(loc gpu.UniformLocation, m mgl32.Mat3) {
	gl.UniformMatrix3fv(int32(loc), 1, false, &m[0])
}

func (c *Context) Uniform1i(loc gpu.UniformLocation, v int32) { gl.Uniform1i(int32(loc), v) }

func (c *Context) CreateBuffer() gpu.Handle {
	var b uint32
	gl.GenBuffers(1, &b)
	return gpu.Handle(b)
}

func (c *Context) BindArrayBuffer(buffer gpu.Handle) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(buffer)) }

func (c *Context) ArrayBufferData(data []float32, usage gpu.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, bufferUsage(usage))
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), bufferUsage(usage))
}

func (c *Context) DeleteBuffer(buffer gpu.Handle) {
	b := uint32(buffer)
	gl.DeleteBuffers(1, &b)
}

func (c *Context) CreateTexture() gpu.Handle {
	var t uint32
	gl.GenTextures(1, &t)
	return gpu.Handle(t)
}

func (c *Context) ActiveTexture(unit uint32)         { gl.ActiveTexture(gl.TEXTURE0 + unit) }
func (c *Context) BindTexture2D(texture gpu.Handle) { gl.BindTexture(gl.TEXTURE_2D, uint32(texture)) }

func (c *Context) TexImage2D(width, height int32, pix []byte) {
	var ptr = gl.Ptr(nil)
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (c *Context) GenerateMipmap2D() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func (c *Context) SetTextureSampling(s gpu.TextureSampling) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, textureFilter(s.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, textureFilter(s.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, textureWrap(s.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, textureWrap(s.Wrap))
}

func (c *Context) DeleteTexture(texture gpu.Handle) {
	t := uint32(texture)
	gl.DeleteTextures(1, &t)
}

func (c *Context) Enable(capability gpu.Capability)  { gl.Enable(capabilityEnum(capability)) }
func (c *Context) Disable(capability gpu.Capability) { gl.Disable(capabilityEnum(capability)) }

func (c *Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (c *Context) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (c *Context) Clear()                             { gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

// DrawArrays also turns on shader-controlled point sizes, which core
// profile leaves off by default.
func (c *Context) DrawArrays(mode gpu.Primitive, first, count int32) {
	if mode == gpu.Points {
		gl.Enable(gl.PROGRAM_POINT_SIZE)
	}
	gl.DrawArrays(primitive(mode), first, count)
}

func primitive(p gpu.Primitive) uint32 {
	switch p {
	case gpu.Points:
		return gl.POINTS
	case gpu.Lines:
		return gl.LINES
	}
	return gl.TRIANGLES
}

func capabilityEnum(c gpu.Capability) uint32 {
	if c == gpu.Blend {
		return gl.BLEND
	}
	return gl.DEPTH_TEST
}

func bufferUsage(u gpu.BufferUsage) uint32 {
	if u == gpu.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func textureFilter(f gpu.TextureFilter) int32 {
	switch f {
	case gpu.FilterNearest:
		return gl.NEAREST
	case gpu.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	return gl.LINEAR
}

func textureWrap(w gpu.TextureWrap) int32 {
	if w == gpu.WrapClampToEdge {
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}

var _ gpu.Context = (*Context)(nil)
