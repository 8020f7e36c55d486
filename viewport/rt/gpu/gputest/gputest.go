// Package gputest provides an in-memory gpu.Context that records every call
// so rendering code can be tested without a GPU.
package gputest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-editor/viewport/rt/gpu"
)

var (
	attribDecl  = regexp.MustCompile(`\b(?:attribute|in)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
)

type Shader struct {
	Stage    gpu.Stage
	Source   string
	Compiled bool
	Log      string
	Deleted  bool
}

type Program struct {
	Shaders  []gpu.Handle
	Linked   bool
	Log      string
	Deleted  bool
	Attribs  map[string]gpu.AttribLocation
	Uniforms map[string]gpu.UniformLocation
}

type Texture struct {
	Width, Height int32
	Pix           []byte
	Mipmaps       int
	Sampling      gpu.TextureSampling
	Uploads       int
	Deleted       bool
}

type Buffer struct {
	Data    []float32
	Usage   gpu.BufferUsage
	Uploads int
	Deleted bool
}

// Draw is a snapshot of the pipeline state at a DrawArrays call.
type Draw struct {
	Program   gpu.Handle
	Mode      gpu.Primitive
	First     int32
	Count     int32
	DepthTest bool
	// Attribs maps attribute name to the data of the buffer bound to it.
	Attribs  map[string][]float32
	Matrices map[string]mgl32.Mat4
}

// Context is a recording gpu.Context. Knobs ending in Fail make the
// matching call report failure.
type Context struct {
	DialectValue gpu.Dialect

	CreateShaderFail  bool
	CreateProgramFail bool
	LinkFail          bool
	LinkFailLog       string

	Shaders  map[gpu.Handle]*Shader
	Programs map[gpu.Handle]*Program
	Textures map[gpu.Handle]*Texture
	Buffers  map[gpu.Handle]*Buffer

	CurrentProgram gpu.Handle
	Enabled        map[gpu.AttribLocation]bool
	Pointers       map[gpu.AttribLocation]gpu.Handle
	Caps           map[gpu.Capability]bool
	CapLog         []string
	Mat4           map[gpu.UniformLocation]mgl32.Mat4
	Mat3           map[gpu.UniformLocation]mgl32.Mat3
	Ints           map[gpu.UniformLocation]int32
	Draws          []Draw
	ViewportRect   [4]int32
	Clears         int

	next         gpu.Handle
	nextUniform  gpu.UniformLocation
	boundBuffer  gpu.Handle
	activeUnit   uint32
	unitTextures map[uint32]gpu.Handle
}

func New() *Context {
	return &Context{
		DialectValue: gpu.DialectES100,
		Shaders:      map[gpu.Handle]*Shader{},
		Programs:     map[gpu.Handle]*Program{},
		Textures:     map[gpu.Handle]*Texture{},
		Buffers:      map[gpu.Handle]*Buffer{},
		Enabled:      map[gpu.AttribLocation]bool{},
		Pointers:     map[gpu.AttribLocation]gpu.Handle{},
		Caps:         map[gpu.Capability]bool{gpu.DepthTest: true},
		Mat4:         map[gpu.UniformLocation]mgl32.Mat4{},
		Mat3:         map[gpu.UniformLocation]mgl32.Mat3{},
		Ints:         map[gpu.UniformLocation]int32{},
		unitTextures: map[uint32]gpu.Handle{},
	}
}

func (c *Context) handle() gpu.Handle {
	c.next++
	return c.next
}

func (c *Context) Dialect() gpu.Dialect { return c.DialectValue }

func (c *Context) CreateShader(stage gpu.Stage) gpu.Handle {
	if c.CreateShaderFail {
		return 0
	}
	h := c.handle()
	c.Shaders[h] = &Shader{Stage: stage}
	return h
}

func (c *Context) ShaderSource(shader gpu.Handle, source string) {
	c.Shaders[shader].Source = source
}

// CompileShader accepts any source with a main function and balanced braces.
func (c *Context) CompileShader(shader gpu.Handle) {
	s := c.Shaders[shader]
	switch {
	case !strings.Contains(s.Source, "void main"):
		s.Log = "ERROR: 0:1: 'main' : function not defined"
	case strings.Count(s.Source, "{") != strings.Count(s.Source, "}"):
		s.Log = "ERROR: 0:1: '}' : syntax error"
	default:
		s.Compiled = true
		s.Log = ""
	}
}

func (c *Context) ShaderCompiled(shader gpu.Handle) bool { return c.Shaders[shader].Compiled }
func (c *Context) ShaderInfoLog(shader gpu.Handle) string { return c.Shaders[shader].Log }

func (c *Context) DeleteShader(shader gpu.Handle) {
	if s, ok := c.Shaders[shader]; ok {
		s.Deleted = true
	}
}

func (c *Context) CreateProgram() gpu.Handle {
	if c.CreateProgramFail {
		return 0
	}
	h := c.handle()
	c.Programs[h] = &Program{
		Attribs:  map[string]gpu.AttribLocation{},
		Uniforms: map[string]gpu.UniformLocation{},
	}
	return h
}

func (c *Context) AttachShader(program, shader gpu.Handle) {
	p := c.Programs[program]
	p.Shaders = append(p.Shaders, shader)
}

func (c *Context) LinkProgram(program gpu.Handle) {
	p := c.Programs[program]
	if c.LinkFail {
		p.Log = c.LinkFailLog
		if p.Log == "" {
			p.Log = "error: link failed"
		}
		return
	}
	var next gpu.AttribLocation
	for _, sh := range p.Shaders {
		s := c.Shaders[sh]
		if s.Stage == gpu.StageVertex {
			for _, m := range attribDecl.FindAllStringSubmatch(s.Source, -1) {
				if _, ok := p.Attribs[m[1]]; !ok {
					p.Attribs[m[1]] = next
					next++
				}
			}
		}
		for _, m := range uniformDecl.FindAllStringSubmatch(s.Source, -1) {
			if _, ok := p.Uniforms[m[1]]; !ok {
				p.Uniforms[m[1]] = c.nextUniform
				c.nextUniform++
			}
		}
	}
	p.Linked = true
}

func (c *Context) ProgramLinked(program gpu.Handle) bool   { return c.Programs[program].Linked }
func (c *Context) ProgramInfoLog(program gpu.Handle) string { return c.Programs[program].Log }

func (c *Context) DeleteProgram(program gpu.Handle) {
	if p, ok := c.Programs[program]; ok {
		p.Deleted = true
	}
}

func (c *Context) UseProgram(program gpu.Handle) { c.CurrentProgram = program }

func (c *Context) AttribLocation(program gpu.Handle, name string) gpu.AttribLocation {
	if loc, ok := c.Programs[program].Attribs[name]; ok {
		return loc
	}
	return gpu.NoAttrib
}

func (c *Context) EnableVertexAttribArray(loc gpu.AttribLocation)  { c.Enabled[loc] = true }
func (c *Context) DisableVertexAttribArray(loc gpu.AttribLocation) { delete(c.Enabled, loc) }

func (c *Context) VertexAttribPointer(loc gpu.AttribLocation, size int32, stride, offset int32) {
	c.Pointers[loc] = c.boundBuffer
}

func (c *Context) UniformLocation(program gpu.Handle, name string) gpu.UniformLocation {
	if loc, ok := c.Programs[program].Uniforms[name]; ok {
		return loc
	}
	return gpu.NoUniform
}

func (c *Context) UniformMatrix4(loc gpu.UniformLocation, m mgl32.Mat4) {
	if loc >= 0 {
		c.Mat4[loc] = m
	}
}

func (c *Context) UniformMatrix3(loc gpu.UniformLocation, m mgl32.Mat3) {
	if loc >= 0 {
		c.Mat3[loc] = m
	}
}

func (c *Context) Uniform1i(loc gpu.UniformLocation, v int32) {
	if loc >= 0 {
		c.Ints[loc] = v
	}
}

func (c *Context) CreateBuffer() gpu.Handle {
	h := c.handle()
	c.Buffers[h] = &Buffer{}
	return h
}

func (c *Context) BindArrayBuffer(buffer gpu.Handle) { c.boundBuffer = buffer }

func (c *Context) ArrayBufferData(data []float32, usage gpu.BufferUsage) {
	b, ok := c.Buffers[c.boundBuffer]
	if !ok {
		panic(fmt.Sprintf("gputest: no array buffer bound (got %d)", c.boundBuffer))
	}
	b.Data = append([]float32(nil), data...)
	b.Usage = usage
	b.Uploads++
}

func (c *Context) DeleteBuffer(buffer gpu.Handle) {
	if b, ok := c.Buffers[buffer]; ok {
		b.Deleted = true
	}
}

func (c *Context) CreateTexture() gpu.Handle {
	h := c.handle()
	c.Textures[h] = &Texture{}
	return h
}

func (c *Context) ActiveTexture(unit uint32)         { c.activeUnit = unit }
func (c *Context) BindTexture2D(texture gpu.Handle) { c.unitTextures[c.activeUnit] = texture }

// BoundTexture reports which texture is bound to a texture unit.
func (c *Context) BoundTexture(unit uint32) gpu.Handle { return c.unitTextures[unit] }

func (c *Context) bound() *Texture {
	t, ok := c.Textures[c.unitTextures[c.activeUnit]]
	if !ok {
		panic(fmt.Sprintf("gputest: no texture bound on unit %d", c.activeUnit))
	}
	return t
}

func (c *Context) TexImage2D(width, height int32, pix []byte) {
	t := c.bound()
	t.Width, t.Height = width, height
	t.Pix = append([]byte(nil), pix...)
	t.Uploads++
}

func (c *Context) GenerateMipmap2D()                        { c.bound().Mipmaps++ }
func (c *Context) SetTextureSampling(s gpu.TextureSampling) { c.bound().Sampling = s }

func (c *Context) DeleteTexture(texture gpu.Handle) {
	if t, ok := c.Textures[texture]; ok {
		t.Deleted = true
	}
}

func capName(cp gpu.Capability) string {
	switch cp {
	case gpu.DepthTest:
		return "depth"
	case gpu.Blend:
		return "blend"
	}
	return "unknown"
}

func (c *Context) Enable(cp gpu.Capability) {
	c.Caps[cp] = true
	c.CapLog = append(c.CapLog, "+"+capName(cp))
}

func (c *Context) Disable(cp gpu.Capability) {
	c.Caps[cp] = false
	c.CapLog = append(c.CapLog, "-"+capName(cp))
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.ViewportRect = [4]int32{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {}
func (c *Context) Clear()                        { c.Clears++ }

func (c *Context) DrawArrays(mode gpu.Primitive, first, count int32) {
	d := Draw{
		Program:   c.CurrentProgram,
		Mode:      mode,
		First:     first,
		Count:     count,
		DepthTest: c.Caps[gpu.DepthTest],
		Attribs:   map[string][]float32{},
		Matrices:  map[string]mgl32.Mat4{},
	}
	if p, ok := c.Programs[c.CurrentProgram]; ok {
		for name, loc := range p.Attribs {
			if !c.Enabled[loc] {
				continue
			}
			if b, ok := c.Buffers[c.Pointers[loc]]; ok {
				d.Attribs[name] = append([]float32(nil), b.Data...)
			}
		}
		for name, loc := range p.Uniforms {
			if m, ok := c.Mat4[loc]; ok {
				d.Matrices[name] = m
			}
		}
	}
	c.Draws = append(c.Draws, d)
}

// Live counts objects created and not yet deleted.
func (c *Context) Live() (shaders, programs, textures, buffers int) {
	for _, s := range c.Shaders {
		if !s.Deleted {
			shaders++
		}
	}
	for _, p := range c.Programs {
		if !p.Deleted {
			programs++
		}
	}
	for _, t := range c.Textures {
		if !t.Deleted {
			textures++
		}
	}
	for _, b := range c.Buffers {
		if !b.Deleted {
			buffers++
		}
	}
	return
}

var _ gpu.Context = (*Context)(nil)
