package gpu

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownSampler = errors.New("gpu: unknown texture sampler")

// TextureSampler names a sampler uniform and, optionally, the image that
// should replace its placeholder once loaded.
type TextureSampler struct {
	Name   string
	Source string
}

type MaterialDescriptor struct {
	VertexSource   string
	FragmentSource string
	Attributes     []string
	Uniforms       []string
	// Samplers get texture units in slice order.
	Samplers []TextureSampler
}

// DefaultMaterialDescriptor carries the attribute and uniform names every
// mesh shader in the editor is expected to understand.
func DefaultMaterialDescriptor(vertexSource, fragmentSource string) MaterialDescriptor {
	return MaterialDescriptor{
		VertexSource:   vertexSource,
		FragmentSource: fragmentSource,
		Attributes:     []string{"vPosition", "vNormal", "vColor", "vTexCoord"},
		Uniforms:       []string{"uM", "uV", "uP", "uMV", "uMVn", "uMVP", "uDirLight"},
	}
}

var placeholderPixel = []byte{255, 255, 255, 255}

type samplerSlot struct {
	name    string
	unit    uint32
	uniform UniformLocation
	texture Handle
	width   int32
	height  int32
}

type Material struct {
	gl       Context
	program  *Program
	samplers []*samplerSlot
	fetch    ImageFetcher

	mu      sync.Mutex
	pending []*TextureLoad
}

// NewMaterial compiles the descriptor's program and prepares one texture
// unit per sampler, each holding a 1x1 placeholder so the material can draw
// before any image arrives. Samplers with a source start loading at once.
func NewMaterial(gl Context, desc MaterialDescriptor) (*Material, error) {
	program, err := CompileProgram(gl, desc.VertexSource, desc.FragmentSource, desc.Attributes, desc.Uniforms)
	if err != nil {
		return nil, err
	}

	m := &Material{
		gl:      gl,
		program: program,
		fetch:   FetchImage,
	}

	for i, s := range desc.Samplers {
		slot := &samplerSlot{
			name:    s.Name,
			unit:    uint32(i),
			uniform: gl.UniformLocation(program.Handle(), s.Name),
		}
		if slot.uniform >= 0 {
			gl.Uniform1i(slot.uniform, int32(i))
		}
		slot.texture = gl.CreateTexture()
		gl.ActiveTexture(slot.unit)
		gl.BindTexture2D(slot.texture)
		gl.TexImage2D(1, 1, placeholderPixel)
		gl.SetTextureSampling(TextureSampling{MinFilter: FilterNearest, MagFilter: FilterNearest, Wrap: WrapClampToEdge})
		slot.width, slot.height = 1, 1
		m.samplers = append(m.samplers, slot)
	}

	for _, s := range desc.Samplers {
		if s.Source != "" {
			m.LoadTexture(context.Background(), s.Name, s.Source)
		}
	}

	return m, nil
}

func (m *Material) Program() *Program  { return m.program }
func (m *Material) Bindings() Bindings { return m.program.Bindings() }

// SetImageFetcher replaces how texture sources are fetched and decoded.
// It affects loads started afterwards.
func (m *Material) SetImageFetcher(f ImageFetcher) {
	m.mu.Lock()
	m.fetch = f
	m.mu.Unlock()
}

// Activate makes this material's program current and enables its attribute
// arrays. Buffers are left to the caller.
func (m *Material) Activate() {
	m.gl.UseProgram(m.program.Handle())
	for _, loc := range m.program.bindings.attributes {
		m.gl.EnableVertexAttribArray(loc)
	}
	for _, s := range m.samplers {
		m.gl.ActiveTexture(s.unit)
		m.gl.BindTexture2D(s.texture)
	}
}

// Deactivate disables the attribute arrays Activate enabled.
func (m *Material) Deactivate() {
	for _, loc := range m.program.bindings.attributes {
		m.gl.DisableVertexAttribArray(loc)
	}
}

func (m *Material) SetMatrix4(name string, v mgl32.Mat4) {
	if loc, ok := m.program.bindings.Uniform(name); ok {
		m.gl.UniformMatrix4(loc, v)
	}
}

func (m *Material) SetMatrix3(name string, v mgl32.Mat3) {
	if loc, ok := m.program.bindings.Uniform(name); ok {
		m.gl.UniformMatrix3(loc, v)
	}
}

// BindAttribute points a named attribute at the currently bound array
// buffer. Absent attributes are skipped.
func (m *Material) BindAttribute(name string, size int32) bool {
	loc, ok := m.program.bindings.Attribute(name)
	if !ok {
		return false
	}
	m.gl.VertexAttribPointer(loc, size, 0, 0)
	return true
}

// TextureSize reports the current dimensions of a sampler's texture; 1x1
// while the placeholder is in place.
func (m *Material) TextureSize(sampler string) (int32, int32, bool) {
	for _, s := range m.samplers {
		if s.name == sampler {
			return s.width, s.height, true
		}
	}
	return 0, 0, false
}

// LoadTexture fetches and decodes source in the background. The pixels are
// uploaded by the next ApplyTextures call after the load finishes.
func (m *Material) LoadTexture(ctx context.Context, sampler, source string) *TextureLoad {
	load := newTextureLoad(sampler, source)
	if m.slot(sampler) == nil {
		load.finish(nil, fmt.Errorf("%w: %q", ErrUnknownSampler, sampler))
		return load
	}

	m.mu.Lock()
	fetch := m.fetch
	m.pending = append(m.pending, load)
	m.mu.Unlock()

	go func() {
		img, err := fetch(ctx, source)
		load.finish(img, err)
	}()
	return load
}

// ApplyTextures uploads every finished load to its sampler's texture. It
// must run on the render thread. Failed loads keep the placeholder and are
// returned joined.
func (m *Material) ApplyTextures() error {
	m.mu.Lock()
	var ready []*TextureLoad
	pending := m.pending[:0]
	for _, load := range m.pending {
		if load.Done() {
			ready = append(ready, load)
		} else {
			pending = append(pending, load)
		}
	}
	m.pending = pending
	m.mu.Unlock()

	var errs []error
	for _, load := range ready {
		if err := load.Err(); err != nil {
			errs = append(errs, fmt.Errorf("texture %s (%s): %w", load.Sampler, load.Source, err))
			continue
		}
		slot := m.slot(load.Sampler)
		if slot == nil {
			continue
		}
		img := load.Image()
		bounds := img.Bounds()
		m.gl.ActiveTexture(slot.unit)
		m.gl.BindTexture2D(slot.texture)
		m.gl.TexImage2D(int32(bounds.Dx()), int32(bounds.Dy()), img.Pix)
		m.gl.GenerateMipmap2D()
		m.gl.SetTextureSampling(TextureSampling{
			MinFilter: FilterLinearMipmapLinear,
			MagFilter: FilterLinear,
			Wrap:      WrapRepeat,
		})
		slot.width, slot.height = int32(bounds.Dx()), int32(bounds.Dy())
	}
	return errors.Join(errs...)
}

// PendingTextures is the number of loads not yet applied.
func (m *Material) PendingTextures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

func (m *Material) slot(name string) *samplerSlot {
	for _, s := range m.samplers {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Release deletes the program, its shaders and every sampler texture.
func (m *Material) Release() {
	for _, s := range m.samplers {
		if s.texture != 0 {
			m.gl.DeleteTexture(s.texture)
			s.texture = 0
		}
	}
	m.program.Release()
}
