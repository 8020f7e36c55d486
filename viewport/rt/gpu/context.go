package gpu

import "github.com/go-gl/mathgl/mgl32"

// Handle names a GPU object (shader, program, buffer or texture). Zero is
// never a valid object.
type Handle uint32

// AttribLocation is a vertex attribute slot; NoAttrib means absent.
type AttribLocation int32

// UniformLocation is a resolved uniform; NoUniform means absent.
type UniformLocation int32

const (
	NoAttrib  AttribLocation  = -1
	NoUniform UniformLocation = -1
)

type Stage int

const (
	StageVertex Stage = iota
	StageFragment
	StageLink
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	}
	return "unknown"
}

type Primitive int

const (
	Points Primitive = iota
	Lines
	Triangles
)

type Capability int

const (
	DepthTest Capability = iota
	Blend
)

type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// Dialect selects which GLSL flavour a backend accepts.
type Dialect int

const (
	// GLSL ES 1.00, accepted by WebGL 1 and 2.
	DialectES100 Dialect = iota
	// GLSL 4.10 core, used by the desktop backend.
	DialectCore410
)

// TextureSampling is applied to the currently bound 2D texture.
type TextureSampling struct {
	MinFilter TextureFilter
	MagFilter TextureFilter
	Wrap      TextureWrap
}

type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
	FilterLinearMipmapLinear
)

type TextureWrap int

const (
	WrapRepeat TextureWrap = iota
	WrapClampToEdge
)

// Context is the slice of a GL-style API the editor renders through. All
// calls must come from the goroutine that owns the render surface.
type Context interface {
	Dialect() Dialect

	CreateShader(stage Stage) Handle
	ShaderSource(shader Handle, source string)
	CompileShader(shader Handle)
	ShaderCompiled(shader Handle) bool
	ShaderInfoLog(shader Handle) string
	DeleteShader(shader Handle)

	CreateProgram() Handle
	AttachShader(program, shader Handle)
	LinkProgram(program Handle)
	ProgramLinked(program Handle) bool
	ProgramInfoLog(program Handle) string
	DeleteProgram(program Handle)
	UseProgram(program Handle)

	AttribLocation(program Handle, name string) AttribLocation
	EnableVertexAttribArray(loc AttribLocation)
	DisableVertexAttribArray(loc AttribLocation)
	VertexAttribPointer(loc AttribLocation, size int32, stride, offset int32)

	UniformLocation(program Handle, name string) UniformLocation
	UniformMatrix4(loc UniformLocation, m mgl32.Mat4)
	UniformMatrix3(loc UniformLocation, m mgl32.Mat3)
	Uniform1i(loc UniformLocation, v int32)

	CreateBuffer() Handle
	BindArrayBuffer(buffer Handle)
	ArrayBufferData(data []float32, usage BufferUsage)
	DeleteBuffer(buffer Handle)

	CreateTexture() Handle
	ActiveTexture(unit uint32)
	BindTexture2D(texture Handle)
	// TexImage2D uploads RGBA8 pixels to the bound texture. A nil pix
	// allocates storage without data.
	TexImage2D(width, height int32, pix []byte)
	GenerateMipmap2D()
	SetTextureSampling(s TextureSampling)
	DeleteTexture(texture Handle)

	Enable(c Capability)
	Disable(c Capability)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawArrays(mode Primitive, first, count int32)
}
