package gpu

import (
	"fmt"
	"strings"
)

// CompileError reports a failed shader stage or program link together with
// the driver's diagnostic log.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	msg := strings.TrimSpace(e.Log)
	if e.Stage == StageLink {
		return fmt.Sprintf("gpu: program link failed: %s", msg)
	}
	return fmt.Sprintf("gpu: %s shader compile failed: %s", e.Stage, msg)
}

// Bindings maps symbolic attribute and uniform names to resolved locations.
// It is filled once at compile time; names the program does not expose are
// simply absent.
type Bindings struct {
	attributes map[string]AttribLocation
	uniforms   map[string]UniformLocation
}

func (b Bindings) Attribute(name string) (AttribLocation, bool) {
	loc, ok := b.attributes[name]
	return loc, ok
}

func (b Bindings) Uniform(name string) (UniformLocation, bool) {
	loc, ok := b.uniforms[name]
	return loc, ok
}

// UniformOrNone returns NoUniform for absent names; setters ignore it.
func (b Bindings) UniformOrNone(name string) UniformLocation {
	if loc, ok := b.uniforms[name]; ok {
		return loc
	}
	return NoUniform
}

func (b Bindings) AttributeCount() int { return len(b.attributes) }
func (b Bindings) UniformCount() int   { return len(b.uniforms) }

// Program is a compiled and linked GPU program. It owns both shader stages
// until Release.
type Program struct {
	ctx      Context
	handle   Handle
	vertex   Handle
	fragment Handle
	bindings Bindings
}

func (p *Program) Handle() Handle     { return p.handle }
func (p *Program) Bindings() Bindings { return p.bindings }

// Release deletes the program and its shader stages.
func (p *Program) Release() {
	if p == nil || p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.ctx.DeleteShader(p.vertex)
	p.ctx.DeleteShader(p.fragment)
	p.handle, p.vertex, p.fragment = 0, 0, 0
}

// CompileProgram compiles both stages, links them and resolves the given
// attribute and uniform names. It either returns a usable program or a
// *CompileError; objects created before the failure are deleted.
func CompileProgram(ctx Context, vertexSource, fragmentSource string, attributeNames, uniformNames []string) (*Program, error) {
	vshader, err := compileStage(ctx, StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}

	fshader, err := compileStage(ctx, StageFragment, fragmentSource)
	if err != nil {
		ctx.DeleteShader(vshader)
		return nil, err
	}

	program := ctx.CreateProgram()
	if program == 0 {
		ctx.DeleteShader(vshader)
		ctx.DeleteShader(fshader)
		return nil, &CompileError{Stage: StageLink, Log: "failed to create shader program"}
	}

	ctx.AttachShader(program, vshader)
	ctx.AttachShader(program, fshader)
	ctx.LinkProgram(program)
	if !ctx.ProgramLinked(program) {
		log := ctx.ProgramInfoLog(program)
		ctx.DeleteProgram(program)
		ctx.DeleteShader(vshader)
		ctx.DeleteShader(fshader)
		return nil, &CompileError{Stage: StageLink, Log: log}
	}

	ctx.UseProgram(program)

	bindings := Bindings{
		attributes: make(map[string]AttribLocation, len(attributeNames)),
		uniforms:   make(map[string]UniformLocation, len(uniformNames)),
	}
	for _, name := range attributeNames {
		loc := ctx.AttribLocation(program, name)
		if loc < 0 {
			continue
		}
		bindings.attributes[name] = loc
		ctx.EnableVertexAttribArray(loc)
	}
	for _, name := range uniformNames {
		loc := ctx.UniformLocation(program, name)
		if loc < 0 {
			continue
		}
		bindings.uniforms[name] = loc
	}

	return &Program{
		ctx:      ctx,
		handle:   program,
		vertex:   vshader,
		fragment: fshader,
		bindings: bindings,
	}, nil
}

func compileStage(ctx Context, stage Stage, source string) (Handle, error) {
	shader := ctx.CreateShader(stage)
	if shader == 0 {
		return 0, &CompileError{Stage: stage, Log: fmt.Sprintf("failed to create %s shader", stage)}
	}
	ctx.ShaderSource(shader, source)
	ctx.CompileShader(shader)
	if !ctx.ShaderCompiled(shader) {
		log := ctx.ShaderInfoLog(shader)
		ctx.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}
