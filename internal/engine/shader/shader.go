// Package shader compiles GLSL programs and sets their uniforms by name.
package shader

import (
	"fmt"
	"io/fs"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/logger"
)

// File extensions of the vertex and fragment stage sources.
const (
	VertexExt   = ".vs"
	FragmentExt = ".fs"
)

// Program is a linked shader program.
// A program that failed to compile or link has a zero handle; binding it and
// setting uniforms on it is harmless and draws nothing useful.
type Program struct {
	dev    gfx.Device
	name   string
	handle gfx.Program
}

// New compiles and links a program from source. Compile and link errors are
// logged and leave the program invalid rather than failing the caller.
func New(dev gfx.Device, name, vertexSrc, fragmentSrc string) *Program {
	p := &Program{dev: dev, name: name}
	log := logger.Named("shader").With(zap.String("program", name))

	vert, err := dev.CompileShader(gfx.StageVertex, vertexSrc)
	if err != nil {
		log.Error("shader compilation failed", zap.Error(err))
		return p
	}
	defer dev.DeleteShader(vert)

	frag, err := dev.CompileShader(gfx.StageFragment, fragmentSrc)
	if err != nil {
		log.Error("shader compilation failed", zap.Error(err))
		return p
	}
	defer dev.DeleteShader(frag)

	prog, err := dev.LinkProgram(vert, frag)
	if err != nil {
		log.Error("shader link failed", zap.Error(err))
		return p
	}

	p.handle = prog
	log.Debug("shader program ready", zap.Uint32("handle", uint32(prog)))
	return p
}

// LoadFiles reads <name>.vs and <name>.fs from fsys and builds the program.
// A missing source file is an error; a source that does not compile is not.
func LoadFiles(dev gfx.Device, fsys fs.FS, name string) (*Program, error) {
	vs, err := fs.ReadFile(fsys, name+VertexExt)
	if err != nil {
		return nil, fmt.Errorf("reading vertex shader %s: %w", name, err)
	}
	fsrc, err := fs.ReadFile(fsys, name+FragmentExt)
	if err != nil {
		return nil, fmt.Errorf("reading fragment shader %s: %w", name, err)
	}
	return New(dev, name, string(vs), string(fsrc)), nil
}

// Name returns the name the program was loaded under.
func (p *Program) Name() string { return p.name }

// Handle returns the device program, zero when invalid.
func (p *Program) Handle() gfx.Program { return p.handle }

// Valid reports whether compilation and linking succeeded.
func (p *Program) Valid() bool { return p.handle != 0 }

// Use makes the program current.
func (p *Program) Use() {
	p.dev.UseProgram(p.handle)
}

// location resolves a uniform on every call; missing names return -1.
func (p *Program) location(name string) int32 {
	if p.handle == 0 {
		return -1
	}
	return p.dev.UniformLocation(p.handle, name)
}

// The setters write to the current program, so Use must be called first.
// Unknown uniform names are ignored.

// SetBool writes v as an int uniform, 1 for true.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform1i(loc, v)
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform1f(loc, v)
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform3f(loc, v)
	}
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	if loc := p.location(name); loc >= 0 {
		p.dev.Uniform4f(loc, v)
	}
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc := p.location(name); loc >= 0 {
		p.dev.UniformMatrix4(loc, m)
	}
}

// SetMVP sets the "mvp" uniform.
func (p *Program) SetMVP(m mgl32.Mat4) {
	p.SetMat4("mvp", m)
}

// Release deletes the program. It is safe to call more than once.
func (p *Program) Release() {
	if p.handle != 0 {
		p.dev.DeleteProgram(p.handle)
		p.handle = 0
	}
}
