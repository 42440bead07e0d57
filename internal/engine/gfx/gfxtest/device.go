// Package gfxtest provides a recording gfx.Device that needs no GPU.
package gfxtest

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fuel3d/fuel/internal/engine/gfx"
)

var uniformDecl = regexp.MustCompile(`uniform\s+\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)

// ShaderRecord is a compiled shader.
type ShaderRecord struct {
	Stage   gfx.ShaderStage
	Source  string
	Deleted bool
}

// ProgramRecord is a linked program and the uniform values written to it.
type ProgramRecord struct {
	Uniforms map[string]int32 // declared name -> location
	Values   map[string]any
	Deleted  bool
}

// BufferRecord is an uploaded vertex stream.
type BufferRecord struct {
	Buffers  gfx.Buffers
	Vertices []float32
	Layout   gfx.Layout
	Indices  []uint32
	Deleted  bool
}

// TextureRecord is an uploaded texture.
type TextureRecord struct {
	Width, Height int
	Pixels        []byte
	Params        gfx.TextureParams
	Deleted       bool
}

// Draw is one recorded draw call with the state bound at the time.
type Draw struct {
	Program gfx.Program
	VAO     gfx.VertexArray
	Texture gfx.Texture // bound to unit 0
	Indexed bool
	Count   int32
	MVP     mgl32.Mat4 // value of the "mvp" uniform of Program, if set

	// Uniforms snapshots every value set on Program at draw time.
	Uniforms map[string]any
}

type uniformRef struct {
	program gfx.Program
	name    string
}

// Device records every call. Shaders whose source lacks "void main" fail to compile.
type Device struct {
	Shaders  map[gfx.Shader]*ShaderRecord
	Programs map[gfx.Program]*ProgramRecord
	Arrays   map[gfx.VertexArray]*BufferRecord
	Textures map[gfx.Texture]*TextureRecord

	Current     gfx.Program
	BoundVAO    gfx.VertexArray
	Bound       map[uint32]gfx.Texture
	Draws       []Draw
	Clears      []mgl32.Vec4
	PolygonMode gfx.PolygonMode
	ViewportW   int
	ViewportH   int
	Pixels      []byte // returned by ReadPixels when set

	// PendingErr is returned once by Err.
	PendingErr error

	nextID    uint32
	nextLoc   int32
	locations map[int32]uniformRef
}

var _ gfx.Device = (*Device)(nil)

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Shaders:   make(map[gfx.Shader]*ShaderRecord),
		Programs:  make(map[gfx.Program]*ProgramRecord),
		Arrays:    make(map[gfx.VertexArray]*BufferRecord),
		Textures:  make(map[gfx.Texture]*TextureRecord),
		Bound:     make(map[uint32]gfx.Texture),
		locations: make(map[int32]uniformRef),
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) CompileShader(stage gfx.ShaderStage, source string) (gfx.Shader, error) {
	if !strings.Contains(source, "void main") {
		return 0, fmt.Errorf("%s shader: 0:1: error: missing main", stage)
	}
	s := gfx.Shader(d.id())
	d.Shaders[s] = &ShaderRecord{Stage: stage, Source: source}
	return s, nil
}

func (d *Device) LinkProgram(vertex, fragment gfx.Shader) (gfx.Program, error) {
	vs, ok1 := d.Shaders[vertex]
	fs, ok2 := d.Shaders[fragment]
	if !ok1 || !ok2 || vs.Deleted || fs.Deleted {
		return 0, errors.New("link: attached shader is not compiled")
	}
	if vs.Stage != gfx.StageVertex || fs.Stage != gfx.StageFragment {
		return 0, errors.New("link: shader stages do not match")
	}

	p := gfx.Program(d.id())
	rec := &ProgramRecord{Uniforms: make(map[string]int32), Values: make(map[string]any)}
	for _, src := range []string{vs.Source, fs.Source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, seen := rec.Uniforms[m[1]]; seen {
				continue
			}
			d.nextLoc++
			rec.Uniforms[m[1]] = d.nextLoc
			d.locations[d.nextLoc] = uniformRef{program: p, name: m[1]}
		}
	}
	d.Programs[p] = rec
	return p, nil
}

func (d *Device) DeleteShader(s gfx.Shader) {
	if rec, ok := d.Shaders[s]; ok {
		rec.Deleted = true
	}
}

func (d *Device) DeleteProgram(p gfx.Program) {
	if rec, ok := d.Programs[p]; ok {
		rec.Deleted = true
	}
}

func (d *Device) UseProgram(p gfx.Program) { d.Current = p }

func (d *Device) UniformLocation(p gfx.Program, name string) int32 {
	rec, ok := d.Programs[p]
	if !ok {
		return -1
	}
	if loc, ok := rec.Uniforms[name]; ok {
		return loc
	}
	return -1
}

// set mimics GL: writes go to the current program; unknown locations are ignored.
func (d *Device) set(loc int32, v any) {
	ref, ok := d.locations[loc]
	if !ok || ref.program != d.Current {
		return
	}
	d.Programs[ref.program].Values[ref.name] = v
}

func (d *Device) Uniform1i(loc int32, v int32) { d.set(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32) { d.set(loc, v) }
func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) { d.set(loc, v) }
func (d *Device) Uniform4f(loc int32, v mgl32.Vec4) { d.set(loc, v) }
func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) { d.set(loc, m) }

func (d *Device) CreateBuffers(vertices []float32, layout gfx.Layout, indices []uint32) gfx.Buffers {
	b := gfx.Buffers{VAO: gfx.VertexArray(d.id()), VBO: gfx.Buffer(d.id())}
	if indices != nil {
		b.EBO = gfx.Buffer(d.id())
	}
	d.Arrays[b.VAO] = &BufferRecord{
		Buffers:  b,
		Vertices: append([]float32(nil), vertices...),
		Layout:   layout,
		Indices:  append([]uint32(nil), indices...),
	}
	return b
}

func (d *Device) DeleteBuffers(b gfx.Buffers) {
	if rec, ok := d.Arrays[b.VAO]; ok {
		rec.Deleted = true
	}
}

func (d *Device) BindVertexArray(vao gfx.VertexArray) { d.BoundVAO = vao }

func (d *Device) DrawArrays(first, count int32) { d.draw(false, count) }

func (d *Device) DrawElements(count int32) { d.draw(true, count) }

func (d *Device) draw(indexed bool, count int32) {
	dr := Draw{
		Program: d.Current,
		VAO:     d.BoundVAO,
		Texture: d.Bound[0],
		Indexed: indexed,
		Count:   count,
	}
	if rec, ok := d.Programs[d.Current]; ok {
		dr.Uniforms = maps.Clone(rec.Values)
	}
	if mvp, ok := dr.Uniforms["mvp"]; ok {
		dr.MVP, _ = mvp.(mgl32.Mat4)
	}
	d.Draws = append(d.Draws, dr)
}

func (d *Device) CreateTexture(pixels []byte, width, height int, params gfx.TextureParams) gfx.Texture {
	t := gfx.Texture(d.id())
	d.Textures[t] = &TextureRecord{
		Width:  width,
		Height: height,
		Pixels: append([]byte(nil), pixels...),
		Params: params,
	}
	return t
}

func (d *Device) BindTexture(unit uint32, tex gfx.Texture) { d.Bound[unit] = tex }

func (d *Device) DeleteTexture(tex gfx.Texture) {
	if rec, ok := d.Textures[tex]; ok {
		rec.Deleted = true
	}
}

func (d *Device) Clear(color mgl32.Vec4) { d.Clears = append(d.Clears, color) }

func (d *Device) SetPolygonMode(mode gfx.PolygonMode) { d.PolygonMode = mode }

func (d *Device) Viewport(width, height int) {
	d.ViewportW = width
	d.ViewportH = height
}

func (d *Device) ReadPixels(width, height int) []byte {
	if d.Pixels != nil {
		return d.Pixels
	}
	return make([]byte, width*height*4)
}

func (d *Device) Err() error {
	err := d.PendingErr
	d.PendingErr = nil
	return err
}

// Uniform returns the last value written to a program uniform.
func (d *Device) Uniform(p gfx.Program, name string) (any, bool) {
	rec, ok := d.Programs[p]
	if !ok {
		return nil, false
	}
	v, ok := rec.Values[name]
	return v, ok
}

// Live counts programs, vertex arrays and textures that were created and not deleted.
func (d *Device) Live() int {
	n := 0
	for _, p := range d.Programs {
		if !p.Deleted {
			n++
		}
	}
	for _, a := range d.Arrays {
		if !a.Deleted {
			n++
		}
	}
	for _, t := range d.Textures {
		if !t.Deleted {
			n++
		}
	}
	return n
}

// ResetDraws forgets recorded draws and clears.
func (d *Device) ResetDraws() {
	d.Draws = nil
	d.Clears = nil
}
