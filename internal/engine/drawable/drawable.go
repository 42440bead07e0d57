// Package drawable defines the renderable scene objects: polygons, lights and
// imported models.
//
// Every variant renders the same way: model matrix from its transform,
// mvp = projection * view * model, bind the program and set "mvp", bind the
// texture (or none) on unit 0, draw each primitive. Rendering leaves the
// program, vertex array and texture unit bindings changed.
package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/shader"
	"github.com/fuel3d/fuel/internal/engine/transform"
)

// Kind identifies a drawable variant.
type Kind int

const (
	KindPolygon Kind = iota
	KindLight
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindLight:
		return "light"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Drawable is implemented only by Polygon, Light and Model.
type Drawable interface {
	SetPosition(x, y, z float32)
	// SetScale is ignored by models.
	SetScale(s float32)
	// SetColor stores an rgb uniform uploaded on every render. Ignored by models.
	SetColor(uniform string, rgb mgl32.Vec3)
	Kind() Kind
	Render(projection, view mgl32.Mat4)
	// Release frees every GPU object the drawable owns.
	Release()

	sealed()
}

type tint struct {
	name string
	rgb  mgl32.Vec3
}

// base carries the state shared by every variant.
type base struct {
	dev       gfx.Device
	transform transform.Transform
	program   *shader.Program
	colors    []tint
}

func newBase(dev gfx.Device, program *shader.Program) base {
	return base{dev: dev, transform: transform.New(), program: program}
}

func (b *base) sealed() {}

// SetPosition moves the drawable in world space.
func (b *base) SetPosition(x, y, z float32) { b.transform.SetPosition(x, y, z) }

// Transform returns a copy of the current transform.
func (b *base) Transform() transform.Transform { return b.transform }

// Program returns the shader program the drawable renders with.
func (b *base) Program() *shader.Program { return b.program }

func (b *base) setColor(name string, rgb mgl32.Vec3) {
	for i := range b.colors {
		if b.colors[i].name == name {
			b.colors[i].rgb = rgb
			return
		}
	}
	b.colors = append(b.colors, tint{name: name, rgb: rgb})
}

// begin binds the program and uploads mvp and stored colors.
func (b *base) begin(projection, view mgl32.Mat4) {
	mvp := projection.Mul4(view).Mul4(b.transform.Matrix())
	b.program.Use()
	b.program.SetMVP(mvp)
	for _, c := range b.colors {
		b.program.SetVec3(c.name, c.rgb)
	}
}

func (b *base) releaseProgram() {
	if b.program != nil {
		b.program.Release()
	}
}
