package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/mesh"
	"github.com/fuel3d/fuel/internal/engine/shader"
	"github.com/fuel3d/fuel/internal/engine/texture"
)

// Polygon draws caller-supplied interleaved vertices with an optional texture.
type Polygon struct {
	base
	primitive *mesh.Primitive
	texture   *texture.Texture
}

// NewPolygon uploads data described by layout. tex may be nil.
// The polygon takes ownership of program and tex.
func NewPolygon(dev gfx.Device, data []float32, layout gfx.Layout, program *shader.Program, tex *texture.Texture) *Polygon {
	return &Polygon{
		base:      newBase(dev, program),
		primitive: mesh.NewRawPrimitive(dev, data, layout),
		texture:   tex,
	}
}

// Kind returns KindPolygon.
func (p *Polygon) Kind() Kind { return KindPolygon }

// SetScale sets a uniform scale.
func (p *Polygon) SetScale(s float32) { p.transform.SetScale(s) }

// SetRotation sets Euler angles in degrees.
func (p *Polygon) SetRotation(x, y, z float32) { p.transform.SetRotation(x, y, z) }

// SetColor sets a vec3 uniform uploaded on every render.
func (p *Polygon) SetColor(uniform string, rgb mgl32.Vec3) { p.setColor(uniform, rgb) }

// Texture returns the bound texture, nil when untextured.
func (p *Polygon) Texture() *texture.Texture { return p.texture }

// Bounds returns the local-space bounds of the vertex data.
func (p *Polygon) Bounds() mesh.Bounds { return p.primitive.Bounds() }

// Render binds the texture, or texture 0 when untextured, and draws.
func (p *Polygon) Render(projection, view mgl32.Mat4) {
	p.begin(projection, view)
	if p.texture != nil {
		p.texture.Bind(0)
	} else {
		p.dev.BindTexture(0, 0)
	}
	p.primitive.Draw()
}

// Release frees every device resource the polygon owns.
func (p *Polygon) Release() {
	p.primitive.Release()
	if p.texture != nil {
		p.texture.Release()
	}
	p.releaseProgram()
}
