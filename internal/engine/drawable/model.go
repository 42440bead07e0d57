package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/mesh"
	"github.com/fuel3d/fuel/internal/engine/shader"
)

// HasTextureUniform tells the model shader whether the primitive being drawn
// has a base-color texture bound.
const HasTextureUniform = "hasTexture"

// Model is an imported mesh hierarchy. All meshes share one transform.
// Only the position can be changed; scale and color are ignored.
type Model struct {
	base
	Name   string
	Meshes []*mesh.Mesh
}

// NewModel takes ownership of program and meshes.
func NewModel(dev gfx.Device, name string, program *shader.Program, meshes []*mesh.Mesh) *Model {
	return &Model{
		base:   newBase(dev, program),
		Name:   name,
		Meshes: meshes,
	}
}

// Kind returns KindModel.
func (m *Model) Kind() Kind { return KindModel }

// SetScale is a no-op; models keep the scale of their source document.
func (m *Model) SetScale(float32) {}

// SetColor is a no-op; model colors come from textures.
func (m *Model) SetColor(string, mgl32.Vec3) {}

// Bounds unions the local-space bounds of every mesh.
func (m *Model) Bounds() mesh.Bounds {
	var b mesh.Bounds
	for i, ms := range m.Meshes {
		if i == 0 {
			b = ms.Bounds()
			continue
		}
		b = b.Union(ms.Bounds())
	}
	return b
}

// PrimitiveCount returns the number of primitives across all meshes.
func (m *Model) PrimitiveCount() int {
	n := 0
	for _, ms := range m.Meshes {
		n += len(ms.Primitives)
	}
	return n
}

// Render draws every primitive. Untextured primitives get hasTexture false
// and texture 0 bound, so the shader falls back to its default color.
func (m *Model) Render(projection, view mgl32.Mat4) {
	m.begin(projection, view)
	for _, ms := range m.Meshes {
		ms.Draw(m.prepare)
	}
}

func (m *Model) prepare(p *mesh.Primitive) {
	m.program.SetBool(HasTextureUniform, p.Texture != nil)
	if p.Texture == nil {
		m.dev.BindTexture(0, 0)
	}
}

// Release frees every mesh and the program.
func (m *Model) Release() {
	for _, ms := range m.Meshes {
		ms.Release()
	}
	m.releaseProgram()
}

var (
	_ Drawable = (*Polygon)(nil)
	_ Drawable = (*Light)(nil)
	_ Drawable = (*Model)(nil)
)
