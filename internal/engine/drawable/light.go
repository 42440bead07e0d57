package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fuel3d/fuel/internal/engine/gfx"
	"github.com/fuel3d/fuel/internal/engine/mesh"
	"github.com/fuel3d/fuel/internal/engine/shader"
)

// LightShader is the program name lights are normally built with.
const LightShader = "light"

// Light is an untextured cube, usually tinted through SetColor.
type Light struct {
	base
	cube *mesh.Primitive
}

// NewLight uploads the fixed 36-vertex cube. The light takes ownership of program.
func NewLight(dev gfx.Device, program *shader.Program) *Light {
	return &Light{
		base: newBase(dev, program),
		cube: mesh.NewRawPrimitive(dev, mesh.CubeVertices(), mesh.CubeLayout),
	}
}

// Kind returns KindLight.
func (l *Light) Kind() Kind { return KindLight }

// SetScale sets the size of the marker cube.
func (l *Light) SetScale(s float32) { l.transform.SetScale(s) }

// SetColor sets a vec3 uniform uploaded on every render.
func (l *Light) SetColor(uniform string, rgb mgl32.Vec3) { l.setColor(uniform, rgb) }

// Render draws the marker cube untextured.
func (l *Light) Render(projection, view mgl32.Mat4) {
	l.begin(projection, view)
	l.dev.BindTexture(0, 0)
	l.cube.Draw()
}

// Release frees the cube and the program.
func (l *Light) Release() {
	l.cube.Release()
	l.releaseProgram()
}
