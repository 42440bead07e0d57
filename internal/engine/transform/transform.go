// Package transform holds the position, rotation and scale of a drawable.
package transform

import "github.com/go-gl/mathgl/mgl32"

// Transform places a drawable in world space.
// Rotation is in Euler degrees applied X, then Y, then Z.
// Scale is uniform; zero is accepted and collapses the drawable to a point.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    float32
}

// New returns an identity transform.
func New() Transform {
	return Transform{Scale: 1}
}

// Get returns the components of the transform.
func (t *Transform) Get() (position, rotation mgl32.Vec3, scale float32) {
	return t.Position, t.Rotation, t.Scale
}

// SetPosition sets the world-space translation.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = mgl32.Vec3{x, y, z}
}

// SetRotation sets per-axis Euler angles in degrees.
func (t *Transform) SetRotation(x, y, z float32) {
	t.Rotation = mgl32.Vec3{x, y, z}
}

// SetScale sets a uniform scale. Zero is allowed.
func (t *Transform) SetScale(s float32) {
	t.Scale = s
}

// Matrix composes translate * rotate * scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	rot := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z())).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y()))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X())))

	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot).
		Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
}
