// Package camera provides the first-person camera used to view the scene.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a movement relative to where the camera looks.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Pitch limits in degrees; looking straight up or down would flip the view.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// FirstPerson is a free-flying camera steered by yaw and pitch.
type FirstPerson struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3 // always unit length
	Up       mgl32.Vec3

	// Orientation in degrees. Yaw -90 looks down -Z.
	Yaw   float32
	Pitch float32

	FovY float32 // degrees
	Near float32
	Far  float32

	Speed       float32 // units per second
	Sensitivity float32 // degrees per pixel

	width, height int

	lastX, lastY float32
	firstMove    bool
	dt           float32
}

// NewFirstPerson returns a camera at (0,0,3) looking down -Z into a
// viewport of the given size.
func NewFirstPerson(width, height int) *FirstPerson {
	return &FirstPerson{
		Position:    mgl32.Vec3{0, 0, 3},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		Pitch:       0,
		FovY:        45,
		Near:        0.1,
		Far:         100,
		Speed:       2.5,
		Sensitivity: 0.1,
		width:       width,
		height:      height,
		lastX:       float32(width) / 2,
		lastY:       float32(height) / 2,
		firstMove:   true,
	}
}

// Spin turns the camera toward a new cursor position. The first call after
// construction or ResetSpin only records the position.
func (c *FirstPerson) Spin(x, y float32) {
	if c.firstMove {
		c.lastX, c.lastY = x, y
		c.firstMove = false
		return
	}

	// Screen y grows downwards, pitch grows upwards.
	dx := (x - c.lastX) * c.Sensitivity
	dy := (c.lastY - y) * c.Sensitivity
	c.lastX, c.lastY = x, y

	c.Yaw += dx
	c.Pitch += dy
	c.updateFront()
}

// ResetSpin makes the next Spin a snap, e.g. when dragging starts again.
func (c *FirstPerson) ResetSpin() {
	c.firstMove = true
}

// SetOrientation sets yaw and pitch in degrees. Pitch is clamped.
func (c *FirstPerson) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = pitch
	c.updateFront()
}

func (c *FirstPerson) updateFront() {
	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Pitch < MinPitch {
		c.Pitch = MinPitch
	}

	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// SetDeltaTime sets the frame duration in seconds used by MoveDirection.
// Call it once per frame before moving.
func (c *FirstPerson) SetDeltaTime(dt float32) {
	c.dt = dt
}

// MoveDirection moves Speed*dt along the view direction or strafes sideways.
func (c *FirstPerson) MoveDirection(d Direction) {
	step := c.Speed * c.dt
	switch d {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(step))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(step))
	case Left:
		c.Position = c.Position.Sub(c.right().Mul(step))
	case Right:
		c.Position = c.Position.Add(c.right().Mul(step))
	}
}

func (c *FirstPerson) right() mgl32.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// View returns the look-at matrix for the current position and front.
func (c *FirstPerson) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// Projection returns the perspective matrix for the current viewport.
func (c *FirstPerson) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}

// Aspect is width/height, or 1 for a degenerate viewport.
func (c *FirstPerson) Aspect() float32 {
	if c.width <= 0 || c.height <= 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// Resize records a new viewport size.
func (c *FirstPerson) Resize(width, height int) {
	c.width, c.height = width, height
}

// Size returns the viewport size.
func (c *FirstPerson) Size() (width, height int) {
	return c.width, c.height
}
