// Package camera provides the fly camera driven by keyboard and mouse input.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard movement direction.
type Movement int

// Movement directions.
const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Defaults.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0

	MaxPitch float32 = 89.0
	MinZoom  float32 = 1.0
	MaxZoom  float32 = 45.0
)

// Camera is a free-flying Euler-angle camera. Angles are in degrees.
// front, right and up are derived from yaw and pitch and recomputed on every
// change to either.
type Camera struct {
	Position mgl32.Vec3
	WorldUp  mgl32.Vec3

	MovementSpeed    float32
	MouseSensitivity float32

	yaw   float32
	pitch float32
	zoom  float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

// New creates a camera at position looking along yaw/pitch.
func New(position, worldUp mgl32.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:         position,
		WorldUp:          worldUp,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		yaw:              yaw,
		pitch:            pitch,
		zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// NewDefault creates a camera at position looking down -Z with +Y up.
func NewDefault(position mgl32.Vec3) *Camera {
	return New(position, mgl32.Vec3{0, 1, 0}, DefaultYaw, DefaultPitch)
}

func (c *Camera) Yaw() float32      { return c.yaw }
func (c *Camera) Pitch() float32    { return c.pitch }
func (c *Camera) Zoom() float32     { return c.zoom }
func (c *Camera) Front() mgl32.Vec3 { return c.front }
func (c *Camera) Right() mgl32.Vec3 { return c.right }
func (c *Camera) Up() mgl32.Vec3    { return c.up }

// SetOrientation sets yaw and pitch directly.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = pitch
	c.updateVectors()
}

// SetZoom sets the field of view, clamped to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(zoom float32) {
	c.zoom = clamp(zoom, MinZoom, MaxZoom)
}

// ViewMatrix returns the look-at matrix for the current position and basis.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// Projection returns a perspective matrix using zoom as the vertical field of view.
func (c *Camera) Projection(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

// ProcessKeyboard moves the camera along front or right by speed*dt.
func (c *Camera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by the mouse offsets. With
// constrainPitch the pitch stays within [-MaxPitch, MaxPitch].
func (c *Camera) ProcessMouseMovement(dx, dy float32, constrainPitch bool) {
	c.yaw += dx * c.MouseSensitivity
	c.pitch += dy * c.MouseSensitivity

	if constrainPitch {
		c.pitch = clamp(c.pitch, -MaxPitch, MaxPitch)
	}
	c.updateVectors()
}

// ProcessMouseScroll zooms in for positive dy.
func (c *Camera) ProcessMouseScroll(dy float32) {
	c.zoom = clamp(c.zoom-dy, MinZoom, MaxZoom)
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
