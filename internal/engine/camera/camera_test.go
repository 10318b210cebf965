package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertOrthonormal(t *testing.T, c *Camera) {
	t.Helper()
	f, r, u := c.Front(), c.Right(), c.Up()
	assert.InDelta(t, 1, f.Len(), eps, "front length")
	assert.InDelta(t, 1, r.Len(), eps, "right length")
	assert.InDelta(t, 1, u.Len(), eps, "up length")
	assert.InDelta(t, 0, f.Dot(r), eps, "front.right")
	assert.InDelta(t, 0, f.Dot(u), eps, "front.up")
	assert.InDelta(t, 0, r.Dot(u), eps, "right.up")
}

func assertVec3(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, msgAndArgs...)
	}
}

func TestNewDefault(t *testing.T) {
	c := NewDefault(mgl32.Vec3{0, 0, 3})

	assert.Equal(t, DefaultYaw, c.Yaw())
	assert.Equal(t, DefaultPitch, c.Pitch())
	assert.Equal(t, DefaultZoom, c.Zoom())
	assert.Equal(t, DefaultSpeed, c.MovementSpeed)
	assert.Equal(t, DefaultSensitivity, c.MouseSensitivity)

	// Yaw -90 looks down -Z
	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front(), "front")
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right(), "right")
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up(), "up")
}

func TestBasisOrthonormal(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	moves := [][2]float32{
		{10, 5}, {-300, 40}, {1e4, 1e4}, {0, -1e5}, {7.3, 0.1}, {-1e4, 1e4}, {1e5, -1e5},
	}
	for _, m := range moves {
		c.ProcessMouseMovement(m[0], m[1], true)
		assertOrthonormal(t, c)
	}
}

func TestBasisOrthonormalUnconstrained(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	for _, dy := range []float32{100, 300, 450, -1200} {
		c.ProcessMouseMovement(13, dy, false)
		assertOrthonormal(t, c)
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	for i := 0; i < 50; i++ {
		c.ProcessMouseMovement(0, 1000, true)
		require.LessOrEqual(t, c.Pitch(), MaxPitch)
	}
	assert.Equal(t, MaxPitch, c.Pitch())

	for i := 0; i < 50; i++ {
		c.ProcessMouseMovement(0, -1000, true)
		require.GreaterOrEqual(t, c.Pitch(), -MaxPitch)
	}
	assert.Equal(t, -MaxPitch, c.Pitch())
}

func TestPitchUnconstrained(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	c.ProcessMouseMovement(0, 1000, false)
	assert.Equal(t, float32(100), c.Pitch())
}

func TestZoomClamp(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	for i := 0; i < 100; i++ {
		c.ProcessMouseScroll(3)
		require.GreaterOrEqual(t, c.Zoom(), MinZoom)
	}
	assert.Equal(t, MinZoom, c.Zoom())

	for i := 0; i < 100; i++ {
		c.ProcessMouseScroll(-7)
		require.LessOrEqual(t, c.Zoom(), MaxZoom)
	}
	assert.Equal(t, MaxZoom, c.Zoom())

	c.ProcessMouseScroll(5)
	assert.Equal(t, float32(40), c.Zoom())
}

func TestProcessKeyboard(t *testing.T) {
	tests := []struct {
		dir  Movement
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -2.5}},
		{Backward, mgl32.Vec3{0, 0, 2.5}},
		{Left, mgl32.Vec3{-2.5, 0, 0}},
		{Right, mgl32.Vec3{2.5, 0, 0}},
	}
	for _, tt := range tests {
		c := NewDefault(mgl32.Vec3{})
		c.ProcessKeyboard(tt.dir, 1.0)
		assertVec3(t, tt.want, c.Position, "dir %d", tt.dir)
	}
}

func TestViewMatrix(t *testing.T) {
	c := NewDefault(mgl32.Vec3{0, 0, 3})
	view := c.ViewMatrix()

	// The camera position maps to the origin of view space
	p := view.Mul4x1(mgl32.Vec4{0, 0, 3, 1})
	assert.InDelta(t, 0, p.X(), eps)
	assert.InDelta(t, 0, p.Y(), eps)
	assert.InDelta(t, 0, p.Z(), eps)

	// A point in front of the camera lies on -Z in view space
	q := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, q.Z(), eps)

	// Pure: calling again gives the same matrix
	assert.Equal(t, view, c.ViewMatrix())
}

func TestSetOrientation(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	c.SetOrientation(0, 0)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Front())

	c.SetOrientation(-90, 45)
	assert.InDelta(t, math32.Sin(mgl32.DegToRad(45)), c.Front().Y(), eps)
	assertOrthonormal(t, c)
}

func TestProjectionUsesZoom(t *testing.T) {
	c := NewDefault(mgl32.Vec3{})
	c.SetZoom(30)
	want := mgl32.Perspective(mgl32.DegToRad(30), 4.0/3.0, 0.1, 100)
	assert.Equal(t, want, c.Projection(4.0/3.0, 0.1, 100))

	c.SetZoom(100)
	assert.Equal(t, MaxZoom, c.Zoom())
}
