package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the center point of the AABB.
func (b AABB) Center() mgl32.Vec3 {
	return mgl32.Vec3{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	dx := (b.Max[0] - b.Min[0]) / 2
	dy := (b.Max[1] - b.Min[1]) / 2
	dz := (b.Max[2] - b.Min[2]) / 2
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

// LightSpaceMatrix returns the orthographic projection times the view from
// lightPos toward target. halfSize bounds the square ortho volume.
func LightSpaceMatrix(lightPos, target mgl32.Vec3, halfSize, near, far float32) mgl32.Mat4 {
	proj := mgl32.Ortho(-halfSize, halfSize, -halfSize, halfSize, near, far)
	view := mgl32.LookAtV(lightPos, target, upFor(target.Sub(lightPos)))
	return proj.Mul4(view)
}

// DirectionalLightMatrix fits an orthographic light volume around bounds.
// lightDir is the normalized direction toward the light.
func DirectionalLightMatrix(lightDir mgl32.Vec3, bounds AABB) mgl32.Mat4 {
	center := bounds.Center()
	radius := bounds.Radius()

	// Far enough out that the whole box lies in front of the near plane
	lightDistance := radius * 2.0
	lightPos := center.Add(lightDir.Mul(lightDistance))

	// Padding avoids clipping at the volume edges
	padding := radius * 0.1
	halfSize := radius + padding
	far := lightDistance + radius + padding

	return LightSpaceMatrix(lightPos, center, halfSize, 0.1, far)
}

// upFor picks an up vector that is not parallel to dir.
func upFor(dir mgl32.Vec3) mgl32.Vec3 {
	if l := dir.Len(); l > 0 && math32.Abs(dir.Y()/l) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}
