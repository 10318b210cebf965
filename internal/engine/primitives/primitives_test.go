package primitives

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/gpu/gputest"
)

func TestLazyInitialization(t *testing.T) {
	dev := &gputest.Device{}
	cube := NewCube(dev)

	assert.False(t, cube.Initialized())
	assert.Zero(t, dev.Live(), "no GPU objects before first draw")

	cube.Draw()
	cube.Draw()
	assert.True(t, cube.Initialized())
	assert.Len(t, dev.Arrays, 1, "uploaded exactly once")
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, int32(CubeVertexCount), dev.Draws[0].Count)
	assert.Equal(t, gpu.Triangles, dev.Draws[0].Mode)
}

func TestDeleteAndRebuild(t *testing.T) {
	dev := &gputest.Device{}
	quad := NewQuad(dev)

	quad.Delete() // no-op before init
	assert.Zero(t, dev.Live())

	first := quad.VAO()
	quad.Delete()
	assert.False(t, quad.Initialized())
	assert.Zero(t, dev.Live())

	second := quad.VAO()
	assert.NotEqual(t, first, second)
	assert.Len(t, dev.Arrays, 1)
}

func TestShapeCounts(t *testing.T) {
	dev := &gputest.Device{}
	tests := []struct {
		name  string
		shape *Shape
		count int32
		mode  gpu.Primitive
	}{
		{"quad", NewQuad(dev), 4, gpu.TriangleStrip},
		{"plane", NewPlane(dev, 25), 6, gpu.Triangles},
		{"skybox", NewSkybox(dev), 36, gpu.Triangles},
		{"sphere", NewSphere(dev, 8, 4), 4 * 9 * 2, gpu.TriangleStrip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev.Reset()
			tt.shape.DrawInstanced(3)
			require.Len(t, dev.Draws, 1)
			assert.Equal(t, tt.count, dev.Draws[0].Count)
			assert.Equal(t, tt.mode, dev.Draws[0].Mode)
			assert.Equal(t, int32(3), dev.Draws[0].Instances)
		})
	}
}

func TestSphereGeometry(t *testing.T) {
	vertices, indices := SphereGeometry(16, 8)
	require.Len(t, vertices, 17*9*8)
	assert.Len(t, indices, 8*17*2)

	for i := 0; i < len(vertices); i += 8 {
		x, y, z := vertices[i], vertices[i+1], vertices[i+2]
		assert.InDelta(t, 1, math32.Sqrt(x*x+y*y+z*z), 1e-5, "vertex %d not on unit sphere", i/8)
		// normal equals position on a unit sphere
		assert.Equal(t, vertices[i:i+3], vertices[i+3:i+6])
	}
	for _, idx := range indices {
		assert.Less(t, int(idx), 17*9)
	}
}

func TestCubeNormalsUnit(t *testing.T) {
	require.Len(t, cubeVertices, CubeVertexCount*8)
	for i := 0; i < len(cubeVertices); i += 8 {
		n := cubeVertices[i+3 : i+6]
		assert.InDelta(t, 1, math32.Abs(n[0])+math32.Abs(n[1])+math32.Abs(n[2]), 1e-6)
	}
}
