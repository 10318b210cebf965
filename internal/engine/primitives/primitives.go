// Package primitives provides the unit shapes used across the demos: cube,
// screen quad, floor plane, UV sphere and skybox cube.
//
// Shapes are built on first use. A Shape holds no GPU objects until Draw,
// DrawInstanced or VAO is called.
package primitives

import (
	"unsafe"

	"github.com/chewxy/math32"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
)

// Shape is a lazily uploaded vertex array.
type Shape struct {
	dev   gpu.Device
	mode  gpu.Primitive
	build func() (vertices []float32, stride int32, attribs []gpu.Attrib, indices []uint32)

	va *gpu.VertexArray
}

func newShape(dev gpu.Device, mode gpu.Primitive, build func() ([]float32, int32, []gpu.Attrib, []uint32)) *Shape {
	return &Shape{dev: dev, mode: mode, build: build}
}

// ensureInitialized uploads the shape the first time it is needed.
func (s *Shape) ensureInitialized() gpu.VertexArray {
	if s.va == nil {
		vertices, stride, attribs, indices := s.build()
		va := s.dev.CreateVertexArray(gpu.VertexData{
			Data:    unsafe.Pointer(&vertices[0]),
			Size:    len(vertices) * 4,
			Stride:  stride,
			Attribs: attribs,
			Indices: indices,
		})
		s.va = &va
	}
	return *s.va
}

// Initialized reports whether the shape has been uploaded.
func (s *Shape) Initialized() bool { return s.va != nil }

// VAO returns the vertex array handle, uploading the shape if needed.
func (s *Shape) VAO() uint32 { return s.ensureInitialized().VAO }

// Draw draws the shape once.
func (s *Shape) Draw() {
	s.dev.Draw(s.ensureInitialized(), s.mode)
}

// DrawInstanced draws count instances.
func (s *Shape) DrawInstanced(count int32) {
	s.dev.DrawInstanced(s.ensureInitialized(), s.mode, count)
}

// Delete releases the GPU objects. The shape is rebuilt if drawn again.
func (s *Shape) Delete() {
	if s.va == nil {
		return
	}
	s.dev.DeleteVertexArray(*s.va)
	s.va = nil
}

// pnt is the position/normal/texcoords layout (8 floats).
var pnt = []gpu.Attrib{
	{Location: 0, Size: 3, Offset: 0},
	{Location: 1, Size: 3, Offset: 3 * 4},
	{Location: 2, Size: 2, Offset: 6 * 4},
}

// NewCube returns a unit cube centered at the origin, 36 vertices with
// position (0), normal (1) and texcoords (2).
func NewCube(dev gpu.Device) *Shape {
	return newShape(dev, gpu.Triangles, func() ([]float32, int32, []gpu.Attrib, []uint32) {
		return cubeVertices, 8 * 4, pnt, nil
	})
}

// NewSkybox returns a cube of position-only vertices (location 0) seen from inside.
func NewSkybox(dev gpu.Device) *Shape {
	return newShape(dev, gpu.Triangles, func() ([]float32, int32, []gpu.Attrib, []uint32) {
		positions := make([]float32, 0, 36*3)
		for i := 0; i < len(cubeVertices); i += 8 {
			positions = append(positions, cubeVertices[i], cubeVertices[i+1], cubeVertices[i+2])
		}
		return positions, 3 * 4, []gpu.Attrib{{Location: 0, Size: 3}}, nil
	})
}

// NewQuad returns a full-screen quad in NDC drawn as a triangle strip, with
// position (0, vec3) and texcoords (1, vec2).
func NewQuad(dev gpu.Device) *Shape {
	return newShape(dev, gpu.TriangleStrip, func() ([]float32, int32, []gpu.Attrib, []uint32) {
		vertices := []float32{
			-1, 1, 0, 0, 1,
			-1, -1, 0, 0, 0,
			1, 1, 0, 1, 1,
			1, -1, 0, 1, 0,
		}
		return vertices, 5 * 4, []gpu.Attrib{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 2, Offset: 3 * 4},
		}, nil
	})
}

// NewPlane returns a horizontal plane at y = -0.5 spanning [-size, size]
// with texcoords repeating size times, in the position/normal/texcoords layout.
func NewPlane(dev gpu.Device, size float32) *Shape {
	return newShape(dev, gpu.Triangles, func() ([]float32, int32, []gpu.Attrib, []uint32) {
		s := size
		vertices := []float32{
			s, -0.5, s, 0, 1, 0, s, 0,
			-s, -0.5, -s, 0, 1, 0, 0, s,
			-s, -0.5, s, 0, 1, 0, 0, 0,

			s, -0.5, s, 0, 1, 0, s, 0,
			s, -0.5, -s, 0, 1, 0, s, s,
			-s, -0.5, -s, 0, 1, 0, 0, s,
		}
		return vertices, 8 * 4, pnt, nil
	})
}

// NewSphere returns a unit UV sphere drawn as an indexed triangle strip in
// the position/normal/texcoords layout.
func NewSphere(dev gpu.Device, xSegments, ySegments int) *Shape {
	return newShape(dev, gpu.TriangleStrip, func() ([]float32, int32, []gpu.Attrib, []uint32) {
		vertices, indices := SphereGeometry(xSegments, ySegments)
		return vertices, 8 * 4, pnt, indices
	})
}

// SphereGeometry builds the interleaved vertices and strip indices of a unit
// UV sphere. Rows alternate direction so one strip covers the sphere.
func SphereGeometry(xSegments, ySegments int) ([]float32, []uint32) {
	vertices := make([]float32, 0, (xSegments+1)*(ySegments+1)*8)
	for y := 0; y <= ySegments; y++ {
		for x := 0; x <= xSegments; x++ {
			u := float32(x) / float32(xSegments)
			v := float32(y) / float32(ySegments)
			px := math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi)
			py := math32.Cos(v * math32.Pi)
			pz := math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi)
			vertices = append(vertices, px, py, pz, px, py, pz, u, v)
		}
	}

	indices := make([]uint32, 0, ySegments*(xSegments+1)*2)
	stride := uint32(xSegments + 1)
	for y := 0; y < ySegments; y++ {
		row := uint32(y)
		if y%2 == 0 {
			for x := 0; x <= xSegments; x++ {
				indices = append(indices, row*stride+uint32(x), (row+1)*stride+uint32(x))
			}
		} else {
			for x := xSegments; x >= 0; x-- {
				indices = append(indices, (row+1)*stride+uint32(x), row*stride+uint32(x))
			}
		}
	}
	return vertices, indices
}

var cubeVertices = []float32{
	// back face
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	0.5, -0.5, -0.5, 0, 0, -1, 1, 0,
	0.5, 0.5, -0.5, 0, 0, -1, 1, 1,
	-0.5, -0.5, -0.5, 0, 0, -1, 0, 0,
	-0.5, 0.5, -0.5, 0, 0, -1, 0, 1,
	// front face
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	0.5, -0.5, 0.5, 0, 0, 1, 1, 0,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	0.5, 0.5, 0.5, 0, 0, 1, 1, 1,
	-0.5, 0.5, 0.5, 0, 0, 1, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1, 0, 0,
	// left face
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	-0.5, 0.5, -0.5, -1, 0, 0, 1, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, -0.5, -1, 0, 0, 0, 1,
	-0.5, -0.5, 0.5, -1, 0, 0, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0, 1, 0,
	// right face
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, -0.5, 1, 0, 0, 1, 1,
	0.5, -0.5, -0.5, 1, 0, 0, 0, 1,
	0.5, 0.5, 0.5, 1, 0, 0, 1, 0,
	0.5, -0.5, 0.5, 1, 0, 0, 0, 0,
	// bottom face
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	0.5, -0.5, -0.5, 0, -1, 0, 1, 1,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	0.5, -0.5, 0.5, 0, -1, 0, 1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0, 0, 0,
	-0.5, -0.5, -0.5, 0, -1, 0, 0, 1,
	// top face
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0, 1, 1,
	0.5, 0.5, 0.5, 0, 1, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 1, 0, 0, 0,
}

// CubeVertexCount is the number of vertices drawn by NewCube.
const CubeVertexCount = 36
