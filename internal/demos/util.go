package demos

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/camera"
	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/harness"
)

// layout packs float attributes of the given sizes at consecutive locations
// starting at 0 and returns the vertex stride in bytes.
func layout(sizes ...int32) (int32, []gpu.Attrib) {
	attribs := make([]gpu.Attrib, len(sizes))
	var offset int32
	for i, n := range sizes {
		attribs[i] = gpu.Attrib{Location: uint32(i), Size: n, Offset: uintptr(offset * 4)}
		offset += n
	}
	return offset * 4, attribs
}

// vertexArray uploads interleaved vertices laid out by sizes. The array is
// deleted when the demo ends.
func vertexArray(app *harness.App, vertices []float32, indices []uint32, sizes ...int32) gpu.VertexArray {
	stride, attribs := layout(sizes...)
	return vertexArrayWith(app, vertices, indices, stride, attribs)
}

func vertexArrayWith(app *harness.App, vertices []float32, indices []uint32, stride int32, attribs []gpu.Attrib) gpu.VertexArray {
	va := app.Device.CreateVertexArray(gpu.VertexData{
		Data:    unsafe.Pointer(&vertices[0]),
		Size:    len(vertices) * 4,
		Stride:  stride,
		Attribs: attribs,
		Indices: indices,
	})
	app.Defer(func() { app.Device.DeleteVertexArray(va) })
	return va
}

// shape registers s for deletion when the demo ends.
func shape(app *harness.App, s *primitives.Shape) *primitives.Shape {
	app.Defer(s.Delete)
	return s
}

// loadTextures loads each path with the same options.
func loadTextures(app *harness.App, opts texture.Options, paths ...string) ([]uint32, error) {
	ids := make([]uint32, len(paths))
	for i, p := range paths {
		id, err := app.LoadTexture(p, opts)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// bindTextures binds ids to units 0..n-1.
func bindTextures(app *harness.App, ids ...uint32) {
	for i, id := range ids {
		app.Device.BindTexture2D(uint32(i), id)
	}
}

func clearScreen(r, g, b float32) {
	gl.ClearColor(r, g, b, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func flyCamera(x, y, z float32) *camera.Camera {
	return camera.NewDefault(mgl32.Vec3{x, y, z})
}

func translate(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v[0], v[1], v[2])
}

func scale(s float32) mgl32.Mat4 {
	return mgl32.Scale3D(s, s, s)
}

// rotate rotates by degrees around axis, which need not be normalized.
func rotate(degrees float32, axis mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize())
}

// cubePositions places the ten cubes of the coordinate system and lighting
// scenes.
var cubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}
