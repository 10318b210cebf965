// Package gpu defines the GPU operations the engine helpers depend on.
//
// The helpers (shader programs, meshes, textures, primitive shapes) talk to a
// Device instead of calling OpenGL directly. glgpu provides the OpenGL
// implementation; gputest provides a recording implementation for tests.
// All calls must happen on the thread owning the GL context.
package gpu

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Stage identifies a programmable pipeline stage.
type Stage int

// Pipeline stages.
const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
)

// String returns the stage name used in diagnostics.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "VERTEX"
	case StageFragment:
		return "FRAGMENT"
	case StageGeometry:
		return "GEOMETRY"
	default:
		return "UNKNOWN"
	}
}

// Primitive is the topology used by a draw call.
type Primitive int

// Primitive topologies.
const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	Points
)

// Attrib describes one float vertex attribute inside an interleaved buffer.
type Attrib struct {
	Location uint32
	Size     int32   // components (1-4)
	Offset   uintptr // byte offset inside one vertex
}

// VertexData is everything needed to build a vertex array.
type VertexData struct {
	Data    unsafe.Pointer // interleaved vertex data
	Size    int            // byte length of Data
	Stride  int32          // bytes per vertex
	Attribs []Attrib
	Indices []uint32 // optional; nil for non-indexed arrays
	// Dynamic allocates Size bytes for frequent UpdateVertices calls.
	// Data may be nil.
	Dynamic bool
}

// VertexArray holds the handles of an uploaded vertex array.
type VertexArray struct {
	VAO   uint32
	VBO   uint32
	EBO   uint32 // zero when not indexed
	Count int32  // indices when indexed, vertices otherwise
}

// Indexed reports whether the array draws through an element buffer.
func (va VertexArray) Indexed() bool {
	return va.EBO != 0
}

// PixelFormat is the client-side channel layout of texture data.
type PixelFormat int

// Pixel formats, indexed by channel count.
const (
	FormatRed  PixelFormat = 1
	FormatRG   PixelFormat = 2
	FormatRGB  PixelFormat = 3
	FormatRGBA PixelFormat = 4
)

// FormatForChannels maps an image channel count to a pixel format.
func FormatForChannels(channels int) (PixelFormat, bool) {
	switch channels {
	case 1:
		return FormatRed, true
	case 2:
		return FormatRG, true
	case 3:
		return FormatRGB, true
	case 4:
		return FormatRGBA, true
	default:
		return 0, false
	}
}

// String returns the format name.
func (f PixelFormat) String() string {
	switch f {
	case FormatRed:
		return "RED"
	case FormatRG:
		return "RG"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return "UNKNOWN"
	}
}

// Wrap is a texture coordinate wrap mode.
type Wrap int

// Wrap modes.
const (
	WrapRepeat Wrap = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

// TextureImage is tightly packed 8-bit pixel data, rows bottom to top as
// OpenGL expects when the image was flipped on load.
type TextureImage struct {
	Width  int32
	Height int32
	Format PixelFormat
	Pixels []byte
}

// TextureParams controls how a texture is stored and sampled.
type TextureParams struct {
	Wrap    Wrap
	Mipmaps bool // generate mipmaps and use trilinear minification
	SRGB    bool // store color channels in sRGB (gamma-correct sampling)
}

// DefaultTextureParams returns repeat wrapping with trilinear mipmapping.
func DefaultTextureParams() TextureParams {
	return TextureParams{Wrap: WrapRepeat, Mipmaps: true}
}

// Device is the set of GPU operations used by the engine helpers.
type Device interface {
	// CompileShader compiles one stage. On failure ok is false and infoLog holds
	// the compiler output; the shader object is already deleted.
	CompileShader(stage Stage, source string) (id uint32, infoLog string, ok bool)
	// LinkProgram links compiled stages. On failure ok is false and the program
	// object is already deleted.
	LinkProgram(shaders []uint32) (id uint32, infoLog string, ok bool)
	DeleteShader(id uint32)
	DeleteProgram(id uint32)
	UseProgram(id uint32)

	// UniformLocation returns -1 when the program has no active uniform name.
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v mgl32.Vec2)
	Uniform3f(location int32, v mgl32.Vec3)
	Uniform4f(location int32, v mgl32.Vec4)
	UniformMatrix3(location int32, m mgl32.Mat3)
	UniformMatrix4(location int32, m mgl32.Mat4)

	CreateVertexArray(data VertexData) VertexArray
	DeleteVertexArray(va VertexArray)
	// UpdateVertices overwrites size bytes of the vertex buffer at offset 0.
	UpdateVertices(va VertexArray, data unsafe.Pointer, size int)
	Draw(va VertexArray, mode Primitive)
	DrawInstanced(va VertexArray, mode Primitive, instances int32)

	CreateTexture2D(img TextureImage, params TextureParams) uint32
	// CreateCubemap uploads six faces in +X, -X, +Y, -Y, +Z, -Z order,
	// clamped to edge with linear filtering.
	CreateCubemap(faces [6]TextureImage) uint32
	DeleteTexture(id uint32)
	BindCubemap(unit uint32, id uint32)
	// BindTexture2D binds id to texture unit (0-based) and leaves that unit active.
	BindTexture2D(unit uint32, id uint32)
	// ResetActiveTexture makes unit 0 active again.
	ResetActiveTexture()
}
