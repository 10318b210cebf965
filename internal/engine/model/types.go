// Package model loads OBJ assets into GPU meshes and draws them.
package model

import (
	"fmt"
	"unsafe"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
)

// Vertex is the interleaved vertex layout shared by all meshes.
// Attribute locations: 0 position, 1 normal, 2 texcoords, 3 tangent, 4 bitangent.
type Vertex struct {
	Position  [3]float32
	Normal    [3]float32
	TexCoords [2]float32
	Tangent   [3]float32
	Bitangent [3]float32
}

// vertexStride is the size of one Vertex in bytes (14 float32).
const vertexStride = int32(unsafe.Sizeof(Vertex{}))

// VertexAttribs describes the Vertex layout for gpu.VertexData.
var VertexAttribs = []gpu.Attrib{
	{Location: 0, Size: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
	{Location: 1, Size: 3, Offset: unsafe.Offsetof(Vertex{}.Normal)},
	{Location: 2, Size: 2, Offset: unsafe.Offsetof(Vertex{}.TexCoords)},
	{Location: 3, Size: 3, Offset: unsafe.Offsetof(Vertex{}.Tangent)},
	{Location: 4, Size: 3, Offset: unsafe.Offsetof(Vertex{}.Bitangent)},
}

// TextureType is the semantic slot of a mesh texture. Its string value is the
// sampler name prefix.
type TextureType string

// Texture types.
const (
	TextureDiffuse  TextureType = "texture_diffuse"
	TextureSpecular TextureType = "texture_specular"
	TextureNormal   TextureType = "texture_normal"
	TextureHeight   TextureType = "texture_height"
)

// Texture is a loaded GPU texture and the path it was loaded from.
type Texture struct {
	ID   uint32
	Type TextureType
	Path string
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Options controls model loading.
type Options struct {
	// Gamma uploads diffuse textures in sRGB.
	Gamma bool
	// FlipTextures flips texture rows on load.
	FlipTextures bool
	// SmoothNormals averages normals of vertices sharing a position.
	SmoothNormals bool
}

// IOError is returned when an asset, material library or texture file cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("model: read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError is returned for malformed asset data.
type ParseError struct {
	Path   string
	Group  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("model: parse %s group %q: %s", e.Path, e.Group, e.Reason)
	}
	return fmt.Sprintf("model: parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
