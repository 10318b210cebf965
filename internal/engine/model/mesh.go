package model

import (
	"fmt"
	"unsafe"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
)

// Mesh is indexed triangle geometry with its textures, uploaded once.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Textures []Texture

	dev gpu.Device
	va  gpu.VertexArray
}

// NewMesh uploads vertices and indices into a new vertex array.
// Textures are referenced, not owned: they belong to the Model's cache.
func NewMesh(dev gpu.Device, vertices []Vertex, indices []uint32, textures []Texture) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("mesh: empty geometry (%d vertices, %d indices)", len(vertices), len(indices))
	}

	m := &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Textures: textures,
		dev:      dev,
	}
	m.va = dev.CreateVertexArray(gpu.VertexData{
		Data:    unsafe.Pointer(&vertices[0]),
		Size:    len(vertices) * int(vertexStride),
		Stride:  vertexStride,
		Attribs: VertexAttribs,
		Indices: indices,
	})
	return m, nil
}

// VAO returns the vertex array handle, 0 after Delete.
func (m *Mesh) VAO() uint32 { return m.va.VAO }

// IndexCount returns the number of indices drawn per call.
func (m *Mesh) IndexCount() int32 { return m.va.Count }

// bindTextures binds textures to units 0..n-1 and points the samplers
// texture_diffuse1, texture_specular1, ... at them.
func (m *Mesh) bindTextures(prog *shader.Program) {
	counters := make(map[TextureType]int, 4)
	for i, tex := range m.Textures {
		counters[tex.Type]++
		name := fmt.Sprintf("%s%d", tex.Type, counters[tex.Type])
		prog.SetInt(name, int32(i))
		m.dev.BindTexture2D(uint32(i), tex.ID)
	}
}

// Draw binds the mesh textures and issues one indexed draw call.
func (m *Mesh) Draw(prog *shader.Program) {
	m.bindTextures(prog)
	m.dev.Draw(m.va, gpu.Triangles)
	m.dev.ResetActiveTexture()
}

// DrawInstanced draws count instances in one call.
func (m *Mesh) DrawInstanced(prog *shader.Program, count int32) {
	m.bindTextures(prog)
	m.dev.DrawInstanced(m.va, gpu.Triangles, count)
	m.dev.ResetActiveTexture()
}

// Delete releases the vertex array. Calling it again is a no-op.
func (m *Mesh) Delete() {
	if m.va.VAO == 0 {
		return
	}
	m.dev.DeleteVertexArray(m.va)
	m.va = gpu.VertexArray{}
}
