// Package glgpu implements gpu.Device on OpenGL 4.1 core.
// The GL context must be current and gl.Init must have succeeded before use.
package glgpu

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
)

// Device issues GPU operations through go-gl.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

// New returns an OpenGL device.
func New() *Device {
	return &Device{}
}

var shaderTypes = map[gpu.Stage]uint32{
	gpu.StageVertex:   gl.VERTEX_SHADER,
	gpu.StageFragment: gl.FRAGMENT_SHADER,
	gpu.StageGeometry: gl.GEOMETRY_SHADER,
}

var primitiveModes = map[gpu.Primitive]uint32{
	gpu.Triangles:     gl.TRIANGLES,
	gpu.TriangleStrip: gl.TRIANGLE_STRIP,
	gpu.Lines:         gl.LINES,
	gpu.Points:        gl.POINTS,
}

// CompileShader compiles a single shader of the given stage.
func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(shaderTypes[stage])
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, strings.TrimRight(log, "\x00"), false
	}

	return shader, "", true
}

// LinkProgram links compiled shaders into a program.
func (d *Device) LinkProgram(shaders []uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, strings.TrimRight(log, "\x00"), false
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, "", true
}

// DeleteShader deletes a shader object.
func (d *Device) DeleteShader(id uint32) { gl.DeleteShader(id) }

// DeleteProgram deletes a program object.
func (d *Device) DeleteProgram(id uint32) { gl.DeleteProgram(id) }

// UseProgram makes the program current.
func (d *Device) UseProgram(id uint32) { gl.UseProgram(id) }

// UniformLocation looks up a uniform by name.
func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1i(loc int32, v int32)   { gl.Uniform1i(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32) { gl.Uniform1f(loc, v) }
func (d *Device) Uniform2f(loc int32, v mgl32.Vec2) {
	gl.Uniform2f(loc, v[0], v[1])
}
func (d *Device) Uniform3f(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}
func (d *Device) Uniform4f(loc int32, v mgl32.Vec4) {
	gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
}
func (d *Device) UniformMatrix3(loc int32, m mgl32.Mat3) {
	gl.UniformMatrix3fv(loc, 1, false, &m[0])
}
func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// CreateVertexArray uploads interleaved vertex data (and indices if present)
// and records the attribute layout in a new VAO.
func (d *Device) CreateVertexArray(data gpu.VertexData) gpu.VertexArray {
	var va gpu.VertexArray

	gl.GenVertexArrays(1, &va.VAO)
	gl.GenBuffers(1, &va.VBO)
	gl.BindVertexArray(va.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	usage := uint32(gl.STATIC_DRAW)
	if data.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}
	gl.BufferData(gl.ARRAY_BUFFER, data.Size, data.Data, usage)

	if len(data.Indices) > 0 {
		gl.GenBuffers(1, &va.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
		va.Count = int32(len(data.Indices))
	} else if data.Stride > 0 {
		va.Count = int32(data.Size / int(data.Stride))
	}

	for _, a := range data.Attribs {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, data.Stride, a.Offset)
	}

	gl.BindVertexArray(0)
	return va
}

// DeleteVertexArray releases the VAO and its buffers.
func (d *Device) DeleteVertexArray(va gpu.VertexArray) {
	if va.VAO != 0 {
		gl.DeleteVertexArrays(1, &va.VAO)
	}
	if va.VBO != 0 {
		gl.DeleteBuffers(1, &va.VBO)
	}
	if va.EBO != 0 {
		gl.DeleteBuffers(1, &va.EBO)
	}
}

// UpdateVertices replaces the start of the vertex buffer.
func (d *Device) UpdateVertices(va gpu.VertexArray, data unsafe.Pointer, size int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, va.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, data)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw issues one draw call for the whole array.
func (d *Device) Draw(va gpu.VertexArray, mode gpu.Primitive) {
	gl.BindVertexArray(va.VAO)
	if va.Indexed() {
		gl.DrawElements(primitiveModes[mode], va.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(primitiveModes[mode], 0, va.Count)
	}
	gl.BindVertexArray(0)
}

// DrawInstanced issues one instanced draw call for the whole array.
func (d *Device) DrawInstanced(va gpu.VertexArray, mode gpu.Primitive, instances int32) {
	gl.BindVertexArray(va.VAO)
	if va.Indexed() {
		gl.DrawElementsInstanced(primitiveModes[mode], va.Count, gl.UNSIGNED_INT, nil, instances)
	} else {
		gl.DrawArraysInstanced(primitiveModes[mode], 0, va.Count, instances)
	}
	gl.BindVertexArray(0)
}

// CreateTexture2D uploads an 8-bit image.
func (d *Device) CreateTexture2D(img gpu.TextureImage, params gpu.TextureParams) uint32 {
	internal, format := formats(img.Format, params.SRGB)

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	// Rows of RED/RG/RGB data are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, img.Width, img.Height, 0, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pixels))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	wrap := wrapMode(params.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	if params.Mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

// CreateCubemap uploads six faces into a cube map texture.
func (d *Device) CreateCubemap(faces [6]gpu.TextureImage) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	for i, face := range faces {
		internal, format := formats(face.Format, false)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, internal, face.Width, face.Height, 0, format, gl.UNSIGNED_BYTE, gl.Ptr(face.Pixels))
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return id
}

// DeleteTexture deletes a texture object.
func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

// BindTexture2D binds a 2D texture to a texture unit.
func (d *Device) BindTexture2D(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// BindCubemap binds a cube map texture to a texture unit.
func (d *Device) BindCubemap(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, id)
}

// ResetActiveTexture makes texture unit 0 active.
func (d *Device) ResetActiveTexture() {
	gl.ActiveTexture(gl.TEXTURE0)
}

// formats returns the internal and client formats for a pixel layout.
func formats(f gpu.PixelFormat, srgb bool) (internal int32, format uint32) {
	switch f {
	case gpu.FormatRed:
		return gl.R8, gl.RED
	case gpu.FormatRG:
		return gl.RG8, gl.RG
	case gpu.FormatRGB:
		if srgb {
			return gl.SRGB8, gl.RGB
		}
		return gl.RGB8, gl.RGB
	default:
		if srgb {
			return gl.SRGB8_ALPHA8, gl.RGBA
		}
		return gl.RGBA8, gl.RGBA
	}
}

func wrapMode(w gpu.Wrap) int32 {
	switch w {
	case gpu.WrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.WrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}
