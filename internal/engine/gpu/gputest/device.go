// Package gputest provides a recording gpu.Device for tests that run without
// a GL context.
package gputest

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
)

// DrawCall records one Draw or DrawInstanced call.
type DrawCall struct {
	VAO       uint32
	Count     int32
	Mode      gpu.Primitive
	Instances int32 // 0 for non-instanced draws
	Program   uint32
	Textures  map[uint32]uint32 // unit -> texture bound at draw time
}

// UniformSet records one uniform assignment.
type UniformSet struct {
	Program uint32
	Name    string
	Value   any
}

// Device records every call and hands out increasing handles.
// A zero Device is ready to use.
type Device struct {
	// CompileFail makes CompileShader fail for sources containing the marker.
	CompileFail string
	// LinkFail makes every LinkProgram call fail.
	LinkFail bool
	// Uniforms lists the active uniform names per program; nil accepts any name.
	Uniforms []string

	next uint32

	Shaders  map[uint32]gpu.Stage
	Programs map[uint32][]uint32
	Arrays   map[uint32]gpu.VertexArray
	Tex      map[uint32]gpu.TextureImage
	Params   map[uint32]gpu.TextureParams
	Cubemaps map[uint32][6]gpu.TextureImage

	TextureUploads int
	VertexUpdates  [][]float32
	Draws          []DrawCall
	Sets           []UniformSet
	Lookups        []string

	current   uint32
	locations map[int32]string
	bound     map[uint32]uint32
	active    uint32
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) init() {
	if d.Shaders != nil {
		return
	}
	d.Shaders = make(map[uint32]gpu.Stage)
	d.Programs = make(map[uint32][]uint32)
	d.Arrays = make(map[uint32]gpu.VertexArray)
	d.Tex = make(map[uint32]gpu.TextureImage)
	d.Params = make(map[uint32]gpu.TextureParams)
	d.Cubemaps = make(map[uint32][6]gpu.TextureImage)
	d.locations = make(map[int32]string)
	d.bound = make(map[uint32]uint32)
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) CompileShader(stage gpu.Stage, source string) (uint32, string, bool) {
	d.init()
	if d.CompileFail != "" && strings.Contains(source, d.CompileFail) {
		return 0, fmt.Sprintf("0:1(1): error: syntax error near %q", d.CompileFail), false
	}
	id := d.handle()
	d.Shaders[id] = stage
	return id, "", true
}

func (d *Device) LinkProgram(shaders []uint32) (uint32, string, bool) {
	d.init()
	if d.LinkFail {
		return 0, "error: unresolved varying", false
	}
	id := d.handle()
	d.Programs[id] = append([]uint32(nil), shaders...)
	return id, "", true
}

func (d *Device) DeleteShader(id uint32) {
	d.init()
	delete(d.Shaders, id)
}

func (d *Device) DeleteProgram(id uint32) {
	d.init()
	delete(d.Programs, id)
	if d.current == id {
		d.current = 0
	}
}

func (d *Device) UseProgram(id uint32) { d.current = id }

// Current returns the program last passed to UseProgram.
func (d *Device) Current() uint32 { return d.current }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.init()
	d.Lookups = append(d.Lookups, name)
	if d.Uniforms != nil {
		found := false
		for _, u := range d.Uniforms {
			if u == name {
				found = true
				break
			}
		}
		if !found {
			return -1
		}
	}
	loc := int32(len(d.locations))
	d.locations[loc] = name
	return loc
}

func (d *Device) set(loc int32, v any) {
	if loc < 0 {
		return
	}
	d.Sets = append(d.Sets, UniformSet{Program: d.current, Name: d.locations[loc], Value: v})
}

func (d *Device) Uniform1i(loc int32, v int32)           { d.set(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)         { d.set(loc, v) }
func (d *Device) Uniform2f(loc int32, v mgl32.Vec2)      { d.set(loc, v) }
func (d *Device) Uniform3f(loc int32, v mgl32.Vec3)      { d.set(loc, v) }
func (d *Device) Uniform4f(loc int32, v mgl32.Vec4)      { d.set(loc, v) }
func (d *Device) UniformMatrix3(loc int32, m mgl32.Mat3) { d.set(loc, m) }
func (d *Device) UniformMatrix4(loc int32, m mgl32.Mat4) { d.set(loc, m) }

// Value returns the last value set for a uniform name.
func (d *Device) Value(name string) (any, bool) {
	for i := len(d.Sets) - 1; i >= 0; i-- {
		if d.Sets[i].Name == name {
			return d.Sets[i].Value, true
		}
	}
	return nil, false
}

func (d *Device) CreateVertexArray(data gpu.VertexData) gpu.VertexArray {
	d.init()
	va := gpu.VertexArray{VAO: d.handle(), VBO: d.handle()}
	if len(data.Indices) > 0 {
		va.EBO = d.handle()
		va.Count = int32(len(data.Indices))
	} else if data.Stride > 0 {
		va.Count = int32(data.Size / int(data.Stride))
	}
	d.Arrays[va.VAO] = va
	return va
}

func (d *Device) DeleteVertexArray(va gpu.VertexArray) {
	d.init()
	delete(d.Arrays, va.VAO)
}

// UpdateVertices records the new contents as float32 values.
func (d *Device) UpdateVertices(va gpu.VertexArray, data unsafe.Pointer, size int) {
	d.init()
	floats := unsafe.Slice((*float32)(data), size/4)
	d.VertexUpdates = append(d.VertexUpdates, append([]float32(nil), floats...))
}

func (d *Device) Draw(va gpu.VertexArray, mode gpu.Primitive) {
	d.draw(va, mode, 0)
}

func (d *Device) DrawInstanced(va gpu.VertexArray, mode gpu.Primitive, instances int32) {
	d.draw(va, mode, instances)
}

func (d *Device) draw(va gpu.VertexArray, mode gpu.Primitive, instances int32) {
	d.init()
	bound := make(map[uint32]uint32, len(d.bound))
	for unit, id := range d.bound {
		bound[unit] = id
	}
	d.Draws = append(d.Draws, DrawCall{
		VAO:       va.VAO,
		Count:     va.Count,
		Mode:      mode,
		Instances: instances,
		Program:   d.current,
		Textures:  bound,
	})
}

func (d *Device) CreateTexture2D(img gpu.TextureImage, params gpu.TextureParams) uint32 {
	d.init()
	id := d.handle()
	d.Tex[id] = img
	d.Params[id] = params
	d.TextureUploads++
	return id
}

func (d *Device) CreateCubemap(faces [6]gpu.TextureImage) uint32 {
	d.init()
	id := d.handle()
	d.Cubemaps[id] = faces
	d.TextureUploads++
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	d.init()
	delete(d.Tex, id)
	delete(d.Params, id)
	delete(d.Cubemaps, id)
}

func (d *Device) BindTexture2D(unit uint32, id uint32) {
	d.init()
	d.bound[unit] = id
	d.active = unit
}

func (d *Device) BindCubemap(unit uint32, id uint32) {
	d.BindTexture2D(unit, id)
}

func (d *Device) ResetActiveTexture() { d.active = 0 }

// ActiveUnit returns the texture unit left active by the last bind or reset.
func (d *Device) ActiveUnit() uint32 { return d.active }

// Live returns the number of GPU objects that have been created and not
// deleted.
func (d *Device) Live() int {
	return len(d.Shaders) + len(d.Programs) + len(d.Arrays) + len(d.Tex) + len(d.Cubemaps)
}

// Reset clears the recorded draws and uniform sets.
func (d *Device) Reset() {
	d.Draws = nil
	d.Sets = nil
	d.Lookups = nil
}
