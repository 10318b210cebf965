// Package shadow provides depth-map targets and light-space matrices for
// directional shadow mapping.
package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DefaultResolution is the edge length of a shadow map when Options leaves
// it zero.
const DefaultResolution = 1024

// Options configures a shadow map.
type Options struct {
	Width, Height int32
	// CullFront renders the depth pass with front faces culled, which moves
	// acne off lit surfaces of closed meshes.
	CullFront bool
}

// Map is a depth-only render target sampled as sampler2D in the lighting
// pass. Texels outside the map read as depth 1, so nothing outside the
// light volume is in shadow.
type Map struct {
	fbo, depth    uint32
	width, height int32
	cullFront     bool
	saved         [4]int32
}

// NewMap allocates the depth texture and its framebuffer.
func NewMap(opts Options) (*Map, error) {
	m := &Map{width: opts.Width, height: opts.Height, cullFront: opts.CullFront}
	if m.width <= 0 {
		m.width = DefaultResolution
	}
	if m.height <= 0 {
		m.height = DefaultResolution
	}

	gl.GenTextures(1, &m.depth)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT, m.width, m.height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &border[0])
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &m.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, m.depth, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		m.Destroy()
		return nil, fmt.Errorf("shadow map %dx%d incomplete: 0x%x", m.width, m.height, status)
	}
	return m, nil
}

// Size returns the map resolution.
func (m *Map) Size() (width, height int32) { return m.width, m.height }

// Texture returns the depth texture.
func (m *Map) Texture() uint32 { return m.depth }

// Bind starts the depth pass: it saves the viewport, targets the map and
// clears its depth.
func (m *Map) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &m.saved[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, m.fbo)
	gl.Viewport(0, 0, m.width, m.height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	if m.cullFront {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	}
}

// Unbind ends the depth pass and restores the default framebuffer and the
// saved viewport.
func (m *Map) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(m.saved[0], m.saved[1], m.saved[2], m.saved[3])
	if m.cullFront {
		gl.CullFace(gl.BACK)
		gl.Disable(gl.CULL_FACE)
	}
}

// BindTexture binds the depth texture to unit.
func (m *Map) BindTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, m.depth)
}

// Destroy releases the framebuffer and texture. It is safe to call twice.
func (m *Map) Destroy() {
	if m.fbo != 0 {
		gl.DeleteFramebuffers(1, &m.fbo)
		m.fbo = 0
	}
	if m.depth != 0 {
		gl.DeleteTextures(1, &m.depth)
		m.depth = 0
	}
}
