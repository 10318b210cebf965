// Package framebuffer provides OpenGL framebuffer utilities for offscreen rendering.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options configures the attachments of a framebuffer.
type Options struct {
	// Samples > 0 creates multisampled attachments. Such a target cannot be
	// sampled directly; resolve it with BlitTo first.
	Samples int32
	// HDR stores color as 16-bit floats instead of 8-bit normalized values.
	HDR bool
	// Red stores a single float channel (SSAO and blur targets).
	Red bool
	// ColorAttachments is the number of color textures (MRT). Zero means one.
	ColorAttachments int
	// Nearest uses nearest filtering instead of linear.
	Nearest bool
	// ClampToEdge clamps color texture coordinates.
	ClampToEdge bool
	// NoDepth skips the depth-stencil renderbuffer.
	NoDepth bool
}

// Framebuffer manages an offscreen render target with color and depth attachments.
type Framebuffer struct {
	fbo           uint32
	colorTextures []uint32
	depthRBO      uint32
	width         int32
	height        int32
	opts          Options
}

// New creates a new framebuffer with the specified dimensions.
func New(width, height int32, opts Options) (*Framebuffer, error) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if opts.ColorAttachments < 1 {
		opts.ColorAttachments = 1
	}

	fb := &Framebuffer{
		width:  width,
		height: height,
		opts:   opts,
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	return fb, nil
}

// colorFormat returns the internal format, pixel format and component type
// of the color attachments.
func colorFormat(opts Options) (internal int32, format, xtype uint32) {
	switch {
	case opts.Red:
		return gl.R16F, gl.RED, gl.FLOAT
	case opts.HDR:
		return gl.RGBA16F, gl.RGBA, gl.FLOAT
	default:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
	}
}

func (fb *Framebuffer) textureTarget() uint32 {
	if fb.opts.Samples > 0 {
		return gl.TEXTURE_2D_MULTISAMPLE
	}
	return gl.TEXTURE_2D
}

func (fb *Framebuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	target := fb.textureTarget()
	fb.colorTextures = make([]uint32, fb.opts.ColorAttachments)
	gl.GenTextures(int32(len(fb.colorTextures)), &fb.colorTextures[0])
	attachments := make([]uint32, len(fb.colorTextures))
	for i, tex := range fb.colorTextures {
		gl.BindTexture(target, tex)
		fb.allocateColor()
		if target == gl.TEXTURE_2D {
			filter := int32(gl.LINEAR)
			if fb.opts.Nearest {
				filter = gl.NEAREST
			}
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
			gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
			if fb.opts.ClampToEdge {
				gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
				gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
			}
		}
		attachments[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachments[i], target, tex, 0)
	}
	if len(attachments) > 1 {
		gl.DrawBuffers(int32(len(attachments)), &attachments[0])
	}

	if !fb.opts.NoDepth {
		gl.GenRenderbuffers(1, &fb.depthRBO)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
		fb.allocateDepth()
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, fb.depthRBO)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

// allocateColor (re)allocates storage for the bound color texture.
func (fb *Framebuffer) allocateColor() {
	internal, format, xtype := colorFormat(fb.opts)
	if fb.opts.Samples > 0 {
		gl.TexImage2DMultisample(gl.TEXTURE_2D_MULTISAMPLE, fb.opts.Samples, uint32(internal), fb.width, fb.height, true)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, fb.width, fb.height, 0, format, xtype, nil)
}

// allocateDepth (re)allocates storage for the bound depth renderbuffer.
func (fb *Framebuffer) allocateDepth() {
	if fb.opts.Samples > 0 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, fb.opts.Samples, gl.DEPTH24_STENCIL8, fb.width, fb.height)
		return
	}
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, fb.width, fb.height)
}

// Bind makes this framebuffer the current render target.
func (fb *Framebuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *Framebuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears the bound target to the given color and resets its depth.
func (fb *Framebuffer) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ColorTexture returns the first color attachment texture ID.
func (fb *Framebuffer) ColorTexture() uint32 {
	return fb.colorTextures[0]
}

// ColorTextures returns every color attachment in attachment order.
func (fb *Framebuffer) ColorTextures() []uint32 {
	return append([]uint32(nil), fb.colorTextures...)
}

// BlitTo copies the color attachment (and depth when depth is true) into dst.
// A nil dst is the default framebuffer of the given size. Blitting a
// multisampled target resolves it.
func (fb *Framebuffer) BlitTo(dst *Framebuffer, width, height int32, depth bool) {
	var dstFBO uint32
	if dst != nil {
		dstFBO = dst.fbo
		width, height = dst.width, dst.height
	}

	mask := uint32(gl.COLOR_BUFFER_BIT)
	filter := uint32(gl.NEAREST)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dstFBO)
	gl.BlitFramebuffer(0, 0, fb.width, fb.height, 0, 0, width, height, mask, filter)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Resize updates the framebuffer dimensions if they have changed.
func (fb *Framebuffer) Resize(width, height int32) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if width == fb.width && height == fb.height {
		return
	}

	fb.width = width
	fb.height = height

	target := fb.textureTarget()
	for _, tex := range fb.colorTextures {
		gl.BindTexture(target, tex)
		fb.allocateColor()
	}

	if fb.depthRBO != 0 {
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthRBO)
		fb.allocateDepth()
	}
}

// Destroy releases all OpenGL resources.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if len(fb.colorTextures) > 0 {
		gl.DeleteTextures(int32(len(fb.colorTextures)), &fb.colorTextures[0])
		for i := range fb.colorTextures {
			fb.colorTextures[i] = 0
		}
	}
	if fb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &fb.depthRBO)
		fb.depthRBO = 0
	}
}
