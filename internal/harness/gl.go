package harness

import "github.com/go-gl/gl/v4.1-core/gl"

// glGraphics implements graphics on the current GL context.
type glGraphics struct{}

func (glGraphics) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (glGraphics) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
