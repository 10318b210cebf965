package text

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/logger"
)

// Character is an uploaded glyph.
type Character struct {
	TextureID uint32 // zero for glyphs without pixels (space, controls)
	Size      [2]int
	Bearing   [2]int
	Advance   int // 1/64 pixels
}

// Font holds one texture per ASCII glyph and a dynamic quad buffer.
type Font struct {
	dev   gpu.Device
	chars [GlyphCount]Character
	quad  gpu.VertexArray
}

// quadFloats is one quad of two triangles, each vertex vec4(pos.xy, uv).
const quadFloats = 6 * 4

// NewFont rasterizes data (nil for Go Regular) at size pixels and uploads
// every glyph.
func NewFont(dev gpu.Device, data []byte, size float64) (*Font, error) {
	glyphs, err := Rasterize(data, size)
	if err != nil {
		return nil, err
	}

	f := &Font{dev: dev}
	params := gpu.TextureParams{Wrap: gpu.WrapClampToEdge}
	for i, g := range glyphs {
		c := Character{
			Size:    [2]int{g.Width, g.Height},
			Bearing: [2]int{g.BearingX, g.BearingY},
			Advance: int(g.Advance),
		}
		if len(g.Pix) > 0 {
			c.TextureID = dev.CreateTexture2D(gpu.TextureImage{
				Width:  int32(g.Width),
				Height: int32(g.Height),
				Format: gpu.FormatRed,
				Pixels: g.Pix,
			}, params)
		}
		f.chars[i] = c
	}

	f.quad = dev.CreateVertexArray(gpu.VertexData{
		Size:    quadFloats * 4,
		Stride:  4 * 4,
		Attribs: []gpu.Attrib{{Location: 0, Size: 4}},
		Dynamic: true,
	})

	logger.Named("text").Debug("font loaded", zap.Float64("size", size))
	return f, nil
}

// Character returns the metrics of an ASCII byte.
func (f *Font) Character(c byte) Character {
	if c >= GlyphCount {
		return Character{}
	}
	return f.chars[c]
}

// Width returns the advance width of s at scale in pixels.
func (f *Font) Width(s string, scale float32) float32 {
	var w float32
	for i := 0; i < len(s); i++ {
		w += float32(f.Character(s[i]).Advance>>6) * scale
	}
	return w
}

// Quads returns the per-glyph quads RenderText draws for s, skipping glyphs
// without pixels. Positions are in pixels with y up from the baseline at y.
func (f *Font) Quads(s string, x, y, scale float32) [][quadFloats]float32 {
	var quads [][quadFloats]float32
	for i := 0; i < len(s); i++ {
		ch := f.Character(s[i])
		if ch.TextureID != 0 {
			xpos := x + float32(ch.Bearing[0])*scale
			ypos := y - float32(ch.Size[1]-ch.Bearing[1])*scale
			w := float32(ch.Size[0]) * scale
			h := float32(ch.Size[1]) * scale
			// Glyph rows are stored top first, so v=0 is the top edge
			quads = append(quads, [quadFloats]float32{
				xpos, ypos + h, 0, 0,
				xpos, ypos, 0, 1,
				xpos + w, ypos, 1, 1,

				xpos, ypos + h, 0, 0,
				xpos + w, ypos, 1, 1,
				xpos + w, ypos + h, 1, 0,
			})
		}
		x += float32(ch.Advance>>6) * scale
	}
	return quads
}

// RenderText draws s with its baseline starting at (x, y). prog must use a
// "text" sampler and a "textColor" uniform; blending should be enabled.
func (f *Font) RenderText(prog *shader.Program, s string, x, y, scale float32, color mgl32.Vec3) {
	prog.Use()
	prog.SetVec3("textColor", color)
	prog.SetInt("text", 0)

	var chars []Character
	for i := 0; i < len(s); i++ {
		if ch := f.Character(s[i]); ch.TextureID != 0 {
			chars = append(chars, ch)
		}
	}
	for i, q := range f.Quads(s, x, y, scale) {
		f.dev.BindTexture2D(0, chars[i].TextureID)
		f.dev.UpdateVertices(f.quad, unsafe.Pointer(&q[0]), quadFloats*4)
		f.dev.Draw(f.quad, gpu.Triangles)
	}
}

// Delete releases the glyph textures and the quad buffer.
func (f *Font) Delete() {
	for i := range f.chars {
		if id := f.chars[i].TextureID; id != 0 {
			f.dev.DeleteTexture(id)
			f.chars[i].TextureID = 0
		}
	}
	if f.quad.VAO != 0 {
		f.dev.DeleteVertexArray(f.quad)
		f.quad = gpu.VertexArray{}
	}
}
