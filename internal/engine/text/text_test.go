package text

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/gpu/gputest"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
)

func TestRasterizeDefaultFont(t *testing.T) {
	glyphs, err := Rasterize(nil, DefaultSize)
	require.NoError(t, err)

	a := glyphs['A']
	assert.Positive(t, a.Width)
	assert.Positive(t, a.Height)
	assert.Positive(t, a.BearingY, "capital letters sit above the baseline")
	assert.Len(t, a.Pix, a.Width*a.Height)
	assert.Positive(t, int(a.Advance))

	g := glyphs['g']
	assert.Greater(t, g.Height, g.BearingY, "descender reaches below the baseline")

	assert.Positive(t, int(glyphs[' '].Advance))
}

func TestRasterizeInvalidFont(t *testing.T) {
	_, err := Rasterize([]byte("not a font"), DefaultSize)
	assert.Error(t, err)
}

func TestNewFontUploadsGlyphs(t *testing.T) {
	dev := &gputest.Device{}
	f, err := NewFont(dev, nil, DefaultSize)
	require.NoError(t, err)

	a := f.Character('A')
	require.NotZero(t, a.TextureID)
	img := dev.Tex[a.TextureID]
	assert.Equal(t, gpu.FormatRed, img.Format)
	assert.Equal(t, int32(a.Size[0]), img.Width)
	assert.Equal(t, gpu.WrapClampToEdge, dev.Params[a.TextureID].Wrap)
	assert.False(t, dev.Params[a.TextureID].Mipmaps)

	assert.Equal(t, Character{}, f.Character(200))

	f.Delete()
	assert.Zero(t, dev.Live())
}

func TestQuadsAdvancePen(t *testing.T) {
	dev := &gputest.Device{}
	f, err := NewFont(dev, nil, DefaultSize)
	require.NoError(t, err)

	quads := f.Quads("Hi", 25, 25, 1)
	require.Len(t, quads, 2)
	assert.Greater(t, quads[1][0], quads[0][0])

	h := f.Character('H')
	assert.InDelta(t, 25+float32(h.Bearing[0]), quads[0][0], 1e-4)
	assert.InDelta(t, 25+float32(h.Advance>>6), 25+f.Width("H", 1), 1e-4)

	half := f.Quads("H", 0, 0, 0.5)[0]
	full := f.Quads("H", 0, 0, 1)[0]
	assert.InDelta(t, full[8]/2, half[8], 1e-4, "scale applies to glyph width")
}

func TestRenderText(t *testing.T) {
	dev := &gputest.Device{}
	f, err := NewFont(dev, nil, DefaultSize)
	require.NoError(t, err)
	prog, err := shader.FromSource(dev, "text", "vs", "fs", "")
	require.NoError(t, err)

	dev.Reset()
	f.RenderText(prog, "ab", 0, 0, 1, mgl32.Vec3{0.5, 0.8, 0.2})

	require.Len(t, dev.Draws, 2)
	assert.Len(t, dev.VertexUpdates, 2)
	assert.Equal(t, f.Character('a').TextureID, dev.Draws[0].Textures[0])
	assert.Equal(t, f.Character('b').TextureID, dev.Draws[1].Textures[0])
	color, ok := dev.Value("textColor")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0.5, 0.8, 0.2}, color)
}
