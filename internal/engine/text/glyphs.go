// Package text renders ASCII strings from a TrueType or OpenType font.
// Each glyph is rasterized once into its own single-channel texture.
package text

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the pixel height glyphs are rasterized at.
const DefaultSize = 48

// GlyphCount is the number of ASCII codes loaded (0-127).
const GlyphCount = 128

// Bitmap is a rasterized glyph with its placement metrics in pixels.
type Bitmap struct {
	Width, Height int
	// BearingX is the offset from the pen to the left edge; BearingY from the
	// baseline up to the top edge.
	BearingX, BearingY int
	// Advance is the horizontal pen advance in 1/64 pixels.
	Advance fixed.Int26_6
	// Pix is Width*Height coverage values, top row first.
	Pix []byte
}

// Rasterize renders the ASCII glyphs of the font in data at size pixels.
// A nil data uses the Go Regular font.
func Rasterize(data []byte, size float64) ([GlyphCount]Bitmap, error) {
	var glyphs [GlyphCount]Bitmap
	if data == nil {
		data = goregular.TTF
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return glyphs, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return glyphs, fmt.Errorf("creating font face: %w", err)
	}
	defer face.Close()

	for r := rune(0); r < GlyphCount; r++ {
		glyphs[r] = rasterizeGlyph(face, r)
	}
	return glyphs, nil
}

func rasterizeGlyph(face font.Face, r rune) Bitmap {
	dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return Bitmap{}
	}

	b := Bitmap{
		Width:    dr.Dx(),
		Height:   dr.Dy(),
		BearingX: dr.Min.X,
		BearingY: -dr.Min.Y,
		Advance:  advance,
	}
	if dr.Empty() {
		return b
	}

	dst := image.NewAlpha(image.Rect(0, 0, b.Width, b.Height))
	draw.DrawMask(dst, dst.Bounds(), image.Opaque, image.Point{}, mask, maskp, draw.Src)
	b.Pix = dst.Pix
	return b
}
