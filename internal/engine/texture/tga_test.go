package texture

import (
	"image"
	"image/color"
	"testing"
)

func tgaHeader(imageType, width, height, bpp int, descriptor byte) []byte {
	h := make([]byte, 18)
	h[2] = byte(imageType)
	h[12] = byte(width)
	h[13] = byte(width >> 8)
	h[14] = byte(height)
	h[15] = byte(height >> 8)
	h[16] = byte(bpp)
	h[17] = descriptor
	return h
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2x2, 24 bit, bottom-up: first row in the file is the bottom row.
	data := tgaHeader(TGATypeTrueColor, 2, 2, 24, 0)
	data = append(data,
		255, 0, 0, 0, 255, 0, // bottom: blue, green (BGR)
		0, 0, 255, 255, 255, 255, // top: red, white
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}

	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{R: 255, A: 255}},
		{1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{0, 1, color.NRGBA{B: 255, A: 255}},
		{1, 1, color.NRGBA{G: 255, A: 255}},
	}
	for _, tt := range tests {
		got := color.NRGBAModel.Convert(img.At(tt.x, tt.y)).(color.NRGBA)
		if got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if n := Channels(data, "wall.tga", img); n != 3 {
		t.Errorf("Channels = %d, want 3", n)
	}
}

func TestDecodeTGATopToBottomAlpha(t *testing.T) {
	data := tgaHeader(TGATypeTrueColor, 1, 2, 32, 0x20)
	data = append(data,
		0, 0, 255, 128, // top: red, half alpha
		255, 0, 0, 255, // bottom: blue
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	top := img.(*image.NRGBA).NRGBAAt(0, 0)
	if top != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("top = %v", top)
	}
	if n := Channels(data, "wall.tga", img); n != 4 {
		t.Errorf("Channels = %d, want 4", n)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1 top-down: run of 2 green, then one raw red pixel.
	data := tgaHeader(TGATypeTrueColorRLE, 3, 1, 24, 0x20)
	data = append(data,
		0x81, 0, 255, 0,
		0x00, 0, 0, 255,
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	m := img.(*image.NRGBA)
	want := []color.NRGBA{{G: 255, A: 255}, {G: 255, A: 255}, {R: 255, A: 255}}
	for x, w := range want {
		if got := m.NRGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestDecodeTGAGray(t *testing.T) {
	data := tgaHeader(TGATypeGrayRLE, 4, 1, 8, 0x20)
	data = append(data, 0x83, 42)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	g, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("got %T, want *image.Gray", img)
	}
	for x := 0; x < 4; x++ {
		if g.GrayAt(x, 0).Y != 42 {
			t.Errorf("pixel %d = %d", x, g.GrayAt(x, 0).Y)
		}
	}
	if n := Channels(data, "wall.tga", img); n != 1 {
		t.Errorf("Channels = %d, want 1", n)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 8, 0); h[1] = 1; return h }()},
		{"unsupported type", tgaHeader(9, 1, 1, 24, 0)},
		{"bad depth", tgaHeader(TGATypeTrueColor, 1, 1, 16, 0)},
		{"truncated raw", append(tgaHeader(TGATypeTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(TGATypeTrueColorRLE, 2, 2, 24, 0), 0x81, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecodeDispatchesTGAByExtension(t *testing.T) {
	data := tgaHeader(TGATypeTrueColor, 1, 1, 24, 0)
	data = append(data, 0, 0, 255)

	img, err := Decode(data, "wall.TGA", false)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Channels != 3 || string(img.Pix) != string([]byte{255, 0, 0}) {
		t.Errorf("got %d channels %v", img.Channels, img.Pix)
	}
}
