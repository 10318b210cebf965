package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeTrueColor    = 2
	TGATypeGray         = 3
	TGATypeTrueColorRLE = 10
	TGATypeGrayRLE      = 11
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE-compressed true-color (24/32 bit)
// or grayscale (8 bit) TGA image. Color images decode to *image.NRGBA,
// grayscale to *image.Gray.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}

	gray := imageType == TGATypeGray || imageType == TGATypeGrayRLE
	switch {
	case imageType == TGATypeTrueColor || imageType == TGATypeTrueColorRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("tga: unsupported true-color depth %d", bpp)
		}
	case gray:
		if bpp != 8 {
			return nil, fmt.Errorf("tga: unsupported grayscale depth %d", bpp)
		}
	default:
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := &tgaDecoder{
		src:         data[offset:],
		width:       width,
		height:      height,
		bytesPerPix: bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}
	if gray {
		d.gray = image.NewGray(image.Rect(0, 0, width, height))
	} else {
		d.rgba = image.NewNRGBA(image.Rect(0, 0, width, height))
	}

	var err error
	if imageType == TGATypeTrueColorRLE || imageType == TGATypeGrayRLE {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}

	if gray {
		return d.gray, nil
	}
	return d.rgba, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	width       int
	height      int
	bytesPerPix int
	topToBottom bool

	gray *image.Gray
	rgba *image.NRGBA
}

// pixel reads one pixel at the current position.
func (d *tgaDecoder) pixel() (color.NRGBA, error) {
	if d.pos+d.bytesPerPix > len(d.src) {
		return color.NRGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.bytesPerPix]
	d.pos += d.bytesPerPix

	if d.bytesPerPix == 1 {
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	}
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPerPix == 4 {
		c.A = p[3]
	}
	return c, nil
}

// set stores pixel number i (file order) in the image, honoring the origin.
func (d *tgaDecoder) set(i int, c color.NRGBA) {
	x := i % d.width
	y := i / d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	if d.gray != nil {
		d.gray.SetGray(x, y, color.Gray{Y: c.R})
		return
	}
	d.rgba.SetNRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	for i := 0; i < d.width*d.height; i++ {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.set(i, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	count := d.width * d.height
	for i := 0; i < count; {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		packet := d.src[d.pos]
		d.pos++
		n := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated n times
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for j := 0; j < n && i < count; j++ {
				d.set(i, c)
				i++
			}
			continue
		}

		for j := 0; j < n && i < count; j++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.set(i, c)
			i++
		}
	}
	return nil
}
