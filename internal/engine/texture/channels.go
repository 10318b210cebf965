package texture

import (
	"bytes"
	"encoding/binary"
	"image"
	"path/filepath"
	"strings"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// PNG color types.
const (
	pngGray      = 0
	pngRGB       = 2
	pngPaletted  = 3
	pngGrayAlpha = 4
	pngRGBA      = 6
)

// Channels returns the number of channels stored in the encoded file: the
// PNG color type (with tRNS adding alpha), the BMP or TGA pixel depth. Files
// whose header carries no channel layout, such as JPEG, fall back to the
// decoded image type.
func Channels(data []byte, name string, img image.Image) int {
	switch {
	case bytes.HasPrefix(data, pngSignature):
		if n, ok := pngChannels(data); ok {
			return n
		}
	case bytes.HasPrefix(data, []byte("BM")) && len(data) >= 30:
		if binary.LittleEndian.Uint16(data[28:30]) == 32 {
			return 4
		}
		return 3
	case strings.EqualFold(filepath.Ext(name), ".tga") && len(data) >= 18:
		return tgaChannels(data)
	}
	return decodedChannels(img)
}

// pngChannels reads the IHDR color type and looks for a tRNS chunk before
// the first IDAT.
func pngChannels(data []byte) (int, bool) {
	// signature, IHDR length and type, width, height, bit depth
	const colorTypeOffset = 8 + 8 + 4 + 4 + 1
	if len(data) <= colorTypeOffset || string(data[12:16]) != "IHDR" {
		return 0, false
	}
	colorType := data[colorTypeOffset]

	transparent := false
	for pos := len(pngSignature); pos+8 <= len(data); {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		kind := string(data[pos+4 : pos+8])
		if kind == "tRNS" {
			transparent = true
			break
		}
		if kind == "IDAT" || kind == "IEND" {
			break
		}
		pos += 12 + length
	}

	switch colorType {
	case pngGray:
		if transparent {
			return 2, true
		}
		return 1, true
	case pngGrayAlpha:
		return 2, true
	case pngRGB, pngPaletted:
		if transparent {
			return 4, true
		}
		return 3, true
	case pngRGBA:
		return 4, true
	}
	return 0, false
}

func tgaChannels(data []byte) int {
	switch int(data[2]) {
	case TGATypeGray, TGATypeGrayRLE:
		return 1
	}
	if data[16] == 32 {
		return 4
	}
	return 3
}

// decodedChannels maps a decoded image type to a channel count.
func decodedChannels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	default:
		return 4
	}
}
