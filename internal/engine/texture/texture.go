// Package texture decodes images and uploads them as GPU textures.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP decoder

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/logger"
)

// DecodeError is returned for image data that cannot be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("texture: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Image is tightly packed 8-bit pixel data with 1 to 4 channels.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Format returns the GPU pixel format for the channel count.
func (img *Image) Format() gpu.PixelFormat {
	f, _ := gpu.FormatForChannels(img.Channels)
	return f
}

// GPU returns the image as upload data.
func (img *Image) GPU() gpu.TextureImage {
	return gpu.TextureImage{
		Width:  int32(img.Width),
		Height: int32(img.Height),
		Format: img.Format(),
		Pixels: img.Pix,
	}
}

// Options control how an image file becomes a texture.
type Options struct {
	// FlipY flips rows so the first row in the file ends at the bottom (t=0).
	FlipY bool
	// Gamma stores color data in sRGB so sampling returns linear values.
	Gamma bool
	// Wrap is the S/T wrap mode; the zero value repeats.
	Wrap gpu.Wrap
	// NoMipmaps disables mipmap generation and uses linear minification.
	NoMipmaps bool
}

func (o Options) params() gpu.TextureParams {
	return gpu.TextureParams{Wrap: o.Wrap, Mipmaps: !o.NoMipmaps, SRGB: o.Gamma}
}

// Pack converts img to tightly packed rows with the given channel count
// (1 = gray, 2 = gray+alpha, 3 = RGB, 4 = RGBA, straight alpha).
func Pack(img image.Image, channels int) *Image {
	b := img.Bounds()
	out := &Image{
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: channels,
		Pix:      make([]byte, b.Dx()*b.Dy()*channels),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			switch channels {
			case 1:
				out.Pix[i] = color.GrayModel.Convert(c).(color.Gray).Y
			case 2:
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				out.Pix[i] = color.GrayModel.Convert(color.RGBA{R: n.R, G: n.G, B: n.B, A: 255}).(color.Gray).Y
				out.Pix[i+1] = n.A
			default:
				n := color.NRGBAModel.Convert(c).(color.NRGBA)
				out.Pix[i] = n.R
				out.Pix[i+1] = n.G
				out.Pix[i+2] = n.B
				if channels == 4 {
					out.Pix[i+3] = n.A
				}
			}
			i += channels
		}
	}
	return out
}

// Decode decodes PNG, JPEG, BMP or TGA data. name is used to detect TGA by
// extension and for error messages.
func Decode(data []byte, name string, flipY bool) (*Image, error) {
	var (
		img image.Image
		err error
	)
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &DecodeError{Path: name, Err: err}
	}

	channels := Channels(data, name, img)
	if flipY {
		img = transform.FlipV(img)
	}
	return Pack(img, channels), nil
}

// Load reads and decodes an image file.
func Load(path string, flipY bool) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture: %w", err)
	}
	return Decode(data, path, flipY)
}

// FromFile loads baseDir/path and uploads it as a 2D texture.
func FromFile(dev gpu.Device, path, baseDir string, opts Options) (uint32, error) {
	full := filepath.Join(baseDir, path)
	img, err := Load(full, opts.FlipY)
	if err != nil {
		return 0, err
	}

	id := dev.CreateTexture2D(img.GPU(), opts.params())
	logger.Named("texture").Debug("texture uploaded",
		zap.String("path", full),
		zap.Uint32("id", id),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Stringer("format", img.Format()),
		zap.Bool("srgb", opts.Gamma))
	return id, nil
}

// CubemapFaces lists face file names in +X, -X, +Y, -Y, +Z, -Z order.
type CubemapFaces [6]string

// DefaultSkybox is the usual skybox face naming.
var DefaultSkybox = CubemapFaces{"right.jpg", "left.jpg", "top.jpg", "bottom.jpg", "front.jpg", "back.jpg"}

// LoadCubemap loads six face images from baseDir and uploads them as a cube map.
// Faces are not flipped.
func LoadCubemap(dev gpu.Device, baseDir string, faces CubemapFaces) (uint32, error) {
	var images [6]gpu.TextureImage
	for i, face := range faces {
		img, err := Load(filepath.Join(baseDir, face), false)
		if err != nil {
			return 0, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		images[i] = img.GPU()
	}

	id := dev.CreateCubemap(images)
	logger.Named("texture").Debug("cubemap uploaded", zap.String("dir", baseDir), zap.Uint32("id", id))
	return id, nil
}
