// Package debug provides screenshot capture, GL error checks and debug
// geometry.
package debug

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Screenshots saves the frames of one demo as
// <dir>/<name>_<timestamp>.png, name being the slug of the demo title.
type Screenshots struct {
	dir   string
	name  string
	clock func() time.Time
}

// NewScreenshots returns a writer for the demo titled title. An empty dir
// writes to the working directory.
func NewScreenshots(dir, title string) *Screenshots {
	return &Screenshots{dir: dir, name: Slug(title), clock: time.Now}
}

// Slug lowercases title and joins its words with underscores:
// "Asteroids Instanced" becomes "asteroids_instanced".
func Slug(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "frame"
	}
	return strings.Join(words, "_")
}

// Path returns the file the next screenshot would be written to.
func (s *Screenshots) Path() string {
	file := fmt.Sprintf("%s_%s.png", s.name, s.clock().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(s.dir, file)
}

// SaveRGBA writes width*height RGBA pixels stored bottom row first, the way
// glReadPixels returns them.
func (s *Screenshots) SaveRGBA(pixels []byte, width, height int) (string, error) {
	if want := width * height * 4; len(pixels) != want {
		return "", fmt.Errorf("screenshot: %d bytes of pixels for %dx%d, want %d", len(pixels), width, height, want)
	}
	img := &image.RGBA{Pix: pixels, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	return s.Save(transform.FlipV(img))
}

// Save writes img top row first.
func (s *Screenshots) Save(img image.Image) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("screenshot: %w", err)
		}
	}
	path := s.Path()
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", path, err)
	}
	return path, nil
}
