package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveRGBAFlips(t *testing.T) {
	dir := t.TempDir()
	shots := NewScreenshots(filepath.Join(dir, "shots"), "Asteroids Instanced")
	shots.clock = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	// 1x2 image: bottom row red, top row blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	path, err := shots.SaveRGBA(pixels, 1, 2)
	if err != nil {
		t.Fatalf("SaveRGBA() error = %v", err)
	}
	if want := filepath.Join(dir, "shots", "asteroids_instanced_2024-01-02_03-04-05.000.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if b>>8 != 255 || r != 0 {
		t.Errorf("top pixel should be blue after flip, got r=%d b=%d", r>>8, b>>8)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r>>8 != 255 || b != 0 {
		t.Errorf("bottom pixel should be red after flip, got r=%d b=%d", r>>8, b>>8)
	}
}

func TestSaveRGBASizeMismatch(t *testing.T) {
	shots := NewScreenshots(t.TempDir(), "frame")
	if _, err := shots.SaveRGBA(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Asteroids Instanced":   "asteroids_instanced",
		"Hello Triangle (EBO)":  "hello_triangle_ebo",
		"PBR Lighting Textured": "pbr_lighting_textured",
		"":                      "frame",
		" -- ":                  "frame",
	}
	for title, want := range tests {
		if got := Slug(title); got != want {
			t.Errorf("Slug(%q) = %q, want %q", title, got, want)
		}
	}
}

func TestBoxLines(t *testing.T) {
	v := BoxLines([3]float32{0, 0, 0}, [3]float32{1, 2, 3}, 0.5)
	if len(v) != BoxLineVertexCount*3 {
		t.Fatalf("len = %d, want %d", len(v), BoxLineVertexCount*3)
	}
	for i := 0; i < len(v); i += 3 {
		if v[i] != -0.5 && v[i] != 1.5 {
			t.Errorf("vertex %d x = %v, want padded bound", i/3, v[i])
		}
		if v[i+2] != -0.5 && v[i+2] != 3.5 {
			t.Errorf("vertex %d z = %v, want padded bound", i/3, v[i+2])
		}
	}
}

func TestErrorName(t *testing.T) {
	tests := map[uint32]string{
		0x0500: "INVALID_ENUM",
		0x0502: "INVALID_OPERATION",
		0x0506: "INVALID_FRAMEBUFFER_OPERATION",
		0x9999: "UNKNOWN",
	}
	for code, want := range tests {
		if got := ErrorName(code); got != want {
			t.Errorf("ErrorName(0x%x) = %q, want %q", code, got, want)
		}
	}
}

func TestBoxLinesAxisAligned(t *testing.T) {
	v := BoxLines([3]float32{-1, -1, -1}, [3]float32{1, 1, 1}, 0)
	for i := 0; i < len(v); i += 6 {
		differ := 0
		for axis := 0; axis < 3; axis++ {
			if v[i+axis] != v[i+3+axis] {
				differ++
			}
		}
		if differ != 1 {
			t.Errorf("edge %d changes %d coordinates, want 1", i/6, differ)
		}
	}
}
