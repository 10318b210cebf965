package formats

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const quadOBJ = `# textured quad
mtllib quad.mtl
o Quad
v -1 -1 0
v  1 -1 0
v  1  1 0
v -1  1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl wood
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	obj, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}

	if !reflect.DeepEqual(obj.MaterialLibs, []string{"quad.mtl"}) {
		t.Errorf("MaterialLibs = %v", obj.MaterialLibs)
	}
	if obj.PositionCount != 4 || obj.TexCoordCount != 4 || obj.NormalCount != 1 {
		t.Errorf("counts = %d/%d/%d", obj.PositionCount, obj.TexCoordCount, obj.NormalCount)
	}
	if len(obj.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(obj.Groups))
	}

	g := obj.Groups[0]
	if g.Name != "Quad" || g.Material != "wood" {
		t.Errorf("group = %q/%q", g.Name, g.Material)
	}

	// Fan triangulation: (0,1,2) (0,2,3)
	wantIdx := []uint32{0, 1, 2, 0, 2, 3}
	if !reflect.DeepEqual(g.Indices, wantIdx) {
		t.Errorf("Indices = %v, want %v", g.Indices, wantIdx)
	}
	if g.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", g.VertexCount())
	}

	wantPos := []float32{-1, -1, 0, 1, -1, 0, 1, 1, 0, -1, 1, 0}
	if !reflect.DeepEqual(g.Positions, wantPos) {
		t.Errorf("Positions = %v", g.Positions)
	}
	wantTex := []float32{0, 0, 1, 0, 1, 1, 0, 1}
	if !reflect.DeepEqual(g.TexCoords, wantTex) {
		t.Errorf("TexCoords = %v", g.TexCoords)
	}
	if len(g.Normals) != 12 {
		t.Errorf("Normals has %d values, want 12", len(g.Normals))
	}
}

func TestParseOBJNegativeIndices(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	obj, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	g := obj.Groups[0]
	if !reflect.DeepEqual(g.Indices, []uint32{0, 1, 2}) {
		t.Errorf("Indices = %v", g.Indices)
	}
	if !reflect.DeepEqual(g.Positions, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}) {
		t.Errorf("Positions = %v", g.Positions)
	}
	if len(g.Normals) != 0 || len(g.TexCoords) != 0 {
		t.Error("expected empty normal and texcoord streams")
	}
}

func TestParseOBJDeduplicatesTriples(t *testing.T) {
	// Same position with two different normals yields two vertices.
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
vn 0 0 -1
f 1//1 2//1 3//1
f 1//2 3//2 2//2
f 1//1 2//1 3//1
`
	obj, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	g := obj.Groups[0]
	if g.VertexCount() != 6 {
		t.Errorf("VertexCount = %d, want 6", g.VertexCount())
	}
	want := []uint32{0, 1, 2, 3, 4, 5, 0, 1, 2}
	if !reflect.DeepEqual(g.Indices, want) {
		t.Errorf("Indices = %v, want %v", g.Indices, want)
	}
}

func TestParseOBJGroupsByMaterial(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
g body
usemtl red
f 1 2 3
usemtl blue
f 2 4 3
g empty
`
	obj, err := ParseOBJ(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(obj.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(obj.Groups))
	}
	if obj.Groups[0].Material != "red" || obj.Groups[1].Material != "blue" {
		t.Errorf("materials = %q, %q", obj.Groups[0].Material, obj.Groups[1].Material)
	}
	if obj.Groups[1].Name != "body" {
		t.Errorf("second group name = %q", obj.Groups[1].Name)
	}
	// Indices are local to each group
	if !reflect.DeepEqual(obj.Groups[1].Indices, []uint32{0, 1, 2}) {
		t.Errorf("second group indices = %v", obj.Groups[1].Indices)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"bad number", "v 1 x 3\n", ErrOBJSyntax},
		{"short vertex", "v 1 2\n", ErrOBJSyntax},
		{"short face", "v 0 0 0\nf 1 1\n", ErrOBJSyntax},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrOBJIndex},
		{"index past end", "v 0 0 0\nf 1 1 2\n", ErrOBJIndex},
		{"negative past start", "v 0 0 0\nf -2 1 1\n", ErrOBJIndex},
		{"texcoord out of range", "v 0 0 0\nf 1/1 1/1 1/1\n", ErrOBJIndex},
		{"bad ref", "v 0 0 0\nf 1/2/3/4 1 1\n", ErrOBJSyntax},
		{"mtllib without name", "mtllib\n", ErrOBJSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseOBJErrorLine(t *testing.T) {
	_, err := ParseOBJ(strings.NewReader("v 0 0 0\n\n# c\nf 1 1 9\n"))
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("expected error on line 4, got %v", err)
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	obj, err := ParseOBJFile(path)
	if err != nil {
		t.Fatalf("ParseOBJFile: %v", err)
	}
	if len(obj.Groups) != 1 {
		t.Errorf("expected 1 group, got %d", len(obj.Groups))
	}

	_, err = ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
