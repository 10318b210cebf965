package formats

import (
	"errors"
	"strings"
	"testing"
)

const backpackMTL = `# two materials
newmtl Scene_-_Root
Ns 225.000000
Ka 1.000000 1.000000 1.000000
Kd 0.800000 0.800000 0.800000
Ks 0.500000 0.500000 0.500000
d 1.000000
illum 2
map_Kd diffuse.jpg
map_Bump -bm 1.000000 normal.png
map_Ks specular.jpg

newmtl glass
Kd 0.5
Tr 0.25
norm -o 0.5 0.5 -s 2 2 1 tiles normal.png
map_d alpha.png
disp -bm 0.1 height.png
`

func TestParseMTL(t *testing.T) {
	mats, err := ParseMTL(strings.NewReader(backpackMTL))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(mats) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mats))
	}

	m := mats["Scene_-_Root"]
	if m == nil {
		t.Fatal("missing material Scene_-_Root")
	}
	if m.Shininess != 225 {
		t.Errorf("Shininess = %v", m.Shininess)
	}
	if m.Diffuse != [3]float32{0.8, 0.8, 0.8} {
		t.Errorf("Diffuse = %v", m.Diffuse)
	}
	if m.Illum != 2 {
		t.Errorf("Illum = %d", m.Illum)
	}
	if m.DiffuseMap != "diffuse.jpg" || m.SpecularMap != "specular.jpg" || m.NormalMap != "normal.png" {
		t.Errorf("maps = %q %q %q", m.DiffuseMap, m.SpecularMap, m.NormalMap)
	}

	g := mats["glass"]
	if g.Diffuse != [3]float32{0.5, 0.5, 0.5} {
		t.Errorf("single-value Kd = %v", g.Diffuse)
	}
	if g.Dissolve != 0.75 {
		t.Errorf("Dissolve = %v, want 0.75", g.Dissolve)
	}
	if g.NormalMap != "tiles normal.png" {
		t.Errorf("NormalMap = %q", g.NormalMap)
	}
	if g.AlphaMap != "alpha.png" {
		t.Errorf("AlphaMap = %q", g.AlphaMap)
	}
	if g.DisplacementMap != "height.png" {
		t.Errorf("DisplacementMap = %q", g.DisplacementMap)
	}
}

func TestParseMTLDefaults(t *testing.T) {
	mats, err := ParseMTL(strings.NewReader("newmtl plain\n"))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if mats["plain"].Dissolve != 1 {
		t.Errorf("default Dissolve = %v, want 1", mats["plain"].Dissolve)
	}
}

func TestParseMTLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"before newmtl", "Kd 1 1 1\n"},
		{"newmtl without name", "newmtl\n"},
		{"bad color", "newmtl a\nKd red\n"},
		{"map without file", "newmtl a\nmap_Kd -bm 1\n"},
		{"unknown option", "newmtl a\nmap_Kd -zz 1 file.png\n"},
		{"bad illum", "newmtl a\nillum two\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMTL(strings.NewReader(tt.data))
			if !errors.Is(err, ErrMTLSyntax) {
				t.Errorf("err = %v, want ErrMTLSyntax", err)
			}
		})
	}
}
