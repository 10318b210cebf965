package demos

import (
	"io/fs"
	"math/rand/v2"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/harness"
)

var wantIDs = []string{
	"1_1_1", "1_1_2",
	"1_2_1", "1_2_2", "1_2_3", "1_2_4", "1_2_5",
	"1_3_1", "1_3_2", "1_3_3",
	"1_4_1", "1_4_2",
	"1_5_1",
	"1_6_1", "1_6_2", "1_6_3",
	"1_7_1", "1_7_2", "1_7_3", "1_7_4",
	"2_1", "2_2_1", "2_2_2", "2_3_1", "2_4_1", "2_4_2",
	"2_5_1", "2_5_2", "2_5_3", "2_5_4", "2_6",
	"3_1",
	"4_1_1", "4_1_2", "4_2", "4_3_1", "4_3_2", "4_5_1", "4_6_1", "4_6_2",
	"4_8", "4_9_1", "4_9_2", "4_9_3", "4_10_1", "4_10_2", "4_10_3", "4_11",
	"5_1", "5_2", "5_3_1", "5_4", "5_6", "5_7", "5_9",
	"6_1_1", "6_1_2",
	"7_1", "7_2",
}

func TestAllInChapterOrder(t *testing.T) {
	var got []string
	for _, d := range All() {
		got = append(got, d.ID)
		assert.NotEmpty(t, d.Title, d.ID)
		assert.NotNil(t, d.New, d.ID)
	}
	assert.Equal(t, wantIDs, got)
}

func TestIDLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1_2_5", "1_10_1", true},
		{"1_10_1", "1_2_5", false},
		{"4_9_3", "4_10_1", true},
		{"2_6", "2_5_4", false},
		{"5_3", "5_3_1", true},
		{"5_3_1", "5_3_1", false},
		{"1_a", "1_b", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idLess(tt.a, tt.b), "%s < %s", tt.a, tt.b)
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("4_10_3")
	require.True(t, ok)
	assert.Equal(t, "Asteroids Instanced", d.Title)

	_, ok = Lookup("9_9_9")
	assert.False(t, ok)
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(Demo{ID: "1_1_1", Title: "again"})
	})
}

func TestOptionsDefaults(t *testing.T) {
	d := Demo{ID: "x", Title: "Plain", New: func() harness.Options { return harness.Options{} }}
	opts := d.Options()
	assert.Equal(t, "Plain", opts.Title)
	assert.Equal(t, Shaders, opts.Shaders)

	d.New = func() harness.Options { return harness.Options{Title: "Custom"} }
	assert.Equal(t, "Custom", d.Options().Title)
}

func TestEveryDemoBuildsOptions(t *testing.T) {
	for _, d := range All() {
		opts := d.Options()
		assert.NotNil(t, opts.Frame, d.ID)
	}
}

var shaderPath = regexp.MustCompile(`"([a-z_]+/[a-z_0-9]+\.(?:vs|fs|gs))"`)

// Every shader path named in the demo sources must exist in the embedded
// tree.
func TestShaderPathsExist(t *testing.T) {
	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	seen := 0
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		src, err := os.ReadFile(name)
		require.NoError(t, err)
		for _, m := range shaderPath.FindAllStringSubmatch(string(src), -1) {
			seen++
			_, err := fs.Stat(Shaders, m[1])
			assert.NoError(t, err, "%s references %s", name, m[1])
		}
	}
	assert.Greater(t, seen, 50)
}

func TestShadersDeclareCoreProfile(t *testing.T) {
	err := fs.WalkDir(Shaders, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		src, err := fs.ReadFile(Shaders, path)
		if err != nil {
			return err
		}
		assert.True(t, strings.HasPrefix(string(src), "#version 410 core"), path)
		return nil
	})
	require.NoError(t, err)
}

func TestLayout(t *testing.T) {
	stride, attribs := layout(3, 3, 2)
	assert.Equal(t, int32(32), stride)
	assert.Equal(t, []gpu.Attrib{
		{Location: 0, Size: 3, Offset: 0},
		{Location: 1, Size: 3, Offset: 12},
		{Location: 2, Size: 2, Offset: 24},
	}, attribs)

	stride, attribs = layout()
	assert.Zero(t, stride)
	assert.Empty(t, attribs)
}

func TestBackToFront(t *testing.T) {
	positions := []mgl32.Vec3{{0, 0, 1}, {0, 0, 5}, {0, 0, 3}}
	got := backToFront(positions, mgl32.Vec3{})
	assert.Equal(t, []mgl32.Vec3{{0, 0, 5}, {0, 0, 3}, {0, 0, 1}}, got)
	// the input keeps its order
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, positions[0])
}

func TestAsteroidMatrices(t *testing.T) {
	field := asteroidField{amount: 200, radius: 50, offset: 2.5}
	matrices := field.matrices(rand.New(rand.NewPCG(1, 2)))
	require.Len(t, matrices, 200)

	for i, m := range matrices {
		pos := m.Col(3).Vec3()
		ring := mgl32.Vec2{pos.X(), pos.Z()}.Len()
		// displacement is at most offset on each axis
		assert.InDelta(t, 50, ring, 2*2.5, "rock %d", i)
		assert.LessOrEqual(t, pos.Y(), float32(2.5*0.4), "rock %d", i)
	}

	again := field.matrices(rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, matrices, again)
}

func TestSSAOKernel(t *testing.T) {
	kernel := ssaoKernel(rand.New(rand.NewPCG(7, 11)), ssaoKernelSize)
	require.Len(t, kernel, ssaoKernelSize)
	for i, s := range kernel {
		assert.GreaterOrEqual(t, s.Z(), float32(0), "sample %d", i)
		assert.LessOrEqual(t, s.Len(), float32(1.0001), "sample %d", i)
	}
	// the first samples are scaled down to 10%
	assert.LessOrEqual(t, kernel[0].Len(), float32(0.1001))
}

func TestSSAONoise(t *testing.T) {
	noise := ssaoNoise(rand.New(rand.NewPCG(7, 11)), ssaoNoiseSize)
	require.Len(t, noise, ssaoNoiseSize*ssaoNoiseSize*3)
	for i := 0; i < len(noise); i += 3 {
		assert.InDelta(t, 0, noise[i], 1)
		assert.InDelta(t, 0, noise[i+1], 1)
		assert.Zero(t, noise[i+2])
	}
}

func TestNormalMappingQuadTangents(t *testing.T) {
	vertices, indices := normalMappingQuad()
	assert.Len(t, indices, 6)
	for i, v := range vertices {
		assert.InDelta(t, 1, v.Tangent[0], 1e-5, "vertex %d", i)
		assert.InDelta(t, 1, v.Bitangent[1], 1e-5, "vertex %d", i)
	}
}

func TestSphereMaterial(t *testing.T) {
	metallic, roughness := sphereMaterial(0, 0)
	assert.Zero(t, metallic)
	assert.Equal(t, float32(0.05), roughness)

	metallic, roughness = sphereMaterial(pbrRows-1, pbrColumns-1)
	assert.InDelta(t, 6.0/7, metallic, 1e-6)
	assert.InDelta(t, 6.0/7, roughness, 1e-6)
}

func TestSphereGridCentered(t *testing.T) {
	center := sphereGrid(pbrRows/2, pbrColumns/2).Col(3).Vec3()
	assert.Equal(t, mgl32.Vec3{}, center)
	corner := sphereGrid(0, 0).Col(3).Vec3()
	assert.Equal(t, mgl32.Vec3{-7.5, -7.5, 0}, corner)
}

func TestExposureKeys(t *testing.T) {
	exposure := float32(1)
	exposureKeys(input.KeyE, &exposure)
	assert.InDelta(t, 1.1, exposure, 1e-6)
	exposureKeys(input.KeyQ, &exposure)
	exposureKeys(input.KeyQ, &exposure)
	assert.InDelta(t, 0.9, exposure, 1e-6)

	exposure = 0.01
	exposureKeys(input.KeyQ, &exposure)
	assert.Equal(t, float32(0.01), exposure)
}
