package lighting

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// recorder captures uniform writes by name.
type recorder struct {
	vec3s  map[string]mgl32.Vec3
	floats map[string]float32
}

func newRecorder() *recorder {
	return &recorder{vec3s: map[string]mgl32.Vec3{}, floats: map[string]float32{}}
}

func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.vec3s[name] = v }
func (r *recorder) SetFloat(name string, v float32)   { r.floats[name] = v }

var white = Phong{
	Ambient:  mgl32.Vec3{0.1, 0.1, 0.1},
	Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
	Specular: mgl32.Vec3{1, 1, 1},
}

func TestDirectionalApply(t *testing.T) {
	r := newRecorder()
	Directional{Direction: mgl32.Vec3{-0.2, -1, -0.3}, Phong: white}.Apply(r, "dirLight")

	assert.Equal(t, mgl32.Vec3{-0.2, -1, -0.3}, r.vec3s["dirLight.direction"])
	assert.Equal(t, white.Diffuse, r.vec3s["dirLight.diffuse"])
	assert.Len(t, r.vec3s, 4)
	assert.Empty(t, r.floats)
}

func TestApplyPoints(t *testing.T) {
	r := newRecorder()
	lights := make([]Point, 6)
	for i := range lights {
		lights[i] = Point{Position: mgl32.Vec3{float32(i), 0, 0}, Phong: white, Attenuation: Range50}
	}

	n := ApplyPoints(r, "pointLights", lights)
	assert.Equal(t, MaxPointLights, n)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, r.vec3s["pointLights[3].position"])
	assert.Equal(t, float32(0.032), r.floats["pointLights[2].quadratic"])
	_, ok := r.vec3s["pointLights[4].position"]
	assert.False(t, ok)
}

func TestSpotCutOffs(t *testing.T) {
	r := newRecorder()
	Spot{CutOff: 12.5, Phong: white, Attenuation: Range50}.Apply(r, "light")
	assert.InDelta(t, math32.Cos(mgl32.DegToRad(12.5)), r.floats["light.cutOff"], 1e-6)
	_, ok := r.floats["light.outerCutOff"]
	assert.False(t, ok, "hard spot has no outer cone")

	Spot{CutOff: 12.5, OuterCutOff: 17.5}.Apply(r, "light")
	assert.InDelta(t, 0.9537, r.floats["light.outerCutOff"], 1e-4)
}

func TestAttenuationAt(t *testing.T) {
	assert.Equal(t, float32(1), Range50.At(0))
	assert.Less(t, Range50.At(50), float32(0.02))
}

func TestColoredLights(t *testing.T) {
	ls := ColoredLights{
		{Position: mgl32.Vec3{0, 0, 49.5}, Color: mgl32.Vec3{200, 200, 200}},
		{Position: mgl32.Vec3{-1.4, -1.9, 9}, Color: mgl32.Vec3{0.1, 0, 0}},
	}

	r := newRecorder()
	ls.Apply(r, "lights")
	assert.Equal(t, mgl32.Vec3{200, 200, 200}, r.vec3s["lights[0].Color"])
	assert.Equal(t, mgl32.Vec3{-1.4, -1.9, 9}, r.vec3s["lights[1].Position"])

	r = newRecorder()
	ls.ApplyArrays(r, "lightPositions", "lightColors", mgl32.Vec3{1, 0, 0})
	assert.Equal(t, mgl32.Vec3{1, 0, 49.5}, r.vec3s["lightPositions[0]"])
	assert.Equal(t, mgl32.Vec3{0.1, 0, 0}, r.vec3s["lightColors[1]"])
}
