// Package lighting describes the light casters of the Phong and PBR shaders
// and uploads them as uniform structs.
package lighting

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the size of the point light arrays declared in the
// shaders.
const MaxPointLights = 4

// Uniforms is the part of a shader program the lights write to.
type Uniforms interface {
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
}

// Phong holds the three colors a light contributes.
type Phong struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

func (c Phong) apply(u Uniforms, name string) {
	u.SetVec3(name+".ambient", c.Ambient)
	u.SetVec3(name+".diffuse", c.Diffuse)
	u.SetVec3(name+".specular", c.Specular)
}

// Attenuation is the constant/linear/quadratic distance falloff.
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// Range50 covers a distance of about 50 units.
var Range50 = Attenuation{Constant: 1, Linear: 0.09, Quadratic: 0.032}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1 / (a.Constant + a.Linear*d + a.Quadratic*d*d)
}

func (a Attenuation) apply(u Uniforms, name string) {
	u.SetFloat(name+".constant", a.Constant)
	u.SetFloat(name+".linear", a.Linear)
	u.SetFloat(name+".quadratic", a.Quadratic)
}

// Directional is a light infinitely far away, like the sun.
type Directional struct {
	Direction mgl32.Vec3
	Phong
}

// Apply writes the light to the uniform struct called name.
func (l Directional) Apply(u Uniforms, name string) {
	u.SetVec3(name+".direction", l.Direction)
	l.Phong.apply(u, name)
}

// Point is an attenuated light radiating in all directions.
type Point struct {
	Position mgl32.Vec3
	Phong
	Attenuation
}

// Apply writes the light to the uniform struct called name.
func (l Point) Apply(u Uniforms, name string) {
	u.SetVec3(name+".position", l.Position)
	l.Phong.apply(u, name)
	l.Attenuation.apply(u, name)
}

// ApplyPoints writes lights to the uniform array called name and returns
// how many were written. Lights past MaxPointLights are dropped.
func ApplyPoints(u Uniforms, name string, lights []Point) int {
	n := min(len(lights), MaxPointLights)
	for i := range n {
		lights[i].Apply(u, fmt.Sprintf("%s[%d]", name, i))
	}
	return n
}

// Spot is a point light restricted to a cone. Angles are in degrees; a
// zero OuterCutOff gives a hard edge and is not uploaded.
type Spot struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	Phong
	Attenuation
}

// Apply writes the light to the uniform struct called name. Cut-off angles
// are uploaded as cosines.
func (l Spot) Apply(u Uniforms, name string) {
	u.SetVec3(name+".position", l.Position)
	u.SetVec3(name+".direction", l.Direction)
	u.SetFloat(name+".cutOff", math32.Cos(mgl32.DegToRad(l.CutOff)))
	if l.OuterCutOff > 0 {
		u.SetFloat(name+".outerCutOff", math32.Cos(mgl32.DegToRad(l.OuterCutOff)))
	}
	l.Phong.apply(u, name)
	l.Attenuation.apply(u, name)
}

// Colored is a light with a single, possibly HDR, color.
type Colored struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// ColoredLights is a fixed set of colored lights.
type ColoredLights []Colored

// Apply writes the lights to an array of {Position, Color} structs.
func (ls ColoredLights) Apply(u Uniforms, name string) {
	for i, l := range ls[:min(len(ls), MaxPointLights)] {
		u.SetVec3(fmt.Sprintf("%s[%d].Position", name, i), l.Position)
		u.SetVec3(fmt.Sprintf("%s[%d].Color", name, i), l.Color)
	}
}

// ApplyArrays writes the lights to two parallel arrays, offsetting every
// position by shift.
func (ls ColoredLights) ApplyArrays(u Uniforms, positions, colors string, shift mgl32.Vec3) {
	for i, l := range ls[:min(len(ls), MaxPointLights)] {
		u.SetVec3(fmt.Sprintf("%s[%d]", positions, i), l.Position.Add(shift))
		u.SetVec3(fmt.Sprintf("%s[%d]", colors, i), l.Color)
	}
}
