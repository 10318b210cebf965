package demos

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/lighting"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "6_1_1", Title: "PBR Lighting", New: pbrLighting})
	Register(Demo{ID: "6_1_2", Title: "PBR Lighting Textured", New: pbrTextured})
}

const (
	pbrRows    = 7
	pbrColumns = 7
	pbrSpacing = 2.5
)

var pbrLights = lighting.ColoredLights{
	{Position: mgl32.Vec3{-10, 10, 10}, Color: mgl32.Vec3{300, 300, 300}},
	{Position: mgl32.Vec3{10, 10, 10}, Color: mgl32.Vec3{300, 300, 300}},
	{Position: mgl32.Vec3{-10, -10, 10}, Color: mgl32.Vec3{300, 300, 300}},
	{Position: mgl32.Vec3{10, -10, 10}, Color: mgl32.Vec3{300, 300, 300}},
}

// sphereGrid returns the model matrix of the sphere at row, col, with the
// grid centered on the origin.
func sphereGrid(row, col int) mgl32.Mat4 {
	return mgl32.Translate3D(
		(float32(col)-pbrColumns/2)*pbrSpacing,
		(float32(row)-pbrRows/2)*pbrSpacing,
		0,
	)
}

// sphereMaterial returns the metallic and roughness of the sphere at row,
// col. Roughness is clamped away from zero, which looks off under direct
// lighting.
func sphereMaterial(row, col int) (metallic, roughness float32) {
	metallic = float32(row) / pbrRows
	roughness = math32.Min(math32.Max(float32(col)/pbrColumns, 0.05), 1)
	return metallic, roughness
}

// setPBRLights sets the four point lights. The lights are offset by a
// time-varying x so they sweep across the grid.
func setPBRLights(app *harness.App, prog *shader.Program) {
	offset := math32.Sin(app.Time*5) * 5
	pbrLights.ApplyArrays(prog, "lightPositions", "lightColors", mgl32.Vec3{offset, 0, 0})
}

func setModel(prog *shader.Program, m mgl32.Mat4) {
	prog.SetMat4("model", m)
	prog.SetMat3("normalMatrix", m.Mat3().Inv().Transpose())
}

// pbrLighting draws a grid of spheres, metallic increasing bottom to top
// and roughness left to right.
func pbrLighting() harness.Options {
	var (
		prog   *shader.Program
		sphere *primitives.Shape
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 20),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("pbr/pbr.vs", "pbr/pbr.fs"); err != nil {
				return err
			}
			sphere = shape(app, primitives.NewSphere(app.Device, 64, 64))
			prog.Use()
			prog.SetVec3f("albedo", 0.5, 0, 0)
			prog.SetFloat("ao", 1)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			prog.SetVec3("camPos", app.Camera.Position)
			setPBRLights(app, prog)
			for row := range pbrRows {
				for col := range pbrColumns {
					metallic, roughness := sphereMaterial(row, col)
					prog.SetFloat("metallic", metallic)
					prog.SetFloat("roughness", roughness)
					setModel(prog, sphereGrid(row, col))
					sphere.Draw()
				}
			}
			return nil
		},
	}
}

// pbrTextured draws the same grid with every sphere using the rusted iron
// material maps.
func pbrTextured() harness.Options {
	maps := []string{"albedo", "normal", "metallic", "roughness", "ao"}
	var (
		prog   *shader.Program
		sphere *primitives.Shape
		ids    []uint32
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 20),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("pbr/pbr.vs", "pbr/pbr_textured.fs"); err != nil {
				return err
			}
			paths := make([]string, len(maps))
			for i, m := range maps {
				paths[i] = fmt.Sprintf("textures/pbr/rusted_iron/%s.png", m)
			}
			if ids, err = loadTextures(app, texture.Options{}, paths...); err != nil {
				return err
			}
			sphere = shape(app, primitives.NewSphere(app.Device, 64, 64))
			prog.Use()
			for i, m := range maps {
				prog.SetInt(m+"Map", int32(i))
			}
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			prog.SetVec3("camPos", app.Camera.Position)
			setPBRLights(app, prog)
			bindTextures(app, ids...)
			for row := range pbrRows {
				for col := range pbrColumns {
					setModel(prog, sphereGrid(row, col))
					sphere.Draw()
				}
			}
			return nil
		},
	}
}
