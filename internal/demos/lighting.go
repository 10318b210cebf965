package demos

import (
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
	Register(Demo{ID: "2_1", Title: "Colors", New: litScene("lighting/colors.vs", "lighting/colors.fs", colorsUniforms)})
	Register(Demo{ID: "2_2_1", Title: "Basic Lighting Diffuse", New: litScene("lighting/basic_lighting.vs", "lighting/basic_lighting_diffuse.fs", basicLightingUniforms(false))})
	Register(Demo{ID: "2_2_2", Title: "Basic Lighting Specular", New: litScene("lighting/basic_lighting.vs", "lighting/basic_lighting_specular.fs", basicLightingUniforms(true))})
	Register(Demo{ID: "2_3_1", Title: "Materials", New: litScene("lighting/basic_lighting.vs", "lighting/materials.fs", materialsUniforms)})
	Register(Demo{ID: "2_4_1", Title: "Lighting Maps Diffuse", New: mappedScene("lighting/lighting_maps_diffuse.fs", false, false, lightingMapsUniforms(false))})
	Register(Demo{ID: "2_4_2", Title: "Lighting Maps Specular", New: mappedScene("lighting/lighting_maps_specular.fs", true, false, lightingMapsUniforms(true))})
	Register(Demo{ID: "2_5_1", Title: "Light Casters Directional", New: mappedScene("lighting/light_casters_directional.fs", true, true, directionalUniforms)})
	Register(Demo{ID: "2_5_2", Title: "Light Casters Point", New: mappedScene("lighting/light_casters_point.fs", true, true, pointUniforms)})
	Register(Demo{ID: "2_5_3", Title: "Light Casters Spot", New: mappedScene("lighting/light_casters_spot.fs", true, true, spotUniforms(false))})
	Register(Demo{ID: "2_5_4", Title: "Light Casters Spot Soft", New: mappedScene("lighting/light_casters_spot_soft.fs", true, true, spotUniforms(true))})
	Register(Demo{ID: "2_6", Title: "Multiple Lights", New: mappedScene("lighting/multiple_lights.fs", true, true, multipleLightsUniforms)})
}

var lightPos = mgl32.Vec3{1.2, 1.0, 2.0}

var pointLightPositions = []mgl32.Vec3{
	{0.7, 0.2, 2.0},
	{2.3, -3.3, -4.0},
	{-4.0, 2.0, -12.0},
	{0.0, 0.0, -3.0},
}

// lightingScene is the cube-and-lamp scene shared by the lighting chapter.
// uniforms sets the lighting program's per-frame values after the
// transforms and returns where lamp cubes are drawn.
type lightingScene struct {
	vertex, fragment string
	maps             []string
	tenCubes         bool
	uniforms         func(app *harness.App, prog *shader.Program) (lamps []mgl32.Vec3)

	prog, lamp *shader.Program
	cube       *primitives.Shape
	ids        []uint32
}

func (s *lightingScene) setup(app *harness.App) (err error) {
	gl.Enable(gl.DEPTH_TEST)
	if s.prog, err = app.LoadShader(s.vertex, s.fragment); err != nil {
		return err
	}
	if s.lamp, err = app.LoadShader("lighting/colors.vs", "lighting/light_cube.fs"); err != nil {
		return err
	}
	if s.ids, err = loadTextures(app, texture.Options{FlipY: true}, s.maps...); err != nil {
		return err
	}
	if len(s.maps) > 0 {
		s.prog.Use()
		s.prog.SetInt("material.diffuse", 0)
		if len(s.maps) > 1 {
			s.prog.SetInt("material.specular", 1)
		}
	}
	s.cube = shape(app, primitives.NewCube(app.Device))
	return nil
}

func (s *lightingScene) frame(app *harness.App, dt float32) error {
	clearScreen(0.1, 0.1, 0.1)
	projection := app.Projection(0.1, 100)
	view := app.View()

	s.prog.Use()
	s.prog.SetMat4("projection", projection)
	s.prog.SetMat4("view", view)
	lamps := s.uniforms(app, s.prog)

	bindTextures(app, s.ids...)
	if s.tenCubes {
		for i, pos := range cubePositions {
			s.prog.SetMat4("model", translate(pos).Mul4(rotate(20*float32(i), mgl32.Vec3{1, 0.3, 0.5})))
			s.cube.Draw()
		}
	} else {
		s.prog.SetMat4("model", mgl32.Ident4())
		s.cube.Draw()
	}

	if len(lamps) == 0 {
		return nil
	}
	s.lamp.Use()
	s.lamp.SetMat4("projection", projection)
	s.lamp.SetMat4("view", view)
	for _, pos := range lamps {
		s.lamp.SetMat4("model", translate(pos).Mul4(scale(0.2)))
		s.cube.Draw()
	}
	return nil
}

func (s *lightingScene) options() harness.Options {
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup:         s.setup,
		Frame:         s.frame,
	}
}

func litScene(vertex, fragment string, uniforms func(*harness.App, *shader.Program) []mgl32.Vec3) func() harness.Options {
	return func() harness.Options {
		s := &lightingScene{vertex: vertex, fragment: fragment, uniforms: uniforms}
		return s.options()
	}
}

// mappedScene uses the diffuse (and specular) container maps.
func mappedScene(fragment string, specular, tenCubes bool, uniforms func(*harness.App, *shader.Program) []mgl32.Vec3) func() harness.Options {
	return func() harness.Options {
		maps := []string{"textures/container2.png"}
		if specular {
			maps = append(maps, "textures/container2_specular.png")
		}
		s := &lightingScene{
			vertex:   "lighting/lighting_maps.vs",
			fragment: fragment,
			maps:     maps,
			tenCubes: tenCubes,
			uniforms: uniforms,
		}
		return s.options()
	}
}

func colorsUniforms(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
	prog.SetVec3f("objectColor", 1.0, 0.5, 0.31)
	prog.SetVec3f("lightColor", 1.0, 1.0, 1.0)
	return []mgl32.Vec3{lightPos}
}

func basicLightingUniforms(specular bool) func(*harness.App, *shader.Program) []mgl32.Vec3 {
	return func(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
		colorsUniforms(app, prog)
		prog.SetVec3("lightPos", lightPos)
		if specular {
			prog.SetVec3("viewPos", app.Camera.Position)
		}
		return []mgl32.Vec3{lightPos}
	}
}

func materialsUniforms(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
	prog.SetVec3("light.position", lightPos)
	prog.SetVec3("viewPos", app.Camera.Position)

	t := app.Time
	lightColor := mgl32.Vec3{math32.Sin(t * 2.0), math32.Sin(t * 0.7), math32.Sin(t * 1.3)}
	diffuse := lightColor.Mul(0.5)
	ambient := diffuse.Mul(0.2)
	prog.SetVec3("light.ambient", ambient)
	prog.SetVec3("light.diffuse", diffuse)
	prog.SetVec3f("light.specular", 1.0, 1.0, 1.0)

	prog.SetVec3f("material.ambient", 1.0, 0.5, 0.31)
	prog.SetVec3f("material.diffuse", 1.0, 0.5, 0.31)
	prog.SetVec3f("material.specular", 0.5, 0.5, 0.5)
	prog.SetFloat("material.shininess", 32.0)
	return []mgl32.Vec3{lightPos}
}

// lightingMapsUniforms sets a constant specular color unless the material
// samples a specular map.
func lightingMapsUniforms(specularMap bool) func(*harness.App, *shader.Program) []mgl32.Vec3 {
	return func(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
		prog.SetVec3("light.position", lightPos)
		prog.SetVec3("viewPos", app.Camera.Position)
		prog.SetVec3f("light.ambient", 0.2, 0.2, 0.2)
		prog.SetVec3f("light.diffuse", 0.5, 0.5, 0.5)
		prog.SetVec3f("light.specular", 1.0, 1.0, 1.0)
		if !specularMap {
			prog.SetVec3f("material.specular", 0.5, 0.5, 0.5)
		}
		prog.SetFloat("material.shininess", 64.0)
		return []mgl32.Vec3{lightPos}
	}
}

var (
	// sunlight is the directional light of the casters and multiple lights
	// scenes.
	sunlight  = mgl32.Vec3{-0.2, -1.0, -0.3}
	lampColor = lighting.Phong{
		Ambient:  mgl32.Vec3{0.2, 0.2, 0.2},
		Diffuse:  mgl32.Vec3{0.5, 0.5, 0.5},
		Specular: mgl32.Vec3{1.0, 1.0, 1.0},
	}
)

func directionalUniforms(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
	lighting.Directional{Direction: sunlight, Phong: lampColor}.Apply(prog, "light")
	prog.SetVec3("viewPos", app.Camera.Position)
	prog.SetFloat("material.shininess", 32.0)
	return nil
}

func pointUniforms(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
	lighting.Point{Position: lightPos, Phong: lampColor, Attenuation: lighting.Range50}.Apply(prog, "light")
	prog.SetVec3("viewPos", app.Camera.Position)
	prog.SetFloat("material.shininess", 32.0)
	return []mgl32.Vec3{lightPos}
}

// flashlight returns a spot light attached to the camera.
func flashlight(app *harness.App, cutOff, outerCutOff float32, color lighting.Phong) lighting.Spot {
	return lighting.Spot{
		Position:    app.Camera.Position,
		Direction:   app.Camera.Front(),
		CutOff:      cutOff,
		OuterCutOff: outerCutOff,
		Phong:       color,
		Attenuation: lighting.Range50,
	}
}

func spotUniforms(soft bool) func(*harness.App, *shader.Program) []mgl32.Vec3 {
	var outer float32
	if soft {
		outer = 17.5
	}
	color := lighting.Phong{
		Ambient:  mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
		Specular: mgl32.Vec3{1.0, 1.0, 1.0},
	}
	return func(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
		flashlight(app, 12.5, outer, color).Apply(prog, "light")
		prog.SetVec3("viewPos", app.Camera.Position)
		prog.SetFloat("material.shininess", 32.0)
		return nil
	}
}

func multipleLightsUniforms(app *harness.App, prog *shader.Program) []mgl32.Vec3 {
	prog.SetVec3("viewPos", app.Camera.Position)
	prog.SetFloat("material.shininess", 32.0)

	lighting.Directional{
		Direction: sunlight,
		Phong: lighting.Phong{
			Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
			Diffuse:  mgl32.Vec3{0.4, 0.4, 0.4},
			Specular: mgl32.Vec3{0.5, 0.5, 0.5},
		},
	}.Apply(prog, "dirLight")

	points := make([]lighting.Point, len(pointLightPositions))
	for i, pos := range pointLightPositions {
		points[i] = lighting.Point{
			Position: pos,
			Phong: lighting.Phong{
				Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
				Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
				Specular: mgl32.Vec3{1.0, 1.0, 1.0},
			},
			Attenuation: lighting.Range50,
		}
	}
	lighting.ApplyPoints(prog, "pointLights", points)

	flashlight(app, 12.5, 15.0, lighting.Phong{
		Diffuse:  mgl32.Vec3{1.0, 1.0, 1.0},
		Specular: mgl32.Vec3{1.0, 1.0, 1.0},
	}).Apply(prog, "spotLight")
	return pointLightPositions
}
