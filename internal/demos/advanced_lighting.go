package demos

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/learnopengl/internal/engine/framebuffer"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/engine/lighting"
	"github.com/Faultbox/learnopengl/internal/engine/model"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/shadow"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/harness"
	"github.com/Faultbox/learnopengl/internal/logger"
)

func init() {
	Register(Demo{ID: "5_1", Title: "Advanced Lighting", New: blinnPhong})
	Register(Demo{ID: "5_2", Title: "Gamma Correction", New: gammaCorrection})
	Register(Demo{ID: "5_3_1", Title: "Shadow Mapping", New: shadowMapping})
	Register(Demo{ID: "5_4", Title: "Normal Mapping", New: normalMapping})
	Register(Demo{ID: "5_6", Title: "HDR", New: hdr})
	Register(Demo{ID: "5_7", Title: "Bloom", New: bloom})
}

// blinnPhong lights a wooden floor; B switches between Phong and Blinn-Phong.
func blinnPhong() harness.Options {
	var (
		prog  *shader.Program
		floor *primitives.Shape
		wood  uint32
		blinn bool
	)
	log := logger.Named("demo")
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			if prog, err = app.LoadShader("advanced_lighting/advanced_lighting.vs", "advanced_lighting/advanced_lighting.fs"); err != nil {
				return err
			}
			if wood, err = app.LoadTexture("textures/wood.png", texture.Options{}); err != nil {
				return err
			}
			floor = shape(app, primitives.NewPlane(app.Device, 10))
			prog.Use()
			prog.SetInt("floorTexture", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			prog.SetVec3("viewPos", app.Camera.Position)
			prog.SetVec3f("lightPos", 0, 0, 0)
			prog.SetBool("blinn", blinn)
			app.Device.BindTexture2D(0, wood)
			floor.Draw()
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeyB {
				blinn = !blinn
				log.Info("lighting model", zap.Bool("blinn", blinn))
			}
		},
	}
}

// gammaCorrection lights the floor with four lamps of rising intensity.
// Space toggles gamma-correct textures, attenuation and output.
func gammaCorrection() harness.Options {
	lights := make(lighting.ColoredLights, 4)
	for i := range lights {
		c := float32(i+1) * 0.25
		lights[i] = lighting.Colored{Position: mgl32.Vec3{float32(2*i - 3), 0, 0}, Color: mgl32.Vec3{c, c, c}}
	}
	var (
		prog                 *shader.Program
		floor                *primitives.Shape
		linearWood, srgbWood uint32
		gamma                bool
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			if prog, err = app.LoadShader("advanced_lighting/advanced_lighting.vs", "advanced_lighting/gamma_correction.fs"); err != nil {
				return err
			}
			if linearWood, err = app.LoadTexture("textures/wood.png", texture.Options{}); err != nil {
				return err
			}
			if srgbWood, err = app.LoadTexture("textures/wood.png", texture.Options{Gamma: true}); err != nil {
				return err
			}
			floor = shape(app, primitives.NewPlane(app.Device, 10))
			prog.Use()
			prog.SetInt("floorTexture", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			lights.ApplyArrays(prog, "lightPositions", "lightColors", mgl32.Vec3{})
			prog.SetVec3("viewPos", app.Camera.Position)
			prog.SetBool("gamma", gamma)
			tex := linearWood
			if gamma {
				tex = srgbWood
			}
			app.Device.BindTexture2D(0, tex)
			floor.Draw()
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeySpace {
				gamma = !gamma
			}
		},
	}
}

// shadowScene is the floor with three cubes of the shadow mapping demo.
type shadowScene struct {
	floor, cube *primitives.Shape
}

// shadowSceneBounds encloses every object of shadowScene.
var shadowSceneBounds = shadow.AABB{Min: [3]float32{-3, -0.5, -3}, Max: [3]float32{3, 2.5, 3}}

func (s *shadowScene) draw(prog *shader.Program) {
	prog.SetMat4("model", mgl32.Ident4())
	s.floor.Draw()

	prog.SetMat4("model", mgl32.Translate3D(0, 1.5, 0))
	s.cube.Draw()
	prog.SetMat4("model", mgl32.Translate3D(2, 0, 1))
	s.cube.Draw()
	prog.SetMat4("model", mgl32.Translate3D(-1, 0, 2).Mul4(rotate(60, mgl32.Vec3{1, 0, 1})).Mul4(scale(0.5)))
	s.cube.Draw()
}

// shadowMapping renders the scene depth from the light, then lights the
// scene with PCF shadows. Space shows the depth map; F fits the light
// volume to the scene bounds instead of the fixed 20x20 ortho box.
func shadowMapping() harness.Options {
	lightPos := mgl32.Vec3{-2, 4, -1}
	var (
		depthProg, prog, quadProg *shader.Program
		scene                     shadowScene
		quad                      *primitives.Shape
		depthMap                  *shadow.Map
		wood                      uint32
		showDepth, fit            bool
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("advanced_lighting/shadow_mapping.vs", "advanced_lighting/shadow_mapping.fs"); err != nil {
				return err
			}
			if depthProg, err = app.LoadShader("advanced_lighting/shadow_mapping_depth.vs", "advanced_lighting/shadow_mapping_depth.fs"); err != nil {
				return err
			}
			if quadProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/debug_quad_depth.fs"); err != nil {
				return err
			}
			if wood, err = app.LoadTexture("textures/wood.png", texture.Options{}); err != nil {
				return err
			}
			if depthMap, err = shadow.NewMap(shadow.Options{CullFront: true}); err != nil {
				return err
			}
			app.Defer(depthMap.Destroy)

			scene.floor = shape(app, primitives.NewPlane(app.Device, 25))
			scene.cube = shape(app, primitives.NewCube(app.Device))
			quad = shape(app, primitives.NewQuad(app.Device))

			prog.Use()
			prog.SetInt("diffuseTexture", 0)
			prog.SetInt("shadowMap", 1)
			quadProg.Use()
			quadProg.SetInt("depthMap", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)

			// 1. depth of the scene from the light
			lightSpace := shadow.LightSpaceMatrix(lightPos, mgl32.Vec3{}, 10, 1, 7.5)
			if fit {
				lightSpace = shadow.DirectionalLightMatrix(lightPos.Normalize(), shadowSceneBounds)
			}
			depthProg.Use()
			depthProg.SetMat4("lightSpaceMatrix", lightSpace)
			depthMap.Bind()
			scene.draw(depthProg)
			depthMap.Unbind()
			resetTarget(app)
			clearScreen(0.1, 0.1, 0.1)

			if showDepth {
				quadProg.Use()
				depthMap.BindTexture(0)
				quad.Draw()
				return nil
			}

			// 2. the scene with shadows
			useCamera(app, prog, 100)
			prog.SetVec3("viewPos", app.Camera.Position)
			prog.SetVec3("lightPos", lightPos)
			prog.SetMat4("lightSpaceMatrix", lightSpace)
			app.Device.BindTexture2D(0, wood)
			depthMap.BindTexture(1)
			scene.draw(prog)
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			switch key {
			case input.KeySpace:
				showDepth = !showDepth
			case input.KeyF:
				fit = !fit
			}
		},
	}
}

// normalMappingQuad builds a unit wall quad facing +z with tangents derived
// from its texture coordinates.
func normalMappingQuad() ([]model.Vertex, []uint32) {
	v := func(x, y, u, t float32) model.Vertex {
		return model.Vertex{Position: [3]float32{x, y, 0}, Normal: [3]float32{0, 0, 1}, TexCoords: [2]float32{u, t}}
	}
	vertices := []model.Vertex{
		v(-1, 1, 0, 1),
		v(-1, -1, 0, 0),
		v(1, -1, 1, 0),
		v(1, 1, 1, 1),
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	model.ComputeTangents(vertices, indices)
	return vertices, indices
}

func normalMapping() harness.Options {
	lightPos := mgl32.Vec3{0.5, 1, 0.3}
	var (
		prog, lamp *shader.Program
		wall       *model.Mesh
		cube       *primitives.Shape
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("advanced_lighting/normal_mapping.vs", "advanced_lighting/normal_mapping.fs"); err != nil {
				return err
			}
			if lamp, err = app.LoadShader("lighting/colors.vs", "lighting/light_cube.fs"); err != nil {
				return err
			}
			ids, err := loadTextures(app, texture.Options{FlipY: true}, "textures/brickwall.jpg", "textures/brickwall_normal.jpg")
			if err != nil {
				return err
			}
			vertices, indices := normalMappingQuad()
			wall, err = model.NewMesh(app.Device, vertices, indices, []model.Texture{
				{ID: ids[0], Type: model.TextureDiffuse, Path: "textures/brickwall.jpg"},
				{ID: ids[1], Type: model.TextureNormal, Path: "textures/brickwall_normal.jpg"},
			})
			if err != nil {
				return err
			}
			app.Defer(wall.Delete)
			cube = shape(app, primitives.NewCube(app.Device))
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			// rotate the quad to show normal mapping from multiple directions
			prog.SetMat4("model", rotate(app.Time*-10, mgl32.Vec3{1, 0, 1}))
			prog.SetVec3("viewPos", app.Camera.Position)
			prog.SetVec3("lightPos", lightPos)
			wall.Draw(prog)

			useCamera(app, lamp, 100)
			lamp.SetMat4("model", translate(lightPos).Mul4(scale(0.1)))
			cube.Draw()
			return nil
		},
	}
}

// exposureKeys adjusts exposure with Q and E.
func exposureKeys(key input.Key, exposure *float32) {
	switch key {
	case input.KeyQ:
		if *exposure > 0.01 {
			*exposure -= 0.1
		}
	case input.KeyE:
		*exposure += 0.1
	}
}

// hdr lights a long tunnel with one very bright light at the end. Space
// toggles tone mapping; Q and E change the exposure.
func hdr() harness.Options {
	lights := lighting.ColoredLights{
		{Position: mgl32.Vec3{0.0, 0.0, 49.5}, Color: mgl32.Vec3{200.0, 200.0, 200.0}},
		{Position: mgl32.Vec3{-1.4, -1.9, 9.0}, Color: mgl32.Vec3{0.1, 0.0, 0.0}},
		{Position: mgl32.Vec3{0.0, -1.8, 4.0}, Color: mgl32.Vec3{0.0, 0.0, 0.2}},
		{Position: mgl32.Vec3{0.8, -1.7, 6.0}, Color: mgl32.Vec3{0.0, 0.1, 0.0}},
	}
	var (
		prog, hdrProg *shader.Program
		cube, quad    *primitives.Shape
		fb            *framebuffer.Framebuffer
		wood          uint32
		enabled       = true
		exposure      = float32(1.0)
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 5),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("advanced_lighting/lighting.vs", "advanced_lighting/lighting.fs"); err != nil {
				return err
			}
			if hdrProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/hdr.fs"); err != nil {
				return err
			}
			if wood, err = app.LoadTexture("textures/wood.png", texture.Options{Gamma: true}); err != nil {
				return err
			}
			if fb, err = framebuffer.New(int32(app.Width), int32(app.Height), framebuffer.Options{HDR: true}); err != nil {
				return err
			}
			app.Defer(fb.Destroy)
			cube = shape(app, primitives.NewCube(app.Device))
			quad = shape(app, primitives.NewQuad(app.Device))

			prog.Use()
			prog.SetInt("diffuseTexture", 0)
			hdrProg.Use()
			hdrProg.SetInt("hdrBuffer", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			// 1. the tunnel into the floating point target
			fb.Bind()
			fb.Clear(0.1, 0.1, 0.1, 1)
			useCamera(app, prog, 100)
			app.Device.BindTexture2D(0, wood)
			lights.Apply(prog, "lights")
			prog.SetMat4("model", mgl32.Translate3D(0, 0, 25).Mul4(mgl32.Scale3D(5, 5, 55)))
			prog.SetBool("inverse_normals", true)
			cube.Draw()

			// 2. tone map to the window
			resetTarget(app)
			clearScreen(0.1, 0.1, 0.1)
			hdrProg.Use()
			app.Device.BindTexture2D(0, fb.ColorTexture())
			hdrProg.SetBool("hdr", enabled)
			hdrProg.SetFloat("exposure", exposure)
			quad.Draw()
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeySpace {
				enabled = !enabled
			}
			exposureKeys(key, &exposure)
		},
		OnResize: func(app *harness.App) {
			fb.Resize(int32(app.Width), int32(app.Height))
		},
	}
}

// bloomPasses is the number of blur passes; an even count ends horizontal.
const bloomPasses = 10

// bloom renders the lit scene and its bright parts into two float targets,
// blurs the bright parts and adds them back. Space toggles the bloom; Q and
// E change the exposure.
func bloom() harness.Options {
	lights := lighting.ColoredLights{
		{Position: mgl32.Vec3{0.0, 0.5, 1.5}, Color: mgl32.Vec3{5.0, 5.0, 5.0}},
		{Position: mgl32.Vec3{-4.0, 0.5, -3.0}, Color: mgl32.Vec3{10.0, 0.0, 0.0}},
		{Position: mgl32.Vec3{3.0, 0.5, 1.0}, Color: mgl32.Vec3{0.0, 0.0, 15.0}},
		{Position: mgl32.Vec3{-0.8, 2.4, -1.0}, Color: mgl32.Vec3{0.0, 5.0, 0.0}},
	}
	xz := mgl32.Vec3{1, 0, 1}
	cubes := []mgl32.Mat4{
		mgl32.Translate3D(0, 1.5, 0),
		mgl32.Translate3D(2, 0, 1),
		mgl32.Translate3D(-1, -1, 2).Mul4(rotate(60, xz)).Mul4(scale(2)),
		mgl32.Translate3D(0, 2.7, 4).Mul4(rotate(23, xz)).Mul4(scale(2.5)),
		mgl32.Translate3D(-2, 1, -3).Mul4(rotate(124, xz)).Mul4(scale(2)),
		mgl32.Translate3D(-3, 0, 0),
	}
	var (
		prog, lightProg, blurProg, finalProg *shader.Program
		cube, quad                           *primitives.Shape
		scene                                *framebuffer.Framebuffer
		blur                                 *framebuffer.PingPong
		wood, container                      uint32
		enabled                              = true
		exposure                             = float32(1.0)
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 5),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("advanced_lighting/lighting.vs", "advanced_lighting/bloom.fs"); err != nil {
				return err
			}
			if lightProg, err = app.LoadShader("advanced_lighting/lighting.vs", "advanced_lighting/light_box.fs"); err != nil {
				return err
			}
			if blurProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/blur.fs"); err != nil {
				return err
			}
			if finalProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/bloom_final.fs"); err != nil {
				return err
			}
			if wood, err = app.LoadTexture("textures/wood.png", texture.Options{Gamma: true}); err != nil {
				return err
			}
			if container, err = app.LoadTexture("textures/container2.png", texture.Options{Gamma: true}); err != nil {
				return err
			}

			w, h := int32(app.Width), int32(app.Height)
			if scene, err = framebuffer.New(w, h, framebuffer.Options{HDR: true, ClampToEdge: true, ColorAttachments: 2}); err != nil {
				return err
			}
			app.Defer(scene.Destroy)
			if blur, err = framebuffer.NewPingPong(w, h, false); err != nil {
				return err
			}
			app.Defer(blur.Destroy)

			cube = shape(app, primitives.NewCube(app.Device))
			quad = shape(app, primitives.NewQuad(app.Device))

			prog.Use()
			prog.SetInt("diffuseTexture", 0)
			blurProg.Use()
			blurProg.SetInt("image", 0)
			finalProg.Use()
			finalProg.SetInt("scene", 0)
			finalProg.SetInt("bloomBlur", 1)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			// 1. scene into the two floating point attachments
			scene.Bind()
			scene.Clear(0, 0, 0, 1)
			useCamera(app, prog, 100)
			lights.Apply(prog, "lights")
			prog.SetVec3("viewPos", app.Camera.Position)

			app.Device.BindTexture2D(0, wood)
			prog.SetMat4("model", mgl32.Translate3D(0, -1, 0).Mul4(mgl32.Scale3D(25, 1, 25)))
			cube.Draw()

			app.Device.BindTexture2D(0, container)
			for _, m := range cubes {
				prog.SetMat4("model", m)
				cube.Draw()
			}

			useCamera(app, lightProg, 100)
			for _, l := range lights {
				lightProg.SetMat4("model", translate(l.Position).Mul4(scale(0.5)))
				lightProg.SetVec3("lightColor", l.Color)
				cube.Draw()
			}

			// 2. blur the bright parts with a two-pass Gaussian
			blurProg.Use()
			bright := scene.ColorTextures()[1]
			blurred := blur.Run(bloomPasses, bright, func(horizontal bool, src uint32) {
				blurProg.SetBool("horizontal", horizontal)
				app.Device.BindTexture2D(0, src)
				quad.Draw()
			})

			// 3. add the blurred bright parts back and tone map
			resetTarget(app)
			clearScreen(0, 0, 0)
			finalProg.Use()
			app.Device.BindTexture2D(0, scene.ColorTexture())
			app.Device.BindTexture2D(1, blurred)
			finalProg.SetBool("bloom", enabled)
			finalProg.SetFloat("exposure", exposure)
			quad.Draw()
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeySpace {
				enabled = !enabled
			}
			exposureKeys(key, &exposure)
		},
		OnResize: func(app *harness.App) {
			scene.Resize(int32(app.Width), int32(app.Height))
			blur.Resize(int32(app.Width), int32(app.Height))
		},
	}
}
