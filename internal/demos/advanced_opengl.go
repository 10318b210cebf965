package demos

import (
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/framebuffer"
	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "4_1_1", Title: "Depth Testing", New: depthTesting(false)})
	Register(Demo{ID: "4_1_2", Title: "Depth Testing View", New: depthTesting(true)})
	Register(Demo{ID: "4_2", Title: "Stencil Testing", New: stencilTesting})
	Register(Demo{ID: "4_3_1", Title: "Blending Discard", New: blending(false)})
	Register(Demo{ID: "4_3_2", Title: "Blending Sorted", New: blending(true)})
	Register(Demo{ID: "4_5_1", Title: "Framebuffers", New: framebuffers})
	Register(Demo{ID: "4_6_1", Title: "Cubemaps Skybox", New: cubemaps(false)})
	Register(Demo{ID: "4_6_2", Title: "Cubemaps Environment Mapping", New: cubemaps(true)})
}

// texturedScene is two cubes on a floor, used by the depth, stencil,
// blending and framebuffer demos.
type texturedScene struct {
	cube, floor       *primitives.Shape
	cubeTex, floorTex uint32
}

var sceneCubes = []mgl32.Vec3{{-1, 0, -1}, {2, 0, 0}}

func (s *texturedScene) load(app *harness.App, cubeTexture string) (err error) {
	if s.cubeTex, err = app.LoadTexture(cubeTexture, texture.Options{}); err != nil {
		return err
	}
	if s.floorTex, err = app.LoadTexture("textures/metal.png", texture.Options{}); err != nil {
		return err
	}
	s.cube = shape(app, primitives.NewCube(app.Device))
	s.floor = shape(app, primitives.NewPlane(app.Device, 5))
	return nil
}

// drawCubes draws both cubes scaled by size.
func (s *texturedScene) drawCubes(app *harness.App, prog *shader.Program, size float32) {
	app.Device.BindTexture2D(0, s.cubeTex)
	for _, pos := range sceneCubes {
		prog.SetMat4("model", translate(pos).Mul4(scale(size)))
		s.cube.Draw()
	}
}

func (s *texturedScene) drawFloor(app *harness.App, prog *shader.Program) {
	app.Device.BindTexture2D(0, s.floorTex)
	prog.SetMat4("model", mgl32.Ident4())
	s.floor.Draw()
}

// useCamera makes prog current with the camera transforms.
func useCamera(app *harness.App, prog *shader.Program, far float32) {
	prog.Use()
	prog.SetMat4("projection", app.Projection(0.1, far))
	prog.SetMat4("view", app.View())
}

func depthTesting(visualize bool) func() harness.Options {
	return func() harness.Options {
		var (
			prog  *shader.Program
			scene texturedScene
		)
		return harness.Options{
			Camera:        flyCamera(0, 0, 3),
			CaptureCursor: true,
			Setup: func(app *harness.App) (err error) {
				gl.Enable(gl.DEPTH_TEST)
				fragment := "advanced_opengl/textured.fs"
				if visualize {
					gl.DepthFunc(gl.LESS)
					fragment = "advanced_opengl/depth_testing_view.fs"
				} else {
					// every fragment passes; draw order decides what is visible
					gl.DepthFunc(gl.ALWAYS)
				}
				if prog, err = app.LoadShader("advanced_opengl/textured.vs", fragment); err != nil {
					return err
				}
				prog.Use()
				prog.SetInt("texture1", 0)
				return scene.load(app, "textures/marble.jpg")
			},
			Frame: func(app *harness.App, dt float32) error {
				clearScreen(0.1, 0.1, 0.1)
				useCamera(app, prog, 100)
				scene.drawCubes(app, prog, 1)
				scene.drawFloor(app, prog)
				return nil
			},
		}
	}
}

func stencilTesting() harness.Options {
	var (
		prog, outline *shader.Program
		scene         texturedScene
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			gl.DepthFunc(gl.LESS)
			gl.Enable(gl.STENCIL_TEST)
			gl.StencilFunc(gl.NOTEQUAL, 1, 0xFF)
			gl.StencilOp(gl.KEEP, gl.KEEP, gl.REPLACE)
			if prog, err = app.LoadShader("advanced_opengl/textured.vs", "advanced_opengl/textured.fs"); err != nil {
				return err
			}
			if outline, err = app.LoadShader("advanced_opengl/textured.vs", "advanced_opengl/stencil_single_color.fs"); err != nil {
				return err
			}
			prog.Use()
			prog.SetInt("texture1", 0)
			return scene.load(app, "textures/marble.jpg")
		},
		Frame: func(app *harness.App, dt float32) error {
			gl.ClearColor(0.1, 0.1, 0.1, 1)
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

			// floor without touching the stencil buffer
			useCamera(app, prog, 100)
			gl.StencilMask(0x00)
			scene.drawFloor(app, prog)

			// cubes mark the stencil buffer
			gl.StencilFunc(gl.ALWAYS, 1, 0xFF)
			gl.StencilMask(0xFF)
			scene.drawCubes(app, prog, 1)

			// slightly larger cubes where the stencil is unmarked form the border
			gl.StencilFunc(gl.NOTEQUAL, 1, 0xFF)
			gl.StencilMask(0x00)
			gl.Disable(gl.DEPTH_TEST)
			useCamera(app, outline, 100)
			scene.drawCubes(app, outline, 1.1)

			gl.StencilMask(0xFF)
			gl.StencilFunc(gl.ALWAYS, 0, 0xFF)
			gl.Enable(gl.DEPTH_TEST)
			return nil
		},
	}
}

var vegetation = []mgl32.Vec3{
	{-1.5, 0.0, -0.48},
	{1.5, 0.0, 0.51},
	{0.0, 0.0, 0.7},
	{-0.3, 0.0, -2.3},
	{0.5, 0.0, -0.6},
}

// transparentQuad is a unit quad standing on y=-0.5 with position (0) and
// texcoords (2). The t coordinate runs top-down since the image is not flipped.
var transparentQuad = []float32{
	0.0, 0.5, 0.0, 0.0, 0.0,
	0.0, -0.5, 0.0, 0.0, 1.0,
	1.0, -0.5, 0.0, 1.0, 1.0,

	0.0, 0.5, 0.0, 0.0, 0.0,
	1.0, -0.5, 0.0, 1.0, 1.0,
	1.0, 0.5, 0.0, 1.0, 0.0,
}

// blending draws grass with discarded texels, or semi-transparent windows
// blended back to front when sorted is set.
func blending(sorted bool) func() harness.Options {
	return func() harness.Options {
		var (
			prog  *shader.Program
			scene texturedScene
			quad  gpu.VertexArray
			tex   uint32
		)
		return harness.Options{
			Camera:        flyCamera(0, 0, 3),
			CaptureCursor: true,
			Setup: func(app *harness.App) (err error) {
				gl.Enable(gl.DEPTH_TEST)
				fragment, image := "advanced_opengl/blending_discard.fs", "textures/grass.png"
				if sorted {
					gl.Enable(gl.BLEND)
					gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
					fragment, image = "advanced_opengl/textured.fs", "textures/window.png"
				}
				if prog, err = app.LoadShader("advanced_opengl/textured.vs", fragment); err != nil {
					return err
				}
				if tex, err = app.LoadTexture(image, texture.Options{Wrap: gpu.WrapClampToEdge}); err != nil {
					return err
				}
				stride, attribs := layout(3, 2)
				attribs[1].Location = 2
				quad = vertexArrayWith(app, transparentQuad, nil, stride, attribs)

				prog.Use()
				prog.SetInt("texture1", 0)
				return scene.load(app, "textures/marble.jpg")
			},
			Frame: func(app *harness.App, dt float32) error {
				clearScreen(0.1, 0.1, 0.1)
				useCamera(app, prog, 100)
				scene.drawCubes(app, prog, 1)
				scene.drawFloor(app, prog)

				positions := vegetation
				if sorted {
					positions = backToFront(vegetation, app.Camera.Position)
				}
				app.Device.BindTexture2D(0, tex)
				for _, pos := range positions {
					prog.SetMat4("model", translate(pos))
					app.Device.Draw(quad, gpu.Triangles)
				}
				return nil
			},
		}
	}
}

// backToFront returns a copy of positions ordered by decreasing distance
// from eye.
func backToFront(positions []mgl32.Vec3, eye mgl32.Vec3) []mgl32.Vec3 {
	out := append([]mgl32.Vec3(nil), positions...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Sub(eye).Len() > out[j].Sub(eye).Len()
	})
	return out
}

// resetTarget binds the default framebuffer with the window viewport.
func resetTarget(app *harness.App) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(app.Width), int32(app.Height))
}

// Post-processing effects of the framebuffers demo, cycled with Space.
var screenEffects = []string{"none", "inversion", "grayscale", "sharpen", "blur", "edge detection"}

func framebuffers() harness.Options {
	var (
		prog, screen *shader.Program
		scene        texturedScene
		quad         *primitives.Shape
		fb           *framebuffer.Framebuffer
		effect       int
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("advanced_opengl/textured.vs", "advanced_opengl/textured.fs"); err != nil {
				return err
			}
			if screen, err = app.LoadShader("advanced_opengl/framebuffers_screen.vs", "advanced_opengl/framebuffers_screen.fs"); err != nil {
				return err
			}
			if err = scene.load(app, "textures/container.jpg"); err != nil {
				return err
			}
			quad = shape(app, primitives.NewQuad(app.Device))
			if fb, err = framebuffer.New(int32(app.Width), int32(app.Height), framebuffer.Options{}); err != nil {
				return err
			}
			app.Defer(fb.Destroy)

			prog.Use()
			prog.SetInt("texture1", 0)
			screen.Use()
			screen.SetInt("screenTexture", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			fb.Bind()
			gl.Enable(gl.DEPTH_TEST)
			fb.Clear(0.1, 0.1, 0.1, 1)
			useCamera(app, prog, 100)
			scene.drawCubes(app, prog, 1)
			scene.drawFloor(app, prog)

			resetTarget(app)
			gl.Disable(gl.DEPTH_TEST)
			gl.ClearColor(1, 1, 1, 1)
			gl.Clear(gl.COLOR_BUFFER_BIT)
			screen.Use()
			screen.SetInt("effect", int32(effect))
			app.Device.BindTexture2D(0, fb.ColorTexture())
			quad.Draw()
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeySpace {
				effect = (effect + 1) % len(screenEffects)
				app.Window.SetTitle("LearnOpenGL - Framebuffers - " + screenEffects[effect])
			}
		},
		OnResize: func(app *harness.App) {
			fb.Resize(int32(app.Width), int32(app.Height))
		},
	}
}

// skybox draws a cubemap behind everything already in the depth buffer.
type skybox struct {
	prog *shader.Program
	cube *primitives.Shape
	tex  uint32
}

func (s *skybox) load(app *harness.App) (err error) {
	if s.prog, err = app.LoadShader("advanced_opengl/skybox.vs", "advanced_opengl/skybox.fs"); err != nil {
		return err
	}
	if s.tex, err = app.LoadCubemap("textures/skybox", texture.DefaultSkybox); err != nil {
		return err
	}
	s.cube = shape(app, primitives.NewSkybox(app.Device))
	s.prog.Use()
	s.prog.SetInt("skybox", 0)
	return nil
}

func (s *skybox) draw(app *harness.App) {
	// the skybox sits at depth 1.0, so it must pass where the buffer is cleared
	gl.DepthFunc(gl.LEQUAL)
	s.prog.Use()
	// drop the translation so the box follows the camera
	s.prog.SetMat4("view", app.View().Mat3().Mat4())
	s.prog.SetMat4("projection", app.Projection(0.1, 100))
	app.Device.BindCubemap(0, s.tex)
	s.cube.Draw()
	gl.DepthFunc(gl.LESS)
}

// cubemaps draws a cube inside a skybox. With reflect set the cube mirrors
// the skybox; Space switches between reflection and refraction.
func cubemaps(reflect bool) func() harness.Options {
	return func() harness.Options {
		var (
			prog       *shader.Program
			sky        skybox
			cube       *primitives.Shape
			tex        uint32
			refraction bool
		)
		return harness.Options{
			Camera:        flyCamera(0, 0, 3),
			CaptureCursor: true,
			Setup: func(app *harness.App) (err error) {
				gl.Enable(gl.DEPTH_TEST)
				if reflect {
					prog, err = app.LoadShader("advanced_opengl/cubemaps_environment.vs", "advanced_opengl/cubemaps_environment.fs")
				} else {
					prog, err = app.LoadShader("advanced_opengl/textured.vs", "advanced_opengl/textured.fs")
				}
				if err != nil {
					return err
				}
				if !reflect {
					if tex, err = app.LoadTexture("textures/container.jpg", texture.Options{}); err != nil {
						return err
					}
				}
				prog.Use()
				if reflect {
					prog.SetInt("skybox", 0)
				} else {
					prog.SetInt("texture1", 0)
				}
				cube = shape(app, primitives.NewCube(app.Device))
				return sky.load(app)
			},
			Frame: func(app *harness.App, dt float32) error {
				clearScreen(0.1, 0.1, 0.1)
				useCamera(app, prog, 100)
				prog.SetMat4("model", mgl32.Ident4())
				if reflect {
					prog.SetVec3("cameraPos", app.Camera.Position)
					prog.SetBool("refraction", refraction)
					app.Device.BindCubemap(0, sky.tex)
				} else {
					app.Device.BindTexture2D(0, tex)
				}
				cube.Draw()
				sky.draw(app)
				return nil
			},
			OnKey: func(app *harness.App, key input.Key) {
				if reflect && key == input.KeySpace {
					refraction = !refraction
				}
			},
		}
	}
}
