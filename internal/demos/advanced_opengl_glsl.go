package demos

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/framebuffer"
	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/model"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "4_8", Title: "Advanced GLSL UBO", New: advancedGLSL})
	Register(Demo{ID: "4_9_1", Title: "Geometry Shader Houses", New: geometryHouses})
	Register(Demo{ID: "4_9_2", Title: "Geometry Shader Exploding", New: geometryExploding})
	Register(Demo{ID: "4_9_3", Title: "Normal Visualization", New: normalVisualization})
	Register(Demo{ID: "4_10_1", Title: "Instancing Quads", New: instancingQuads})
	Register(Demo{ID: "4_10_2", Title: "Asteroids", New: asteroids(asteroidField{amount: 1000, radius: 50, offset: 2.5, distance: 55})})
	Register(Demo{ID: "4_10_3", Title: "Asteroids Instanced", New: asteroids(asteroidField{amount: 100000, radius: 150, offset: 25, distance: 155, instanced: true})})
	Register(Demo{ID: "4_11", Title: "Anti Aliasing Offscreen", New: antiAliasingOffscreen})
}

const mat4Size = 16 * 4

// advancedGLSL shares projection and view between four programs through a
// uniform buffer bound to binding point 0.
func advancedGLSL() harness.Options {
	colors := []string{"red", "green", "blue", "yellow"}
	offsets := []mgl32.Vec3{{-0.75, 0.75, 0}, {0.75, 0.75, 0}, {-0.75, -0.75, 0}, {0.75, -0.75, 0}}
	var (
		progs []*shader.Program
		cube  *primitives.Shape
		ubo   uint32
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) error {
			gl.Enable(gl.DEPTH_TEST)
			for _, c := range colors {
				p, err := app.LoadShader("advanced_opengl/advanced_glsl.vs", "advanced_opengl/advanced_glsl_"+c+".fs")
				if err != nil {
					return err
				}
				progs = append(progs, p)
			}
			cube = shape(app, primitives.NewCube(app.Device))

			gl.GenBuffers(1, &ubo)
			gl.BindBuffer(gl.UNIFORM_BUFFER, ubo)
			gl.BufferData(gl.UNIFORM_BUFFER, 2*mat4Size, nil, gl.STATIC_DRAW)
			gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
			gl.BindBufferRange(gl.UNIFORM_BUFFER, 0, ubo, 0, 2*mat4Size)
			app.Defer(func() { gl.DeleteBuffers(1, &ubo) })
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			projection := app.Projection(0.1, 100)
			view := app.View()
			gl.BindBuffer(gl.UNIFORM_BUFFER, ubo)
			gl.BufferSubData(gl.UNIFORM_BUFFER, 0, mat4Size, gl.Ptr(&projection[0]))
			gl.BufferSubData(gl.UNIFORM_BUFFER, mat4Size, mat4Size, gl.Ptr(&view[0]))
			gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

			for i, p := range progs {
				// set every frame: a reloaded program starts unbound
				block := gl.GetUniformBlockIndex(p.ID(), gl.Str("Matrices\x00"))
				gl.UniformBlockBinding(p.ID(), block, 0)
				p.Use()
				p.SetMat4("model", translate(offsets[i]))
				cube.Draw()
			}
			return nil
		},
	}
}

func geometryHouses() harness.Options {
	var (
		prog   *shader.Program
		points gpu.VertexArray
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("advanced_opengl/geometry_shader.vs", "advanced_opengl/geometry_shader.fs", "advanced_opengl/geometry_shader.gs"); err != nil {
				return err
			}
			points = vertexArray(app, []float32{
				-0.5, 0.5, 1.0, 0.0, 0.0, // top-left
				0.5, 0.5, 0.0, 1.0, 0.0, // top-right
				0.5, -0.5, 0.0, 0.0, 1.0, // bottom-right
				-0.5, -0.5, 1.0, 1.0, 0.0, // bottom-left
			}, nil, 2, 3)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			prog.Use()
			app.Device.Draw(points, gpu.Points)
			return nil
		},
	}
}

// loadSuit loads the nanosuit for the geometry shader demos.
func loadSuit(app *harness.App) (*model.Model, error) {
	gl.Enable(gl.DEPTH_TEST)
	return app.LoadModel("objects/nanosuit/nanosuit.obj", model.Options{})
}

// suitTransform places the nanosuit in front of the camera.
var suitTransform = mgl32.Translate3D(0, -1.75, 0).Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))

func geometryExploding() harness.Options {
	var (
		prog *shader.Program
		suit *model.Model
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("advanced_opengl/explode.vs", "model_loading/model_loading.fs", "advanced_opengl/explode.gs"); err != nil {
				return err
			}
			suit, err = loadSuit(app)
			return err
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			prog.SetMat4("model", suitTransform)
			prog.SetFloat("time", app.Time)
			suit.Draw(prog)
			return nil
		},
	}
}

func normalVisualization() harness.Options {
	var (
		prog, normals *shader.Program
		suit          *model.Model
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("model_loading/model_loading.vs", "model_loading/model_loading.fs"); err != nil {
				return err
			}
			if normals, err = app.LoadShader("advanced_opengl/normal_visualization.vs", "advanced_opengl/normal_visualization.fs", "advanced_opengl/normal_visualization.gs"); err != nil {
				return err
			}
			suit, err = loadSuit(app)
			return err
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			useCamera(app, prog, 100)
			prog.SetMat4("model", suitTransform)
			suit.Draw(prog)

			// then draw the normals as lines
			useCamera(app, normals, 100)
			normals.SetMat4("model", suitTransform)
			suit.Draw(normals)
			return nil
		},
	}
}

// instanceBuffer uploads per-instance data and deletes it when the demo ends.
func instanceBuffer(app *harness.App, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	app.Defer(func() { gl.DeleteBuffers(1, &vbo) })
	return vbo
}

func instancingQuads() harness.Options {
	var (
		prog *shader.Program
		quad gpu.VertexArray
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("advanced_opengl/instancing.vs", "advanced_opengl/instancing.fs"); err != nil {
				return err
			}

			translations := make([]float32, 0, 200)
			const offset = 0.1
			for y := -10; y < 10; y += 2 {
				for x := -10; x < 10; x += 2 {
					translations = append(translations, float32(x)/10+offset, float32(y)/10+offset)
				}
			}
			offsets := instanceBuffer(app, translations)

			quad = vertexArray(app, []float32{
				// positions   // colors
				-0.05, 0.05, 1.0, 0.0, 0.0,
				0.05, -0.05, 0.0, 1.0, 0.0,
				-0.05, -0.05, 0.0, 0.0, 1.0,

				-0.05, 0.05, 1.0, 0.0, 0.0,
				0.05, -0.05, 0.0, 1.0, 0.0,
				0.05, 0.05, 0.0, 1.0, 1.0,
			}, nil, 2, 3)

			// one offset per instance at location 2
			gl.BindVertexArray(quad.VAO)
			gl.BindBuffer(gl.ARRAY_BUFFER, offsets)
			gl.EnableVertexAttribArray(2)
			gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, 2*4, 0)
			gl.VertexAttribDivisor(2, 1)
			gl.BindBuffer(gl.ARRAY_BUFFER, 0)
			gl.BindVertexArray(0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.1, 0.1, 0.1)
			prog.Use()
			app.Device.DrawInstanced(quad, gpu.Triangles, 100)
			return nil
		},
	}
}

// asteroidField describes a ring of rocks and where the camera starts.
type asteroidField struct {
	amount    int
	radius    float32
	offset    float32
	distance  float32
	instanced bool
}

// matrices scatters the rocks on the ring around the origin.
func (f asteroidField) matrices(rng *rand.Rand) []mgl32.Mat4 {
	matrices := make([]mgl32.Mat4, f.amount)
	displace := func() float32 {
		return float32(rng.IntN(int(2*f.offset*100)))/100 - f.offset
	}
	for i := range matrices {
		// 1. translation: displace along a circle with radius in [-offset, offset]
		angle := float32(i) / float32(f.amount) * 2 * math32.Pi
		x := math32.Sin(angle)*f.radius + displace()
		// keep the field flatter than it is wide
		y := displace() * 0.4
		z := math32.Cos(angle)*f.radius + displace()
		m := mgl32.Translate3D(x, y, z)

		// 2. scale between 0.05 and 0.25
		m = m.Mul4(scale(float32(rng.IntN(20))/100 + 0.05))

		// 3. rotation around a semi-random axis
		m = m.Mul4(rotate(float32(rng.IntN(360)), mgl32.Vec3{0.4, 0.6, 0.8}))
		matrices[i] = m
	}
	return matrices
}

// asteroids draws a planet in a ring of rocks, one draw call per rock or a
// single instanced draw per rock mesh.
func asteroids(field asteroidField) func() harness.Options {
	instanced := field.instanced
	return func() harness.Options {
		var (
			prog, rockProg *shader.Program
			planet, rock   *model.Model
			matrices       []mgl32.Mat4
		)
		return harness.Options{
			Camera:        flyCamera(0, 0, field.distance),
			CaptureCursor: true,
			Setup: func(app *harness.App) (err error) {
				gl.Enable(gl.DEPTH_TEST)
				if prog, err = app.LoadShader("model_loading/model_loading.vs", "model_loading/model_loading.fs"); err != nil {
					return err
				}
				rockProg = prog
				if instanced {
					if rockProg, err = app.LoadShader("advanced_opengl/asteroids.vs", "model_loading/model_loading.fs"); err != nil {
						return err
					}
				}
				if planet, err = app.LoadModel("objects/planet/planet.obj", model.Options{}); err != nil {
					return err
				}
				if rock, err = app.LoadModel("objects/rock/rock.obj", model.Options{SmoothNormals: true}); err != nil {
					return err
				}
				matrices = field.matrices(rand.New(rand.NewPCG(1, 2)))
				if instanced {
					attachInstanceMatrices(app, rock, matrices)
				}
				return nil
			},
			Frame: func(app *harness.App, dt float32) error {
				clearScreen(0.05, 0.05, 0.05)
				useCamera(app, prog, 1000)
				prog.SetMat4("model", mgl32.Translate3D(0, -3, 0).Mul4(scale(4)))
				planet.Draw(prog)

				if instanced {
					useCamera(app, rockProg, 1000)
					rock.DrawInstanced(rockProg, int32(len(matrices)))
					return nil
				}
				for _, m := range matrices {
					prog.SetMat4("model", m)
					rock.Draw(prog)
				}
				return nil
			},
		}
	}
}

// attachInstanceMatrices adds a per-instance mat4 at locations 5-8 to every
// mesh of m.
func attachInstanceMatrices(app *harness.App, m *model.Model, matrices []mgl32.Mat4) {
	data := make([]float32, 0, len(matrices)*16)
	for _, mat := range matrices {
		data = append(data, mat[:]...)
	}
	vbo := instanceBuffer(app, data)
	for _, mesh := range m.Meshes {
		gl.BindVertexArray(mesh.VAO())
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		for col := uint32(0); col < 4; col++ {
			loc := 5 + col
			gl.EnableVertexAttribArray(loc)
			gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, mat4Size, uintptr(col*16))
			gl.VertexAttribDivisor(loc, 1)
		}
		gl.BindVertexArray(0)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// antiAliasingOffscreen renders into a 4x multisampled target, resolves it
// into a plain one and post-processes that to grayscale.
func antiAliasingOffscreen() harness.Options {
	const samples = 4
	var (
		prog, post         *shader.Program
		cube, quad         *primitives.Shape
		msaa, intermediate *framebuffer.Framebuffer
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("lighting/colors.vs", "advanced_opengl/anti_aliasing.fs"); err != nil {
				return err
			}
			if post, err = app.LoadShader("advanced_opengl/framebuffers_screen.vs", "advanced_opengl/aa_post.fs"); err != nil {
				return err
			}
			cube = shape(app, primitives.NewCube(app.Device))
			quad = shape(app, primitives.NewQuad(app.Device))

			w, h := int32(app.Width), int32(app.Height)
			if msaa, err = framebuffer.New(w, h, framebuffer.Options{Samples: samples}); err != nil {
				return err
			}
			app.Defer(msaa.Destroy)
			if intermediate, err = framebuffer.New(w, h, framebuffer.Options{NoDepth: true}); err != nil {
				return err
			}
			app.Defer(intermediate.Destroy)

			post.Use()
			post.SetInt("screenTexture", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			msaa.Bind()
			gl.Enable(gl.DEPTH_TEST)
			msaa.Clear(0.1, 0.1, 0.1, 1)
			useCamera(app, prog, 1000)
			prog.SetMat4("model", mgl32.Ident4())
			cube.Draw()

			msaa.BlitTo(intermediate, 0, 0, false)

			resetTarget(app)
			gl.ClearColor(1, 1, 1, 1)
			gl.Clear(gl.COLOR_BUFFER_BIT)
			gl.Disable(gl.DEPTH_TEST)
			post.Use()
			app.Device.BindTexture2D(0, intermediate.ColorTexture())
			quad.Draw()
			return nil
		},
		OnResize: func(app *harness.App) {
			msaa.Resize(int32(app.Width), int32(app.Height))
			intermediate.Resize(int32(app.Width), int32(app.Height))
		},
	}
}
