package demos

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "1_1_1", Title: "Hello Window", New: helloWindow(false)})
	Register(Demo{ID: "1_1_2", Title: "Hello Window Clear", New: helloWindow(true)})
	Register(Demo{ID: "1_2_1", Title: "Hello Triangle", New: helloTriangle})
	Register(Demo{ID: "1_2_2", Title: "Hello Triangle Indexed", New: helloTriangleIndexed})
	Register(Demo{ID: "1_2_3", Title: "Hello Triangle Exercise 1", New: helloTriangleExercise1})
	Register(Demo{ID: "1_2_4", Title: "Hello Triangle Exercise 2", New: helloTriangleExercise2})
	Register(Demo{ID: "1_2_5", Title: "Hello Triangle Exercise 3", New: helloTriangleExercise3})
	Register(Demo{ID: "1_3_1", Title: "Shaders Uniform", New: shadersUniform})
	Register(Demo{ID: "1_3_2", Title: "Shaders Interpolation", New: shadersInterpolation})
	Register(Demo{ID: "1_3_3", Title: "Shaders Class", New: shadersClass})
	Register(Demo{ID: "1_4_1", Title: "Textures", New: textures(false)})
	Register(Demo{ID: "1_4_2", Title: "Textures Combined", New: textures(true)})
	Register(Demo{ID: "1_5_1", Title: "Transformations", New: transformations})
	Register(Demo{ID: "1_6_1", Title: "Coordinate Systems", New: coordinateSystems})
	Register(Demo{ID: "1_6_2", Title: "Coordinate Systems Depth", New: coordinateSystemsCubes(false)})
	Register(Demo{ID: "1_6_3", Title: "Coordinate Systems Multiple", New: coordinateSystemsCubes(true)})
	Register(Demo{ID: "1_7_1", Title: "Camera Circle", New: cameraCircle})
	Register(Demo{ID: "1_7_2", Title: "Camera Keyboard", New: cameraScene(false)})
	Register(Demo{ID: "1_7_3", Title: "Camera Mouse Zoom", New: cameraScene(true)})
	Register(Demo{ID: "1_7_4", Title: "Camera Class", New: cameraScene(true)})
}

const triangleVertexSource = `#version 410 core
layout (location = 0) in vec3 aPos;
void main()
{
    gl_Position = vec4(aPos.x, aPos.y, aPos.z, 1.0);
}
`

const orangeFragmentSource = `#version 410 core
out vec4 FragColor;
void main()
{
    FragColor = vec4(1.0f, 0.5f, 0.2f, 1.0f);
}
`

const yellowFragmentSource = `#version 410 core
out vec4 FragColor;
void main()
{
    FragColor = vec4(1.0f, 1.0f, 0.0f, 1.0f);
}
`

// inlineShader builds a program from in-source GLSL and deletes it when the
// demo ends.
func inlineShader(app *harness.App, name, vertexSrc, fragmentSrc string) (*shader.Program, error) {
	p, err := shader.FromSource(app.Device, name, vertexSrc, fragmentSrc, "")
	if err != nil {
		return nil, err
	}
	app.Defer(p.Delete)
	return p, nil
}

func helloWindow(withClear bool) func() harness.Options {
	return func() harness.Options {
		return harness.Options{
			Frame: func(app *harness.App, dt float32) error {
				if withClear {
					clearScreen(0.2, 0.3, 0.3)
				}
				return nil
			},
		}
	}
}

// triangleDemo draws vertex arrays with one program each; the wireframe
// toggle is bound to Space.
type triangleDemo struct {
	programs  []*shader.Program
	arrays    []gpu.VertexArray
	wireframe bool
}

func (d *triangleDemo) frame(app *harness.App, dt float32) error {
	clearScreen(0.2, 0.3, 0.3)
	mode := uint32(gl.FILL)
	if d.wireframe {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	for i, va := range d.arrays {
		d.programs[i%len(d.programs)].Use()
		app.Device.Draw(va, gpu.Triangles)
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	return nil
}

func (d *triangleDemo) options(setup func(app *harness.App) error) harness.Options {
	return harness.Options{
		Setup: setup,
		Frame: d.frame,
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeySpace {
				d.wireframe = !d.wireframe
			}
		},
	}
}

func helloTriangle() harness.Options {
	d := &triangleDemo{}
	return d.options(func(app *harness.App) error {
		p, err := inlineShader(app, "triangle", triangleVertexSource, orangeFragmentSource)
		if err != nil {
			return err
		}
		d.programs = []*shader.Program{p}
		d.arrays = []gpu.VertexArray{vertexArray(app, []float32{
			-0.5, -0.5, 0.0, // left
			0.5, -0.5, 0.0, // right
			0.0, 0.5, 0.0, // top
		}, nil, 3)}
		return nil
	})
}

func helloTriangleIndexed() harness.Options {
	d := &triangleDemo{}
	return d.options(func(app *harness.App) error {
		p, err := inlineShader(app, "triangle", triangleVertexSource, orangeFragmentSource)
		if err != nil {
			return err
		}
		d.programs = []*shader.Program{p}
		d.arrays = []gpu.VertexArray{vertexArray(app, []float32{
			0.5, 0.5, 0.0, // top right
			0.5, -0.5, 0.0, // bottom right
			-0.5, -0.5, 0.0, // bottom left
			-0.5, 0.5, 0.0, // top left
		}, []uint32{
			0, 1, 3,
			1, 2, 3,
		}, 3)}
		return nil
	})
}

func helloTriangleExercise1() harness.Options {
	d := &triangleDemo{}
	return d.options(func(app *harness.App) error {
		p, err := inlineShader(app, "triangle", triangleVertexSource, orangeFragmentSource)
		if err != nil {
			return err
		}
		d.programs = []*shader.Program{p}
		d.arrays = []gpu.VertexArray{vertexArray(app, []float32{
			// first triangle
			-0.9, -0.5, 0.0,
			-0.0, -0.5, 0.0,
			-0.45, 0.5, 0.0,
			// second triangle
			0.0, -0.5, 0.0,
			0.9, -0.5, 0.0,
			0.45, 0.5, 0.0,
		}, nil, 3)}
		return nil
	})
}

var (
	firstTriangle  = []float32{-0.9, -0.5, 0.0, -0.0, -0.5, 0.0, -0.45, 0.5, 0.0}
	secondTriangle = []float32{0.0, -0.5, 0.0, 0.9, -0.5, 0.0, 0.45, 0.5, 0.0}
)

func helloTriangleExercise2() harness.Options {
	d := &triangleDemo{}
	return d.options(func(app *harness.App) error {
		p, err := inlineShader(app, "triangle", triangleVertexSource, orangeFragmentSource)
		if err != nil {
			return err
		}
		d.programs = []*shader.Program{p}
		d.arrays = []gpu.VertexArray{
			vertexArray(app, firstTriangle, nil, 3),
			vertexArray(app, secondTriangle, nil, 3),
		}
		return nil
	})
}

func helloTriangleExercise3() harness.Options {
	d := &triangleDemo{}
	return d.options(func(app *harness.App) error {
		orange, err := inlineShader(app, "orange", triangleVertexSource, orangeFragmentSource)
		if err != nil {
			return err
		}
		yellow, err := inlineShader(app, "yellow", triangleVertexSource, yellowFragmentSource)
		if err != nil {
			return err
		}
		d.programs = []*shader.Program{orange, yellow}
		d.arrays = []gpu.VertexArray{
			vertexArray(app, firstTriangle, nil, 3),
			vertexArray(app, secondTriangle, nil, 3),
		}
		return nil
	})
}

func shadersUniform() harness.Options {
	const fragmentSource = `#version 410 core
out vec4 FragColor;
uniform vec4 ourColor;
void main()
{
    FragColor = ourColor;
}
`
	var (
		prog *shader.Program
		va   gpu.VertexArray
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = inlineShader(app, "uniform", triangleVertexSource, fragmentSource); err != nil {
				return err
			}
			va = vertexArray(app, []float32{
				0.5, -0.5, 0.0, // bottom right
				-0.5, -0.5, 0.0, // bottom left
				0.0, 0.5, 0.0, // top
			}, nil, 3)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.2, 0.3, 0.3)
			prog.Use()
			green := math32.Sin(app.Time)/2 + 0.5
			prog.SetVec4("ourColor", mgl32.Vec4{0, green, 0, 1})
			app.Device.Draw(va, gpu.Triangles)
			return nil
		},
	}
}

// coloredTriangle has position (0) and color (1) per vertex.
var coloredTriangle = []float32{
	// positions    // colors
	0.5, -0.5, 0.0, 1.0, 0.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
	0.0, 0.5, 0.0, 0.0, 0.0, 1.0, // top
}

func shadersInterpolation() harness.Options {
	const vertexSource = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
out vec3 ourColor;
void main()
{
    gl_Position = vec4(aPos, 1.0);
    ourColor = aColor;
}
`
	const fragmentSource = `#version 410 core
out vec4 FragColor;
in vec3 ourColor;
void main()
{
    FragColor = vec4(ourColor, 1.0f);
}
`
	var (
		prog *shader.Program
		va   gpu.VertexArray
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = inlineShader(app, "interpolation", vertexSource, fragmentSource); err != nil {
				return err
			}
			va = vertexArray(app, coloredTriangle, nil, 3, 3)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.2, 0.3, 0.3)
			prog.Use()
			app.Device.Draw(va, gpu.Triangles)
			return nil
		},
	}
}

func shadersClass() harness.Options {
	var (
		prog *shader.Program
		va   gpu.VertexArray
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("getting_started/shader.vs", "getting_started/shader.fs"); err != nil {
				return err
			}
			va = vertexArray(app, coloredTriangle, nil, 3, 3)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.2, 0.3, 0.3)
			prog.Use()
			app.Device.Draw(va, gpu.Triangles)
			return nil
		},
	}
}

var rectangleIndices = []uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

func textures(combined bool) func() harness.Options {
	return func() harness.Options {
		var (
			prog *shader.Program
			va   gpu.VertexArray
			ids  []uint32
		)
		return harness.Options{
			Setup: func(app *harness.App) (err error) {
				fragment := "getting_started/texture.fs"
				paths := []string{"textures/container.jpg"}
				if combined {
					fragment = "getting_started/texture_combined.fs"
					paths = append(paths, "textures/awesomeface.png")
				}
				if prog, err = app.LoadShader("getting_started/texture.vs", fragment); err != nil {
					return err
				}
				if ids, err = loadTextures(app, texture.Options{FlipY: true}, paths...); err != nil {
					return err
				}
				va = vertexArray(app, []float32{
					// positions     // colors      // texture coords
					0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0, // top right
					0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0, // bottom right
					-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, // bottom left
					-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0, // top left
				}, rectangleIndices, 3, 3, 2)

				prog.Use()
				prog.SetInt("texture1", 0)
				if combined {
					prog.SetInt("texture2", 1)
				}
				return nil
			},
			Frame: func(app *harness.App, dt float32) error {
				clearScreen(0.2, 0.3, 0.3)
				bindTextures(app, ids...)
				prog.Use()
				app.Device.Draw(va, gpu.Triangles)
				return nil
			},
		}
	}
}

// texturedRectangle has position (0) and texture coordinates (1).
var texturedRectangle = []float32{
	0.5, 0.5, 0.0, 1.0, 1.0, // top right
	0.5, -0.5, 0.0, 1.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.0, 0.0, // bottom left
	-0.5, 0.5, 0.0, 0.0, 1.0, // top left
}

// loadContainerFace loads the container and face textures and points the
// texture1/texture2 samplers of prog at units 0 and 1.
func loadContainerFace(app *harness.App, prog *shader.Program) ([]uint32, error) {
	ids, err := loadTextures(app, texture.Options{FlipY: true}, "textures/container.jpg", "textures/awesomeface.png")
	if err != nil {
		return nil, err
	}
	prog.Use()
	prog.SetInt("texture1", 0)
	prog.SetInt("texture2", 1)
	return ids, nil
}

func transformations() harness.Options {
	var (
		prog *shader.Program
		va   gpu.VertexArray
		ids  []uint32
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("getting_started/transform.vs", "getting_started/transform.fs"); err != nil {
				return err
			}
			if ids, err = loadContainerFace(app, prog); err != nil {
				return err
			}
			va = vertexArray(app, texturedRectangle, rectangleIndices, 3, 2)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.2, 0.3, 0.3)
			bindTextures(app, ids...)

			transform := mgl32.Translate3D(0.5, -0.5, 0).
				Mul4(mgl32.HomogRotate3DZ(app.Time))

			prog.Use()
			prog.SetMat4("transform", transform)
			app.Device.Draw(va, gpu.Triangles)
			return nil
		},
	}
}

func coordinateSystems() harness.Options {
	var (
		prog *shader.Program
		va   gpu.VertexArray
		ids  []uint32
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			if prog, err = app.LoadShader("getting_started/coordinate_systems.vs", "getting_started/transform.fs"); err != nil {
				return err
			}
			if ids, err = loadContainerFace(app, prog); err != nil {
				return err
			}
			stride, attribs := layout(3, 2)
			attribs[1].Location = 2
			va = vertexArrayWith(app, texturedRectangle, rectangleIndices, stride, attribs)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.2, 0.3, 0.3)
			bindTextures(app, ids...)

			prog.Use()
			prog.SetMat4("model", rotate(-55, mgl32.Vec3{1, 0, 0}))
			prog.SetMat4("view", mgl32.Translate3D(0, 0, -3))
			prog.SetMat4("projection", app.Projection(0.1, 100))
			app.Device.Draw(va, gpu.Triangles)
			return nil
		},
	}
}

// cubeScene draws textured cubes with the coordinate systems program.
type cubeScene struct {
	prog *shader.Program
	cube *primitives.Shape
	ids  []uint32
}

func (s *cubeScene) setup(app *harness.App) (err error) {
	gl.Enable(gl.DEPTH_TEST)
	if s.prog, err = app.LoadShader("getting_started/coordinate_systems.vs", "getting_started/transform.fs"); err != nil {
		return err
	}
	if s.ids, err = loadContainerFace(app, s.prog); err != nil {
		return err
	}
	s.cube = shape(app, primitives.NewCube(app.Device))
	return nil
}

// draw draws the ten cubes, each turned by angle(i) degrees.
func (s *cubeScene) draw(app *harness.App, view mgl32.Mat4, angle func(i int) float32) {
	clearScreen(0.2, 0.3, 0.3)
	bindTextures(app, s.ids...)
	s.prog.Use()
	s.prog.SetMat4("view", view)
	s.prog.SetMat4("projection", app.Projection(0.1, 100))
	for i, pos := range cubePositions {
		model := translate(pos).Mul4(rotate(angle(i), mgl32.Vec3{1, 0.3, 0.5}))
		s.prog.SetMat4("model", model)
		s.cube.Draw()
	}
}

func coordinateSystemsCubes(multiple bool) func() harness.Options {
	return func() harness.Options {
		s := &cubeScene{}
		return harness.Options{
			Setup: s.setup,
			Frame: func(app *harness.App, dt float32) error {
				view := mgl32.Translate3D(0, 0, -3)
				if !multiple {
					clearScreen(0.2, 0.3, 0.3)
					bindTextures(app, s.ids...)
					s.prog.Use()
					s.prog.SetMat4("model", mgl32.HomogRotate3D(app.Time*mgl32.DegToRad(50), mgl32.Vec3{0.5, 1, 0}.Normalize()))
					s.prog.SetMat4("view", view)
					s.prog.SetMat4("projection", app.Projection(0.1, 100))
					s.cube.Draw()
					return nil
				}
				s.draw(app, view, func(i int) float32 { return 20 * float32(i) })
				return nil
			},
		}
	}
}

func cameraCircle() harness.Options {
	s := &cubeScene{}
	return harness.Options{
		Setup: s.setup,
		Frame: func(app *harness.App, dt float32) error {
			const radius = 10
			camX := math32.Sin(app.Time) * radius
			camZ := math32.Cos(app.Time) * radius
			view := mgl32.LookAtV(mgl32.Vec3{camX, 0, camZ}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
			s.draw(app, view, func(i int) float32 { return 20 * float32(i) })
			return nil
		},
	}
}

// cameraScene is the ten-cube scene seen through the fly camera. Without
// mouse look only the keyboard moves it.
func cameraScene(mouse bool) func() harness.Options {
	return func() harness.Options {
		s := &cubeScene{}
		return harness.Options{
			Camera:        flyCamera(0, 0, 3),
			CaptureCursor: mouse,
			Setup:         s.setup,
			Frame: func(app *harness.App, dt float32) error {
				s.draw(app, app.View(), func(i int) float32 { return 20 * float32(i) })
				return nil
			},
		}
	}
}
