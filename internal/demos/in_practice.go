package demos

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/debug"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/engine/text"
	"github.com/Faultbox/learnopengl/internal/engine/texture"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "7_1", Title: "Debugging", New: debugging})
	Register(Demo{ID: "7_2", Title: "Text Rendering", New: textRendering})
}

// debugging draws a spinning textured cube and drains the GL error queue
// after setup and after every frame.
func debugging() harness.Options {
	var (
		prog *shader.Program
		cube *primitives.Shape
		tex  uint32
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			gl.Enable(gl.CULL_FACE)
			if prog, err = app.LoadShader("in_practice/debugging.vs", "in_practice/debugging.fs"); err != nil {
				return err
			}
			if tex, err = app.LoadTexture("textures/wood.png", texture.Options{FlipY: true}); err != nil {
				return err
			}
			cube = shape(app, primitives.NewCube(app.Device))

			prog.Use()
			prog.SetInt("tex", 0)
			debug.CheckError("7_1 setup")
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0, 0, 0)
			prog.Use()
			rotation := app.Time * mgl32.DegToRad(10)
			m := mgl32.Translate3D(0, 0, -2.5).Mul4(mgl32.HomogRotate3D(rotation, mgl32.Vec3{1, 1, 1}.Normalize()))
			prog.SetMat4("projection", mgl32.Perspective(mgl32.DegToRad(45), app.Aspect(), 0.1, 10))
			prog.SetMat4("model", m)
			app.Device.BindTexture2D(0, tex)
			cube.Draw()
			debug.CheckError("7_1 frame")
			return nil
		},
	}
}

func textRendering() harness.Options {
	var (
		prog *shader.Program
		font *text.Font
	)
	return harness.Options{
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.CULL_FACE)
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			if prog, err = app.LoadShader("in_practice/text.vs", "in_practice/text.fs"); err != nil {
				return err
			}
			if font, err = app.LoadFont(text.DefaultSize); err != nil {
				return err
			}
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.2, 0.3, 0.3)
			prog.Use()
			prog.SetMat4("projection", mgl32.Ortho2D(0, float32(app.Width), 0, float32(app.Height)))
			font.RenderText(prog, "This is sample text", 25, 25, 1, mgl32.Vec3{0.5, 0.8, 0.2})
			font.RenderText(prog, "(C) LearnOpenGL.com", float32(app.Width)-340, float32(app.Height)-60, 0.5, mgl32.Vec3{0.3, 0.7, 0.9})
			return nil
		},
	}
}
