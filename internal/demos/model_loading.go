package demos

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/debug"
	"github.com/Faultbox/learnopengl/internal/engine/gpu"
	"github.com/Faultbox/learnopengl/internal/engine/input"
	"github.com/Faultbox/learnopengl/internal/engine/model"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "3_1", Title: "Model Loading", New: modelLoading})
}

// modelLoading draws the nanosuit. B toggles its bounding box.
func modelLoading() harness.Options {
	var (
		prog, lines *shader.Program
		suit        *model.Model
		box         gpu.VertexArray
		showBox     bool
	)
	return harness.Options{
		Camera:        flyCamera(0, 0, 3),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if prog, err = app.LoadShader("model_loading/model_loading.vs", "model_loading/model_loading.fs"); err != nil {
				return err
			}
			if lines, err = app.LoadShader("lighting/colors.vs", "model_loading/bounds.fs"); err != nil {
				return err
			}
			if suit, err = app.LoadModel("objects/nanosuit/nanosuit.obj", model.Options{}); err != nil {
				return err
			}
			box = vertexArray(app, debug.BoxLines(suit.Bounds.Min, suit.Bounds.Max, 0.05), nil, 3)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			clearScreen(0.05, 0.05, 0.05)
			projection := app.Projection(0.1, 100)
			view := app.View()
			// translated down and scaled to fit the view
			m := mgl32.Translate3D(0, -1.75, 0).Mul4(scale(0.2))

			prog.Use()
			prog.SetMat4("projection", projection)
			prog.SetMat4("view", view)
			prog.SetMat4("model", m)
			suit.Draw(prog)

			if showBox {
				lines.Use()
				lines.SetMat4("projection", projection)
				lines.SetMat4("view", view)
				lines.SetMat4("model", m)
				lines.SetVec3f("color", 1, 1, 0)
				app.Device.Draw(box, gpu.Lines)
			}
			return nil
		},
		OnKey: func(app *harness.App, key input.Key) {
			if key == input.KeyB {
				showBox = !showBox
			}
		},
	}
}
