package demos

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/learnopengl/internal/engine/framebuffer"
	"github.com/Faultbox/learnopengl/internal/engine/model"
	"github.com/Faultbox/learnopengl/internal/engine/primitives"
	"github.com/Faultbox/learnopengl/internal/engine/shader"
	"github.com/Faultbox/learnopengl/internal/harness"
)

func init() {
	Register(Demo{ID: "5_9", Title: "SSAO", New: ssao})
}

const (
	ssaoKernelSize = 64
	ssaoNoiseSize  = 4
)

// ssaoKernel returns n sample offsets in the tangent-space hemisphere
// around +z, scaled so that samples cluster near the origin.
func ssaoKernel(rng *rand.Rand, n int) []mgl32.Vec3 {
	kernel := make([]mgl32.Vec3, n)
	for i := range kernel {
		s := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32(),
		}
		if s.Len() == 0 {
			s = mgl32.Vec3{0, 0, 1}
		}
		s = s.Normalize().Mul(rng.Float32())
		t := float32(i) / float32(n)
		s = s.Mul(lerp(0.1, 1, t*t))
		kernel[i] = s
	}
	return kernel
}

// ssaoNoise returns size*size random rotation vectors around +z, flattened
// as RGB floats.
func ssaoNoise(rng *rand.Rand, size int) []float32 {
	noise := make([]float32, 0, size*size*3)
	for range size * size {
		noise = append(noise, rng.Float32()*2-1, rng.Float32()*2-1, 0)
	}
	return noise
}

func lerp(a, b, f float32) float32 {
	return a + f*(b-a)
}

// noiseTexture uploads the rotation vectors as a repeating RGB float
// texture.
func noiseTexture(app *harness.App, noise []float32, size int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, size, size, 0, gl.RGB, gl.FLOAT, gl.Ptr(noise))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	app.Defer(func() { app.Device.DeleteTexture(tex) })
	return tex
}

// ssao renders the backpack in a closed room into a view-space G-buffer,
// computes and blurs an occlusion term, then lights the scene with it.
func ssao() harness.Options {
	lightPos := mgl32.Vec3{2, 4, -2}
	lightColor := mgl32.Vec3{0.2, 0.2, 0.7}
	var (
		geometryProg, ssaoProg, blurProg, lightingProg *shader.Program
		gbuf                                           *framebuffer.GBuffer
		occlusion, blurred                             *framebuffer.Framebuffer
		cube, quad                                     *primitives.Shape
		backpack                                       *model.Model
		kernel                                         []mgl32.Vec3
		noise                                          uint32
	)
	targets := func(app *harness.App) error {
		w, h := int32(app.Width), int32(app.Height)
		var err error
		if gbuf, err = framebuffer.NewGBuffer(w, h); err != nil {
			return err
		}
		app.Defer(gbuf.Destroy)
		opts := framebuffer.Options{Red: true, Nearest: true, NoDepth: true}
		if occlusion, err = framebuffer.New(w, h, opts); err != nil {
			return err
		}
		app.Defer(occlusion.Destroy)
		if blurred, err = framebuffer.New(w, h, opts); err != nil {
			return err
		}
		app.Defer(blurred.Destroy)
		return nil
	}
	return harness.Options{
		Camera:        flyCamera(0, 0, 5),
		CaptureCursor: true,
		Setup: func(app *harness.App) (err error) {
			gl.Enable(gl.DEPTH_TEST)
			if geometryProg, err = app.LoadShader("advanced_lighting/ssao_geometry.vs", "advanced_lighting/ssao_geometry.fs"); err != nil {
				return err
			}
			if ssaoProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/ssao.fs"); err != nil {
				return err
			}
			if blurProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/ssao_blur.fs"); err != nil {
				return err
			}
			if lightingProg, err = app.LoadShader("advanced_lighting/screen.vs", "advanced_lighting/ssao_lighting.fs"); err != nil {
				return err
			}
			if backpack, err = app.LoadModel("objects/backpack/backpack.obj", model.Options{}); err != nil {
				return err
			}
			if err = targets(app); err != nil {
				return err
			}
			cube = shape(app, primitives.NewCube(app.Device))
			quad = shape(app, primitives.NewQuad(app.Device))

			rng := rand.New(rand.NewPCG(7, 11))
			kernel = ssaoKernel(rng, ssaoKernelSize)
			noise = noiseTexture(app, ssaoNoise(rng, ssaoNoiseSize), ssaoNoiseSize)

			lightingProg.Use()
			lightingProg.SetInt("gPosition", 0)
			lightingProg.SetInt("gNormal", 1)
			lightingProg.SetInt("gAlbedo", 2)
			lightingProg.SetInt("ssao", 3)
			ssaoProg.Use()
			ssaoProg.SetInt("gPosition", 0)
			ssaoProg.SetInt("gNormal", 1)
			ssaoProg.SetInt("texNoise", 2)
			blurProg.Use()
			blurProg.SetInt("ssaoInput", 0)
			return nil
		},
		Frame: func(app *harness.App, dt float32) error {
			projection := app.Projection(0.1, 50)
			view := app.View()

			// 1. geometry pass: view-space positions and normals
			gbuf.Bind()
			clearScreen(0, 0, 0)
			geometryProg.Use()
			geometryProg.SetMat4("projection", projection)
			geometryProg.SetMat4("view", view)
			// the room, seen from inside
			geometryProg.SetMat4("model", mgl32.Translate3D(0, 7, 0).Mul4(scale(15)))
			geometryProg.SetBool("invertedNormals", true)
			cube.Draw()
			geometryProg.SetBool("invertedNormals", false)
			geometryProg.SetMat4("model", mgl32.Translate3D(0, 0.5, 0).Mul4(rotate(-90, mgl32.Vec3{1, 0, 0})))
			backpack.Draw(geometryProg)

			// 2. occlusion
			occlusion.Bind()
			gl.Clear(gl.COLOR_BUFFER_BIT)
			ssaoProg.Use()
			for i, s := range kernel {
				ssaoProg.SetVec3(fmt.Sprintf("samples[%d]", i), s)
			}
			ssaoProg.SetMat4("projection", projection)
			ssaoProg.SetVec2("noiseScale", mgl32.Vec2{float32(app.Width) / ssaoNoiseSize, float32(app.Height) / ssaoNoiseSize})
			bindTextures(app, gbuf.Position(), gbuf.Normal(), noise)
			quad.Draw()

			// 3. blur away the noise pattern
			blurred.Bind()
			gl.Clear(gl.COLOR_BUFFER_BIT)
			blurProg.Use()
			app.Device.BindTexture2D(0, occlusion.ColorTexture())
			quad.Draw()

			// 4. lighting in view space
			resetTarget(app)
			clearScreen(0, 0, 0)
			lightingProg.Use()
			lightView := view.Mul4x1(lightPos.Vec4(1)).Vec3()
			lightingProg.SetVec3("light.Position", lightView)
			lightingProg.SetVec3("light.Color", lightColor)
			lightingProg.SetFloat("light.Linear", 0.09)
			lightingProg.SetFloat("light.Quadratic", 0.032)
			bindTextures(app, gbuf.Position(), gbuf.Normal(), gbuf.AlbedoSpec(), blurred.ColorTexture())
			quad.Draw()
			return nil
		},
		OnResize: func(app *harness.App) {
			w, h := int32(app.Width), int32(app.Height)
			gbuf.Resize(w, h)
			occlusion.Resize(w, h)
			blurred.Resize(w, h)
		},
	}
}
