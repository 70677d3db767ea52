// Package water draws the water surface from the reflection and refraction
// targets rendered earlier in the frame.
package water

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderer"
	"github.com/sepiropht/webgl-water-tutorial/internal/profiling"
)

const (
	reflectionUnit = 0
	refractionUnit = 1
)

// Water is a square of side Size centered on the origin at the water height.
type Water struct {
	Size float32

	vertPath string
	fragPath string
	shader   *graphics.Shader
	ctx      gpu.Context
	vao      uint32
	vbo      uint32
}

func NewWater(vertPath, fragPath string, size float32) *Water {
	return &Water{Size: size, vertPath: vertPath, fragPath: fragPath}
}

// quadVertices returns two triangles in the xz plane as (x, z) pairs.
func quadVertices(size float32) []float32 {
	h := size / 2
	return []float32{
		-h, -h,
		-h, h,
		h, h,

		h, h,
		h, -h,
		-h, -h,
	}
}

func (w *Water) Init(ctx gpu.Context) error {
	var err error
	w.shader, err = graphics.NewShader(ctx, w.vertPath, w.fragPath)
	if err != nil {
		return err
	}
	w.ctx = ctx

	w.vao = ctx.GenVertexArray()
	ctx.BindVertexArray(w.vao)

	w.vbo = ctx.GenBuffer()
	ctx.BufferFloat32(w.vbo, quadVertices(w.Size))
	pos := w.shader.AttribLocation("position")
	ctx.EnableVertexAttribArray(pos)
	ctx.VertexAttribPointer(pos, 2)

	ctx.BindVertexArray(0)
	return nil
}

func (w *Water) Passes() renderer.PassMask {
	return renderer.MainPass
}

func (w *Water) Render(ctx renderer.RenderContext) {
	defer profiling.Track("water.Render")()

	w.shader.Use()
	w.shader.SetMatrix4("model", mgl32.Translate3D(0, ctx.WaterHeight, 0))
	w.shader.SetMatrix4("view", ctx.Camera.View())
	w.shader.SetMatrix4("perspective", ctx.Camera.Projection())
	w.shader.SetVector3("cameraPos", ctx.Eye)

	ctx.GPU.BindTexture2D(reflectionUnit, ctx.Targets.Reflection.ColorTexture)
	ctx.GPU.BindTexture2D(refractionUnit, ctx.Targets.Refraction.ColorTexture)
	w.shader.SetInt("reflectionTexture", reflectionUnit)
	w.shader.SetInt("refractionTexture", refractionUnit)

	ctx.GPU.BindVertexArray(w.vao)
	ctx.GPU.DrawArrays(gpu.Triangles, 0, 6)
	ctx.GPU.BindVertexArray(0)
}

func (w *Water) SetViewport(width, height int) {}

// Dispose cleans up GPU resources
func (w *Water) Dispose() {
	if w.ctx == nil {
		return
	}
	if w.vbo != 0 {
		w.ctx.DeleteBuffer(w.vbo)
	}
	if w.vao != 0 {
		w.ctx.DeleteVertexArray(w.vao)
	}
	w.shader.Delete()
}
