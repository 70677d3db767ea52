package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/config"
	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics"
	"github.com/sepiropht/webgl-water-tutorial/internal/profiling"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	ctx         gpu.Context
	renderables []Renderable
	camera      *graphics.Camera
	targets     Targets

	width, height int
}

// NewRenderer creates the offscreen targets and initializes the given
// renderables in order.
func NewRenderer(ctx gpu.Context, camera *graphics.Camera, width, height int, rs ...Renderable) (*Renderer, error) {
	// Configure OpenGL
	ctx.Enable(gpu.DepthTest)

	r := &Renderer{
		ctx:         ctx,
		renderables: rs,
		camera:      camera,
		width:       width,
		height:      height,
	}

	var err error
	rw, rh := config.GetReflectionSize()
	if r.targets.Reflection, err = ctx.CreateFramebuffer(int32(rw), int32(rh)); err != nil {
		return nil, fmt.Errorf("reflection target: %w", err)
	}
	fw, fh := config.GetRefractionSize()
	if r.targets.Refraction, err = ctx.CreateFramebuffer(int32(fw), int32(fh)); err != nil {
		ctx.DeleteFramebuffer(r.targets.Reflection)
		return nil, fmt.Errorf("refraction target: %w", err)
	}

	// Initialize all renderables
	for i, rb := range rs {
		if err := rb.Init(ctx); err != nil {
			r.renderables = rs[:i]
			r.Dispose()
			return nil, err
		}
		rb.SetViewport(width, height)
	}

	return r, nil
}

type passSetup struct {
	pass     Pass
	target   uint32
	width    int32
	height   int32
	clip     mgl32.Vec4
	clipping bool
	camera   Camera
}

func (r *Renderer) passes(water float32) []passSetup {
	return []passSetup{
		{
			pass:     PassRefraction,
			target:   r.targets.Refraction.ID,
			width:    r.targets.Refraction.Width,
			height:   r.targets.Refraction.Height,
			clip:     graphics.RefractionClipPlane(water),
			clipping: true,
			camera:   r.camera,
		},
		{
			pass:     PassReflection,
			target:   r.targets.Reflection.ID,
			width:    r.targets.Reflection.Width,
			height:   r.targets.Reflection.Height,
			clip:     graphics.ReflectionClipPlane(water),
			clipping: true,
			camera:   r.camera.Reflected(water),
		},
		{
			pass:   PassMain,
			target: 0,
			width:  int32(r.width),
			height: int32(r.height),
			clip:   graphics.NoClip(),
			camera: r.camera,
		},
	}
}

// Render draws one frame: refraction, reflection, then the window.
// GPU errors raised during the frame are logged afterwards.
func (r *Renderer) Render(dt float64) {
	defer profiling.Track("renderer.Render")()

	water := config.GetWaterHeight()
	clearColor := config.GetClearColor()
	eye := r.camera.Eye()

	for _, p := range r.passes(water) {
		func() {
			defer profiling.Track("renderer.pass." + p.pass.String())()

			r.ctx.BindFramebuffer(p.target)
			r.ctx.Viewport(0, 0, p.width, p.height)
			r.ctx.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
			r.ctx.Clear(gpu.ColorBufferBit | gpu.DepthBufferBit)
			if p.clipping {
				r.ctx.Enable(gpu.ClipDistance0)
			} else {
				r.ctx.Disable(gpu.ClipDistance0)
			}

			rc := RenderContext{
				GPU:         r.ctx,
				Camera:      p.camera,
				Eye:         eye,
				Pass:        p.pass,
				ClipPlane:   p.clip,
				WaterHeight: water,
				Targets:     r.targets,
				DT:          dt,
			}
			for _, rb := range r.renderables {
				if rb.Passes().Has(p.pass) {
					rb.Render(rc)
				}
			}
		}()
	}

	for _, err := range r.ctx.Errors() {
		log.Printf("gpu: %v", err)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
	if r.targets.Refraction.ID != 0 {
		r.ctx.DeleteFramebuffer(r.targets.Refraction)
	}
	if r.targets.Reflection.ID != 0 {
		r.ctx.DeleteFramebuffer(r.targets.Reflection)
	}
	r.targets = Targets{}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// Targets returns the offscreen framebuffers.
func (r *Renderer) Targets() Targets {
	return r.targets
}

// UpdateViewport updates the window size used by the main pass
func (r *Renderer) UpdateViewport(width, height int) {
	r.width, r.height = width, height
	r.camera.SetViewport(width, height)
	for _, rb := range r.renderables {
		rb.SetViewport(width, height)
	}
}
