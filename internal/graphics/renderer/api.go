package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
)

// Pass identifies one scene traversal within a frame.
type Pass int

const (
	// PassRefraction draws what is under the water into the refraction target.
	PassRefraction Pass = iota
	// PassReflection draws what is above the water, seen from the mirrored
	// camera, into the reflection target.
	PassReflection
	// PassMain draws to the window.
	PassMain
)

func (p Pass) String() string {
	switch p {
	case PassRefraction:
		return "refraction"
	case PassReflection:
		return "reflection"
	case PassMain:
		return "main"
	default:
		return "unknown"
	}
}

// PassMask selects the passes a renderable takes part in.
type PassMask uint8

const (
	MainPass  PassMask = 1 << PassMain
	AllPasses PassMask = 1<<PassRefraction | 1<<PassReflection | 1<<PassMain
)

// Has reports whether p is in the mask.
func (m PassMask) Has(p Pass) bool {
	return m&(1<<p) != 0
}

// Camera supplies the view and projection for a pass.
type Camera interface {
	View() mgl32.Mat4
	Projection() mgl32.Mat4
}

// Targets are the offscreen framebuffers the water samples.
type Targets struct {
	Reflection gpu.Framebuffer
	Refraction gpu.Framebuffer
}

// RenderContext provides shared context for all renderables
type RenderContext struct {
	GPU    gpu.Context
	Camera Camera
	// Eye is the world-space position of the main camera, also during the
	// reflection pass.
	Eye         mgl32.Vec3
	Pass        Pass
	ClipPlane   mgl32.Vec4
	WaterHeight float32
	Targets     Targets
	DT          float64
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init(ctx gpu.Context) error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
	Passes() PassMask
}
