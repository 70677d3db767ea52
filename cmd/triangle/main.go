// Command triangle draws a single mesh triangle through the mesh renderer,
// with the smallest possible surrounding setup.
package main

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/gpu/glgpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderables/mesh"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

const vertexSrc = `#version 410 core
in vec3 position;
in vec3 normal;
uniform mat4 model;
uniform mat4 view;
uniform mat4 perspective;
uniform vec4 clipPlane;
out vec3 vNormal;
void main() {
	vec4 world = model * vec4(position, 1.0);
	gl_ClipDistance[0] = dot(world, clipPlane);
	vNormal = normal;
	gl_Position = perspective * view * world;
}`

const fragmentSrc = `#version 410 core
in vec3 vNormal;
out vec4 fragColor;
void main() {
	fragColor = vec4(abs(vNormal) * 0.5 + 0.5, 1.0);
}`

// identityCamera leaves positions in clip space.
type identityCamera struct{}

func (identityCamera) View() mgl32.Mat4       { return mgl32.Ident4() }
func (identityCamera) Projection() mgl32.Mat4 { return mgl32.Ident4() }

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "mesh triangle", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	ctx, err := glgpu.New()
	if err != nil {
		panic(err)
	}

	shader, err := graphics.NewShaderFromSource(ctx, vertexSrc, fragmentSrc)
	if err != nil {
		panic(err)
	}
	defer shader.Delete()

	tri := &meshmodel.Mesh{
		Positions: []float32{-0.5, -0.5, 0, 0.5, -0.5, 0, 0, 0.5, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint16{0, 1, 2},
	}
	opts := mesh.Options{ClipPlane: graphics.NoClip()}

	ctx.ClearColor(0.0, 0.0, 0.0, 1.0)

	start := time.Now()
	frames := 0
	last := start
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		// Slide the triangle left and right to exercise the model transform.
		opts.Pos[0] = float32(0.4 * math.Sin(time.Since(start).Seconds()))

		ctx.Clear(gpu.ColorBufferBit)
		mesh.Render(ctx, tri, &opts, identityCamera{}, shader)
		for _, err := range ctx.Errors() {
			fmt.Println("gl:", err)
		}

		window.SwapBuffers()
		glfw.PollEvents()

		frames++

		select {
		case <-fpsTicker.C:
			now := time.Now()
			elapsed := now.Sub(last).Seconds()
			if elapsed > 0 {
				fmt.Printf("FPS: %d\n", int(float64(frames)/elapsed+0.5))
			}
			frames = 0
			last = now
		default:
		}
	}
}
