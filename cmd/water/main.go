// Command water renders a YAML-described scene of meshes around a
// reflective water plane.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"github.com/sepiropht/webgl-water-tutorial/internal/app"
	"github.com/sepiropht/webgl-water-tutorial/internal/config"
	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/gpu/glgpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderables/mesh"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderables/water"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderer"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

func init() {
	runtime.LockOSThread()
}

var (
	scenePath = flag.String("scene", "assets/scene.yaml", "scene description")
	traceOnly = flag.Bool("trace", false, "render one frame without a window and print the GPU calls")
	fpsLimit  = flag.Int("fps", -1, "frame rate cap, 0 for uncapped (overrides the scene)")
	noWatch   = flag.Bool("no-watch", false, "do not reload mesh files when they change")
)

func main() {
	flag.Parse()
	defer closer.Close()

	if err := run(); err != nil {
		closer.Fatalln(err)
	}
}

func run() error {
	scene, err := config.LoadScene(*scenePath)
	if err != nil {
		return err
	}
	scene.Apply()
	if *fpsLimit >= 0 {
		config.SetFPSLimit(*fpsLimit)
	}
	if *noWatch {
		config.SetWatchMeshes(false)
	}

	loader := meshmodel.NewLoader(scene.MeshDir)
	instances, err := loadInstances(loader, scene)
	if err != nil {
		return err
	}

	if *traceOnly {
		return runTrace(scene, instances)
	}
	return runWindow(scene, loader, instances)
}

func loadInstances(loader *meshmodel.Loader, scene *config.Scene) ([]mesh.Instance, error) {
	instances := make([]mesh.Instance, 0, len(scene.Meshes))
	for _, mi := range scene.Meshes {
		m, err := loader.LoadMesh(mi.Mesh)
		if err != nil {
			return nil, fmt.Errorf("scene mesh %q: %w", mi.Name, err)
		}
		instances = append(instances, mesh.Instance{
			Name:  mi.Name,
			Asset: mi.Mesh,
			Mesh:  m,
			Pos:   mgl32.Vec3(mi.Pos),
		})
	}
	return instances, nil
}

func newCamera(scene *config.Scene, width, height int) *graphics.Camera {
	cam := graphics.NewCamera(width, height)
	cam.Target = mgl32.Vec3(scene.Camera.Target)
	cam.Distance = scene.Camera.Distance
	cam.Yaw = scene.Camera.Yaw
	cam.Pitch = scene.Camera.Pitch
	cam.FOV = scene.Camera.FOV
	return cam
}

func newRenderables(scene *config.Scene, instances []mesh.Instance) (*mesh.Meshes, []renderer.Renderable) {
	meshes := mesh.NewMeshes(
		filepath.Join(scene.ShaderDir, "mesh", "mesh.vert"),
		filepath.Join(scene.ShaderDir, "mesh", "mesh.frag"),
		instances...,
	)
	rs := []renderer.Renderable{meshes}
	if scene.Water.IsEnabled() {
		rs = append(rs, water.NewWater(
			filepath.Join(scene.ShaderDir, "water", "water.vert"),
			filepath.Join(scene.ShaderDir, "water", "water.frag"),
			scene.Water.Size,
		))
	}
	return meshes, rs
}

func runWindow(scene *config.Scene, loader *meshmodel.Loader, instances []mesh.Instance) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(scene.Window)
	if err != nil {
		return err
	}

	ctx, err := glgpu.New()
	if err != nil {
		return err
	}
	log.Printf("OpenGL %s", ctx.Version())

	fbWidth, fbHeight := window.GetFramebufferSize()
	cam := newCamera(scene, fbWidth, fbHeight)
	meshes, rs := newRenderables(scene, instances)

	r, err := renderer.NewRenderer(ctx, cam, fbWidth, fbHeight, rs...)
	if err != nil {
		return err
	}
	defer r.Dispose()

	var watcher *meshmodel.Watcher
	if config.GetWatchMeshes() {
		watcher, err = meshmodel.Watch(loader)
		if err != nil {
			log.Printf("mesh hot reload disabled: %v", err)
		} else {
			closer.Bind(func() { watcher.Close() })
		}
	}

	loop := NewGameLoop(window, r, &app.Reloader{Loader: loader, Meshes: meshes}, watcher)
	setupInputHandlers(window, loop, r, meshes)
	loop.Run()
	return nil
}

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(0)

	return window, nil
}

// Inputs the bundled shaders declare, for the recorder used by -trace.
var (
	traceAttribs  = []string{mesh.AttribPosition, mesh.AttribNormal}
	traceUniforms = []string{
		mesh.UniformModel, mesh.UniformView, mesh.UniformPerspective, mesh.UniformClipPlane,
		"cameraPos", "reflectionTexture", "refractionTexture",
	}
)

func runTrace(scene *config.Scene, instances []mesh.Instance) error {
	rec := gpu.NewRecorder(traceAttribs, traceUniforms)
	cam := newCamera(scene, scene.Window.Width, scene.Window.Height)
	_, rs := newRenderables(scene, instances)

	r, err := renderer.NewRenderer(rec, cam, scene.Window.Width, scene.Window.Height, rs...)
	if err != nil {
		return err
	}
	defer r.Dispose()

	rec.Reset()
	r.Render(0)
	fmt.Print(rec.Dump())
	log.Printf("trace: %d calls, %d draws", len(rec.Calls), len(rec.Find("DrawElements"))+len(rec.Find("DrawArrays")))
	return nil
}
