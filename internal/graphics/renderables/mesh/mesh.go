package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderer"
	"github.com/sepiropht/webgl-water-tutorial/internal/profiling"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

// Instance is one placement of a mesh asset.
type Instance struct {
	Name  string
	Asset string
	Mesh  *meshmodel.Mesh
	Pos   mgl32.Vec3
}

// Meshes renders scene geometry in every pass, clipped by the pass's plane.
type Meshes struct {
	vertPath  string
	fragPath  string
	shader    *graphics.Shader
	instances []Instance
}

// NewMeshes creates a mesh renderable using the given shader files.
func NewMeshes(vertPath, fragPath string, instances ...Instance) *Meshes {
	return &Meshes{
		vertPath:  vertPath,
		fragPath:  fragPath,
		instances: instances,
	}
}

// Init compiles the mesh shader.
func (m *Meshes) Init(ctx gpu.Context) error {
	var err error
	m.shader, err = graphics.NewShader(ctx, m.vertPath, m.fragPath)
	return err
}

// Render draws every instance once.
func (m *Meshes) Render(ctx renderer.RenderContext) {
	defer profiling.Track("mesh.Render")()
	for i := range m.instances {
		inst := &m.instances[i]
		opts := Options{Pos: inst.Pos, ClipPlane: ctx.ClipPlane}
		Render(ctx.GPU, inst.Mesh, &opts, ctx.Camera, m.shader)
	}
}

func (m *Meshes) Passes() renderer.PassMask {
	return renderer.AllPasses
}

func (m *Meshes) SetViewport(width, height int) {}

// Dispose releases the shader.
func (m *Meshes) Dispose() {
	if m.shader != nil {
		m.shader.Delete()
	}
}

// Instances returns the current placements.
func (m *Meshes) Instances() []Instance {
	return m.instances
}

// Replace swaps the mesh data of every instance of asset and returns how
// many instances changed.
func (m *Meshes) Replace(asset string, mesh *meshmodel.Mesh) int {
	n := 0
	for i := range m.instances {
		if m.instances[i].Asset == asset {
			m.instances[i].Mesh = mesh
			n++
		}
	}
	return n
}

// ReloadShader recompiles the mesh program from disk.
func (m *Meshes) ReloadShader() error {
	return m.shader.Reload()
}
