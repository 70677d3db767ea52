package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderer"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

func writeShaders(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vert := filepath.Join(dir, "mesh.vert")
	frag := filepath.Join(dir, "mesh.frag")
	for _, p := range []string{vert, frag} {
		if err := os.WriteFile(p, []byte("#version 410 core\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return vert, frag
}

func TestMeshesUsePassClipPlane(t *testing.T) {
	vert, frag := writeShaders(t)
	rec, _ := newMeshRecorder(t)

	m := NewMeshes(vert, frag,
		Instance{Name: "a", Asset: "triangle", Mesh: triangle(), Pos: mgl32.Vec3{1, 0, 0}},
		Instance{Name: "b", Asset: "triangle", Mesh: triangle(), Pos: mgl32.Vec3{0, 0, 5}},
	)
	if err := m.Init(rec); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if !m.Passes().Has(renderer.PassReflection) || !m.Passes().Has(renderer.PassRefraction) {
		t.Fatalf("meshes must draw in the offscreen passes")
	}
	rec.Reset()

	plane := mgl32.Vec4{0, 1, 0, -0.5}
	m.Render(renderer.RenderContext{
		GPU:       rec,
		Camera:    identityCamera(),
		Pass:      renderer.PassReflection,
		ClipPlane: plane,
	})

	if n := len(rec.Find("DrawElements")); n != 2 {
		t.Fatalf("got %d draws, want 2", n)
	}
	for _, c := range rec.Find("Uniform4") {
		if c.Vec != plane {
			t.Errorf("clip plane = %v, want %v", c.Vec, plane)
		}
	}
	models := rec.Find("UniformMatrix4")
	if models[0].Mat.Col(3) != (mgl32.Vec4{1, 0, 0, 1}) || models[3].Mat.Col(3) != (mgl32.Vec4{0, 0, 5, 1}) {
		t.Errorf("instance transforms = %v, %v", models[0].Mat, models[3].Mat)
	}

	m.Dispose()
	if n := len(rec.Find("DeleteProgram")); n != 1 {
		t.Errorf("Dispose deleted %d programs, want 1", n)
	}
}

func TestMeshesReplace(t *testing.T) {
	m := NewMeshes("", "",
		Instance{Name: "left", Asset: "rock", Mesh: triangle()},
		Instance{Name: "right", Asset: "rock", Mesh: triangle()},
		Instance{Name: "boat", Asset: "boat", Mesh: triangle()},
	)
	fresh := &meshmodel.Mesh{}
	if n := m.Replace("rock", fresh); n != 2 {
		t.Fatalf("Replace changed %d instances, want 2", n)
	}
	for _, inst := range m.Instances() {
		if (inst.Mesh == fresh) != (inst.Asset == "rock") {
			t.Errorf("instance %s has wrong mesh after Replace", inst.Name)
		}
	}
	if n := m.Replace("missing", fresh); n != 0 {
		t.Errorf("Replace of unknown asset changed %d instances", n)
	}
}

var _ renderer.Renderable = (*Meshes)(nil)
var _ gpu.Context = (*gpu.Recorder)(nil)
