package mesh

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/internal/graphics"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

type fixedCamera struct {
	view, proj mgl32.Mat4
}

func (c fixedCamera) View() mgl32.Mat4       { return c.view }
func (c fixedCamera) Projection() mgl32.Mat4 { return c.proj }

func identityCamera() fixedCamera {
	return fixedCamera{view: mgl32.Ident4(), proj: mgl32.Ident4()}
}

func triangle() *meshmodel.Mesh {
	return &meshmodel.Mesh{
		Positions: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:   []uint16{0, 1, 2},
	}
}

func newMeshRecorder(t *testing.T) (*gpu.Recorder, *graphics.Shader) {
	t.Helper()
	rec := gpu.NewRecorder(
		[]string{AttribPosition, AttribNormal},
		[]string{UniformModel, UniformView, UniformPerspective, UniformClipPlane},
	)
	sh, err := graphics.NewShaderFromSource(rec, "vs", "fs")
	if err != nil {
		t.Fatalf("NewShaderFromSource: %v", err)
	}
	rec.Reset()
	return rec, sh
}

func indexOf(ops []string, op string) int {
	for i, o := range ops {
		if o == op {
			return i
		}
	}
	return -1
}

func lastIndexOf(ops []string, op string) int {
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i] == op {
			return i
		}
	}
	return -1
}

func TestRenderTriangleScenario(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	opts := Options{Pos: mgl32.Vec3{2, 0, 0}}

	Render(rec, triangle(), &opts, identityCamera(), sh)

	draws := rec.Find("DrawElements")
	if len(draws) != 1 {
		t.Fatalf("got %d draws, want 1:\n%s", len(draws), rec.Dump())
	}
	if draws[0].Mode != gpu.Triangles || draws[0].Count != 3 {
		t.Errorf("draw = %v, want 3 triangle indices", draws[0])
	}

	mats := rec.Find("UniformMatrix4")
	if len(mats) != 3 {
		t.Fatalf("got %d matrix uploads, want 3", len(mats))
	}
	model := mats[0]
	if model.Loc != rec.Uniforms[UniformModel] {
		t.Errorf("first matrix went to location %d, want model", model.Loc)
	}
	if got := model.Mat.Col(3); got != (mgl32.Vec4{2, 0, 0, 1}) {
		t.Errorf("model translation = %v, want (2,0,0,1)", got)
	}
	// Column-major upload: translation occupies elements 12..14.
	if model.Mat[12] != 2 || model.Mat[13] != 0 || model.Mat[14] != 0 {
		t.Errorf("model matrix not column-major: %v", model.Mat)
	}
	if mats[1].Loc != rec.Uniforms[UniformView] || mats[1].Mat != mgl32.Ident4() {
		t.Errorf("view upload = %v", mats[1])
	}
	if mats[2].Loc != rec.Uniforms[UniformPerspective] || mats[2].Mat != mgl32.Ident4() {
		t.Errorf("perspective upload = %v", mats[2])
	}

	clips := rec.Find("Uniform4")
	if len(clips) != 1 || clips[0].Loc != rec.Uniforms[UniformClipPlane] || clips[0].Vec != (mgl32.Vec4{}) {
		t.Errorf("clip plane uploads = %v", clips)
	}
}

func TestRenderCallOrder(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	Render(rec, triangle(), &Options{}, identityCamera(), sh)

	ops := rec.Ops()
	draw := indexOf(ops, "DrawElements")
	if draw < 0 {
		t.Fatalf("no draw issued:\n%s", rec.Dump())
	}
	if ops[0] != "UseProgram" {
		t.Errorf("first op = %s, want UseProgram", ops[0])
	}

	lastEnable := lastIndexOf(ops, "EnableVertexAttribArray")
	firstUniform := indexOf(ops, "UniformMatrix4")
	lastUniform := lastIndexOf(ops, "Uniform4")
	firstUpload := indexOf(ops, "BufferFloat32")
	indexUpload := indexOf(ops, "BufferUint16")

	if !(lastEnable < firstUniform && firstUniform < lastUniform && lastUniform < firstUpload &&
		firstUpload < indexUpload && indexUpload < draw) {
		t.Errorf("unexpected order:\n%s", rec.Dump())
	}
	if lastIndexOf(ops, "DrawElements") != draw {
		t.Errorf("more than one draw issued")
	}
	for _, op := range ops[draw+1:] {
		switch op {
		case "BindVertexArray", "DeleteBuffer", "DeleteVertexArray":
		default:
			t.Errorf("unexpected %s after draw", op)
		}
	}
}

func TestRenderStreamsTightBuffers(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	m := triangle()
	Render(rec, m, &Options{}, identityCamera(), sh)

	uploads := rec.Find("BufferFloat32")
	if len(uploads) != 2 {
		t.Fatalf("got %d float uploads, want 2", len(uploads))
	}
	if !reflect.DeepEqual(uploads[0].Floats, m.Positions) {
		t.Errorf("position upload = %v", uploads[0].Floats)
	}
	if !reflect.DeepEqual(uploads[1].Floats, m.Normals) {
		t.Errorf("normal upload = %v", uploads[1].Floats)
	}
	if len(uploads[0].Floats) != len(uploads[1].Floats) {
		t.Errorf("position/normal lengths differ")
	}

	pointers := rec.Find("VertexAttribPointer")
	if len(pointers) != 2 {
		t.Fatalf("got %d attribute pointers, want 2", len(pointers))
	}
	if pointers[0].Loc != rec.Attribs[AttribPosition] || pointers[1].Loc != rec.Attribs[AttribNormal] {
		t.Errorf("attribute pointers = %v", pointers)
	}
	for _, p := range pointers {
		if p.Size != 3 {
			t.Errorf("attribute %d size = %d, want 3", p.Loc, p.Size)
		}
	}

	indices := rec.Find("BufferUint16")
	if len(indices) != 1 || !reflect.DeepEqual(indices[0].Indices, m.Indices) {
		t.Errorf("index upload = %v", indices)
	}
}

func TestRenderReleasesTransientObjects(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	Render(rec, triangle(), &Options{}, identityCamera(), sh)

	created := map[uint32]bool{}
	for _, c := range rec.Calls {
		switch c.Op {
		case "GenBuffer", "GenVertexArray":
			created[c.ID] = true
		case "DeleteBuffer", "DeleteVertexArray":
			delete(created, c.ID)
		}
	}
	if len(created) != 0 {
		t.Errorf("objects left alive after Render: %v", created)
	}
}

func TestRenderEmptyIndices(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	opts := Options{Pos: mgl32.Vec3{1, 2, 3}, ClipPlane: mgl32.Vec4{0, 1, 0, 0}}
	Render(rec, triangle(), &opts, identityCamera(), sh)
	full := uniformCalls(rec)

	rec.Reset()
	empty := triangle()
	empty.Indices = nil
	Render(rec, empty, &opts, identityCamera(), sh)

	draws := rec.Find("DrawElements")
	if len(draws) != 1 || draws[0].Count != 0 {
		t.Fatalf("empty mesh draws = %v, want one draw of 0 indices", draws)
	}
	if !reflect.DeepEqual(uniformCalls(rec), full) {
		t.Errorf("uniform bindings differ for empty mesh")
	}
}

func uniformCalls(rec *gpu.Recorder) []gpu.Call {
	var out []gpu.Call
	for _, c := range rec.Calls {
		if c.Op == "UniformMatrix4" || c.Op == "Uniform4" {
			out = append(out, c)
		}
	}
	return out
}

// withoutIDs drops object names, which are fresh for every call.
func withoutIDs(calls []gpu.Call) []gpu.Call {
	out := make([]gpu.Call, len(calls))
	for i, c := range calls {
		if c.Op != "UseProgram" {
			c.ID = 0
		}
		out[i] = c
	}
	return out
}

func TestRenderIsRepeatable(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	cam := fixedCamera{
		view: mgl32.LookAtV(mgl32.Vec3{3, 4, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
		proj: mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.1, 100),
	}
	opts := Options{Pos: mgl32.Vec3{-1, 0.5, 7}, ClipPlane: mgl32.Vec4{0, -1, 0, 0.25}}

	Render(rec, triangle(), &opts, cam, sh)
	first := withoutIDs(rec.Calls)
	rec.Reset()
	Render(rec, triangle(), &opts, cam, sh)
	second := withoutIDs(rec.Calls)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated render differs:\nfirst:\n%v\nsecond:\n%v", first, second)
	}
}

func TestRenderCopiesClipPlane(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	opts := Options{ClipPlane: mgl32.Vec4{0, 1, 0, -2}}
	Render(rec, triangle(), &opts, identityCamera(), sh)

	opts.ClipPlane[3] = 99
	if got := rec.Find("Uniform4")[0].Vec; got != (mgl32.Vec4{0, 1, 0, -2}) {
		t.Errorf("uploaded clip plane = %v, want (0,1,0,-2)", got)
	}
}

func TestRenderToleratesMissingLocations(t *testing.T) {
	rec := gpu.NewRecorder(nil, []string{UniformModel})
	sh, err := graphics.NewShaderFromSource(rec, "vs", "fs")
	if err != nil {
		t.Fatalf("NewShaderFromSource: %v", err)
	}
	rec.Reset()

	Render(rec, triangle(), &Options{}, identityCamera(), sh)

	for _, c := range rec.Find("EnableVertexAttribArray") {
		if c.Loc != gpu.NoLocation {
			t.Errorf("enabled attribute %d, want %d", c.Loc, gpu.NoLocation)
		}
	}
	if n := len(rec.Find("UniformMatrix4")); n != 3 {
		t.Errorf("got %d matrix uploads, want 3", n)
	}
	if n := len(rec.Find("DrawElements")); n != 1 {
		t.Errorf("got %d draws, want 1", n)
	}
}

func TestModelMatrixIsTranslation(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 0, 0},
		{2, 0, 0},
		{-3.5, 7, 0.25},
		{1e6, -1e6, 42},
	}
	for _, pos := range positions {
		m := ModelMatrix(pos)
		if got := m.Col(3); got != pos.Vec4(1) {
			t.Errorf("ModelMatrix(%v) translation = %v", pos, got)
		}
		if got := m.Mat3(); got != mgl32.Ident3() {
			t.Errorf("ModelMatrix(%v) rotation = %v, want identity", pos, got)
		}
		if m.Row(3) != (mgl32.Vec4{0, 0, 0, 1}) {
			t.Errorf("ModelMatrix(%v) bottom row = %v", pos, m.Row(3))
		}
	}
}

func TestDrawCountMatchesIndices(t *testing.T) {
	rec, sh := newMeshRecorder(t)
	for _, tris := range []int{0, 1, 4, 100} {
		m := &meshmodel.Mesh{
			Positions: []float32{0, 0, 0},
			Normals:   []float32{0, 1, 0},
			Indices:   make([]uint16, tris*3),
		}
		rec.Reset()
		Render(rec, m, &Options{}, identityCamera(), sh)

		draw := rec.Find("DrawElements")[0]
		if int(draw.Count) != len(m.Indices) || draw.Count%3 != 0 {
			t.Errorf("%d triangles: draw count = %d", tris, draw.Count)
		}
	}
}
