package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Call is one recorded Context operation. Only the fields relevant to Op are set.
type Call struct {
	Op      string
	ID      uint32
	Loc     int32
	Mode    uint32
	Count   int32
	Size    int32
	Int     int32
	Mat     mgl32.Mat4
	Vec     mgl32.Vec4
	Floats  []float32
	Indices []uint16
}

func (c Call) String() string {
	switch c.Op {
	case "UniformMatrix4":
		return fmt.Sprintf("%s(loc=%d, %v)", c.Op, c.Loc, c.Mat)
	case "Uniform4", "Uniform3":
		return fmt.Sprintf("%s(loc=%d, %v)", c.Op, c.Loc, c.Vec)
	case "Viewport", "ClearColor":
		return fmt.Sprintf("%s(%v)", c.Op, c.Vec)
	case "Clear", "Enable", "Disable":
		return fmt.Sprintf("%s(%#x)", c.Op, c.Mode)
	case "BufferFloat32":
		return fmt.Sprintf("%s(buf=%d, %d floats)", c.Op, c.ID, len(c.Floats))
	case "BufferUint16":
		return fmt.Sprintf("%s(buf=%d, %d indices)", c.Op, c.ID, len(c.Indices))
	case "DrawElements", "DrawArrays":
		return fmt.Sprintf("%s(mode=%#x, count=%d)", c.Op, c.Mode, c.Count)
	case "EnableVertexAttribArray", "VertexAttribPointer", "Uniform1i":
		return fmt.Sprintf("%s(loc=%d)", c.Op, c.Loc)
	default:
		return fmt.Sprintf("%s(%d)", c.Op, c.ID)
	}
}

// Recorder is a Context that keeps every call in memory instead of talking
// to a driver. Locations are looked up in Attribs and Uniforms; names that
// are missing resolve to NoLocation.
type Recorder struct {
	Attribs  map[string]int32
	Uniforms map[string]int32

	// CompileErr, when set, is returned by CompileProgram.
	CompileErr error

	Calls []Call

	nextID  uint32
	pending []error
}

// NewRecorder returns a Recorder that knows the given attribute and uniform names.
// Locations are assigned in argument order starting at zero.
func NewRecorder(attribs, uniforms []string) *Recorder {
	r := &Recorder{
		Attribs:  make(map[string]int32, len(attribs)),
		Uniforms: make(map[string]int32, len(uniforms)),
	}
	for i, name := range attribs {
		r.Attribs[name] = int32(i)
	}
	for i, name := range uniforms {
		r.Uniforms[name] = int32(i)
	}
	return r
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Report queues err to be returned by the next Errors call.
func (r *Recorder) Report(err error) {
	r.pending = append(r.pending, err)
}

// Ops returns the operation names of the recorded calls in order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Find returns the recorded calls with the given operation name.
func (r *Recorder) Find(op string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Dump renders the recorded calls one per line.
func (r *Recorder) Dump() string {
	var b strings.Builder
	for _, c := range r.Calls {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) record(c Call) {
	r.Calls = append(r.Calls, c)
}

func (r *Recorder) newID() uint32 {
	r.nextID++
	return r.nextID
}

func (r *Recorder) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if r.CompileErr != nil {
		return 0, r.CompileErr
	}
	id := r.newID()
	r.record(Call{Op: "CompileProgram", ID: id})
	return id, nil
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record(Call{Op: "DeleteProgram", ID: program})
}

func (r *Recorder) UseProgram(program uint32) {
	r.record(Call{Op: "UseProgram", ID: program})
}

func (r *Recorder) AttribLocation(program uint32, name string) int32 {
	if loc, ok := r.Attribs[name]; ok {
		return loc
	}
	return NoLocation
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	if loc, ok := r.Uniforms[name]; ok {
		return loc
	}
	return NoLocation
}

func (r *Recorder) EnableVertexAttribArray(loc int32) {
	r.record(Call{Op: "EnableVertexAttribArray", Loc: loc})
}

func (r *Recorder) VertexAttribPointer(loc int32, size int32) {
	r.record(Call{Op: "VertexAttribPointer", Loc: loc, Size: size})
}

func (r *Recorder) UniformMatrix4(loc int32, m mgl32.Mat4) {
	r.record(Call{Op: "UniformMatrix4", Loc: loc, Mat: m})
}

func (r *Recorder) Uniform4(loc int32, v mgl32.Vec4) {
	r.record(Call{Op: "Uniform4", Loc: loc, Vec: v})
}

func (r *Recorder) Uniform3(loc int32, v mgl32.Vec3) {
	r.record(Call{Op: "Uniform3", Loc: loc, Vec: v.Vec4(0)})
}

func (r *Recorder) Uniform1i(loc int32, v int32) {
	r.record(Call{Op: "Uniform1i", Loc: loc, Int: v})
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.newID()
	r.record(Call{Op: "GenVertexArray", ID: id})
	return id
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record(Call{Op: "BindVertexArray", ID: vao})
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record(Call{Op: "DeleteVertexArray", ID: vao})
}

func (r *Recorder) GenBuffer() uint32 {
	id := r.newID()
	r.record(Call{Op: "GenBuffer", ID: id})
	return id
}

func (r *Recorder) DeleteBuffer(buf uint32) {
	r.record(Call{Op: "DeleteBuffer", ID: buf})
}

func (r *Recorder) BufferFloat32(buf uint32, data []float32) {
	r.record(Call{Op: "BufferFloat32", ID: buf, Floats: append([]float32(nil), data...)})
}

func (r *Recorder) BufferUint16(buf uint32, data []uint16) {
	r.record(Call{Op: "BufferUint16", ID: buf, Indices: append([]uint16(nil), data...)})
}

func (r *Recorder) DrawElements(mode uint32, count int32) {
	r.record(Call{Op: "DrawElements", Mode: mode, Count: count})
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record(Call{Op: "DrawArrays", Mode: mode, Int: first, Count: count})
}

func (r *Recorder) CreateFramebuffer(width, height int32) (Framebuffer, error) {
	fb := Framebuffer{
		ID:           r.newID(),
		ColorTexture: r.newID(),
		DepthBuffer:  r.newID(),
		Width:        width,
		Height:       height,
	}
	r.record(Call{Op: "CreateFramebuffer", ID: fb.ID})
	return fb, nil
}

func (r *Recorder) DeleteFramebuffer(fb Framebuffer) {
	r.record(Call{Op: "DeleteFramebuffer", ID: fb.ID})
}

func (r *Recorder) BindFramebuffer(id uint32) {
	r.record(Call{Op: "BindFramebuffer", ID: id})
}

func (r *Recorder) BindTexture2D(unit uint32, tex uint32) {
	r.record(Call{Op: "BindTexture2D", ID: tex, Int: int32(unit)})
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record(Call{Op: "Viewport", Vec: mgl32.Vec4{float32(x), float32(y), float32(width), float32(height)}})
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record(Call{Op: "ClearColor", Vec: mgl32.Vec4{red, green, blue, alpha}})
}

func (r *Recorder) Clear(mask uint32) {
	r.record(Call{Op: "Clear", Mode: mask})
}

func (r *Recorder) Enable(capability uint32) {
	r.record(Call{Op: "Enable", Mode: capability})
}

func (r *Recorder) Disable(capability uint32) {
	r.record(Call{Op: "Disable", Mode: capability})
}

func (r *Recorder) Errors() []error {
	errs := r.pending
	r.pending = nil
	return errs
}
