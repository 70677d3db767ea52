package gpu

import (
	"errors"
	"strings"
	"testing"
)

func TestRecorderLocations(t *testing.T) {
	r := NewRecorder([]string{"position", "normal"}, []string{"model"})
	if loc := r.AttribLocation(1, "normal"); loc != 1 {
		t.Errorf("normal = %d, want 1", loc)
	}
	if loc := r.UniformLocation(1, "model"); loc != 0 {
		t.Errorf("model = %d, want 0", loc)
	}
	if loc := r.UniformLocation(1, "clipPlane"); loc != NoLocation {
		t.Errorf("clipPlane = %d, want %d", loc, NoLocation)
	}
}

func TestRecorderCopiesBuffers(t *testing.T) {
	r := NewRecorder(nil, nil)
	data := []float32{1, 2, 3}
	indices := []uint16{0, 1, 2}
	r.BufferFloat32(r.GenBuffer(), data)
	r.BufferUint16(r.GenBuffer(), indices)
	data[0] = 9
	indices[0] = 9

	if got := r.Find("BufferFloat32")[0].Floats[0]; got != 1 {
		t.Errorf("recorded float = %v, want 1", got)
	}
	if got := r.Find("BufferUint16")[0].Indices[0]; got != 0 {
		t.Errorf("recorded index = %v, want 0", got)
	}
	if !strings.Contains(r.Dump(), "3 indices") {
		t.Errorf("Dump() = %q", r.Dump())
	}
}

func TestRecorderErrorsDrain(t *testing.T) {
	r := NewRecorder(nil, nil)
	r.Report(errors.New("invalid value"))
	if errs := r.Errors(); len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs := r.Errors(); len(errs) != 0 {
		t.Errorf("errors not drained: %v", errs)
	}
}

func TestRecorderCompileError(t *testing.T) {
	r := NewRecorder(nil, nil)
	r.CompileErr = errors.New("syntax error")
	if _, err := r.CompileProgram("", ""); err == nil {
		t.Fatal("expected compile error")
	}
	if len(r.Calls) != 0 {
		t.Errorf("failed compile was recorded")
	}
}
