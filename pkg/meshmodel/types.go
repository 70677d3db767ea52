// Package meshmodel loads triangle meshes from JSON assets.
package meshmodel

import (
	"errors"
	"fmt"
)

var (
	ErrComponentCount  = errors.New("vertex array length is not a multiple of 3")
	ErrNormalMismatch  = errors.New("normal count does not match position count")
	ErrIndexCount      = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTooManyVertices = errors.New("too many vertices for 16-bit indices")
)

// Mesh is static triangle geometry. Positions and Normals hold 3 floats per
// vertex and are index-parallel; every 3 Indices form one triangle.
//
// Renderers read a Mesh without copying it, so it must not be modified while
// a draw that uses it is in progress.
type Mesh struct {
	Positions []float32 `json:"vertex_positions"`
	Normals   []float32 `json:"vertex_normals"`
	Indices   []uint16  `json:"vertex_position_indices"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the layout guarantees the renderer relies on.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 || len(m.Normals)%3 != 0 {
		return ErrComponentCount
	}
	if len(m.Positions) != len(m.Normals) {
		return fmt.Errorf("%w: %d positions, %d normals", ErrNormalMismatch, len(m.Positions)/3, len(m.Normals)/3)
	}
	if m.VertexCount() > 1<<16 {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, m.VertexCount())
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrIndexCount, len(m.Indices))
	}
	n := m.VertexCount()
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", ErrIndexOutOfRange, i, idx, n)
		}
	}
	return nil
}
