// Package mesh draws static triangle meshes with a translation-only model
// transform and a world-space clip plane.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

// Names the mesh program must use for its inputs.
const (
	AttribPosition     = "position"
	AttribNormal       = "normal"
	UniformModel       = "model"
	UniformView        = "view"
	UniformPerspective = "perspective"
	UniformClipPlane   = "clipPlane"
)

// Camera supplies the current frame's transforms.
type Camera interface {
	View() mgl32.Mat4
	Projection() mgl32.Mat4
}

// Shader is a compiled program that resolves input names to locations.
// Missing names resolve to gpu.NoLocation.
type Shader interface {
	Program() uint32
	AttribLocation(name string) int32
	UniformLocation(name string) int32
}

// Options place one mesh instance in the world.
type Options struct {
	Pos mgl32.Vec3
	// ClipPlane is a world-space plane (a, b, c, d). Geometry where
	// ax+by+cz+d < 0 is discarded; the zero plane keeps everything.
	ClipPlane mgl32.Vec4
}

// ModelMatrix returns the mesh-to-world transform for pos. Rotation and
// scale are always identity.
func ModelMatrix(pos mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2])
}

// Render issues exactly one indexed triangle draw for m.
//
// Vertex data is streamed into buffers that live only for this call. The
// mesh and options are read, never retained. Binding failures are left to
// the context's error reporting; an empty index list still produces a draw
// of zero indices.
func Render(ctx gpu.Context, m *meshmodel.Mesh, opts *Options, cam Camera, sh Shader) {
	ctx.UseProgram(sh.Program())

	// Attribute state belongs to the bound vertex array.
	vao := ctx.GenVertexArray()
	ctx.BindVertexArray(vao)

	posAttrib := sh.AttribLocation(AttribPosition)
	ctx.EnableVertexAttribArray(posAttrib)

	normalAttrib := sh.AttribLocation(AttribNormal)
	ctx.EnableVertexAttribArray(normalAttrib)

	model := ModelMatrix(opts.Pos)
	view := cam.View()
	perspective := cam.Projection()

	ctx.UniformMatrix4(sh.UniformLocation(UniformModel), model)
	ctx.UniformMatrix4(sh.UniformLocation(UniformView), view)
	ctx.UniformMatrix4(sh.UniformLocation(UniformPerspective), perspective)
	ctx.Uniform4(sh.UniformLocation(UniformClipPlane), opts.ClipPlane)

	posBuf := bufferFloat32(ctx, m.Positions, posAttrib, 3)
	normalBuf := bufferFloat32(ctx, m.Normals, normalAttrib, 3)

	indexBuf := ctx.GenBuffer()
	ctx.BufferUint16(indexBuf, m.Indices)

	ctx.DrawElements(gpu.Triangles, int32(len(m.Indices)))

	ctx.BindVertexArray(0)
	ctx.DeleteBuffer(indexBuf)
	ctx.DeleteBuffer(normalBuf)
	ctx.DeleteBuffer(posBuf)
	ctx.DeleteVertexArray(vao)
}

func bufferFloat32(ctx gpu.Context, data []float32, attrib int32, size int32) uint32 {
	buf := ctx.GenBuffer()
	ctx.BufferFloat32(buf, data)
	ctx.VertexAttribPointer(attrib, size)
	return buf
}
