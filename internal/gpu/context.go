// Package gpu defines the graphics context handle that renderers draw through.
//
// Every draw goes through an explicit Context value owned by the thread that
// created the GL context. Nothing in the rendering code reaches for ambient
// GL state.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// GL enum values used by the renderers. They match the OpenGL headers so the
// GL backend can pass them straight through.
const (
	Triangles = 0x0004
	Lines     = 0x0001

	ColorBufferBit = 0x00004000
	DepthBufferBit = 0x00000100

	DepthTest     = 0x0B71
	CullFace      = 0x0B44
	Blend         = 0x0BE2
	ClipDistance0 = 0x3000

	Float         = 0x1406
	UnsignedShort = 0x1403

	Texture0 = 0x84C0
)

// NoLocation is what lookups return for a name the program does not have.
const NoLocation int32 = -1

// Framebuffer is an offscreen render target with a sampleable color texture.
type Framebuffer struct {
	ID           uint32
	ColorTexture uint32
	DepthBuffer  uint32
	Width        int32
	Height       int32
}

// Context is the set of graphics operations the renderers need.
//
// Binding calls that receive NoLocation must be no-ops. Errors from binding
// calls are not returned; they are reported later through Errors.
type Context interface {
	CompileProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	EnableVertexAttribArray(loc int32)
	// VertexAttribPointer describes the currently bound array buffer as
	// tightly packed float vectors of the given size.
	VertexAttribPointer(loc int32, size int32)

	UniformMatrix4(loc int32, m mgl32.Mat4)
	Uniform4(loc int32, v mgl32.Vec4)
	Uniform3(loc int32, v mgl32.Vec3)
	Uniform1i(loc int32, v int32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	DeleteBuffer(buf uint32)
	// BufferFloat32 binds buf as the array buffer and uploads data.
	BufferFloat32(buf uint32, data []float32)
	// BufferUint16 binds buf as the element array buffer and uploads data.
	BufferUint16(buf uint32, data []uint16)

	DrawElements(mode uint32, count int32)
	DrawArrays(mode uint32, first, count int32)

	CreateFramebuffer(width, height int32) (Framebuffer, error)
	DeleteFramebuffer(fb Framebuffer)
	BindFramebuffer(id uint32)
	BindTexture2D(unit uint32, tex uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	Disable(capability uint32)

	// Errors drains the errors reported since the previous call.
	Errors() []error
}
