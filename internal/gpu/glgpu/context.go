// Package glgpu implements gpu.Context on top of OpenGL 4.1 core.
package glgpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
)

// Context drives the OpenGL context current on the calling thread.
// Create it after the window's context is made current.
type Context struct{}

var _ gpu.Context = (*Context)(nil)

// New loads the GL function pointers and returns a Context.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}
	return &Context{}, nil
}

// Version reports the driver's GL version string.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (c *Context) CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (c *Context) DeleteProgram(program uint32) { gl.DeleteProgram(program) }
func (c *Context) UseProgram(program uint32)    { gl.UseProgram(program) }

func (c *Context) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Attribute calls take unsigned indices, so a missing attribute has to be
// filtered here. Uniform calls already ignore location -1.

func (c *Context) EnableVertexAttribArray(loc int32) {
	if loc < 0 {
		return
	}
	gl.EnableVertexAttribArray(uint32(loc))
}

func (c *Context) VertexAttribPointer(loc int32, size int32) {
	if loc < 0 {
		return
	}
	gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, false, 0, 0)
}

func (c *Context) UniformMatrix4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (c *Context) Uniform4(loc int32, v mgl32.Vec4) {
	gl.Uniform4fv(loc, 1, &v[0])
}

func (c *Context) Uniform3(loc int32, v mgl32.Vec3) {
	gl.Uniform3fv(loc, 1, &v[0])
}

func (c *Context) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

func (c *Context) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (c *Context) BindVertexArray(vao uint32)   { gl.BindVertexArray(vao) }
func (c *Context) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (c *Context) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (c *Context) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }

func (c *Context) BufferFloat32(buf uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buf)
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STREAM_DRAW)
}

func (c *Context) BufferUint16(buf uint32, data []uint16) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf)
	if len(data) == 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
		return
	}
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STREAM_DRAW)
}

func (c *Context) DrawElements(mode uint32, count int32) {
	gl.DrawElementsWithOffset(mode, count, gl.UNSIGNED_SHORT, 0)
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (c *Context) CreateFramebuffer(width, height int32) (gpu.Framebuffer, error) {
	fb := gpu.Framebuffer{Width: width, Height: height}

	gl.GenFramebuffers(1, &fb.ID)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.ID)

	gl.GenTextures(1, &fb.ColorTexture)
	gl.BindTexture(gl.TEXTURE_2D, fb.ColorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.ColorTexture, 0)

	gl.GenRenderbuffers(1, &fb.DepthBuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.DepthBuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.DepthBuffer)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if status != gl.FRAMEBUFFER_COMPLETE {
		c.DeleteFramebuffer(fb)
		return gpu.Framebuffer{}, fmt.Errorf("framebuffer %dx%d incomplete: status %#x", width, height, status)
	}
	return fb, nil
}

func (c *Context) DeleteFramebuffer(fb gpu.Framebuffer) {
	if fb.ColorTexture != 0 {
		gl.DeleteTextures(1, &fb.ColorTexture)
	}
	if fb.DepthBuffer != 0 {
		gl.DeleteRenderbuffers(1, &fb.DepthBuffer)
	}
	if fb.ID != 0 {
		gl.DeleteFramebuffers(1, &fb.ID)
	}
}

func (c *Context) BindFramebuffer(id uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, id) }

func (c *Context) BindTexture2D(unit uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (c *Context) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (c *Context) ClearColor(r, g, b, a float32)      { gl.ClearColor(r, g, b, a) }
func (c *Context) Clear(mask uint32)                  { gl.Clear(mask) }
func (c *Context) Enable(capability uint32)           { gl.Enable(capability) }
func (c *Context) Disable(capability uint32)          { gl.Disable(capability) }

// maxErrors bounds the drain loop; a lost context can report errors forever.
const maxErrors = 16

func (c *Context) Errors() []error {
	var errs []error
	for i := 0; i < maxErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		errs = append(errs, &Error{Code: code})
	}
	return errs
}

// Error is an error code reported by glGetError.
type Error struct {
	Code uint32
}

func (e *Error) Error() string {
	return "gl: " + errorName(e.Code)
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	default:
		return fmt.Sprintf("error %#x", code)
	}
}
