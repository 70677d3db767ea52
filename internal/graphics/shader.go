package graphics

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sepiropht/webgl-water-tutorial/internal/gpu"
)

// Shader is a linked GPU program with a per-name location cache.
//
// Locations are resolved on first use and remembered, including names the
// program does not have (gpu.NoLocation). The cache is dropped on Reload.
type Shader struct {
	ID uint32

	ctx          gpu.Context
	vertexPath   string
	fragmentPath string
	attribs      map[string]int32
	uniforms     map[string]int32
}

// NewShader creates a new shader program from vertex and fragment shader source files
func NewShader(ctx gpu.Context, vertexPath, fragmentPath string) (*Shader, error) {
	s := &Shader{ctx: ctx, vertexPath: vertexPath, fragmentPath: fragmentPath}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewShaderFromSource compiles a program from in-memory sources.
func NewShaderFromSource(ctx gpu.Context, vertexSrc, fragmentSrc string) (*Shader, error) {
	program, err := ctx.CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	s := &Shader{ID: program, ctx: ctx}
	s.resetCache()
	return s, nil
}

// Reload recompiles the program from its source files. On failure the
// previous program stays in use.
func (s *Shader) Reload() error {
	if s.vertexPath == "" {
		return fmt.Errorf("shader %d was not loaded from files", s.ID)
	}
	vertexSource, err := os.ReadFile(s.vertexPath)
	if err != nil {
		return fmt.Errorf("could not read vertex shader file: %w", err)
	}
	fragmentSource, err := os.ReadFile(s.fragmentPath)
	if err != nil {
		return fmt.Errorf("could not read fragment shader file: %w", err)
	}

	program, err := s.ctx.CompileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return fmt.Errorf("%s: %w", s.vertexPath, err)
	}
	if s.ID != 0 {
		s.ctx.DeleteProgram(s.ID)
	}
	s.ID = program
	s.resetCache()
	return nil
}

func (s *Shader) resetCache() {
	s.attribs = make(map[string]int32)
	s.uniforms = make(map[string]int32)
}

// Program returns the GL program handle.
func (s *Shader) Program() uint32 {
	return s.ID
}

// Use activates the shader program
func (s *Shader) Use() {
	s.ctx.UseProgram(s.ID)
}

// AttribLocation returns the location of a vertex attribute, or gpu.NoLocation.
func (s *Shader) AttribLocation(name string) int32 {
	if loc, ok := s.attribs[name]; ok {
		return loc
	}
	loc := s.ctx.AttribLocation(s.ID, name)
	s.attribs[name] = loc
	return loc
}

// UniformLocation returns the location of a uniform, or gpu.NoLocation.
func (s *Shader) UniformLocation(name string) int32 {
	if loc, ok := s.uniforms[name]; ok {
		return loc
	}
	loc := s.ctx.UniformLocation(s.ID, name)
	s.uniforms[name] = loc
	return loc
}

// SetInt sets an integer uniform
func (s *Shader) SetInt(name string, value int32) {
	s.ctx.Uniform1i(s.UniformLocation(name), value)
}

// SetVector3 sets a vector3 uniform
func (s *Shader) SetVector3(name string, value mgl32.Vec3) {
	s.ctx.Uniform3(s.UniformLocation(name), value)
}

// SetVector4 sets a vector4 uniform
func (s *Shader) SetVector4(name string, value mgl32.Vec4) {
	s.ctx.Uniform4(s.UniformLocation(name), value)
}

// SetMatrix4 sets a 4x4 matrix uniform
func (s *Shader) SetMatrix4(name string, value mgl32.Mat4) {
	s.ctx.UniformMatrix4(s.UniformLocation(name), value)
}

// Delete releases the program.
func (s *Shader) Delete() {
	if s.ID != 0 {
		s.ctx.DeleteProgram(s.ID)
		s.ID = 0
	}
}
