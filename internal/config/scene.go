package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scene describes what cmd/water renders. It is read from a YAML file.
type Scene struct {
	Version int `yaml:"version"`

	Window WindowConfig `yaml:"window"`
	FPS    *int         `yaml:"fps,omitempty"`

	MeshDir   string `yaml:"meshDir"`
	ShaderDir string `yaml:"shaderDir"`

	Camera CameraConfig `yaml:"camera"`
	Water  WaterConfig  `yaml:"water"`

	Meshes []MeshInstance `yaml:"meshes"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title,omitempty"`
}

type CameraConfig struct {
	Target   [3]float32 `yaml:"target"`
	Distance float32    `yaml:"distance"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	FOV      float32    `yaml:"fov"`
}

type WaterConfig struct {
	Enabled    *bool   `yaml:"enabled,omitempty"`
	Height     float32 `yaml:"height"`
	Size       float32 `yaml:"size"`
	Reflection [2]int  `yaml:"reflection,omitempty"`
	Refraction [2]int  `yaml:"refraction,omitempty"`
}

// IsEnabled reports whether the water surface is drawn.
func (w WaterConfig) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// MeshInstance places a mesh asset in the scene.
type MeshInstance struct {
	Name string     `yaml:"name"`
	Mesh string     `yaml:"mesh"`
	Pos  [3]float32 `yaml:"pos"`
}

func (s *Scene) normalize(dir string) {
	if s.Version == 0 {
		s.Version = 1
	}
	if s.Window.Width <= 0 {
		s.Window.Width = 1280
	}
	if s.Window.Height <= 0 {
		s.Window.Height = 720
	}
	if s.Window.Title == "" {
		s.Window.Title = "water"
	}
	if s.MeshDir == "" {
		s.MeshDir = "meshes"
	}
	if s.ShaderDir == "" {
		s.ShaderDir = "shaders"
	}
	if !filepath.IsAbs(s.MeshDir) {
		s.MeshDir = filepath.Join(dir, s.MeshDir)
	}
	if !filepath.IsAbs(s.ShaderDir) {
		s.ShaderDir = filepath.Join(dir, s.ShaderDir)
	}
	if s.Camera.Distance <= 0 {
		s.Camera.Distance = 15
	}
	if s.Camera.FOV <= 0 {
		s.Camera.FOV = 60
	}
	if s.Water.Size <= 0 {
		s.Water.Size = 20
	}
	for i := range s.Meshes {
		if s.Meshes[i].Mesh == "" {
			s.Meshes[i].Mesh = s.Meshes[i].Name
		}
		if s.Meshes[i].Name == "" {
			s.Meshes[i].Name = s.Meshes[i].Mesh
		}
	}
}

func (s *Scene) validate() error {
	if s.Version != 1 {
		return fmt.Errorf("unsupported scene version %d", s.Version)
	}
	for i, m := range s.Meshes {
		if m.Mesh == "" {
			return fmt.Errorf("meshes[%d]: missing mesh name", i)
		}
	}
	return nil
}

// LoadScene reads a scene file. Relative directories in it are resolved
// against the file's directory.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read scene file: %w", err)
	}
	return ParseScene(data, filepath.Dir(path))
}

// ParseScene decodes scene YAML, resolving relative paths against dir.
func ParseScene(data []byte, dir string) (*Scene, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	scene.normalize(dir)
	if err := scene.validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// Apply copies the scene's global settings into the render and water settings.
func (s *Scene) Apply() {
	if s.FPS != nil {
		SetFPSLimit(*s.FPS)
	}
	SetWaterHeight(s.Water.Height)
	SetTargetSizes(s.Water.Reflection[0], s.Water.Reflection[1], s.Water.Refraction[0], s.Water.Refraction[1])
}
