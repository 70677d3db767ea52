package meshmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads meshes from <dir>/<name>.json and caches them by name.
// It is not safe for concurrent use; keep it on the render thread.
type Loader struct {
	assetsPath string
	meshCache  map[string]*Mesh
}

func NewLoader(assetsPath string) *Loader {
	return &Loader{
		assetsPath: assetsPath,
		meshCache:  make(map[string]*Mesh),
	}
}

// Dir returns the directory meshes are read from.
func (l *Loader) Dir() string {
	return l.assetsPath
}

// Path returns the file a mesh name maps to.
func (l *Loader) Path(name string) string {
	return filepath.Join(l.assetsPath, name+".json")
}

// LoadMesh returns the cached mesh for name, reading and validating it on
// first use.
func (l *Loader) LoadMesh(name string) (*Mesh, error) {
	name = strings.TrimSuffix(name, ".json")

	if mesh, ok := l.meshCache[name]; ok {
		return mesh, nil
	}

	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		return nil, fmt.Errorf("could not read mesh file: %w", err)
	}

	mesh, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("mesh %q: %w", name, err)
	}

	l.meshCache[name] = mesh
	return mesh, nil
}

// Invalidate drops name from the cache so the next LoadMesh rereads it.
func (l *Loader) Invalidate(name string) {
	delete(l.meshCache, strings.TrimSuffix(name, ".json"))
}

// Decode parses and validates a JSON mesh.
func Decode(data []byte) (*Mesh, error) {
	var mesh Mesh
	if err := json.Unmarshal(data, &mesh); err != nil {
		return nil, fmt.Errorf("could not unmarshal mesh json: %w", err)
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return &mesh, nil
}
