package app

import (
	"log"

	"github.com/sepiropht/webgl-water-tutorial/internal/graphics/renderables/mesh"
	"github.com/sepiropht/webgl-water-tutorial/pkg/meshmodel"
)

// Reloader swaps edited mesh assets into the scene between frames.
type Reloader struct {
	Loader *meshmodel.Loader
	Meshes *mesh.Meshes
}

// Apply rereads the named asset. A mesh that fails to load or validate is
// logged and the previous data stays on screen.
func (r *Reloader) Apply(name string) bool {
	r.Loader.Invalidate(name)
	m, err := r.Loader.LoadMesh(name)
	if err != nil {
		log.Printf("reload %s: %v", name, err)
		return false
	}
	n := r.Meshes.Replace(name, m)
	if n > 0 {
		log.Printf("reloaded %s (%d instances, %d triangles)", name, n, m.TriangleCount())
	}
	return n > 0
}

// Drain applies every pending change without blocking.
func (r *Reloader) Drain(changes <-chan string) {
	for {
		select {
		case name, ok := <-changes:
			if !ok {
				return
			}
			r.Apply(name)
		default:
			return
		}
	}
}
