package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestClipPlanes(t *testing.T) {
	const water = 2
	above := mgl32.Vec3{0, 3, 0}
	below := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name      string
		plane     mgl32.Vec4
		keepAbove bool
		keepBelow bool
	}{
		{"reflection", ReflectionClipPlane(water), true, false},
		{"refraction", RefractionClipPlane(water), false, true},
		{"none", NoClip(), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipDistance(tt.plane, above) >= 0; got != tt.keepAbove {
				t.Errorf("keeps point above water = %v, want %v", got, tt.keepAbove)
			}
			if got := ClipDistance(tt.plane, below) >= 0; got != tt.keepBelow {
				t.Errorf("keeps point below water = %v, want %v", got, tt.keepBelow)
			}
		})
	}
}
