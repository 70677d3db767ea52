package graphics

import "github.com/go-gl/mathgl/mgl32"

// Clip planes are world-space (a, b, c, d) with ax+by+cz+d = 0. The mesh
// shader keeps fragments where dot(worldPos, plane) >= 0.

// NoClip keeps everything.
func NoClip() mgl32.Vec4 {
	return mgl32.Vec4{0, 0, 0, 0}
}

// ReflectionClipPlane keeps geometry above the water surface.
func ReflectionClipPlane(waterHeight float32) mgl32.Vec4 {
	return mgl32.Vec4{0, 1, 0, -waterHeight}
}

// RefractionClipPlane keeps geometry below the water surface.
func RefractionClipPlane(waterHeight float32) mgl32.Vec4 {
	return mgl32.Vec4{0, -1, 0, waterHeight}
}

// ClipDistance evaluates the plane equation at p.
func ClipDistance(plane mgl32.Vec4, p mgl32.Vec3) float32 {
	return plane.Dot(p.Vec4(1))
}
