package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinDistance = 2.0
	MaxDistance = 80.0
	MaxPitch    = 89.0
)

// Camera orbits a target point. Yaw and Pitch are in degrees; Pitch is the
// elevation of the eye above the target.
type Camera struct {
	Target   mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Distance:    15,
		Yaw:         -90,
		Pitch:       30,
		AspectRatio: float32(width) / float32(height),
		FOV:         60.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
	}
}

// Eye returns the world-space camera position.
func (c *Camera) Eye() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	offset := mgl32.Vec3{
		float32(math.Cos(p) * math.Cos(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p) * math.Sin(y)),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

// View returns the world to camera transform.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the camera to clip transform.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Orbit rotates the eye around the target by the given degrees.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch

	// Constrain pitch
	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Pitch < -MaxPitch {
		c.Pitch = -MaxPitch
	}
}

// Zoom moves the eye toward (negative delta) or away from the target.
func (c *Camera) Zoom(delta float32) {
	c.Distance += delta
	if c.Distance < MinDistance {
		c.Distance = MinDistance
	}
	if c.Distance > MaxDistance {
		c.Distance = MaxDistance
	}
}

func (c *Camera) SetViewport(width, height int) {
	if height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Reflected returns the camera mirrored across the horizontal plane
// y = waterHeight, used to render what the water surface reflects.
func (c *Camera) Reflected(waterHeight float32) *Camera {
	r := *c
	r.Target[1] = 2*waterHeight - c.Target[1]
	r.Pitch = -c.Pitch
	return &r
}
