package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	maxPitch = 89.0
	minPitch = -89.0

	fovDegrees = 60.0
	nearPlane  = 0.1
	farPlane   = 1000.0
)

// Camera is a yaw/pitch fly camera. Angles are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Yaw      float32
	Pitch    float32
}

// New returns a camera at pos looking down -z.
func New(pos mgl32.Vec3) *Camera {
	return &Camera{
		Position: pos,
		Front:    mgl32.Vec3{0, 0, -1},
		Up:       mgl32.Vec3{0, 1, 0},
		Yaw:      -90,
	}
}

// LookAt returns a camera at pos with yaw/pitch set so that it faces target.
func LookAt(pos, target mgl32.Vec3) *Camera {
	c := New(pos)
	dir := target.Sub(pos)
	if dir.Len() == 0 {
		return c
	}
	dir = dir.Normalize()
	c.Pitch = clampPitch(mgl32.RadToDeg(math32.Asin(dir.Y())))
	c.Yaw = mgl32.RadToDeg(math32.Atan2(dir.Z(), dir.X()))
	c.updateFront()
	return c
}

// Rotate applies a mouse delta scaled by sens. Pitch is clamped to
// [-89, 89] and the front vector is rebuilt from the angles.
func (c *Camera) Rotate(dx, dy, sens float32) {
	c.Yaw += dx * sens
	c.Pitch = clampPitch(c.Pitch - dy*sens)
	c.updateFront()
}

// Right returns the camera's normalized right vector.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// ViewMatrix has no side effects.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// SkyboxView is the view matrix with its translation stripped.
func (c *Camera) SkyboxView() mgl32.Mat4 {
	return c.ViewMatrix().Mat3().Mat4()
}

// Projection returns the perspective projection for a width x height target.
func Projection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, nearPlane, farPlane)
}

func (c *Camera) updateFront() {
	y := mgl32.DegToRad(c.Yaw)
	p := mgl32.DegToRad(c.Pitch)
	c.Front = mgl32.Vec3{
		math32.Cos(y) * math32.Cos(p),
		math32.Sin(p),
		math32.Sin(y) * math32.Cos(p),
	}.Normalize()
}

func clampPitch(p float32) float32 {
	if p > maxPitch {
		return maxPitch
	}
	if p < minPitch {
		return minPitch
	}
	return p
}
