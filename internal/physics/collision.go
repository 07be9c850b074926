package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is the side of a collider the ball hit, as seen from the ball.
type Direction int

const (
	DirDown  Direction = iota // -z
	DirLeft                   // +x
	DirUp                     // +z
	DirRight                  // -x
)

func (d Direction) String() string {
	switch d {
	case DirDown:
		return "DOWN"
	case DirLeft:
		return "LEFT"
	case DirUp:
		return "UP"
	case DirRight:
		return "RIGHT"
	}
	return "UNKNOWN"
}

// Candidate order matters: on equal dot products the earlier entry wins.
var compass = [...]mgl32.Vec3{
	DirDown:  {0, 0, -1},
	DirLeft:  {1, 0, 0},
	DirUp:    {0, 0, 1},
	DirRight: {-1, 0, 0},
}

// Collision is the result of a sphere vs box test on the x/z plane.
type Collision struct {
	Colliding bool
	Direction Direction
	// Difference is closest point on the box minus the ball centre.
	Difference mgl32.Vec3
}

// TestCollision tests a ball against a box with the same half width on x
// and z.
func TestCollision(ball mgl32.Vec3, radius float32, box mgl32.Vec3, halfWidth float32) Collision {
	return TestCollisionExtents(ball, radius, box, mgl32.Vec2{halfWidth, halfWidth})
}

// TestCollisionExtents tests a ball against a box with half extents half[0]
// on x and half[1] on z. The box is treated as flat: the closest point takes
// the box centre's y.
func TestCollisionExtents(ball mgl32.Vec3, radius float32, box mgl32.Vec3, half mgl32.Vec2) Collision {
	closest := mgl32.Vec3{
		mgl32.Clamp(ball.X(), box.X()-half[0], box.X()+half[0]),
		box.Y(),
		mgl32.Clamp(ball.Z(), box.Z()-half[1], box.Z()+half[1]),
	}
	diff := closest.Sub(ball)
	if diff.Len() > radius {
		return Collision{}
	}
	return Collision{Colliding: true, Direction: Classify(diff), Difference: diff}
}

// Classify picks the compass direction closest to v. A zero vector
// classifies as DirDown.
func Classify(v mgl32.Vec3) Direction {
	if l := v.Len(); l > 0 {
		v = v.Mul(1 / l)
	}
	best := DirDown
	bestDot := math32.Inf(-1)
	for i, c := range compass {
		if d := v.Dot(c); d > bestDot {
			bestDot = d
			best = Direction(i)
		}
	}
	return best
}

// Penetration is how far the ball overlaps the collider along the axis of
// the hit.
func Penetration(c Collision, radius float32) float32 {
	switch c.Direction {
	case DirLeft, DirRight:
		return radius - abs32(c.Difference.X())
	default:
		return radius - abs32(c.Difference.Z())
	}
}

// Resolve flips the velocity component along the hit axis and pushes pos
// out of the collider by the penetration depth. It reports the depth used.
func Resolve(c Collision, radius float32, pos, vel *mgl32.Vec3) float32 {
	if !c.Colliding {
		return 0
	}
	p := Penetration(c, radius)
	switch c.Direction {
	case DirLeft:
		vel[0] = -vel[0]
		pos[0] -= p
	case DirRight:
		vel[0] = -vel[0]
		pos[0] += p
	case DirDown:
		vel[2] = -vel[2]
		pos[2] += p
	case DirUp:
		vel[2] = -vel[2]
		pos[2] -= p
	}
	return p
}

// ReflectOffPaddle steers the ball by where it hit the paddle and sends it
// back toward -z. The returned velocity has the same length as vel.
func ReflectOffPaddle(ballX, paddleX, strength float32, vel mgl32.Vec3) mgl32.Vec3 {
	speed := vel.Len()
	out := mgl32.Vec3{(ballX - paddleX) * strength, vel.Y(), -abs32(vel.Z())}
	l := out.Len()
	if l == 0 {
		return mgl32.Vec3{0, 0, -speed}
	}
	return out.Mul(speed / l)
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
