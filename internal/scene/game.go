package scene

import (
	"fmt"
	"log"

	"block-breaker-3d/internal/camera"
	"block-breaker-3d/internal/entity"
	"block-breaker-3d/internal/input"
	"block-breaker-3d/internal/physics"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Table layout, in world units on the x/z plane. The paddle sits at +z,
// nearest the camera; blocks are toward -z.
const (
	wallMinX = -5.0
	wallMaxX = 5.0
	wallFarZ = -5.5
	// The ball is lost once its centre passes this z.
	resetZ = 6.0

	paddleSpeed    = 8.0
	ballSpeed      = 7.0
	paddleStrength = 2.0
	stuckGap       = 0.05
	flySpeed       = 5.0
)

var (
	tableEye    = mgl32.Vec3{0, 9, 8}
	tableTarget = mgl32.Vec3{0, 0, -0.5}
	launchDir   = mgl32.Vec3{0.3, 0, -1}.Normalize()
)

// Text fields the game scene updates.
const (
	flyField    = 1
	blocksField = 2
)

// Ball is the gameplay state kept alongside the ball entity.
type Ball struct {
	Radius  float32
	IsStuck bool
}

// Game is the block-breaker table.
type Game struct {
	base
	env Env

	ball   Ball
	ballID int
	paddle int
	// paddle collider half extents on x and z
	paddleHalf mgl32.Vec2
	paddleX    float32

	fly bool
}

// NewGame builds the table from its built-in description.
func NewGame(env Env) (*Game, error) {
	d, err := builtinDescription("game")
	if err != nil {
		return nil, err
	}
	return NewGameFrom(d, env)
}

// NewGameFrom builds a game scene from d. d must declare a "paddle" and a
// "ball" entity.
func NewGameFrom(d *Description, env Env) (*Game, error) {
	g := &Game{env: env}
	g.entities = d.BuildEntities()
	g.fields = d.BuildTextFields()
	g.elements = d.BuildElements(g.fields, env.Atlas, env.Resolution)

	g.paddle = g.find(entity.TagPaddle)
	g.ballID = g.find(entity.TagBall)
	if g.paddle < 0 || g.ballID < 0 {
		return nil, fmt.Errorf("game scene needs a %q and a %q entity", entity.TagPaddle, entity.TagBall)
	}
	p := g.entities[g.paddle]
	g.paddleHalf = mgl32.Vec2{p.Scale.X() / 2, p.Scale.Z() / 2}
	g.paddleX = p.Position.X()
	g.ball = Ball{Radius: g.entities[g.ballID].Scale.X() / 2, IsStuck: true}

	g.cam = *camera.LookAt(tableEye, tableTarget)
	g.followPaddle()
	g.refreshText()
	g.updateTransforms()
	return g, nil
}

func (g *Game) Type() Type          { return TypeGame }
func (g *Game) RelativeMouse() bool { return true }

// Ball returns the ball state and entity.
func (g *Game) Ball() (Ball, entity.Entity) { return g.ball, g.entities[g.ballID] }

// Flying reports whether the debug fly camera is on.
func (g *Game) Flying() bool { return g.fly }

// ActiveBlocks counts the blocks not yet broken.
func (g *Game) ActiveBlocks() int {
	n := 0
	for i := range g.entities {
		if g.entities[i].Tag == entity.TagBlock && g.entities[i].IsActive {
			n++
		}
	}
	return n
}

// Update runs one tick: paddle, ball, walls, blocks, paddle hit, reset,
// then transforms.
func (g *Game) Update(in *input.State, dt float32) Request {
	if in.JustPressed(input.ActionBack) {
		return Pop()
	}
	if in.JustPressed(input.ActionToggleFly) {
		g.toggleFly()
	}
	if g.fly {
		g.updateFlyCamera(in, dt)
	} else {
		g.movePaddle(in, dt)
	}

	ball := &g.entities[g.ballID]
	if g.ball.IsStuck {
		g.followPaddle()
		if in.JustPressed(input.ActionLaunch) {
			g.ball.IsStuck = false
			ball.Velocity = launchDir.Mul(ballSpeed)
		}
	} else {
		ball.Position = ball.Position.Add(ball.Velocity.Mul(dt))
		g.bounceWalls(ball)
		g.collideBlocks(ball)
		g.collidePaddle(ball)
		if ball.Position.Z() > resetZ {
			g.ball.IsStuck = true
			ball.Velocity = mgl32.Vec3{}
			g.followPaddle()
		}
	}

	g.refreshText()
	g.updateTransforms()
	return Request{}
}

func (g *Game) movePaddle(in *input.State, dt float32) {
	var dir float32
	if in.IsActive(input.ActionMoveLeft) {
		dir--
	}
	if in.IsActive(input.ActionMoveRight) {
		dir++
	}
	limit := float32(wallMaxX) - g.paddleHalf[0]
	g.paddleX = mgl32.Clamp(g.paddleX+dir*paddleSpeed*dt, -limit, limit)
	g.entities[g.paddle].Position[0] = g.paddleX
}

// followPaddle parks the ball just in front of the paddle.
func (g *Game) followPaddle() {
	p := g.entities[g.paddle].Position
	ball := &g.entities[g.ballID]
	ball.Position = mgl32.Vec3{p.X(), ball.Position.Y(), p.Z() - g.paddleHalf[1] - g.ball.Radius - stuckGap}
}

func (g *Game) bounceWalls(ball *entity.Entity) {
	r := g.ball.Radius
	pos, vel := &ball.Position, &ball.Velocity
	if pos[0]-r < wallMinX {
		pos[0] = wallMinX + r
		vel[0] = math32.Abs(vel[0])
	}
	if pos[0]+r > wallMaxX {
		pos[0] = wallMaxX - r
		vel[0] = -math32.Abs(vel[0])
	}
	if pos[2]-r < wallFarZ {
		pos[2] = wallFarZ + r
		vel[2] = math32.Abs(vel[2])
	}
}

func (g *Game) collideBlocks(ball *entity.Entity) {
	for i := range g.entities {
		b := &g.entities[i]
		if b.Tag != entity.TagBlock || !b.IsActive {
			continue
		}
		half := mgl32.Vec2{b.Scale.X() / 2, b.Scale.Z() / 2}
		c := physics.TestCollisionExtents(ball.Position, g.ball.Radius, b.Position, half)
		if !c.Colliding {
			continue
		}
		b.IsActive = false
		physics.Resolve(c, g.ball.Radius, &ball.Position, &ball.Velocity)
	}
}

func (g *Game) collidePaddle(ball *entity.Entity) {
	p := g.entities[g.paddle].Position
	c := physics.TestCollisionExtents(ball.Position, g.ball.Radius, p, g.paddleHalf)
	// Only a ball travelling toward the paddle and still in front of it
	// bounces; one already past it is lost.
	if !c.Colliding || ball.Velocity.Z() <= 0 || ball.Position.Z() > p.Z() {
		return
	}
	ball.Velocity = physics.ReflectOffPaddle(ball.Position.X(), p.X(), paddleStrength, ball.Velocity)
	ball.Position[2] = p.Z() - g.paddleHalf[1] - g.ball.Radius
}

func (g *Game) toggleFly() {
	g.fly = !g.fly
	if !g.fly {
		g.cam = *camera.LookAt(tableEye, tableTarget)
	}
	log.Printf("game: fly camera %v", g.fly)
}

func (g *Game) updateFlyCamera(in *input.State, dt float32) {
	d := in.MouseDelta()
	g.cam.Rotate(d.X(), d.Y(), g.env.MouseSensitivity)

	var move mgl32.Vec3
	right := g.cam.Right()
	if in.IsActive(input.ActionFlyForward) {
		move = move.Add(g.cam.Front)
	}
	if in.IsActive(input.ActionFlyBackward) {
		move = move.Sub(g.cam.Front)
	}
	if in.IsActive(input.ActionFlyRight) {
		move = move.Add(right)
	}
	if in.IsActive(input.ActionFlyLeft) {
		move = move.Sub(right)
	}
	if in.IsActive(input.ActionFlyUp) {
		move = move.Add(g.cam.Up)
	}
	if in.IsActive(input.ActionFlyDown) {
		move = move.Sub(g.cam.Up)
	}
	if move.Len() > 0 {
		g.cam.Position = g.cam.Position.Add(move.Normalize().Mul(flySpeed * dt))
	}
}

func (g *Game) refreshText() {
	if len(g.fields) > flyField {
		g.fields[flyField].Visible = g.fly
	}
	if len(g.fields) > blocksField {
		g.fields[blocksField].Text = fmt.Sprintf("BLOCKS %d", g.ActiveBlocks())
	}
}
