// Package physics is a small arcade physics backend: it integrates ball
// motion, bounces balls off the field walls, the paddle and bricks, and
// reports contacts to a Listener. It knows nothing about game rules.
package physics

import (
	"math"

	"github.com/vovakirdan/multiball/internal/core"
)

// maxSubsteps bounds the work of a single Step for very fast balls.
const maxSubsteps = 16

// Body is a moving circular body.
type Body struct {
	ID     core.EntityID
	Pos    core.Vec2
	Vel    core.Vec2
	Radius float64
}

// StaticBox is an immovable axis-aligned box (a brick).
type StaticBox struct {
	ID  core.EntityID
	Box core.Box
}

// StaticCircle is an immovable circular marker that balls pass through.
type StaticCircle struct {
	ID     core.EntityID
	Center core.Vec2
	Radius float64
}

// Scene exposes the bodies the world simulates. BallBodies returns live
// pointers that Step integrates in place.
type Scene interface {
	BallBodies() []*Body
	PaddleBox() core.Box
	BrickBoxes() []StaticBox
	PointCircles() []StaticCircle
}

// Listener receives contacts detected during Step. Callbacks fire
// synchronously, so they may add or remove scene entities.
type Listener interface {
	OnBallPaddleCollision(ball core.EntityID)
	OnBallBrickCollision(ball, brick core.EntityID)
	OnBallGenerationPointCollision(ball, point core.EntityID)
}

// World holds the field bounds. The bottom edge is open unless
// CollideBottom is set, so balls can fall out of play.
type World struct {
	Width         float64
	Height        float64
	CollideBottom bool
}

// NewWorld creates a world with an open bottom edge.
func NewWorld(width, height float64) World {
	return World{Width: width, Height: height}
}

// Step advances every ball by dt seconds and dispatches contacts.
func (w World) Step(scene Scene, l Listener, dt float64) {
	if dt <= 0 {
		return
	}

	// Balls spawned by callbacks start moving on the next step.
	balls := scene.BallBodies()
	for _, b := range balls {
		n := substeps(b, dt)
		h := dt / float64(n)
		for range n {
			b.Pos = b.Pos.Add(b.Vel.Scale(h))
			w.bounceWalls(b)
			if w.hitPaddle(b, scene.PaddleBox()) {
				l.OnBallPaddleCollision(b.ID)
			}
			if brick, ok := hitBrick(b, scene.BrickBoxes()); ok {
				l.OnBallBrickCollision(b.ID, brick)
			}
			for _, p := range scene.PointCircles() {
				if b.Pos.Dist(p.Center) <= b.Radius+p.Radius {
					l.OnBallGenerationPointCollision(b.ID, p.ID)
				}
			}
		}
	}
}

// substeps returns how many slices dt is cut into so a ball never moves
// further than its radius per slice.
func substeps(b *Body, dt float64) int {
	if b.Radius <= 0 {
		return 1
	}
	n := int(math.Ceil(b.Vel.Len() * dt / b.Radius))
	return core.Clamp(n, 1, maxSubsteps)
}

func (w World) bounceWalls(b *Body) {
	if b.Pos.X-b.Radius < 0 {
		b.Pos.X = b.Radius
		b.Vel.X = math.Abs(b.Vel.X)
	}
	if b.Pos.X+b.Radius > w.Width {
		b.Pos.X = w.Width - b.Radius
		b.Vel.X = -math.Abs(b.Vel.X)
	}
	if b.Pos.Y-b.Radius < 0 {
		b.Pos.Y = b.Radius
		b.Vel.Y = math.Abs(b.Vel.Y)
	}
	if w.CollideBottom && b.Pos.Y+b.Radius > w.Height {
		b.Pos.Y = w.Height - b.Radius
		b.Vel.Y = -math.Abs(b.Vel.Y)
	}
}

// hitPaddle bounces a descending ball off the top of the paddle. A ball
// whose center is already below the paddle's midline was missed: it is
// pushed out sideways and no contact is reported.
func (w World) hitPaddle(b *Body, paddle core.Box) bool {
	if !CircleBoxOverlap(b.Pos, b.Radius, paddle) {
		return false
	}
	if b.Pos.Y > paddle.Center.Y {
		sx := sign(b.Pos.X - paddle.Center.X)
		b.Pos.X = paddle.Center.X + sx*(paddle.W/2+b.Radius)
		b.Vel.X = sx * math.Abs(b.Vel.X)
		return false
	}
	if b.Vel.Y <= 0 {
		return false
	}
	b.Pos.Y = paddle.Min().Y - b.Radius
	b.Vel.Y = -b.Vel.Y
	return true
}

// hitBrick resolves the first brick the ball overlaps: the ball is pushed
// out along the axis of least penetration and that velocity component is
// reflected.
func hitBrick(b *Body, bricks []StaticBox) (core.EntityID, bool) {
	for _, brick := range bricks {
		if !CircleBoxOverlap(b.Pos, b.Radius, brick.Box) {
			continue
		}
		c := brick.Box.Center
		dx := (brick.Box.W/2 + b.Radius) - math.Abs(b.Pos.X-c.X)
		dy := (brick.Box.H/2 + b.Radius) - math.Abs(b.Pos.Y-c.Y)
		if dx < dy {
			sx := sign(b.Pos.X - c.X)
			b.Pos.X += sx * dx
			b.Vel.X = sx * math.Abs(b.Vel.X)
		} else {
			sy := sign(b.Pos.Y - c.Y)
			b.Pos.Y += sy * dy
			b.Vel.Y = sy * math.Abs(b.Vel.Y)
		}
		return brick.ID, true
	}
	return 0, false
}

// CircleBoxOverlap reports whether a circle touches or overlaps a box.
func CircleBoxOverlap(center core.Vec2, radius float64, box core.Box) bool {
	lo, hi := box.Min(), box.Max()
	closest := core.V(core.ClampF(center.X, lo.X, hi.X), core.ClampF(center.Y, lo.Y, hi.Y))
	d := center.Sub(closest)
	return d.X*d.X+d.Y*d.Y <= radius*radius
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
