package collision

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/charcontrol/common"
)

// defaultSlopeLimitDeg is the steepest ground angle the body stands on
// without sliding.
const defaultSlopeLimitDeg = 45.0

// OpenBody is the dynamic-body movement primitive: a chipmunk body whose
// velocity is driven each tick from the requested displacement, letting the
// space resolve contacts. Grounding, head contact, and slope sliding are
// read back from arbiter contact normals after the step, the same way the
// chipmunk platformer player samples its grounding normal.
type OpenBody struct {
	world *World
	body  *cp.Body
	shape *cp.Shape

	radius        float64
	height        float64
	mask          Mask
	slopeLimitDeg float64

	// GraceTicks keeps the body reporting grounded for this many ticks
	// after ground contact is lost, smoothing single-tick contact dropouts.
	// Zero disables the grace window.
	GraceTicks int

	grounded     bool
	graceLeft    int
	sliding      bool
	startedSlide bool
	flags        Flags
}

func NewOpenBody(world *World, center common.Vec3, radius, height float64, mask Mask) *OpenBody {
	b := &OpenBody{
		world:         world,
		radius:        radius,
		height:        height,
		mask:          mask,
		slopeLimitDeg: defaultSlopeLimitDeg,
	}
	if world == nil || world.space == nil {
		return b
	}

	// Infinite moment keeps the body upright without a rotation constraint.
	body := cp.NewBody(1, cp.INFINITY)
	body.SetPosition(cp.Vector{X: center.X, Y: center.Y})

	shape := cp.NewBox(body, radius*2, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetFilter(LayerCharacter.shapeFilter())

	world.space.AddBody(body)
	world.space.AddShape(shape)
	b.body = body
	b.shape = shape
	return b
}

// SetSlopeLimit overrides the default slope limit, in degrees from
// horizontal.
func (b *OpenBody) SetSlopeLimit(deg float64) {
	if b == nil {
		return
	}
	b.slopeLimitDeg = deg
}

// Move drives the body by the given displacement over dt, steps the space,
// and samples contact state. Returns which sides touched geometry this tick.
func (b *OpenBody) Move(motion common.Vec3, dt float64) Flags {
	if b == nil || b.body == nil || b.world == nil || b.world.space == nil || dt <= 0 {
		return Flags{}
	}

	b.body.SetVelocity(motion.X/dt, motion.Y/dt)
	b.world.space.Step(dt)

	wasSliding := b.sliding
	b.flags = Flags{}
	b.grounded = false
	b.sliding = false

	groundLimit := math.Cos(b.slopeLimitDeg * math.Pi / 180)
	b.body.EachArbiter(func(arb *cp.Arbiter) {
		n := arb.Normal().Neg()
		switch {
		case n.Y > common.Epsilon:
			b.flags.Below = true
			if n.Y >= groundLimit {
				b.grounded = true
			} else {
				b.sliding = true
			}
		case n.Y < -common.Epsilon:
			b.flags.Above = true
		default:
			b.flags.Sides = true
		}
	})

	if b.grounded {
		b.graceLeft = b.GraceTicks
	} else if b.graceLeft > 0 {
		b.graceLeft--
	}
	b.startedSlide = b.sliding && !wasSliding

	return b.flags
}

// Grounded reports ground contact from the last Move, extended by the grace
// window when configured.
func (b *OpenBody) Grounded() bool {
	if b == nil {
		return false
	}
	return b.grounded || b.graceLeft > 0
}

// StartedSlide reports whether the body began sliding on steep ground during
// the last Move.
func (b *OpenBody) StartedSlide() bool {
	if b == nil {
		return false
	}
	return b.startedSlide
}

func (b *OpenBody) Radius() float64 {
	if b == nil {
		return 0
	}
	return b.radius
}

func (b *OpenBody) Height() float64 {
	if b == nil {
		return 0
	}
	return b.height
}

func (b *OpenBody) Mask() Mask {
	if b == nil {
		return LayerNone
	}
	return b.mask
}

func (b *OpenBody) Center() common.Vec3 {
	if b == nil || b.body == nil {
		return common.Vec3{}
	}
	pos := b.body.Position()
	return common.Vec3{X: pos.X, Y: pos.Y}
}

func (b *OpenBody) SetCenter(c common.Vec3) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(cp.Vector{X: c.X, Y: c.Y})
	b.body.SetVelocity(0, 0)
}

// FootPosition is the world-space point at the base of the body.
func (b *OpenBody) FootPosition() common.Vec3 {
	return b.Center().Sub(common.Vec3{Y: b.height / 2})
}

// World returns the collision world the body lives in.
func (b *OpenBody) World() *World {
	if b == nil {
		return nil
	}
	return b.world
}
