package collision

import (
	"math"

	"github.com/milk9111/charcontrol/common"
)

// Flags reports which sides of a movement primitive touched geometry during
// a Move call.
type Flags struct {
	Below bool
	Above bool
	Sides bool
}

// CapsuleBody is the kinematic capsule movement primitive. It keeps no
// chipmunk body; motion is resolved against the world with segment queries,
// horizontal first, then vertical. It has no slope-sliding behavior.
type CapsuleBody struct {
	world  *World
	center common.Vec3
	radius float64
	height float64
	mask   Mask
}

func NewCapsuleBody(world *World, center common.Vec3, radius, height float64, mask Mask) *CapsuleBody {
	return &CapsuleBody{
		world:  world,
		center: center,
		radius: radius,
		height: height,
		mask:   mask,
	}
}

// Move applies a displacement for one tick, clamping against geometry on the
// body's collision layers. Returns which sides were touched.
func (b *CapsuleBody) Move(motion common.Vec3) Flags {
	var flags Flags
	if b == nil {
		return flags
	}

	planar := motion.Planar()
	if dist := planar.PlanarLength(); dist > common.Epsilon {
		dir := planar.Normalize()
		if hit, ok := b.world.RayCast(b.center, dir, dist+b.radius, b.mask); ok {
			allowed := hit.Distance - b.radius
			if allowed < 0 {
				allowed = 0
			}
			if allowed < dist {
				planar = dir.Scale(allowed)
				flags.Sides = true
			}
		}
		b.center = b.center.Add(planar)
	}

	dy := motion.Y
	switch {
	case dy < 0:
		half := b.height / 2
		if hit, ok := b.world.RayCast(b.center, common.Vec3{Y: -1}, half-dy, b.mask); ok {
			// Rest the foot on the hit point instead of sinking past it.
			floorY := hit.Point.Y + half
			target := b.center.Y + dy
			if target < floorY {
				dy = floorY - b.center.Y
				flags.Below = true
			}
		}
		b.center.Y += dy
	case dy > 0:
		half := b.height / 2
		if hit, ok := b.world.RayCast(b.center, common.Vec3{Y: 1}, half+dy, b.mask); ok {
			ceilY := hit.Point.Y - half
			target := b.center.Y + dy
			if target > ceilY {
				dy = math.Max(ceilY-b.center.Y, 0)
				flags.Above = true
			}
		}
		b.center.Y += dy
	}

	return flags
}

func (b *CapsuleBody) Center() common.Vec3 {
	if b == nil {
		return common.Vec3{}
	}
	return b.center
}

func (b *CapsuleBody) SetCenter(c common.Vec3) {
	if b == nil {
		return
	}
	b.center = c
}

func (b *CapsuleBody) Radius() float64 {
	if b == nil {
		return 0
	}
	return b.radius
}

func (b *CapsuleBody) Height() float64 {
	if b == nil {
		return 0
	}
	return b.height
}

func (b *CapsuleBody) Mask() Mask {
	if b == nil {
		return LayerNone
	}
	return b.mask
}

// FootPosition is the world-space point at the base of the capsule.
func (b *CapsuleBody) FootPosition() common.Vec3 {
	if b == nil {
		return common.Vec3{}
	}
	return b.center.Sub(common.Vec3{Y: b.height / 2})
}

// World returns the collision world this body queries against.
func (b *CapsuleBody) World() *World {
	if b == nil {
		return nil
	}
	return b.world
}
