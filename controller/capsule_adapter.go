package controller

import (
	"math"

	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/common"
)

// CapsuleAdapter drives the kinematic capsule primitive. Grounding is a
// short downward ray from the capsule center plus four edge rays offset by
// the radius; the edge rays catch ground the center ray misses near ledges.
type CapsuleAdapter struct {
	adapterBase
	body *collision.CapsuleBody

	// groundCheckDistance scales the capsule height into the ground ray
	// length.
	groundCheckDistance float64
}

func NewCapsuleAdapter(body *collision.CapsuleBody, profile GravityProfile, groundCheckDistance float64) *CapsuleAdapter {
	return &CapsuleAdapter{
		adapterBase:         newAdapterBase(body.World(), profile),
		body:                body,
		groundCheckDistance: groundCheckDistance,
	}
}

func (a *CapsuleAdapter) Initialize(host *Brain) error {
	if a == nil {
		return nil
	}
	a.host = host
	return nil
}

// groundRayOrigins returns the center origin and the four edge origins,
// front/back along X and left/right along Z at the capsule radius.
func (a *CapsuleAdapter) groundRayOrigins() []common.Vec3 {
	center := a.body.Center()
	r := a.body.Radius()
	return []common.Vec3{
		center,
		center.Add(common.Vec3{X: r}),
		center.Add(common.Vec3{X: -r}),
		center.Add(common.Vec3{Z: r}),
		center.Add(common.Vec3{Z: -r}),
	}
}

func (a *CapsuleAdapter) IsGroundedCheck() bool {
	if a == nil || a.body == nil {
		return false
	}
	length := a.groundCheckDistance * a.body.Height()
	down := common.Vec3{Y: -1}
	mask := a.body.Mask()
	for _, origin := range a.groundRayOrigins() {
		if _, ok := a.world.RayCast(origin, down, length, mask); ok {
			return true
		}
	}
	return false
}

func (a *CapsuleAdapter) Move(planar common.Vec3, dt float64) {
	if a == nil || a.body == nil || dt <= 0 {
		return
	}
	grounded := a.IsGroundedCheck()
	vert := a.vertical.Update(dt, grounded, a.normalizedForwardSpeed(), a.jumpHeld(), a.predictFallDistance)

	before := a.body.Center()
	a.body.Move(planar.Planar().Add(vert))
	moved := a.body.Center().Sub(before)
	a.groundVelocity = moved.Scale(1 / dt)
}

func (a *CapsuleAdapter) Radius() float64 {
	if a == nil {
		return 0
	}
	return a.body.Radius()
}

func (a *CapsuleAdapter) FootWorldPosition() common.Vec3 {
	if a == nil {
		return common.Vec3{}
	}
	return a.body.FootPosition()
}

func (a *CapsuleAdapter) CollisionLayerMask() collision.Mask {
	if a == nil {
		return collision.LayerNone
	}
	return a.body.Mask()
}

// StartedSlide is always false: the capsule primitive has no slope-sliding
// behavior.
func (a *CapsuleAdapter) StartedSlide() bool {
	return false
}

func (a *CapsuleAdapter) PredictLanding() (common.Vec3, bool) {
	if a == nil || a.body == nil {
		return common.Vec3{}, false
	}
	return a.predict(a.FootWorldPosition(), a.Radius(), a.CollisionLayerMask())
}

func (a *CapsuleAdapter) PredictedFallDistance() float64 {
	if _, ok := a.PredictLanding(); !ok {
		return math.Inf(1)
	}
	return a.predictor.FallDistance(a.FootWorldPosition())
}

func (a *CapsuleAdapter) predictFallDistance() float64 {
	return a.PredictedFallDistance()
}
