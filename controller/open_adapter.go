package controller

import (
	"math"

	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/common"
)

// OpenAdapter drives the dynamic-body primitive. Grounding, foot position,
// collision mask, and slide status come straight from the body's own
// queries; a head contact reported by the move cancels upward motion
// immediately.
type OpenAdapter struct {
	adapterBase
	body *collision.OpenBody
}

func NewOpenAdapter(body *collision.OpenBody, profile GravityProfile) *OpenAdapter {
	return &OpenAdapter{
		adapterBase: newAdapterBase(body.World(), profile),
		body:        body,
	}
}

func (a *OpenAdapter) Initialize(host *Brain) error {
	if a == nil {
		return nil
	}
	a.host = host
	return nil
}

func (a *OpenAdapter) IsGroundedCheck() bool {
	if a == nil {
		return false
	}
	return a.body.Grounded()
}

func (a *OpenAdapter) Move(planar common.Vec3, dt float64) {
	if a == nil || a.body == nil || dt <= 0 {
		return
	}
	grounded := a.body.Grounded()
	vert := a.vertical.Update(dt, grounded, a.normalizedForwardSpeed(), a.jumpHeld(), a.predictFallDistance)

	before := a.body.Center()
	flags := a.body.Move(planar.Planar().Add(vert), dt)
	if flags.Above {
		a.vertical.CancelUpwardMotion()
	}
	moved := a.body.Center().Sub(before)
	a.groundVelocity = moved.Scale(1 / dt)
}

func (a *OpenAdapter) Radius() float64 {
	if a == nil {
		return 0
	}
	return a.body.Radius()
}

func (a *OpenAdapter) FootWorldPosition() common.Vec3 {
	if a == nil {
		return common.Vec3{}
	}
	return a.body.FootPosition()
}

func (a *OpenAdapter) CollisionLayerMask() collision.Mask {
	if a == nil {
		return collision.LayerNone
	}
	return a.body.Mask()
}

func (a *OpenAdapter) StartedSlide() bool {
	if a == nil {
		return false
	}
	return a.body.StartedSlide()
}

func (a *OpenAdapter) PredictLanding() (common.Vec3, bool) {
	if a == nil || a.body == nil {
		return common.Vec3{}, false
	}
	return a.predict(a.FootWorldPosition(), a.Radius(), a.CollisionLayerMask())
}

func (a *OpenAdapter) PredictedFallDistance() float64 {
	if _, ok := a.PredictLanding(); !ok {
		return math.Inf(1)
	}
	return a.predictor.FallDistance(a.FootWorldPosition())
}

func (a *OpenAdapter) predictFallDistance() float64 {
	return a.PredictedFallDistance()
}
