package controller

import (
	"math"

	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/common"
)

const (
	// PredictStep is the fixed integration step for landing prediction,
	// independent of the live tick rate so prediction is deterministic at
	// any frame rate.
	PredictStep = 1.0 / 30.0
	// PredictMaxSteps bounds the forward simulation; beyond this horizon
	// the predictor reports no landing.
	PredictMaxSteps = 60
)

// Predictor forward-simulates the ballistic fall path from a foot position
// and ground-velocity snapshot, testing each sample against a sphere ground
// query. The full sample sequence is recomputed on every call and retained
// for visualization consumers.
type Predictor struct {
	world   *collision.World
	profile GravityProfile

	samples []common.Vec3
	landing common.Vec3
	found   bool
}

func NewPredictor(world *collision.World, profile GravityProfile) *Predictor {
	return &Predictor{world: world, profile: profile}
}

// Predict runs the fixed-step simulation and returns the first sample that
// touches ground, or ok=false when the step budget runs out. A false result
// means "no landing within the predictable horizon", not "never lands".
func (p *Predictor) Predict(foot, groundVelocity common.Vec3, gravity, radius float64, mask collision.Mask) (common.Vec3, bool) {
	if p == nil {
		return common.Vec3{}, false
	}
	p.samples = p.samples[:0]
	p.found = false

	floor := p.profile.terminalFloor()
	mult := p.profile.fallMultiplier()
	planar := groundVelocity.Planar()
	pos := foot
	for i := 1; i <= PredictMaxSteps; i++ {
		vy := common.Clamp(gravity*mult*float64(i)*PredictStep, floor, math.Inf(1))
		pos = pos.Add(common.Vec3{
			X: planar.X * PredictStep,
			Y: vy * PredictStep,
			Z: planar.Z * PredictStep,
		})
		p.samples = append(p.samples, pos)
		if p.world.OverlapSphere(pos, radius, mask) {
			p.landing = pos
			p.found = true
			return pos, true
		}
	}
	return common.Vec3{}, false
}

// FallDistance returns the vertical distance from foot down to the landing
// found by the last Predict call, or +Inf when none was found.
func (p *Predictor) FallDistance(foot common.Vec3) float64 {
	if p == nil || !p.found {
		return math.Inf(1)
	}
	return foot.Y - p.landing.Y
}

// Samples returns a copy of the sample sequence produced by the last
// Predict call.
func (p *Predictor) Samples() []common.Vec3 {
	if p == nil {
		return nil
	}
	out := make([]common.Vec3, len(p.samples))
	copy(out, p.samples)
	return out
}
