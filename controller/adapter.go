package controller

import (
	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/common"
)

// Adapter is the backend-agnostic character controller contract. Two
// implementations exist: CapsuleAdapter for the kinematic capsule primitive
// and OpenAdapter for the dynamic-body primitive. The brain binds exactly
// one at initialization and never switches it.
type Adapter interface {
	// Initialize borrows the host brain for forward-speed and input
	// queries.
	Initialize(host *Brain) error
	// Move applies one tick: grounded check, vertical kinematics update,
	// planar+vertical composition, backend move, ground-velocity cache —
	// in that order.
	Move(planar common.Vec3, dt float64)

	IsGroundedCheck() bool
	Radius() float64
	FootWorldPosition() common.Vec3
	CollisionLayerMask() collision.Mask
	StartedSlide() bool

	// Vertical exposes the kinematics state and its event registry.
	Vertical() *VerticalState
	// PredictLanding forward-simulates the fall path; ok=false means no
	// landing within the predictable horizon.
	PredictLanding() (common.Vec3, bool)
	// PredictedFallDistance is the vertical drop to the predicted landing,
	// +Inf when prediction finds none.
	PredictedFallDistance() float64
	// TrajectorySamples returns the sample sequence of the most recent
	// prediction, for visualization layers.
	TrajectorySamples() []common.Vec3
	// GroundVelocity is the displacement/deltaTime cached by the last Move.
	GroundVelocity() common.Vec3
}

// adapterBase carries the state both backends share.
type adapterBase struct {
	host           *Brain
	world          *collision.World
	vertical       *VerticalState
	predictor      *Predictor
	groundVelocity common.Vec3
}

func newAdapterBase(world *collision.World, profile GravityProfile) adapterBase {
	return adapterBase{
		world:     world,
		vertical:  NewVerticalState(profile),
		predictor: NewPredictor(world, profile),
	}
}

func (b *adapterBase) normalizedForwardSpeed() float64 {
	if b.host == nil {
		return 0
	}
	return b.host.NormalizedForwardSpeed()
}

func (b *adapterBase) jumpHeld() bool {
	if b.host == nil {
		return false
	}
	return b.host.JumpHeld()
}

func (b *adapterBase) Vertical() *VerticalState {
	return b.vertical
}

func (b *adapterBase) GroundVelocity() common.Vec3 {
	return b.groundVelocity
}

func (b *adapterBase) TrajectorySamples() []common.Vec3 {
	return b.predictor.Samples()
}

// predict runs landing prediction from the given geometry using the cached
// ground velocity and live smoothed gravity.
func (b *adapterBase) predict(foot common.Vec3, radius float64, mask collision.Mask) (common.Vec3, bool) {
	return b.predictor.Predict(foot, b.groundVelocity, b.vertical.Gravity(), radius, mask)
}
