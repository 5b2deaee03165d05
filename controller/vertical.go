package controller

import (
	"math"

	"github.com/milk9111/charcontrol/common"
)

// Phase is the vertical kinematics lifecycle state.
type Phase int

const (
	PhaseGrounded Phase = iota
	PhaseRising
	PhaseFalling
)

func (p Phase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseRising:
		return "rising"
	case PhaseFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// VerticalState tracks a character's jump/fall lifecycle. It is mutated once
// per tick by Update and owns the landing/falling-started notifications.
type VerticalState struct {
	profile GravityProfile

	velocity            float64
	initialJumpVelocity float64
	airTime             float64
	fallTime            float64
	gravity             float64
	grounded            bool

	events Events
}

func NewVerticalState(profile GravityProfile) *VerticalState {
	return &VerticalState{
		profile:  profile,
		gravity:  profile.baseline(),
		grounded: true,
	}
}

// Events exposes the listener registry.
func (s *VerticalState) Events() *Events {
	if s == nil {
		return nil
	}
	return &s.events
}

// SetJumpVelocity assigns a new launch velocity. Valid from any phase;
// gating re-jumps is the host's responsibility.
func (s *VerticalState) SetJumpVelocity(v float64) {
	if s == nil {
		return
	}
	s.velocity = v
	s.initialJumpVelocity = v
	s.events.fireJumpVelocitySet(v)
}

// CancelUpwardMotion zeroes both current and initial vertical velocity. Used
// by the open backend when the move reports a head contact; the next jump
// restores normal integration.
func (s *VerticalState) CancelUpwardMotion() {
	if s == nil {
		return
	}
	s.velocity = 0
	s.initialJumpVelocity = 0
}

// airborne reports whether there is vertical motion to integrate this tick.
func (s *VerticalState) airborne() bool {
	return s.airTime > 0 || s.velocity > common.Epsilon || s.velocity < -common.Epsilon
}

// Update advances the state machine by one tick and returns the vertical
// displacement to apply. predictFallDistance supplies the payload for the
// falling-started notification and may be nil.
func (s *VerticalState) Update(dt float64, grounded bool, normalizedForwardSpeed float64, jumpHeld bool, predictFallDistance func() float64) common.Vec3 {
	if s == nil || dt <= 0 {
		return common.Vec3{}
	}
	s.grounded = grounded

	if grounded && !s.airborne() {
		s.velocity = 0
		return common.Vec3{}
	}

	s.airTime += dt
	target := s.profile.targetGravity(normalizedForwardSpeed, s.velocity, jumpHeld)
	s.gravity = s.profile.smoothGravity(s.gravity, target, dt)
	floor := s.profile.terminalFloor()

	if s.velocity >= 0 {
		// Rising. The velocity may cross zero this tick; fall accounting
		// starts on the next one.
		s.velocity = common.Clamp(s.initialJumpVelocity+s.gravity*s.airTime, floor, math.Inf(1))
		return common.Vec3{Y: s.velocity * dt}
	}

	// Falling.
	if grounded {
		s.land(dt)
		return common.Vec3{}
	}

	justStarted := s.fallTime <= common.Epsilon
	s.velocity = common.Clamp(s.gravity*s.fallTime, floor, math.Inf(1))
	s.fallTime += dt
	if justStarted {
		distance := math.Inf(1)
		if predictFallDistance != nil {
			distance = predictFallDistance()
		}
		s.events.fireStartedFalling(distance)
	}
	return common.Vec3{Y: s.velocity * dt}
}

// land completes a falling episode. The landed notification is suppressed
// when the whole episode lasted exactly the one tick just applied, which
// filters out single-frame false falls from minor ground fluctuation.
func (s *VerticalState) land(dt float64) {
	s.initialJumpVelocity = 0
	s.velocity = 0
	if !common.ApproxEqual(s.airTime, dt) {
		s.events.fireLanded()
	}
	s.airTime = 0
	s.fallTime = 0
}

// Phase derives the lifecycle state from the tracked quantities.
func (s *VerticalState) Phase() Phase {
	if s == nil {
		return PhaseGrounded
	}
	if !s.airborne() {
		return PhaseGrounded
	}
	if s.velocity < 0 {
		return PhaseFalling
	}
	return PhaseRising
}

// Velocity is the current vertical velocity.
func (s *VerticalState) Velocity() float64 {
	if s == nil {
		return 0
	}
	return s.velocity
}

// InitialJumpVelocity is the launch velocity of the current arc; zeroed on
// landing.
func (s *VerticalState) InitialJumpVelocity() float64 {
	if s == nil {
		return 0
	}
	return s.initialJumpVelocity
}

// AirTime is the time spent airborne in the current episode.
func (s *VerticalState) AirTime() float64 {
	if s == nil {
		return 0
	}
	return s.airTime
}

// FallTime is the time spent in the falling portion of the current episode.
func (s *VerticalState) FallTime() float64 {
	if s == nil {
		return 0
	}
	return s.fallTime
}

// Gravity is the smoothed gravity value in effect this tick.
func (s *VerticalState) Gravity() float64 {
	if s == nil {
		return BaselineGravity
	}
	return s.gravity
}

// Grounded reports the grounded flag recorded by the last Update.
func (s *VerticalState) Grounded() bool {
	if s == nil {
		return false
	}
	return s.grounded
}

// NormalizedSpeed maps the current vertical velocity into [-1, 1] for
// animation blend consumers. While rising the scale is the initial jump
// velocity; while falling it is the initial jump velocity times the fall
// gravity multiplier. Falls back to 0 when the scale is degenerate.
func (s *VerticalState) NormalizedSpeed() float64 {
	if s == nil {
		return 0
	}
	if s.velocity < 0 {
		denom := s.initialJumpVelocity * s.profile.fallMultiplier()
		if common.ApproxZero(denom) {
			return 0
		}
		return common.Clamp(s.velocity/denom, -1, 1)
	}
	if common.ApproxZero(s.initialJumpVelocity) {
		return 0
	}
	return common.Clamp(s.velocity/s.initialJumpVelocity, -1, 1)
}
