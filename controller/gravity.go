// Package controller implements the character brain and its controller
// adapters: curve-modulated gravity, the vertical kinematics state machine,
// ballistic landing prediction, and two collision backends behind one
// adapter contract.
package controller

import (
	"math"

	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/curve"
)

// BaselineGravity is the engine's downward acceleration before curve
// modulation, in m/s^2.
const BaselineGravity = -9.8

// GravityProfile is a character's designer-authored gravity configuration.
// Immutable once a character is initialized; read every tick.
type GravityProfile struct {
	// Jump modulates gravity while vertical velocity is non-negative.
	Jump curve.Curve
	// Fall modulates gravity while vertical velocity is negative.
	Fall curve.Curve
	// MinJumpHeight further scales jump gravity while the jump control is
	// not held, truncating the arc into a short hop.
	MinJumpHeight curve.Curve

	// GravityChangeSpeed is the exponential interpolation rate toward the
	// target gravity, per second.
	GravityChangeSpeed float64
	// TerminalVelocity is the magnitude of the fastest permitted downward
	// speed; the floor applied to vertical velocity is its negation.
	TerminalVelocity float64
	// FallGravityMultiplier scales gravity during trajectory prediction and
	// normalized-speed scaling while falling.
	FallGravityMultiplier float64
	// Baseline overrides BaselineGravity when non-zero.
	Baseline float64
}

func (p GravityProfile) baseline() float64 {
	if p.Baseline != 0 {
		return p.Baseline
	}
	return BaselineGravity
}

// terminalFloor is the most negative vertical velocity allowed.
func (p GravityProfile) terminalFloor() float64 {
	return -math.Abs(p.TerminalVelocity)
}

func (p GravityProfile) fallMultiplier() float64 {
	if p.FallGravityMultiplier <= 0 {
		return 1
	}
	return p.FallGravityMultiplier
}

func evalCurve(c curve.Curve, t float64) float64 {
	if c == nil {
		return 1
	}
	return c.Eval(t)
}

// targetGravity evaluates the response curves for the current tick. The fall
// curve applies when vertical velocity is negative; otherwise the jump curve
// applies, scaled by the min-jump-height curve when the jump control is not
// held.
func (p GravityProfile) targetGravity(normalizedForwardSpeed, verticalVelocity float64, jumpHeld bool) float64 {
	var mult float64
	if verticalVelocity < 0 {
		mult = evalCurve(p.Fall, normalizedForwardSpeed)
	} else {
		mult = evalCurve(p.Jump, normalizedForwardSpeed)
		if !jumpHeld {
			mult *= evalCurve(p.MinJumpHeight, normalizedForwardSpeed)
		}
	}
	return p.baseline() * mult
}

// smoothGravity moves current toward target at GravityChangeSpeed, keeping
// gravity continuous when forward speed changes abruptly mid-air.
func (p GravityProfile) smoothGravity(current, target, dt float64) float64 {
	t := common.Clamp(p.GravityChangeSpeed*dt, 0, 1)
	return common.Lerp(current, target, t)
}
