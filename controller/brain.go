package controller

import (
	"errors"
	"fmt"

	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/common"
)

// ErrNoMovementPrimitive is returned by Brain.Initialize when the entity
// carries neither movement primitive. The adapter is left unset; per-tick
// calls on such a brain are no-ops.
var ErrNoMovementPrimitive = errors.New("controller: no movement primitive attached to entity")

// Input supplies control signals to the brain.
type Input interface {
	// JumpHeld reports whether the jump control is currently held.
	JumpHeld() bool
}

// MovementZoneObserver receives zone-change notifications. ok=false means
// the character left all zones.
type MovementZoneObserver func(zone string, ok bool)

// Entity bundles the movement primitives attached to a character. Exactly
// one should be set; the brain binds the matching adapter for the entity's
// lifetime.
type Entity struct {
	Capsule *collision.CapsuleBody
	Open    *collision.OpenBody
}

// Brain owns one active controller adapter and feeds it per-tick move
// requests, tracking planar speed from the position delta.
type Brain struct {
	adapter Adapter
	input   Input

	// MaxForwardSpeed scales planar speed into the [0,1] curve input.
	MaxForwardSpeed float64

	lastFoot    common.Vec3
	hasLastFoot bool
	planarSpeed float64

	zoneObserver MovementZoneObserver
}

func NewBrain(input Input, maxForwardSpeed float64) *Brain {
	return &Brain{input: input, MaxForwardSpeed: maxForwardSpeed}
}

// Initialize inspects which movement primitive the entity carries and binds
// the matching adapter. groundCheckDistance only applies to the capsule
// backend. A missing primitive is a configuration error: reported, adapter
// left unset.
func (b *Brain) Initialize(ent Entity, profile GravityProfile, groundCheckDistance float64) error {
	if b == nil {
		return fmt.Errorf("controller: initialize nil brain")
	}
	switch {
	case ent.Capsule != nil:
		b.adapter = NewCapsuleAdapter(ent.Capsule, profile, groundCheckDistance)
	case ent.Open != nil:
		b.adapter = NewOpenAdapter(ent.Open, profile)
	default:
		fmt.Println("controller: brain init:", ErrNoMovementPrimitive)
		return ErrNoMovementPrimitive
	}
	if err := b.adapter.Initialize(b); err != nil {
		return fmt.Errorf("controller: initialize adapter: %w", err)
	}
	b.lastFoot = b.adapter.FootWorldPosition()
	b.hasLastFoot = true
	return nil
}

// Adapter returns the bound adapter, nil before a successful Initialize.
func (b *Brain) Adapter() Adapter {
	if b == nil {
		return nil
	}
	return b.adapter
}

// Update forwards one tick's planar move request to the adapter and records
// the horizontal position delta for planar speed.
func (b *Brain) Update(planar common.Vec3, dt float64) {
	if b == nil || b.adapter == nil || dt <= 0 {
		return
	}
	b.adapter.Move(planar, dt)

	foot := b.adapter.FootWorldPosition()
	if b.hasLastFoot {
		b.planarSpeed = foot.Sub(b.lastFoot).PlanarLength() / dt
	}
	b.lastFoot = foot
	b.hasLastFoot = true
}

// Jump launches the character when the adapter reports ground contact.
// Returns whether a jump was started.
func (b *Brain) Jump(velocity float64) bool {
	if b == nil || b.adapter == nil {
		return false
	}
	if !b.adapter.IsGroundedCheck() {
		return false
	}
	b.adapter.Vertical().SetJumpVelocity(velocity)
	return true
}

// PlanarSpeed is the horizontal speed derived from the last tick's position
// delta.
func (b *Brain) PlanarSpeed() float64 {
	if b == nil {
		return 0
	}
	return b.planarSpeed
}

// NormalizedForwardSpeed maps planar speed into [0,1] against
// MaxForwardSpeed, the input the gravity response curves are indexed by.
func (b *Brain) NormalizedForwardSpeed() float64 {
	if b == nil || b.MaxForwardSpeed <= 0 {
		return 0
	}
	return common.Clamp(b.planarSpeed/b.MaxForwardSpeed, 0, 1)
}

// JumpHeld reports the input collaborator's jump-held signal.
func (b *Brain) JumpHeld() bool {
	if b == nil || b.input == nil {
		return false
	}
	return b.input.JumpHeld()
}

// SetMovementZoneObserver registers the single optional zone observer.
// Registered at setup, cleared at entity teardown.
func (b *Brain) SetMovementZoneObserver(fn MovementZoneObserver) {
	if b == nil {
		return
	}
	b.zoneObserver = fn
}

// ClearMovementZoneObserver removes the registered observer.
func (b *Brain) ClearMovementZoneObserver() {
	if b == nil {
		return
	}
	b.zoneObserver = nil
}

// ChangeMovementZone broadcasts a zone change to the registered observer,
// if any. ok=false signals leaving all zones.
func (b *Brain) ChangeMovementZone(zone string, ok bool) {
	if b == nil || b.zoneObserver == nil {
		return
	}
	b.zoneObserver(zone, ok)
}
