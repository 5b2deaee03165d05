package profiles

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/controller"
	"github.com/milk9111/charcontrol/curve"
)

// LoadSpec reads and unmarshals a yaml profile asset.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("profiles: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("profiles: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// CharacterSpec is the per-entity tuning surface, static at setup.
type CharacterSpec struct {
	Name            string          `yaml:"name"`
	MaxForwardSpeed float64         `yaml:"max_forward_speed"`
	JumpSpeed       float64         `yaml:"jump_speed"`
	Capsule         CapsuleSpec     `yaml:"capsule"`
	GroundCheck     GroundCheckSpec `yaml:"ground_check"`
	Gravity         GravitySpec     `yaml:"gravity"`
}

type CapsuleSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type GroundCheckSpec struct {
	// Distance scales capsule height into ground ray length.
	Distance float64  `yaml:"distance"`
	Layers   []string `yaml:"layers"`
}

// Mask resolves the configured layer names. Unknown names are an error so a
// typo in tuning fails at load, not as a silently ungrounded character.
func (s GroundCheckSpec) Mask() (collision.Mask, error) {
	var mask collision.Mask
	for _, name := range s.Layers {
		m, ok := collision.LayerByName(name)
		if !ok {
			return collision.LayerNone, fmt.Errorf("profiles: unknown collision layer %q", name)
		}
		mask |= m
	}
	if mask == collision.LayerNone {
		mask = collision.LayerGround
	}
	return mask, nil
}

type GravitySpec struct {
	TerminalVelocity   float64    `yaml:"terminal_velocity"`
	ChangeSpeed        float64    `yaml:"change_speed"`
	FallMultiplier     float64    `yaml:"fall_multiplier"`
	Baseline           float64    `yaml:"baseline"`
	JumpCurve          curve.Spec `yaml:"jump_curve"`
	FallCurve          curve.Spec `yaml:"fall_curve"`
	MinJumpHeightCurve curve.Spec `yaml:"min_jump_height_curve"`
}

// Profile builds the immutable gravity profile from the spec.
func (s GravitySpec) Profile() controller.GravityProfile {
	return controller.GravityProfile{
		Jump:                  s.JumpCurve.Curve(),
		Fall:                  s.FallCurve.Curve(),
		MinJumpHeight:         s.MinJumpHeightCurve.Curve(),
		GravityChangeSpeed:    s.ChangeSpeed,
		TerminalVelocity:      s.TerminalVelocity,
		FallGravityMultiplier: s.FallMultiplier,
		Baseline:              s.Baseline,
	}
}

// LoadCharacterSpec loads a character tuning profile by asset name, e.g.
// "character.yaml".
func LoadCharacterSpec(name string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.Capsule.Radius <= 0 || spec.Capsule.Height <= 0 {
		return nil, fmt.Errorf("profiles: %s: capsule radius and height must be positive", name)
	}
	return &spec, nil
}
