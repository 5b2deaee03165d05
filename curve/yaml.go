package curve

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Spec is the yaml form of a curve. Three shapes are accepted:
//
//	jump_curve: 1.0                      # constant
//	fall_curve:                          # keyframes
//	  - { t: 0, v: 1.0 }
//	  - { t: 1, v: 1.35 }
//	min_jump_height_curve:
//	  script: "2.0 - 0.4 * t"            # tengo expression of t
type Spec struct {
	curve Curve
}

func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	if s == nil || value == nil {
		return fmt.Errorf("curve: empty spec")
	}
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("curve: constant spec: %w", err)
		}
		s.curve = Constant(v)
		return nil
	case yaml.SequenceNode:
		var keys []Key
		if err := value.Decode(&keys); err != nil {
			return fmt.Errorf("curve: keyframe spec: %w", err)
		}
		kf, err := NewKeyframes(keys...)
		if err != nil {
			return err
		}
		s.curve = kf
		return nil
	case yaml.MappingNode:
		var raw struct {
			Script string `yaml:"script"`
		}
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("curve: script spec: %w", err)
		}
		if raw.Script == "" {
			return fmt.Errorf("curve: script spec is missing the script field")
		}
		sc, err := CompileScript(raw.Script)
		if err != nil {
			return err
		}
		s.curve = sc
		return nil
	default:
		return fmt.Errorf("curve: unsupported spec node kind %d", value.Kind)
	}
}

// Curve returns the parsed curve, or a constant 1 when the spec was omitted.
func (s Spec) Curve() Curve {
	if s.curve == nil {
		return Constant(1)
	}
	return s.curve
}
