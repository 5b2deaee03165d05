// Package curve implements designer-authored response curves. A curve maps a
// normalized input (typically forward speed in [0,1]) to a multiplier.
package curve

import (
	"fmt"
	"sort"
)

// Curve evaluates a response curve at t.
type Curve interface {
	Eval(t float64) float64
}

// Constant is a curve that returns the same value everywhere.
type Constant float64

func (c Constant) Eval(float64) float64 {
	return float64(c)
}

// Key is a single keyframe of a piecewise-linear curve.
type Key struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

// Keyframes is a piecewise-linear curve. Evaluation clamps to the first and
// last key outside the keyed range.
type Keyframes struct {
	keys []Key
}

func NewKeyframes(keys ...Key) (*Keyframes, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("curve: keyframe curve needs at least one key")
	}
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })
	return &Keyframes{keys: sorted}, nil
}

func (k *Keyframes) Eval(t float64) float64 {
	if k == nil || len(k.keys) == 0 {
		return 0
	}
	first := k.keys[0]
	if t <= first.T {
		return first.V
	}
	last := k.keys[len(k.keys)-1]
	if t >= last.T {
		return last.V
	}
	for i := 1; i < len(k.keys); i++ {
		a, b := k.keys[i-1], k.keys[i]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span <= 0 {
			return b.V
		}
		frac := (t - a.T) / span
		return a.V + frac*(b.V-a.V)
	}
	return last.V
}
