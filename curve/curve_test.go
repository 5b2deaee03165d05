package curve

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestConstantCurve(t *testing.T) {
	c := Constant(1.35)
	for _, in := range []float64{-1, 0, 0.5, 1, 100} {
		if got := c.Eval(in); !almostEqual(got, 1.35) {
			t.Fatalf("Constant.Eval(%v) = %v, want 1.35", in, got)
		}
	}
}

func TestKeyframesEval(t *testing.T) {
	kf, err := NewKeyframes(Key{T: 1, V: 2}, Key{T: 0, V: 1}, Key{T: 0.5, V: 1.5})
	if err != nil {
		t.Fatalf("NewKeyframes: %v", err)
	}

	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"clamp_below", -0.5, 1},
		{"first_key", 0, 1},
		{"midpoint_first_span", 0.25, 1.25},
		{"inner_key", 0.5, 1.5},
		{"midpoint_second_span", 0.75, 1.75},
		{"last_key", 1, 2},
		{"clamp_above", 3, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := kf.Eval(c.in); !almostEqual(got, c.want) {
				t.Fatalf("Eval(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestKeyframesNeedsKeys(t *testing.T) {
	if _, err := NewKeyframes(); err == nil {
		t.Fatal("expected error for empty keyframe curve")
	}
}

func TestScriptCurve(t *testing.T) {
	s, err := CompileScript("0.5 + 0.5 * t")
	if err != nil {
		t.Fatalf("CompileScript: %v", err)
	}
	if got := s.Eval(0); !almostEqual(got, 0.5) {
		t.Fatalf("Eval(0) = %v, want 0.5", got)
	}
	if got := s.Eval(1); !almostEqual(got, 1.0) {
		t.Fatalf("Eval(1) = %v, want 1.0", got)
	}
}

func TestScriptCurveCompileError(t *testing.T) {
	if _, err := CompileScript("0.5 +"); err == nil {
		t.Fatal("expected compile error for malformed expression")
	}
}

func TestSpecUnmarshalForms(t *testing.T) {
	var doc struct {
		Constant Spec `yaml:"constant"`
		Keys     Spec `yaml:"keys"`
		Script   Spec `yaml:"script"`
		Omitted  Spec `yaml:"omitted"`
	}
	src := `
constant: 1.5
keys:
  - { t: 0, v: 1.0 }
  - { t: 1, v: 2.0 }
script:
  script: "2.0 - 0.4 * t"
`
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := doc.Constant.Curve().Eval(0.7); !almostEqual(got, 1.5) {
		t.Fatalf("constant spec eval = %v, want 1.5", got)
	}
	if got := doc.Keys.Curve().Eval(0.5); !almostEqual(got, 1.5) {
		t.Fatalf("keyframe spec eval = %v, want 1.5", got)
	}
	if got := doc.Script.Curve().Eval(1); !almostEqual(got, 1.6) {
		t.Fatalf("script spec eval = %v, want 1.6", got)
	}
	// omitted curves default to constant 1
	if got := doc.Omitted.Curve().Eval(0.3); !almostEqual(got, 1) {
		t.Fatalf("omitted spec eval = %v, want 1", got)
	}
}
