package curve

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script is a curve whose value is a tengo expression of `t`. The expression
// is compiled once at load time; evaluation clones the compiled script so a
// Script is safe to reuse across characters.
type Script struct {
	src      string
	compiled *tengo.Compiled
	last     float64
}

// CompileScript compiles src as a tengo expression of t. The expression is
// evaluated once at t=0 during compilation so malformed scripts fail at load
// rather than mid-tick.
func CompileScript(src string) (*Script, error) {
	script := tengo.NewScript([]byte("out := " + src))
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("t", 0.0); err != nil {
		return nil, fmt.Errorf("curve: script %q: %w", src, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("curve: compile script %q: %w", src, err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("curve: run script %q: %w", src, err)
	}
	out := compiled.Get("out")
	if out == nil {
		return nil, fmt.Errorf("curve: script %q produced no value", src)
	}
	return &Script{src: src, compiled: compiled, last: out.Float()}, nil
}

// Eval runs the compiled expression at t. Runtime errors fall back to the
// last good value so a bad hot-reloaded script cannot stall the tick loop.
func (s *Script) Eval(t float64) float64 {
	if s == nil || s.compiled == nil {
		return 0
	}
	c := s.compiled.Clone()
	if err := c.Set("t", t); err != nil {
		return s.last
	}
	if err := c.Run(); err != nil {
		return s.last
	}
	out := c.Get("out")
	if out == nil {
		return s.last
	}
	s.last = out.Float()
	return s.last
}

// Source returns the original expression text.
func (s *Script) Source() string {
	if s == nil {
		return ""
	}
	return s.src
}
