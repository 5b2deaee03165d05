package controller

import (
	"math"
	"testing"

	"github.com/milk9111/charcontrol/common"
)

const dt = 0.016

func TestGroundedIdleProducesNoMotion(t *testing.T) {
	s := NewVerticalState(testProfile())

	for i := 0; i < 10; i++ {
		out := s.Update(dt, true, 0, false, nil)
		if out != (common.Vec3{}) {
			t.Fatalf("tick %d: displacement = %+v, want zero", i, out)
		}
	}
	if s.AirTime() != 0 || s.FallTime() != 0 {
		t.Fatalf("air/fall time = %v/%v, want 0/0", s.AirTime(), s.FallTime())
	}
	if s.Phase() != PhaseGrounded {
		t.Fatalf("phase = %v, want grounded", s.Phase())
	}
}

func TestJumpFirstTickScenario(t *testing.T) {
	// initialJumpVelocity = 5, terminal = 10, baseline = -9.8, constant
	// curves, dt = 0.016.
	s := NewVerticalState(testProfile())
	s.SetJumpVelocity(5)

	out := s.Update(dt, true, 0, true, nil)

	wantV := 5 + (-9.8)*dt
	if math.Abs(s.Velocity()-wantV) > 1e-9 {
		t.Fatalf("velocity = %v, want %v", s.Velocity(), wantV)
	}
	if s.Phase() != PhaseRising {
		t.Fatalf("phase = %v, want rising", s.Phase())
	}
	wantY := wantV * dt
	if math.Abs(out.Y-wantY) > 1e-9 || out.X != 0 || out.Z != 0 {
		t.Fatalf("displacement = %+v, want (0, %v, 0)", out, wantY)
	}
	if s.Velocity() < -10 {
		t.Fatalf("velocity %v broke the terminal floor", s.Velocity())
	}
}

func TestRisingArcIsMonotonic(t *testing.T) {
	s := NewVerticalState(testProfile())
	s.SetJumpVelocity(5)

	prev := s.Velocity()
	for i := 0; i < 20 && s.Velocity() >= 0; i++ {
		s.Update(dt, false, 0, true, nil)
		if s.Velocity() > prev+common.Epsilon {
			t.Fatalf("tick %d: velocity rose from %v to %v without a new jump", i, prev, s.Velocity())
		}
		prev = s.Velocity()
	}
}

func TestTerminalVelocityFloor(t *testing.T) {
	p := testProfile()
	p.TerminalVelocity = 1
	s := NewVerticalState(p)

	for i := 0; i < 300; i++ {
		s.Update(dt, false, 0, false, nil)
		if s.Velocity() < -1-common.Epsilon {
			t.Fatalf("tick %d: velocity %v exceeds terminal floor -1", i, s.Velocity())
		}
	}
}

func TestLandedSuppressedOnSingleTickFall(t *testing.T) {
	s := NewVerticalState(testProfile())
	landed := 0
	s.Events().OnLanded(func() { landed++ })

	// A one-tick false fall: falling with grounded already true, so the
	// whole episode is exactly one deltaTime.
	s.SetJumpVelocity(-1)
	s.Update(dt, true, 0, false, nil)

	if landed != 0 {
		t.Fatalf("landed fired %d times on a single-tick episode, want 0", landed)
	}
	if s.AirTime() != 0 || s.FallTime() != 0 {
		t.Fatalf("air/fall time = %v/%v, want reset to 0/0", s.AirTime(), s.FallTime())
	}
	if s.InitialJumpVelocity() != 0 {
		t.Fatalf("initial jump velocity = %v, want 0 after landing", s.InitialJumpVelocity())
	}
}

func TestLandedFiresOncePerEpisode(t *testing.T) {
	s := NewVerticalState(testProfile())
	landed := 0
	s.Events().OnLanded(func() { landed++ })

	s.SetJumpVelocity(-1)
	s.Update(dt, false, 0, false, nil)
	for i := 0; i < 10 && landed == 0; i++ {
		s.Update(dt, true, 0, false, nil)
	}
	if landed != 1 {
		t.Fatalf("landed fired %d times, want exactly 1", landed)
	}

	// further grounded ticks stay quiet
	for i := 0; i < 10; i++ {
		s.Update(dt, true, 0, false, nil)
	}
	if landed != 1 {
		t.Fatalf("landed refired while grounded, count %d", landed)
	}
}

func TestStartedFallingFiresOnceWithFreshFallTime(t *testing.T) {
	s := NewVerticalState(testProfile())
	started := 0
	var fallTimeAtEvent float64
	var payload float64
	s.Events().OnStartedFalling(func(d float64) {
		started++
		fallTimeAtEvent = s.FallTime()
		payload = d
	})

	// walk off a ledge: no jump velocity, ground disappears
	for i := 0; i < 30; i++ {
		s.Update(dt, false, 0, false, func() float64 { return 2.5 })
	}

	if started != 1 {
		t.Fatalf("started-falling fired %d times, want exactly 1", started)
	}
	if fallTimeAtEvent <= 0 || fallTimeAtEvent > dt+common.Epsilon {
		t.Fatalf("fallTime at event = %v, want just crossed from 0", fallTimeAtEvent)
	}
	if payload != 2.5 {
		t.Fatalf("event payload = %v, want predicted distance 2.5", payload)
	}
}

func TestStartedFallingDefaultsToUnboundedDistance(t *testing.T) {
	s := NewVerticalState(testProfile())
	payload := 0.0
	s.Events().OnStartedFalling(func(d float64) { payload = d })

	for i := 0; i < 5; i++ {
		s.Update(dt, false, 0, false, nil)
	}
	if !math.IsInf(payload, 1) {
		t.Fatalf("payload without predictor = %v, want +Inf", payload)
	}
}

func TestJumpVelocitySetNotification(t *testing.T) {
	s := NewVerticalState(testProfile())
	var got []float64
	s.Events().OnJumpVelocitySet(func(v float64) { got = append(got, v) })

	s.SetJumpVelocity(5)
	s.SetJumpVelocity(3) // re-jump is not gated at this layer

	if len(got) != 2 || got[0] != 5 || got[1] != 3 {
		t.Fatalf("jump-velocity-set payloads = %v, want [5 3]", got)
	}
	if s.InitialJumpVelocity() != 3 {
		t.Fatalf("initial jump velocity = %v, want 3", s.InitialJumpVelocity())
	}
}

func TestCancelUpwardMotion(t *testing.T) {
	s := NewVerticalState(testProfile())
	s.SetJumpVelocity(5)
	s.CancelUpwardMotion()
	if s.Velocity() != 0 || s.InitialJumpVelocity() != 0 {
		t.Fatalf("velocity/initial = %v/%v, want 0/0", s.Velocity(), s.InitialJumpVelocity())
	}
}

func TestNormalizedSpeed(t *testing.T) {
	cases := []struct {
		name  string
		setup func(s *VerticalState)
		want  float64
	}{
		{
			name:  "rising_at_launch",
			setup: func(s *VerticalState) { s.SetJumpVelocity(5) },
			want:  1,
		},
		{
			name: "zero_initial_velocity_guards_division",
			setup: func(s *VerticalState) {
				for i := 0; i < 5; i++ {
					s.Update(dt, false, 0, false, nil)
				}
			},
			want: 0,
		},
		{
			name:  "idle_grounded",
			setup: func(s *VerticalState) {},
			want:  0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewVerticalState(testProfile())
			c.setup(s)
			if got := s.NormalizedSpeed(); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("NormalizedSpeed = %v, want %v", got, c.want)
			}
		})
	}
}

func TestNormalizedSpeedClampedWhileFalling(t *testing.T) {
	p := testProfile()
	p.FallGravityMultiplier = 0.1
	s := NewVerticalState(p)
	s.SetJumpVelocity(0.5)
	for i := 0; i < 200; i++ {
		s.Update(dt, false, 0, false, nil)
	}
	got := s.NormalizedSpeed()
	if got < -1 || got > 1 {
		t.Fatalf("NormalizedSpeed = %v, want within [-1, 1]", got)
	}
}
