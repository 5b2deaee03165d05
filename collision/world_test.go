package collision

import (
	"math"
	"testing"

	"github.com/milk9111/charcontrol/common"
)

func floorWorld() *World {
	w := NewWorld()
	w.AddBox(0, -1, 10, 0, LayerGround)
	return w
}

func TestRayCastDown(t *testing.T) {
	w := floorWorld()

	hit, ok := w.RayCast(common.Vec3{X: 5, Y: 2}, common.Vec3{Y: -1}, 5, LayerGround)
	if !ok {
		t.Fatal("expected ray to hit the floor")
	}
	if math.Abs(hit.Distance-2) > 1e-6 {
		t.Fatalf("hit distance = %v, want 2", hit.Distance)
	}
	if math.Abs(hit.Point.Y) > 1e-6 {
		t.Fatalf("hit point Y = %v, want 0", hit.Point.Y)
	}
	if hit.Normal.Y < 0.99 {
		t.Fatalf("hit normal = %+v, want up", hit.Normal)
	}
}

func TestRayCastRespectsMask(t *testing.T) {
	w := floorWorld()
	if _, ok := w.RayCast(common.Vec3{X: 5, Y: 2}, common.Vec3{Y: -1}, 5, LayerPlatform); ok {
		t.Fatal("platform-layer ray should not hit ground-layer floor")
	}
}

func TestRayCastProjectsZOntoPlane(t *testing.T) {
	w := floorWorld()
	// An edge ray offset along Z resolves to the same plane line.
	hit, ok := w.RayCast(common.Vec3{X: 5, Y: 2, Z: 0.4}, common.Vec3{Y: -1}, 5, LayerGround)
	if !ok {
		t.Fatal("expected projected ray to hit the floor")
	}
	if math.Abs(hit.Distance-2) > 1e-6 {
		t.Fatalf("hit distance = %v, want 2", hit.Distance)
	}
}

func TestRayCastDegenerateDirection(t *testing.T) {
	w := floorWorld()
	// A pure Z direction degenerates to a point in the plane.
	if _, ok := w.RayCast(common.Vec3{X: 5, Y: 2}, common.Vec3{Z: 1}, 5, LayerGround); ok {
		t.Fatal("pure-Z ray should not hit")
	}
}

func TestOverlapSphere(t *testing.T) {
	w := floorWorld()
	cases := []struct {
		name   string
		center common.Vec3
		radius float64
		layers Mask
		want   bool
	}{
		{"touching", common.Vec3{X: 5, Y: 0.3}, 0.4, LayerGround, true},
		{"clear", common.Vec3{X: 5, Y: 1}, 0.4, LayerGround, false},
		{"wrong_layer", common.Vec3{X: 5, Y: 0.3}, 0.4, LayerPlatform, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := w.OverlapSphere(c.center, c.radius, c.layers); got != c.want {
				t.Fatalf("OverlapSphere = %v, want %v", got, c.want)
			}
		})
	}
}

func TestLayerByName(t *testing.T) {
	if m, ok := LayerByName("ground"); !ok || m != LayerGround {
		t.Fatalf("LayerByName(ground) = %v, %v", m, ok)
	}
	if _, ok := LayerByName("lava"); ok {
		t.Fatal("unknown layer name should not resolve")
	}
}

func TestCapsuleBodyVerticalClamp(t *testing.T) {
	w := floorWorld()
	b := NewCapsuleBody(w, common.Vec3{X: 5, Y: 1}, 0.4, 2, LayerGround)

	flags := b.Move(common.Vec3{Y: -0.5})
	if !flags.Below {
		t.Fatal("expected Below flag when pushing into the floor")
	}
	if got := b.Center(); math.Abs(got.Y-1) > 1e-6 {
		t.Fatalf("center Y = %v, want 1 (foot resting on floor)", got.Y)
	}
	if got := b.FootPosition(); math.Abs(got.Y) > 1e-6 {
		t.Fatalf("foot Y = %v, want 0", got.Y)
	}
}

func TestCapsuleBodyHorizontalClamp(t *testing.T) {
	w := floorWorld()
	w.AddBox(6, 0, 7, 3, LayerGround)
	b := NewCapsuleBody(w, common.Vec3{X: 5, Y: 1}, 0.4, 2, LayerGround)

	flags := b.Move(common.Vec3{X: 2})
	if !flags.Sides {
		t.Fatal("expected Sides flag when pushing into the wall")
	}
	if got := b.Center(); math.Abs(got.X-5.6) > 1e-6 {
		t.Fatalf("center X = %v, want 5.6 (stopped at radius from wall)", got.X)
	}
}

func TestCapsuleBodyFreeMove(t *testing.T) {
	w := floorWorld()
	b := NewCapsuleBody(w, common.Vec3{X: 5, Y: 3}, 0.4, 2, LayerGround)

	flags := b.Move(common.Vec3{X: 0.5, Y: -0.5})
	if flags.Below || flags.Above || flags.Sides {
		t.Fatalf("expected no contact flags, got %+v", flags)
	}
	got := b.Center()
	if math.Abs(got.X-5.5) > 1e-6 || math.Abs(got.Y-2.5) > 1e-6 {
		t.Fatalf("center = %+v, want (5.5, 2.5)", got)
	}
}

func TestOpenBodyGrounding(t *testing.T) {
	w := floorWorld()
	b := NewOpenBody(w, common.Vec3{X: 5, Y: 2}, 0.4, 1, LayerGround)

	grounded := false
	for i := 0; i < 60; i++ {
		b.Move(common.Vec3{Y: -0.2}, 0.05)
		if b.Grounded() {
			grounded = true
			break
		}
	}
	if !grounded {
		t.Fatal("open body never reported grounded while descending onto the floor")
	}
	if b.StartedSlide() {
		t.Fatal("flat ground should not report sliding")
	}
}

func TestOpenBodyHeadContact(t *testing.T) {
	w := NewWorld()
	w.AddBox(4, 3, 6, 4, LayerGround)
	b := NewOpenBody(w, common.Vec3{X: 5, Y: 2}, 0.4, 1, LayerGround)

	above := false
	for i := 0; i < 60; i++ {
		flags := b.Move(common.Vec3{Y: 0.2}, 0.05)
		if flags.Above {
			above = true
			break
		}
	}
	if !above {
		t.Fatal("open body never reported a head contact while rising into the ceiling")
	}
}

func TestOpenBodyGraceWindow(t *testing.T) {
	w := floorWorld()
	b := NewOpenBody(w, common.Vec3{X: 5, Y: 2}, 0.4, 1, LayerGround)
	b.GraceTicks = 3

	for i := 0; i < 60 && !b.Grounded(); i++ {
		b.Move(common.Vec3{Y: -0.2}, 0.05)
	}
	if !b.Grounded() {
		t.Fatal("body should land first")
	}

	// leave the ground fast; the grace window keeps grounded for a few ticks
	b.Move(common.Vec3{Y: 2}, 0.05)
	if !b.Grounded() {
		t.Fatal("grace window should keep grounded right after liftoff")
	}
	for i := 0; i < 10; i++ {
		b.Move(common.Vec3{Y: 2}, 0.05)
	}
	if b.Grounded() {
		t.Fatal("grace window should expire while airborne")
	}
}
