// Sandbox is a visual playground for the character controller: a small
// ledge level, one character driven by either backend, with ground rays and
// the predicted landing trajectory drawn on top. Tuning in
// profiles/character.yaml hot-reloads while the sandbox runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/milk9111/charcontrol/collision"
	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/controller"
	"github.com/milk9111/charcontrol/profiles"
)

const (
	screenWidth  = 960
	screenHeight = 540
	pixelsPerM   = 40.0
	tickDt       = 1.0 / 60.0
)

type rect struct {
	minX, minY, maxX, maxY float64
}

type keyboardInput struct{}

func (keyboardInput) JumpHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeySpace)
}

type game struct {
	backend string
	profile string

	world *collision.World
	rects []rect
	spec  *profiles.CharacterSpec
	brain *controller.Brain

	watcher *profiles.Watcher
	zone    string
}

func newGame(backend, profile string) (*game, error) {
	spec, err := profiles.LoadCharacterSpec(profile)
	if err != nil {
		return nil, err
	}

	g := &game{backend: backend, profile: profile, spec: spec}
	g.buildWorld()
	if err := g.buildCharacter(common.Vec3{X: 2, Y: spec.Capsule.Height / 2}); err != nil {
		return nil, err
	}

	if watcher, err := profiles.NewWatcher("profiles"); err == nil {
		g.watcher = watcher
	} else {
		fmt.Println("sandbox: tuning watcher disabled:", err)
	}
	return g, nil
}

func (g *game) buildWorld() {
	g.world = collision.NewWorld()
	g.rects = g.rects[:0]
	boxes := []struct {
		r    rect
		mask collision.Mask
	}{
		{rect{0, -1, 24, 0}, collision.LayerGround},
		{rect{8, 3, 12, 3.5}, collision.LayerPlatform},
		{rect{4, 4.8, 6.5, 5.3}, collision.LayerGround},
		{rect{17, 0, 24, 2.5}, collision.LayerGround},
	}
	for _, b := range boxes {
		g.world.AddBox(b.r.minX, b.r.minY, b.r.maxX, b.r.maxY, b.mask)
		g.rects = append(g.rects, b.r)
	}
	// steep slope to show slide reporting on the open backend
	g.world.AddSegment(14, 0, 17, 2.5, collision.LayerGround)
}

func (g *game) buildCharacter(center common.Vec3) error {
	mask, err := g.spec.GroundCheck.Mask()
	if err != nil {
		return err
	}

	var ent controller.Entity
	switch g.backend {
	case "capsule":
		ent.Capsule = collision.NewCapsuleBody(g.world, center, g.spec.Capsule.Radius, g.spec.Capsule.Height, mask)
	case "open":
		ent.Open = collision.NewOpenBody(g.world, center, g.spec.Capsule.Radius, g.spec.Capsule.Height, mask)
	default:
		return fmt.Errorf("sandbox: unknown backend %q", g.backend)
	}

	g.brain = controller.NewBrain(keyboardInput{}, g.spec.MaxForwardSpeed)
	if err := g.brain.Initialize(ent, g.spec.Gravity.Profile(), g.spec.GroundCheck.Distance); err != nil {
		return err
	}

	events := g.brain.Adapter().Vertical().Events()
	events.OnLanded(func() { fmt.Println("sandbox: landed") })
	events.OnJumpVelocitySet(func(v float64) { fmt.Printf("sandbox: jump velocity %.2f\n", v) })
	events.OnStartedFalling(func(d float64) { fmt.Printf("sandbox: started falling, predicted drop %.2f\n", d) })

	g.brain.SetMovementZoneObserver(func(zone string, ok bool) {
		if ok {
			fmt.Println("sandbox: entered zone", zone)
		} else {
			fmt.Println("sandbox: left all zones")
		}
	})
	return nil
}

func (g *game) footPosition() common.Vec3 {
	return g.brain.Adapter().FootWorldPosition()
}

func (g *game) reload() {
	spec, err := profiles.LoadCharacterSpec(g.profile)
	if err != nil {
		fmt.Println("sandbox: reload failed:", err)
		return
	}
	center := g.footPosition().Add(common.Vec3{Y: spec.Capsule.Height / 2})
	g.spec = spec
	g.buildWorld()
	if err := g.buildCharacter(center); err != nil {
		fmt.Println("sandbox: rebuild failed:", err)
	}
}

func (g *game) Update() error {
	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			fmt.Println("sandbox: tuning changed:", name)
			g.reload()
		default:
		}
	}

	var moveX float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		moveX += 1
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.brain.Jump(g.spec.JumpSpeed)
	}

	planar := common.Vec3{X: moveX * g.spec.MaxForwardSpeed * tickDt}
	g.brain.Update(planar, tickDt)

	zone := ""
	if g.footPosition().X > 8 {
		zone = "ledge"
	}
	if zone != g.zone {
		g.zone = zone
		g.brain.ChangeMovementZone(zone, zone != "")
	}
	return nil
}

func toScreen(p common.Vec3) (float64, float64) {
	return p.X * pixelsPerM, screenHeight - p.Y*pixelsPerM
}

func (g *game) Draw(screen *ebiten.Image) {
	for _, r := range g.rects {
		x, y := toScreen(common.Vec3{X: r.minX, Y: r.maxY})
		w := (r.maxX - r.minX) * pixelsPerM
		h := (r.maxY - r.minY) * pixelsPerM
		ebitenutil.DrawRect(screen, x, y, w, h, colornames.Darkslategray)
	}
	sx, sy := toScreen(common.Vec3{X: 14, Y: 0})
	ex, ey := toScreen(common.Vec3{X: 17, Y: 2.5})
	ebitenutil.DrawLine(screen, sx, sy, ex, ey, colornames.Darkslategray)

	adapter := g.brain.Adapter()
	foot := adapter.FootWorldPosition()
	r := adapter.Radius()
	h := g.spec.Capsule.Height
	cx, cy := toScreen(foot.Add(common.Vec3{X: -r, Y: h}))
	ebitenutil.DrawRect(screen, cx, cy, 2*r*pixelsPerM, h*pixelsPerM, colornames.Crimson)

	if g.backend == "capsule" {
		length := g.spec.GroundCheck.Distance * h
		center := foot.Add(common.Vec3{Y: h / 2})
		for _, off := range []float64{0, r, -r} {
			ax, ay := toScreen(center.Add(common.Vec3{X: off}))
			bx, by := toScreen(center.Add(common.Vec3{X: off, Y: -length}))
			ebitenutil.DrawLine(screen, ax, ay, bx, by, colornames.Yellow)
		}
	}

	if _, ok := adapter.PredictLanding(); ok || len(adapter.TrajectorySamples()) > 0 {
		for _, s := range adapter.TrajectorySamples() {
			px, py := toScreen(s)
			ebitenutil.DrawRect(screen, px-1, py-1, 3, 3, colornames.Lightskyblue)
		}
	}

	vert := adapter.Vertical()
	dist := adapter.PredictedFallDistance()
	distText := "inf"
	if !math.IsInf(dist, 1) {
		distText = fmt.Sprintf("%.2f", dist)
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"backend: %s  phase: %s  grounded: %v  slide: %v\nvy: %.2f  norm vy: %.2f  air: %.2f  fall: %.2f\nplanar speed: %.2f  predicted drop: %s",
		g.backend, vert.Phase(), adapter.IsGroundedCheck(), adapter.StartedSlide(),
		vert.Velocity(), vert.NormalizedSpeed(), vert.AirTime(), vert.FallTime(),
		g.brain.PlanarSpeed(), distText,
	), 0, 0)
}

func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	backend := flag.String("backend", "capsule", "movement backend: capsule or open")
	profile := flag.String("profile", "character.yaml", "character tuning asset")
	flag.Parse()

	g, err := newGame(*backend, *profile)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
	}()

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("charcontrol sandbox")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
