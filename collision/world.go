package collision

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/charcontrol/common"
)

// RayHit describes the nearest geometry hit by a ray cast.
type RayHit struct {
	Point    common.Vec3
	Normal   common.Vec3
	Distance float64
}

// World is the plane-backed collision provider. It owns a chipmunk space
// holding static level geometry plus any attached character bodies. Gravity
// in the space is zero: characters integrate their own vertical motion.
type World struct {
	space *cp.Space
}

func NewWorld() *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &World{space: space}
}

// Space exposes the underlying chipmunk space for movement primitives.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddBox adds a static axis-aligned box on the given layers. Coordinates are
// world-plane meters with min/max corners.
func (w *World) AddBox(minX, minY, maxX, maxY float64, layers Mask) {
	if w == nil || w.space == nil {
		return
	}
	bb := cp.BB{L: minX, B: minY, R: maxX, T: maxY}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetFilter(layers.shapeFilter())
	w.space.AddShape(shape)
}

// AddSegment adds a static segment on the given layers, e.g. a slope.
func (w *World) AddSegment(ax, ay, bx, by float64, layers Mask) {
	if w == nil || w.space == nil {
		return
	}
	shape := cp.NewSegment(w.space.StaticBody, cp.Vector{X: ax, Y: ay}, cp.Vector{X: bx, Y: by}, 0.05)
	shape.SetFriction(0.8)
	shape.SetFilter(layers.shapeFilter())
	w.space.AddShape(shape)
}

// RayCast casts a ray from origin along dir for at most maxDist against the
// given layers and returns the nearest hit. Origins and directions are
// projected onto the simulation plane, so edge rays offset along Z resolve
// to the same plane line as their source ray.
func (w *World) RayCast(origin, dir common.Vec3, maxDist float64, layers Mask) (RayHit, bool) {
	if w == nil || w.space == nil || maxDist <= 0 {
		return RayHit{}, false
	}
	d := cp.Vector{X: dir.X, Y: dir.Y}
	if d.Length() < common.Epsilon {
		// Pure Z direction degenerates to a point in the plane.
		return RayHit{}, false
	}
	d = d.Normalize()
	a := cp.Vector{X: origin.X, Y: origin.Y}
	b := a.Add(d.Mult(maxDist))
	info := w.space.SegmentQueryFirst(a, b, 0, layers.queryFilter())
	if info.Shape == nil {
		return RayHit{}, false
	}
	return RayHit{
		Point:    common.Vec3{X: info.Point.X, Y: info.Point.Y},
		Normal:   common.Vec3{X: info.Normal.X, Y: info.Normal.Y},
		Distance: info.Alpha * maxDist,
	}, true
}

// OverlapSphere reports whether a sphere of the given radius at center
// touches any geometry on the given layers. In the plane this is a circle
// query.
func (w *World) OverlapSphere(center common.Vec3, radius float64, layers Mask) bool {
	if w == nil || w.space == nil {
		return false
	}
	info := w.space.PointQueryNearest(cp.Vector{X: center.X, Y: center.Y}, radius, layers.queryFilter())
	return info != nil && info.Shape != nil
}
