// Package collision provides the ground-query provider and the two
// character movement primitives, both backed by jakecoffman/cp. The
// simulation plane maps world X (forward) and Y (vertical, up positive) onto
// chipmunk's 2D space; world Z is projected away before any query.
package collision

import "github.com/jakecoffman/cp"

// Mask is a collision layer bitmask. Static geometry is created with the
// layers it belongs to; queries pass the layers they want to hit.
type Mask uint

const (
	LayerGround Mask = 1 << iota
	LayerPlatform
	LayerHazard
	// LayerCharacter marks character bodies so ground and trajectory
	// queries never hit the character itself.
	LayerCharacter

	LayerNone Mask = 0
	LayerAll  Mask = ^Mask(0)
)

var layerNames = map[string]Mask{
	"ground":    LayerGround,
	"platform":  LayerPlatform,
	"hazard":    LayerHazard,
	"character": LayerCharacter,
}

// LayerByName resolves a configuration layer name to its mask bit.
func LayerByName(name string) (Mask, bool) {
	m, ok := layerNames[name]
	return m, ok
}

// queryFilter builds a shape filter that hits only shapes on the given
// layers.
func (m Mask) queryFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(cp.ALL_CATEGORIES), uint(m))
}

// shapeFilter builds a shape filter for geometry that lives on the given
// layers.
func (m Mask) shapeFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(m), uint(cp.ALL_CATEGORIES))
}
