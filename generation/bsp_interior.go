package generation

import (
	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// BSPInteriorGenerator partitions the map like BSPDungeonGenerator but
// turns each leaf's whole area into its room, giving a building interior
// of wall-separated chambers
type BSPInteriorGenerator struct {
	bspGenerator
}

// NewBSPInteriorGenerator creates a BSP interior generator for a width x height map
func NewBSPInteriorGenerator(width, height int, r *rng.RandomNumberGenerator, config BSPConfig, opts ...Option) (*BSPInteriorGenerator, error) {
	b, err := newBSPGenerator("BSP-INTERIOR", width, height, r, config, opts)
	if err != nil {
		return nil, err
	}
	g := &BSPInteriorGenerator{bspGenerator: b}
	g.roomFor = func(area components.Rect) components.Rect {
		return area
	}
	return g, nil
}
