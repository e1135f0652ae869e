package generation

import (
	"fmt"
	"log"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// maxGenerationAttempts bounds how often a generator rebuilds the whole
// layout, either after a structural failure or because the inherited
// stairs cell did not end up on open floor
const maxGenerationAttempts = 20

// DungeonGenerator holds the state every layout algorithm shares: the
// random source, the working map and the history recorder
type DungeonGenerator struct {
	name       string
	width      int
	height     int
	rng        *rng.RandomNumberGenerator
	gameMap    components.Map
	spawnAreas []SpawnArea
	recorder   Recorder
}

// newDungeonGenerator validates the dimensions and prepares an all-wall map.
// A nil random source is replaced by a clock-seeded one.
func newDungeonGenerator(name string, width, height int, r *rng.RandomNumberGenerator, opts []Option) (DungeonGenerator, error) {
	if width <= 0 || height <= 0 {
		return DungeonGenerator{}, fmt.Errorf("%s %dx%d: %w", name, width, height, ErrIncorrectMapDimensions)
	}
	if r == nil {
		r = rng.NewFromTime()
	}
	o := buildOptions(opts)
	return DungeonGenerator{
		name:     name,
		width:    width,
		height:   height,
		rng:      r,
		gameMap:  components.NewMap(width, height),
		recorder: o.recorder,
	}, nil
}

// resetMap refills the working map with walls and forgets spawn areas
func (g *DungeonGenerator) resetMap() {
	g.gameMap = components.NewMap(g.width, g.height)
	g.spawnAreas = nil
}

// Map returns a copy of the working map
func (g *DungeonGenerator) Map() components.Map {
	return g.gameMap.Clone()
}

// SpawnAreas returns copies of the spawn areas computed by the last Generate
func (g *DungeonGenerator) SpawnAreas() []SpawnArea {
	return cloneSpawnAreas(g.spawnAreas)
}

// History returns the snapshots recorded so far
func (g *DungeonGenerator) History() []Snapshot {
	return g.recorder.Snapshots()
}

func (g *DungeonGenerator) snapshot(label string) {
	g.recorder.Record(&g.gameMap, label)
}

// generationPass describes one algorithm to the shared retry loop
type generationPass struct {
	reset      func()
	build      func() error
	placeDown  func(prev *components.Position) error
	spawnAreas func() []SpawnArea
}

// generate runs pass until the inherited stairs cell is plain floor, then
// finalises the map. Build and finalisation errors are retried up to the
// attempt budget and the last one is returned once it runs out, leaving the
// map all walls. When only the stairs check keeps failing, the last layout
// is kept and the up stairs stay unplaced.
func (g *DungeonGenerator) generate(prev *components.Position, pass generationPass) error {
	g.recorder.Clear()

	// Nothing on the border ring can ever be floor, so rebuilding cannot help
	retryStairs := prev != nil && g.gameMap.InBounds(prev.X, prev.Y) && !g.gameMap.IsBorder(prev.X, prev.Y)

	for attempt := 1; attempt <= maxGenerationAttempts; attempt++ {
		pass.reset()
		err := pass.build()
		if err == nil {
			if retryStairs && g.gameMap.Tile(prev.X, prev.Y) != components.TileFloor {
				if attempt < maxGenerationAttempts {
					continue
				}
				log.Printf("%s: inherited stairs at (%d,%d) still blocked after %d attempts, leaving them unplaced",
					g.name, prev.X, prev.Y, attempt)
			}
			if err = g.finalize(prev, pass); err == nil {
				return nil
			}
			// Never leave a map with up stairs but no way down
			pass.reset()
		}

		if attempt == maxGenerationAttempts {
			return fmt.Errorf("%s: giving up after %d attempts: %w", g.name, attempt, err)
		}
	}
	return nil
}

// finalize forces the border, places both stairs and computes spawn areas
func (g *DungeonGenerator) finalize(prev *components.Position, pass generationPass) error {
	g.gameMap.ApplyBorder()
	g.gameMap.PopulateBlocked()

	g.placeStairsUp(prev)
	if err := pass.placeDown(prev); err != nil {
		return err
	}

	g.spawnAreas = pass.spawnAreas()
	g.snapshot("stairs placed")
	return nil
}
