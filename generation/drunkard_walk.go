package generation

import (
	"fmt"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// DrunkardWalkConfig tunes the random-walk carver
type DrunkardWalkConfig struct {
	DrunkardLife   int // steps each drunkard takes before it expires
	MinAreaPercent int // stop once this share of the interior is floor
	SectionSize    int // side of the square sections spawn areas are cut into
}

// DefaultDrunkardWalkConfig returns the standard walk settings
func DefaultDrunkardWalkConfig() DrunkardWalkConfig {
	return DrunkardWalkConfig{
		DrunkardLife:   400,
		MinAreaPercent: 50,
		SectionSize:    8,
	}
}

func (c DrunkardWalkConfig) validate() error {
	if c.DrunkardLife < 1 {
		return fmt.Errorf("drunkard life %d: %w", c.DrunkardLife, ErrInvalidConfig)
	}
	if c.MinAreaPercent < 0 || c.MinAreaPercent > 100 {
		return fmt.Errorf("min area %d%%: %w", c.MinAreaPercent, ErrInvalidConfig)
	}
	if c.SectionSize < 1 {
		return fmt.Errorf("section size %d: %w", c.SectionSize, ErrInvalidConfig)
	}
	return nil
}

var cardinals = [4]components.Position{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// DrunkardWalkGenerator carves caves by sending random walkers out from a
// single start point until enough of the map is open
type DrunkardWalkGenerator struct {
	DungeonGenerator
	config    DrunkardWalkConfig
	drunkards int
	prev      *components.Position
}

// NewDrunkardWalkGenerator creates a random-walk generator for a width x height map
func NewDrunkardWalkGenerator(width, height int, r *rng.RandomNumberGenerator, config DrunkardWalkConfig, opts ...Option) (*DrunkardWalkGenerator, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	base, err := newDungeonGenerator("DRUNKARD", width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &DrunkardWalkGenerator{DungeonGenerator: base, config: config}, nil
}

// Reset refills the map with walls
func (g *DrunkardWalkGenerator) Reset() {
	g.resetMap()
	g.drunkards = 0
}

// Drunkards returns how many walkers the last build used
func (g *DrunkardWalkGenerator) Drunkards() int {
	return g.drunkards
}

// Generate carves the map starting from prevDownStairs, or the map centre
func (g *DrunkardWalkGenerator) Generate(prevDownStairs *components.Position) error {
	g.prev = prevDownStairs
	return g.generate(prevDownStairs, generationPass{
		reset:     g.Reset,
		build:     g.build,
		placeDown: g.placeStairsDownAnywhere,
		spawnAreas: func() []SpawnArea {
			return g.sectionSpawnAreas(g.config.SectionSize)
		},
	})
}

func (g *DrunkardWalkGenerator) build() error {
	// Walkers stay two cells away from the edge
	if g.width < 5 || g.height < 5 {
		return fmt.Errorf("map %dx%d too small to walk: %w", g.width, g.height, ErrNoOpenArea)
	}

	start := components.Position{X: g.width / 2, Y: g.height / 2}
	if g.prev != nil && g.gameMap.InBounds(g.prev.X, g.prev.Y) {
		start = *g.prev
	}

	interior := (g.width - 2) * (g.height - 2)
	target := (interior*g.config.MinAreaPercent + 99) / 100
	if reachable := (g.width - 4) * (g.height - 4); target > reachable {
		target = reachable
	}

	walkStart := components.Position{X: clamp(start.X, 2, g.width-3), Y: clamp(start.Y, 2, g.height-3)}

	floor := 0
	if start != walkStart && !g.gameMap.IsBorder(start.X, start.Y) {
		// Link an inherited stairs cell next to the border to the walk area
		for x := min(start.X, walkStart.X); x <= max(start.X, walkStart.X); x++ {
			if g.dig(x, start.Y) {
				floor++
			}
		}
		for y := min(start.Y, walkStart.Y); y <= max(start.Y, walkStart.Y); y++ {
			if g.dig(walkStart.X, y) {
				floor++
			}
		}
	}

	for floor < target {
		g.drunkards++
		cur := walkStart
		for step := 0; step < g.config.DrunkardLife; step++ {
			if g.dig(cur.X, cur.Y) {
				floor++
			}
			dir := cardinals[g.rng.Intn(len(cardinals))]
			cur.X = clamp(cur.X+dir.X, 2, g.width-3)
			cur.Y = clamp(cur.Y+dir.Y, 2, g.height-3)
		}
		g.snapshot("drunkard")
	}
	return nil
}

// dig opens an interior cell and reports whether it was solid before
func (g *DrunkardWalkGenerator) dig(x, y int) bool {
	if g.gameMap.IsBorder(x, y) || g.gameMap.Tile(x, y) == components.TileFloor {
		return false
	}
	g.carve(x, y)
	return true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Coverage returns the percentage of interior cells that are open
func (g *DrunkardWalkGenerator) Coverage() float64 {
	interior := (g.width - 2) * (g.height - 2)
	if interior <= 0 {
		return 0
	}
	open := 0
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if !g.gameMap.IsBlocked(x, y) {
				open++
			}
		}
	}
	return float64(open) * 100 / float64(interior)
}
