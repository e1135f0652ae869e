package generation

import (
	"fmt"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// maxCaveAttempts bounds how often the noise is reseeded when the automaton
// leaves no live cells at all
const maxCaveAttempts = 20

// CellularAutomatonConfig tunes the cave automaton
type CellularAutomatonConfig struct {
	AliveOnStartChancePercent int  // chance for each interior cell to start alive
	StepLimit                 int  // number of smoothing steps
	DeathLimit                int  // a live cell survives with at least this many live neighbours
	BirthLimit                int  // a dead cell is born with more than this many live neighbours
	DeleteSmallCaves          bool // keep only the largest connected cave
	SpawnAreaCount            int  // how many copies of the open area SpawnAreas yields
}

// DefaultCellularAutomatonConfig returns the standard cave settings
func DefaultCellularAutomatonConfig() CellularAutomatonConfig {
	return CellularAutomatonConfig{
		AliveOnStartChancePercent: 45,
		StepLimit:                 8,
		DeathLimit:                3,
		BirthLimit:                4,
		DeleteSmallCaves:          true,
		SpawnAreaCount:            12,
	}
}

func (c CellularAutomatonConfig) validate() error {
	if c.AliveOnStartChancePercent < 0 || c.AliveOnStartChancePercent > 100 {
		return fmt.Errorf("alive chance %d%%: %w", c.AliveOnStartChancePercent, ErrInvalidConfig)
	}
	if c.StepLimit < 0 || c.DeathLimit < 0 || c.BirthLimit < 0 || c.SpawnAreaCount < 0 {
		return fmt.Errorf("negative automaton limits: %w", ErrInvalidConfig)
	}
	return nil
}

// caPlace is the automaton's scratch state for one cell
type caPlace struct {
	alive     bool
	visited   bool
	component int // -1 until a flood fill reaches the cell
	pos       components.Position
}

// CellularAutomatonGenerator carves a single organic cave out of random noise
type CellularAutomatonGenerator struct {
	DungeonGenerator
	config         CellularAutomatonConfig
	places         []caPlace
	componentSizes []int
}

// NewCellularAutomatonGenerator creates a cave generator for a width x height map
func NewCellularAutomatonGenerator(width, height int, r *rng.RandomNumberGenerator, config CellularAutomatonConfig, opts ...Option) (*CellularAutomatonGenerator, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	base, err := newDungeonGenerator("CAVE", width, height, r, opts)
	if err != nil {
		return nil, err
	}
	return &CellularAutomatonGenerator{DungeonGenerator: base, config: config}, nil
}

// Reset drops the automaton state and refills the map with walls
func (g *CellularAutomatonGenerator) Reset() {
	g.resetMap()
	g.places = nil
	g.componentSizes = nil
}

// Generate builds a cave, retrying until prevDownStairs lands on open floor
func (g *CellularAutomatonGenerator) Generate(prevDownStairs *components.Position) error {
	return g.generate(prevDownStairs, generationPass{
		reset:     g.Reset,
		build:     g.build,
		placeDown: g.placeStairsDownAnywhere,
		spawnAreas: func() []SpawnArea {
			return g.openAreaCopies()
		},
	})
}

func (g *CellularAutomatonGenerator) build() error {
	for attempt := 0; attempt < maxCaveAttempts; attempt++ {
		g.seedNoise()
		for step := 0; step < g.config.StepLimit; step++ {
			g.step()
		}
		g.findCaves()
		if len(g.componentSizes) == 0 {
			continue
		}
		if g.config.DeleteSmallCaves {
			g.keepLargestCave()
		}
		g.writeTiles()
		return nil
	}
	return ErrNoOpenArea
}

// seedNoise marks each interior cell alive with the configured chance.
// The border ring is never seeded and step never updates it, so it stays
// dead. Cells next to the edge therefore see fewer live neighbours than
// they would on a fully seeded grid, which pulls caves away from the border.
func (g *CellularAutomatonGenerator) seedNoise() {
	g.places = make([]caPlace, g.width*g.height)
	for i := range g.places {
		x, y := g.gameMap.XY(i)
		g.places[i] = caPlace{
			pos:       components.Position{X: x, Y: y},
			component: -1,
		}
		if !g.gameMap.IsBorder(x, y) {
			g.places[i].alive = g.rng.PercentChance(g.config.AliveOnStartChancePercent)
		}
	}
	g.componentSizes = nil
	g.writeTiles()
	g.snapshot("noise")
}

// step applies one synchronous automaton step computed from a snapshot
func (g *CellularAutomatonGenerator) step() {
	prev := make([]bool, len(g.places))
	for i := range g.places {
		prev[i] = g.places[i].alive
	}

	for i := range g.places {
		x, y := g.places[i].pos.X, g.places[i].pos.Y
		if g.gameMap.IsBorder(x, y) {
			continue
		}
		n := g.countAliveNeighbours(prev, x, y)
		if prev[i] {
			g.places[i].alive = n >= g.config.DeathLimit
		} else {
			g.places[i].alive = n > g.config.BirthLimit
		}
	}
	g.writeTiles()
	g.snapshot("automaton step")
}

// countAliveNeighbours counts live cells around (x, y). Out of bounds counts as dead.
func (g *CellularAutomatonGenerator) countAliveNeighbours(alive []bool, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.gameMap.InBounds(nx, ny) {
				continue
			}
			if alive[g.gameMap.Idx(nx, ny)] {
				count++
			}
		}
	}
	return count
}

// findCaves labels every 8-connected group of live cells with a component
// id using an explicit stack
func (g *CellularAutomatonGenerator) findCaves() {
	g.componentSizes = nil
	for i := range g.places {
		g.places[i].visited = false
		g.places[i].component = -1
	}

	for i := range g.places {
		if !g.places[i].alive || g.places[i].visited {
			continue
		}
		id := len(g.componentSizes)
		size := 0
		stack := []int{i}
		g.places[i].visited = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			g.places[cur].component = id
			size++

			cx, cy := g.places[cur].pos.X, g.places[cur].pos.Y
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := cx+dx, cy+dy
					if (dx == 0 && dy == 0) || !g.gameMap.InBounds(nx, ny) {
						continue
					}
					n := g.gameMap.Idx(nx, ny)
					if g.places[n].alive && !g.places[n].visited {
						g.places[n].visited = true
						stack = append(stack, n)
					}
				}
			}
		}
		g.componentSizes = append(g.componentSizes, size)
	}
}

// keepLargestCave kills every live cell outside the biggest component
func (g *CellularAutomatonGenerator) keepLargestCave() {
	largest := 0
	for id, size := range g.componentSizes {
		if size > g.componentSizes[largest] {
			largest = id
		}
	}
	for i := range g.places {
		if g.places[i].alive && g.places[i].component != largest {
			g.places[i].alive = false
			g.places[i].component = -1
		}
	}
	g.componentSizes = []int{g.componentSizes[largest]}
	for i := range g.places {
		if g.places[i].alive {
			g.places[i].component = 0
		}
	}
}

// writeTiles copies the automaton state into the map
func (g *CellularAutomatonGenerator) writeTiles() {
	for _, p := range g.places {
		if p.alive {
			g.gameMap.SetTile(p.pos.X, p.pos.Y, components.TileFloor)
		} else {
			g.gameMap.SetTile(p.pos.X, p.pos.Y, components.TileWall)
		}
	}
}

// openAreaCopies returns the whole open area repeated SpawnAreaCount times
func (g *CellularAutomatonGenerator) openAreaCopies() []SpawnArea {
	var open []components.Position
	for i, blocked := range g.gameMap.Blocked {
		if !blocked {
			x, y := g.gameMap.XY(i)
			open = append(open, components.Position{X: x, Y: y})
		}
	}
	areas := make([]SpawnArea, 0, g.config.SpawnAreaCount)
	for i := 0; i < g.config.SpawnAreaCount; i++ {
		areas = append(areas, newSpawnArea(open))
	}
	return areas
}
