package generation

import (
	"fmt"
	"log"
	"strings"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// DungeonType enum to identify different dungeon generation methods
type DungeonType int

const (
	DungeonTypeRandom DungeonType = iota
	DungeonTypeCellular
	DungeonTypeBSPDungeon
	DungeonTypeBSPInterior
	DungeonTypeDrunkardWalk
	DungeonTypeBasicRooms
)

var dungeonTypeNames = map[DungeonType]string{
	DungeonTypeRandom:       "random",
	DungeonTypeCellular:     "cave",
	DungeonTypeBSPDungeon:   "bsp",
	DungeonTypeBSPInterior:  "interior",
	DungeonTypeDrunkardWalk: "drunkard",
	DungeonTypeBasicRooms:   "rooms",
}

func (d DungeonType) String() string {
	if name, ok := dungeonTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DungeonType(%d)", int(d))
}

// ParseDungeonType maps a generator name such as "cave" or "bsp" to its type
func ParseDungeonType(name string) (DungeonType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range dungeonTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown generator %q", name)
}

// NewGenerator builds a generator of the given kind with default settings,
// room sizes and counts scaled to the map for DungeonTypeBasicRooms.
// DungeonTypeRandom picks one of the concrete kinds using r.
func NewGenerator(kind DungeonType, width, height int, r *rng.RandomNumberGenerator, opts ...Option) (MapGenerator, error) {
	if r == nil {
		r = rng.NewFromTime()
	}
	if kind == DungeonTypeRandom {
		kind = DungeonType(r.Range(int(DungeonTypeCellular), int(DungeonTypeBasicRooms)))
	}

	var (
		gen MapGenerator
		err error
	)
	switch kind {
	case DungeonTypeCellular:
		var g *CellularAutomatonGenerator
		g, err = NewCellularAutomatonGenerator(width, height, r, DefaultCellularAutomatonConfig(), opts...)
		gen = g
	case DungeonTypeBSPDungeon:
		var g *BSPDungeonGenerator
		g, err = NewBSPDungeonGenerator(width, height, r, DefaultBSPConfig(), opts...)
		gen = g
	case DungeonTypeBSPInterior:
		var g *BSPInteriorGenerator
		g, err = NewBSPInteriorGenerator(width, height, r, DefaultBSPConfig(), opts...)
		gen = g
	case DungeonTypeDrunkardWalk:
		var g *DrunkardWalkGenerator
		g, err = NewDrunkardWalkGenerator(width, height, r, DefaultDrunkardWalkConfig(), opts...)
		gen = g
	case DungeonTypeBasicRooms:
		var g *BasicRoomCorridorGenerator
		g, err = NewBasicRoomCorridorGenerator(width, height, r, BasicRoomConfigFor(width, height), opts...)
		gen = g
	default:
		return nil, fmt.Errorf("unsupported dungeon type %v", kind)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// Level is a finished layout ready to be populated
type Level struct {
	Depth      int
	Map        components.Map
	SpawnAreas []SpawnArea
}

// StairsDown returns the position of the down stairs
func (l *Level) StairsDown() (components.Position, bool) {
	return l.find(components.TileStairsDown)
}

// StairsUp returns the position of the up stairs, if the level has them
func (l *Level) StairsUp() (components.Position, bool) {
	return l.find(components.TileStairsUp)
}

func (l *Level) find(t components.TileType) (components.Position, bool) {
	for i, tile := range l.Map.Tiles {
		if tile == t {
			x, y := l.Map.XY(i)
			return components.Position{X: x, Y: y}, true
		}
	}
	return components.Position{}, false
}

// BuildLevel runs gen and collects its map and spawn areas
func BuildLevel(gen MapGenerator, prevDownStairs *components.Position) (*Level, error) {
	if err := gen.Generate(prevDownStairs); err != nil {
		return nil, err
	}
	return &Level{
		Map:        gen.Map(),
		SpawnAreas: gen.SpawnAreas(),
	}, nil
}

// BuildLevels generates depth consecutive levels, feeding each level's
// down stairs into the next one as its inherited up stairs
func BuildLevels(gen MapGenerator, depth int) ([]*Level, error) {
	var (
		levels []*Level
		prev   *components.Position
	)
	for d := 1; d <= depth; d++ {
		level, err := BuildLevel(gen, prev)
		if err != nil {
			return levels, fmt.Errorf("level %d: %w", d, err)
		}
		level.Depth = d
		levels = append(levels, level)

		down, ok := level.StairsDown()
		if !ok {
			return levels, fmt.Errorf("level %d: no down stairs", d)
		}
		prev = &down
		log.Printf("LEVEL: depth %d built, %d spawn areas, down stairs at (%d,%d)",
			d, len(level.SpawnAreas), down.X, down.Y)
	}
	return levels, nil
}
