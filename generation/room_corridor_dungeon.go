package generation

import (
	"fmt"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// maxRoomSamples bounds the rejected candidates per requested room
const maxRoomSamples = 500

// BasicRoomConfig tunes the room-and-corridor generator. Rooms keep a one
// cell wall between each other, so two rooms that would merely touch are
// rejected too; this is stricter than a plain overlap test. Placement gives
// up with ErrRoomsDoNotFit when the map is too crowded for the room count.
type BasicRoomConfig struct {
	RoomsMin    int
	RoomsMax    int
	RoomSizeMin int
	RoomSizeMax int
}

// DefaultBasicRoomConfig returns settings suited to an 80x50 map
func DefaultBasicRoomConfig() BasicRoomConfig {
	return BasicRoomConfig{
		RoomsMin:    6,
		RoomsMax:    10,
		RoomSizeMin: 5,
		RoomSizeMax: 10,
	}
}

// BasicRoomConfigFor scales the default settings down to a width x height
// map so the rooms comfortably fit
func BasicRoomConfigFor(width, height int) BasicRoomConfig {
	c := DefaultBasicRoomConfig()
	side := min(width, height) - 2
	c.RoomSizeMax = max(1, min(c.RoomSizeMax, side/3))
	c.RoomSizeMin = min(c.RoomSizeMin, c.RoomSizeMax)

	pitch := c.RoomSizeMax + 1
	fit := (width - 2) * (height - 2) / (2 * pitch * pitch)
	c.RoomsMax = max(1, min(c.RoomsMax, fit))
	c.RoomsMin = min(c.RoomsMin, c.RoomsMax)
	return c
}

func (c BasicRoomConfig) validate(width, height int) error {
	if c.RoomsMin < 1 || c.RoomsMax < c.RoomsMin {
		return fmt.Errorf("rooms %d..%d: %w", c.RoomsMin, c.RoomsMax, ErrInvalidConfig)
	}
	if c.RoomSizeMin < 1 || c.RoomSizeMax < c.RoomSizeMin {
		return fmt.Errorf("room size %d..%d: %w", c.RoomSizeMin, c.RoomSizeMax, ErrInvalidConfig)
	}
	if c.RoomSizeMax > width-2 || c.RoomSizeMax > height-2 {
		return fmt.Errorf("room size %d does not fit a %dx%d map: %w", c.RoomSizeMax, width, height, ErrInvalidConfig)
	}
	// Even packed edge to edge, each room needs its size plus one wall line per axis
	pitch := c.RoomSizeMin + 1
	if c.RoomsMin*pitch*pitch > (width-1)*(height-1) {
		return fmt.Errorf("%d rooms of %d cells cannot fit a %dx%d map: %w",
			c.RoomsMin, c.RoomSizeMin, width, height, ErrInvalidConfig)
	}
	return nil
}

// BasicRoomCorridorGenerator scatters non-overlapping rectangular rooms
// and joins them in placement order with L-shaped corridors
type BasicRoomCorridorGenerator struct {
	DungeonGenerator
	config BasicRoomConfig
	rooms  []components.Rect
}

// NewBasicRoomCorridorGenerator creates a room-and-corridor generator for a width x height map
func NewBasicRoomCorridorGenerator(width, height int, r *rng.RandomNumberGenerator, config BasicRoomConfig, opts ...Option) (*BasicRoomCorridorGenerator, error) {
	base, err := newDungeonGenerator("ROOMS", width, height, r, opts)
	if err != nil {
		return nil, err
	}
	if err := config.validate(width, height); err != nil {
		return nil, err
	}
	return &BasicRoomCorridorGenerator{DungeonGenerator: base, config: config}, nil
}

// Reset forgets the placed rooms and refills the map with walls
func (g *BasicRoomCorridorGenerator) Reset() {
	g.resetMap()
	g.rooms = nil
}

// Rooms returns the placed rooms in insertion order
func (g *BasicRoomCorridorGenerator) Rooms() []components.Rect {
	out := make([]components.Rect, len(g.rooms))
	copy(out, g.rooms)
	return out
}

// Generate places rooms and corridors, rebuilding while prevDownStairs is not open floor
func (g *BasicRoomCorridorGenerator) Generate(prevDownStairs *components.Position) error {
	return g.generate(prevDownStairs, generationPass{
		reset: g.Reset,
		build: g.build,
		placeDown: func(prev *components.Position) error {
			return g.placeStairsDownInRooms(g.rooms, prev)
		},
		spawnAreas: func() []SpawnArea {
			return g.roomSpawnAreas(g.rooms)
		},
	})
}

func (g *BasicRoomCorridorGenerator) build() error {
	if err := g.GenerateRooms(g.rng.Range(g.config.RoomsMin, g.config.RoomsMax)); err != nil {
		return err
	}
	g.ConnectRooms()
	return nil
}

// GenerateRooms keeps sampling rooms until count of them fit without
// touching each other. Every room keeps a one cell wall ring to itself.
// After maxRoomSamples rejected candidates per room it returns ErrRoomsDoNotFit.
func (g *BasicRoomCorridorGenerator) GenerateRooms(count int) error {
	for rejected := 0; len(g.rooms) < count; {
		if rejected >= count*maxRoomSamples {
			return fmt.Errorf("placed %d of %d rooms: %w", len(g.rooms), count, ErrRoomsDoNotFit)
		}
		w := g.rng.Range(g.config.RoomSizeMin, g.config.RoomSizeMax)
		h := g.rng.Range(g.config.RoomSizeMin, g.config.RoomSizeMax)
		x := g.rng.Range(1, g.width-1-w)
		y := g.rng.Range(1, g.height-1-h)
		room := components.NewRect(x, y, w, h)

		bounds := room.Grow(1)
		ok := true
		for _, other := range g.rooms {
			if bounds.Intersect(other) {
				ok = false
				break
			}
		}
		if !ok {
			rejected++
			continue
		}

		g.carveRoom(room)
		g.rooms = append(g.rooms, room)
		g.snapshot("room")
	}
	return nil
}

// ConnectRooms joins each room to the one placed before it
func (g *BasicRoomCorridorGenerator) ConnectRooms() {
	for i := 1; i < len(g.rooms); i++ {
		g.CreateCorridor(g.rooms[i-1].Center(), g.rooms[i].Center())
		g.snapshot("corridor")
	}
}
