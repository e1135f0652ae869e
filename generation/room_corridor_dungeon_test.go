package generation

import (
	"errors"
	"testing"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

func TestBasicRoomsExactCount(t *testing.T) {
	r := rng.New(0)
	config := BasicRoomConfig{RoomsMin: 6, RoomsMax: 6, RoomSizeMin: 8, RoomSizeMax: 8}
	gen, err := NewBasicRoomCorridorGenerator(50, 50, r, config)
	if err != nil {
		t.Fatalf("NewBasicRoomCorridorGenerator: %v", err)
	}

	for seed := int64(0); seed < 10; seed++ {
		r.Reseed(seed)
		if err := gen.Generate(nil); err != nil {
			t.Fatalf("seed=%d: Generate: %v", seed, err)
		}

		rooms := gen.Rooms()
		if len(rooms) != 6 {
			t.Fatalf("seed=%d: placed %d rooms, want 6", seed, len(rooms))
		}
		for i := range rooms {
			if rooms[i].Width() != 8 || rooms[i].Height() != 8 {
				t.Errorf("seed=%d: room %d is %dx%d, want 8x8", seed, i, rooms[i].Width(), rooms[i].Height())
			}
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Intersect(rooms[j]) {
					t.Errorf("seed=%d: rooms %d %+v and %d %+v overlap", seed, i, rooms[i], j, rooms[j])
				}
			}
		}

		m := gen.Map()
		checkLevelInvariants(t, m, nil)
		if regions := openRegions(m, false); regions != 1 {
			t.Errorf("seed=%d: %d disconnected regions, want 1", seed, regions)
		}
		if got := len(gen.SpawnAreas()); got != 6 {
			t.Errorf("seed=%d: %d spawn areas, want one per room", seed, got)
		}
	}
}

func TestBasicRoomsCountWithinRange(t *testing.T) {
	r := rng.New(0)
	config := DefaultBasicRoomConfig()
	gen, err := NewBasicRoomCorridorGenerator(80, 50, r, config)
	if err != nil {
		t.Fatal(err)
	}
	for seed := int64(0); seed < 10; seed++ {
		r.Reseed(seed)
		if err := gen.Generate(nil); err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}
		n := len(gen.Rooms())
		if n < config.RoomsMin || n > config.RoomsMax {
			t.Errorf("seed=%d: %d rooms, want %d..%d", seed, n, config.RoomsMin, config.RoomsMax)
		}
		for _, room := range gen.Rooms() {
			if room.X1 < 1 || room.Y1 < 1 || room.X2 > 78 || room.Y2 > 48 {
				t.Errorf("seed=%d: room %+v touches the border", seed, room)
			}
		}
	}
}

func TestBasicRoomsConnectInOrder(t *testing.T) {
	gen, err := NewBasicRoomCorridorGenerator(60, 40, rng.New(31), DefaultBasicRoomConfig())
	if err != nil {
		t.Fatal(err)
	}
	gen.Reset()
	if err := gen.GenerateRooms(2); err != nil {
		t.Fatalf("GenerateRooms: %v", err)
	}
	gen.ConnectRooms()

	rooms := gen.Rooms()
	a, b := rooms[0].Center(), rooms[1].Center()
	m := gen.Map()

	// One of the two L-shaped paths between the centres must be fully open
	horizontalFirst := true
	for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
		horizontalFirst = horizontalFirst && m.Tile(x, a.Y) == components.TileFloor
	}
	for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
		horizontalFirst = horizontalFirst && m.Tile(b.X, y) == components.TileFloor
	}
	verticalFirst := true
	for y := min(a.Y, b.Y); y <= max(a.Y, b.Y); y++ {
		verticalFirst = verticalFirst && m.Tile(a.X, y) == components.TileFloor
	}
	for x := min(a.X, b.X); x <= max(a.X, b.X); x++ {
		verticalFirst = verticalFirst && m.Tile(x, b.Y) == components.TileFloor
	}
	if !horizontalFirst && !verticalFirst {
		t.Errorf("no open L-shaped corridor between %v and %v", a, b)
	}
}

func TestBasicRoomsConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config BasicRoomConfig
	}{
		{"min above max", BasicRoomConfig{RoomsMin: 5, RoomsMax: 3, RoomSizeMin: 4, RoomSizeMax: 6}},
		{"zero rooms", BasicRoomConfig{RoomsMin: 0, RoomsMax: 3, RoomSizeMin: 4, RoomSizeMax: 6}},
		{"room bigger than map", BasicRoomConfig{RoomsMin: 1, RoomsMax: 1, RoomSizeMin: 4, RoomSizeMax: 30}},
		{"size min above max", BasicRoomConfig{RoomsMin: 1, RoomsMax: 2, RoomSizeMin: 7, RoomSizeMax: 6}},
		{"more rooms than the area holds", BasicRoomConfig{RoomsMin: 40, RoomsMax: 40, RoomSizeMin: 4, RoomSizeMax: 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewBasicRoomCorridorGenerator(30, 20, nil, tc.config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := NewBasicRoomCorridorGenerator(30, 0, nil, DefaultBasicRoomConfig()); !errors.Is(err, ErrIncorrectMapDimensions) {
		t.Errorf("zero height: err = %v, want ErrIncorrectMapDimensions", err)
	}
}

func TestBasicRoomsGiveUpWhenCrowded(t *testing.T) {
	// At most 15 rooms of 4x4 fit with a wall between them, so 20 never do
	config := BasicRoomConfig{RoomsMin: 20, RoomsMax: 20, RoomSizeMin: 4, RoomSizeMax: 4}
	gen, err := NewBasicRoomCorridorGenerator(30, 20, rng.New(2), config)
	if err != nil {
		t.Fatalf("NewBasicRoomCorridorGenerator: %v", err)
	}
	if err := gen.Generate(nil); !errors.Is(err, ErrRoomsDoNotFit) {
		t.Fatalf("err = %v, want ErrRoomsDoNotFit", err)
	}
	if m := gen.Map(); m.Count(components.TileStairsDown) != 0 {
		t.Error("failed generation left down stairs behind")
	}
}

func TestBasicRoomConfigForSmallMaps(t *testing.T) {
	if got, want := BasicRoomConfigFor(80, 50), DefaultBasicRoomConfig(); got != want {
		t.Errorf("BasicRoomConfigFor(80, 50) = %+v, want the defaults %+v", got, want)
	}

	sizes := [][2]int{{5, 5}, {12, 40}, {20, 20}, {30, 20}}
	for _, size := range sizes {
		w, h := size[0], size[1]
		config := BasicRoomConfigFor(w, h)
		if err := config.validate(w, h); err != nil {
			t.Errorf("%dx%d: scaled config %+v invalid: %v", w, h, config, err)
			continue
		}

		r := rng.New(0)
		gen, err := NewGenerator(DungeonTypeBasicRooms, w, h, r)
		if err != nil {
			t.Fatalf("%dx%d: NewGenerator: %v", w, h, err)
		}
		for seed := int64(0); seed < 10; seed++ {
			r.Reseed(seed)
			if err := gen.Generate(nil); err != nil {
				t.Fatalf("%dx%d seed=%d: Generate: %v", w, h, seed, err)
			}
			checkLevelInvariants(t, gen.Map(), nil)
		}
	}
}
