package generation

import (
	"errors"
	"testing"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// checkTree verifies the arena forms a binary tree with nested areas
func checkTree(t *testing.T, nodes []BSPNode, treeHeight int) {
	t.Helper()

	if len(nodes) == 0 || nodes[0].Parent != -1 {
		t.Fatal("tree has no root at index 0")
	}

	leaves := 0
	for i, n := range nodes {
		if n.Index != i {
			t.Errorf("node %d carries index %d", i, n.Index)
		}
		if i != 0 {
			parent := nodes[n.Parent]
			if !parent.Area.Contains(n.Area) {
				t.Errorf("node %d area %+v not inside parent %d area %+v", i, n.Area, n.Parent, parent.Area)
			}
			if parent.Level+1 != n.Level {
				t.Errorf("node %d level %d, parent level %d", i, n.Level, parent.Level)
			}
			if nodes[n.Sibling].Sibling != i || nodes[n.Sibling].Parent != n.Parent {
				t.Errorf("node %d sibling link broken", i)
			}
			if n.Area.Intersect(nodes[n.Sibling].Area) {
				t.Errorf("node %d overlaps its sibling", i)
			}
		}
		if n.IsLeaf() {
			leaves++
			if n.Room == nil {
				t.Errorf("leaf %d has no room", i)
				continue
			}
			if !n.Area.Contains(*n.Room) {
				t.Errorf("leaf %d room %+v outside area %+v", i, *n.Room, n.Area)
			}
		} else if nodes[n.Children[0]].Parent != i || nodes[n.Children[1]].Parent != i {
			t.Errorf("node %d children do not point back", i)
		}
	}
	if want := 1 << treeHeight; leaves != want {
		t.Errorf("tree has %d leaves, want %d", leaves, want)
	}
}

func TestBSPDungeonTree(t *testing.T) {
	r := rng.New(0)
	config := DefaultBSPConfig()
	gen, err := NewBSPDungeonGenerator(80, 50, r, config)
	if err != nil {
		t.Fatalf("NewBSPDungeonGenerator: %v", err)
	}
	for seed := int64(0); seed < 10; seed++ {
		r.Reseed(seed)
		if err := gen.Generate(nil); err != nil {
			t.Fatalf("seed=%d: Generate: %v", seed, err)
		}
		checkTree(t, gen.Nodes(), config.TreeHeight)

		m := gen.Map()
		checkLevelInvariants(t, m, nil)
		if regions := openRegions(m, false); regions != 1 {
			t.Errorf("seed=%d: %d disconnected regions, want 1", seed, regions)
		}

		for i, room := range gen.Rooms() {
			if room.Width() < config.RoomSizeMin || room.Height() < config.RoomSizeMin {
				t.Errorf("seed=%d: room %d is %dx%d, smaller than the minimum", seed, i, room.Width(), room.Height())
			}
		}
	}
}

func TestBSPInteriorFillsLeaves(t *testing.T) {
	r := rng.New(0)
	config := DefaultBSPConfig()
	gen, err := NewBSPInteriorGenerator(80, 50, r, config)
	if err != nil {
		t.Fatalf("NewBSPInteriorGenerator: %v", err)
	}
	for seed := int64(0); seed < 10; seed++ {
		r.Reseed(seed)
		if err := gen.Generate(nil); err != nil {
			t.Fatalf("seed=%d: Generate: %v", seed, err)
		}
		nodes := gen.Nodes()
		checkTree(t, nodes, config.TreeHeight)
		for i, n := range nodes {
			if n.IsLeaf() && *n.Room != n.Area {
				t.Errorf("seed=%d: leaf %d room %+v differs from area %+v", seed, i, *n.Room, n.Area)
			}
		}

		m := gen.Map()
		checkLevelInvariants(t, m, nil)
		if regions := openRegions(m, false); regions != 1 {
			t.Errorf("seed=%d: %d disconnected regions, want 1", seed, regions)
		}
	}
}

func TestBSPSpawnAreasPerRoom(t *testing.T) {
	gen, err := NewBSPDungeonGenerator(80, 50, rng.New(9), DefaultBSPConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := gen.Generate(nil); err != nil {
		t.Fatal(err)
	}
	rooms := gen.Rooms()
	areas := gen.SpawnAreas()
	if len(areas) != len(rooms) {
		t.Fatalf("%d spawn areas for %d rooms", len(areas), len(rooms))
	}
	m := gen.Map()
	for i, area := range areas {
		area.Each(func(p components.Position) {
			if !rooms[i].ContainsPoint(p.X, p.Y) {
				t.Errorf("area %d cell %v outside room %+v", i, p, rooms[i])
			}
			if m.Tile(p.X, p.Y) != components.TileFloor {
				t.Errorf("area %d cell %v is %v", i, p, m.Tile(p.X, p.Y))
			}
		})
	}
}

func TestBSPStairsDownAtRoomCentre(t *testing.T) {
	gen, err := NewBSPDungeonGenerator(80, 50, rng.New(21), DefaultBSPConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := gen.Generate(nil); err != nil {
		t.Fatal(err)
	}
	m := gen.Map()
	down := m.Positions(components.TileStairsDown)[0]
	for _, room := range gen.Rooms() {
		if room.Center() == down {
			return
		}
	}
	t.Errorf("down stairs at %v is not a room centre", down)
}

func TestBSPSplitErrors(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		config  BSPConfig
		wantErr error
	}{
		{"area too small", 12, 12, BSPConfig{TreeHeight: 1, RoomSizeMin: 5}, ErrTooSmallBSPAreaToSplit},
		{"too deep for the map", 40, 30, BSPConfig{TreeHeight: 8, RoomSizeMin: 5}, ErrTooSmallBSPAreaToSplit},
		{"no interior", 2, 20, BSPConfig{TreeHeight: 1, RoomSizeMin: 1}, ErrTooSmallBSPAreaToSplit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen, err := NewBSPDungeonGenerator(tc.width, tc.height, rng.New(1), tc.config)
			if err != nil {
				t.Fatalf("constructor: %v", err)
			}
			if err := gen.Generate(nil); !errors.Is(err, tc.wantErr) {
				t.Errorf("Generate err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBSPSplitArea(t *testing.T) {
	gen, err := NewBSPDungeonGenerator(40, 40, rng.New(3), BSPConfig{TreeHeight: 1, RoomSizeMin: 4})
	if err != nil {
		t.Fatal(err)
	}
	area := components.Rect{X1: 1, Y1: 1, X2: 30, Y2: 20}
	for i := 0; i < 100; i++ {
		for _, o := range []splitOrientation{splitHorizontal, splitVertical} {
			a, b, ok := gen.splitArea(area, o)
			if !ok {
				t.Fatalf("orientation %d: no split found", o)
			}
			if !area.Contains(a) || !area.Contains(b) || a.Intersect(b) {
				t.Fatalf("bad split %+v / %+v of %+v", a, b, area)
			}
			if !gen.fits(a) || !gen.fits(b) {
				t.Fatalf("children %+v / %+v too small", a, b)
			}
		}
	}

	// Too short for a horizontal cut, still wide enough for a vertical one
	flat := components.Rect{X1: 1, Y1: 1, X2: 30, Y2: 7}
	if _, _, ok := gen.splitArea(flat, splitHorizontal); ok {
		t.Error("split a 7-high area horizontally")
	}
	if !gen.canSplit(flat, splitVertical) {
		t.Error("canSplit rejected a vertical split of a 30x7 area")
	}
}

func TestBSPConfigValidation(t *testing.T) {
	if _, err := NewBSPDungeonGenerator(40, 40, nil, BSPConfig{TreeHeight: 2, RoomSizeMin: 0}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("room size 0: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewBSPInteriorGenerator(40, 0, nil, DefaultBSPConfig()); !errors.Is(err, ErrIncorrectMapDimensions) {
		t.Errorf("zero height: err = %v, want ErrIncorrectMapDimensions", err)
	}
}
