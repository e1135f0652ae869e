package generation

import (
	"errors"
	"testing"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

func TestCellularAutomatonSmallCave(t *testing.T) {
	r := rng.New(0)
	gen, err := NewCellularAutomatonGenerator(20, 20, r, DefaultCellularAutomatonConfig())
	if err != nil {
		t.Fatalf("NewCellularAutomatonGenerator: %v", err)
	}

	r.Reseed(42)
	if err := gen.Generate(nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	m := gen.Map()
	if m.Width != 20 || m.Height != 20 || len(m.Tiles) != 400 {
		t.Fatalf("map is %dx%d with %d tiles", m.Width, m.Height, len(m.Tiles))
	}
	checkLevelInvariants(t, m, nil)
	if regions := openRegions(m, true); regions != 1 {
		t.Errorf("cave has %d separate regions, want 1", regions)
	}
}

func TestCellularAutomatonSingleCaveAcrossSeeds(t *testing.T) {
	r := rng.New(0)
	gen, err := NewCellularAutomatonGenerator(60, 40, r, DefaultCellularAutomatonConfig())
	if err != nil {
		t.Fatal(err)
	}
	for seed := int64(0); seed < 15; seed++ {
		r.Reseed(seed)
		if err := gen.Generate(nil); err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}
		m := gen.Map()
		checkLevelInvariants(t, m, nil)
		if regions := openRegions(m, true); regions != 1 {
			t.Errorf("seed=%d: %d separate regions, want 1", seed, regions)
		}
	}
}

func TestCellularAutomatonKeepsSmallCavesWhenAsked(t *testing.T) {
	config := DefaultCellularAutomatonConfig()
	config.DeleteSmallCaves = false

	keepAll, err := NewCellularAutomatonGenerator(60, 40, rng.New(77), config)
	if err != nil {
		t.Fatal(err)
	}
	pruned, err := NewCellularAutomatonGenerator(60, 40, rng.New(77), DefaultCellularAutomatonConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := keepAll.Generate(nil); err != nil {
		t.Fatal(err)
	}
	if err := pruned.Generate(nil); err != nil {
		t.Fatal(err)
	}

	all := keepAll.Map()
	kept := pruned.Map()
	open := func(m components.Map) int {
		n := 0
		for _, b := range m.Blocked {
			if !b {
				n++
			}
		}
		return n
	}
	if open(all) < open(kept) {
		t.Errorf("unpruned cave has %d open cells, fewer than pruned %d", open(all), open(kept))
	}
}

func TestCellularAutomatonStepRules(t *testing.T) {
	gen, err := NewCellularAutomatonGenerator(5, 5, rng.New(1), DefaultCellularAutomatonConfig())
	if err != nil {
		t.Fatal(err)
	}

	// A plus shape in the middle of a 5x5 map
	gen.places = make([]caPlace, 25)
	for i := range gen.places {
		x, y := gen.gameMap.XY(i)
		gen.places[i] = caPlace{pos: components.Position{X: x, Y: y}, component: -1}
	}
	for _, p := range []components.Position{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 3}} {
		gen.places[gen.gameMap.Idx(p.X, p.Y)].alive = true
	}

	gen.step()

	wantAlive := map[components.Position]bool{
		{X: 2, Y: 2}: true,  // 4 live neighbours
		{X: 1, Y: 2}: true,  // centre plus two arms
		{X: 1, Y: 1}: false, // 3 live neighbours is not enough to be born
		{X: 3, Y: 3}: false,
	}
	for p, want := range wantAlive {
		if got := gen.places[gen.gameMap.Idx(p.X, p.Y)].alive; got != want {
			t.Errorf("cell %v alive = %v, want %v", p, got, want)
		}
	}
}

func TestCellularAutomatonBorderStaysDead(t *testing.T) {
	config := DefaultCellularAutomatonConfig()
	config.AliveOnStartChancePercent = 100
	gen, err := NewCellularAutomatonGenerator(6, 6, rng.New(1), config)
	if err != nil {
		t.Fatal(err)
	}

	gen.seedNoise()
	alive := make([]bool, len(gen.places))
	for i, p := range gen.places {
		alive[i] = p.alive
		if border := gen.gameMap.IsBorder(p.pos.X, p.pos.Y); p.alive == border {
			t.Errorf("seeded cell %v alive = %v on border = %v", p.pos, p.alive, border)
		}
	}

	// The dead ring leaves an interior corner with only its three interior neighbours
	if n := gen.countAliveNeighbours(alive, 1, 1); n != 3 {
		t.Errorf("corner neighbours = %d, want 3", n)
	}
	if n := gen.countAliveNeighbours(alive, 2, 1); n != 5 {
		t.Errorf("edge neighbours = %d, want 5", n)
	}

	for step := 0; step < config.StepLimit; step++ {
		gen.step()
	}
	for _, p := range gen.places {
		if gen.gameMap.IsBorder(p.pos.X, p.pos.Y) && p.alive {
			t.Errorf("border cell %v came alive", p.pos)
		}
	}
}

func TestCellularAutomatonSpawnAreasRepeatOpenArea(t *testing.T) {
	gen, err := NewCellularAutomatonGenerator(40, 30, rng.New(5), DefaultCellularAutomatonConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := gen.Generate(nil); err != nil {
		t.Fatal(err)
	}
	areas := gen.SpawnAreas()
	if len(areas) != 12 {
		t.Fatalf("got %d spawn areas, want 12", len(areas))
	}

	m := gen.Map()
	open := 0
	for _, b := range m.Blocked {
		if !b {
			open++
		}
	}
	for i, a := range areas {
		if a.Size() != open {
			t.Errorf("area %d has %d cells, want %d", i, a.Size(), open)
		}
	}
}

func TestCellularAutomatonConstructionErrors(t *testing.T) {
	if _, err := NewCellularAutomatonGenerator(0, 10, nil, DefaultCellularAutomatonConfig()); !errors.Is(err, ErrIncorrectMapDimensions) {
		t.Errorf("zero width: err = %v, want ErrIncorrectMapDimensions", err)
	}
	config := DefaultCellularAutomatonConfig()
	config.AliveOnStartChancePercent = 140
	if _, err := NewCellularAutomatonGenerator(10, 10, nil, config); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("alive chance 140: err = %v, want ErrInvalidConfig", err)
	}
}

func TestCellularAutomatonWithoutInteriorFails(t *testing.T) {
	gen, err := NewCellularAutomatonGenerator(2, 2, rng.New(1), DefaultCellularAutomatonConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := gen.Generate(nil); !errors.Is(err, ErrNoOpenArea) {
		t.Errorf("2x2 cave: err = %v, want ErrNoOpenArea", err)
	}
}
