package generation

import (
	"ebiten-depths/components"
)

// placeStairsUp puts the up stairs on the inherited position when that cell is open
func (g *DungeonGenerator) placeStairsUp(prev *components.Position) {
	if prev == nil || g.gameMap.IsBlocked(prev.X, prev.Y) {
		return
	}
	g.gameMap.SetTile(prev.X, prev.Y, components.TileStairsUp)
}

// placeStairsDownAnywhere puts the down stairs on a uniformly random floor cell
func (g *DungeonGenerator) placeStairsDownAnywhere(_ *components.Position) error {
	candidates := g.gameMap.Positions(components.TileFloor)
	if len(candidates) == 0 {
		return ErrNoOpenArea
	}
	pos := candidates[g.rng.Intn(len(candidates))]
	g.gameMap.SetTile(pos.X, pos.Y, components.TileStairsDown)
	return nil
}

// placeStairsDownInRooms puts the down stairs in the centre of a random room,
// falling back to any floor cell when no centre is free
func (g *DungeonGenerator) placeStairsDownInRooms(rooms []components.Rect, prev *components.Position) error {
	var centers []components.Position
	for _, room := range rooms {
		c := room.Center()
		if g.gameMap.Tile(c.X, c.Y) == components.TileFloor {
			centers = append(centers, c)
		}
	}
	if len(centers) == 0 {
		return g.placeStairsDownAnywhere(prev)
	}
	pos := centers[g.rng.Intn(len(centers))]
	g.gameMap.SetTile(pos.X, pos.Y, components.TileStairsDown)
	return nil
}

// carveRoom turns every cell of room into floor
func (g *DungeonGenerator) carveRoom(room components.Rect) {
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			g.carve(x, y)
		}
	}
}

// carve sets a single interior cell to floor. The border ring is never touched.
func (g *DungeonGenerator) carve(x, y int) {
	if x < 1 || y < 1 || x > g.width-2 || y > g.height-2 {
		return
	}
	g.gameMap.SetTile(x, y, components.TileFloor)
}

// CreateCorridor digs an L-shaped corridor between two points, randomly
// choosing between horizontal-first or vertical-first
func (g *DungeonGenerator) CreateCorridor(from, to components.Position) {
	if g.rng.CoinFlip() {
		g.createHorizontalCorridor(from.X, to.X, from.Y)
		g.createVerticalCorridor(from.Y, to.Y, to.X)
	} else {
		g.createVerticalCorridor(from.Y, to.Y, from.X)
		g.createHorizontalCorridor(from.X, to.X, to.Y)
	}
}

// createHorizontalCorridor creates a horizontal corridor from x1 to x2 at y
func (g *DungeonGenerator) createHorizontalCorridor(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		g.carve(x, y)
	}
}

// createVerticalCorridor creates a vertical corridor from y1 to y2 at x
func (g *DungeonGenerator) createVerticalCorridor(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		g.carve(x, y)
	}
}

// roomSpawnAreas yields one spawn area per room holding its floor cells
func (g *DungeonGenerator) roomSpawnAreas(rooms []components.Rect) []SpawnArea {
	areas := make([]SpawnArea, 0, len(rooms))
	for _, room := range rooms {
		var cells []components.Position
		for _, p := range room.Positions() {
			if g.gameMap.Tile(p.X, p.Y) == components.TileFloor {
				cells = append(cells, p)
			}
		}
		areas = append(areas, newSpawnArea(cells))
	}
	return areas
}

// sectionSpawnAreas divides the map into square sections and yields one
// spawn area for every section that holds floor
func (g *DungeonGenerator) sectionSpawnAreas(sectionSize int) []SpawnArea {
	if sectionSize <= 0 {
		sectionSize = 1
	}
	var areas []SpawnArea
	for startY := 0; startY < g.height; startY += sectionSize {
		for startX := 0; startX < g.width; startX += sectionSize {
			var cells []components.Position
			for y := startY; y < startY+sectionSize && y < g.height; y++ {
				for x := startX; x < startX+sectionSize && x < g.width; x++ {
					if g.gameMap.Tile(x, y) == components.TileFloor {
						cells = append(cells, components.Position{X: x, Y: y})
					}
				}
			}
			if len(cells) > 0 {
				areas = append(areas, newSpawnArea(cells))
			}
		}
	}
	return areas
}
