package render

import "ebiten-depths/components"

// Wall connection bits used to pick a box drawing glyph
const (
	WallConnectTop    = 1
	WallConnectRight  = 2
	WallConnectBottom = 4
	WallConnectLeft   = 8
)

// wallGlyphs is indexed by the connection mask of a perimeter wall
var wallGlyphs = [16]rune{
	0:  '#', // pillar
	1:  '│',
	2:  '─',
	3:  '└',
	4:  '│',
	5:  '│',
	6:  '┌',
	7:  '├',
	8:  '─',
	9:  '┘',
	10: '─',
	11: '┴',
	12: '┐',
	13: '┤',
	14: '┬',
	15: '┼',
}

// rockGlyph is drawn for solid cells that touch no open ground
const rockGlyph = ' '

// isPerimeterWall reports whether (x, y) is solid and touches an open cell,
// diagonals included
func isPerimeterWall(m *components.Map, x, y int) bool {
	if !m.InBounds(x, y) || !m.IsBlocked(x, y) {
		return false
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && m.InBounds(x+dx, y+dy) && !m.IsBlocked(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

// WallMask computes the connection bitmask of the wall at (x, y), linking
// only to neighbouring perimeter walls
func WallMask(m *components.Map, x, y int) int {
	mask := 0
	if isPerimeterWall(m, x, y-1) {
		mask |= WallConnectTop
	}
	if isPerimeterWall(m, x+1, y) {
		mask |= WallConnectRight
	}
	if isPerimeterWall(m, x, y+1) {
		mask |= WallConnectBottom
	}
	if isPerimeterWall(m, x-1, y) {
		mask |= WallConnectLeft
	}
	return mask
}

// Glyph returns the character drawn for the cell at (x, y)
func Glyph(m *components.Map, mapping *components.TileMappingComponent, x, y int) rune {
	tile := m.Tile(x, y)
	if tile != components.TileWall {
		return mapping.GetTileDefinition(tile).Glyph
	}
	if !isPerimeterWall(m, x, y) {
		return rockGlyph
	}
	return wallGlyphs[WallMask(m, x, y)]
}
