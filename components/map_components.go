package components

import (
	"image/color"
	"strings"
)

// TileType classifies a single map cell
type TileType int

// Tile types
const (
	TileFloor TileType = iota
	TileWall
	TileStairsUp
	TileStairsDown

	// TileTestWall is only used while a generator is probing a layout and
	// never survives into a finished map
	TileTestWall
)

func (t TileType) String() string {
	switch t {
	case TileFloor:
		return "Floor"
	case TileWall:
		return "Wall"
	case TileStairsUp:
		return "StairsUp"
	case TileStairsDown:
		return "StairsDown"
	case TileTestWall:
		return "TestWall"
	}
	return "Unknown"
}

// IsSolid reports whether the tile blocks movement
func (t TileType) IsSolid() bool {
	return t == TileWall || t == TileTestWall
}

// Position is an integer grid coordinate
type Position struct {
	X, Y int
}

// Map stores a level layout as a flat row-major tile slice plus a
// parallel blocked cache indexed the same way
type Map struct {
	Width   int
	Height  int
	Tiles   []TileType
	Blocked []bool
}

// NewMap creates a new map with the given dimensions filled with walls
func NewMap(width, height int) Map {
	m := Map{
		Width:   width,
		Height:  height,
		Tiles:   make([]TileType, width*height),
		Blocked: make([]bool, width*height),
	}
	for i := range m.Tiles {
		m.Tiles[i] = TileWall
		m.Blocked[i] = true
	}
	return m
}

// Idx converts a coordinate into an index into Tiles
func (m *Map) Idx(x, y int) int {
	return y*m.Width + x
}

// XY converts a Tiles index back into a coordinate
func (m *Map) XY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

// InBounds reports whether (x, y) lies on the map
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Tile returns the tile at (x, y). Out of bounds is reported as a wall.
func (m *Map) Tile(x, y int) TileType {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[m.Idx(x, y)]
}

// SetTile sets the tile at the given position and keeps the blocked cache in sync
func (m *Map) SetTile(x, y int, t TileType) {
	if m.InBounds(x, y) {
		idx := m.Idx(x, y)
		m.Tiles[idx] = t
		m.Blocked[idx] = t.IsSolid()
	}
}

// IsBlocked returns true if the cell at (x, y) cannot be walked on.
// Out of bounds is considered blocked.
func (m *Map) IsBlocked(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Blocked[m.Idx(x, y)]
}

// IsWalkable is the inverse of IsBlocked
func (m *Map) IsWalkable(x, y int) bool {
	return !m.IsBlocked(x, y)
}

// PopulateBlocked rebuilds the blocked cache from the tiles
func (m *Map) PopulateBlocked() {
	if len(m.Blocked) != len(m.Tiles) {
		m.Blocked = make([]bool, len(m.Tiles))
	}
	for i, t := range m.Tiles {
		m.Blocked[i] = t.IsSolid()
	}
}

// Fill overwrites every tile with t
func (m *Map) Fill(t TileType) {
	for i := range m.Tiles {
		m.Tiles[i] = t
		m.Blocked[i] = t.IsSolid()
	}
}

// ApplyBorder turns the outer ring of the map into walls
func (m *Map) ApplyBorder() {
	for x := 0; x < m.Width; x++ {
		m.SetTile(x, 0, TileWall)
		m.SetTile(x, m.Height-1, TileWall)
	}
	for y := 0; y < m.Height; y++ {
		m.SetTile(0, y, TileWall)
		m.SetTile(m.Width-1, y, TileWall)
	}
}

// IsBorder reports whether (x, y) sits on the outer ring
func (m *Map) IsBorder(x, y int) bool {
	return x == 0 || y == 0 || x == m.Width-1 || y == m.Height-1
}

// Count returns how many tiles of type t the map holds
func (m *Map) Count(t TileType) int {
	n := 0
	for _, tile := range m.Tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Positions returns the coordinates of every tile of type t in index order
func (m *Map) Positions(t TileType) []Position {
	var out []Position
	for i, tile := range m.Tiles {
		if tile == t {
			x, y := m.XY(i)
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

// Clone returns a deep copy of the map
func (m *Map) Clone() Map {
	c := Map{
		Width:   m.Width,
		Height:  m.Height,
		Tiles:   make([]TileType, len(m.Tiles)),
		Blocked: make([]bool, len(m.Blocked)),
	}
	copy(c.Tiles, m.Tiles)
	copy(c.Blocked, m.Blocked)
	return c
}

// String dumps the map using the default tile glyphs, one row per line
func (m *Map) String() string {
	mapping := NewTileMappingComponent()
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sb.WriteRune(mapping.GetTileDefinition(m.Tiles[m.Idx(x, y)]).Glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TileDefinition describes the visual appearance of a tile type
type TileDefinition struct {
	Glyph rune        // The character used by text renderers
	FG    color.Color // Foreground color
	BG    color.Color // Background color (optional)
}

// NewTileDefinition creates a tile definition using a character code
func NewTileDefinition(glyph rune, fg color.Color) TileDefinition {
	return TileDefinition{
		Glyph: glyph,
		FG:    fg,
	}
}

// TileMappingComponent maps tile types to their visual representation
type TileMappingComponent struct {
	Definitions map[TileType]TileDefinition
}

// NewTileMappingComponent creates a default tile mapping
func NewTileMappingComponent() *TileMappingComponent {
	mapping := &TileMappingComponent{
		Definitions: make(map[TileType]TileDefinition),
	}
	mapping.Definitions[TileFloor] = NewTileDefinition('.', color.RGBA{64, 64, 64, 255})
	mapping.Definitions[TileWall] = NewTileDefinition('#', color.RGBA{128, 128, 128, 255})
	mapping.Definitions[TileStairsDown] = NewTileDefinition('>', color.RGBA{255, 255, 255, 255})
	mapping.Definitions[TileStairsUp] = NewTileDefinition('<', color.RGBA{255, 255, 255, 255})
	mapping.Definitions[TileTestWall] = NewTileDefinition('%', color.RGBA{200, 120, 40, 255})

	// Floors get a faint background so open ground reads clearly in the viewer
	floor := mapping.Definitions[TileFloor]
	floor.BG = color.RGBA{24, 24, 32, 255}
	mapping.Definitions[TileFloor] = floor

	return mapping
}

// GetTileDefinition returns the visual definition for a given tile type
func (t *TileMappingComponent) GetTileDefinition(tileType TileType) TileDefinition {
	if def, exists := t.Definitions[tileType]; exists {
		return def
	}

	// Return a default if the tile type isn't defined
	return TileDefinition{
		Glyph: '?',
		FG:    color.RGBA{255, 0, 255, 255}, // Magenta for undefined tiles
	}
}
