package generation

import (
	"github.com/zyedidia/generic/mapset"

	"ebiten-depths/components"
)

// MapGenerator is the contract every level layout algorithm implements.
// Generate either leaves the generator holding a finished, validated map or
// returns an error; a partially built map is never handed out.
type MapGenerator interface {
	// Generate builds a new layout. prevDownStairs is the down-stairs
	// position of the level above, or nil for the first level.
	Generate(prevDownStairs *components.Position) error
	// Reset discards the working state and refills the map with walls
	Reset()
	// Map returns a copy of the current map
	Map() components.Map
	// SpawnAreas returns copies of the regions entities may be placed in
	SpawnAreas() []SpawnArea
	// History returns the recorded build snapshots, empty unless the
	// generator was created WithHistory
	History() []Snapshot
}

// SpawnArea is one placement locale: a set of open cells
type SpawnArea = mapset.Set[components.Position]

// newSpawnArea builds a spawn area from a list of cells
func newSpawnArea(cells []components.Position) SpawnArea {
	area := mapset.New[components.Position]()
	for _, c := range cells {
		area.Put(c)
	}
	return area
}

// cloneSpawnAreas deep copies areas so callers never alias generator state
func cloneSpawnAreas(areas []SpawnArea) []SpawnArea {
	out := make([]SpawnArea, 0, len(areas))
	for _, a := range areas {
		c := mapset.New[components.Position]()
		a.Each(func(p components.Position) {
			c.Put(p)
		})
		out = append(out, c)
	}
	return out
}
