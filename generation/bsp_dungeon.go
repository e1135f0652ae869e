package generation

import (
	"fmt"

	"ebiten-depths/components"
	"ebiten-depths/rng"
)

// maxSplitAttempts bounds how many split coordinates are tried for one
// orientation before falling back to the other
const maxSplitAttempts = 200

// redundantConnections is how many extra leaf-to-leaf corridors are dug
// after the tree has been joined
const redundantConnections = 3

type splitOrientation int

const (
	// splitHorizontal cuts with a horizontal line: first child above, second below
	splitHorizontal splitOrientation = iota
	// splitVertical cuts with a vertical line: first child left, second right
	splitVertical
)

func (o splitOrientation) other() splitOrientation {
	if o == splitHorizontal {
		return splitVertical
	}
	return splitHorizontal
}

// BSPNode is one entry of the flat partition tree. Nodes refer to each
// other by index into the arena; -1 means none.
type BSPNode struct {
	Index    int
	Level    int
	Parent   int
	Sibling  int
	Children *[2]int
	Area     components.Rect
	Room     *components.Rect
	split    splitOrientation
}

// IsLeaf reports whether the node has no children
func (n *BSPNode) IsLeaf() bool {
	return n.Children == nil
}

// BSPConfig tunes the partition tree
type BSPConfig struct {
	TreeHeight  int // number of split rounds; the leaf count doubles each round
	RoomSizeMin int // children must be wider and taller than this
}

// DefaultBSPConfig returns the standard partition settings
func DefaultBSPConfig() BSPConfig {
	return BSPConfig{
		TreeHeight:  4,
		RoomSizeMin: 5,
	}
}

func (c BSPConfig) validate() error {
	if c.TreeHeight < 0 {
		return fmt.Errorf("tree height %d: %w", c.TreeHeight, ErrInvalidConfig)
	}
	if c.RoomSizeMin < 1 {
		return fmt.Errorf("room size min %d: %w", c.RoomSizeMin, ErrInvalidConfig)
	}
	return nil
}

// bspGenerator holds the partition tree shared by the dungeon and interior variants
type bspGenerator struct {
	DungeonGenerator
	config BSPConfig
	nodes  []BSPNode
	// roomFor picks the room carved inside a leaf's area
	roomFor func(area components.Rect) components.Rect
}

// BSPDungeonGenerator places a randomly sized room in every leaf of a
// binary space partition and joins sibling subtrees with corridors
type BSPDungeonGenerator struct {
	bspGenerator
}

// NewBSPDungeonGenerator creates a BSP room generator for a width x height map
func NewBSPDungeonGenerator(width, height int, r *rng.RandomNumberGenerator, config BSPConfig, opts ...Option) (*BSPDungeonGenerator, error) {
	b, err := newBSPGenerator("BSP", width, height, r, config, opts)
	if err != nil {
		return nil, err
	}
	g := &BSPDungeonGenerator{bspGenerator: b}
	g.roomFor = g.randomRoom
	return g, nil
}

func newBSPGenerator(name string, width, height int, r *rng.RandomNumberGenerator, config BSPConfig, opts []Option) (bspGenerator, error) {
	if err := config.validate(); err != nil {
		return bspGenerator{}, err
	}
	base, err := newDungeonGenerator(name, width, height, r, opts)
	if err != nil {
		return bspGenerator{}, err
	}
	return bspGenerator{DungeonGenerator: base, config: config}, nil
}

// Reset drops the tree and refills the map with walls
func (g *bspGenerator) Reset() {
	g.resetMap()
	g.nodes = nil
}

// Generate builds the tree, rooms and corridors, rebuilding on failure
func (g *bspGenerator) Generate(prevDownStairs *components.Position) error {
	return g.generate(prevDownStairs, generationPass{
		reset: g.Reset,
		build: g.build,
		placeDown: func(prev *components.Position) error {
			return g.placeStairsDownInRooms(g.Rooms(), prev)
		},
		spawnAreas: func() []SpawnArea {
			return g.roomSpawnAreas(g.Rooms())
		},
	})
}

// Nodes returns a copy of the partition tree
func (g *bspGenerator) Nodes() []BSPNode {
	out := make([]BSPNode, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Rooms returns the leaf rooms in arena order
func (g *bspGenerator) Rooms() []components.Rect {
	var rooms []components.Rect
	for _, n := range g.nodes {
		if n.IsLeaf() && n.Room != nil {
			rooms = append(rooms, *n.Room)
		}
	}
	return rooms
}

func (g *bspGenerator) build() error {
	if err := g.buildTree(); err != nil {
		return err
	}
	g.createRoomsInLeaves()
	g.connectRooms()
	return nil
}

// buildTree splits every leaf once per level, starting from the interior of the map
func (g *bspGenerator) buildTree() error {
	if g.width < 3 || g.height < 3 {
		return fmt.Errorf("map %dx%d has no interior: %w", g.width, g.height, ErrTooSmallBSPAreaToSplit)
	}
	g.nodes = []BSPNode{{
		Index:   0,
		Parent:  -1,
		Sibling: -1,
		Area:    components.Rect{X1: 1, Y1: 1, X2: g.width - 2, Y2: g.height - 2},
	}}

	leaves := []int{0}
	for level := 0; level < g.config.TreeHeight; level++ {
		var next []int
		for _, idx := range leaves {
			a, b, orientation, err := g.splitNode(idx)
			if err != nil {
				return err
			}
			first := len(g.nodes)
			second := first + 1
			g.nodes = append(g.nodes,
				BSPNode{Index: first, Level: level + 1, Parent: idx, Sibling: second, Area: a},
				BSPNode{Index: second, Level: level + 1, Parent: idx, Sibling: first, Area: b},
			)
			g.nodes[idx].Children = &[2]int{first, second}
			g.nodes[idx].split = orientation
			next = append(next, first, second)
		}
		leaves = next
	}
	return nil
}

// splitNode finds a split for the node's area, trying a random orientation
// first and the other one as a fallback
func (g *bspGenerator) splitNode(idx int) (components.Rect, components.Rect, splitOrientation, error) {
	area := g.nodes[idx].Area
	orientation := splitVertical
	if g.rng.CoinFlip() {
		orientation = splitHorizontal
	}

	for _, o := range []splitOrientation{orientation, orientation.other()} {
		if a, b, ok := g.splitArea(area, o); ok {
			return a, b, o, nil
		}
	}

	if !g.canSplit(area, splitHorizontal) && !g.canSplit(area, splitVertical) {
		return components.Rect{}, components.Rect{}, 0, fmt.Errorf("node %d area %dx%d: %w",
			idx, area.Width(), area.Height(), ErrTooSmallBSPAreaToSplit)
	}
	return components.Rect{}, components.Rect{}, 0, fmt.Errorf("node %d area %dx%d: %w",
		idx, area.Width(), area.Height(), ErrTooManyBSPSplitRetries)
}

// canSplit reports whether any split coordinate could satisfy the size rule.
// Two children larger than RoomSizeMin plus the dividing wall line are needed.
func (g *bspGenerator) canSplit(area components.Rect, o splitOrientation) bool {
	minSize := g.config.RoomSizeMin
	if o == splitHorizontal {
		return area.Width() > minSize && area.Height() >= 2*(minSize+1)+1
	}
	return area.Height() > minSize && area.Width() >= 2*(minSize+1)+1
}

// splitArea tries coordinates near the midpoint, jittered by up to half the
// minimum room size. The dividing line itself belongs to neither child.
func (g *bspGenerator) splitArea(area components.Rect, o splitOrientation) (components.Rect, components.Rect, bool) {
	jitter := g.config.RoomSizeMin / 2
	for attempt := 0; attempt < maxSplitAttempts; attempt++ {
		var a, b components.Rect
		if o == splitHorizontal {
			cut := (area.Y1+area.Y2)/2 + g.rng.Range(-jitter, jitter)
			a = components.Rect{X1: area.X1, Y1: area.Y1, X2: area.X2, Y2: cut - 1}
			b = components.Rect{X1: area.X1, Y1: cut + 1, X2: area.X2, Y2: area.Y2}
		} else {
			cut := (area.X1+area.X2)/2 + g.rng.Range(-jitter, jitter)
			a = components.Rect{X1: area.X1, Y1: area.Y1, X2: cut - 1, Y2: area.Y2}
			b = components.Rect{X1: cut + 1, Y1: area.Y1, X2: area.X2, Y2: area.Y2}
		}
		if g.fits(a) && g.fits(b) {
			return a, b, true
		}
		if jitter == 0 {
			break
		}
	}
	return components.Rect{}, components.Rect{}, false
}

func (g *bspGenerator) fits(r components.Rect) bool {
	return r.Width() > g.config.RoomSizeMin && r.Height() > g.config.RoomSizeMin
}

// createRoomsInLeaves carves one room into every leaf
func (g *bspGenerator) createRoomsInLeaves() {
	for i := range g.nodes {
		if !g.nodes[i].IsLeaf() {
			continue
		}
		room := g.roomFor(g.nodes[i].Area)
		g.nodes[i].Room = &room
		g.carveRoom(room)
		g.snapshot("room")
	}
}

// randomRoom sizes a room at one, two or three times RoomSizeMin per axis,
// as far as the leaf allows, and places it randomly inside the leaf
func (g *BSPDungeonGenerator) randomRoom(area components.Rect) components.Rect {
	w := g.roomSpan(area.Width())
	h := g.roomSpan(area.Height())
	x := area.X1 + g.rng.Range(0, area.Width()-w)
	y := area.Y1 + g.rng.Range(0, area.Height()-h)
	return components.NewRect(x, y, w, h)
}

func (g *BSPDungeonGenerator) roomSpan(available int) int {
	minSize := g.config.RoomSizeMin
	scale := 1
	switch {
	case available >= 3*minSize:
		scale = g.rng.Range(1, 3)
	case available >= 2*minSize:
		scale = g.rng.Range(1, 2)
	}
	return min(minSize*scale, available)
}

// connectRooms joins sibling subtrees bottom-up, then adds a few redundant
// leaf-to-leaf corridors
func (g *bspGenerator) connectRooms() {
	for level := g.config.TreeHeight - 1; level >= 0; level-- {
		for i := range g.nodes {
			n := &g.nodes[i]
			if n.Level != level || n.IsLeaf() {
				continue
			}
			first, second := n.Children[0], n.Children[1]
			var a, b int
			if n.split == splitHorizontal {
				a = g.nearestLeaf(first, func(r components.Rect) int { return r.Y2 })
				b = g.nearestLeaf(second, func(r components.Rect) int { return -r.Y1 })
			} else {
				a = g.nearestLeaf(first, func(r components.Rect) int { return r.X2 })
				b = g.nearestLeaf(second, func(r components.Rect) int { return -r.X1 })
			}
			g.CreateCorridor(g.nodes[a].Room.Center(), g.nodes[b].Room.Center())
			g.snapshot("corridor")
		}
	}

	var leaves []int
	for i := range g.nodes {
		if g.nodes[i].IsLeaf() {
			leaves = append(leaves, i)
		}
	}
	if len(leaves) < 2 {
		return
	}
	for i := 0; i < redundantConnections; i++ {
		a := leaves[g.rng.Intn(len(leaves))]
		b := leaves[g.rng.Intn(len(leaves))]
		for b == a {
			b = leaves[g.rng.Intn(len(leaves))]
		}
		g.CreateCorridor(g.nodes[a].Room.Center(), g.nodes[b].Room.Center())
		g.snapshot("extra corridor")
	}
}

// nearestLeaf descends from idx, at each level taking the child whose best
// leaf room scores highest, and returns that leaf
func (g *bspGenerator) nearestLeaf(idx int, score func(components.Rect) int) int {
	n := &g.nodes[idx]
	if n.IsLeaf() {
		return idx
	}
	left := g.nearestLeaf(n.Children[0], score)
	right := g.nearestLeaf(n.Children[1], score)
	if score(*g.nodes[right].Room) > score(*g.nodes[left].Room) {
		return right
	}
	return left
}
