package components

// Rect is an axis-aligned region with inclusive corners: it covers every
// cell with X1 <= x <= X2 and Y1 <= y <= Y2
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect builds a rect from a top-left corner and a size in cells
func NewRect(x, y, width, height int) Rect {
	return Rect{X1: x, Y1: y, X2: x + width - 1, Y2: y + height - 1}
}

// Width returns the number of columns covered
func (r Rect) Width() int {
	return r.X2 - r.X1 + 1
}

// Height returns the number of rows covered
func (r Rect) Height() int {
	return r.Y2 - r.Y1 + 1
}

// Center returns the midpoint of the rect
func (r Rect) Center() Position {
	return Position{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Intersect returns true if the two rects overlap. Shared edges count.
func (r Rect) Intersect(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 && r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Contains reports whether other lies completely inside r
func (r Rect) Contains(other Rect) bool {
	return other.X1 >= r.X1 && other.X2 <= r.X2 && other.Y1 >= r.Y1 && other.Y2 <= r.Y2
}

// ContainsPoint reports whether (x, y) lies inside r
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Grow returns r expanded by n cells on every side
func (r Rect) Grow(n int) Rect {
	return Rect{X1: r.X1 - n, Y1: r.Y1 - n, X2: r.X2 + n, Y2: r.Y2 + n}
}

// Positions lists every cell in the rect in row-major order
func (r Rect) Positions() []Position {
	if r.X2 < r.X1 || r.Y2 < r.Y1 {
		return nil
	}
	out := make([]Position, 0, r.Width()*r.Height())
	for y := r.Y1; y <= r.Y2; y++ {
		for x := r.X1; x <= r.X2; x++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}
