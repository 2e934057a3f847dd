package sim

// Grid is a dense, row-major 2D array of cells, the uniform container
// used for the heightmap, tile-attribute grid, occupied grid, and
// per-movement-class walkability grids (spec §3/§4.4).
type Grid[T any] struct {
	width, height int
	cells         []T
}

// NewGrid builds a width x height grid with all cells zero-valued.
func NewGrid[T any](width, height int) *Grid[T] {
	return &Grid[T]{width: width, height: height, cells: make([]T, width*height)}
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid cell coordinate.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

func (g *Grid[T]) Get(x, y int) T {
	return g.cells[y*g.width+x]
}

func (g *Grid[T]) Set(x, y int, v T) {
	g.cells[y*g.width+x] = v
}

// DiscreteRect is an axis-aligned rectangle in grid-cell coordinates,
// used for building footprints, yard maps, and the pathfinder's
// RectPerimeterGoal (SPEC_FULL §10, grounded on
// original_source/src/rwe/DiscreteRect.{h,cpp}).
type DiscreteRect struct {
	X, Y, Width, Height int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r DiscreteRect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// IsOnPerimeter reports whether (x, y) touches the rectangle's
// perimeter one cell out — i.e. it is adjacent to (including
// diagonally) a rectangle cell but not inside the rectangle itself.
func (r DiscreteRect) IsOnPerimeter(x, y int) bool {
	if r.Contains(x, y) {
		return false
	}
	expanded := DiscreteRect{X: r.X - 1, Y: r.Y - 1, Width: r.Width + 2, Height: r.Height + 2}
	return expanded.Contains(x, y)
}

// ExpandToInclude grows r to include the point (x, y).
func (r DiscreteRect) ExpandToInclude(x, y int) DiscreteRect {
	minX, minY := r.X, r.Y
	maxX, maxY := r.X+r.Width, r.Y+r.Height
	if x < minX {
		minX = x
	}
	if y < minY {
		minY = y
	}
	if x+1 > maxX {
		maxX = x + 1
	}
	if y+1 > maxY {
		maxY = y + 1
	}
	return DiscreteRect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ForEachCell visits every (x, y) inside r.
func (r DiscreteRect) ForEachCell(fn func(x, y int)) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			fn(x, y)
		}
	}
}
