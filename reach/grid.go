package reach

import "math"

// Grid is the read-only elevation surface the search runs over.
//
// Elevation is queried by value: implementations must not hand out shared
// scratch buffers, so one Grid can serve any number of concurrent searches.
// Out-of-bounds queries are a caller error; Search never issues them.
type Grid interface {
	Width() int
	Height() int
	Elevation(x, y int) float64
}

// Cell addresses one grid cell by column X and row Y.
type Cell struct {
	X, Y int
}

// neighborOffsets lists the 8 neighbors in scan order: dx outer, dy inner,
// center skipped.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// stepCost returns the cost of moving by (dx, dy) to an adjacent cell.
func stepCost(dx, dy int) float64 {
	if dx == 0 || dy == 0 {
		return OrthogonalStep
	}
	return DiagonalStep
}

// bounds caches grid dimensions for one search.
type bounds struct {
	width, height int
}

// inBounds reports whether (x, y) lies inside the grid.
func (b bounds) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// key maps (x, y) to its row-major index y*width + x.
// Collision-free for every in-bounds cell once fitsKey has passed.
func (b bounds) key(x, y int) int {
	return y*b.width + x
}

// fitsKey reports whether every row-major index of the grid fits in an int.
func (b bounds) fitsKey() bool {
	return b.width <= math.MaxInt/b.height
}
