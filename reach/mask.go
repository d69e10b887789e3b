package reach

import "math/bits"

// Mask is a width×height bitmap, one bit per cell, row-major.
// A set bit marks a cell accepted into the reachable set.
type Mask struct {
	words  []uint64
	width  int
	height int
}

// NewMask returns an all-zero mask. Non-positive dimensions yield an
// empty mask that reports no cells.
func NewMask(width, height int) *Mask {
	if width <= 0 || height <= 0 {
		return &Mask{}
	}
	return &Mask{
		words:  make([]uint64, (width*height+63)/64),
		width:  width,
		height: height,
	}
}

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// InBounds reports whether (x, y) lies inside the mask.
func (m *Mask) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Set marks (x, y). Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	i := y*m.width + x
	m.words[i/64] |= 1 << (uint(i) % 64)
}

// Get reports whether (x, y) is set. Out-of-bounds cells are never set.
func (m *Mask) Get(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	i := y*m.width + x
	return m.words[i/64]&(1<<(uint(i)%64)) != 0
}

// Count returns the number of set cells.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Cells returns every set cell in row-major order.
func (m *Mask) Cells() []Cell {
	out := make([]Cell, 0, m.Count())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				out = append(out, Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// Equal reports whether m and other have the same shape and bits.
func (m *Mask) Equal(other *Mask) bool {
	if other == nil || m.width != other.width || m.height != other.height {
		return false
	}
	for i, w := range m.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell set in m is also set in other.
// Masks of different shapes are never subsets of each other.
func (m *Mask) SubsetOf(other *Mask) bool {
	if other == nil || m.width != other.width || m.height != other.height {
		return false
	}
	for i, w := range m.words {
		if w&^other.words[i] != 0 {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of m.
func (m *Mask) Clone() *Mask {
	c := &Mask{width: m.width, height: m.height}
	c.words = append([]uint64(nil), m.words...)
	return c
}
