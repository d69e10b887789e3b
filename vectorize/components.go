package vectorize

import "github.com/katalvlaran/terrareach/reach"

// orthogonal lists the 4-connected neighbor offsets.
var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Components finds all 4-connected regions of set cells in m.
// Each component is a slice of row-major cell indices (y*width + x) in BFS
// order; components are ordered by their first cell in row-major order.
//
// Time:   O(W·H).
// Memory: O(W·H) for the seen flags and output.
func Components(m *reach.Mask) [][]int {
	if m == nil {
		return nil
	}
	w, h := m.Width(), m.Height()
	seen := make([]bool, w*h)
	var comps [][]int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.Get(x, y) {
				continue
			}
			i0 := y*w + x
			if seen[i0] {
				continue
			}
			// BFS to collect the component.
			queue := []int{i0}
			seen[i0] = true

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				ux, uy := u%w, u/w
				for _, d := range orthogonal {
					vx, vy := ux+d[0], uy+d[1]
					if !m.Get(vx, vy) {
						continue
					}
					vi := vy*w + vx
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, queue)
		}
	}
	return comps
}
