package vectorize

import (
	"sort"

	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/reach"
)

// Ring is a closed sequence of vertices; the last point equals the first.
type Ring []geo.Point

// Polygon is the outline of one component.
type Polygon struct {
	Exterior Ring
	Holes    []Ring
	// Cells is the number of mask cells the polygon covers.
	Cells int
}

// SignedArea returns the shoelace area of r. In a y-up frame a positive
// value means counter-clockwise.
func (r Ring) SignedArea() float64 {
	var a float64
	for i := 0; i+1 < len(r); i++ {
		a += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
	}
	return a / 2
}

// Area returns the exterior area minus the area of the holes, in the
// units of the ring coordinates.
func (p Polygon) Area() float64 {
	a := abs(p.Exterior.SignedArea())
	for _, h := range p.Holes {
		a -= abs(h.SignedArea())
	}
	return a
}

type vertex struct{ x, y int }

type edge struct {
	from   vertex
	dx, dy int
}

// Trace returns one polygon per component of m, in Components order.
func Trace(m *reach.Mask) []Polygon {
	comps := Components(m)
	if len(comps) == 0 {
		return nil
	}
	w := m.Width()
	label := make([]int, w*m.Height())
	for ci, comp := range comps {
		for _, i := range comp {
			label[i] = ci + 1
		}
	}

	polys := make([]Polygon, 0, len(comps))
	for ci, comp := range comps {
		polys = append(polys, traceComponent(comp, ci+1, label, m))
	}
	return polys
}

// traceComponent walks the boundary edges of one component.
func traceComponent(comp []int, id int, label []int, m *reach.Mask) Polygon {
	w := m.Width()
	in := func(x, y int) bool {
		return m.InBounds(x, y) && label[y*w+x] == id
	}

	cells := append([]int(nil), comp...)
	sort.Ints(cells)

	// 1) Emit directed boundary edges with the interior on the walker's
	//    left in the y-down pixel frame.
	var edges []edge
	for _, i := range cells {
		x, y := i%w, i/w
		if !in(x-1, y) {
			edges = append(edges, edge{vertex{x, y}, 0, 1})
		}
		if !in(x, y+1) {
			edges = append(edges, edge{vertex{x, y + 1}, 1, 0})
		}
		if !in(x+1, y) {
			edges = append(edges, edge{vertex{x + 1, y + 1}, 0, -1})
		}
		if !in(x, y-1) {
			edges = append(edges, edge{vertex{x + 1, y}, -1, 0})
		}
	}
	out := make(map[vertex][]int, len(edges))
	for ei, e := range edges {
		out[e.from] = append(out[e.from], ei)
	}

	// 2) Chain edges into rings. At a vertex shared by two diagonal cells
	//    the walk turns left, which keeps the cells apart.
	used := make([]bool, len(edges))
	poly := Polygon{Cells: len(comp)}
	for start := range edges {
		if used[start] {
			continue
		}
		var pts []vertex
		cur := start
		for {
			used[cur] = true
			e := edges[cur]
			pts = append(pts, e.from)
			next := nextEdge(edges, out[vertex{e.from.x + e.dx, e.from.y + e.dy}], e.dx, e.dy)
			if next == start || next < 0 {
				break
			}
			cur = next
		}
		ring := simplify(pts)
		// Exteriors have negative area in the y-down frame.
		if ring.SignedArea() < 0 {
			poly.Exterior = ring
		} else {
			poly.Holes = append(poly.Holes, ring)
		}
	}
	return poly
}

// nextEdge picks the outgoing edge after heading (dx, dy): left turn first,
// then straight, then right.
func nextEdge(edges []edge, cands []int, dx, dy int) int {
	prefs := [3][2]int{{dy, -dx}, {dx, dy}, {-dy, dx}}
	for _, p := range prefs {
		for _, ei := range cands {
			if edges[ei].dx == p[0] && edges[ei].dy == p[1] {
				return ei
			}
		}
	}
	return -1
}

// simplify drops collinear vertices and closes the ring. The ring starts
// at its first corner.
func simplify(pts []vertex) Ring {
	n := len(pts)
	corner := func(i int) bool {
		a, b, c := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		return (b.x-a.x)*(c.y-b.y)-(b.y-a.y)*(c.x-b.x) != 0
	}
	first := 0
	for first < n && !corner(first) {
		first++
	}
	ring := make(Ring, 0, n/2+1)
	for k := 0; k < n; k++ {
		i := (first + k) % n
		if corner(i) {
			ring = append(ring, geo.Point{X: float64(pts[i].x), Y: float64(pts[i].y)})
		}
	}
	return append(ring, ring[0])
}

// ToMap applies t to every vertex of polys. Rings are reversed when t
// preserves orientation, so exteriors end up counter-clockwise in map
// coordinates.
func ToMap(polys []Polygon, t geo.GeoTransform) []Polygon {
	flip := t[1]*t[5]-t[2]*t[4] > 0
	conv := func(r Ring) Ring {
		o := make(Ring, len(r))
		for i, p := range r {
			q := t.PixelToMap(p.X, p.Y)
			if flip {
				o[len(r)-1-i] = q
			} else {
				o[i] = q
			}
		}
		return o
	}

	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = Polygon{Exterior: conv(p.Exterior), Cells: p.Cells}
		for _, h := range p.Holes {
			out[i].Holes = append(out[i].Holes, conv(h))
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
