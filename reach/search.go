package reach

import (
	"fmt"
	"math"
)

// Search expands from (startX, startY) over g and returns the reachable mask.
//
// A cell is passable when its elevation is strictly below maxElevation.
// A neighbor is accepted when it is in bounds, passable, not yet claimed,
// and its cumulative cost is ≤ costBudget. Accepted cells get their mask
// bit immediately, before they are expanded.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. g must have positive dimensions (ErrEmptyGrid).
//  3. width*height must fit in an int (ErrGridTooLarge).
//  4. the start must be in bounds (ErrStartOutOfBounds).
//  5. maxElevation must be finite and ≥ 0 (ErrBadMaxElevation).
//  6. costBudget must be finite and ≥ 0 (ErrBadCostBudget).
//  7. options must be valid (ErrOptionViolation).
//
// An impassable start is not an error: the result has StatusUnreachable and
// an all-zero mask.
//
// Complexity:
//
//   - Time:  O(A log A) where A = accepted cells (each pushed and popped once).
//   - Space: O(A) for the arena, index and frontier, plus W×H/8 bytes of mask.
func Search(g Grid, startX, startY int, maxElevation, costBudget float64, opts ...Option) (*Result, error) {
	// 1) Validate the grid and its key space.
	if g == nil {
		return nil, ErrNilGrid
	}
	b := bounds{width: g.Width(), height: g.Height()}
	if b.width <= 0 || b.height <= 0 {
		return nil, ErrEmptyGrid
	}
	if !b.fitsKey() {
		return nil, fmt.Errorf("%w: %dx%d", ErrGridTooLarge, b.width, b.height)
	}

	// 2) Validate the start cell and the scalar limits.
	if !b.inBounds(startX, startY) {
		return nil, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrStartOutOfBounds, startX, startY, b.width, b.height)
	}
	if math.IsNaN(maxElevation) || math.IsInf(maxElevation, 0) || maxElevation < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadMaxElevation, maxElevation)
	}
	if math.IsNaN(costBudget) || math.IsInf(costBudget, 0) || costBudget < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrBadCostBudget, costBudget)
	}

	// 3) Build options and catch any invalid ones.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	// 4) Impassable start: defined empty result.
	mask := NewMask(b.width, b.height)
	if g.Elevation(startX, startY) >= maxElevation {
		return &Result{Mask: mask, Status: StatusUnreachable, index: newVisitedIndex(0), b: b}, nil
	}

	// 5) Run the expansion loop.
	r := &runner{
		grid:         g,
		b:            b,
		options:      cfg,
		maxElevation: maxElevation,
		budget:       costBudget,
		mask:         mask,
		index:        newVisitedIndex(64),
		open:         newFrontier(64),
	}
	if err := r.seed(startX, startY); err != nil {
		return nil, err
	}
	if err := r.process(); err != nil {
		return nil, err
	}

	return &Result{
		Mask:     r.mask,
		Status:   StatusReachable,
		Accepted: r.nodes.len(),
		Expanded: r.expanded,
		nodes:    r.nodes,
		index:    r.index,
		b:        b,
	}, nil
}

// runner holds the mutable state for a single search. Nothing in it is
// shared with other searches.
type runner struct {
	grid         Grid
	b            bounds
	options      Options
	maxElevation float64
	budget       float64

	mask     *Mask
	nodes    arena
	index    *visitedIndex
	open     *frontier
	expanded int
}

// seed creates the start node, claims its cell and pushes it.
func (r *runner) seed(x, y int) error {
	id := r.nodes.add(Node{X: x, Y: y, G: 0, Parent: NoParent})
	r.index.claim(r.b.key(x, y), id)
	r.open.push(id, 0)
	if r.options.MarkOrigin {
		r.mask.Set(x, y)
	}
	return r.accepted(id)
}

// process pops the cheapest node until the frontier is empty.
//
// Termination: every accepted node costs at least OrthogonalStep more than
// its parent and the budget is finite, so only finitely many cells are ever
// accepted; rejected candidates are never pushed.
func (r *runner) process() error {
	for r.open.len() > 0 {
		if err := r.options.Ctx.Err(); err != nil {
			return fmt.Errorf("reach: search aborted: %w", err)
		}
		id := r.open.pop()
		r.expanded++
		if err := r.expand(id); err != nil {
			return err
		}
	}

	return nil
}

// expand examines the 8 neighbors of node id.
func (r *runner) expand(id NodeID) error {
	cur := r.nodes.get(id)
	for _, d := range neighborOffsets {
		cx, cy := cur.X+d[0], cur.Y+d[1]

		// a) Out of bounds.
		if !r.b.inBounds(cx, cy) {
			continue
		}

		// b) Impassable: not visited, not marked.
		if r.grid.Elevation(cx, cy) >= r.maxElevation {
			continue
		}

		// c) Already claimed, at whatever cost.
		key := r.b.key(cx, cy)
		if r.index.has(key) {
			continue
		}

		// d) Cost beyond budget: discard without claiming, so a cheaper
		//    route found later may still accept this cell.
		cg := cur.G + stepCost(d[0], d[1])
		if cg > r.budget {
			continue
		}

		// e) Accept.
		child := r.nodes.add(Node{X: cx, Y: cy, G: cg, Parent: id})
		r.index.claim(key, child)
		r.open.push(child, cg)
		r.mask.Set(cx, cy)
		if err := r.accepted(child); err != nil {
			return err
		}
	}

	return nil
}

// accepted runs the hook and enforces MaxAccepted.
func (r *runner) accepted(id NodeID) error {
	r.options.OnAccept(r.nodes.get(id))
	if r.options.MaxAccepted > 0 && r.nodes.len() > r.options.MaxAccepted {
		return fmt.Errorf("%w: %d > %d", ErrAcceptLimit, r.nodes.len(), r.options.MaxAccepted)
	}
	return nil
}

// Result holds the outcome of a completed search.
type Result struct {
	// Mask marks every accepted cell.
	Mask *Mask
	// Status is StatusUnreachable when the start cell is impassable.
	Status Status
	// Accepted counts nodes created, the start included.
	Accepted int
	// Expanded counts nodes popped from the frontier.
	Expanded int

	nodes arena
	index *visitedIndex
	b     bounds
}

// Node returns the node that claimed (x, y), if any.
func (r *Result) Node(x, y int) (Node, bool) {
	if !r.b.inBounds(x, y) {
		return Node{}, false
	}
	id, ok := r.index.lookup(r.b.key(x, y))
	if !ok {
		return Node{}, false
	}
	return r.nodes.get(id), true
}

// NodeByID returns the node with the given arena id.
func (r *Result) NodeByID(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= r.nodes.len() {
		return Node{}, false
	}
	return r.nodes.get(id), true
}

// Cost returns the cumulative cost recorded for (x, y).
func (r *Result) Cost(x, y int) (float64, bool) {
	n, ok := r.Node(x, y)
	return n.G, ok
}
