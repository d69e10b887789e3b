// Package reach computes the area reachable from a single origin cell on an
// elevation grid, under an elevation ceiling and a travel-cost budget.
//
// What:
//
//   - Uniform-cost expansion over 8-connected cells.
//   - A cell is passable when its elevation is strictly below the ceiling.
//   - Orthogonal steps cost 1, diagonal steps cost 1.41421356.
//   - A cell is accepted when its cumulative cost is ≤ the budget; its mask
//     bit is set at acceptance, before it is expanded.
//   - The output is a Mask: one bit per cell.
//
// Single claim, no relaxation:
//
// Every cell is claimed at most once, by the first node that reaches it
// within budget, and its cost is never lowered afterwards. This differs
// from textbook Dijkstra: a cell may keep a cost above its true shortest
// distance when a cheaper route is found after the claim. Cells offered
// above budget are not claimed, so a cheaper route may still accept them.
// A consequence is that raising the elevation ceiling can, in rare layouts,
// remove a cell from the result; raising the budget never does.
//
// Determinism:
//
// Neighbors are scanned in a fixed order and frontier ties are broken by
// insertion order, so identical inputs yield identical masks and identical
// expansion traces.
//
// Errors:
//
//   - ErrInvalidInput and its family (ErrNilGrid, ErrEmptyGrid,
//     ErrGridTooLarge, ErrStartOutOfBounds, ErrBadMaxElevation,
//     ErrBadCostBudget, ErrOptionViolation) are returned before any search
//     state is allocated.
//   - An impassable start is not an error: Status is StatusUnreachable and
//     the mask is empty.
//   - ErrAcceptLimit is returned only when WithMaxAccepted is set.
//
// Concurrency:
//
// Each Search call owns its frontier, index, node arena and mask. Grids are
// only read, so any Grid safe for concurrent reads can back parallel searches.
//
// Complexity:
//
//   - Time:  O(A log A), A = accepted cells.
//   - Space: O(A) plus W×H bits for the mask.
package reach
