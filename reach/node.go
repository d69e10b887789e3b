package reach

// NodeID is a stable index into a search's node arena.
type NodeID int

// NoParent marks the root node of a search.
const NoParent NodeID = -1

// Node is the immutable record of one accepted cell.
//
// G is the cumulative cost from the start along the path that first
// claimed the cell. It is fixed at creation: costs are never relaxed,
// so G may exceed the true shortest-path cost when a cheaper route is
// discovered after the cell was claimed.
type Node struct {
	X, Y   int
	G      float64
	Parent NodeID // NoParent for the start node
}

// arena owns every node created during one search. Parents are referenced
// by id rather than pointer, so the chain is flat and trivially copyable.
type arena struct {
	nodes []Node
}

// add appends n and returns its id.
func (a *arena) add(n Node) NodeID {
	a.nodes = append(a.nodes, n)
	return NodeID(len(a.nodes) - 1)
}

// get returns the node with the given id.
func (a *arena) get(id NodeID) Node {
	return a.nodes[id]
}

// len returns the number of nodes created so far.
func (a *arena) len() int {
	return len(a.nodes)
}

// visitedIndex maps a cell key to the node that first claimed it.
// Entries are never overwritten or removed: the index is both the closed
// set and the "already queued" set.
type visitedIndex struct {
	claimed map[int]NodeID
}

func newVisitedIndex(hint int) *visitedIndex {
	return &visitedIndex{claimed: make(map[int]NodeID, hint)}
}

// claim records id for key. It returns false, leaving the existing entry
// untouched, if key is already present.
func (v *visitedIndex) claim(key int, id NodeID) bool {
	if _, ok := v.claimed[key]; ok {
		return false
	}
	v.claimed[key] = id
	return true
}

// has reports whether key was claimed.
func (v *visitedIndex) has(key int) bool {
	_, ok := v.claimed[key]
	return ok
}

// lookup returns the node id that claimed key.
func (v *visitedIndex) lookup(key int) (NodeID, bool) {
	id, ok := v.claimed[key]
	return id, ok
}
