package reach

import "container/heap"

// frontierItem is one discovered, not yet expanded node.
type frontierItem struct {
	id  NodeID
	g   float64
	seq uint64 // insertion order, breaks ties between equal costs
}

// frontierPQ is a min-heap of frontierItem ordered by (g, seq).
// Equal costs pop in insertion order, which makes expansion traces
// reproducible. The final mask does not depend on this choice.
type frontierPQ []frontierItem

// Len returns the number of items in the heap.
func (pq frontierPQ) Len() int { return len(pq) }

// Less orders by cost, then by insertion sequence.
func (pq frontierPQ) Less(i, j int) bool {
	if pq[i].g != pq[j].g {
		return pq[i].g < pq[j].g
	}
	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq frontierPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x onto the heap. Called by heap.Push.
func (pq *frontierPQ) Push(x interface{}) { *pq = append(*pq, x.(frontierItem)) }

// Pop removes the last element. Called by heap.Pop.
func (pq *frontierPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}

// frontier wraps frontierPQ with a sequence counter.
type frontier struct {
	pq  frontierPQ
	seq uint64
}

func newFrontier(capacity int) *frontier {
	f := &frontier{pq: make(frontierPQ, 0, capacity)}
	heap.Init(&f.pq)
	return f
}

func (f *frontier) push(id NodeID, g float64) {
	heap.Push(&f.pq, frontierItem{id: id, g: g, seq: f.seq})
	f.seq++
}

func (f *frontier) pop() NodeID {
	return heap.Pop(&f.pq).(frontierItem).id
}

func (f *frontier) len() int { return f.pq.Len() }
