package shortest_path

import (
	"errors"

	"github.com/adi180397/Robot-Routing/roadnet"
)

// ErrUnknownSource is returned when the requested source node does not exist
// in the network.
var ErrUnknownSource = errors.New("source node not in network")

// Tree is the single-source shortest path solution for one source node.
// Dist maps every known node to its minimal cumulative weight from Source,
// math.Inf(1) for unreachable nodes. Prev maps each reached node to its
// predecessor on the shortest path; the source and unreached nodes have no
// entry.
type Tree struct {
	Source roadnet.NodeID
	Dist   map[roadnet.NodeID]float64
	Prev   map[roadnet.NodeID]roadnet.NodeID
}

// queueItem is one (distance, node) entry in the priority queue. Entries are
// never updated in place; improvements push a fresh entry and stale ones are
// discarded on pop.
type queueItem struct {
	node roadnet.NodeID
	dist float64
}

// nodeQueue is a min-heap over queue items, ordered by distance, then node id
// so that equal-distance pops stay reproducible.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) {
	*q = append(*q, x.(queueItem))
}

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
