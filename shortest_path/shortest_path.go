package shortest_path

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/adi180397/Robot-Routing/roadnet"
)

// Compute runs Dijkstra's algorithm from source over the network and returns
// the resulting shortest path tree. The network is only read, so concurrent
// Compute calls over the same network are safe.
func Compute(net *roadnet.RoadNetwork, source roadnet.NodeID) (*Tree, error) {
	if !net.HasNode(source) {
		return nil, fmt.Errorf("shortest paths from %d: %w", source, ErrUnknownSource)
	}

	tree := &Tree{
		Source: source,
		Dist:   make(map[roadnet.NodeID]float64),
		Prev:   make(map[roadnet.NodeID]roadnet.NodeID),
	}

	for _, node := range net.Nodes() {
		tree.Dist[node] = math.Inf(1)
	}
	tree.Dist[source] = 0

	pq := &nodeQueue{}
	heap.Push(pq, queueItem{node: source, dist: 0})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(queueItem)

		if current.dist > tree.Dist[current.node] {
			continue // stale entry, a better distance was settled already
		}

		for neighbor, weight := range net.Links[current.node] {
			if _, known := tree.Dist[neighbor]; !known {
				continue
			}
			candidate := current.dist + weight
			if candidate < tree.Dist[neighbor] {
				tree.Dist[neighbor] = candidate
				tree.Prev[neighbor] = current.node
				heap.Push(pq, queueItem{node: neighbor, dist: candidate})
			}
		}
	}

	return tree, nil
}

// PathTo rebuilds the path from the tree's source to target by walking
// predecessor links backward and reversing the collected nodes. Returns
// ok=false when target is unknown or unreachable; the source itself yields a
// single-node path.
func (t *Tree) PathTo(target roadnet.NodeID) ([]roadnet.NodeID, bool) {
	dist, known := t.Dist[target]
	if !known || math.IsInf(dist, 1) {
		return nil, false
	}

	path := []roadnet.NodeID{target}
	for node := target; node != t.Source; {
		prev, exists := t.Prev[node]
		if !exists {
			return nil, false
		}
		path = append(path, prev)
		node = prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, true
}

// Reachable reports whether target got a finite distance from the source.
func (t *Tree) Reachable(target roadnet.NodeID) bool {
	dist, known := t.Dist[target]
	return known && !math.IsInf(dist, 1)
}
