package roadnet

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// NodeID identifies a point in the road network (intersection/stop).
type NodeID int64

// RoadSegment is one ingested network row: an undirected road link with
// direction-dependent traversal costs.
type RoadSegment struct {
	Start    NodeID
	End      NodeID
	Forward  float64
	Backward float64
}

// RoadNetwork is the directed weighted adjacency structure the analysis runs
// against. It is built once from road segments and never mutated afterward,
// which is what allows later stages to share it across goroutines without
// locking.
type RoadNetwork struct {
	Links map[NodeID]map[NodeID]float64
}

func NewRoadNetwork() *RoadNetwork {
	return &RoadNetwork{
		Links: make(map[NodeID]map[NodeID]float64),
	}
}

// BuildRoadNetwork constructs the network from segment rows. Each segment
// inserts two directed edges: start->end with the forward cost and end->start
// with the backward cost.
func BuildRoadNetwork(segments []RoadSegment) *RoadNetwork {
	n := NewRoadNetwork()
	for _, seg := range segments {
		n.AddSegment(seg)
	}
	log.Infof("BuildRoadNetwork: node num: %d, edge num: %d", n.NodeCount(), n.EdgeCount())
	return n
}

func (n *RoadNetwork) AddSegment(seg RoadSegment) {
	n.addEdge(seg.Start, seg.End, seg.Forward)
	n.addEdge(seg.End, seg.Start, seg.Backward)
}

func (n *RoadNetwork) addEdge(from, to NodeID, weight float64) {
	if _, exists := n.Links[from]; !exists {
		n.Links[from] = make(map[NodeID]float64)
	}

	n.Links[from][to] = weight
}

func (n *RoadNetwork) EdgeWeight(from, to NodeID) (float64, bool) {
	if targets, exists := n.Links[from]; exists {
		if weight, exists := targets[to]; exists {
			return weight, true
		}
	}

	return 0, false
}

// Neighbors returns a copy of the outgoing edges of from.
func (n *RoadNetwork) Neighbors(from NodeID) map[NodeID]float64 {
	result := make(map[NodeID]float64)
	if targets, exists := n.Links[from]; exists {
		for to, weight := range targets {
			result[to] = weight
		}
	}

	return result
}

func (n *RoadNetwork) HasNode(id NodeID) bool {
	if _, exists := n.Links[id]; exists {
		return true
	}

	for _, targets := range n.Links {
		if _, exists := targets[id]; exists {
			return true
		}
	}

	return false
}

func (n *RoadNetwork) NodeCount() int {
	return len(n.nodeSet())
}

func (n *RoadNetwork) EdgeCount() int {
	count := 0
	for _, targets := range n.Links {
		count += len(targets)
	}

	return count
}

// Nodes returns the deduplicated set of all nodes appearing on either end of
// any edge, sorted ascending so iteration order is reproducible.
func (n *RoadNetwork) Nodes() []NodeID {
	nodeSet := n.nodeSet()

	nodes := make([]NodeID, 0, len(nodeSet))
	for node := range nodeSet {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	return nodes
}

func (n *RoadNetwork) nodeSet() map[NodeID]bool {
	nodeSet := make(map[NodeID]bool)

	for source := range n.Links {
		nodeSet[source] = true
	}

	for _, targets := range n.Links {
		for target := range targets {
			nodeSet[target] = true
		}
	}

	return nodeSet
}
