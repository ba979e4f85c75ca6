package overlap

import (
	"fmt"

	"github.com/adi180397/Robot-Routing/itinerary"
	"github.com/adi180397/Robot-Routing/od_table"
	"github.com/adi180397/Robot-Routing/roadnet"
)

// Classify processes the itinerary's hops in order. A hop whose endpoint pair
// has an od table entry is overlapping: the optimal sub-path replaces it and
// its edge weights accumulate into the overlapping distance. Every other hop
// (self loop, unknown node, unreachable destination) is non-overlapping and
// contributes the direct edge weight when the network defines one, else zero.
func Classify(it itinerary.Itinerary, table *od_table.Table, net *roadnet.RoadNetwork, policy Policy) (Result, error) {
	result := Result{RobotID: it.RobotID}

	for _, hop := range it.Hops {
		if hop.From != hop.To {
			if path, exists := table.Path(hop.From, hop.To); exists {
				distance, err := pathDistance(net, path, policy)
				if err != nil {
					return Result{}, fmt.Errorf("robot %s hop %d->%d: %w", it.RobotID, hop.From, hop.To, err)
				}

				// consecutive sub-paths share their junction node, write it once
				nodes := path
				if last := len(result.OverlapPath); last > 0 && result.OverlapPath[last-1] == path[0] {
					nodes = path[1:]
				}
				result.OverlapPath = append(result.OverlapPath, nodes...)
				result.OverlapDistance += distance
				continue
			}
		}

		weight, _ := net.EdgeWeight(hop.From, hop.To) // zero when absent
		result.NonOverlapHops = append(result.NonOverlapHops, hop)
		result.NonOverlapDistance += weight
	}

	return result, nil
}

// pathDistance sums the edge weights along consecutive nodes of an od path.
// Under the lenient policy a missing edge contributes zero; under the strict
// policy it is an integrity error.
func pathDistance(net *roadnet.RoadNetwork, path []roadnet.NodeID, policy Policy) (float64, error) {
	var sum float64
	for i := 0; i < len(path)-1; i++ {
		weight, exists := net.EdgeWeight(path[i], path[i+1])
		if !exists {
			if policy == PolicyStrict {
				return 0, fmt.Errorf("edge %d->%d: %w", path[i], path[i+1], ErrMissingEdge)
			}
			continue
		}
		sum += weight
	}

	return sum, nil
}
