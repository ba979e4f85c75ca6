package overlap

import (
	"errors"
	"fmt"

	"github.com/adi180397/Robot-Routing/itinerary"
	"github.com/adi180397/Robot-Routing/roadnet"
)

// ErrMissingEdge reports that an edge on a substituted od path is absent from
// the network, which can only happen when the table and network were built
// inconsistently.
var ErrMissingEdge = errors.New("edge on od path missing from network")

// Policy decides what a missing edge along a substituted od path does.
type Policy string

const (
	// PolicyLenient lets missing edges contribute zero distance.
	PolicyLenient Policy = "lenient"

	// PolicyStrict turns missing edges into an integrity error.
	PolicyStrict Policy = "strict"
)

// ParsePolicy validates a policy name from configuration.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(name) {
	case PolicyLenient, PolicyStrict:
		return Policy(name), nil
	}

	return "", fmt.Errorf("unknown missing edge policy '%s' (want lenient or strict)", name)
}

// Orientation labels which traversal direction a result was computed for.
type Orientation string

const (
	OrientationForward Orientation = "forward"
	OrientationReverse Orientation = "reverse"
)

// Result is the outcome of classifying one itinerary in one orientation.
// OverlapPath is the concatenation of all substituted optimal sub-paths with
// junction nodes written once; NonOverlapHops lists the hops the od table
// could not cover.
type Result struct {
	RobotID            string
	Orientation        Orientation
	OverlapPath        []roadnet.NodeID
	NonOverlapHops     []itinerary.Hop
	OverlapDistance    float64
	NonOverlapDistance float64
}
