package itinerary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/adi180397/Robot-Routing/roadnet"
)

var (
	// ErrTooFewWaypoints flags a waypoint sequence with fewer than two nodes.
	ErrTooFewWaypoints = errors.New("itinerary needs at least two waypoints")

	// ErrBadWaypoint flags a waypoint token that is not a node identifier.
	ErrBadWaypoint = errors.New("waypoint is not a valid node identifier")
)

// Hop is one directed traversal between two consecutive waypoints.
type Hop struct {
	From roadnet.NodeID
	To   roadnet.NodeID
}

// Itinerary is the full ordered hop sequence one robot is scheduled to
// traverse.
type Itinerary struct {
	RobotID string
	Hops    []Hop
}

// ParseWaypoints splits a separator-delimited waypoint string into node ids.
// Empty tokens (doubled separators) are malformed, not skipped.
func ParseWaypoints(raw, sep string) ([]roadnet.NodeID, error) {
	tokens := strings.Split(strings.TrimSpace(raw), sep)
	if len(tokens) < 2 {
		return nil, fmt.Errorf("waypoint sequence %q: %w", raw, ErrTooFewWaypoints)
	}

	waypoints := make([]roadnet.NodeID, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q in sequence %q: %w", token, raw, ErrBadWaypoint)
		}
		waypoints = append(waypoints, roadnet.NodeID(id))
	}

	return waypoints, nil
}

// Segment pairs consecutive waypoints into the robot's directed hops.
func Segment(robotID string, waypoints []roadnet.NodeID) (Itinerary, error) {
	if len(waypoints) < 2 {
		return Itinerary{}, fmt.Errorf("robot %s: %w", robotID, ErrTooFewWaypoints)
	}

	hops := make([]Hop, 0, len(waypoints)-1)
	for i := 0; i < len(waypoints)-1; i++ {
		hops = append(hops, Hop{From: waypoints[i], To: waypoints[i+1]})
	}

	return Itinerary{RobotID: robotID, Hops: hops}, nil
}

// New parses a raw waypoint string and segments it in one step.
func New(robotID, raw, sep string) (Itinerary, error) {
	waypoints, err := ParseWaypoints(raw, sep)
	if err != nil {
		return Itinerary{}, fmt.Errorf("robot %s: %w", robotID, err)
	}

	return Segment(robotID, waypoints)
}

// Reverse returns the itinerary retraced backward: hop order reversed and
// each hop's endpoints swapped.
func (it Itinerary) Reverse() Itinerary {
	hops := make([]Hop, len(it.Hops))
	for i, hop := range it.Hops {
		hops[len(it.Hops)-1-i] = Hop{From: hop.To, To: hop.From}
	}

	return Itinerary{RobotID: it.RobotID, Hops: hops}
}
