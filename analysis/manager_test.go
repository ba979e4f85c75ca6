package analysis

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/panjf2000/ants/v2"

	"github.com/adi180397/Robot-Routing/itinerary"
	"github.com/adi180397/Robot-Routing/od_table"
	"github.com/adi180397/Robot-Routing/overlap"
	"github.com/adi180397/Robot-Routing/roadnet"
)

// TestAnalyzeOneOrientationSelection checks both a tie (forward wins) and a
// cheaper reverse traversal (reverse wins).
func TestAnalyzeOneOrientationSelection(t *testing.T) {
	testCases := []struct {
		name         string
		segments     []roadnet.RoadSegment
		waypoints    string
		wantFinal    overlap.Orientation
		wantDistance float64
	}{
		{
			name: "Tie keeps forward",
			segments: []roadnet.RoadSegment{
				{Start: 1, End: 2, Forward: 5, Backward: 3},
				{Start: 2, End: 3, Forward: 2, Backward: 4},
			},
			waypoints:    "1-2-3",
			wantFinal:    overlap.OrientationForward,
			wantDistance: 7,
		},
		{
			name: "Cheaper backward costs pick reverse",
			segments: []roadnet.RoadSegment{
				{Start: 1, End: 2, Forward: 10, Backward: 1},
			},
			waypoints:    "1-2",
			wantFinal:    overlap.OrientationReverse,
			wantDistance: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			net := roadnet.BuildRoadNetwork(tc.segments)
			table, err := od_table.Build(net, od_table.BuildOptions{})
			if err != nil {
				t.Fatalf("od_table.Build failed: %v", err)
			}

			it, err := itinerary.New("robot-1", tc.waypoints, "-")
			if err != nil {
				t.Fatalf("itinerary.New failed: %v", err)
			}

			manager := NewManager(net, table, Options{})
			report, err := manager.AnalyzeOne(it)
			if err != nil {
				t.Fatalf("AnalyzeOne failed: %v", err)
			}

			if report.Final.Orientation != tc.wantFinal {
				t.Errorf("Final.Orientation = %s, want %s", report.Final.Orientation, tc.wantFinal)
			}
			if report.Final.OverlapDistance != tc.wantDistance {
				t.Errorf("Final.OverlapDistance = %v, want %v", report.Final.OverlapDistance, tc.wantDistance)
			}
			if report.Forward.Orientation != overlap.OrientationForward {
				t.Errorf("Forward.Orientation = %s, want forward", report.Forward.Orientation)
			}
			if report.Reverse.Orientation != overlap.OrientationReverse {
				t.Errorf("Reverse.Orientation = %s, want reverse", report.Reverse.Orientation)
			}
		})
	}
}

// TestAnalyzeAllPooledMatchesSequential fans a batch out over a pool and
// requires the exact sequential reports in input order.
func TestAnalyzeAllPooledMatchesSequential(t *testing.T) {
	net := roadnet.BuildRoadNetwork([]roadnet.RoadSegment{
		{Start: 1, End: 2, Forward: 5, Backward: 3},
		{Start: 2, End: 3, Forward: 2, Backward: 4},
		{Start: 3, End: 4, Forward: 1, Backward: 6},
	})
	table, err := od_table.Build(net, od_table.BuildOptions{})
	if err != nil {
		t.Fatalf("od_table.Build failed: %v", err)
	}

	var robots []itinerary.Itinerary
	for i := 0; i < 20; i++ {
		it, err := itinerary.New(fmt.Sprintf("robot-%d", i), "1-3-4-2", "-")
		if err != nil {
			t.Fatalf("itinerary.New failed: %v", err)
		}
		robots = append(robots, it)
	}

	sequential, err := NewManager(net, table, Options{}).AnalyzeAll(robots)
	if err != nil {
		t.Fatalf("sequential AnalyzeAll failed: %v", err)
	}

	pool, err := ants.NewPool(4)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	defer pool.Release()

	pooled, err := NewManager(net, table, Options{Pool: pool}).AnalyzeAll(robots)
	if err != nil {
		t.Fatalf("pooled AnalyzeAll failed: %v", err)
	}

	if len(pooled) != len(sequential) {
		t.Fatalf("report counts differ: pooled=%d sequential=%d", len(pooled), len(sequential))
	}

	for i := range sequential {
		if pooled[i].Final.RobotID != robots[i].RobotID {
			t.Errorf("report %d holds robot %s, want %s (input order lost)", i, pooled[i].Final.RobotID, robots[i].RobotID)
		}
		if !reflect.DeepEqual(pooled[i], sequential[i]) {
			t.Errorf("report %d differs between pooled and sequential runs", i)
		}
	}
}

// TestAnalyzeAllStrictAbortsRun verifies a strict-policy integrity failure
// aborts the whole batch.
func TestAnalyzeAllStrictAbortsRun(t *testing.T) {
	full := roadnet.BuildRoadNetwork([]roadnet.RoadSegment{
		{Start: 1, End: 2, Forward: 5, Backward: 3},
		{Start: 2, End: 3, Forward: 2, Backward: 4},
	})
	table, err := od_table.Build(full, od_table.BuildOptions{})
	if err != nil {
		t.Fatalf("od_table.Build failed: %v", err)
	}

	// classified against a copy missing the 2->3 edge the od path relies on
	stripped := roadnet.NewRoadNetwork()
	for from, targets := range full.Links {
		for to, weight := range targets {
			if from == 2 && to == 3 {
				continue
			}
			if _, exists := stripped.Links[from]; !exists {
				stripped.Links[from] = make(map[roadnet.NodeID]float64)
			}
			stripped.Links[from][to] = weight
		}
	}

	it, err := itinerary.New("robot-1", "1-3", "-")
	if err != nil {
		t.Fatalf("itinerary.New failed: %v", err)
	}

	manager := NewManager(stripped, table, Options{Policy: overlap.PolicyStrict})
	_, err = manager.AnalyzeAll([]itinerary.Itinerary{it})
	if err == nil {
		t.Fatalf("AnalyzeAll succeeded on an inconsistent network under strict policy, want error")
	}
	if !errors.Is(err, overlap.ErrMissingEdge) {
		t.Errorf("AnalyzeAll error = %v, want ErrMissingEdge", err)
	}
}
