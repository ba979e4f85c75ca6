package od_table

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/panjf2000/ants/v2"

	"github.com/adi180397/Robot-Routing/roadnet"
)

// TestBuildCompleteness verifies the table holds an entry for every ordered
// reachable pair, none for the diagonal, and that stored paths start and end
// on their own key pair.
func TestBuildCompleteness(t *testing.T) {
	net := roadnet.BuildRoadNetwork([]roadnet.RoadSegment{
		{Start: 1, End: 2, Forward: 5, Backward: 3},
		{Start: 2, End: 3, Forward: 2, Backward: 4},
	})

	table, err := Build(net, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	nodes := net.Nodes()
	for _, origin := range nodes {
		for _, dest := range nodes {
			path, exists := table.Path(origin, dest)

			if origin == dest {
				if exists {
					t.Errorf("table holds diagonal entry (%d, %d): %v", origin, dest, path)
				}
				continue
			}

			// fully connected both ways, every off-diagonal pair must exist
			if !exists {
				t.Errorf("missing entry (%d, %d)", origin, dest)
				continue
			}
			if path[0] != origin || path[len(path)-1] != dest {
				t.Errorf("entry (%d, %d) has endpoints %d..%d", origin, dest, path[0], path[len(path)-1])
			}
		}
	}

	if table.PairCount() != 6 {
		t.Errorf("PairCount() = %d, want 6", table.PairCount())
	}

	// the two-hop pair must route through the middle node
	path, _ := table.Path(1, 3)
	if want := []roadnet.NodeID{1, 2, 3}; !reflect.DeepEqual(path, want) {
		t.Errorf("Path(1, 3) = %v, want %v", path, want)
	}
}

// TestBuildOmitsUnreachable verifies no entry exists toward a node nothing
// can reach.
func TestBuildOmitsUnreachable(t *testing.T) {
	// node 4 only has an outgoing edge, nothing reaches it
	net := roadnet.BuildRoadNetwork([]roadnet.RoadSegment{
		{Start: 1, End: 2, Forward: 5, Backward: 3},
	})
	net.Links[4] = map[roadnet.NodeID]float64{1: 1}

	table, err := Build(net, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, origin := range []roadnet.NodeID{1, 2} {
		if path, exists := table.Path(origin, 4); exists {
			t.Errorf("Path(%d, 4) = %v, want no entry", origin, path)
		}
	}

	// 4 itself reaches both others
	for _, dest := range []roadnet.NodeID{1, 2} {
		if _, exists := table.Path(4, dest); !exists {
			t.Errorf("Path(4, %d) missing", dest)
		}
	}
}

// TestBuildParallelMatchesSequential builds the same random network with and
// without a pool and requires identical tables.
func TestBuildParallelMatchesSequential(t *testing.T) {
	const randomSeed int64 = 42
	rng := rand.New(rand.NewSource(randomSeed))

	net := generateRandomRoadNetwork(40, rng, 0.1)

	sequential, err := Build(net, BuildOptions{})
	if err != nil {
		t.Fatalf("sequential Build failed: %v", err)
	}

	pool, err := ants.NewPool(8)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	defer pool.Release()

	parallel, err := Build(net, BuildOptions{Pool: pool})
	if err != nil {
		t.Fatalf("parallel Build failed: %v", err)
	}

	if sequential.PairCount() != parallel.PairCount() {
		t.Fatalf("pair counts differ: sequential=%d parallel=%d", sequential.PairCount(), parallel.PairCount())
	}

	for _, origin := range net.Nodes() {
		for _, dest := range net.Nodes() {
			seqPath, seqOK := sequential.Path(origin, dest)
			parPath, parOK := parallel.Path(origin, dest)
			if seqOK != parOK || !reflect.DeepEqual(seqPath, parPath) {
				t.Errorf("entry (%d, %d) differs: sequential=%v(%v) parallel=%v(%v)",
					origin, dest, seqPath, seqOK, parPath, parOK)
			}
		}
	}
}

// TestBuildMaxNodes verifies the node budget aborts the build up front.
func TestBuildMaxNodes(t *testing.T) {
	net := roadnet.BuildRoadNetwork([]roadnet.RoadSegment{
		{Start: 1, End: 2, Forward: 1, Backward: 1},
		{Start: 2, End: 3, Forward: 1, Backward: 1},
	})

	_, err := Build(net, BuildOptions{MaxNodes: 2})
	if err == nil {
		t.Fatalf("Build succeeded with 3 nodes over a budget of 2, want error")
	}
	if !errors.Is(err, ErrGraphTooLarge) {
		t.Errorf("Build error = %v, want ErrGraphTooLarge", err)
	}

	if _, err := Build(net, BuildOptions{MaxNodes: 3}); err != nil {
		t.Errorf("Build failed with budget equal to node count: %v", err)
	}
}

// ==================== Helper Functions ====================

// generateRandomRoadNetwork creates a random directed network with a
// connected backbone and integer-valued weights.
func generateRandomRoadNetwork(nodeCount int, rng *rand.Rand, density float64) *roadnet.RoadNetwork {
	net := roadnet.NewRoadNetwork()

	for i := 0; i < nodeCount-1; i++ {
		net.AddSegment(roadnet.RoadSegment{
			Start:    roadnet.NodeID(i),
			End:      roadnet.NodeID(i + 1),
			Forward:  float64(1 + rng.Intn(20)),
			Backward: float64(1 + rng.Intn(20)),
		})
	}

	for i := 0; i < nodeCount; i++ {
		for j := 0; j < nodeCount; j++ {
			if i == j {
				continue
			}
			if rng.Float64() < density {
				net.AddSegment(roadnet.RoadSegment{
					Start:    roadnet.NodeID(i),
					End:      roadnet.NodeID(j),
					Forward:  float64(1 + rng.Intn(20)),
					Backward: float64(1 + rng.Intn(20)),
				})
			}
		}
	}

	return net
}

// BenchmarkBuildParallel measures a pooled build over a 120 node network.
func BenchmarkBuildParallel(b *testing.B) {
	const randomSeed int64 = 999
	rng := rand.New(rand.NewSource(randomSeed))

	net := generateRandomRoadNetwork(120, rng, 0.05)

	pool, err := ants.NewPool(8)
	if err != nil {
		b.Fatalf("failed to create pool: %v", err)
	}
	defer pool.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(net, BuildOptions{Pool: pool}); err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}

// BenchmarkBuildSequential measures the same build without a pool.
func BenchmarkBuildSequential(b *testing.B) {
	const randomSeed int64 = 999
	rng := rand.New(rand.NewSource(randomSeed))

	net := generateRandomRoadNetwork(120, rng, 0.05)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Build(net, BuildOptions{}); err != nil {
			b.Fatalf("Build failed: %v", err)
		}
	}
}
