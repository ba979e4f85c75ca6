package od_table

import (
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"

	"github.com/adi180397/Robot-Routing/roadnet"
	"github.com/adi180397/Robot-Routing/shortest_path"
)

// ErrGraphTooLarge is returned when the node count exceeds the configured
// build budget.
var ErrGraphTooLarge = errors.New("node count exceeds od table build budget")

// Table holds the optimal path for every ordered pair of distinct nodes where
// the destination is reachable from the origin. Built once per network and
// read-only afterward.
type Table struct {
	paths map[roadnet.NodeID]map[roadnet.NodeID][]roadnet.NodeID
}

// BuildOptions tunes a table build.
type BuildOptions struct {
	Pool     *ants.Pool // nil builds sequentially
	MaxNodes int        // 0 means unlimited
}

// Build runs the shortest path engine from every node of the network and
// collects the reconstructed path per (origin, destination) pair, omitting
// the diagonal and unreachable destinations. The per-source runs only read
// the shared network and each writes its own pre-created inner map, so they
// execute concurrently on the pool with a join before the table is returned.
func Build(net *roadnet.RoadNetwork, opts BuildOptions) (*Table, error) {
	nodes := net.Nodes()

	if opts.MaxNodes > 0 && len(nodes) > opts.MaxNodes {
		return nil, fmt.Errorf("od table: %d nodes over budget %d: %w", len(nodes), opts.MaxNodes, ErrGraphTooLarge)
	}

	table := &Table{
		paths: make(map[roadnet.NodeID]map[roadnet.NodeID][]roadnet.NodeID, len(nodes)),
	}

	// partition the writes up front: one inner map per source, so workers
	// never touch the shared outer map
	for _, source := range nodes {
		table.paths[source] = make(map[roadnet.NodeID][]roadnet.NodeID)
	}

	if opts.Pool == nil {
		for _, source := range nodes {
			if err := buildSource(net, source, nodes, table.paths[source]); err != nil {
				return nil, err
			}
		}
		log.Infof("Build: od table complete, origins=%d, pairs=%d (sequential)", len(nodes), table.PairCount())
		return table, nil
	}

	var wg sync.WaitGroup
	buildErrs := make([]error, len(nodes)) // one slot per source, no locking

	for i, source := range nodes {
		wg.Add(1)
		idx := i
		src := source

		err := opts.Pool.Submit(func() {
			defer wg.Done()
			buildErrs[idx] = buildSource(net, src, nodes, table.paths[src])
		})

		if err != nil {
			log.Warnf("Build: submit failed for source %d, running inline: %v", src, err)
			buildErrs[idx] = buildSource(net, src, nodes, table.paths[src])
			wg.Done()
		}
	}

	wg.Wait()

	for _, err := range buildErrs {
		if err != nil {
			return nil, err
		}
	}

	log.Infof("Build: od table complete, origins=%d, pairs=%d, workers=%d", len(nodes), table.PairCount(), opts.Pool.Cap())
	return table, nil
}

// buildSource fills the inner map of one origin.
func buildSource(net *roadnet.RoadNetwork, source roadnet.NodeID, nodes []roadnet.NodeID, into map[roadnet.NodeID][]roadnet.NodeID) error {
	tree, err := shortest_path.Compute(net, source)
	if err != nil {
		return fmt.Errorf("od table source %d: %w", source, err)
	}

	for _, dest := range nodes {
		if dest == source {
			continue
		}
		if path, ok := tree.PathTo(dest); ok {
			into[dest] = path
		}
	}

	return nil
}

// Path returns the optimal path from origin to dest, ok=false when the table
// has no entry (diagonal, unknown node, or unreachable destination).
func (t *Table) Path(origin, dest roadnet.NodeID) ([]roadnet.NodeID, bool) {
	if destinations, exists := t.paths[origin]; exists {
		if path, exists := destinations[dest]; exists {
			return path, true
		}
	}

	return nil, false
}

// PairCount returns the number of (origin, destination) entries stored.
func (t *Table) PairCount() int {
	count := 0
	for _, destinations := range t.paths {
		count += len(destinations)
	}

	return count
}

// Origins returns the origin nodes the table was built over, unordered.
func (t *Table) Origins() []roadnet.NodeID {
	origins := make([]roadnet.NodeID, 0, len(t.paths))
	for origin := range t.paths {
		origins = append(origins, origin)
	}

	return origins
}
