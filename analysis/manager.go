package analysis

import (
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	log "github.com/sirupsen/logrus"

	"github.com/adi180397/Robot-Routing/itinerary"
	"github.com/adi180397/Robot-Routing/od_table"
	"github.com/adi180397/Robot-Routing/overlap"
	"github.com/adi180397/Robot-Routing/roadnet"
)

// RobotReport bundles the per-robot outcome of one run: the forward and
// reverse classifications plus the selected final orientation.
type RobotReport struct {
	Forward overlap.Result
	Reverse overlap.Result
	Final   overlap.Result
}

// Options tunes a Manager.
type Options struct {
	Policy overlap.Policy // empty defaults to lenient
	Pool   *ants.Pool     // nil analyzes sequentially
}

// Manager runs the overlap analysis for batches of robots against one
// immutable network and od table pair. Robots are independent, so batches
// fan out over the pool and land in input order.
type Manager struct {
	net    *roadnet.RoadNetwork
	table  *od_table.Table
	policy overlap.Policy
	pool   *ants.Pool
}

func NewManager(net *roadnet.RoadNetwork, table *od_table.Table, opts Options) *Manager {
	policy := opts.Policy
	if policy == "" {
		policy = overlap.PolicyLenient
	}

	return &Manager{
		net:    net,
		table:  table,
		policy: policy,
		pool:   opts.Pool,
	}
}

// AnalyzeOne classifies both orientations of one itinerary and selects the
// final result.
func (m *Manager) AnalyzeOne(it itinerary.Itinerary) (RobotReport, error) {
	forward, err := overlap.Classify(it, m.table, m.net, m.policy)
	if err != nil {
		return RobotReport{}, fmt.Errorf("forward classification: %w", err)
	}
	forward.Orientation = overlap.OrientationForward

	reverse, err := overlap.Classify(it.Reverse(), m.table, m.net, m.policy)
	if err != nil {
		return RobotReport{}, fmt.Errorf("reverse classification: %w", err)
	}
	reverse.Orientation = overlap.OrientationReverse

	return RobotReport{
		Forward: forward,
		Reverse: reverse,
		Final:   overlap.SelectOrientation(forward, reverse),
	}, nil
}

// AnalyzeAll analyzes every itinerary and returns the reports in input
// order. Any robot failure aborts the whole run: the system is a single-pass
// batch, partial results are never handed on.
func (m *Manager) AnalyzeAll(its []itinerary.Itinerary) ([]RobotReport, error) {
	reports := make([]RobotReport, len(its))

	if m.pool == nil {
		for i, it := range its {
			report, err := m.AnalyzeOne(it)
			if err != nil {
				return nil, err
			}
			reports[i] = report
		}
		log.Infof("AnalyzeAll: analyzed %d robots (sequential)", len(its))
		return reports, nil
	}

	var wg sync.WaitGroup
	analyzeErrs := make([]error, len(its)) // one slot per robot, no locking

	for i, it := range its {
		wg.Add(1)
		idx := i
		robot := it

		err := m.pool.Submit(func() {
			defer wg.Done()
			reports[idx], analyzeErrs[idx] = m.AnalyzeOne(robot)
		})

		if err != nil {
			log.Warnf("AnalyzeAll: submit failed for robot %s, running inline: %v", robot.RobotID, err)
			reports[idx], analyzeErrs[idx] = m.AnalyzeOne(robot)
			wg.Done()
		}
	}

	wg.Wait()

	for _, err := range analyzeErrs {
		if err != nil {
			return nil, err
		}
	}

	log.Infof("AnalyzeAll: analyzed %d robots, workers=%d", len(its), m.pool.Cap())
	return reports, nil
}
