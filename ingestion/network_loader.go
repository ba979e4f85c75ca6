package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/adi180397/Robot-Routing/roadnet"
)

var (
	// ErrMissingColumn flags a header without one of the required columns.
	ErrMissingColumn = errors.New("required column missing from header")

	// ErrBadCost flags a cost cell that is not a finite non-negative number.
	// Negative costs would break the shortest-path guarantee, so they are
	// rejected here instead of poisoning the analysis.
	ErrBadCost = errors.New("cost is not a finite non-negative number")
)

// LoadRoadSegments reads the network table. The header must name start_node,
// end_node, cost1 and cost2; column order does not matter and extra columns
// are ignored. cost1 is the start->end traversal cost, cost2 the reverse.
func LoadRoadSegments(path string) ([]roadnet.RoadSegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read network header: %w", err)
	}
	h := headerIndex(header)

	for _, column := range []string{"start_node", "end_node", "cost1", "cost2"} {
		if _, ok := h[column]; !ok {
			return nil, fmt.Errorf("network file %s: column %s: %w", path, column, ErrMissingColumn)
		}
	}

	var segments []roadnet.RoadSegment
	for rowNum := 2; ; rowNum++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read network row %d: %w", rowNum, err)
		}

		get := func(k string) string {
			i, ok := h[k]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		start, err := strconv.ParseInt(get("start_node"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("network row %d: start_node %q is not a node id", rowNum, get("start_node"))
		}
		end, err := strconv.ParseInt(get("end_node"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("network row %d: end_node %q is not a node id", rowNum, get("end_node"))
		}

		forward, err := parseCost(get("cost1"))
		if err != nil {
			return nil, fmt.Errorf("network row %d: cost1: %w", rowNum, err)
		}
		backward, err := parseCost(get("cost2"))
		if err != nil {
			return nil, fmt.Errorf("network row %d: cost2: %w", rowNum, err)
		}

		segments = append(segments, roadnet.RoadSegment{
			Start:    roadnet.NodeID(start),
			End:      roadnet.NodeID(end),
			Forward:  forward,
			Backward: backward,
		})
	}

	log.Infof("LoadRoadSegments: loaded %d segments from %s", len(segments), path)
	return segments, nil
}

func parseCost(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrBadCost)
	}
	if value < 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%q: %w", raw, ErrBadCost)
	}

	return value, nil
}

// headerIndex maps column names to their positions.
func headerIndex(header []string) map[string]int {
	h := make(map[string]int, len(header))
	for i, name := range header {
		h[strings.TrimSpace(name)] = i
	}

	return h
}
