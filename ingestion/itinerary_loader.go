package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/adi180397/Robot-Routing/itinerary"
)

// LoadItineraries reads the robot table. The header must name robot_number
// and path; the path cell is a sep-delimited waypoint sequence which is
// segmented into hops on load.
func LoadItineraries(path, sep string) ([]itinerary.Itinerary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open itinerary file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read itinerary header: %w", err)
	}
	h := headerIndex(header)

	for _, column := range []string{"robot_number", "path"} {
		if _, ok := h[column]; !ok {
			return nil, fmt.Errorf("itinerary file %s: column %s: %w", path, column, ErrMissingColumn)
		}
	}

	var robots []itinerary.Itinerary
	for rowNum := 2; ; rowNum++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read itinerary row %d: %w", rowNum, err)
		}

		get := func(k string) string {
			i, ok := h[k]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		robotID := get("robot_number")
		if robotID == "" {
			return nil, fmt.Errorf("itinerary row %d: robot_number is empty", rowNum)
		}

		it, err := itinerary.New(robotID, get("path"), sep)
		if err != nil {
			return nil, fmt.Errorf("itinerary row %d: %w", rowNum, err)
		}
		robots = append(robots, it)
	}

	log.Infof("LoadItineraries: loaded %d robots from %s", len(robots), path)
	return robots, nil
}
