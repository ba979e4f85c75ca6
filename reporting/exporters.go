package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Exporter writes the three record sets of a run under a directory, one file
// per set named forward.<ext>, reverse.<ext>, final.<ext>.
type Exporter interface {
	Export(dir string, set ReportSet) error
}

// ExporterRegistry manages available result exporters by format name.
type ExporterRegistry struct {
	exporters map[string]Exporter
	mu        sync.RWMutex
}

var globalRegistry = &ExporterRegistry{
	exporters: make(map[string]Exporter),
}

// Register registers a new exporter under the given format name.
func (er *ExporterRegistry) Register(name string, exporter Exporter) error {
	er.mu.Lock()
	defer er.mu.Unlock()

	if _, exists := er.exporters[name]; exists {
		return fmt.Errorf("exporter '%s' is already registered", name)
	}

	er.exporters[name] = exporter
	return nil
}

// Get retrieves an exporter by format name.
func (er *ExporterRegistry) Get(name string) (Exporter, error) {
	er.mu.RLock()
	defer er.mu.RUnlock()

	exporter, exists := er.exporters[name]
	if !exists {
		return nil, fmt.Errorf("exporter '%s' not found in registry", name)
	}

	return exporter, nil
}

// List returns all registered format names.
func (er *ExporterRegistry) List() []string {
	er.mu.RLock()
	defer er.mu.RUnlock()

	names := make([]string, 0, len(er.exporters))
	for name := range er.exporters {
		names = append(names, name)
	}

	return names
}

// RegisterGlobal registers an exporter in the global registry.
func RegisterGlobal(name string, exporter Exporter) error {
	return globalRegistry.Register(name, exporter)
}

// GetGlobal retrieves an exporter from the global registry.
func GetGlobal(name string) (Exporter, error) {
	return globalRegistry.Get(name)
}

// ListGlobal returns all registered format names in the global registry.
func ListGlobal() []string {
	return globalRegistry.List()
}

// init registers the built-in exporters.
func init() {
	if err := RegisterGlobal("csv", csvExporter{}); err != nil {
		log.Warnf("Failed to register csv exporter: %v", err)
	}
	if err := RegisterGlobal("json", jsonExporter{}); err != nil {
		log.Warnf("Failed to register json exporter: %v", err)
	}
}

// Export runs every named exporter against the record sets, creating dir
// first. An empty format list exports nothing.
func Export(dir string, formats []string, set ReportSet) error {
	if len(formats) == 0 {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}

	for _, format := range formats {
		exporter, err := GetGlobal(format)
		if err != nil {
			return err
		}
		if err := exporter.Export(dir, set); err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		log.Infof("Export: wrote %s results to %s", format, dir)
	}

	return nil
}

type namedSet struct {
	name    string
	records []Record
}

func (rs ReportSet) sets() []namedSet {
	return []namedSet{
		{name: "forward", records: rs.Forward},
		{name: "reverse", records: rs.Reverse},
		{name: "final", records: rs.Final},
	}
}

type csvExporter struct{}

func (csvExporter) Export(dir string, set ReportSet) error {
	for _, s := range set.sets() {
		if err := writeCSV(filepath.Join(dir, s.name+".csv"), s.records); err != nil {
			return err
		}
	}

	return nil
}

func writeCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"robot_id", "orientation", "overlapping_path",
		"non_overlapping_path", "overlapping_distance", "non_overlapping_distance"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header to %s: %w", path, err)
	}

	for _, r := range records {
		row := []string{
			r.RobotID,
			r.Orientation,
			r.OverlapPath,
			r.NonOverlapPath,
			strconv.FormatFloat(r.OverlapDistance, 'f', 2, 64),
			strconv.FormatFloat(r.NonOverlapDistance, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	w.Flush()

	return w.Error()
}

type jsonExporter struct{}

func (jsonExporter) Export(dir string, set ReportSet) error {
	for _, s := range set.sets() {
		data, err := json.MarshalIndent(s.records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal %s records: %w", s.name, err)
		}

		path := filepath.Join(dir, s.name+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}
