package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"github.com/adi180397/Robot-Routing/overlap"
	"github.com/adi180397/Robot-Routing/reporting"
)

// Config holds the full configuration of a run, loaded from a TOML file.
type Config struct {
	Network     NetworkConfig     `toml:"network"`
	Itineraries ItinerariesConfig `toml:"itineraries"`
	Analysis    AnalysisConfig    `toml:"analysis"`
	Output      OutputConfig      `toml:"output"`
}

type NetworkConfig struct {
	Path string `toml:"path"`
}

type ItinerariesConfig struct {
	Path              string `toml:"path"`
	WaypointSeparator string `toml:"waypoint_separator"`
}

type AnalysisConfig struct {
	Workers           int    `toml:"workers"`             // 0 sizes the pool from the host CPU count
	MissingEdgePolicy string `toml:"missing_edge_policy"` // lenient or strict
	MaxGraphNodes     int    `toml:"max_graph_nodes"`     // 0 is unlimited
}

type OutputConfig struct {
	Directory string   `toml:"directory"`
	Formats   []string `toml:"formats"`
}

// Load reads the TOML configuration at path. A missing file yields the
// defaults with a warning so that flags can still supply the input paths;
// a file that fails to decode or validate is an error.
func Load(path string) (*Config, error) {
	// Get absolute path for clearer error messages if file not found
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error getting absolute path for %s: %w", path, err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Warningf("Load: config file %s not found, using defaults", absPath)
		return defaultConfig(), nil
	}

	log.Infof("Load: loading configuration from %s", absPath)
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding TOML file %s: %w", absPath, err)
	}

	fillDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Network:     NetworkConfig{Path: "network.csv"},
		Itineraries: ItinerariesConfig{Path: "itineraries.csv", WaypointSeparator: "-"},
		Analysis:    AnalysisConfig{MissingEdgePolicy: string(overlap.PolicyLenient)},
		Output:      OutputConfig{Directory: "results"},
	}
}

func fillDefaults(cfg *Config) {
	if cfg.Network.Path == "" {
		log.Warningf("fillDefaults: network path not specified, using default: network.csv")
		cfg.Network.Path = "network.csv"
	}
	if cfg.Itineraries.Path == "" {
		log.Warningf("fillDefaults: itineraries path not specified, using default: itineraries.csv")
		cfg.Itineraries.Path = "itineraries.csv"
	}
	if cfg.Itineraries.WaypointSeparator == "" {
		log.Warningf("fillDefaults: waypoint_separator not specified, using default: -")
		cfg.Itineraries.WaypointSeparator = "-"
	}
	if cfg.Analysis.MissingEdgePolicy == "" {
		log.Warningf("fillDefaults: missing_edge_policy not specified, using default: %s", overlap.PolicyLenient)
		cfg.Analysis.MissingEdgePolicy = string(overlap.PolicyLenient)
	}
	if cfg.Output.Directory == "" {
		log.Warningf("fillDefaults: output directory not specified, using default: results")
		cfg.Output.Directory = "results"
	}
}

// Validate rejects enumeration values no component can act on.
func Validate(cfg *Config) error {
	if _, err := overlap.ParsePolicy(cfg.Analysis.MissingEdgePolicy); err != nil {
		return fmt.Errorf("analysis.missing_edge_policy: %w", err)
	}

	for _, format := range cfg.Output.Formats {
		if _, err := reporting.GetGlobal(format); err != nil {
			return fmt.Errorf("output.formats: %w (registered: %v)", err, reporting.ListGlobal())
		}
	}

	if cfg.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must not be negative, got %d", cfg.Analysis.Workers)
	}
	if cfg.Analysis.MaxGraphNodes < 0 {
		return fmt.Errorf("analysis.max_graph_nodes must not be negative, got %d", cfg.Analysis.MaxGraphNodes)
	}

	return nil
}
