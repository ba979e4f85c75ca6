package main

import (
	"flag"
	"io"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/adi180397/Robot-Routing/analysis"
	"github.com/adi180397/Robot-Routing/common"
	"github.com/adi180397/Robot-Routing/config"
	"github.com/adi180397/Robot-Routing/ingestion"
	"github.com/adi180397/Robot-Routing/od_table"
	"github.com/adi180397/Robot-Routing/overlap"
	"github.com/adi180397/Robot-Routing/reporting"
	"github.com/adi180397/Robot-Routing/roadnet"
)

// log init
func init() {
	logDir := "./logs"
	os.MkdirAll(logDir, 0755)

	// Configure log rotation with lumberjack
	fileLogger := &lumberjack.Logger{
		Filename:   logDir + "/robot_routing.log",
		MaxSize:    100,  // MB
		MaxBackups: 7,    // Keep 7 old log files
		MaxAge:     30,   // Days
		Compress:   true, // Compress old log files
	}

	// Output to both file and stdout
	multiWriter := io.MultiWriter(os.Stdout, fileLogger)
	log.SetOutput(multiWriter)

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	log.SetLevel(log.InfoLevel)

	log.Infof("Logging initialized: file=%s/robot_routing.log, stdout=enabled", logDir)
}

func main() {
	configPath := flag.String("config", "robot_routing_config.toml", "path to the TOML configuration file")
	networkPath := flag.String("network", "", "network CSV path, overrides the config value")
	itinerariesPath := flag.String("itineraries", "", "itinerary CSV path, overrides the config value")
	outputDir := flag.String("output", "", "export directory, overrides the config value")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading configuration failed, err:%v", err)
	}
	if *networkPath != "" {
		cfg.Network.Path = *networkPath
	}
	if *itinerariesPath != "" {
		cfg.Itineraries.Path = *itinerariesPath
	}
	if *outputDir != "" {
		cfg.Output.Directory = *outputDir
	}

	if diag, err := common.CollectHostDiagnostics(); err != nil {
		log.Warnf("main: host diagnostics unavailable, err:%v", err)
	} else {
		log.Infof("main: host=%s platform=%s %s, cpu_cores=%d, mem_total=%d, mem_available=%d",
			diag.Hostname, diag.Platform, diag.PlatformVersion,
			diag.CPUCores, diag.MemoryTotal, diag.MemoryAvailable)
	}

	segments, err := ingestion.LoadRoadSegments(cfg.Network.Path)
	if err != nil {
		log.Fatalf("loading road segments failed, err:%v", err)
	}
	net := roadnet.BuildRoadNetwork(segments)

	robots, err := ingestion.LoadItineraries(cfg.Itineraries.Path, cfg.Itineraries.WaypointSeparator)
	if err != nil {
		log.Fatalf("loading itineraries failed, err:%v", err)
	}

	policy, err := overlap.ParsePolicy(cfg.Analysis.MissingEdgePolicy)
	if err != nil {
		log.Fatalf("invalid missing edge policy, err:%v", err)
	}

	pool, err := common.NewPool(common.PoolConfig{MaxWorkers: cfg.Analysis.Workers})
	if err != nil {
		log.Fatalf("creating goroutine pool failed, err:%v", err)
	}
	defer pool.Release()

	buildStart := time.Now()
	table, err := od_table.Build(net, od_table.BuildOptions{
		Pool:     pool,
		MaxNodes: cfg.Analysis.MaxGraphNodes,
	})
	if err != nil {
		log.Fatalf("building od table failed, err:%v", err)
	}
	log.Infof("main: od table built in %v, pairs=%d", time.Since(buildStart), table.PairCount())

	manager := analysis.NewManager(net, table, analysis.Options{Policy: policy, Pool: pool})
	reports, err := manager.AnalyzeAll(robots)
	if err != nil {
		log.Fatalf("analysis failed, err:%v", err)
	}

	set := reporting.BuildRecords(reports)
	reporting.RenderTable(os.Stdout, "Forward Results", set.Forward)
	reporting.RenderTable(os.Stdout, "Reverse Results", set.Reverse)
	reporting.RenderTable(os.Stdout, "Final Results", set.Final)

	if err := reporting.Export(cfg.Output.Directory, cfg.Output.Formats, set); err != nil {
		log.Fatalf("exporting results failed, err:%v", err)
	}

	log.Infof("main: run complete, robots=%d", len(reports))
}
