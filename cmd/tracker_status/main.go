package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/config"
	"github.com/2beens/lejogtracker/internal/logging"
	"github.com/2beens/lejogtracker/internal/route"
	"github.com/2beens/lejogtracker/internal/telemetry/metrics"
	"github.com/2beens/lejogtracker/internal/tracker"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Prints the current tracker view for the local snapshot, without starting the service.
func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	snapshotPath := flag.String("snapshot", "", "snapshot file path, overrides the one from config")
	verbose := flag.Bool("v", false, "also print the loading state and debug logs")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}
	if *snapshotPath != "" {
		cfg.SnapshotPath = *snapshotPath
	}

	logLevel := "warn"
	if *verbose {
		logLevel = "debug"
	}
	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    logLevel,
		Environment: cfg.Environment,
	})

	journey, err := cfg.JourneySettings()
	if err != nil {
		log.Fatalf("journey: %s", err)
	}
	projector, err := route.NewProjector(cfg.Waypoints())
	if err != nil {
		log.Fatalf("route: %s", err)
	}

	orchestrator, err := tracker.NewOrchestrator(tracker.OrchestratorParams{
		Reader:    activity.NewFileStore(cfg.SnapshotPath),
		Journey:   journey,
		Projector: projector,
		StartName: cfg.Route.StartName,
		EndName:   cfg.Route.EndName,
		Metrics:   metrics.NewManager("lejog", "tracker_status", prometheus.NewRegistry()),
	})
	if err != nil {
		log.Fatalf("new orchestrator: %s", err)
	}

	if _, err := orchestrator.Run(context.Background(), tracker.NewTextRenderer(os.Stdout, *verbose)); err != nil {
		os.Exit(1)
	}
}
