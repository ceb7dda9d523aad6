package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/config"
	"github.com/2beens/lejogtracker/internal/ingest"
	"github.com/2beens/lejogtracker/internal/logging"
	"github.com/2beens/lejogtracker/internal/strava"
	"github.com/2beens/lejogtracker/internal/telemetry/metrics"
	"github.com/2beens/lejogtracker/internal/telemetry/tracing"
	"github.com/2beens/lejogtracker/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Errorf("load config: %s", err)
		os.Exit(1)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout:      true,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "strava-sync",
	})

	// secrets are checked before any network call
	secrets, err := config.LoadSecrets()
	if err != nil {
		exitWithError(err)
	}
	log.Debugf("using %s", secrets)

	if err := cfg.OverrideStartDate(secrets.StartDate); err != nil {
		exitWithError(err)
	}
	journey, err := cfg.JourneySettings()
	if err != nil {
		exitWithError(err)
	}

	if err := pkg.EnsureParentDir(cfg.SnapshotPath); err != nil {
		exitWithError(err)
	}

	otelShutdown, err := tracing.HoneycombSetup(cfg.HoneycombEnabled, "strava-sync")
	if err != nil {
		exitWithError(err)
	}
	defer otelShutdown()

	pipeline, err := ingest.NewPipeline(ingest.PipelineParams{
		API: strava.NewClient(strava.ClientParams{
			TokenURL:     cfg.Strava.TokenURL,
			APIBaseURL:   cfg.Strava.APIBaseURL,
			ClientID:     secrets.ClientID,
			ClientSecret: secrets.ClientSecret,
			RefreshToken: secrets.RefreshToken,
			HTTPTimeout:  cfg.Strava.HTTPTimeout.Duration,
		}),
		Writer:      activity.NewFileStore(cfg.SnapshotPath),
		StartDate:   journey.StartDate,
		PerPage:     cfg.Strava.PageSize,
		Kinds:       cfg.ActivityKinds(),
		CallTimeout: cfg.Strava.HTTPTimeout.Duration,
		Metrics:     metrics.NewManager("lejog", "strava_sync", metrics.SetupPrometheus()),
	})
	if err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshot, err := pipeline.Sync(ctx)
	if err != nil {
		otelShutdown()
		exitWithError(err)
	}

	log.Infof("saved %d activities to %s", len(snapshot.Activities), cfg.SnapshotPath)
	log.Infof("total distance: %.2f km", snapshot.TotalDistanceKm)
}

func exitWithError(err error) {
	log.WithField("kind", ingest.ErrorKind(err)).Errorf("strava sync failed: %s", err)
	os.Exit(1)
}
