package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/config"
	"github.com/2beens/lejogtracker/internal/ingest"
	"github.com/2beens/lejogtracker/internal/middleware"
	"github.com/2beens/lejogtracker/internal/route"
	"github.com/2beens/lejogtracker/internal/strava"
	"github.com/2beens/lejogtracker/internal/telemetry/metrics"
	"github.com/2beens/lejogtracker/internal/telemetry/tracing"
	"github.com/2beens/lejogtracker/internal/tracker"
	"github.com/2beens/lejogtracker/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config       *config.Config
	board        *tracker.Board
	orchestrator *tracker.Orchestrator
	reader       *activity.CachedReader
	// nil when sync is disabled
	scheduler *ingest.Scheduler

	// cancels the periodic view refresh
	refreshCancel context.CancelFunc
	refreshDone   sync.WaitGroup

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config *config.Config
	// Secrets are required only when sync is enabled
	Secrets                 *config.Secrets
	HoneycombTracingEnabled bool
}

func NewServer(params NewServerParams) (*Server, error) {
	cfg := params.Config
	if cfg == nil {
		return nil, fmt.Errorf("%w: config not set", config.ErrConfig)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("lejog", "tracker", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0) // set to 1 once serving

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "lejog-tracker")
	if err != nil {
		return nil, err
	}

	if cfg.SyncEnabled {
		if params.Secrets == nil {
			return nil, fmt.Errorf("%w: sync enabled but strava secrets not set", config.ErrConfig)
		}
		if err := cfg.OverrideStartDate(params.Secrets.StartDate); err != nil {
			return nil, err
		}
	}

	journey, err := cfg.JourneySettings()
	if err != nil {
		return nil, err
	}

	projector, err := route.NewProjector(cfg.Waypoints())
	if err != nil {
		return nil, fmt.Errorf("%w: route: %w", config.ErrConfig, err)
	}

	reader := activity.NewCachedReader(cfg.SnapshotPath, cfg.SnapshotCacheSizeMB)
	orchestrator, err := tracker.NewOrchestrator(tracker.OrchestratorParams{
		Reader:    reader,
		Journey:   journey,
		Projector: projector,
		StartName: cfg.Route.StartName,
		EndName:   cfg.Route.EndName,
		Metrics:   metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new orchestrator: %w", err)
	}

	s := &Server{
		config:       cfg,
		board:        tracker.NewBoard(),
		orchestrator: orchestrator,
		reader:       reader,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.SyncEnabled {
		s.scheduler, err = s.newSyncScheduler(params.Secrets, journey.StartDate)
		if err != nil {
			return nil, err
		}
	} else {
		log.Debugln("strava sync disabled, serving the existing snapshot only")
	}

	return s, nil
}

func (s *Server) newSyncScheduler(secrets *config.Secrets, startDate time.Time) (*ingest.Scheduler, error) {
	client := strava.NewClient(strava.ClientParams{
		TokenURL:     s.config.Strava.TokenURL,
		APIBaseURL:   s.config.Strava.APIBaseURL,
		ClientID:     secrets.ClientID,
		ClientSecret: secrets.ClientSecret,
		RefreshToken: secrets.RefreshToken,
		HTTPTimeout:  s.config.Strava.HTTPTimeout.Duration,
	})

	pipeline, err := ingest.NewPipeline(ingest.PipelineParams{
		API:         client,
		Writer:      activity.NewFileStore(s.config.SnapshotPath),
		StartDate:   startDate,
		PerPage:     s.config.Strava.PageSize,
		Kinds:       s.config.ActivityKinds(),
		CallTimeout: s.config.Strava.HTTPTimeout.Duration,
		Metrics:     s.metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("new sync pipeline: %w", err)
	}

	return ingest.NewScheduler(pipeline, s.config.SyncInterval.Duration, s.onSynced), nil
}

// onSynced re-renders the board from the freshly written snapshot.
func (s *Server) onSynced(snapshot *activity.Snapshot) {
	log.Debugf("snapshot synced, %d activities, re-rendering tracker view", len(snapshot.Activities))
	if _, err := s.orchestrator.Run(context.Background(), s.board); err != nil {
		log.Errorf("tracker run after sync: %s", err)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("tracker-router"))

	// keep the handler's sync runner a true nil interface when sync is disabled
	var trackerHandler *tracker.Handler
	if s.scheduler != nil {
		trackerHandler = tracker.NewHandler(s.orchestrator, s.board, s.reader, s.scheduler)
	} else {
		trackerHandler = tracker.NewHandler(s.orchestrator, s.board, s.reader, nil)
	}
	trackerHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, _ *http.Request) {
		pkg.SendJsonError(w, http.StatusNotFound, "not found")
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.startBackground(ctx)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// startBackground starts the periodic view refresh and, if enabled, the sync scheduler.
func (s *Server) startBackground(ctx context.Context) {
	refreshCtx, cancel := context.WithCancel(ctx)
	s.refreshCancel = cancel
	s.refreshDone.Add(1)
	go func() {
		defer s.refreshDone.Done()
		s.orchestrator.RunEvery(refreshCtx, s.board, s.config.ViewRefreshInterval.Duration)
	}()

	if s.scheduler != nil {
		s.scheduler.Start()
	}
}

// stopBackground stops the sync scheduler (waiting for an in-flight run) and the view refresh.
func (s *Server) stopBackground() {
	if s.scheduler != nil {
		s.scheduler.Stop()
		log.Debugln("sync scheduler stopped")
	}
	if s.refreshCancel != nil {
		s.refreshCancel()
		s.refreshDone.Wait()
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.stopBackground()

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
