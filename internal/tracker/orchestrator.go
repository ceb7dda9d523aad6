package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/route"
	"github.com/2beens/lejogtracker/internal/schedule"
	"github.com/2beens/lejogtracker/internal/telemetry/metrics"
	"github.com/2beens/lejogtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=orchestrator_mocks_test.go -package=tracker_test

var ErrDataUnavailable = errors.New("activity data unavailable")

type snapshotReader interface {
	Load(ctx context.Context) (*activity.Snapshot, error)
}

type clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

type OrchestratorParams struct {
	Reader    snapshotReader
	Clock     clock
	Journey   schedule.Journey
	Projector *route.Projector
	StartName string
	EndName   string
	Metrics   *metrics.Manager
}

// Orchestrator turns the latest snapshot into a ViewModel and reports every
// state it passes through to a render sink.
type Orchestrator struct {
	reader    snapshotReader
	clock     clock
	journey   schedule.Journey
	projector *route.Projector
	startName string
	endName   string
	metrics   *metrics.Manager
}

func NewOrchestrator(params OrchestratorParams) (*Orchestrator, error) {
	if params.Reader == nil || params.Projector == nil || params.Metrics == nil {
		return nil, errors.New("orchestrator needs a snapshot reader, a route projector and metrics")
	}
	if params.Journey.TotalDistanceKm <= 0 {
		return nil, fmt.Errorf("invalid journey total distance: %f", params.Journey.TotalDistanceKm)
	}

	o := &Orchestrator{
		reader:    params.Reader,
		clock:     params.Clock,
		journey:   params.Journey,
		projector: params.Projector,
		startName: params.StartName,
		endName:   params.EndName,
		metrics:   params.Metrics,
	}
	if o.clock == nil {
		o.clock = systemClock{}
	}

	return o, nil
}

func (o *Orchestrator) Projector() *route.Projector {
	return o.projector
}

func (o *Orchestrator) StartName() string {
	return o.startName
}

func (o *Orchestrator) EndName() string {
	return o.endName
}

// Run renders the loading state, loads the snapshot and renders either the
// error state or the ready state with the computed model.
func (o *Orchestrator) Run(ctx context.Context, sink Renderer) (_ *ViewModel, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.orchestrator.run")
	state := StateLoading
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		o.metrics.CounterTrackerRuns.WithLabelValues(string(state)).Inc()
	}()

	sink.Render(View{State: StateLoading})

	snapshot, err := o.reader.Load(ctx)
	if err != nil {
		state = StateError
		err = fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		log.Errorf("failed to load activity data: %s", err)
		sink.Render(View{
			State: StateError,
			Error: fmt.Sprintf("Failed to load activity data: %s", err),
		})
		return nil, err
	}

	model := o.Compute(snapshot, o.clock.Now())
	span.SetAttributes(
		attribute.Int("activities", model.ActivitiesCount),
		attribute.Float64("progress_fraction", model.ProgressFraction),
	)

	state = StateReady
	sink.Render(View{State: StateReady, Model: model})

	return model, nil
}

// Compute builds the ViewModel for the snapshot at instant now. Pure.
func (o *Orchestrator) Compute(snapshot *activity.Snapshot, now time.Time) *ViewModel {
	loc := o.journey.StartDate.Location()
	stats := schedule.Compute(snapshot.Activities, o.journey, now.In(loc))
	fraction := stats.ActualDistanceKm / o.journey.TotalDistanceKm

	return &ViewModel{
		Stats:              stats,
		StartDate:          o.journey.StartDate.Format(activity.DateLayout),
		TotalDistanceKm:    o.journey.TotalDistanceKm,
		WeeklyTargetKm:     o.journey.WeeklyTargetKm,
		ProgressFraction:   fraction,
		ProgressBarPercent: min(stats.ProgressPercent, 100),
		Ahead:              stats.Ahead(),
		Labels:             newLabels(stats, snapshot.LastUpdated, loc),
		Route: RouteView{
			Planned:      o.projector.Waypoints(),
			Completed:    o.projector.CompletedPrefix(fraction),
			Current:      o.projector.Project(fraction),
			SegmentIndex: o.projector.SegmentIndex(fraction),
			Start:        Marker{Name: o.startName, Position: o.projector.Start()},
			End:          Marker{Name: o.endName, Position: o.projector.End()},
		},
		ActivitiesCount: len(snapshot.Activities),
		LastUpdated:     snapshot.LastUpdated,
		GeneratedAt:     now,
	}
}

// RunEvery runs the orchestrator right away and then on every tick until ctx is done.
// Errors are already reported to the sink, so they are only logged here.
func (o *Orchestrator) RunEvery(ctx context.Context, sink Renderer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := o.Run(ctx, sink); err != nil {
			log.Debugf("tracker run: %s", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
