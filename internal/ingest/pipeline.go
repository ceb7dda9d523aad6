package ingest

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/strava"
	"github.com/2beens/lejogtracker/internal/telemetry/metrics"
	"github.com/2beens/lejogtracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=pipeline_mocks_test.go -package=ingest_test

const DefaultCallTimeout = 30 * time.Second

type stravaAPI interface {
	RefreshToken(ctx context.Context) (*strava.Credential, error)
	ListActivities(ctx context.Context, credential *strava.Credential, after time.Time, perPage int) ([]strava.SummaryActivity, error)
}

type snapshotWriter interface {
	Save(ctx context.Context, snapshot *activity.Snapshot) error
}

type clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type PipelineParams struct {
	API       stravaAPI
	Writer    snapshotWriter
	Clock     clock
	StartDate time.Time
	// PerPage is the size of the single page requested from strava
	PerPage     int
	Kinds       []activity.Kind
	CallTimeout time.Duration
	Metrics     *metrics.Manager
}

// Pipeline pulls activities from strava and replaces the local snapshot with them.
// Runs are not serialized here; see Scheduler.
type Pipeline struct {
	api         stravaAPI
	writer      snapshotWriter
	clock       clock
	startDate   time.Time
	perPage     int
	kinds       []activity.Kind
	callTimeout time.Duration
	metrics     *metrics.Manager
}

func NewPipeline(params PipelineParams) (*Pipeline, error) {
	if params.API == nil || params.Writer == nil {
		return nil, fmt.Errorf("%w: pipeline needs a strava api and a snapshot writer", ErrConfig)
	}
	if params.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date not set", ErrConfig)
	}
	if params.Metrics == nil {
		return nil, fmt.Errorf("%w: metrics manager not set", ErrConfig)
	}

	p := &Pipeline{
		api:         params.API,
		writer:      params.Writer,
		clock:       params.Clock,
		startDate:   params.StartDate,
		perPage:     params.PerPage,
		kinds:       params.Kinds,
		callTimeout: params.CallTimeout,
		metrics:     params.Metrics,
	}
	if p.clock == nil {
		p.clock = SystemClock{}
	}
	if p.perPage <= 0 || p.perPage > strava.MaxPageSize {
		p.perPage = strava.MaxPageSize
	}
	if len(p.kinds) == 0 {
		p.kinds = []activity.Kind{activity.KindWalk, activity.KindHike}
	}
	if p.callTimeout <= 0 {
		p.callTimeout = DefaultCallTimeout
	}

	return p, nil
}

// Sync runs a single refresh -> fetch -> filter -> normalize -> persist pass.
// A failed refresh or fetch leaves the existing snapshot untouched.
func (p *Pipeline) Sync(ctx context.Context) (_ *activity.Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "ingest.pipeline.sync")
	startedAt := p.clock.Now()
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		result := metrics.SyncResultSuccess
		if err != nil {
			result = ErrorKind(err)
		}
		p.metrics.CounterSyncRuns.WithLabelValues(result).Inc()
		p.metrics.HistSyncDuration.Observe(p.clock.Now().Sub(startedAt).Seconds())
	}()

	log.Infoln("refreshing strava access token ...")
	credential, err := p.refreshToken(ctx)
	if err != nil {
		return nil, err
	}
	log.Infoln("successfully refreshed access token")
	log.Infof("new token expires at: %s", credential.ExpiresAt.UTC().Format(time.RFC3339))

	log.Infof("fetching activities since %s ...", p.startDate.Format(activity.DateLayout))
	fetched, err := p.listActivities(ctx, credential)
	if err != nil {
		return nil, err
	}
	p.metrics.CounterActivitiesFetched.Add(float64(len(fetched)))

	records := Normalize(FilterByKind(fetched, p.kinds))
	log.Infof("found %d activities, %d of kind %v", len(fetched), len(records), p.kinds)

	snapshot := activity.NewSnapshot(p.clock.Now(), p.startDate, records)
	span.SetAttributes(
		attribute.Int("fetched", len(fetched)),
		attribute.Int("retained", len(records)),
		attribute.Float64("total_distance_km", snapshot.TotalDistanceKm),
	)

	if err := p.writer.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	p.metrics.GaugeSnapshotActivities.Set(float64(len(snapshot.Activities)))
	p.metrics.GaugeTotalDistanceKm.Set(snapshot.TotalDistanceKm)
	p.metrics.GaugeLastSyncTimestamp.Set(float64(snapshot.LastUpdated.Unix()))

	log.Infof("total distance: %.2f km", snapshot.TotalDistanceKm)

	return snapshot, nil
}

func (p *Pipeline) refreshToken(ctx context.Context) (*strava.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	credential, err := p.api.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %w", ErrAuth, err)
	}
	if credential == nil || credential.AccessToken == "" {
		return nil, fmt.Errorf("%w: refresh token: %w", ErrAuth, strava.ErrMissingToken)
	}
	return credential, nil
}

func (p *Pipeline) listActivities(ctx context.Context, credential *strava.Credential) ([]strava.SummaryActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	fetched, err := p.api.ListActivities(ctx, credential, p.startDate, p.perPage)
	if err != nil {
		return nil, fmt.Errorf("%w: list activities: %w", ErrFetch, err)
	}
	if len(fetched) >= p.perPage {
		log.Warnf("got a full page of %d activities, older activities in the window are not fetched", len(fetched))
	}
	return fetched, nil
}

// FilterByKind keeps the activities whose type is one of kinds, in their original order.
func FilterByKind(activities []strava.SummaryActivity, kinds []activity.Kind) []strava.SummaryActivity {
	filtered := make([]strava.SummaryActivity, 0, len(activities))
	for _, a := range activities {
		if slices.Contains(kinds, activity.Kind(a.Type)) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// Normalize projects strava activities onto the snapshot record shape.
func Normalize(activities []strava.SummaryActivity) []activity.Record {
	records := make([]activity.Record, 0, len(activities))
	for _, a := range activities {
		records = append(records, a.ToRecord())
	}
	return records
}
