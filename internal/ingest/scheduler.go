package ingest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

const (
	StatusRunning = "running"
	StatusStopped = "stopped"
)

//go:generate mockgen -source=$GOFILE -destination=scheduler_mocks_test.go -package=ingest_test

type syncer interface {
	Sync(ctx context.Context) (*activity.Snapshot, error)
}

// RunInfo describes the outcome of the most recent sync run.
type RunInfo struct {
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	Result          string    `json:"result"`
	Error           string    `json:"error,omitempty"`
	Activities      int       `json:"activities"`
	TotalDistanceKm float64   `json:"totalDistance"`
}

type SchedulerStatus struct {
	Status     string   `json:"status"`
	Interval   string   `json:"interval"`
	InProgress bool     `json:"inProgress"`
	LastRun    *RunInfo `json:"lastRun,omitempty"`
}

// Scheduler runs the sync pipeline periodically. Only one run is active at a time,
// whether started by the ticker or by RunOnce.
type Scheduler struct {
	syncer   syncer
	interval time.Duration
	onSynced func(*activity.Snapshot)

	runMu      sync.Mutex
	inProgress atomic.Bool

	// guards Start/Stop
	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}

	mu      sync.RWMutex
	running bool
	lastRun *RunInfo
}

// NewScheduler creates a stopped scheduler. onSynced (optional) is called after
// every successful run with the new snapshot.
func NewScheduler(syncer syncer, interval time.Duration, onSynced func(*activity.Snapshot)) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		onSynced: onSynced,
	}
}

// Start runs a sync right away and then every interval. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.IsRunning() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	log.Debugf("sync scheduler starting, interval: %s", s.interval)

	go s.loop(ctx, s.done)
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runScheduled(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runScheduled(ctx)
		}
	}
}

func (s *Scheduler) runScheduled(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			log.Debugln("scheduled sync skipped, another sync in progress")
			return
		}
		if ctx.Err() != nil {
			return
		}
		log.Errorf("scheduled sync failed [%s]: %s", ErrorKind(err), err)
	}
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *Scheduler) Stop() {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if !s.IsRunning() {
		return
	}

	s.cancel()
	<-s.done

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	log.Debugln("sync scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Scheduler) Status() string {
	if s.IsRunning() {
		return StatusRunning
	}
	return StatusStopped
}

// RunOnce performs a single sync now. Returns ErrSyncInProgress when another run is active.
func (s *Scheduler) RunOnce(ctx context.Context) (*activity.Snapshot, error) {
	if !s.runMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.runMu.Unlock()

	s.inProgress.Store(true)
	defer s.inProgress.Store(false)

	info := &RunInfo{StartedAt: time.Now()}
	snapshot, err := s.syncer.Sync(ctx)
	info.FinishedAt = time.Now()
	if err != nil {
		info.Result = ErrorKind(err)
		info.Error = err.Error()
	} else {
		info.Result = metrics.SyncResultSuccess
		info.Activities = len(snapshot.Activities)
		info.TotalDistanceKm = snapshot.TotalDistanceKm
	}

	s.mu.Lock()
	s.lastRun = info
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if s.onSynced != nil {
		s.onSynced(snapshot)
	}

	return snapshot, nil
}

// LastRun returns a copy of the latest run info, if there was one.
func (s *Scheduler) LastRun() (RunInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return RunInfo{}, false
	}
	return *s.lastRun, true
}

func (s *Scheduler) StatusInfo() SchedulerStatus {
	status := SchedulerStatus{
		Status:     s.Status(),
		Interval:   s.interval.String(),
		InProgress: s.inProgress.Load(),
	}
	if lastRun, ok := s.LastRun(); ok {
		status.LastRun = &lastRun
	}
	return status
}
