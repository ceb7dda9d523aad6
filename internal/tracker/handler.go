package tracker

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/ingest"
	"github.com/2beens/lejogtracker/internal/telemetry/tracing"
	"github.com/2beens/lejogtracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=tracker_test

type syncRunner interface {
	RunOnce(ctx context.Context) (*activity.Snapshot, error)
	StatusInfo() ingest.SchedulerStatus
}

const statusDisabled = "disabled"

type Handler struct {
	orchestrator *Orchestrator
	board        *Board
	reader       snapshotReader
	// nil when syncing is disabled in this process
	syncRunner syncRunner
}

func NewHandler(orchestrator *Orchestrator, board *Board, reader snapshotReader, syncRunner syncRunner) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		board:        board,
		reader:       reader,
		syncRunner:   syncRunner,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/tracker", h.HandleView).Methods("GET", "OPTIONS").Name("tracker-view")
	r.HandleFunc("/tracker/route.geojson", h.HandleRouteGeoJSON).Methods("GET", "OPTIONS").Name("tracker-route")
	r.HandleFunc("/tracker/activities", h.HandleActivities).Methods("GET", "OPTIONS").Name("tracker-activities")
	r.HandleFunc("/tracker/refresh", h.HandleRefresh).Methods("POST", "OPTIONS").Name("tracker-refresh")
	r.HandleFunc("/tracker/sync", h.HandleSync).Methods("POST", "OPTIONS").Name("tracker-sync")
	r.HandleFunc("/tracker/sync/status", h.HandleSyncStatus).Methods("GET", "OPTIONS").Name("tracker-sync-status")
}

// HandleView returns the latest view. The error state is served with 503.
func (h *Handler) HandleView(w http.ResponseWriter, _ *http.Request) {
	view := h.board.View()
	statusCode := http.StatusOK
	if view.State == StateError {
		statusCode = http.StatusServiceUnavailable
	}
	pkg.SendJsonResponse(w, statusCode, view)
}

func (h *Handler) HandleRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "tracker.handler.routeGeoJSON")
	defer span.End()

	model, ok := h.board.LastReady()
	if !ok {
		pkg.SendJsonError(w, http.StatusServiceUnavailable, "tracker data not loaded yet")
		return
	}

	fc := h.orchestrator.Projector().FeatureCollection(
		model.ProgressFraction,
		h.orchestrator.StartName(),
		h.orchestrator.EndName(),
	)
	fcJson, err := fc.MarshalJSON()
	if err != nil {
		log.Errorf("marshal route feature collection: %s", err)
		pkg.SendJsonError(w, http.StatusInternalServerError, "failed to render route")
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.GeoJSON, fcJson)
}

func (h *Handler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	var err error
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "tracker.handler.activities")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot, err := h.reader.Load(ctx)
	if err != nil {
		log.Errorf("get activities: %s", err)
		if errors.Is(err, activity.ErrSnapshotNotFound) {
			pkg.SendJsonError(w, http.StatusNotFound, "no activity data yet")
			return
		}
		pkg.SendJsonError(w, http.StatusServiceUnavailable, "activity data unavailable")
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, snapshot)
}

// HandleRefresh runs the orchestrator right away and returns the resulting view.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if _, err := h.orchestrator.Run(r.Context(), h.board); err != nil {
		pkg.SendJsonResponse(w, http.StatusServiceUnavailable, h.board.View())
		return
	}
	pkg.SendJsonResponse(w, http.StatusOK, h.board.View())
}

func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	if h.syncRunner == nil {
		pkg.SendJsonError(w, http.StatusServiceUnavailable, "sync disabled")
		return
	}

	// the run must not die with the request
	ctx := context.WithoutCancel(r.Context())
	if _, err := h.syncRunner.RunOnce(ctx); err != nil {
		if errors.Is(err, ingest.ErrSyncInProgress) {
			pkg.SendJsonResponse(w, http.StatusConflict, h.syncRunner.StatusInfo())
			return
		}
		log.Errorf("manual sync failed [%s]: %s", ingest.ErrorKind(err), err)
		pkg.SendJsonResponse(w, http.StatusBadGateway, h.syncRunner.StatusInfo())
		return
	}

	pkg.SendJsonResponse(w, http.StatusOK, h.syncRunner.StatusInfo())
}

func (h *Handler) HandleSyncStatus(w http.ResponseWriter, _ *http.Request) {
	if h.syncRunner == nil {
		pkg.SendJsonResponse(w, http.StatusOK, ingest.SchedulerStatus{Status: statusDisabled})
		return
	}
	pkg.SendJsonResponse(w, http.StatusOK, h.syncRunner.StatusInfo())
}
