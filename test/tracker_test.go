package test

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
	"github.com/2beens/lejogtracker/internal/ingest"
	"github.com/2beens/lejogtracker/internal/tracker"

	"github.com/paulmach/orb/geojson"
)

func (s *TrackerTestSuite) TestTracker_InitialSyncAndView() {
	// the scheduler syncs once on start
	s.Require().Eventually(func() bool {
		var view tracker.View
		status := s.getJSON("/tracker", &view)
		return status == http.StatusOK && view.State == tracker.StateReady && view.Model.ActivitiesCount == 2
	}, 5*time.Second, 20*time.Millisecond)

	var view tracker.View
	s.Equal(http.StatusOK, s.getJSON("/tracker", &view))
	s.Require().NotNil(view.Model)
	s.InDelta(20.0, view.Model.Stats.ActualDistanceKm, 0.001)
	s.Equal(testStartDate, view.Model.StartDate)
	s.Equal("20.00 km", view.Model.Labels.DistanceWalked)
	s.Equal("Land's End", view.Model.Route.Start.Name)

	// walk and hike kept, ride dropped
	data, err := os.ReadFile(s.cfg.SnapshotPath)
	s.Require().NoError(err)
	snapshot, err := activity.DecodeSnapshot(data)
	s.Require().NoError(err)
	s.Len(snapshot.Activities, 2)
	s.Equal(testStartDate, snapshot.StartDate)
	for _, a := range snapshot.Activities {
		s.NotEqual(activity.KindRide, a.Kind)
	}

	// midnight 2026-01-01 in London is midnight UTC
	s.Equal("1767225600", s.strava.lastAfterParam.Load())
}

func (s *TrackerTestSuite) TestTracker_Activities() {
	s.waitReady()

	var snapshot activity.Snapshot
	s.Equal(http.StatusOK, s.getJSON("/tracker/activities", &snapshot))
	s.Len(snapshot.Activities, 2)
	s.InDelta(20.0, snapshot.TotalDistanceKm, 0.001)
}

func (s *TrackerTestSuite) TestTracker_RouteGeoJSON() {
	s.waitReady()

	resp, err := s.httpClient.Get(s.serverEndpoint + "/tracker/route.geojson")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/geo+json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	fc, err := geojson.UnmarshalFeatureCollection(body)
	s.Require().NoError(err)
	s.Len(fc.Features, 5)
}

func (s *TrackerTestSuite) TestTracker_ManualSync() {
	s.waitReady()
	tokenCallsBefore := s.strava.tokenCalls.Load()

	resp, err := s.httpClient.Post(s.serverEndpoint+"/tracker/sync", "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	var status ingest.SchedulerStatus
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))
	s.Equal(ingest.StatusRunning, status.Status)
	s.Require().NotNil(status.LastRun)
	s.Equal("success", status.LastRun.Result)
	s.Equal(2, status.LastRun.Activities)
	s.Equal(tokenCallsBefore+1, s.strava.tokenCalls.Load())
}

func (s *TrackerTestSuite) TestTracker_FailedSyncKeepsSnapshot() {
	s.waitReady()
	before, err := os.ReadFile(s.cfg.SnapshotPath)
	s.Require().NoError(err)

	s.strava.rejectRefresh.Store(true)
	defer s.strava.rejectRefresh.Store(false)

	resp, err := s.httpClient.Post(s.serverEndpoint+"/tracker/sync", "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusBadGateway, resp.StatusCode)

	var status ingest.SchedulerStatus
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&status))
	s.Require().NotNil(status.LastRun)
	s.Equal("auth", status.LastRun.Result)

	after, err := os.ReadFile(s.cfg.SnapshotPath)
	s.Require().NoError(err)
	s.Equal(before, after)

	// the view is still served from the old snapshot
	var view tracker.View
	s.Equal(http.StatusOK, s.getJSON("/tracker", &view))
	s.NotEqual(tracker.StateError, view.State)
}

func (s *TrackerTestSuite) TestMetricsEndpoint() {
	s.waitReady()

	resp, err := s.httpClient.Get(s.metricsURL)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	metrics := string(body)
	s.True(strings.Contains(metrics, "lejog_tracker_sync_runs"), "sync runs counter missing")
	s.True(strings.Contains(metrics, "lejog_tracker_life_signal 1"), "life signal not set")
}

func (s *TrackerTestSuite) TestUnknownPath() {
	resp, err := s.httpClient.Get(s.serverEndpoint + "/blog/all")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *TrackerTestSuite) waitReady() {
	s.Require().Eventually(func() bool {
		_, ok := s.readyView()
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func (s *TrackerTestSuite) readyView() (tracker.View, bool) {
	var view tracker.View
	if s.getJSON("/tracker", &view) != http.StatusOK {
		return view, false
	}
	return view, view.State == tracker.StateReady
}
