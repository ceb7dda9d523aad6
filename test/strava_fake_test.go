package test

import (
	"fmt"
	"net/http"
	"time"
)

const (
	testClientID     = "4242"
	testClientSecret = "client-secret"
	testRefreshToken = "refresh-token"
	testAccessToken  = "access-token"
	testStartDate    = "2026-01-01"
)

func newFakeStrava() *fakeStrava {
	f := &fakeStrava{mux: http.NewServeMux()}
	f.lastAfterParam.Store("")

	f.mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		if f.rejectRefresh.Load() || r.FormValue("refresh_token") != testRefreshToken || r.FormValue("client_id") != testClientID {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Authorization Error"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"token_type":"Bearer","access_token":%q,"expires_at":%d,"expires_in":21600,"refresh_token":%q}`,
			testAccessToken, time.Now().Add(6*time.Hour).Unix(), testRefreshToken)
	})

	f.mux.HandleFunc("GET /api/v3/athlete/activities", func(w http.ResponseWriter, r *http.Request) {
		f.activityCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer "+testAccessToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.lastAfterParam.Store(r.URL.Query().Get("after"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Morning Walk", "distance": 5200.0, "type": "Walk", "sport_type": "Walk", "start_date": "2026-01-02T08:00:00Z", "moving_time": 3600, "elapsed_time": 3900, "total_elevation_gain": 12.5},
			{"id": 2, "name": "Evening Ride", "distance": 30000.0, "type": "Ride", "sport_type": "Ride", "start_date": "2026-01-02T18:00:00Z", "moving_time": 4000, "elapsed_time": 4200, "total_elevation_gain": 200},
			{"id": 3, "name": "Dartmoor Hike", "distance": 14800.0, "type": "Hike", "sport_type": "Hike", "start_date": "2026-01-04T09:30:00Z", "moving_time": 14000, "elapsed_time": 16000, "total_elevation_gain": 480}
		]`))
	})

	return f
}
