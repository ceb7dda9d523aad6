package strava

import (
	"encoding/json"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
)

// Credential is a short lived access token obtained from a refresh token.
// Only held in memory for the duration of a single sync.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

type tokenResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	ExpiresAt    int64  `json:"expires_at"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// SummaryActivity holds the fields we need from strava's activity list response.
type SummaryActivity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Distance           float64   `json:"distance"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	MovingTime         int       `json:"moving_time"`
	ElapsedTime        int       `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
}

// UnmarshalJSON also accepts date-only start dates.
func (a *SummaryActivity) UnmarshalJSON(data []byte) error {
	type summaryAlias SummaryActivity
	aux := struct {
		*summaryAlias
		StartDate activity.Timestamp `json:"start_date"`
	}{summaryAlias: (*summaryAlias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.StartDate = aux.StartDate.Time()
	return nil
}

func (a SummaryActivity) ToRecord() activity.Record {
	return activity.Record{
		ID:                  a.ID,
		Name:                a.Name,
		DistanceMeters:      a.Distance,
		Kind:                activity.Kind(a.Type),
		StartDate:           a.StartDate,
		MovingTimeSeconds:   a.MovingTime,
		ElapsedTimeSeconds:  a.ElapsedTime,
		ElevationGainMeters: a.TotalElevationGain,
	}
}
