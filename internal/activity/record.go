package activity

import (
	"encoding/json"
	"time"
)

type Kind string

const (
	KindWalk Kind = "Walk"
	KindHike Kind = "Hike"
	KindRun  Kind = "Run"
	KindRide Kind = "Ride"
)

// Record is a single synced activity, as stored in the snapshot.
type Record struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	DistanceMeters      float64   `json:"distance"`
	Kind                Kind      `json:"type"`
	StartDate           time.Time `json:"start_date"`
	MovingTimeSeconds   int       `json:"moving_time"`
	ElapsedTimeSeconds  int       `json:"elapsed_time"`
	ElevationGainMeters float64   `json:"total_elevation_gain"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	type recordAlias Record
	aux := struct {
		*recordAlias
		StartDate Timestamp `json:"start_date"`
	}{recordAlias: (*recordAlias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.StartDate = aux.StartDate.Time()
	return nil
}

func (r Record) DistanceKm() float64 {
	return r.DistanceMeters / 1000
}

func TotalDistanceKm(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.DistanceKm()
	}
	return total
}
