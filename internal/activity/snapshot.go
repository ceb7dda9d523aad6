package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used for the journey start date.
const DateLayout = "2006-01-02"

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrSnapshotCorrupt  = errors.New("snapshot corrupt")
)

// Snapshot is the persisted result of a single sync run.
// It is always replaced as a whole, never merged with a previous one.
type Snapshot struct {
	LastUpdated     time.Time `json:"lastUpdated"`
	StartDate       string    `json:"startDate"`
	Activities      []Record  `json:"activities"`
	TotalDistanceKm float64   `json:"totalDistance"`
}

func NewSnapshot(now, startDate time.Time, records []Record) *Snapshot {
	activities := make([]Record, len(records))
	copy(activities, records)

	return &Snapshot{
		LastUpdated:     now.UTC(),
		StartDate:       startDate.Format(DateLayout),
		Activities:      activities,
		TotalDistanceKm: TotalDistanceKm(activities),
	}
}

// DecodeSnapshot parses snapshot bytes. Anything that is not a snapshot object
// with a valid start date and an activities list is reported as ErrSnapshotCorrupt.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var raw struct {
		LastUpdated     time.Time `json:"lastUpdated"`
		StartDate       string    `json:"startDate"`
		Activities      *[]Record `json:"activities"`
		TotalDistanceKm float64   `json:"totalDistance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	if raw.Activities == nil {
		return nil, fmt.Errorf("%w: activities missing", ErrSnapshotCorrupt)
	}
	if _, err := time.Parse(DateLayout, raw.StartDate); err != nil {
		return nil, fmt.Errorf("%w: start date [%s]: %w", ErrSnapshotCorrupt, raw.StartDate, err)
	}

	return &Snapshot{
		LastUpdated:     raw.LastUpdated,
		StartDate:       raw.StartDate,
		Activities:      *raw.Activities,
		TotalDistanceKm: raw.TotalDistanceKm,
	}, nil
}
