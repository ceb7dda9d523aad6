package tracker

import (
	"fmt"
	"time"

	"github.com/2beens/lejogtracker/internal/schedule"

	"github.com/paulmach/orb"
)

type State string

const (
	StateLoading State = "loading"
	StateError   State = "error"
	StateReady   State = "ready"
)

// View is what a render sink gets: the state, plus an error message or the model.
type View struct {
	State State      `json:"state"`
	Error string     `json:"error,omitempty"`
	Model *ViewModel `json:"model,omitempty"`
}

// Renderer is a render sink. Render is called once per state transition.
type Renderer interface {
	Render(view View)
}

type Marker struct {
	Name     string    `json:"name"`
	Position orb.Point `json:"position"`
}

type RouteView struct {
	Planned      []orb.Point `json:"planned"`
	Completed    []orb.Point `json:"completed"`
	Current      orb.Point   `json:"current"`
	SegmentIndex int         `json:"segmentIndex"`
	Start        Marker      `json:"start"`
	End          Marker      `json:"end"`
}

// Labels are the preformatted texts shown by the page and the text sink.
type Labels struct {
	ProgressPercent  string `json:"progressPercent"`
	DistanceWalked   string `json:"distanceWalked"`
	ThisWeekDistance string `json:"thisWeekDistance"`
	CurrentWeek      string `json:"currentWeek"`
	TargetKm         string `json:"targetKm"`
	ActualKm         string `json:"actualKm"`
	Difference       string `json:"difference"`
	DaysElapsed      string `json:"daysElapsed"`
	WeeksElapsed     string `json:"weeksElapsed"`
	LastUpdated      string `json:"lastUpdated"`
}

type ViewModel struct {
	Stats           schedule.Stats `json:"stats"`
	StartDate       string         `json:"startDate"`
	TotalDistanceKm float64        `json:"totalDistance"`
	WeeklyTargetKm  float64        `json:"weeklyTarget"`
	// ProgressFraction is not clamped; the route position is
	ProgressFraction float64 `json:"progressFraction"`
	// ProgressBarPercent is the clamped bar width, the label keeps the real value
	ProgressBarPercent float64   `json:"progressBarPercent"`
	Ahead              bool      `json:"ahead"`
	Labels             Labels    `json:"labels"`
	Route              RouteView `json:"route"`
	ActivitiesCount    int       `json:"activitiesCount"`
	LastUpdated        time.Time `json:"lastUpdated"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

const lastUpdatedLayout = "2006-01-02 15:04 MST"

func newLabels(stats schedule.Stats, lastUpdated time.Time, loc *time.Location) Labels {
	return Labels{
		ProgressPercent:  fmt.Sprintf("%.1f%%", stats.ProgressPercent),
		DistanceWalked:   fmt.Sprintf("%.2f km", stats.ActualDistanceKm),
		ThisWeekDistance: fmt.Sprintf("%.2f km", stats.ThisWeekDistanceKm),
		CurrentWeek:      fmt.Sprintf("%d", stats.CurrentWeek),
		TargetKm:         fmt.Sprintf("%.0f", stats.TargetDistanceKm),
		ActualKm:         fmt.Sprintf("%.2f", stats.ActualDistanceKm),
		Difference:       DifferenceMessage(stats.DifferenceKm),
		DaysElapsed:      fmt.Sprintf("%d", stats.DaysElapsed),
		WeeksElapsed:     fmt.Sprintf("%d", stats.WeeksElapsed),
		LastUpdated:      lastUpdated.In(loc).Format(lastUpdatedLayout),
	}
}

// DifferenceMessage renders the ahead/behind text. Zero counts as ahead.
func DifferenceMessage(differenceKm float64) string {
	if differenceKm >= 0 {
		return fmt.Sprintf("You are %.2f km ahead of target!", differenceKm)
	}
	return fmt.Sprintf("You are %.2f km behind target", -differenceKm)
}
