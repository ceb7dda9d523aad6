package schedule

import (
	"math"
	"time"

	"github.com/2beens/lejogtracker/internal/activity"
)

const day = 24 * time.Hour

// Journey describes the challenge being tracked.
type Journey struct {
	StartDate       time.Time
	TotalDistanceKm float64
	WeeklyTargetKm  float64
}

// Stats is recomputed on every tracker run, never persisted.
type Stats struct {
	DaysElapsed        int       `json:"daysElapsed"`
	WeeksElapsed       int       `json:"weeksElapsed"`
	CurrentWeek        int       `json:"currentWeek"`
	TargetDistanceKm   float64   `json:"targetDistance"`
	ActualDistanceKm   float64   `json:"actualDistance"`
	DifferenceKm       float64   `json:"difference"`
	ThisWeekDistanceKm float64   `json:"thisWeekDistance"`
	ProgressPercent    float64   `json:"progressPercent"`
	WeekStart          time.Time `json:"weekStart"`
}

// Ahead reports whether the walked distance meets the target for the current week.
func (s Stats) Ahead() bool {
	return s.DifferenceKm >= 0
}

// Compute derives the schedule stats for the given activities at instant now.
//
// Two week conventions are in play: CurrentWeek counts 7-day blocks from the journey
// start date, while ThisWeekDistanceKm uses calendar weeks starting on Monday.
// They only line up when the journey starts on a Monday.
func Compute(activities []activity.Record, journey Journey, now time.Time) Stats {
	daysElapsed := int(math.Floor(float64(now.Sub(journey.StartDate)) / float64(day)))
	weeksElapsed := floorDiv(daysElapsed, 7)
	currentWeek := weeksElapsed + 1
	targetDistance := float64(currentWeek) * journey.WeeklyTargetKm

	weekStart := WeekStart(now)
	var thisWeekDistance float64
	for _, a := range activities {
		if !a.StartDate.Before(weekStart) {
			thisWeekDistance += a.DistanceKm()
		}
	}

	actualDistance := activity.TotalDistanceKm(activities)

	return Stats{
		DaysElapsed:        daysElapsed,
		WeeksElapsed:       weeksElapsed,
		CurrentWeek:        currentWeek,
		TargetDistanceKm:   targetDistance,
		ActualDistanceKm:   actualDistance,
		DifferenceKm:       actualDistance - targetDistance,
		ThisWeekDistanceKm: thisWeekDistance,
		ProgressPercent:    actualDistance / journey.TotalDistanceKm * 100,
		WeekStart:          weekStart,
	}
}

// WeekStart returns midnight of the most recent Monday (today, if now is a Monday),
// in now's location.
func WeekStart(now time.Time) time.Time {
	daysToSubtract := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		daysToSubtract = 6
	}
	year, month, dayOfMonth := now.Date()
	return time.Date(year, month, dayOfMonth-daysToSubtract, 0, 0, 0, 0, now.Location())
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
