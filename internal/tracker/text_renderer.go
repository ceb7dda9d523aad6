package tracker

import (
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// TextRenderer writes views as plain text, with the same labels as the web page.
type TextRenderer struct {
	w           io.Writer
	showLoading bool
}

func NewTextRenderer(w io.Writer, showLoading bool) *TextRenderer {
	return &TextRenderer{
		w:           w,
		showLoading: showLoading,
	}
}

func (r *TextRenderer) Render(view View) {
	var text string
	switch view.State {
	case StateLoading:
		if !r.showLoading {
			return
		}
		text = "Loading activity data ...\n"
	case StateError:
		text = fmt.Sprintf("Error: %s\n", view.Error)
	case StateReady:
		text = FormatText(view.Model)
	default:
		text = fmt.Sprintf("unknown state: %s\n", view.State)
	}

	if _, err := io.WriteString(r.w, text); err != nil {
		log.Errorf("text renderer, write [%s] view: %s", view.State, err)
	}
}

func FormatText(model *ViewModel) string {
	if model == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s -> %s (%.0f km, started %s)\n",
		model.Route.Start.Name, model.Route.End.Name, model.TotalDistanceKm, model.StartDate)
	fmt.Fprintf(&sb, "Progress:        %s [%s]\n", model.Labels.ProgressPercent, progressBar(model.ProgressBarPercent, 40))
	fmt.Fprintf(&sb, "Distance walked: %s\n", model.Labels.DistanceWalked)
	fmt.Fprintf(&sb, "This week:       %s\n", model.Labels.ThisWeekDistance)
	fmt.Fprintf(&sb, "Week %s target:  %s km, actual: %s km\n", model.Labels.CurrentWeek, model.Labels.TargetKm, model.Labels.ActualKm)
	fmt.Fprintf(&sb, "%s\n", model.Labels.Difference)
	fmt.Fprintf(&sb, "Days elapsed:    %s, weeks elapsed: %s\n", model.Labels.DaysElapsed, model.Labels.WeeksElapsed)
	segments := max(len(model.Route.Planned)-1, 1)
	fmt.Fprintf(&sb, "Position:        (%.1f, %.1f), segment %d of %d\n",
		model.Route.Current.X(), model.Route.Current.Y(), min(model.Route.SegmentIndex+1, segments), segments)
	fmt.Fprintf(&sb, "Activities:      %d\n", model.ActivitiesCount)
	fmt.Fprintf(&sb, "Last updated:    %s\n", model.Labels.LastUpdated)
	return sb.String()
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}
