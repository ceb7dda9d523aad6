package route

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

var ErrTooFewWaypoints = errors.New("route needs at least 2 waypoints")

// Projector maps a progress fraction onto a fixed polyline.
// Every pair of neighbouring waypoints gets the same share of the [0, 1] range,
// regardless of the physical length of the segment between them.
type Projector struct {
	waypoints orb.LineString
}

func NewProjector(waypoints []orb.Point) (*Projector, error) {
	if len(waypoints) < 2 {
		return nil, ErrTooFewWaypoints
	}

	line := make(orb.LineString, len(waypoints))
	copy(line, waypoints)

	return &Projector{
		waypoints: line,
	}, nil
}

// Waypoints returns a copy of the full planned route.
func (p *Projector) Waypoints() []orb.Point {
	return p.waypoints.Clone()
}

func (p *Projector) Start() orb.Point {
	return p.waypoints[0]
}

func (p *Projector) End() orb.Point {
	return p.waypoints[len(p.waypoints)-1]
}

// SegmentIndex returns the index of the waypoint the current segment starts from.
// Non-decreasing in fraction, clamped to [0, len(waypoints)-1].
func (p *Projector) SegmentIndex(fraction float64) int {
	last := len(p.waypoints) - 1
	if fraction <= 0 {
		return 0
	}
	if fraction >= 1 {
		return last
	}
	return min(int(math.Floor(fraction*float64(last))), last)
}

// Project returns the position on the route for the given progress fraction.
// Fractions outside (0, 1) stick to the route ends. The caller must not pass NaN.
func (p *Projector) Project(fraction float64) orb.Point {
	last := len(p.waypoints) - 1
	if fraction <= 0 {
		return p.waypoints[0]
	}
	if fraction >= 1 {
		return p.waypoints[last]
	}

	segmentProgress := fraction * float64(last)
	segmentIndex := int(math.Floor(segmentProgress))
	segmentFraction := segmentProgress - float64(segmentIndex)

	from := p.waypoints[segmentIndex]
	to := p.waypoints[min(segmentIndex+1, last)]

	return orb.Point{
		from.X() + (to.X()-from.X())*segmentFraction,
		from.Y() + (to.Y()-from.Y())*segmentFraction,
	}
}

// CompletedPrefix returns the walked part of the route: all waypoints up to and
// including the start of the current segment, followed by the current position.
func (p *Projector) CompletedPrefix(fraction float64) []orb.Point {
	segmentIndex := p.SegmentIndex(fraction)
	completed := make([]orb.Point, 0, segmentIndex+2)
	completed = append(completed, p.waypoints[:segmentIndex+1]...)
	return append(completed, p.Project(fraction))
}
