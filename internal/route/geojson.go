package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	FeaturePlanned   = "planned"
	FeatureCompleted = "completed"
	FeatureCurrent   = "current"
	FeatureStart     = "start"
	FeatureEnd       = "end"
)

// FeatureCollection renders the route state for map based renderers:
// the planned line, the completed line, the current position and both landmarks.
func (p *Projector) FeatureCollection(fraction float64, startName, endName string) *geojson.FeatureCollection {
	planned := geojson.NewFeature(p.waypoints.Clone())
	planned.Properties["kind"] = FeaturePlanned

	completed := geojson.NewFeature(orb.LineString(p.CompletedPrefix(fraction)))
	completed.Properties["kind"] = FeatureCompleted
	completed.Properties["segmentIndex"] = p.SegmentIndex(fraction)

	current := geojson.NewFeature(p.Project(fraction))
	current.Properties["kind"] = FeatureCurrent
	current.Properties["fraction"] = fraction

	start := geojson.NewFeature(p.Start())
	start.Properties["kind"] = FeatureStart
	start.Properties["name"] = startName

	end := geojson.NewFeature(p.End())
	end.Properties["kind"] = FeatureEnd
	end.Properties["name"] = endName

	return geojson.NewFeatureCollection().
		Append(planned).
		Append(completed).
		Append(current).
		Append(start).
		Append(end)
}
