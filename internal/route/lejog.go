package route

import "github.com/paulmach/orb"

const (
	LandsEnd     = "Land's End"
	JohnOGroats  = "John o' Groats"
	LEJOGTotalKm = 1407
)

// LEJOGWaypoints is the Land's End to John o' Groats route in map (SVG) coordinates,
// roughly following the land through Britain.
func LEJOGWaypoints() []orb.Point {
	return []orb.Point{
		{515, 938}, // Land's End (Cornwall)
		{545, 925},
		{570, 910},
		{595, 900},
		{620, 880},
		{645, 865},
		{665, 845},
		{680, 800},
		{660, 700},
		{660, 625},
		{665, 605},
		{590, 465},
		{570, 340},
		{575, 325},
		{580, 315},
		{630, 275},
		{635, 255}, // John o' Groats
	}
}
