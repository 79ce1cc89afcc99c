package scoring

import "math"

// band awards points when a count reaches min.
type band struct {
	min    float64
	points float64
}

// bands is a tier table ordered from the highest threshold down.
type bands []band

// award returns the points of the first band whose threshold n reaches, or
// floor when none does. Tiers are not cumulative.
func (b bands) award(n int, floor float64) float64 {
	for _, t := range b {
		if float64(n) >= t.min {
			return t.points
		}
	}
	return floor
}

// ceiling is the highest award in the table.
func (b bands) ceiling() float64 {
	var top float64
	for _, t := range b {
		top = max(top, t.points)
	}
	return top
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
