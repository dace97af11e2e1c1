package domain

import "fmt"

// Driving duration and distance of the primary route between two points,
// as reported by the routing provider (unrounded).
type RouteResult struct {
	DurationSeconds float64
	DistanceMeters  float64
}

// Represents one designer in a search ranking together with its route
// to the customer.
type RankedMatch struct {
	Designer Designer
	Route    RouteResult
}

// Represents the result of a closest-designer search.
// RankedMatches is ordered ascending by route duration; index 0 is the closest.
type SearchOutcome struct {
	ResolvedCustomerLocation string
	RankedMatches            []RankedMatch
}

// FormatDuration renders seconds as "1h 5m" or "42m".
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatDistance renders meters as kilometres with one decimal, e.g. "12.3 km".
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.1f km", meters/1000)
}
