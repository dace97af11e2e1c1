package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// ResolvedLocation is the outcome of geocoding a free-text address.
// CountryCode is lowercase ISO 3166-1 alpha-2 and may be empty when the
// provider did not report one.
type ResolvedLocation struct {
	Coordinates
	CountryCode string
	DisplayName string
}
