package domain

import "time"

// Represents a registered designer location.
// Coords are resolved once when the designer is registered and never
// re-resolved afterwards. Designers are created and deleted, never updated.
type Designer struct {
	ID             string
	Name           string
	Address        string
	DisplayAddress string
	Coords         ResolvedLocation
	CreatedAt      time.Time
}

// NewDesigner carries the caller-supplied fields of a designer before the
// store assigns its identity and creation time.
type NewDesigner struct {
	Name           string
	Address        string
	DisplayAddress string
	Coords         ResolvedLocation
}
