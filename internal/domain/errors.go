package domain

import "errors"

var (
	// ErrEmptyInput signals a missing or blank required field.
	ErrEmptyInput = errors.New("empty input")
	// ErrAddressNotFound signals that an address could not be resolved.
	ErrAddressNotFound = errors.New("address not found")
	// ErrRegionRestricted signals a resolved location outside the allowed countries.
	ErrRegionRestricted = errors.New("region restricted")
	// ErrNoRoutesAvailable signals that no designer produced a usable route.
	ErrNoRoutesAvailable = errors.New("no routes available")
	// ErrStoreFailure signals that the designer store could not be read or written.
	ErrStoreFailure = errors.New("store failure")
	// ErrNotFound signals a designer id absent from the store.
	ErrNotFound = errors.New("designer not found")

	// ErrNoMatch signals that the geocoder answered but had no match.
	ErrNoMatch = errors.New("no geocode match")
	// ErrGeocoderUnavailable signals a geocoder transport, status or payload failure.
	ErrGeocoderUnavailable = errors.New("geocoder unavailable")
	// ErrRouteUnavailable signals that a single route query produced no usable route.
	ErrRouteUnavailable = errors.New("route unavailable")
)
