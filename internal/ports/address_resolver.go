package ports

import (
	"context"
	"designer-finder-service/internal/domain"
)

// Contract for turning free-text addresses into coordinates.
type AddressResolver interface {
	// Resolve returns the best match for the address. It fails with an error
	// wrapping domain.ErrNoMatch when the provider has no match, and with one
	// wrapping domain.ErrGeocoderUnavailable on any other failure.
	Resolve(ctx context.Context, address string) (domain.ResolvedLocation, error)
}
