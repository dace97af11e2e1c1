package ports

import (
	"context"
	"designer-finder-service/internal/domain"
)

// Contract for retrieving the driving route between two points.
type RouteEvaluator interface {
	// Route returns duration and distance of the provider's primary route,
	// or an error wrapping domain.ErrRouteUnavailable.
	Route(ctx context.Context, origin, destination domain.Coordinates) (domain.RouteResult, error)
}
