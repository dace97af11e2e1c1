package geo

import (
	"context"
	"designer-finder-service/internal/domain"
	"fmt"
	"sync"
	"sync/atomic"
)

// FakeResolver is an in-memory AddressResolver keyed by normalized address.
// Addresses listed in Failing return a geocoder-unavailable error; anything
// else unknown returns no match.
type FakeResolver struct {
	Locations map[string]domain.ResolvedLocation
	Failing   map[string]bool

	calls atomic.Int64
}

func (f *FakeResolver) Resolve(ctx context.Context, address string) (domain.ResolvedLocation, error) {
	f.calls.Add(1)
	key := normalize(address)

	if f.Failing[key] {
		return domain.ResolvedLocation{}, unavailable("fake resolve", fmt.Errorf("forced failure for %q", key))
	}

	loc, ok := f.Locations[key]
	if !ok {
		return domain.ResolvedLocation{}, fmt.Errorf("fake resolve %q: %w", key, domain.ErrNoMatch)
	}
	return loc, nil
}

// Calls reports how many times Resolve was invoked.
func (f *FakeResolver) Calls() int { return int(f.calls.Load()) }

// FakeRouter is an in-memory RouteEvaluator keyed by origin coordinates.
// Origins without an entry fail with domain.ErrRouteUnavailable. Hook, when
// set, runs before each lookup (used to block or count concurrency).
type FakeRouter struct {
	Routes map[domain.Coordinates]domain.RouteResult
	Hook   func(ctx context.Context, origin domain.Coordinates) error

	mu      sync.Mutex
	origins []domain.Coordinates
}

func (f *FakeRouter) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (domain.RouteResult, error) {
	f.mu.Lock()
	f.origins = append(f.origins, origin)
	f.mu.Unlock()

	if f.Hook != nil {
		if err := f.Hook(ctx, origin); err != nil {
			return domain.RouteResult{}, routeUnavailable("fake route", err)
		}
	}

	r, ok := f.Routes[origin]
	if !ok {
		return domain.RouteResult{}, fmt.Errorf("fake route from %v: %w", origin, domain.ErrRouteUnavailable)
	}
	return r, nil
}

// Calls reports how many times Route was invoked.
func (f *FakeRouter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.origins)
}

// Key normalizes an address the same way the fakes do, for building fixtures.
func Key(address string) string { return normalize(address) }
