package services

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/logger"
	"designer-finder-service/internal/platform/obs"
	"designer-finder-service/internal/ports"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RankerConfig struct {
	// Lowercase ISO country codes a customer location must resolve to.
	AllowedCountries []string
	// Upper bound on in-flight route queries; <= 0 means unbounded.
	MaxConcurrency int
	GeocodeTimeout time.Duration
	RouteTimeout   time.Duration
}

// Ranker orders designers by driving time to a customer address.
type Ranker struct {
	resolver ports.AddressResolver
	router   ports.RouteEvaluator
	cfg      RankerConfig
}

func NewRanker(resolver ports.AddressResolver, router ports.RouteEvaluator, cfg RankerConfig) *Ranker {
	return &Ranker{resolver: resolver, router: router, cfg: cfg}
}

type routeSlot struct {
	route domain.RouteResult
	ok    bool
}

// FindClosest resolves address once, queries one route per designer and
// returns the designers that produced a route, closest first.
// Designers whose route query fails are dropped. Equal durations keep the
// order of designers.
func (r *Ranker) FindClosest(
	ctx context.Context,
	address string,
	designers []domain.Designer,
) (_ domain.SearchOutcome, err error) {
	defer obs.Time(ctx, "ranker.FindClosest")(&err)

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.SearchOutcome{}, fmt.Errorf("find closest: customer address is blank: %w", domain.ErrEmptyInput)
	}
	if len(designers) == 0 {
		return domain.SearchOutcome{}, fmt.Errorf("find closest: no designers registered: %w", domain.ErrEmptyInput)
	}

	customer, err := resolveWithin(ctx, r.resolver, address, r.cfg.GeocodeTimeout)
	if err != nil {
		return domain.SearchOutcome{}, fmt.Errorf("find closest: %w: %w", domain.ErrAddressNotFound, err)
	}

	if !slices.Contains(r.cfg.AllowedCountries, customer.CountryCode) {
		return domain.SearchOutcome{}, fmt.Errorf(
			"find closest: country %q not in %v: %w",
			customer.CountryCode, r.cfg.AllowedCountries, domain.ErrRegionRestricted,
		)
	}

	slots := r.routeAll(ctx, designers, customer.Coordinates)

	matches := make([]domain.RankedMatch, 0, len(designers))
	for i, s := range slots {
		if s.ok {
			matches = append(matches, domain.RankedMatch{Designer: designers[i], Route: s.route})
		}
	}
	if len(matches) == 0 {
		return domain.SearchOutcome{}, fmt.Errorf(
			"find closest: all %d route queries failed: %w", len(designers), domain.ErrNoRoutesAvailable,
		)
	}

	slices.SortStableFunc(matches, func(a, b domain.RankedMatch) int {
		switch {
		case a.Route.DurationSeconds < b.Route.DurationSeconds:
			return -1
		case a.Route.DurationSeconds > b.Route.DurationSeconds:
			return 1
		default:
			return 0
		}
	})

	display := customer.DisplayName
	if display == "" {
		display = address
	}

	return domain.SearchOutcome{ResolvedCustomerLocation: display, RankedMatches: matches}, nil
}

// routeAll queries every designer -> customer route and waits for all of
// them. slots[i] belongs to designers[i].
func (r *Ranker) routeAll(ctx context.Context, designers []domain.Designer, customer domain.Coordinates) []routeSlot {
	log := logger.FromContext(ctx)
	slots := make([]routeSlot, len(designers))

	var g errgroup.Group
	if r.cfg.MaxConcurrency > 0 {
		g.SetLimit(r.cfg.MaxConcurrency)
	}

	for i, d := range designers {
		g.Go(func() error {
			callCtx, cancel := withTimeout(ctx, r.cfg.RouteTimeout)
			defer cancel()

			route, err := r.router.Route(callCtx, d.Coords.Coordinates, customer)
			obs.RouteResult(err == nil)
			if err != nil {
				log.Warn("designer dropped from ranking",
					zap.String("designer_id", d.ID),
					zap.String("designer", d.Name),
					zap.Error(err),
				)
				return nil
			}

			slots[i] = routeSlot{route: route, ok: true}
			return nil
		})
	}
	_ = g.Wait()

	return slots
}

func resolveWithin(
	ctx context.Context,
	resolver ports.AddressResolver,
	address string,
	timeout time.Duration,
) (domain.ResolvedLocation, error) {
	callCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	return resolver.Resolve(callCtx, address)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
