package services

import (
	"context"
	"designer-finder-service/internal/adapters/geo"
	"designer-finder-service/internal/domain"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	vienna   = domain.Coordinates{Lon: 16.3738, Lat: 48.2082}
	graz     = domain.Coordinates{Lon: 15.4395, Lat: 47.0707}
	linz     = domain.Coordinates{Lon: 14.2858, Lat: 48.3069}
	salzburg = domain.Coordinates{Lon: 13.0550, Lat: 47.8095}
	munich   = domain.Coordinates{Lon: 11.5820, Lat: 48.1351}
)

func designerAt(id string, c domain.Coordinates) domain.Designer {
	return domain.Designer{
		ID:     id,
		Name:   "Designer " + id,
		Coords: domain.ResolvedLocation{Coordinates: c, CountryCode: "at"},
	}
}

func customerResolver() *geo.FakeResolver {
	return &geo.FakeResolver{
		Locations: map[string]domain.ResolvedLocation{
			geo.Key("Stephansplatz 1, Wien"): {
				Coordinates: vienna,
				CountryCode: "at",
				DisplayName: "Stephansplatz 1, 1010 Wien, Österreich",
			},
			geo.Key("Marienplatz 1, München"): {
				Coordinates: munich,
				CountryCode: "de",
				DisplayName: "Marienplatz 1, 80331 München, Deutschland",
			},
			geo.Key("Somewhere without country"): {
				Coordinates: vienna,
			},
		},
		Failing: map[string]bool{geo.Key("Geocoder down"): true},
	}
}

func defaultConfig() RankerConfig {
	return RankerConfig{
		AllowedCountries: []string{"at"},
		MaxConcurrency:   8,
		GeocodeTimeout:   time.Second,
		RouteTimeout:     time.Second,
	}
}

func matchIDs(out domain.SearchOutcome) []string {
	ids := make([]string, 0, len(out.RankedMatches))
	for _, m := range out.RankedMatches {
		ids = append(ids, m.Designer.ID)
	}
	return ids
}

func TestFindClosestSingleDesigner(t *testing.T) {
	router := &geo.FakeRouter{Routes: map[domain.Coordinates]domain.RouteResult{
		vienna: {DurationSeconds: 120, DistanceMeters: 900},
	}}
	r := NewRanker(customerResolver(), router, defaultConfig())

	out, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", []domain.Designer{designerAt("v", vienna)})
	require.NoError(t, err)
	require.Equal(t, "Stephansplatz 1, 1010 Wien, Österreich", out.ResolvedCustomerLocation)
	require.Len(t, out.RankedMatches, 1)
	require.Equal(t, "v", out.RankedMatches[0].Designer.ID)
	require.Equal(t, 120.0, out.RankedMatches[0].Route.DurationSeconds)
	require.Equal(t, 900.0, out.RankedMatches[0].Route.DistanceMeters)
}

func TestFindClosestSortsByDuration(t *testing.T) {
	router := &geo.FakeRouter{Routes: map[domain.Coordinates]domain.RouteResult{
		graz:     {DurationSeconds: 7200, DistanceMeters: 190000},
		linz:     {DurationSeconds: 6300, DistanceMeters: 185000},
		salzburg: {DurationSeconds: 10800, DistanceMeters: 295000},
		vienna:   {DurationSeconds: 300, DistanceMeters: 2000},
	}}
	r := NewRanker(customerResolver(), router, defaultConfig())

	designers := []domain.Designer{
		designerAt("salzburg", salzburg),
		designerAt("graz", graz),
		designerAt("vienna", vienna),
		designerAt("linz", linz),
	}

	out, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", designers)
	require.NoError(t, err)
	require.Equal(t, []string{"vienna", "linz", "graz", "salzburg"}, matchIDs(out))

	for i := 1; i < len(out.RankedMatches); i++ {
		require.LessOrEqual(t,
			out.RankedMatches[i-1].Route.DurationSeconds,
			out.RankedMatches[i].Route.DurationSeconds,
		)
	}
}

func TestFindClosestTiesKeepInputOrder(t *testing.T) {
	router := &geo.FakeRouter{Routes: map[domain.Coordinates]domain.RouteResult{
		graz:     {DurationSeconds: 600},
		linz:     {DurationSeconds: 600},
		salzburg: {DurationSeconds: 600},
		vienna:   {DurationSeconds: 60},
	}}
	r := NewRanker(customerResolver(), router, defaultConfig())

	designers := []domain.Designer{
		designerAt("linz", linz),
		designerAt("salzburg", salzburg),
		designerAt("vienna", vienna),
		designerAt("graz", graz),
	}

	for range 20 {
		out, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", designers)
		require.NoError(t, err)
		require.Equal(t, []string{"vienna", "linz", "salzburg", "graz"}, matchIDs(out))
	}
}

func TestFindClosestDropsFailedRoutes(t *testing.T) {
	router := &geo.FakeRouter{Routes: map[domain.Coordinates]domain.RouteResult{
		graz: {DurationSeconds: 7200, DistanceMeters: 190000},
	}}
	r := NewRanker(customerResolver(), router, defaultConfig())

	designers := []domain.Designer{designerAt("linz", linz), designerAt("graz", graz)}

	out, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", designers)
	require.NoError(t, err)
	require.Equal(t, []string{"graz"}, matchIDs(out))
	require.Equal(t, 2, router.Calls())
}

func TestFindClosestAllRoutesFail(t *testing.T) {
	for _, n := range []int{1, 3, 25} {
		router := &geo.FakeRouter{}
		r := NewRanker(customerResolver(), router, defaultConfig())

		designers := make([]domain.Designer, 0, n)
		for i := range n {
			designers = append(designers, designerAt(string(rune('a'+i)), linz))
		}

		_, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", designers)
		require.ErrorIs(t, err, domain.ErrNoRoutesAvailable)
		require.Equal(t, n, router.Calls())
	}
}

func TestFindClosestRegionRestricted(t *testing.T) {
	router := &geo.FakeRouter{Routes: map[domain.Coordinates]domain.RouteResult{
		vienna: {DurationSeconds: 60},
	}}
	r := NewRanker(customerResolver(), router, defaultConfig())
	designers := []domain.Designer{designerAt("v", vienna)}

	_, err := r.FindClosest(context.Background(), "Marienplatz 1, München", designers)
	require.ErrorIs(t, err, domain.ErrRegionRestricted)
	require.Zero(t, router.Calls())

	_, err = r.FindClosest(context.Background(), "Somewhere without country", designers)
	require.ErrorIs(t, err, domain.ErrRegionRestricted)
	require.Zero(t, router.Calls())
}

func TestFindClosestAllowListIsConfigurable(t *testing.T) {
	router := &geo.FakeRouter{Routes: map[domain.Coordinates]domain.RouteResult{
		vienna: {DurationSeconds: 60},
	}}
	cfg := defaultConfig()
	cfg.AllowedCountries = []string{"at", "de"}
	r := NewRanker(customerResolver(), router, cfg)

	out, err := r.FindClosest(context.Background(), "Marienplatz 1, München", []domain.Designer{designerAt("v", vienna)})
	require.NoError(t, err)
	require.Len(t, out.RankedMatches, 1)
}

func TestFindClosestEmptyInput(t *testing.T) {
	resolver := customerResolver()
	router := &geo.FakeRouter{}
	r := NewRanker(resolver, router, defaultConfig())

	_, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", nil)
	require.ErrorIs(t, err, domain.ErrEmptyInput)

	_, err = r.FindClosest(context.Background(), "   ", []domain.Designer{designerAt("v", vienna)})
	require.ErrorIs(t, err, domain.ErrEmptyInput)

	require.Zero(t, resolver.Calls())
	require.Zero(t, router.Calls())
}

func TestFindClosestAddressNotFound(t *testing.T) {
	router := &geo.FakeRouter{}
	r := NewRanker(customerResolver(), router, defaultConfig())
	designers := []domain.Designer{designerAt("v", vienna)}

	_, err := r.FindClosest(context.Background(), "Nowhere 404", designers)
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
	require.ErrorIs(t, err, domain.ErrNoMatch)
	require.NotErrorIs(t, err, domain.ErrGeocoderUnavailable)

	_, err = r.FindClosest(context.Background(), "Geocoder down", designers)
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
	require.ErrorIs(t, err, domain.ErrGeocoderUnavailable)

	require.Zero(t, router.Calls())
}

func TestFindClosestBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int64

	router := &geo.FakeRouter{
		Routes: map[domain.Coordinates]domain.RouteResult{linz: {DurationSeconds: 10}},
		Hook: func(ctx context.Context, _ domain.Coordinates) error {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return nil
		},
	}
	cfg := defaultConfig()
	cfg.MaxConcurrency = 3
	r := NewRanker(customerResolver(), router, cfg)

	designers := make([]domain.Designer, 0, 20)
	for i := range 20 {
		designers = append(designers, designerAt(string(rune('a'+i)), linz))
	}

	out, err := r.FindClosest(context.Background(), "Stephansplatz 1, Wien", designers)
	require.NoError(t, err)
	require.Len(t, out.RankedMatches, 20)
	require.LessOrEqual(t, peak.Load(), int64(3))
	require.Equal(t, 20, router.Calls())
}

func TestFindClosestTimesOutHungRoute(t *testing.T) {
	router := &geo.FakeRouter{
		Routes: map[domain.Coordinates]domain.RouteResult{
			graz: {DurationSeconds: 7200},
			linz: {DurationSeconds: 6300},
		},
		Hook: func(ctx context.Context, origin domain.Coordinates) error {
			if origin != linz {
				return nil
			}
			<-ctx.Done()
			return ctx.Err()
		},
	}
	cfg := defaultConfig()
	cfg.RouteTimeout = 50 * time.Millisecond
	r := NewRanker(customerResolver(), router, cfg)

	start := time.Now()
	out, err := r.FindClosest(
		context.Background(),
		"Stephansplatz 1, Wien",
		[]domain.Designer{designerAt("linz", linz), designerAt("graz", graz)},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"graz"}, matchIDs(out))
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestFindClosestFallsBackToInputForDisplay(t *testing.T) {
	router := &geo.FakeRouter{
		Routes: map[domain.Coordinates]domain.RouteResult{vienna: {DurationSeconds: 1}},
	}
	cfg := defaultConfig()
	cfg.AllowedCountries = []string{""}
	r := NewRanker(customerResolver(), router, cfg)

	out, err := r.FindClosest(context.Background(), "Somewhere without country", []domain.Designer{designerAt("v", vienna)})
	require.NoError(t, err)
	require.Equal(t, "Somewhere without country", out.ResolvedCustomerLocation)
}

type failingStore struct{ err error }

func (f failingStore) List(context.Context) ([]domain.Designer, error) { return nil, f.err }
func (f failingStore) Add(context.Context, domain.NewDesigner) (domain.Designer, error) {
	return domain.Designer{}, f.err
}
func (f failingStore) Remove(context.Context, string) error { return f.err }

func TestSearchServiceStoreFailure(t *testing.T) {
	resolver := customerResolver()
	svc := NewSearchService(
		failingStore{err: errors.New("disk gone")},
		NewRanker(resolver, &geo.FakeRouter{}, defaultConfig()),
	)

	_, err := svc.Search(context.Background(), "Stephansplatz 1, Wien")
	require.ErrorIs(t, err, domain.ErrStoreFailure)
	require.Zero(t, resolver.Calls())
}
