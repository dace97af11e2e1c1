package geo

import (
	"context"
	"designer-finder-service/internal/domain"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestORSRouterRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v2/directions/driving-car", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("Authorization"))

		var body directionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, [][]float64{{16.37, 48.2}, {14.29, 48.3}}, body.Coordinates)

		_, _ = w.Write([]byte(`{"routes": [{"summary": {"distance": 184500.2, "duration": 6400.9}}]}`))
	}))
	defer srv.Close()

	res, err := NewORSRouter("secret", srv.URL, "", "", srv.Client()).Route(context.Background(),
		domain.Coordinates{Lon: 16.37, Lat: 48.2},
		domain.Coordinates{Lon: 14.29, Lat: 48.3},
	)
	require.NoError(t, err)
	require.Equal(t, 6400.9, res.DurationSeconds)
	require.Equal(t, 184500.2, res.DistanceMeters)
}

func TestORSRouterZeroLengthSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes": [{"summary": {}}]}`))
	}))
	defer srv.Close()

	res, err := NewORSRouter("k", srv.URL, "driving-car", "", srv.Client()).
		Route(context.Background(), domain.Coordinates{}, domain.Coordinates{})
	require.NoError(t, err)
	require.Zero(t, res.DurationSeconds)
	require.Zero(t, res.DistanceMeters)
}

func TestORSRouterUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"no routes", http.StatusOK, `{"routes": []}`},
		{"routing error", http.StatusNotFound, `{"error": {"code": 2010}}`},
		{"rate limited", http.StatusTooManyRequests, `slow down`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewORSRouter("k", srv.URL, "", "", srv.Client()).
				Route(context.Background(), domain.Coordinates{}, domain.Coordinates{})
			require.ErrorIs(t, err, domain.ErrRouteUnavailable)
		})
	}
}
