package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"ENV", "PORT", "STORE_DRIVER", "ALLOWED_COUNTRIES", "GEOCODER", "ROUTER",
		"ROUTE_TIMEOUT", "GEOCODE_TIMEOUT", "ROUTE_MAX_CONCURRENCY", "ORS_API_KEY",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "3001", cfg.Port)
	require.Equal(t, StoreJSON, cfg.StoreDriver)
	require.Equal(t, []string{"at"}, cfg.AllowedCountries)
	require.Equal(t, ProviderNominatim, cfg.Geocoder)
	require.Equal(t, ProviderOSRM, cfg.Router)
	require.Equal(t, 10*time.Second, cfg.RouteTimeout)
	require.Equal(t, 8, cfg.RouteMaxConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("ALLOWED_COUNTRIES", " AT, de ,at")
	t.Setenv("ROUTE_TIMEOUT", "2500ms")
	t.Setenv("ROUTE_MAX_CONCURRENCY", "3")
	t.Setenv("ROUTER", "ORS")
	t.Setenv("ORS_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"at", "de"}, cfg.AllowedCountries)
	require.Equal(t, 2500*time.Millisecond, cfg.RouteTimeout)
	require.Equal(t, 3, cfg.RouteMaxConcurrency)
	require.Equal(t, ProviderORS, cfg.Router)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "ROUTE_TIMEOUT", "soon"},
		{"bad int", "ROUTE_MAX_CONCURRENCY", "many"},
		{"zero concurrency", "ROUTE_MAX_CONCURRENCY", "0"},
		{"bad port", "PORT", "99999"},
		{"bad driver", "STORE_DRIVER", "mongo"},
		{"bad env", "ENV", "staging"},
		{"ors without key", "GEOCODER", "ors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORS_API_KEY", "")
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestValidatePostgresNeedsURL(t *testing.T) {
	cfg := Config{
		Env:                 "local",
		Port:                "3001",
		StoreDriver:         StorePostgres,
		AllowedCountries:    []string{"at"},
		Geocoder:            ProviderNominatim,
		Router:              ProviderOSRM,
		GeocodeTimeout:      time.Second,
		RouteTimeout:        time.Second,
		RouteMaxConcurrency: 1,
	}
	require.Error(t, cfg.Validate())

	cfg.DatabaseURL = "postgres://localhost/designers"
	require.NoError(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	ok, err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.False(t, ok)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DESIGNER_FINDER_TEST_KEY=hello\n"), 0o600))
	t.Setenv("DESIGNER_FINDER_TEST_KEY", "")
	require.NoError(t, os.Unsetenv("DESIGNER_FINDER_TEST_KEY"))

	ok, err = LoadDotEnv(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "hello", os.Getenv("DESIGNER_FINDER_TEST_KEY"))
}

func TestParseCountries(t *testing.T) {
	require.Empty(t, ParseCountries(" , "))
	require.Equal(t, []string{"at"}, ParseCountries("AT"))
}
