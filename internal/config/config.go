package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreJSON     = "json"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	ProviderNominatim = "nominatim"
	ProviderOSRM      = "osrm"
	ProviderORS       = "ors"
)

// Config holds the service configuration, sourced from the environment.
type Config struct {
	Env      string
	LogLevel string
	Port     string

	StoreDriver string
	DataFile    string
	DBPath      string
	DatabaseURL string

	// Lowercase ISO country codes for which searches are permitted.
	AllowedCountries []string

	Geocoder     string
	Router       string
	NominatimURL string
	OSRMURL      string
	ORSBaseURL   string
	ORSAPIKey    string
	ORSProfile   string
	UserAgent    string

	GeocodeTimeout      time.Duration
	RouteTimeout        time.Duration
	RouteMaxConcurrency int
	ShutdownTimeout     time.Duration
}

// LoadDotEnv loads path into the process environment. A missing file is
// reported as (false, nil) so callers can log and continue.
func LoadDotEnv(path string) (bool, error) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// Load reads the configuration from environment variables and validates it.
func Load() (Config, error) {
	cfg := Config{
		Env:          Get("ENV", "local"),
		LogLevel:     Get("LOG_LEVEL", ""),
		Port:         Get("PORT", "3001"),
		StoreDriver:  strings.ToLower(Get("STORE_DRIVER", StoreJSON)),
		DataFile:     Get("DATA_FILE", "data/designers.json"),
		DBPath:       Get("DB_PATH", "data/designers.db"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Geocoder:     strings.ToLower(Get("GEOCODER", ProviderNominatim)),
		Router:       strings.ToLower(Get("ROUTER", ProviderOSRM)),
		NominatimURL: Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OSRMURL:      Get("OSRM_URL", "https://router.project-osrm.org"),
		ORSBaseURL:   Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSAPIKey:    os.Getenv("ORS_API_KEY"),
		ORSProfile:   Get("ORS_PROFILE", "driving-car"),
		UserAgent:    Get("HTTP_USER_AGENT", "DesignerFinder/1.0"),
	}

	cfg.AllowedCountries = ParseCountries(Get("ALLOWED_COUNTRIES", "at"))

	var err error
	if cfg.GeocodeTimeout, err = getDuration("GEOCODE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RouteTimeout, err = getDuration("ROUTE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RouteMaxConcurrency, err = getInt("ROUTE_MAX_CONCURRENCY", 8); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("ENV must be one of local, dev, prod, got %q", c.Env)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}

	switch c.StoreDriver {
	case StoreJSON:
		if strings.TrimSpace(c.DataFile) == "" {
			return errors.New("DATA_FILE is required for the json store")
		}
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("DB_PATH is required for the sqlite store")
		}
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be json, sqlite or postgres, got %q", c.StoreDriver)
	}

	if len(c.AllowedCountries) == 0 {
		return errors.New("ALLOWED_COUNTRIES must name at least one country")
	}

	switch c.Geocoder {
	case ProviderNominatim, ProviderORS:
	default:
		return fmt.Errorf("GEOCODER must be nominatim or ors, got %q", c.Geocoder)
	}

	switch c.Router {
	case ProviderOSRM, ProviderORS:
	default:
		return fmt.Errorf("ROUTER must be osrm or ors, got %q", c.Router)
	}

	if (c.Geocoder == ProviderORS || c.Router == ProviderORS) && strings.TrimSpace(c.ORSAPIKey) == "" {
		return errors.New("ORS_API_KEY is required when an ors provider is selected")
	}

	if c.RouteMaxConcurrency < 1 {
		return fmt.Errorf("ROUTE_MAX_CONCURRENCY must be at least 1, got %d", c.RouteMaxConcurrency)
	}
	if c.GeocodeTimeout <= 0 || c.RouteTimeout <= 0 {
		return errors.New("GEOCODE_TIMEOUT and ROUTE_TIMEOUT must be positive")
	}

	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseCountries splits a comma separated list into lowercase, trimmed,
// de-duplicated country codes.
func ParseCountries(s string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, 1)
	for _, part := range strings.Split(s, ",") {
		c := strings.ToLower(strings.TrimSpace(part))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, v, err)
	}
	return n, nil
}
