package geo

import (
	"designer-finder-service/internal/config"
	"designer-finder-service/internal/ports"
	"fmt"
	"net/http"
)

// NewResolver returns the geocoder selected by cfg.Geocoder.
func NewResolver(cfg config.Config, session *http.Client) (ports.AddressResolver, error) {
	switch cfg.Geocoder {
	case config.ProviderNominatim:
		return NewNominatimResolver(cfg.NominatimURL, cfg.UserAgent, session), nil
	case config.ProviderORS:
		return NewORSResolver(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.UserAgent, session), nil
	default:
		return nil, fmt.Errorf("new resolver: unknown geocoder %q", cfg.Geocoder)
	}
}

// NewRouter returns the route evaluator selected by cfg.Router.
func NewRouter(cfg config.Config, session *http.Client) (ports.RouteEvaluator, error) {
	switch cfg.Router {
	case config.ProviderOSRM:
		return NewOSRMRouter(cfg.OSRMURL, cfg.UserAgent, session), nil
	case config.ProviderORS:
		return NewORSRouter(cfg.ORSAPIKey, cfg.ORSBaseURL, cfg.ORSProfile, cfg.UserAgent, session), nil
	default:
		return nil, fmt.Errorf("new router: unknown router %q", cfg.Router)
	}
}
