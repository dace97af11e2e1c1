package geo

import (
	"bytes"
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// ORSRouter implements ports.RouteEvaluator using the OpenRouteService
// directions endpoint for a single origin/destination pair.
type ORSRouter struct {
	client
	baseURL string
	profile string
}

func NewORSRouter(apiKey, baseURL, profile, userAgent string, session *http.Client) *ORSRouter {
	if profile == "" {
		profile = "driving-car"
	}
	return &ORSRouter{
		client:  newClient(session, userAgent, apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
	}
}

func (o *ORSRouter) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return domain.RouteResult{}, routeUnavailable("ors route: marshal request", err)
	}

	req, err := o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.RouteResult{}, routeUnavailable("ors route", err)
	}

	resp, err := o.do(req)
	if err != nil {
		return domain.RouteResult{}, routeUnavailable("ors route", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteResult{}, routeUnavailable("ors route: decode response", err)
	}

	if len(decoded.Routes) == 0 {
		return domain.RouteResult{}, fmt.Errorf("ors route: empty route list: %w", domain.ErrRouteUnavailable)
	}

	// ORS omits summary fields for zero-length routes; they decode as 0.
	s := decoded.Routes[0].Summary
	return domain.RouteResult{
		DurationSeconds: s.Duration,
		DistanceMeters:  s.Distance,
	}, nil
}
