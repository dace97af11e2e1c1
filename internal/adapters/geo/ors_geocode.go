package geo

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type orsGeocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label       string `json:"label"`
			CountryCode string `json:"country_code"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSResolver implements ports.AddressResolver using the OpenRouteService
// geocoding endpoint (/geocode/search).
type ORSResolver struct {
	client
	baseURL string
}

func NewORSResolver(apiKey, baseURL, userAgent string, session *http.Client) *ORSResolver {
	return &ORSResolver{
		client:  newClient(session, userAgent, apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (o *ORSResolver) Resolve(ctx context.Context, address string) (_ domain.ResolvedLocation, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	text := normalize(address)
	if text == "" {
		return domain.ResolvedLocation{}, fmt.Errorf("ors resolve: %w", domain.ErrEmptyInput)
	}

	req, err := o.newRequest(ctx, http.MethodGet, o.baseURL+"/geocode/search", nil)
	if err != nil {
		return domain.ResolvedLocation{}, unavailable("ors resolve", err)
	}
	q := req.URL.Query()
	q.Set("text", text)
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := o.do(req)
	if err != nil {
		return domain.ResolvedLocation{}, unavailable("ors resolve", err)
	}
	defer resp.Body.Close()

	var decoded orsGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ResolvedLocation{}, unavailable("ors resolve: decode response", err)
	}

	if len(decoded.Features) == 0 {
		return domain.ResolvedLocation{}, fmt.Errorf("ors resolve %q: %w", text, domain.ErrNoMatch)
	}

	f := decoded.Features[0]
	coords := f.Geometry.Coordinates
	if len(coords) != 2 {
		return domain.ResolvedLocation{}, unavailable("ors resolve",
			fmt.Errorf("invalid coordinate format for %q", text))
	}

	return domain.ResolvedLocation{
		Coordinates: domain.Coordinates{Lon: coords[0], Lat: coords[1]},
		CountryCode: strings.ToLower(f.Properties.CountryCode),
		DisplayName: f.Properties.Label,
	}, nil
}
