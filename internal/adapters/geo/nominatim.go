package geo

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// NominatimResolver implements ports.AddressResolver using the OpenStreetMap
// Nominatim search API. Only the first match is used.
type NominatimResolver struct {
	client
	baseURL string
}

func NewNominatimResolver(baseURL, userAgent string, session *http.Client) *NominatimResolver {
	return &NominatimResolver{
		client:  newClient(session, userAgent, ""),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *NominatimResolver) Resolve(ctx context.Context, address string) (_ domain.ResolvedLocation, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	text := normalize(address)
	if text == "" {
		return domain.ResolvedLocation{}, fmt.Errorf("nominatim resolve: %w", domain.ErrEmptyInput)
	}

	req, err := n.newRequest(ctx, http.MethodGet, n.baseURL+"/search", nil)
	if err != nil {
		return domain.ResolvedLocation{}, unavailable("nominatim resolve", err)
	}
	q := req.URL.Query()
	q.Set("format", "json")
	q.Set("q", text)
	q.Set("limit", "1")
	q.Set("addressdetails", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := n.do(req)
	if err != nil {
		return domain.ResolvedLocation{}, unavailable("nominatim resolve", err)
	}
	defer resp.Body.Close()

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.ResolvedLocation{}, unavailable("nominatim resolve: decode response", err)
	}

	if len(places) == 0 {
		return domain.ResolvedLocation{}, fmt.Errorf("nominatim resolve %q: %w", text, domain.ErrNoMatch)
	}

	p := places[0]
	lat, latErr := strconv.ParseFloat(p.Lat, 64)
	lon, lonErr := strconv.ParseFloat(p.Lon, 64)
	if err := errors.Join(latErr, lonErr); err != nil {
		return domain.ResolvedLocation{}, unavailable("nominatim resolve: parse coordinates", err)
	}

	return domain.ResolvedLocation{
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		CountryCode: strings.ToLower(p.Address.CountryCode),
		DisplayName: p.DisplayName,
	}, nil
}

// unavailable wraps err so that it matches domain.ErrGeocoderUnavailable.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrGeocoderUnavailable, err)
}
