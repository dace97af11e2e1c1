package geo

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/obs"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type osrmRouteResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Duration float64 `json:"duration"`
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// OSRMRouter implements ports.RouteEvaluator using the OSRM route service
// with the driving profile.
type OSRMRouter struct {
	client
	baseURL string
}

func NewOSRMRouter(baseURL, userAgent string, session *http.Client) *OSRMRouter {
	return &OSRMRouter{
		client:  newClient(session, userAgent, ""),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (o *OSRMRouter) Route(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf("%s/route/v1/driving/%s;%s", o.baseURL, lonLat(origin), lonLat(destination))

	req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.RouteResult{}, routeUnavailable("osrm route", err)
	}
	q := req.URL.Query()
	q.Set("overview", "false")
	req.URL.RawQuery = q.Encode()

	resp, err := o.do(req)
	if err != nil {
		return domain.RouteResult{}, routeUnavailable("osrm route", err)
	}
	defer resp.Body.Close()

	var decoded osrmRouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteResult{}, routeUnavailable("osrm route: decode response", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return domain.RouteResult{}, fmt.Errorf(
			"osrm route: code=%q routes=%d: %w",
			decoded.Code, len(decoded.Routes), domain.ErrRouteUnavailable,
		)
	}

	return domain.RouteResult{
		DurationSeconds: decoded.Routes[0].Duration,
		DistanceMeters:  decoded.Routes[0].Distance,
	}, nil
}

// lonLat formats coordinates as "lon,lat" for OSRM path segments.
func lonLat(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func routeUnavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrRouteUnavailable, err)
}
