package dto

import "designer-finder-service/internal/domain"

type SearchRequest struct {
	Address string `json:"address"`
}

type RouteResponse struct {
	DurationSeconds float64 `json:"durationSeconds"`
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationText    string  `json:"durationText"`
	DistanceText    string  `json:"distanceText"`
}

type RankedMatchResponse struct {
	Rank     int              `json:"rank"`
	Designer DesignerResponse `json:"designer"`
	Route    RouteResponse    `json:"route"`
}

type SearchResponse struct {
	ResolvedCustomerLocation string                `json:"resolvedCustomerLocation"`
	RankedMatches            []RankedMatchResponse `json:"rankedMatches"`
}

func FromOutcome(out domain.SearchOutcome) SearchResponse {
	res := SearchResponse{
		ResolvedCustomerLocation: out.ResolvedCustomerLocation,
		RankedMatches:            make([]RankedMatchResponse, 0, len(out.RankedMatches)),
	}
	for i, m := range out.RankedMatches {
		res.RankedMatches = append(res.RankedMatches, RankedMatchResponse{
			Rank:     i,
			Designer: FromDesigner(m.Designer),
			Route: RouteResponse{
				DurationSeconds: m.Route.DurationSeconds,
				DistanceMeters:  m.Route.DistanceMeters,
				DurationText:    domain.FormatDuration(m.Route.DurationSeconds),
				DistanceText:    domain.FormatDistance(m.Route.DistanceMeters),
			},
		})
	}
	return res
}
