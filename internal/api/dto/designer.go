package dto

import (
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/services"
	"time"
)

type CoordsPayload struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
}

// CreateDesignerRequest is the POST /designers body. Coords are optional;
// without them the address is geocoded server-side.
type CreateDesignerRequest struct {
	Name           string         `json:"name"`
	Address        string         `json:"address"`
	Coords         *CoordsPayload `json:"coords"`
	DisplayAddress string         `json:"displayAddress"`
}

func (r CreateDesignerRequest) ToRegisterRequest() services.RegisterRequest {
	req := services.RegisterRequest{
		Name:           r.Name,
		Address:        r.Address,
		DisplayAddress: r.DisplayAddress,
	}
	if r.Coords != nil {
		req.Coords = &domain.ResolvedLocation{
			Coordinates: domain.Coordinates{Lon: r.Coords.Lon, Lat: r.Coords.Lat},
			CountryCode: r.Coords.CountryCode,
			DisplayName: r.Coords.DisplayName,
		}
	}
	return req
}

type DesignerResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	DisplayAddress string        `json:"displayAddress,omitempty"`
	Coords         CoordsPayload `json:"coords"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func FromDesigner(d domain.Designer) DesignerResponse {
	return DesignerResponse{
		ID:             d.ID,
		Name:           d.Name,
		Address:        d.Address,
		DisplayAddress: d.DisplayAddress,
		Coords: CoordsPayload{
			Lat:         d.Coords.Lat,
			Lon:         d.Coords.Lon,
			DisplayName: d.Coords.DisplayName,
			CountryCode: d.Coords.CountryCode,
		},
		CreatedAt: d.CreatedAt,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
