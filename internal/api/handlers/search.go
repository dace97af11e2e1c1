package handlers

import (
	"context"
	"designer-finder-service/internal/api/dto"
	"designer-finder-service/internal/domain"
	"net/http"
)

type Searcher interface {
	Search(ctx context.Context, address string) (domain.SearchOutcome, error)
}

type SearchHandler struct {
	Service Searcher
}

// Search ranks all designers by driving time to the posted customer address.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	out, err := h.Service.Search(r.Context(), req.Address)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.FromOutcome(out))
}
