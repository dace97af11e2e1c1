package handlers

import (
	"context"
	"designer-finder-service/internal/api/dto"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/services"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type DesignerManager interface {
	Register(ctx context.Context, req services.RegisterRequest) (domain.Designer, error)
	List(ctx context.Context) ([]domain.Designer, error)
	Remove(ctx context.Context, id string) error
}

type DesignerHandler struct {
	Designers DesignerManager
}

// List returns all designers in insertion order.
func (h *DesignerHandler) List(w http.ResponseWriter, r *http.Request) {
	designers, err := h.Designers.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := make([]dto.DesignerResponse, 0, len(designers))
	for _, d := range designers {
		res = append(res, dto.FromDesigner(d))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *DesignerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDesignerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.Designers.Register(r.Context(), req.ToRegisterRequest())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, dto.FromDesigner(d))
}

func (h *DesignerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Designers.Remove(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: "Designer deleted successfully"})
}
