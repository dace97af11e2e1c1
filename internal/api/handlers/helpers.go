package handlers

import (
	"designer-finder-service/internal/api/dto"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/logger"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Warn("encode response failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: code, Message: msg})
}

// decodeBody decodes exactly one JSON object into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_body", "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid_body", "body must contain only one JSON object")
		return false
	}
	return true
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order; the first match wins. ErrGeocoderUnavailable comes before
// ErrAddressNotFound since a geocoder outage matches both.
var errorTable = []errorMapping{
	{domain.ErrEmptyInput, http.StatusBadRequest, "empty_input", "required field is missing or blank"},
	{domain.ErrGeocoderUnavailable, http.StatusBadGateway, "geocoder_unavailable", "address lookup service is unavailable"},
	{domain.ErrAddressNotFound, http.StatusUnprocessableEntity, "address_not_found", "address could not be found"},
	{domain.ErrRegionRestricted, http.StatusUnprocessableEntity, "region_restricted", "address is outside the supported region"},
	{domain.ErrNoRoutesAvailable, http.StatusBadGateway, "no_routes_available", "no route could be calculated to any designer"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found", "designer not found"},
	{domain.ErrStoreFailure, http.StatusInternalServerError, "store_failure", "designer storage failed"},
}

// writeDomainError maps err onto the error table and logs it through the
// request logger.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				log.Error("request failed", zap.String("code", m.code), zap.Error(err))
			} else {
				log.Info("request rejected", zap.String("code", m.code), zap.Error(err))
			}
			writeError(w, r, m.status, m.code, m.message)
			return
		}
	}

	log.Error("request failed", zap.Error(err))
	writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
}
