package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"ds-storefront/internal/cart"
	"ds-storefront/internal/catalog"
	"ds-storefront/internal/customizer"
	"ds-storefront/internal/logger"
	"ds-storefront/internal/order"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Fields  []string `json:"fields,omitempty"`
	Details string   `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromCtx(r.Context()).Error("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{Error: message, Code: code})
}

// handleDomainError maps core errors onto HTTP statuses.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var mfe *order.MissingFieldError

	switch {
	case errors.Is(err, order.ErrEmptyCart):
		respondError(w, r, http.StatusUnprocessableEntity, "empty_cart", "Your cart is empty!")
	case errors.As(err, &mfe):
		respondJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "Please fill in all required fields!",
			Code:   "missing_field",
			Fields: mfe.Fields,
		})
	case errors.Is(err, customizer.ErrNoSelection):
		respondError(w, r, http.StatusConflict, "no_selection", err.Error())
	case errors.Is(err, catalog.ErrUnknownTier):
		respondError(w, r, http.StatusBadRequest, "invalid_tier", err.Error())
	case errors.Is(err, catalog.ErrTemplateMissing):
		respondError(w, r, http.StatusNotFound, "template_not_found", err.Error())
	case errors.Is(err, cart.ErrStorageUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "storage_unavailable", "cart saved for this session only")
	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		respondError(w, r, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
