package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/storeline/storefront/internal/account"
	"github.com/storeline/storefront/internal/cart"
	"github.com/storeline/storefront/internal/catalog"
	"github.com/storeline/storefront/internal/checkout"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    code,
		Details: details,
	})
}

// handleDomainError maps the store's error kinds onto HTTP statuses so the
// UI can surface them to the user.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrNotInCart):
		respondError(w, http.StatusNotFound, "not_in_cart", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrExpiredItem):
		respondError(w, http.StatusConflict, "expired_item", err.Error())
	case errors.Is(err, account.ErrInsufficientFunds):
		respondError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	default:
		// Includes ErrNegativeStock: an invariant violation is a bug, not
		// a user-facing condition.
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
