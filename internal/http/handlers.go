package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/storeline/storefront/internal/domain"
	"github.com/storeline/storefront/internal/session"
)

type StoreHandler struct {
	session *session.Session
	logger  *zap.Logger
}

func NewStoreHandler(s *session.Session, logger *zap.Logger) *StoreHandler {
	return &StoreHandler{
		session: s,
		logger:  logger,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ProductDTO is a catalog product with the display flags the original UI
// derives: whether it is expired and whether it can be added at all.
type ProductDTO struct {
	domain.Product
	Expired    bool `json:"expired"`
	OutOfStock bool `json:"out_of_stock"`
}

type ProductsResponseDTO struct {
	Products []ProductDTO `json:"products"`
	Balance  float64      `json:"balance"`
}

func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	products := h.session.Products()

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{
			Product:    p,
			Expired:    p.IsExpired(now),
			OutOfStock: p.Stock == 0,
		})
	}

	respondJSON(w, http.StatusOK, ProductsResponseDTO{
		Products: dtos,
		Balance:  h.session.Balance(),
	})
}

func (h *StoreHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.CartView(r.Context())
	if err != nil {
		h.logger.Error("failed to build cart view", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *StoreHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	if err := h.session.AddToCart(r.Context(), req.ProductID, req.Quantity); err != nil {
		handleDomainError(w, err)
		return
	}

	view, err := h.session.CartView(r.Context())
	if err != nil {
		h.logger.Error("failed to build cart view", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

func (h *StoreHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	if err := h.session.RemoveFromCart(r.Context(), productID); err != nil {
		handleDomainError(w, err)
		return
	}

	view, err := h.session.CartView(r.Context())
	if err != nil {
		h.logger.Error("failed to build cart view", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "could not load cart")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *StoreHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.session.Checkout(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}
