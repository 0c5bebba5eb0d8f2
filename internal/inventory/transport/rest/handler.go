// Package rest provides HTTP handlers for inventory operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	inverrors "github.com/abgdnv/catalog/internal/inventory/errors"
	"github.com/abgdnv/catalog/internal/inventory/service"
	"github.com/abgdnv/catalog/pkg/jsonapi"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.InventoryService
	validate *validator.Validate
	apiKey   string
	logger   *slog.Logger
}

// NewHandler creates an inventory Handler. Quantity updates require apiKey in the X-API-Key header.
func NewHandler(svc service.InventoryService, apiKey string, logger *slog.Logger) *Handler {
	return &Handler{
		service:  svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		apiKey:   apiKey,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the inventory service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/inventories/{productId}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.With(web.APIKeyAuth(h.apiKey, h.logger)).Put("/", h.SetQuantity)
	})
}

// Get returns the product name and stock quantity of a product.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	productID, ok := web.ParseID(w, r, h.logger, "productId")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to get inventory", "productID", productID)

	inventory, err := h.service.Get(r.Context(), productID)
	switch {
	case err == nil:
	case errors.Is(err, inverrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found for inventory", "productID", productID)
		web.RespondError(w, h.logger, http.StatusNotFound, "Product or inventory not found")
		return
	case errors.Is(err, inverrors.ErrCircuitOpen), errors.Is(err, inverrors.ErrProductServiceUnavailable):
		h.logger.ErrorContext(r.Context(), "Product service unavailable", "productID", productID, "error", err)
		web.RespondError(w, h.logger, http.StatusServiceUnavailable, "Product service unavailable")
		return
	default:
		h.logger.ErrorContext(r.Context(), "Error fetching inventory", "productID", productID, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, jsonapi.Single(toResource(inventory)))
}

// SetQuantity stores a new stock quantity for a product.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := web.ParseID(w, r, h.logger, "productId")
	if !ok {
		return
	}
	var body QuantityRequest
	if !web.DecodeJSON(w, r, h.logger, &body) {
		return
	}
	if !web.ValidateBody(w, r, h.logger, h.validate, body) {
		return
	}

	if err := h.service.SetQuantity(r.Context(), productID, *body.Quantity); err != nil {
		h.logger.ErrorContext(r.Context(), "Error updating inventory", "productID", productID, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to update inventory")
		return
	}
	h.logger.InfoContext(r.Context(), "Inventory changed", "productID", productID, "quantity", *body.Quantity)
	web.RespondMessage(w, h.logger, http.StatusOK, "Inventory updated successfully")
}
