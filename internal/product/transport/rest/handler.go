// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"errors"
	"log/slog"
	"net/http"

	producterrors "github.com/abgdnv/catalog/internal/product/errors"
	"github.com/abgdnv/catalog/internal/product/service"
	"github.com/abgdnv/catalog/internal/product/store"
	"github.com/abgdnv/catalog/pkg/jsonapi"
	"github.com/abgdnv/catalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	limits   web.PageLimits
	sortable map[string]bool
	logger   *slog.Logger
}

// NewHandler creates a new product Handler backed by the given service.
func NewHandler(svc service.ProductService, limits web.PageLimits, logger *slog.Logger) *Handler {
	sortable := make(map[string]bool, len(store.SortableColumns))
	for property := range store.SortableColumns {
		sortable[property] = true
	}
	return &Handler{
		service:  svc,
		validate: service.NewValidator(),
		limits:   limits,
		sortable: sortable,
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product service.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetByID)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// GetByID retrieves a product by its ID.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}

	h.logger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, exists, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}
	if !exists {
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id)
		web.RespondJSON(w, h.logger, http.StatusNotFound, nil)
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, jsonapi.Single(toResource(found)))
}

// List retrieves one page of products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	pageReq, ok := web.ParsePageRequest(w, r, h.logger, h.limits, h.sortable)
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to list products", "page", pageReq.Page, "size", pageReq.Size, "sort", pageReq.Sort)
	page, err := h.service.List(r.Context(), pageReq)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(page.Content), "total", page.TotalElements)
	web.RespondJSON(w, h.logger, http.StatusOK, jsonapi.List(toResources(page.Content)))
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var details service.ProductDetails
	if !web.DecodeJSON(w, r, h.logger, &details) {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to create product", "name", details.Name)
	if !web.ValidateBody(w, r, h.logger, h.validate, details) {
		return
	}

	created, err := h.service.Create(r.Context(), details)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, jsonapi.Single(toResource(created)))
}

// Update replaces the name and price of a product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to update product", "ID", id)
	var details service.ProductDetails
	if !web.DecodeJSON(w, r, h.logger, &details) {
		return
	}
	if !web.ValidateBody(w, r, h.logger, h.validate, details) {
		return
	}

	updated, err := h.service.Update(r.Context(), id, details)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.logger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondJSON(w, h.logger, http.StatusNotFound, nil)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to update product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, jsonapi.Single(toResource(updated)))
}

// Delete removes a product by its ID.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	h.logger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			h.logger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondJSON(w, h.logger, http.StatusNotFound, nil)
			return
		}
		h.logger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}
