package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	catalogerrors "github.com/abgdnv/gocatalog/internal/catalog/errors"
	"github.com/abgdnv/gocatalog/internal/catalog/service"
	"github.com/abgdnv/gocatalog/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewProductHandler(service service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: web.NewValidator(),
		logger:   logger.With("component", "rest", "resource", "products"),
	}
}

// RegisterRoutes registers the product routes on a router mounted at /products.
func (h *ProductHandler) RegisterRoutes(r chi.Router, admin Middleware) {
	r.Get("/", h.Search)
	r.With(admin).Post("/", h.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.FindByID)
		r.With(admin).Put("/", h.Update)
		r.With(admin).Delete("/", h.DeleteByID)
	})
}

// Search lists products, narrowed by the optional query parameters cat, minPrice, maxPrice and color.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	var filter service.ProductFilter
	var ok bool
	if filter.CategoryID, ok = web.OptionalInt(r, w, h.logger, "cat"); !ok {
		return
	}
	if filter.MinPrice, ok = web.OptionalDecimal(r, w, h.logger, "minPrice"); !ok {
		return
	}
	if filter.MaxPrice, ok = web.OptionalDecimal(r, w, h.logger, "maxPrice"); !ok {
		return
	}
	filter.Color = web.OptionalString(r, "color")

	list, err := h.service.Search(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error searching products", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully searched products", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *ProductHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, id, "retrieve", err)
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, found)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto service.ProductDto
	if !web.DecodeValid(w, r, h.logger, h.validate, &dto) {
		return
	}
	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrCategoryNotFound) {
			h.logger.WarnContext(r.Context(), "Product references unknown category", "categoryId", dto.CategoryID)
			web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Category with ID %d does not exist", dto.CategoryID))
			return
		}
		h.logger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	h.logger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	var dto service.ProductDto
	if !web.DecodeValid(w, r, h.logger, h.validate, &dto) {
		return
	}
	updated, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, catalogerrors.ErrCategoryNotFound) {
			h.logger.WarnContext(r.Context(), "Product references unknown category", "ID", id, "categoryId", dto.CategoryID)
			web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Category with ID %d does not exist", dto.CategoryID))
			return
		}
		h.respondServiceError(w, r, id, "update", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, h.logger, http.StatusOK, updated)
}

func (h *ProductHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, id, "delete", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) respondServiceError(w http.ResponseWriter, r *http.Request, id int, op string, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrProductNotFound):
		h.logger.WarnContext(r.Context(), "Product not found", "ID", id, "op", op)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
	case errors.Is(err, catalogerrors.ErrIDMismatch):
		h.logger.WarnContext(r.Context(), "Product ID in body does not match path", "ID", id)
		web.RespondError(w, h.logger, http.StatusBadRequest, fmt.Sprintf("Product ID in body does not match %d", id))
	default:
		h.logger.ErrorContext(r.Context(), "Product operation failed", "ID", id, "op", op, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product with ID %d", op, id))
	}
}
