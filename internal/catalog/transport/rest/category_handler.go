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

type CategoryHandler struct {
	service  service.CategoryService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCategoryHandler(service service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: web.NewValidator(),
		logger:   logger.With("component", "rest", "resource", "categories"),
	}
}

// RegisterRoutes registers the category routes on a router mounted at /categories.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, admin Middleware) {
	r.Get("/", h.FindAll)
	r.With(admin).Post("/", h.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.FindByID)
		r.Get("/products", h.FindProducts)
		r.With(admin).Put("/", h.Update)
		r.With(admin).Delete("/", h.DeleteByID)
	})
}

func (h *CategoryHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving category list", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	h.logger.DebugContext(r.Context(), "Successfully retrieved category list", "count", len(list))
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *CategoryHandler) FindByID(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) FindProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	list, err := h.service.FindProducts(r.Context(), id)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error retrieving products of category", "ID", id, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch products of category %d", id))
		return
	}
	web.RespondJSON(w, h.logger, http.StatusOK, list)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var dto service.CategoryDto
	if !web.DecodeValid(w, r, h.logger, h.validate, &dto) {
		return
	}
	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Error creating category", "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, "Failed to create category")
		return
	}
	h.logger.InfoContext(r.Context(), "Category created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, h.logger, http.StatusCreated, created)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	var dto service.CategoryDto
	if !web.DecodeValid(w, r, h.logger, h.validate, &dto) {
		return
	}
	if err := h.service.Update(r.Context(), id, dto); err != nil {
		h.respondServiceError(w, r, id, "update", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Category updated successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	id, ok := web.ParseID(w, r, h.logger, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.respondServiceError(w, r, id, "delete", err)
		return
	}
	h.logger.InfoContext(r.Context(), "Category deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CategoryHandler) respondServiceError(w http.ResponseWriter, r *http.Request, id int, op string, err error) {
	switch {
	case errors.Is(err, catalogerrors.ErrCategoryNotFound):
		h.logger.WarnContext(r.Context(), "Category not found", "ID", id, "op", op)
		web.RespondError(w, h.logger, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", id))
	case errors.Is(err, catalogerrors.ErrCategoryInUse):
		h.logger.WarnContext(r.Context(), "Category still referenced by products", "ID", id)
		web.RespondError(w, h.logger, http.StatusConflict, fmt.Sprintf("Category with ID %d still has products", id))
	default:
		h.logger.ErrorContext(r.Context(), "Category operation failed", "ID", id, "op", op, "error", err)
		web.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s category with ID %d", op, id))
	}
}
