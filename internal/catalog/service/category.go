package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocatalog/internal/catalog/events"
	"github.com/abgdnv/gocatalog/internal/catalog/store"
	"github.com/abgdnv/gocatalog/pkg/messaging"
)

// CategoryService defines the operations available on categories.
type CategoryService interface {
	// FindAll returns every category ordered by id.
	FindAll(ctx context.Context) ([]CategoryDto, error)

	// FindByID returns a single category.
	// Returns ErrCategoryNotFound if no category exists with the given ID.
	FindByID(ctx context.Context, id int) (*CategoryDto, error)

	// FindProducts returns the products of the category. An unknown category has no products.
	FindProducts(ctx context.Context, categoryID int) ([]ProductDto, error)

	// Create adds a category and returns it with its generated id.
	Create(ctx context.Context, category CategoryDto) (*CategoryDto, error)

	// Update replaces name and description of the category.
	Update(ctx context.Context, id int, category CategoryDto) error

	// DeleteByID removes a category.
	// Returns ErrCategoryNotFound if it does not exist and ErrCategoryInUse if products still reference it.
	DeleteByID(ctx context.Context, id int) error
}

// Categories implements CategoryService.
type Categories struct {
	categories store.CategoryStore
	products   store.ProductStore
	notifier
}

// NewCategoryService creates a CategoryService publishing change events through publisher.
func NewCategoryService(categories store.CategoryStore, products store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Categories {
	return &Categories{
		categories: categories,
		products:   products,
		notifier:   notifier{publisher: publisher, logger: logger.With("component", "category_service")},
	}
}

func (s *Categories) FindAll(ctx context.Context) ([]CategoryDto, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	dtos := make([]CategoryDto, len(categories))
	for i := range categories {
		dtos[i] = *toCategoryDto(&categories[i])
	}
	return dtos, nil
}

func (s *Categories) FindByID(ctx context.Context, id int) (*CategoryDto, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category by ID %d: %w", id, err)
	}
	return toCategoryDto(category), nil
}

func (s *Categories) FindProducts(ctx context.Context, categoryID int) ([]ProductDto, error) {
	products, err := s.products.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products of category %d: %w", categoryID, err)
	}
	return toProductDtos(products), nil
}

func (s *Categories) Create(ctx context.Context, category CategoryDto) (*CategoryDto, error) {
	created, err := s.categories.Create(ctx, category.Name, category.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.notify(ctx, events.CategoryEvent{
		Action:      events.Created,
		CategoryID:  created.ID,
		Name:        created.Name,
		Description: created.Description,
		OccurredAt:  time.Now().UTC(),
	})
	return toCategoryDto(created), nil
}

func (s *Categories) Update(ctx context.Context, id int, category CategoryDto) error {
	if err := s.categories.Update(ctx, id, category.Name, category.Description); err != nil {
		return fmt.Errorf("failed to update category with ID %d: %w", id, err)
	}
	s.notify(ctx, events.CategoryEvent{
		Action:      events.Updated,
		CategoryID:  id,
		Name:        category.Name,
		Description: category.Description,
		OccurredAt:  time.Now().UTC(),
	})
	return nil
}

// DeleteByID checks that the category exists before deleting it, so absence surfaces as not found.
func (s *Categories) DeleteByID(ctx context.Context, id int) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return fmt.Errorf("failed to fetch category by ID %d: %w", id, err)
	}
	if err := s.categories.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category with ID %d: %w", id, err)
	}
	s.notify(ctx, events.CategoryEvent{
		Action:     events.Deleted,
		CategoryID: id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
