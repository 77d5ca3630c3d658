package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	catalogerrors "github.com/abgdnv/gocatalog/internal/catalog/errors"
	"github.com/abgdnv/gocatalog/internal/catalog/events"
	"github.com/abgdnv/gocatalog/internal/catalog/store"
	"github.com/abgdnv/gocatalog/pkg/messaging"
)

// ProductService defines the operations available on products.
type ProductService interface {
	// Search returns products matching every supplied filter, ordered by id.
	Search(ctx context.Context, filter ProductFilter) ([]ProductDto, error)

	// FindByID returns a single product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// Create adds a product and returns it as stored.
	// Returns ErrCategoryNotFound if the referenced category does not exist.
	Create(ctx context.Context, product ProductDto) (*ProductDto, error)

	// Update replaces the product and returns it as stored after the update.
	// Returns ErrIDMismatch if the body id disagrees with id, ErrProductNotFound if the product does not exist
	// and ErrCategoryNotFound if the referenced category does not exist.
	Update(ctx context.Context, id int, product ProductDto) (*ProductDto, error)

	// DeleteByID removes a product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) error
}

// Products implements ProductService.
type Products struct {
	products store.ProductStore
	notifier
}

// NewProductService creates a ProductService publishing change events through publisher.
func NewProductService(products store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Products {
	return &Products{
		products: products,
		notifier: notifier{publisher: publisher, logger: logger.With("component", "product_service")},
	}
}

func (s *Products) Search(ctx context.Context, filter ProductFilter) ([]ProductDto, error) {
	products, err := s.products.Search(ctx, store.SearchFilter{
		CategoryID: filter.CategoryID,
		MinPrice:   filter.MinPrice,
		MaxPrice:   filter.MaxPrice,
		Color:      filter.Color,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return toProductDtos(products), nil
}

func (s *Products) FindByID(ctx context.Context, id int) (*ProductDto, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toProductDto(product), nil
}

func (s *Products) Create(ctx context.Context, product ProductDto) (*ProductDto, error) {
	created, err := s.products.Create(ctx, toProductParams(product))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.notify(ctx, productEvent(events.Created, created))
	return toProductDto(created), nil
}

func (s *Products) Update(ctx context.Context, id int, product ProductDto) (*ProductDto, error) {
	if product.ID != 0 && product.ID != id {
		return nil, fmt.Errorf("product %d: %w", product.ID, catalogerrors.ErrIDMismatch)
	}
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	if err := s.products.Update(ctx, id, toProductParams(product)); err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	updated, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updated product %d: %w", id, err)
	}
	s.notify(ctx, productEvent(events.Updated, updated))
	return toProductDto(updated), nil
}

func (s *Products) DeleteByID(ctx context.Context, id int) error {
	deleted, err := s.products.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	if !deleted {
		return catalogerrors.ErrProductNotFound
	}
	s.notify(ctx, events.ProductEvent{
		Action:     events.Deleted,
		ProductID:  id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func productEvent(action events.Action, p *store.Product) events.ProductEvent {
	return events.ProductEvent{
		Action:     action,
		ProductID:  p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      p.Price.String(),
		Stock:      p.Stock,
		OccurredAt: time.Now().UTC(),
	}
}
