// Package store provides PostgreSQL persistence for categories and products.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Category represents a row of the categories table.
type Category struct {
	ID          int    `db:"category_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

// Product represents a row of the products table.
type Product struct {
	ID          int             `db:"product_id"`
	Name        string          `db:"name"`
	Price       decimal.Decimal `db:"price"`
	CategoryID  int             `db:"category_id"`
	Description string          `db:"description"`
	Color       string          `db:"color"`
	Stock       int             `db:"stock"`
	Featured    bool            `db:"featured"`
	ImageURL    string          `db:"image_url"`
}

// ProductParams carries every writable product column.
type ProductParams struct {
	Name        string
	Price       decimal.Decimal
	CategoryID  int
	Description string
	Color       string
	Stock       int
	Featured    bool
	ImageURL    string
}

// SearchFilter narrows a product search. A nil field does not constrain that dimension.
type SearchFilter struct {
	CategoryID *int
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Color      *string
}

// CategoryStore is an interface for category storage operations.
type CategoryStore interface {
	// FindAll returns every category ordered by id.
	// Returns an empty slice if no categories exist.
	FindAll(ctx context.Context) ([]Category, error)

	// FindByID retrieves a single category by its identifier.
	// Returns ErrCategoryNotFound if no category exists with the given ID.
	FindByID(ctx context.Context, id int) (*Category, error)

	// Create inserts a category and returns the stored row.
	Create(ctx context.Context, name, description string) (*Category, error)

	// Update replaces name and description of the category. Updating a missing id is a no-op.
	Update(ctx context.Context, id int, name, description string) error

	// DeleteByID removes a category.
	// Returns ErrCategoryNotFound if nothing was deleted and ErrCategoryInUse if products still reference it.
	DeleteByID(ctx context.Context, id int) error
}

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// Search returns products matching every supplied filter, ordered by id.
	Search(ctx context.Context, filter SearchFilter) ([]Product, error)

	// FindByCategoryID returns the products of one category, ordered by id.
	FindByCategoryID(ctx context.Context, categoryID int) ([]Product, error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*Product, error)

	// Create inserts a product and returns the row as stored.
	// Returns ErrCategoryNotFound if the referenced category does not exist.
	Create(ctx context.Context, params ProductParams) (*Product, error)

	// Update replaces every writable column of the product.
	// Returns ErrCategoryNotFound if the referenced category does not exist.
	Update(ctx context.Context, id int, params ProductParams) error

	// DeleteByID removes a product and reports whether a row was deleted.
	DeleteByID(ctx context.Context, id int) (bool, error)
}

const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
