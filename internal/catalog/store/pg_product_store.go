package store

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "github.com/abgdnv/gocatalog/internal/catalog/errors"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var productColumns = []string{
	"product_id", "name", "price", "category_id", "description", "color", "stock", "featured", "image_url",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PgProductStore implements ProductStore using PostgreSQL as the data store.
type PgProductStore struct {
	db *pgxpool.Pool
}

// NewPgProductStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgProductStore(dbp *pgxpool.Pool) *PgProductStore {
	return &PgProductStore{db: dbp}
}

// buildSearchQuery appends one predicate per supplied filter, so zero values such as
// an empty color or a negative price are matched literally.
func buildSearchQuery(f SearchFilter) (string, []any, error) {
	q := psql.Select(productColumns...).From("products")
	if f.CategoryID != nil {
		q = q.Where(sq.Eq{"category_id": *f.CategoryID})
	}
	if f.MinPrice != nil {
		q = q.Where(sq.Expr("price >= ?", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		q = q.Where(sq.Expr("price <= ?", *f.MaxPrice))
	}
	if f.Color != nil {
		q = q.Where(sq.Eq{"color": *f.Color})
	}
	return q.OrderBy("product_id").ToSql()
}

func (s *PgProductStore) Search(ctx context.Context, filter SearchFilter) ([]Product, error) {
	query, args, err := buildSearchQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build product search: %w", err)
	}
	return s.collect(ctx, "failed to search products", query, args...)
}

func (s *PgProductStore) FindByCategoryID(ctx context.Context, categoryID int) ([]Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"category_id": categoryID}).
		OrderBy("product_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category products query: %w", err)
	}
	return s.collect(ctx, "failed to find products by category", query, args...)
}

func (s *PgProductStore) FindByID(ctx context.Context, id int) (*Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where(sq.Eq{"product_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	product, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// Create inserts the product, then reads it back so defaults applied by the database are returned.
func (s *PgProductStore) Create(ctx context.Context, p ProductParams) (*Product, error) {
	var id int
	err := s.db.QueryRow(ctx,
		`INSERT INTO products (name, price, category_id, description, color, image_url, stock, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING product_id`,
		p.Name, p.Price, p.CategoryID, p.Description, p.Color, p.ImageURL, p.Stock, p.Featured,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, catalogerrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.FindByID(ctx, id)
}

func (s *PgProductStore) Update(ctx context.Context, id int, p ProductParams) error {
	_, err := s.db.Exec(ctx,
		`UPDATE products
		 SET name = $1, price = $2, category_id = $3, description = $4,
		     color = $5, image_url = $6, stock = $7, featured = $8
		 WHERE product_id = $9`,
		p.Name, p.Price, p.CategoryID, p.Description, p.Color, p.ImageURL, p.Stock, p.Featured, id,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalogerrors.ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (s *PgProductStore) DeleteByID(ctx context.Context, id int) (bool, error) {
	tag, err := s.db.Exec(ctx, "DELETE FROM products WHERE product_id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PgProductStore) collect(ctx context.Context, failure, query string, args ...any) ([]Product, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[Product])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}
