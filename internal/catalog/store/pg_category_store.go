package store

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "github.com/abgdnv/gocatalog/internal/catalog/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = "category_id, name, description"

// PgCategoryStore implements CategoryStore using PostgreSQL as the data store.
type PgCategoryStore struct {
	db *pgxpool.Pool
}

// NewPgCategoryStore creates a new instance of CategoryStore using a PostgreSQL connection pool.
func NewPgCategoryStore(dbp *pgxpool.Pool) *PgCategoryStore {
	return &PgCategoryStore{db: dbp}
}

func (s *PgCategoryStore) FindAll(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, "SELECT "+categoryColumns+" FROM categories ORDER BY category_id")
	if err != nil {
		return nil, fmt.Errorf("failed to find all categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[Category])
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

func (s *PgCategoryStore) FindByID(ctx context.Context, id int) (*Category, error) {
	rows, err := s.db.Query(ctx, "SELECT "+categoryColumns+" FROM categories WHERE category_id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Category])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return category, nil
}

func (s *PgCategoryStore) Create(ctx context.Context, name, description string) (*Category, error) {
	rows, err := s.db.Query(ctx,
		"INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING "+categoryColumns,
		name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Category])
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *PgCategoryStore) Update(ctx context.Context, id int, name, description string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE categories SET name = $1, description = $2 WHERE category_id = $3",
		name, description, id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (s *PgCategoryStore) DeleteByID(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM categories WHERE category_id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalogerrors.ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalogerrors.ErrCategoryNotFound
	}
	return nil
}
