package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/abgdnv/gocatalog/internal/catalog/store"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockCategoryStore is a hand-written CategoryStore returning canned values.
type mockCategoryStore struct {
	categories []store.Category
	category   *store.Category
	findErr    error
	writeErr   error
	updated    bool
	deleted    bool
}

func (m *mockCategoryStore) FindAll(_ context.Context) ([]store.Category, error) {
	return m.categories, m.findErr
}

func (m *mockCategoryStore) FindByID(_ context.Context, _ int) (*store.Category, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.category, nil
}

func (m *mockCategoryStore) Create(_ context.Context, _, _ string) (*store.Category, error) {
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	return m.category, nil
}

func (m *mockCategoryStore) Update(_ context.Context, _ int, _, _ string) error {
	m.updated = m.writeErr == nil
	return m.writeErr
}

func (m *mockCategoryStore) DeleteByID(_ context.Context, _ int) error {
	m.deleted = m.writeErr == nil
	return m.writeErr
}

// mockProductStore is a hand-written ProductStore returning canned values.
type mockProductStore struct {
	products  []store.Product
	product   *store.Product
	findErr   error
	writeErr  error
	deleted   bool
	filter    store.SearchFilter
	updates   int
	updatedTo store.ProductParams
}

func (m *mockProductStore) Search(_ context.Context, filter store.SearchFilter) ([]store.Product, error) {
	m.filter = filter
	return m.products, m.findErr
}

func (m *mockProductStore) FindByCategoryID(_ context.Context, _ int) ([]store.Product, error) {
	return m.products, m.findErr
}

func (m *mockProductStore) FindByID(_ context.Context, _ int) (*store.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.product, nil
}

func (m *mockProductStore) Create(_ context.Context, _ store.ProductParams) (*store.Product, error) {
	if m.writeErr != nil {
		return nil, m.writeErr
	}
	return m.product, nil
}

func (m *mockProductStore) Update(_ context.Context, _ int, params store.ProductParams) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.updates++
	m.updatedTo = params
	return nil
}

func (m *mockProductStore) DeleteByID(_ context.Context, _ int) (bool, error) {
	return m.deleted, m.writeErr
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// subjectIs matches an event published on subject.
func subjectIs(subject string) any {
	return mock.MatchedBy(func(e messaging.Event) bool { return e.Subject() == subject })
}
