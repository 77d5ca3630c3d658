package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/abgdnv/gocatalog/internal/catalog/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) FindAll(ctx context.Context) ([]service.CategoryDto, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]service.CategoryDto)
	return list, args.Error(1)
}

func (m *MockCategoryService) FindByID(ctx context.Context, id int) (*service.CategoryDto, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*service.CategoryDto)
	return dto, args.Error(1)
}

func (m *MockCategoryService) FindProducts(ctx context.Context, categoryID int) ([]service.ProductDto, error) {
	args := m.Called(ctx, categoryID)
	list, _ := args.Get(0).([]service.ProductDto)
	return list, args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, category service.CategoryDto) (*service.CategoryDto, error) {
	args := m.Called(ctx, category)
	dto, _ := args.Get(0).(*service.CategoryDto)
	return dto, args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id int, category service.CategoryDto) error {
	return m.Called(ctx, id, category).Error(0)
}

func (m *MockCategoryService) DeleteByID(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Search(ctx context.Context, filter service.ProductFilter) ([]service.ProductDto, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]service.ProductDto)
	return list, args.Error(1)
}

func (m *MockProductService) FindByID(ctx context.Context, id int) (*service.ProductDto, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*service.ProductDto)
	return dto, args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, product service.ProductDto) (*service.ProductDto, error) {
	args := m.Called(ctx, product)
	dto, _ := args.Get(0).(*service.ProductDto)
	return dto, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int, product service.ProductDto) (*service.ProductDto, error) {
	args := m.Called(ctx, id, product)
	dto, _ := args.Get(0).(*service.ProductDto)
	return dto, args.Error(1)
}

func (m *MockProductService) DeleteByID(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func allowAll(next http.Handler) http.Handler { return next }

func denyAll(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
}

// newRouter mounts both handlers the way the application does.
func newRouter(categories service.CategoryService, products service.ProductService, admin Middleware) *chi.Mux {
	mux := chi.NewRouter()
	RegisterRoutes(mux,
		NewCategoryHandler(categories, testLogger),
		NewProductHandler(products, testLogger),
		admin)
	return mux
}

func serve(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}
