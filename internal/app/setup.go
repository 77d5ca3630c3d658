// Package app wires the catalog stores, services and transports together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/catalog/events"
	"github.com/abgdnv/gocatalog/internal/catalog/service"
	"github.com/abgdnv/gocatalog/internal/catalog/store"
	"github.com/abgdnv/gocatalog/internal/catalog/transport/rest"
	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/pkg/auth"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	natsclient "github.com/abgdnv/gocatalog/pkg/nats"
	"github.com/abgdnv/gocatalog/pkg/server"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Dependencies struct {
	CategoryService service.CategoryService
	ProductService  service.ProductService
	Verifier        auth.Verifier
	AdminRole       string
	MetricsEnabled  bool
	Logger          *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, verifier auth.Verifier, cfg *config.Config, logger *slog.Logger) *Dependencies {
	categoryStore := store.NewPgCategoryStore(dbPool)
	productStore := store.NewPgProductStore(dbPool)

	return &Dependencies{
		CategoryService: service.NewCategoryService(categoryStore, productStore, publisher, logger),
		ProductService:  service.NewProductService(productStore, publisher, logger),
		Verifier:        verifier,
		AdminRole:       cfg.IdP.AdminRole,
		MetricsEnabled:  cfg.Telemetry.Metrics.Enabled,
		Logger:          logger,
	}
}

// SetupHttpHandler builds the router with the catalog routes, the liveness and metrics endpoints
// and OpenTelemetry instrumentation. Used by E2E tests to drive the application in-process.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	server.RegisterOps(mux, deps.MetricsEnabled)
	rest.RegisterRoutes(mux,
		rest.NewCategoryHandler(deps.CategoryService, deps.Logger),
		rest.NewProductHandler(deps.ProductService, deps.Logger),
		auth.RequireRole(deps.Verifier, deps.AdminRole, deps.Logger),
	)
	return otelhttp.NewHandler(mux, "catalog.http")
}

// SetupHttpServer creates and configures an HTTP server for the catalog.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, SetupHttpHandler(deps))
}

// SetupGrpcServer creates the gRPC server exposing the standard health service backed by hs.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool, hs *health.Server) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, reflectionEnabled, server.WithHealth(hs))
}

// SetupPublisher returns the event publisher selected by the configuration together with a cleanup func.
// When publication is disabled the publisher discards events.
func SetupPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.NATS.Enabled {
		logger.Info("Event publication disabled")
		return messaging.NoopPublisher{}, func() {}, nil
	}
	nc, err := natsclient.NewClient(cfg.NATS.Url, cfg.NATS.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := natsclient.EnsureStream(ctx, js, cfg.NATS.Stream, events.StreamSubjects); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to prepare event stream: %w", err)
	}
	logger.Info("Event publication enabled", "url", cfg.NATS.Url, "stream", cfg.NATS.Stream)

	publisher := messaging.NewBreakerPublisher(
		natsclient.NewNatsPublisher(js, cfg.NATS.Stream, cfg.NATS.Timeout),
		cfg.CircuitBreaker,
	)
	cleanup := func() {
		if err := nc.Drain(); err != nil {
			logger.Warn("Failed to drain NATS connection", "error", err)
		}
	}
	return publisher, cleanup, nil
}
