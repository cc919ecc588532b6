package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/supervape/catalog/internal/config"
	"github.com/supervape/catalog/internal/http/apierr"
	"github.com/supervape/catalog/internal/http/metric"
	"github.com/supervape/catalog/internal/http/middleware"
	"github.com/supervape/catalog/internal/http/swagger"
	"github.com/supervape/catalog/internal/service"
	"github.com/supervape/catalog/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg      config.HTTP
	authCfg  config.Auth
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metric.Metrics

	catalogSvc service.CatalogService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	authCfg config.Auth,
	log *slog.Logger,
	catalogSvc service.CatalogService,
) *Service {
	registry := prometheus.NewRegistry()

	return &Service{
		cfg:        cfg,
		authCfg:    authCfg,
		logger:     log.With(slog.String("service", "http")),
		registry:   registry,
		metrics:    metric.New(registry),
		catalogSvc: catalogSvc,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	re := &responder{logger: s.logger}
	v := validator.NewDefaultValidator()

	products := newProductHandler(s.catalogSvc, v, re)
	flavors := newFlavorHandler(s.catalogSvc, v, re)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		re.respond(w, r, http.StatusOK, healthResponse{OK: true})
	})

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	// Everything below passes the shared-secret gate.
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(s.authCfg))

		r.Get("/products", products.list)
		r.Post("/products", products.create)
		r.Patch("/products/{productID}", products.update)
		r.Delete("/products/{productID}", products.delete)

		r.Post("/products/{productID}/flavors", flavors.add)
		r.Patch("/flavors/{flavorID}", flavors.update)
		r.Delete("/flavors/{flavorID}", flavors.delete)
	})
}

// responder centralizes success and error writing for all handlers.
type responder struct {
	logger *slog.Logger
}

func (re *responder) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		re.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}

func (re *responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	res := apierr.New(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)

	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	re.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	if err := json.NewEncoder(w).Encode(res); err != nil {
		re.logger.ErrorContext(r.Context(), "error encoding error response",
			slog.Any("error", err))
	}
}
