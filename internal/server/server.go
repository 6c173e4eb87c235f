package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/apozdnyakova/weblarek/internal/health"
	"github.com/apozdnyakova/weblarek/internal/version"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	maxBodySize       = 1 << 20 // 1MB
)

// Config описывает минимальные настройки запуска API-сервера.
type Config struct {
	Addr string
}

// DefaultConfig возвращает базовый адрес HTTP API.
func DefaultConfig() Config {
	return Config{Addr: ":8081"}
}

// Server — справочный REST API витрины: каталог и приём заказов.
type Server struct {
	cfg      Config
	products *ProductHandler
	orders   *OrderHandler
	health   *healthcheck.Handler
	logger   *log.Entry
}

// New собирает сервер из обработчиков.
func New(cfg Config, products *ProductHandler, orders *OrderHandler, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.New().WithField("component", "server")
	}
	return &Server{
		cfg:      cfg,
		products: products,
		orders:   orders,
		health:   healthcheck.NewHandler(version.String()),
		logger:   logger,
	}
}

// RegisterChecker добавляет проверку компонента в /healthz.
func (s *Server) RegisterChecker(name string, checker healthcheck.Checker) {
	s.health.RegisterChecker(name, checker)
}

// Router собирает маршруты API: контракт витрины плюс служебные endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/product/", s.products.List)
	r.Get("/product/{id}", s.products.Get)
	r.Post("/order", s.orders.Create)

	r.Handle("/metrics", promhttp.Handler())
	r.Method(http.MethodGet, "/healthz", s.health)
	r.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// Run запускает HTTP-сервер и аккуратно останавливает его по отмене контекста.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("HTTP API слушает %s", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Warn("shutdown with error")
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
