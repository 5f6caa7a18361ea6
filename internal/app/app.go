package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/reseller-orders/internal/health"
	"github.com/vladislavdragonenkov/reseller-orders/internal/metrics"
	"github.com/vladislavdragonenkov/reseller-orders/internal/service/order"
	transport "github.com/vladislavdragonenkov/reseller-orders/internal/transport/http"
	"github.com/vladislavdragonenkov/reseller-orders/internal/version"
)

const (
	shutdownTimeout = 5 * time.Second
	pingTimeout     = 2 * time.Second
)

// Run собирает зависимости и держит HTTP API и сервер метрик до отмены
// контекста.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	manager := order.NewManager(
		deps.Orders,
		deps.Products,
		deps.Statuses,
		deps.Events,
		logger,
		metrics.NewOrderMetrics(),
	)

	if err := checkStatusCatalog(deps.Statuses); err != nil {
		logger.WithError(err).Error("status catalog is incomplete, refusing to start")
		return err
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	transport.NewHandler(manager, logger).RegisterRoutes(router)

	healthHandler := healthcheck.NewHandler(version.String())
	healthHandler.RegisterChecker("storage", healthcheck.NewCheckFunc("storage", deps.StorageCheck()))

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP API")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// checkStatusCatalog однократно проверяет, что справочник статусов содержит
// обязательные записи. Неполный справочник — ошибка конфигурации развёртывания,
// сервис с ним не стартует.
func checkStatusCatalog(statuses domain.StatusRepository) error {
	for _, name := range []string{domain.StatusNameCreated, domain.StatusNameCompleted} {
		if _, err := statuses.StatusIDByName(name); err != nil {
			return fmt.Errorf("%w: %q", domain.ErrStatusCatalogMissing, name)
		}
	}
	return nil
}

// startMetricsServer запускает HTTP-обработчик /metrics и health-эндпоинты.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/readyz, %s/livez", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
