package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/products"
	httpapi "github.com/vladislavdragonenkov/storefront/internal/transport/http"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает зависимости и запускает API-сервер и сервер метрик.
// Возвращается после остановки по ctx или по ошибке сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	repos, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.Close(); err != nil {
			logger.WithError(err).Warn("failed to close storage")
		}
	}()

	publisher := setupEventPublisher(cfg, logger)
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka producer")
			}
		}()
	}

	customersSvc := customers.NewService(repos.Customers, logger.WithField("layer", "customers"))
	productsSvc := products.NewService(repos.Products, logger.WithField("layer", "products"))

	checkoutSvc := newCheckoutService(repos, publisher, logger)

	handler := httpapi.NewHandler(customersSvc, productsSvc, checkoutSvc, repos.Orders, logger.WithField("layer", "http"))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	handler.RegisterRoutes(router)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if repos.Store != nil {
		healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return repos.Store.Ping(checkCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
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

// setupEventPublisher подключает Kafka producer, если в конфигурации заданы
// brokers. Kafka опциональна: при пустом списке или ошибке подключения сервис
// продолжает работу, не публикуя события заказов.
func setupEventPublisher(cfg Config, logger *log.Entry) *kafka.Producer {
	brokers := cfg.KafkaBrokerList()
	if len(brokers) == 0 {
		return nil
	}

	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without order events")
		return nil
	}

	logger.WithField("brokers", brokers).Info("kafka producer initialized")
	return producer
}

// newCheckoutService собирает сервис оформления с учётом опционального Kafka.
func newCheckoutService(repos *Repositories, publisher *kafka.Producer, logger *log.Entry) *checkout.Service {
	checkoutLogger := logger.WithField("layer", "checkout")
	if publisher == nil {
		return checkout.NewService(repos.Customers, repos.Products, repos.Orders, nil, checkoutLogger)
	}
	return checkout.NewService(repos.Customers, repos.Products, repos.Orders, publisher, checkoutLogger)
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
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
