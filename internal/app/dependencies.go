package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/reseller-orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/reseller-orders/internal/storage/postgres"
)

// Dependencies содержит собранные зависимости приложения: репозитории,
// публикацию событий и ссылки на ресурсы, которые нужно закрывать.
type Dependencies struct {
	Orders   domain.OrderRepository
	Products domain.ProductRepository
	Statuses domain.StatusRepository
	Events   domain.EventPublisher
	Logger   *log.Entry

	pgStore  *postgres.Store
	producer *kafka.Producer
}

// NewDependencies собирает зависимости согласно конфигурации.
// memory-хранилище получает демо-каталог, postgres — миграции при
// включённом автонакате.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		store := memory.NewStore()
		store.SeedDefaultCatalog()
		deps.Orders = memory.NewOrderRepository(store)
		deps.Products = memory.NewProductRepository(store)
		deps.Statuses = memory.NewStatusRepository(store)
		logger.Info("memory storage initialized")
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("ensure schema: %w", err)
			}
		}
		deps.pgStore = store
		deps.Orders = postgres.NewOrderRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		deps.Statuses = postgres.NewStatusRepository(store)
		logger.Info("postgres storage initialized")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.StorageDriver)
	}

	deps.Events = kafka.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			deps.producer = producer
			deps.Events = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	return deps, nil
}

// StorageCheck возвращает проверку хранилища для health-эндпоинта.
func (d *Dependencies) StorageCheck() func() error {
	return func() error {
		if d.pgStore == nil {
			return nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return d.pgStore.Ping(ctx)
	}
}

// Close освобождает внешние ресурсы.
func (d *Dependencies) Close() {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		}
	}
	if d.pgStore != nil {
		if err := d.pgStore.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
