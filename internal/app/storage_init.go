package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Repositories объединяет хранилища приложения.
type Repositories struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository

	// Store не nil только для PostgreSQL-хранилища.
	Store *postgres.Store
}

// initStorage выбирает хранилище по конфигурации: PostgreSQL при заданном DSN,
// иначе in-memory для локальной разработки.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*Repositories, error) {
	if cfg.PostgresDSN == "" {
		logger.Info("postgres DSN is not set, using in-memory storage")
		return &Repositories{
			Customers: memory.NewCustomerRepository(),
			Products:  memory.NewProductRepository(),
			Orders:    memory.NewOrderRepository(),
		}, nil
	}

	store, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres store: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("postgres storage initialized")
	return &Repositories{
		Customers: postgres.NewCustomerRepository(store),
		Products:  postgres.NewProductRepository(store),
		Orders:    postgres.NewOrderRepository(store),
		Store:     store,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (r *Repositories) Close() error {
	if r == nil || r.Store == nil {
		return nil
	}
	return r.Store.Close()
}
