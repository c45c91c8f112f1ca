package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Service отвечает за ведение каталога товаров.
type Service struct {
	repo   domain.ProductRepository
	logger *log.Entry
}

// NewService создаёт сервис каталога.
func NewService(repo domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "products")
	}
	return &Service{repo: repo, logger: logger}
}

// Register добавляет товар в каталог. Имя товара должно быть уникальным.
func (s *Service) Register(ctx context.Context, name string, priceMinor int64, quantity int32) (domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       name,
		PriceMinor: priceMinor,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return domain.Product{}, domain.NewProductNameTaken(name)
	} else if !errors.Is(err, domain.ErrProductRecordNotFound) {
		return domain.Product{}, fmt.Errorf("check product name: %w", err)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("product registered")

	return product, nil
}
