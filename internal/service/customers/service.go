package customers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Service отвечает за регистрацию и поиск покупателей.
type Service struct {
	repo   domain.CustomerRepository
	logger *log.Entry
}

// NewService создаёт сервис покупателей.
func NewService(repo domain.CustomerRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "customers")
	}
	return &Service{repo: repo, logger: logger}
}

// Register создаёт нового покупателя. Email должен быть уникальным.
func (s *Service) Register(ctx context.Context, name, email string) (domain.Customer, error) {
	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if errs := customer.ValidateInvariants(); len(errs) > 0 {
		return domain.Customer{}, errs[0]
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.Customer{}, domain.NewEmailTaken(email)
	} else if !errors.Is(err, domain.ErrCustomerRecordNotFound) {
		return domain.Customer{}, fmt.Errorf("check customer email: %w", err)
	}

	if err := s.repo.Create(ctx, customer); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"email":       customer.Email,
	}).Info("customer registered")

	return customer, nil
}

// Get возвращает покупателя по идентификатору.
func (s *Service) Get(ctx context.Context, id string) (domain.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerRecordNotFound) {
			return domain.Customer{}, domain.NewCustomerNotFound()
		}
		return domain.Customer{}, fmt.Errorf("find customer: %w", err)
	}
	return customer, nil
}
