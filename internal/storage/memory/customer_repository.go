package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// Create сохраняет нового покупателя, если ID ещё не занят.
func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[customer.ID]; exists {
		return domain.ErrDuplicateRecord
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[customer.ID] = customer
	return nil
}

// FindByID возвращает покупателя или ErrCustomerRecordNotFound, если его нет.
func (r *customerRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerRecordNotFound
	}
	return customer, nil
}

// FindByEmail ищет покупателя по email без учёта регистра.
func (r *customerRepositoryInMemory) FindByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.items {
		if strings.EqualFold(customer.Email, email) {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerRecordNotFound
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
