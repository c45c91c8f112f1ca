package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return domain.ErrDuplicateRecord
	}
	r.items[product.ID] = product
	return nil
}

// FindByName возвращает товар по точному совпадению имени.
func (r *productRepositoryInMemory) FindByName(_ context.Context, name string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, product := range r.items {
		if product.Name == name {
			return product, nil
		}
	}
	return domain.Product{}, domain.ErrProductRecordNotFound
}

// FindAllByID возвращает найденные товары в порядке запрошенных позиций.
// Отсутствующие id пропускаются, решение об ошибке остаётся за вызывающим.
func (r *productRepositoryInMemory) FindAllByID(_ context.Context, selections []domain.ProductSelection) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(selections))
	seen := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		if _, ok := seen[sel.ID]; ok {
			continue
		}
		seen[sel.ID] = struct{}{}
		if product, ok := r.items[sel.ID]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// UpdateQuantity заменяет остаток каждого указанного товара абсолютным значением.
func (r *productRepositoryInMemory) UpdateQuantity(_ context.Context, selections []domain.ProductSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sel := range selections {
		product, ok := r.items[sel.ID]
		if !ok {
			return domain.ErrProductRecordNotFound
		}
		product.Quantity = sel.Qty
		product.UpdatedAt = time.Now().UTC()
		r.items[sel.ID] = product
	}
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
