package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Service оформляет заказы: проверяет покупателя и остатки, считает позиции,
// сохраняет заказ и списывает остатки. Экземпляр не хранит состояния между
// вызовами и безопасен для конкурентного использования.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	publisher domain.OrderEventPublisher
	logger    *log.Entry
	metrics   *metrics.CheckoutMetrics
}

// NewService создаёт сервис оформления с зависимостями.
// publisher может быть nil, тогда события не публикуются.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	publisher domain.OrderEventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "checkout")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics.NewCheckoutMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	publisher domain.OrderEventPublisher,
	logger *log.Entry,
) *Service {
	svc := NewService(customers, products, orders, publisher, logger)
	svc.metrics = nil
	return svc
}

// PlaceOrder выполняет оформление заказа: покупатель → каталог → проверка
// позиций → запись заказа → списание остатков. Шаги строго последовательные,
// любая бизнес-ошибка прерывает оформление до первой записи.
//
// Запись заказа и обновление остатков — два независимых вызова без общей
// транзакции: сбой на списании оставляет заказ сохранённым (компенсации нет).
func (s *Service) PlaceOrder(ctx context.Context, customerID string, lines []domain.OrderLine) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordInFlightStarted()
	}
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordInFlightFinished()
			s.metrics.RecordPlacementDuration(time.Since(start))
		}
	}()

	// Количество проверяем до любого I/O: исходный контракт не определял
	// поведение для qty <= 0, здесь такие запросы отклоняются явно.
	for _, line := range lines {
		if line.Qty <= 0 {
			return domain.Order{}, s.reject(domain.NewInvalidQuantity(line.ProductID))
		}
	}

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerRecordNotFound) {
			return domain.Order{}, s.reject(domain.NewCustomerNotFound())
		}
		return domain.Order{}, fmt.Errorf("find customer: %w", err)
	}

	// Один батч-запрос в каталог вместо запроса на каждую позицию.
	selections := make([]domain.ProductSelection, 0, len(lines))
	for _, line := range lines {
		selections = append(selections, domain.ProductSelection{ID: line.ProductID, Qty: line.Qty})
	}
	found, err := s.products.FindAllByID(ctx, selections)
	if err != nil {
		return domain.Order{}, fmt.Errorf("find products: %w", err)
	}

	snapshot := make(map[string]domain.Product, len(found))
	for _, product := range found {
		snapshot[product.ID] = product
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(lines))
	adjustments := make([]domain.ProductSelection, 0, len(lines))
	var amountSum int64

	for _, line := range lines {
		data, ok := snapshot[line.ProductID]
		if !ok {
			return domain.Order{}, s.reject(domain.NewProductNotFound())
		}
		// Каждая позиция сверяется с исходным снимком каталога. Дубли одного
		// товара проходят проверку независимо, и последнее абсолютное значение
		// остатка перезаписывает предыдущие — списания по дублям не суммируются.
		if line.Qty > data.Quantity {
			return domain.Order{}, s.reject(domain.NewInsufficientStock(data.Name))
		}

		adjustments = append(adjustments, domain.ProductSelection{
			ID:  line.ProductID,
			Qty: data.Quantity - line.Qty,
		})
		items = append(items, domain.OrderItem{
			ID:         uuid.NewString(),
			ProductID:  line.ProductID,
			Qty:        line.Qty,
			PriceMinor: data.PriceMinor,
			CreatedAt:  now,
		})
		amountSum += int64(line.Qty) * data.PriceMinor
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  customer.ID,
		AmountMinor: amountSum,
		Items:       items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("order invariants violated: %s", joinErrors(errs))
	}

	stored, err := s.orders.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	if err := s.products.UpdateQuantity(ctx, adjustments); err != nil {
		// Заказ уже сохранён, отката нет: остатки остаются несписанными.
		s.logger.WithError(err).WithField("order_id", stored.ID).
			Error("stock update failed after order was persisted")
		return domain.Order{}, fmt.Errorf("update product quantities: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(len(stored.Items))
	}
	s.logger.WithFields(log.Fields{
		"order_id":     stored.ID,
		"customer_id":  stored.CustomerID,
		"items":        len(stored.Items),
		"amount_minor": stored.AmountMinor,
	}).Info("order placed")

	s.publishPlaced(ctx, stored)

	return stored, nil
}

// publishPlaced отправляет событие order.placed, если publisher настроен.
func (s *Service) publishPlaced(ctx context.Context, order domain.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).
			Warn("failed to publish order.placed event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
}

// reject фиксирует бизнес-отказ в метриках и возвращает его без изменений.
func (s *Service) reject(appErr *domain.Error) error {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed(string(appErr.Kind))
	}
	s.logger.WithFields(log.Fields{
		"reason": appErr.Kind,
		"status": appErr.Status,
	}).Info("order placement rejected")
	return appErr
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
