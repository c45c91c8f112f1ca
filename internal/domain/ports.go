package domain

import "context"

// OrderEventPublisher публикует интеграционные события о заказах наружу.
// Публикация не участвует в оформлении заказа: её ошибка не откатывает запись.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order Order) error
}
