package kafka

import "time"

// EventType определяет тип события
type EventType string

const (
	// Order события
	EventTypeOrderPlaced EventType = "order.placed"
)

// Topics для Kafka
const (
	TopicOrderEvents = "storefront.order.events"
)

// OrderItemPayload — позиция заказа в интеграционном событии.
type OrderItemPayload struct {
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"qty"`
	PriceMinor int64  `json:"price_minor"`
}

// OrderPlacedEvent публикуется после успешного оформления заказа.
type OrderPlacedEvent struct {
	EventType   EventType          `json:"event_type"`
	OrderID     string             `json:"order_id"`
	CustomerID  string             `json:"customer_id"`
	AmountMinor int64              `json:"amount_minor"`
	Items       []OrderItemPayload `json:"items"`
	Timestamp   time.Time          `json:"timestamp"`
}

// NewOrderPlacedEvent создает событие оформленного заказа.
func NewOrderPlacedEvent(orderID, customerID string, amountMinor int64, items []OrderItemPayload) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		EventType:   EventTypeOrderPlaced,
		OrderID:     orderID,
		CustomerID:  customerID,
		AmountMinor: amountMinor,
		Items:       items,
		Timestamp:   time.Now().UTC(),
	}
}
