package domain

import "time"

// OrderItem представляет одну позицию заказа. Цена копируется из каталога
// в момент оформления и дальше не пересчитывается.
type OrderItem struct {
	// ID позиции нужен для однозначной идентификации и аудита.
	ID        string
	ProductID string
	// Qty — количество единиц товара.
	Qty int32
	// PriceMinor — цена за единицу на момент покупки в минимальных денежных единицах.
	PriceMinor int64
	// CreatedAt фиксирует момент добавления позиции в заказ.
	CreatedAt time.Time
}

// Order агрегирует оформленный заказ и его позиции. После создания заказ
// этим сервисом не изменяется.
type Order struct {
	ID         string
	CustomerID string
	// AmountMinor — сумма заказа, производная от позиций: Σ qty * price.
	AmountMinor int64
	Items       []OrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrOrderCustomerRequired)
	}

	// Сверяем сумму заказа с суммой позиций: qty * price.
	var calc int64
	for _, item := range o.Items {
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += int64(item.Qty) * item.PriceMinor
	}
	if calc != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}

// OrderLine — запрошенная позиция на входе оформления заказа.
type OrderLine struct {
	ProductID string
	Qty       int32
}
