package domain

import (
	"errors"
	"testing"
	"time"
)

func validOrder() Order {
	now := time.Now()
	return Order{
		ID:          "order-1",
		CustomerID:  "customer-1",
		AmountMinor: 30,
		Items: []OrderItem{
			{ID: "item-1", ProductID: "p1", Qty: 3, PriceMinor: 10, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderValidateInvariants(t *testing.T) {
	order := validOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Errorf("expected no violations, got %v", errs)
	}
}

func TestOrderValidateInvariantsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Order)
		want   error
	}{
		{
			name:   "missing customer",
			mutate: func(o *Order) { o.CustomerID = "" },
			want:   ErrOrderCustomerRequired,
		},
		{
			name:   "non-positive qty",
			mutate: func(o *Order) { o.Items[0].Qty = 0 },
			want:   ErrItemQtyInvalid,
		},
		{
			name:   "negative price",
			mutate: func(o *Order) { o.Items[0].PriceMinor = -1 },
			want:   ErrItemPriceInvalid,
		},
		{
			name:   "amount mismatch",
			mutate: func(o *Order) { o.AmountMinor = 31 },
			want:   ErrAmountMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(&order)

			errs := order.ValidateInvariants()
			found := false
			for _, err := range errs {
				if errors.Is(err, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected violation %v, got %v", tt.want, errs)
			}
		})
	}
}

func TestOrderValidateInvariantsEmptyItems(t *testing.T) {
	// Заказ без позиций допустим, сумма должна быть нулевой.
	order := Order{ID: "order-1", CustomerID: "customer-1", AmountMinor: 0}
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Errorf("expected no violations, got %v", errs)
	}
}
