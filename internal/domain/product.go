package domain

import "time"

// Product — товар каталога. Quantity отражает текущий остаток на складе
// и изменяется только через ProductRepository.UpdateQuantity.
type Product struct {
	ID   string
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	// Quantity — остаток на складе, не может быть отрицательным.
	Quantity  int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.PriceMinor < 0 {
		errs = append(errs, ErrProductPriceNegative)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQuantityNegative)
	}

	return errs
}

// ProductSelection — пара (товар, количество), используемая и для батч-выборки
// каталога, и для абсолютного обновления остатков. При обновлении Qty — это
// новое значение остатка целиком, а не дельта.
type ProductSelection struct {
	ID  string
	Qty int32
}
