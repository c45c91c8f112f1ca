package domain

import "context"

// CustomerRepository описывает требования к хранилищу покупателей.
type CustomerRepository interface {
	// Create сохраняет нового покупателя. Возвращает ErrDuplicateRecord,
	// если запись с таким ID уже существует.
	Create(ctx context.Context, customer Customer) error
	// FindByID возвращает покупателя или ErrCustomerRecordNotFound, если его нет.
	FindByID(ctx context.Context, id string) (Customer, error)
	// FindByEmail возвращает покупателя по email или ErrCustomerRecordNotFound.
	FindByEmail(ctx context.Context, email string) (Customer, error)
}

// ProductRepository описывает требования к хранилищу товаров каталога.
type ProductRepository interface {
	// Create сохраняет новый товар.
	Create(ctx context.Context, product Product) error
	// FindByName возвращает товар по имени или ErrProductRecordNotFound.
	FindByName(ctx context.Context, name string) (Product, error)
	// FindAllByID возвращает товары для запрошенных позиций одним обращением.
	// Отсутствующие в каталоге id молча пропускаются: решение об ошибке
	// принимает вызывающий слой.
	FindAllByID(ctx context.Context, selections []ProductSelection) ([]Product, error)
	// UpdateQuantity заменяет остаток каждого указанного товара на абсолютное
	// значение из selections.
	UpdateQuantity(ctx context.Context, selections []ProductSelection) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ вместе с позициями и возвращает сохранённую запись.
	Create(ctx context.Context, order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// ListByCustomer возвращает заказы покупателя с опциональным ограничением на количество.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]Order, error)
}
