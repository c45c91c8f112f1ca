package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind классифицирует бизнес-ошибки сервиса.
type ErrorKind string

const (
	// KindCustomerNotFound — покупатель с указанным идентификатором не найден.
	KindCustomerNotFound ErrorKind = "customer_not_found"
	// KindProductNotFound — хотя бы один запрошенный товар отсутствует в каталоге.
	KindProductNotFound ErrorKind = "product_not_found"
	// KindInsufficientStock — запрошенное количество превышает остаток на складе.
	KindInsufficientStock ErrorKind = "insufficient_stock"
	// KindInvalidQuantity — количество в позиции заказа не положительное.
	KindInvalidQuantity ErrorKind = "invalid_quantity"
	// KindEmailTaken — покупатель с таким email уже зарегистрирован.
	KindEmailTaken ErrorKind = "email_taken"
	// KindProductNameTaken — товар с таким именем уже существует.
	KindProductNameTaken ErrorKind = "product_name_taken"
)

// Error — типизированная бизнес-ошибка с HTTP-статусом для внешнего слоя.
// Статус по умолчанию 400, если конструктор не указал иное.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewError создаёт бизнес-ошибку с указанным статусом.
func NewError(kind ErrorKind, message string, status int) *Error {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// NewCustomerNotFound возвращает ошибку отсутствующего покупателя.
func NewCustomerNotFound() *Error {
	return NewError(KindCustomerNotFound, "Customer not found", http.StatusBadRequest)
}

// NewProductNotFound возвращает ошибку отсутствующего товара.
func NewProductNotFound() *Error {
	return NewError(KindProductNotFound, "Products not found", http.StatusBadRequest)
}

// NewInsufficientStock возвращает ошибку нехватки остатка.
// Формат сообщения фиксирован и является частью контракта API.
func NewInsufficientStock(productName string) *Error {
	return NewError(
		KindInsufficientStock,
		fmt.Sprintf("Quantity not available for %s", productName),
		http.StatusBadRequest,
	)
}

// NewInvalidQuantity возвращает ошибку некорректного количества в позиции.
func NewInvalidQuantity(productID string) *Error {
	return NewError(
		KindInvalidQuantity,
		fmt.Sprintf("Invalid quantity for product %s", productID),
		http.StatusBadRequest,
	)
}

// NewEmailTaken возвращает ошибку дубликата email при регистрации покупателя.
func NewEmailTaken(email string) *Error {
	return NewError(KindEmailTaken, fmt.Sprintf("Email %s is already registered", email), http.StatusBadRequest)
}

// NewProductNameTaken возвращает ошибку дубликата имени товара.
func NewProductNameTaken(name string) *Error {
	return NewError(KindProductNameTaken, fmt.Sprintf("Product %s already exists", name), http.StatusBadRequest)
}

// IsKind проверяет, является ли ошибка бизнес-ошибкой указанного вида.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

var (
	// Ошибка отсутствующего имени покупателя.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего email покупателя.
	ErrCustomerEmailRequired = errors.New("customer email is required")
	// Ошибка отсутствующего имени товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка отрицательной цены товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
	// Ошибка отрицательного остатка товара.
	ErrProductQuantityNegative = errors.New("product quantity must be non-negative")
	// Ошибка отсутствующего идентификатора покупателя в заказе.
	ErrOrderCustomerRequired = errors.New("customer_id is required")
	// Ошибка при некорректном количестве товара в позиции (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")

	// ErrCustomerRecordNotFound возвращается репозиторием, когда покупатель не найден.
	ErrCustomerRecordNotFound = errors.New("customer record not found")
	// ErrProductRecordNotFound возвращается репозиторием, когда товар не найден.
	ErrProductRecordNotFound = errors.New("product record not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateRecord возвращается при попытке создать запись с занятым ID.
	ErrDuplicateRecord = errors.New("record already exists")
)
