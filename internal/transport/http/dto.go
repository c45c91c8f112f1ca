package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// createCustomerRequest — тело POST /api/v1/customers.
type createCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// createProductRequest — тело POST /api/v1/products.
type createProductRequest struct {
	Name       string `json:"name" validate:"required"`
	PriceMinor int64  `json:"price_minor" validate:"gte=0"`
	Quantity   int32  `json:"quantity" validate:"gte=0"`
}

// orderLineRequest — одна запрошенная позиция заказа.
// Положительность количества проверяет сервис оформления, не транспорт.
type orderLineRequest struct {
	ID       string `json:"id" validate:"required"`
	Quantity int32  `json:"quantity"`
}

// createOrderRequest — тело POST /api/v1/orders. Пустой список позиций
// допустим: заказ без позиций структурно разрешён.
type createOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	Products   []orderLineRequest `json:"products" validate:"dive"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type orderItemResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Qty        int32  `json:"quantity"`
	PriceMinor int64  `json:"price_minor"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	AmountMinor int64               `json:"amount_minor"`
	Items       []orderItemResponse `json:"order_products"`
	CreatedAt   time.Time           `json:"created_at"`
}

type productResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toCustomerResponse(c domain.Customer) customerResponse {
	return customerResponse{ID: c.ID, Name: c.Name, Email: c.Email, CreatedAt: c.CreatedAt}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, PriceMinor: p.PriceMinor, Quantity: p.Quantity}
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Qty:        item.Qty,
			PriceMinor: item.PriceMinor,
		})
	}
	return orderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		AmountMinor: o.AmountMinor,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}

// formatValidationError собирает человекочитаемое описание ошибок валидации запроса.
func formatValidationError(err error) string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", field))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be greater than or equal to %s", field, fieldErr.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(parts, "; ")
}
