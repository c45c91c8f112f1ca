package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/products"
)

// Handler публикует REST API магазина поверх прикладных сервисов.
type Handler struct {
	customers *customers.Service
	products  *products.Service
	checkout  *checkout.Service
	orders    domain.OrderRepository

	validate *validator.Validate
	logger   *log.Entry
}

// NewHandler конструирует HTTP-обработчик с зависимостями.
func NewHandler(
	customersSvc *customers.Service,
	productsSvc *products.Service,
	checkoutSvc *checkout.Service,
	orders domain.OrderRepository,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}
	return &Handler{
		customers: customersSvc,
		products:  productsSvc,
		checkout:  checkoutSvc,
		orders:    orders,
		validate:  validator.New(),
		logger:    logger,
	}
}

// RegisterRoutes вешает маршруты API на chi-роутер.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/customers", h.createCustomer)
		r.Get("/customers/{id}", h.getCustomer)
		r.Get("/customers/{id}/orders", h.listCustomerOrders)
		r.Post("/products", h.createProduct)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{id}", h.getOrder)
	})
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	customer, err := h.customers.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toCustomerResponse(customer))
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		// При чтении отсутствие ресурса — это 404, в отличие от оформления
		// заказа, где неизвестный покупатель отклоняется как 400.
		if domain.IsKind(err, domain.KindCustomerNotFound) {
			h.respond(w, http.StatusNotFound, errorResponse{Error: "Customer not found"})
			return
		}
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !h.decode(w, r, &req) {
		return
	}

	product, err := h.products.Register(r.Context(), req.Name, req.PriceMinor, req.Quantity)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	lines := make([]domain.OrderLine, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, domain.OrderLine{ProductID: p.ID, Qty: p.Quantity})
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req.CustomerID, lines)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			h.respond(w, http.StatusNotFound, errorResponse{Error: "Order not found"})
			return
		}
		h.writeError(w, err)
		return
	}
	h.respond(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handler) listCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByCustomer(r.Context(), chi.URLParam(r, "id"), defaultListOrdersLimit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	h.respond(w, http.StatusOK, result)
}

const defaultListOrdersLimit = 100

// decode разбирает и валидирует JSON-тело запроса. Возвращает false,
// если ответ уже записан.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respond(w, http.StatusBadRequest, errorResponse{Error: formatValidationError(err)})
		return false
	}
	return true
}

// writeError переводит бизнес-ошибку в её HTTP-статус; всё остальное — 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *domain.Error
	if errors.As(err, &appErr) {
		h.respond(w, appErr.Status, errorResponse{Error: appErr.Message})
		return
	}

	h.logger.WithError(err).Error("request failed")
	h.respond(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Warn("failed to encode response")
	}
}
