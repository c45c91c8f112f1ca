package httpapi_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/products"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	httpapi "github.com/vladislavdragonenkov/storefront/internal/transport/http"
)

func loggerForTests() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger.WithField("component", "test")
}

func newTestServer() *httptest.Server {
	logger := loggerForTests()
	customerRepo := memory.NewCustomerRepository()
	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()

	customersSvc := customers.NewService(customerRepo, logger)
	productsSvc := products.NewService(productRepo, logger)
	checkoutSvc := checkout.NewServiceWithoutMetrics(customerRepo, productRepo, orderRepo, nil, logger)

	handler := httpapi.NewHandler(customersSvc, productsSvc, checkoutSvc, orderRepo, logger)
	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return httptest.NewServer(router)
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func createCustomer(t *testing.T, baseURL, name, email string) string {
	t.Helper()

	resp, body := postJSON(t, baseURL+"/api/v1/customers", map[string]any{
		"name":  name,
		"email": email,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func createProduct(t *testing.T, baseURL, name string, price int64, quantity int32) string {
	t.Helper()

	resp, body := postJSON(t, baseURL+"/api/v1/products", map[string]any{
		"name":        name,
		"price_minor": price,
		"quantity":    quantity,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestCreateCustomer(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/v1/customers", map[string]any{
		"name":  "Alice",
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, body["id"])
	require.Equal(t, "alice@example.com", body["email"])
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	createCustomer(t, srv.URL, "Alice", "alice@example.com")

	resp, body := postJSON(t, srv.URL+"/api/v1/customers", map[string]any{
		"name":  "Alice Again",
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body["error"], "already registered")
}

func TestCreateCustomer_ValidationError(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, body := postJSON(t, srv.URL+"/api/v1/customers", map[string]any{
		"name": "No Email",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body["error"], "email")
}

func TestCreateProduct_DuplicateName(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	createProduct(t, srv.URL, "Widget", 10, 5)

	resp, body := postJSON(t, srv.URL+"/api/v1/products", map[string]any{
		"name":        "Widget",
		"price_minor": 20,
		"quantity":    1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body["error"], "already exists")
}

func TestCreateOrder_Success(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	customerID := createCustomer(t, srv.URL, "Alice", "alice@example.com")
	productID := createProduct(t, srv.URL, "Widget", 10, 5)

	resp, body := postJSON(t, srv.URL+"/api/v1/orders", map[string]any{
		"customer_id": customerID,
		"products": []map[string]any{
			{"id": productID, "quantity": 3},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, customerID, body["customer_id"])
	require.EqualValues(t, 30, body["amount_minor"])

	items := body["order_products"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	require.Equal(t, productID, item["product_id"])
	require.EqualValues(t, 3, item["quantity"])
	require.EqualValues(t, 10, item["price_minor"])

	// Заказ доступен по id, остаток списан.
	orderID := body["id"].(string)
	getResp, err := http.Get(srv.URL + "/api/v1/orders/" + orderID)
	require.NoError(t, err)
	defer getResp.Body.Close()
	require.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	customerID := createCustomer(t, srv.URL, "Alice", "alice@example.com")
	productID := createProduct(t, srv.URL, "Widget", 10, 5)

	resp, body := postJSON(t, srv.URL+"/api/v1/orders", map[string]any{
		"customer_id": customerID,
		"products": []map[string]any{
			{"id": productID, "quantity": 6},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Quantity not available for Widget", body["error"])
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	productID := createProduct(t, srv.URL, "Widget", 10, 5)

	resp, body := postJSON(t, srv.URL+"/api/v1/orders", map[string]any{
		"customer_id": "00000000-0000-0000-0000-000000000000",
		"products": []map[string]any{
			{"id": productID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Customer not found", body["error"])
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	customerID := createCustomer(t, srv.URL, "Alice", "alice@example.com")

	resp, body := postJSON(t, srv.URL+"/api/v1/orders", map[string]any{
		"customer_id": customerID,
		"products": []map[string]any{
			{"id": "00000000-0000-0000-0000-000000000000", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Products not found", body["error"])
}

func TestGetCustomer(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	customerID := createCustomer(t, srv.URL, "Alice", "alice@example.com")

	resp, err := http.Get(srv.URL + "/api/v1/customers/" + customerID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, customerID, body["id"])
}

func TestGetCustomer_NotFound(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/customers/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrder_NotFound(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/orders/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCustomerOrders(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	customerID := createCustomer(t, srv.URL, "Alice", "alice@example.com")
	productID := createProduct(t, srv.URL, "Widget", 10, 10)

	for i := 0; i < 2; i++ {
		resp, _ := postJSON(t, srv.URL+"/api/v1/orders", map[string]any{
			"customer_id": customerID,
			"products": []map[string]any{
				{"id": productID, "quantity": 1},
			},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode, fmt.Sprintf("order %d", i))
	}

	resp, err := http.Get(srv.URL + "/api/v1/customers/" + customerID + "/orders")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 2)
}
