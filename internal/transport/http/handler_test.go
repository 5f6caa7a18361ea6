package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/service/order"
	"github.com/vladislavdragonenkov/reseller-orders/internal/storage/memory"
)

var (
	statusCreatedID    = uuid.MustParse("1d9e1b4a-37ea-4602-a59e-50cd4b4ed3ac")
	statusInProgressID = uuid.MustParse("38041dbd-09b8-4527-916e-223b7b5a2ed2")
	mailboxProductID   = uuid.MustParse("a7b3f8cb-5ccc-4a77-81e0-e64bb5f5e38b")
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()

	store := memory.NewStore()
	store.SeedDefaultCatalog()

	manager := order.NewManager(
		memory.NewOrderRepository(store),
		memory.NewProductRepository(store),
		memory.NewStatusRepository(store),
		nil, nil, nil,
	)

	router := chi.NewRouter()
	NewHandler(manager, nil).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createMailboxOrder(t *testing.T, router chi.Router, quantity int32) uuid.UUID {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/orders", CreateOrderRequest{
		ResellerID: uuid.New().String(),
		CustomerID: uuid.New().String(),
		Items: []CreateOrderItemRequest{
			{ProductID: mailboxProductID.String(), Quantity: quantity},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp CreateOrderResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return uuid.MustParse(resp.OrderID)
}

func TestCreateOrderThenGet(t *testing.T) {
	router := newTestRouter(t)

	orderID := createMailboxOrder(t, router, 2)

	rec := doJSON(t, router, http.MethodGet, "/orders/"+orderID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail domain.OrderDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&detail))
	require.Equal(t, orderID, detail.ID)
	require.Equal(t, domain.StatusNameCreated, detail.StatusName)
	require.Len(t, detail.Items, 1)
	require.Equal(t, "100GB Mailbox", detail.Items[0].ProductName)
	require.InDelta(t, 1.6, detail.TotalCost, 1e-9)
	require.InDelta(t, 1.8, detail.TotalPrice, 1e-9)
}

func TestCreateOrderMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderWithoutItems(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/orders", CreateOrderRequest{
		ResellerID: uuid.New().String(),
		CustomerID: uuid.New().String(),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Contains(t, resp.Error, domain.ErrItemsRequired.Error())
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/orders", CreateOrderRequest{
		ResellerID: uuid.New().String(),
		CustomerID: uuid.New().String(),
		Items: []CreateOrderItemRequest{
			{ProductID: uuid.New().String(), Quantity: 1},
		},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetOrderMalformedID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/orders/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/orders/"+uuid.New().String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []domain.OrderSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summaries))
	require.Empty(t, summaries)

	createMailboxOrder(t, router, 1)
	createMailboxOrder(t, router, 3)

	rec = doJSON(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summaries))
	require.Len(t, summaries, 2)
}

func TestListOrdersByStatus(t *testing.T) {
	router := newTestRouter(t)
	createMailboxOrder(t, router, 1)

	rec := doJSON(t, router, http.MethodGet, "/orders/status/"+statusCreatedID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var details []domain.OrderDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&details))
	require.Len(t, details, 1)
}

func TestListOrdersByStatusEmpty(t *testing.T) {
	router := newTestRouter(t)
	createMailboxOrder(t, router, 1)

	// In Progress существует в каталоге, но заказов в нём нет.
	rec := doJSON(t, router, http.MethodGet, "/orders/status/"+statusInProgressID.String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	router := newTestRouter(t)
	orderID := createMailboxOrder(t, router, 1)

	rec := doJSON(t, router, http.MethodPut, "/orders/status", UpdateOrderStatusRequest{
		OrderID:  orderID.String(),
		StatusID: statusCreatedID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UpdateOrderStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Persisted)
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	router := newTestRouter(t)
	createMailboxOrder(t, router, 1)

	rec := doJSON(t, router, http.MethodPut, "/orders/status", UpdateOrderStatusRequest{
		OrderID:  uuid.New().String(),
		StatusID: statusCreatedID.String(),
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatusMalformedIDs(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/orders/status", UpdateOrderStatusRequest{
		OrderID:  "nope",
		StatusID: statusCreatedID.String(),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfitByMonthBounds(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/orders/profit/month/13", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/orders/profit/month/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/orders/profit/month/8", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProfitByYearZeroFilled(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/orders/profit/year/2026", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report []domain.MonthlyProfit
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.Len(t, report, 12)
	for _, record := range report {
		require.InDelta(t, 0, record.Profit, 1e-9)
	}

	rec = doJSON(t, router, http.MethodGet, "/orders/profit/year/10000", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
