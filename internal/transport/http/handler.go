package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/service/order"
)

// Handler публикует операции менеджера заказов по HTTP.
type Handler struct {
	manager *order.Manager
	logger  *log.Entry
}

// NewHandler создаёт HTTP-обработчик поверх менеджера заказов.
func NewHandler(manager *order.Manager, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Handler{
		manager: manager,
		logger:  logger.WithField("component", "http_handler"),
	}
}

// RegisterRoutes привязывает маршруты заказов к роутеру.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)                           // GET  /orders
		r.Post("/", h.createOrder)                         // POST /orders
		r.Put("/status", h.updateOrderStatus)              // PUT  /orders/status
		r.Get("/status/{statusId}", h.listOrdersByStatus)  // GET  /orders/status/{statusId}
		r.Get("/profit/month/{month}", h.profitByMonth)    // GET  /orders/profit/month/{month}
		r.Get("/profit/year/{year}", h.profitByYear)       // GET  /orders/profit/year/{year}
		r.Get("/{orderId}", h.getOrder)                    // GET  /orders/{orderId}
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.manager.ListOrders(r.Context())
	if err != nil {
		h.respondError(w, "list orders", err)
		return
	}
	respond(w, http.StatusOK, summaries)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed order id"})
		return
	}

	detail, err := h.manager.GetOrder(r.Context(), orderID)
	if err != nil {
		h.respondError(w, "get order", err)
		return
	}
	respond(w, http.StatusOK, detail)
}

func (h *Handler) listOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	statusID, err := uuid.Parse(chi.URLParam(r, "statusId"))
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed status id"})
		return
	}

	details, err := h.manager.ListOrdersByStatus(r.Context(), statusID)
	if err != nil {
		h.respondError(w, "list orders by status", err)
		return
	}
	respond(w, http.StatusOK, details)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed order id"})
		return
	}
	statusID, err := uuid.Parse(req.StatusID)
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed status id"})
		return
	}

	persisted, err := h.manager.UpdateOrderStatus(r.Context(), orderID, statusID)
	if err != nil {
		h.respondError(w, "update order status", err)
		return
	}
	respond(w, http.StatusOK, UpdateOrderStatusResponse{Persisted: persisted})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	newOrder, err := newOrderFromRequest(req)
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if errs := newOrder.Validate(); len(errs) > 0 {
		respond(w, http.StatusBadRequest, errorResponse{Error: joinErrors(errs)})
		return
	}

	orderID, err := h.manager.CreateOrder(r.Context(), newOrder)
	if err != nil {
		h.respondError(w, "create order", err)
		return
	}
	respond(w, http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

func (h *Handler) profitByMonth(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed month"})
		return
	}

	report, err := h.manager.ProfitByMonth(r.Context(), month)
	if err != nil {
		h.respondError(w, "profit by month", err)
		return
	}
	respond(w, http.StatusOK, report)
}

func (h *Handler) profitByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respond(w, http.StatusBadRequest, errorResponse{Error: "malformed year"})
		return
	}

	report, err := h.manager.ProfitForAllMonthsOfYear(r.Context(), year)
	if err != nil {
		h.respondError(w, "profit by year", err)
		return
	}
	respond(w, http.StatusOK, report)
}

// respondError переводит доменные ошибки в HTTP-коды: NotFound — 404,
// OutOfRange — 400, всё остальное — 500.
func (h *Handler) respondError(w http.ResponseWriter, operation string, err error) {
	switch {
	case domain.IsNotFound(err):
		respond(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsOutOfRange(err):
		respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.WithError(err).WithField("operation", operation).Error("request failed")
		respond(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func newOrderFromRequest(req CreateOrderRequest) (domain.NewOrder, error) {
	resellerID, err := uuid.Parse(req.ResellerID)
	if err != nil {
		return domain.NewOrder{}, domain.ErrResellerRequired
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return domain.NewOrder{}, domain.ErrCustomerRequired
	}

	items := make([]domain.NewOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return domain.NewOrder{}, domain.ErrItemProductRequired
		}
		items = append(items, domain.NewOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	return domain.NewOrder{
		ResellerID: resellerID,
		CustomerID: customerID,
		Items:      items,
	}, nil
}

func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
