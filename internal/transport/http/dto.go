package http

// CreateOrderRequest — входной контракт POST /orders.
type CreateOrderRequest struct {
	ResellerID string                   `json:"resellerId"`
	CustomerID string                   `json:"customerId"`
	Items      []CreateOrderItemRequest `json:"items"`
}

// CreateOrderItemRequest — позиция нового заказа.
type CreateOrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int32  `json:"quantity"`
}

// CreateOrderResponse — ответ на успешное создание заказа.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// UpdateOrderStatusRequest — входной контракт PUT /orders/status.
type UpdateOrderStatusRequest struct {
	OrderID  string `json:"orderId"`
	StatusID string `json:"statusId"`
}

// UpdateOrderStatusResponse сообщает, была ли запись зафиксирована хранилищем.
type UpdateOrderStatusResponse struct {
	Persisted bool `json:"persisted"`
}

type errorResponse struct {
	Error string `json:"error"`
}
