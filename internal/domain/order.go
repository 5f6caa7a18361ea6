package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order — запись о покупке реселлера. После создания изменяемым остаётся
// только StatusID, всё остальное фиксируется в момент создания.
type Order struct {
	ID         uuid.UUID
	ResellerID uuid.UUID
	CustomerID uuid.UUID
	StatusID   uuid.UUID
	CreatedAt  time.Time
	Items      []OrderItem
}

// OrderItem — одна позиция заказа. ServiceID денормализован из продукта
// в момент создания заказа.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	ServiceID uuid.UUID
	Quantity  int32
}

// Product — позиция каталога: закупочная цена, цена продажи и сервис,
// к которому продукт относится. Для менеджера заказов это неизменяемые
// справочные данные.
type Product struct {
	ID        uuid.UUID
	Name      string
	UnitCost  float64
	UnitPrice float64
	ServiceID uuid.UUID
}

// Service — запись каталога сервисов (например, "Email").
type Service struct {
	ID   uuid.UUID
	Name string
}

// OrderStatus — запись каталога статусов (например, "Created").
type OrderStatus struct {
	ID   uuid.UUID
	Name string
}

// Имена статусов, обязанные присутствовать в каталоге: "Created" нужен
// для создания заказов, "Completed" — для расчёта прибыли.
const (
	StatusNameCreated    = "Created"
	StatusNameInProgress = "In Progress"
	StatusNameCompleted  = "Completed"
)

// NewOrder — входные данные операции создания заказа.
type NewOrder struct {
	ResellerID uuid.UUID
	CustomerID uuid.UUID
	Items      []NewOrderItem
}

// NewOrderItem — позиция нового заказа.
type NewOrderItem struct {
	ProductID uuid.UUID
	Quantity  int32
}

// Validate проверяет базовые инварианты нового заказа и возвращает список замечаний.
func (n *NewOrder) Validate() []error {
	var errs []error

	if n.ResellerID == uuid.Nil {
		errs = append(errs, ErrResellerRequired)
	}
	if n.CustomerID == uuid.Nil {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(n.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	for _, item := range n.Items {
		if item.ProductID == uuid.Nil {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
	}

	return errs
}

// OrderSummary — витрина списка заказов: без позиций, но с итогами,
// посчитанными по актуальным справочным ценам.
type OrderSummary struct {
	ID         uuid.UUID `json:"id"`
	ResellerID uuid.UUID `json:"resellerId"`
	CustomerID uuid.UUID `json:"customerId"`
	StatusName string    `json:"statusName"`
	CreatedAt  time.Time `json:"createdDate"`
	TotalCost  float64   `json:"totalCost"`
	TotalPrice float64   `json:"totalPrice"`
}

// OrderDetail — полная витрина заказа: итоги плюс раскрытые позиции.
type OrderDetail struct {
	ID         uuid.UUID         `json:"id"`
	ResellerID uuid.UUID         `json:"resellerId"`
	CustomerID uuid.UUID         `json:"customerId"`
	StatusID   uuid.UUID         `json:"statusId"`
	StatusName string            `json:"statusName"`
	CreatedAt  time.Time         `json:"createdDate"`
	TotalCost  float64           `json:"totalCost"`
	TotalPrice float64           `json:"totalPrice"`
	Items      []OrderDetailItem `json:"items"`
}

// OrderDetailItem — позиция в детальной витрине, обогащённая именами
// продукта/сервиса и построчными итогами.
type OrderDetailItem struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"orderId"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	UnitCost    float64   `json:"unitCost"`
	UnitPrice   float64   `json:"unitPrice"`
	Quantity    int32     `json:"quantity"`
	TotalCost   float64   `json:"totalCost"`
	TotalPrice  float64   `json:"totalPrice"`
}

// MonthlyProfit — агрегат прибыли за календарный месяц по завершённым заказам.
type MonthlyProfit struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	MonthName string  `json:"monthName"`
	Profit    float64 `json:"profit"`
}
