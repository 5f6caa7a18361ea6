package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventType определяет тип события заказа
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// TopicOrderEvents — топик для событий жизненного цикла заказа
const TopicOrderEvents = "orders.events"

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventType  EventType `json:"event_type"`
	OrderID    string    `json:"order_id"`
	ResellerID string    `json:"reseller_id,omitempty"`
	CustomerID string    `json:"customer_id,omitempty"`
	StatusID   string    `json:"status_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewOrderCreatedEvent создаёт событие о создании заказа
func NewOrderCreatedEvent(orderID, resellerID, customerID uuid.UUID, at time.Time) OrderEvent {
	return OrderEvent{
		EventType:  EventTypeOrderCreated,
		OrderID:    orderID.String(),
		ResellerID: resellerID.String(),
		CustomerID: customerID.String(),
		Timestamp:  at,
	}
}

// NewOrderStatusChangedEvent создаёт событие о смене статуса заказа
func NewOrderStatusChangedEvent(orderID, statusID uuid.UUID, at time.Time) OrderEvent {
	return OrderEvent{
		EventType: EventTypeOrderStatusChanged,
		OrderID:   orderID.String(),
		StatusID:  statusID.String(),
		Timestamp: at,
	}
}
