package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderRepository описывает доступ к агрегату заказа (заказ + позиции).
type OrderRepository interface {
	// ListSummaries возвращает все заказы с итогами, посчитанными на чтении.
	ListSummaries() ([]OrderSummary, error)
	// GetDetail возвращает полную витрину заказа или ErrOrderNotFound.
	GetDetail(orderID uuid.UUID) (OrderDetail, error)
	// Create атомарно сохраняет заказ вместе с позициями.
	// false без ошибки означает, что хранилище не записало ни одной строки.
	Create(order Order) (bool, error)
}

// ProductRepository описывает доступ к каталогу продуктов.
type ProductRepository interface {
	// GetByID возвращает продукт или ErrProductNotFound.
	GetByID(productID uuid.UUID) (Product, error)
}

// StatusRepository описывает операции вокруг каталога статусов заказа.
type StatusRepository interface {
	// ListDetailsByStatus возвращает витрины всех заказов с данным статусом,
	// новые раньше старых. Пустой срез — валидный результат, не ошибка.
	ListDetailsByStatus(statusID uuid.UUID) ([]OrderDetail, error)
	// UpdateStatus выставляет заказу новый статус. ErrOrderNotFound, если
	// заказа нет; false без ошибки — запись не зафиксирована.
	UpdateStatus(orderID, statusID uuid.UUID) (bool, error)
	// StatusIDByName разрешает имя статуса (точное, с учётом регистра)
	// в идентификатор или возвращает ErrStatusNotFound.
	StatusIDByName(name string) (uuid.UUID, error)
}

// EventPublisher публикует события жизненного цикла заказа во внешнюю шину.
// Публикация не должна влиять на исход операции: ошибки логируются вызывающей
// стороной и не возвращаются клиенту.
type EventPublisher interface {
	OrderCreated(orderID, resellerID, customerID uuid.UUID, at time.Time) error
	OrderStatusChanged(orderID, statusID uuid.UUID, at time.Time) error
}
