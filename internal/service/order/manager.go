// Package order реализует доменный сервис управления заказами реселлера:
// создание, выборки, смену статуса и отчёты о прибыли.
package order

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/metrics"
)

const (
	opListOrders         = "list_orders"
	opGetOrder           = "get_order"
	opListOrdersByStatus = "list_orders_by_status"
	opUpdateOrderStatus  = "update_order_status"
	opCreateOrder        = "create_order"
	opProfitByMonth      = "profit_by_month"
	opProfitByYear       = "profit_by_year"
)

// Manager — единственное место, где происходит межсущностная валидация
// и арифметика итогов/прибыли. Репозитории вызываются последовательно,
// внутреннего параллелизма нет.
type Manager struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	statuses domain.StatusRepository
	events   domain.EventPublisher
	logger   *log.Entry
	metrics  *metrics.OrderMetrics
}

// NewManager конструирует менеджер заказов с зависимостями.
// events может быть nil: тогда события не публикуются.
func NewManager(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	statuses domain.StatusRepository,
	events domain.EventPublisher,
	logger *log.Entry,
	m *metrics.OrderMetrics,
) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "order-manager")
	}
	if m == nil {
		m = metrics.NewOrderMetrics()
	}
	return &Manager{
		orders:   orders,
		products: products,
		statuses: statuses,
		events:   events,
		logger:   logger,
		metrics:  m,
	}
}

// ListOrders возвращает сводки всех заказов.
func (m *Manager) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	defer m.timeOp(opListOrders)()

	summaries, err := m.orders.ListSummaries()
	if err != nil {
		m.metrics.RecordFailure(opListOrders)
		return nil, err
	}
	return summaries, nil
}

// GetOrder возвращает полную витрину заказа. Отсутствие заказа — это
// ErrOrderNotFound, транспорт отображает его в 404.
func (m *Manager) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.OrderDetail, error) {
	defer m.timeOp(opGetOrder)()

	detail, err := m.orders.GetDetail(orderID)
	if err != nil {
		if !domain.IsNotFound(err) {
			m.metrics.RecordFailure(opGetOrder)
		}
		return domain.OrderDetail{}, err
	}
	return detail, nil
}

// ListOrdersByStatus возвращает витрины заказов с указанным статусом.
// Пустой результат намеренно трактуется как неизвестный статус: путь чтения
// переиспользуется как проверка существования, и "статус без заказов"
// неотличим здесь от "статуса нет". Поведение сохранено для совместимости
// с предыдущей системой.
func (m *Manager) ListOrdersByStatus(ctx context.Context, statusID uuid.UUID) ([]domain.OrderDetail, error) {
	defer m.timeOp(opListOrdersByStatus)()

	details, err := m.statuses.ListDetailsByStatus(statusID)
	if err != nil {
		m.metrics.RecordFailure(opListOrdersByStatus)
		return nil, err
	}
	if len(details) == 0 {
		return nil, domain.ErrStatusNotFound
	}
	return details, nil
}

// UpdateOrderStatus переводит заказ в новый статус. Граф переходов не
// проверяется: любой существующий статус — допустимая цель. Это открытая
// политика исходной системы; сужать её без решения стейкхолдеров нельзя.
func (m *Manager) UpdateOrderStatus(ctx context.Context, orderID, statusID uuid.UUID) (bool, error) {
	defer m.timeOp(opUpdateOrderStatus)()

	if _, err := m.orders.GetDetail(orderID); err != nil {
		if !domain.IsNotFound(err) {
			m.metrics.RecordFailure(opUpdateOrderStatus)
		}
		return false, err
	}

	// Существование статуса проверяется той же выборкой, что и чтение:
	// пустой список означает "статус не валиден" (см. ListOrdersByStatus).
	matches, err := m.statuses.ListDetailsByStatus(statusID)
	if err != nil {
		m.metrics.RecordFailure(opUpdateOrderStatus)
		return false, err
	}
	if len(matches) == 0 {
		return false, domain.ErrStatusNotFound
	}

	updated, err := m.statuses.UpdateStatus(orderID, statusID)
	if err != nil {
		if !domain.IsNotFound(err) {
			m.metrics.RecordFailure(opUpdateOrderStatus)
		}
		return false, err
	}
	if updated {
		m.metrics.RecordStatusUpdated()
		m.publishStatusChanged(orderID, statusID)
		m.logger.WithFields(log.Fields{
			"order_id":  orderID,
			"status_id": statusID,
		}).Info("order status updated")
	}
	return updated, nil
}

// CreateOrder валидирует и атомарно сохраняет заказ с позициями,
// возвращая идентификатор нового заказа.
func (m *Manager) CreateOrder(ctx context.Context, newOrder domain.NewOrder) (uuid.UUID, error) {
	defer m.timeOp(opCreateOrder)()

	createdStatusID, err := m.requiredStatusID(domain.StatusNameCreated)
	if err != nil {
		m.metrics.RecordFailure(opCreateOrder)
		return uuid.Nil, err
	}

	orderID := uuid.New()
	order := domain.Order{
		ID:         orderID,
		ResellerID: newOrder.ResellerID,
		CustomerID: newOrder.CustomerID,
		StatusID:   createdStatusID,
		CreatedAt:  time.Now().UTC(),
		Items:      make([]domain.OrderItem, 0, len(newOrder.Items)),
	}

	// Продукты разрешаются последовательно, в порядке ввода; первая
	// неразрешённая ссылка прерывает создание целиком.
	for _, item := range newOrder.Items {
		product, err := m.products.GetByID(item.ProductID)
		if err != nil {
			if !domain.IsNotFound(err) {
				m.metrics.RecordFailure(opCreateOrder)
			}
			return uuid.Nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			ServiceID: product.ServiceID,
			Quantity:  item.Quantity,
		})
	}

	persisted, err := m.orders.Create(order)
	if err != nil {
		m.metrics.RecordFailure(opCreateOrder)
		return uuid.Nil, err
	}
	if !persisted {
		m.metrics.RecordFailure(opCreateOrder)
		return uuid.Nil, domain.ErrOrderNotPersisted
	}

	m.metrics.RecordOrderCreated()
	m.publishCreated(order)
	m.logger.WithFields(log.Fields{
		"order_id": orderID,
		"items":    len(order.Items),
	}).Info("order created")

	return orderID, nil
}

// ProfitByMonth считает прибыль по завершённым заказам за указанный месяц,
// по одной записи на каждый год, в котором такие заказы были.
func (m *Manager) ProfitByMonth(ctx context.Context, month int) ([]domain.MonthlyProfit, error) {
	defer m.timeOp(opProfitByMonth)()

	if month < 1 || month > 12 {
		return nil, domain.ErrMonthOutOfRange
	}

	details, err := m.completedOrders()
	if err != nil {
		m.metrics.RecordFailure(opProfitByMonth)
		return nil, err
	}

	profitByYear := make(map[int]float64)
	for _, d := range details {
		created := d.CreatedAt.UTC()
		if int(created.Month()) != month {
			continue
		}
		profitByYear[created.Year()] += orderProfit(d)
	}

	years := make([]int, 0, len(profitByYear))
	for year := range profitByYear {
		years = append(years, year)
	}
	sort.Ints(years)

	records := make([]domain.MonthlyProfit, 0, len(years))
	for _, year := range years {
		records = append(records, domain.MonthlyProfit{
			Year:      year,
			Month:     month,
			MonthName: time.Month(month).String(),
			Profit:    profitByYear[year],
		})
	}

	m.metrics.RecordProfitReport("month")
	return records, nil
}

// ProfitForAllMonthsOfYear считает помесячную прибыль за год. Записей всегда
// ровно 12: месяцы без завершённых заказов получают нулевую прибыль.
func (m *Manager) ProfitForAllMonthsOfYear(ctx context.Context, year int) ([]domain.MonthlyProfit, error) {
	defer m.timeOp(opProfitByYear)()

	if year < 1 || year > 9999 {
		return nil, domain.ErrYearOutOfRange
	}

	details, err := m.completedOrders()
	if err != nil {
		m.metrics.RecordFailure(opProfitByYear)
		return nil, err
	}

	var profitByMonth [13]float64
	for _, d := range details {
		created := d.CreatedAt.UTC()
		if created.Year() != year {
			continue
		}
		profitByMonth[int(created.Month())] += orderProfit(d)
	}

	records := make([]domain.MonthlyProfit, 0, 12)
	for month := 1; month <= 12; month++ {
		records = append(records, domain.MonthlyProfit{
			Year:      year,
			Month:     month,
			MonthName: time.Month(month).String(),
			Profit:    profitByMonth[month],
		})
	}

	m.metrics.RecordProfitReport("year")
	return records, nil
}

// completedOrders возвращает витрины всех заказов в статусе "Completed".
func (m *Manager) completedOrders() ([]domain.OrderDetail, error) {
	completedID, err := m.requiredStatusID(domain.StatusNameCompleted)
	if err != nil {
		return nil, err
	}
	return m.statuses.ListDetailsByStatus(completedID)
}

// requiredStatusID разрешает имя обязательного статуса каталога.
// Отсутствие такого статуса — дефект конфигурации, а не ошибка вызова.
func (m *Manager) requiredStatusID(name string) (uuid.UUID, error) {
	id, err := m.statuses.StatusIDByName(name)
	if err != nil {
		if errors.Is(err, domain.ErrStatusNotFound) {
			return uuid.Nil, fmt.Errorf("%w: %q", domain.ErrStatusCatalogMissing, name)
		}
		return uuid.Nil, err
	}
	return id, nil
}

// orderProfit — прибыль заказа: сумма (цена − себестоимость) по позициям.
func orderProfit(d domain.OrderDetail) float64 {
	var profit float64
	for _, item := range d.Items {
		profit += item.TotalPrice - item.TotalCost
	}
	return profit
}

func (m *Manager) publishCreated(order domain.Order) {
	if m.events == nil {
		return
	}
	if err := m.events.OrderCreated(order.ID, order.ResellerID, order.CustomerID, order.CreatedAt); err != nil {
		m.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order.created")
	}
}

func (m *Manager) publishStatusChanged(orderID, statusID uuid.UUID) {
	if m.events == nil {
		return
	}
	if err := m.events.OrderStatusChanged(orderID, statusID, time.Now().UTC()); err != nil {
		m.logger.WithError(err).WithField("order_id", orderID).Warn("failed to publish order.status_changed")
	}
}

// timeOp возвращает функцию для записи длительности операции через defer.
func (m *Manager) timeOp(operation string) func() {
	start := time.Now()
	return func() {
		m.metrics.RecordOpDuration(operation, time.Since(start))
	}
}
