package memory

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// Store — разделяемое in-memory состояние для локальной разработки и тестов.
// Витрины заказов собираются из нескольких таблиц, поэтому репозитории
// работают поверх одного Store, а не поверх собственных map.
type Store struct {
	mu       sync.RWMutex
	orders   map[uuid.UUID]domain.Order
	products map[uuid.UUID]domain.Product
	services map[uuid.UUID]domain.Service
	statuses map[uuid.UUID]domain.OrderStatus
}

// NewStore возвращает пустое in-memory хранилище.
func NewStore() *Store {
	return &Store{
		orders:   make(map[uuid.UUID]domain.Order),
		products: make(map[uuid.UUID]domain.Product),
		services: make(map[uuid.UUID]domain.Service),
		statuses: make(map[uuid.UUID]domain.OrderStatus),
	}
}

// SeedStatuses добавляет записи в каталог статусов.
func (s *Store) SeedStatuses(statuses ...domain.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range statuses {
		s.statuses[st.ID] = st
	}
}

// SeedServices добавляет записи в каталог сервисов.
func (s *Store) SeedServices(services ...domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range services {
		s.services[svc.ID] = svc
	}
}

// SeedProducts добавляет записи в каталог продуктов.
func (s *Store) SeedProducts(products ...domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p
	}
}

// SeedDefaultCatalog наполняет хранилище каталогом статусов и небольшим
// демо-набором сервисов и продуктов. Используется в memory-режиме приложения.
func (s *Store) SeedDefaultCatalog() {
	s.SeedStatuses(
		domain.OrderStatus{ID: uuid.MustParse("1d9e1b4a-37ea-4602-a59e-50cd4b4ed3ac"), Name: domain.StatusNameCreated},
		domain.OrderStatus{ID: uuid.MustParse("38041dbd-09b8-4527-916e-223b7b5a2ed2"), Name: domain.StatusNameInProgress},
		domain.OrderStatus{ID: uuid.MustParse("c5d4c2d0-4a6f-4f3f-bb31-caa941aedf62"), Name: domain.StatusNameCompleted},
	)

	emailSvc := domain.Service{ID: uuid.MustParse("6b71e2e0-549d-4be1-8bc9-912bcb1c1a3a"), Name: "Email"}
	hostingSvc := domain.Service{ID: uuid.MustParse("e17a50bd-0b5b-4471-b763-0e9bd77dfa35"), Name: "Hosting"}
	s.SeedServices(emailSvc, hostingSvc)

	s.SeedProducts(
		domain.Product{
			ID:        uuid.MustParse("a7b3f8cb-5ccc-4a77-81e0-e64bb5f5e38b"),
			Name:      "100GB Mailbox",
			UnitCost:  0.8,
			UnitPrice: 0.9,
			ServiceID: emailSvc.ID,
		},
		domain.Product{
			ID:        uuid.MustParse("3022e02e-23ec-47ae-9c9e-62b082e1e978"),
			Name:      "Shared Hosting",
			UnitCost:  2.5,
			UnitPrice: 3.1,
			ServiceID: hostingSvc.ID,
		},
	)
}

// summaryLocked собирает витрину-сводку; вызывается под блокировкой чтения.
func (s *Store) summaryLocked(order domain.Order) domain.OrderSummary {
	summary := domain.OrderSummary{
		ID:         order.ID,
		ResellerID: order.ResellerID,
		CustomerID: order.CustomerID,
		CreatedAt:  order.CreatedAt,
	}
	if st, ok := s.statuses[order.StatusID]; ok {
		summary.StatusName = st.Name
	}
	for _, item := range order.Items {
		p := s.products[item.ProductID]
		summary.TotalCost += p.UnitCost * float64(item.Quantity)
		summary.TotalPrice += p.UnitPrice * float64(item.Quantity)
	}
	return summary
}

// detailLocked собирает полную витрину; вызывается под блокировкой чтения.
func (s *Store) detailLocked(order domain.Order) domain.OrderDetail {
	summary := s.summaryLocked(order)
	detail := domain.OrderDetail{
		ID:         summary.ID,
		ResellerID: summary.ResellerID,
		CustomerID: summary.CustomerID,
		StatusID:   order.StatusID,
		StatusName: summary.StatusName,
		CreatedAt:  summary.CreatedAt,
		TotalCost:  summary.TotalCost,
		TotalPrice: summary.TotalPrice,
		Items:      make([]domain.OrderDetailItem, 0, len(order.Items)),
	}

	for _, item := range order.Items {
		p := s.products[item.ProductID]
		row := domain.OrderDetailItem{
			ID:          item.ID,
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: p.Name,
			ServiceID:   item.ServiceID,
			UnitCost:    p.UnitCost,
			UnitPrice:   p.UnitPrice,
			Quantity:    item.Quantity,
			TotalCost:   p.UnitCost * float64(item.Quantity),
			TotalPrice:  p.UnitPrice * float64(item.Quantity),
		}
		if svc, ok := s.services[item.ServiceID]; ok {
			row.ServiceName = svc.Name
		}
		detail.Items = append(detail.Items, row)
	}

	return detail
}

// sortByCreatedAsc упорядочивает заказы по времени создания, старые раньше.
func sortByCreatedAsc(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		}
		return orders[i].ID.String() < orders[j].ID.String()
	})
}

// sortByCreatedDesc упорядочивает заказы по времени создания, новые раньше.
func sortByCreatedDesc(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID.String() > orders[j].ID.String()
	})
}
