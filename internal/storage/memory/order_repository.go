package memory

import (
	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	store *Store
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepositoryInMemory{store: store}
}

// ListSummaries возвращает сводки всех заказов, старые раньше новых.
func (r *orderRepositoryInMemory) ListSummaries() ([]domain.OrderSummary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	sortByCreatedAsc(orders)

	summaries := make([]domain.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, s.summaryLocked(order))
	}
	return summaries, nil
}

// GetDetail возвращает витрину заказа или ErrOrderNotFound.
func (r *orderRepositoryInMemory) GetDetail(orderID uuid.UUID) (domain.OrderDetail, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domain.OrderDetail{}, domain.ErrOrderNotFound
	}
	return s.detailLocked(order), nil
}

// Create сохраняет заказ вместе с позициями одной операцией.
func (r *orderRepositoryInMemory) Create(order domain.Order) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return false, nil
	}
	// Сохраняем копию позиций, чтобы избежать мутаций извне.
	stored := order
	stored.Items = make([]domain.OrderItem, len(order.Items))
	copy(stored.Items, order.Items)
	s.orders[order.ID] = stored
	return true, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
