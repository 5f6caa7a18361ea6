package memory

import (
	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// statusRepositoryInMemory — in-memory реализация StatusRepository.
type statusRepositoryInMemory struct {
	store *Store
}

// NewStatusRepository возвращает in-memory репозиторий статусов.
func NewStatusRepository(store *Store) domain.StatusRepository {
	return &statusRepositoryInMemory{store: store}
}

// ListDetailsByStatus возвращает витрины заказов с данным статусом, новые раньше.
func (r *statusRepositoryInMemory) ListDetailsByStatus(statusID uuid.UUID) ([]domain.OrderDetail, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.Order, 0)
	for _, order := range s.orders {
		if order.StatusID == statusID {
			matched = append(matched, order)
		}
	}
	sortByCreatedDesc(matched)

	details := make([]domain.OrderDetail, 0, len(matched))
	for _, order := range matched {
		details = append(details, s.detailLocked(order))
	}
	return details, nil
}

// UpdateStatus выставляет заказу новый статус.
func (r *statusRepositoryInMemory) UpdateStatus(orderID, statusID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return false, domain.ErrOrderNotFound
	}
	order.StatusID = statusID
	s.orders[orderID] = order
	return true, nil
}

// StatusIDByName разрешает точное имя статуса в идентификатор.
func (r *statusRepositoryInMemory) StatusIDByName(name string) (uuid.UUID, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.statuses {
		if st.Name == name {
			return st.ID, nil
		}
	}
	return uuid.Nil, domain.ErrStatusNotFound
}

var _ domain.StatusRepository = (*statusRepositoryInMemory)(nil)
