package memory

import (
	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
)

// productRepositoryInMemory — in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	store *Store
}

// NewProductRepository возвращает in-memory репозиторий продуктов.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepositoryInMemory{store: store}
}

// GetByID возвращает продукт или ErrProductNotFound.
func (r *productRepositoryInMemory) GetByID(productID uuid.UUID) (domain.Product, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
