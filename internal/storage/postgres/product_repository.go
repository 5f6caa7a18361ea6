package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/uid"
)

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

// GetByID возвращает продукт каталога или ErrProductNotFound.
func (r *productRepository) GetByID(productID uuid.UUID) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		product       domain.Product
		idRaw, svcRaw []byte
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, unit_cost::float8, unit_price::float8, service_id
		FROM products
		WHERE id = $1
	`, uid.Encode(productID)).Scan(
		&idRaw, &product.Name, &product.UnitCost, &product.UnitPrice, &svcRaw,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	if product.ID, err = uid.Decode(idRaw); err != nil {
		return domain.Product{}, fmt.Errorf("product id: %w", err)
	}
	if product.ServiceID, err = uid.Decode(svcRaw); err != nil {
		return domain.Product{}, fmt.Errorf("product service id: %w", err)
	}

	return product, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
