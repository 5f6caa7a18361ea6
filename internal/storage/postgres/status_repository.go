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

type statusRepository struct {
	db *sql.DB
}

// NewStatusRepository создаёт PostgreSQL-реализацию StatusRepository.
func NewStatusRepository(store *Store) domain.StatusRepository {
	return &statusRepository{db: store.DB()}
}

// ListDetailsByStatus возвращает полные витрины заказов в заданном статусе,
// новые сверху. Пустой список — валидный результат, интерпретация за сервисом.
func (r *statusRepository) ListDetailsByStatus(statusID uuid.UUID) ([]domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id
		FROM orders o
		WHERE o.status_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`, uid.Encode(statusID))
	if err != nil {
		return nil, fmt.Errorf("list orders by status: %w", err)
	}
	defer rows.Close()

	orderIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var idRaw []byte
		if err := rows.Scan(&idRaw); err != nil {
			return nil, fmt.Errorf("scan order id: %w", err)
		}
		orderID, err := uid.Decode(idRaw)
		if err != nil {
			return nil, fmt.Errorf("order id: %w", err)
		}
		orderIDs = append(orderIDs, orderID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order ids: %w", err)
	}

	details := make([]domain.OrderDetail, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		detail, err := loadDetailHeader(ctx, r.db, orderID)
		if err != nil {
			return nil, err
		}
		if err := hydrateDetailItems(ctx, r.db, &detail); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}

// UpdateStatus переводит заказ в указанный статус. ErrOrderNotFound,
// если заказ не существует.
func (r *statusRepository) UpdateStatus(orderID, statusID uuid.UUID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status_id = $1
		WHERE id = $2
	`, uid.Encode(statusID), uid.Encode(orderID))
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return false, domain.ErrOrderNotFound
	}

	return true, nil
}

// StatusIDByName возвращает идентификатор статуса по точному имени.
func (r *statusRepository) StatusIDByName(name string) (uuid.UUID, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var idRaw []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id
		FROM order_statuses
		WHERE name = $1
	`, name).Scan(&idRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, domain.ErrStatusNotFound
		}
		return uuid.Nil, fmt.Errorf("select status: %w", err)
	}

	statusID, err := uid.Decode(idRaw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("status id: %w", err)
	}

	return statusID, nil
}

var _ domain.StatusRepository = (*statusRepository)(nil)
