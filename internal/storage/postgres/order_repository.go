package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/reseller-orders/internal/domain"
	"github.com/vladislavdragonenkov/reseller-orders/internal/uid"
)

const (
	opTimeout = 5 * time.Second
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// ListSummaries возвращает сводки всех заказов. Итоги считаются на чтении
// по актуальным справочным ценам и нигде не кэшируются.
func (r *orderRepository) ListSummaries() ([]domain.OrderSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.reseller_id, o.customer_id, s.name, o.created_at,
		       COALESCE(SUM(i.quantity * p.unit_cost), 0)::float8,
		       COALESCE(SUM(i.quantity * p.unit_price), 0)::float8
		FROM orders o
		JOIN order_statuses s ON s.id = o.status_id
		LEFT JOIN order_items i ON i.order_id = o.id
		LEFT JOIN products p ON p.id = i.product_id
		GROUP BY o.id, o.reseller_id, o.customer_id, s.name, o.created_at
		ORDER BY o.created_at ASC, o.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list order summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.OrderSummary, 0)
	for rows.Next() {
		var (
			summary                     domain.OrderSummary
			idRaw, resellerRaw, custRaw []byte
		)
		if err := rows.Scan(
			&idRaw, &resellerRaw, &custRaw, &summary.StatusName, &summary.CreatedAt,
			&summary.TotalCost, &summary.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		if summary.ID, err = uid.Decode(idRaw); err != nil {
			return nil, fmt.Errorf("order id: %w", err)
		}
		if summary.ResellerID, err = uid.Decode(resellerRaw); err != nil {
			return nil, fmt.Errorf("reseller id: %w", err)
		}
		if summary.CustomerID, err = uid.Decode(custRaw); err != nil {
			return nil, fmt.Errorf("customer id: %w", err)
		}
		summary.CreatedAt = summary.CreatedAt.UTC()
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order summaries: %w", err)
	}

	return summaries, nil
}

// GetDetail возвращает полную витрину заказа или ErrOrderNotFound.
func (r *orderRepository) GetDetail(orderID uuid.UUID) (domain.OrderDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	detail, err := loadDetailHeader(ctx, r.db, orderID)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	if err := hydrateDetailItems(ctx, r.db, &detail); err != nil {
		return domain.OrderDetail{}, err
	}
	return detail, nil
}

// Create атомарно сохраняет заказ вместе с позициями. false без ошибки —
// хранилище не записало ни одной строки (например, дубликат id).
func (r *orderRepository) Create(order domain.Order) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var res sql.Result
	res, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, reseller_id, customer_id, status_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		uid.Encode(order.ID), uid.Encode(order.ResellerID), uid.Encode(order.CustomerID),
		uid.Encode(order.StatusID), order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert order: %w", err)
	}

	var affected int64
	affected, err = res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = errors.New("order row was not written")
		return false, nil
	}

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, service_id, quantity)
			VALUES ($1, $2, $3, $4, $5)
		`,
			uid.Encode(item.ID), uid.Encode(order.ID), uid.Encode(item.ProductID),
			uid.Encode(item.ServiceID), item.Quantity,
		); err != nil {
			return false, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("commit create order: %w", err)
	}

	return true, nil
}

// loadDetailHeader читает шапку заказа; ErrOrderNotFound, если заказа нет.
func loadDetailHeader(ctx context.Context, db *sql.DB, orderID uuid.UUID) (domain.OrderDetail, error) {
	var (
		detail                      domain.OrderDetail
		idRaw, resellerRaw, custRaw []byte
		statusRaw                   []byte
	)
	err := db.QueryRowContext(ctx, `
		SELECT o.id, o.reseller_id, o.customer_id, o.status_id, s.name, o.created_at
		FROM orders o
		JOIN order_statuses s ON s.id = o.status_id
		WHERE o.id = $1
	`, uid.Encode(orderID)).Scan(
		&idRaw, &resellerRaw, &custRaw, &statusRaw, &detail.StatusName, &detail.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderDetail{}, domain.ErrOrderNotFound
		}
		return domain.OrderDetail{}, fmt.Errorf("select order: %w", err)
	}

	if detail.ID, err = uid.Decode(idRaw); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("order id: %w", err)
	}
	if detail.ResellerID, err = uid.Decode(resellerRaw); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("reseller id: %w", err)
	}
	if detail.CustomerID, err = uid.Decode(custRaw); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("customer id: %w", err)
	}
	if detail.StatusID, err = uid.Decode(statusRaw); err != nil {
		return domain.OrderDetail{}, fmt.Errorf("status id: %w", err)
	}
	detail.CreatedAt = detail.CreatedAt.UTC()

	return detail, nil
}

// hydrateDetailItems дочитывает позиции заказа и считает построчные и общие итоги.
func hydrateDetailItems(ctx context.Context, db *sql.DB, detail *domain.OrderDetail) error {
	rows, err := db.QueryContext(ctx, `
		SELECT i.id, i.product_id, p.name, i.service_id, sv.name,
		       p.unit_cost::float8, p.unit_price::float8, i.quantity
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		JOIN services sv ON sv.id = i.service_id
		WHERE i.order_id = $1
		ORDER BY i.id ASC
	`, uid.Encode(detail.ID))
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	detail.Items = make([]domain.OrderDetailItem, 0)
	detail.TotalCost = 0
	detail.TotalPrice = 0
	for rows.Next() {
		var (
			item                     domain.OrderDetailItem
			itemRaw, prodRaw, svcRaw []byte
		)
		if err := rows.Scan(
			&itemRaw, &prodRaw, &item.ProductName, &svcRaw, &item.ServiceName,
			&item.UnitCost, &item.UnitPrice, &item.Quantity,
		); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if item.ID, err = uid.Decode(itemRaw); err != nil {
			return fmt.Errorf("item id: %w", err)
		}
		if item.ProductID, err = uid.Decode(prodRaw); err != nil {
			return fmt.Errorf("item product id: %w", err)
		}
		if item.ServiceID, err = uid.Decode(svcRaw); err != nil {
			return fmt.Errorf("item service id: %w", err)
		}
		item.OrderID = detail.ID
		item.TotalCost = item.UnitCost * float64(item.Quantity)
		item.TotalPrice = item.UnitPrice * float64(item.Quantity)
		detail.TotalCost += item.TotalCost
		detail.TotalPrice += item.TotalPrice
		detail.Items = append(detail.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
