package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apozdnyakova/weblarek/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Create сохраняет заказ и его позиции в одной транзакции.
func (r *orderRepository) Create(order domain.StoredOrder) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, payment, email, phone, address, total, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		order.ID, string(order.Order.Payment), order.Order.Email, order.Order.Phone,
		order.Order.Address, order.Order.Total, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderExists
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, productID := range order.Order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, position)
			VALUES ($1,$2,$3)
		`, order.ID, productID, i); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}
	return nil
}

// Get возвращает заказ с позициями или ErrOrderNotFound.
func (r *orderRepository) Get(id string) (domain.StoredOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.StoredOrder
	var payment string

	err := r.db.QueryRowContext(ctx, `
		SELECT id, payment, email, phone, address, total, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &payment, &order.Order.Email, &order.Order.Phone,
		&order.Order.Address, &order.Order.Total, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StoredOrder{}, domain.ErrOrderNotFound
		}
		return domain.StoredOrder{}, fmt.Errorf("select order: %w", err)
	}
	order.Order.Payment = domain.PaymentMethod(payment)

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return domain.StoredOrder{}, err
	}
	order.Order.Items = items

	return order, nil
}

// List возвращает заказы от новых к старым, ограничивая выборку limit (если >0).
func (r *orderRepository) List(limit int) ([]domain.StoredOrder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, payment, email, phone, address, total, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var result []domain.StoredOrder
	for rows.Next() {
		var order domain.StoredOrder
		var payment string
		if err := rows.Scan(
			&order.ID, &payment, &order.Order.Email, &order.Order.Phone,
			&order.Order.Address, &order.Order.Total, &order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		order.Order.Payment = domain.PaymentMethod(payment)

		items, err := r.loadItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Order.Items = items
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return result, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, productID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}
	return items, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
