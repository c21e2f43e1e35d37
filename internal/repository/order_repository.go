// internal/repository/order_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/repository/postgres"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status int) (*domain.Order, error)
	GetStoreStats(ctx context.Context) (*domain.StoreStats, error)
}

type orderRepository struct {
	db *postgres.DB
}

func NewOrderRepository(db *postgres.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its items in one transaction. Stock is not
// touched here: inventory snapshots belong to the curation process.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
            INSERT INTO orders (order_number, user_id, total, status, placed_at)
            VALUES ($1, $2, $3, $4, NOW())
            RETURNING id, placed_at
        `

		err := tx.QueryRowxContext(ctx, query,
			order.OrderNumber, order.UserID, order.Total, order.Status,
		).Scan(&order.ID, &order.PlacedAt)
		if err != nil {
			return fmt.Errorf("error creating order: %w", err)
		}

		itemQuery := `
            INSERT INTO order_items (order_id, product_id, size, color, quantity, price)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING id
        `

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			err := tx.QueryRowxContext(ctx, itemQuery,
				order.ID, item.ProductID, item.Size, item.Color, item.Quantity, item.Price,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("error creating order item: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
        SELECT
            o.id, o.order_number, o.user_id, u.name AS user_name,
            o.total, o.status, o.placed_at, o.delivered_at
        FROM orders o
        JOIN users u ON u.id = o.user_id
        ORDER BY o.placed_at DESC
    `

	var orders []domain.Order
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("error listing orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, 0, len(orders))
	index := make(map[int64]*domain.Order, len(orders))
	for i := range orders {
		orders[i].StatusLabel = domain.OrderStatusLabel(orders[i].Status)
		ids = append(ids, orders[i].ID)
		index[orders[i].ID] = &orders[i]
	}

	itemQuery, args, err := sqlx.In(`
        SELECT id, order_id, product_id, size, color, quantity, price
        FROM order_items
        WHERE order_id IN (?)
        ORDER BY id ASC
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("error building order items query: %w", err)
	}

	var items []domain.OrderItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(itemQuery), args...); err != nil {
		return nil, fmt.Errorf("error listing order items: %w", err)
	}

	for _, item := range items {
		if order, ok := index[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status int) (*domain.Order, error) {
	query := `
        UPDATE orders SET
            status = $1,
            delivered_at = CASE WHEN $1 = $2 THEN NOW() ELSE delivered_at END
        WHERE id = $3
        RETURNING id, order_number, user_id, total, status, placed_at, delivered_at
    `

	var order domain.Order
	err := r.db.GetContext(ctx, &order, query, status, domain.OrderStatusDelivered, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating order %d status: %w", id, err)
	}

	order.StatusLabel = domain.OrderStatusLabel(order.Status)
	return &order, nil
}

// GetStoreStats computes the storefront KPI aggregates. Cancelled orders do
// not count towards revenue.
func (r *orderRepository) GetStoreStats(ctx context.Context) (*domain.StoreStats, error) {
	stats := &domain.StoreStats{}

	summaryQuery := `
        SELECT
            (SELECT COUNT(*) FROM users) AS total_users,
            COUNT(o.id) AS total_orders,
            COALESCE(SUM(o.total) FILTER (WHERE o.status <> 4), 0) AS total_revenue
        FROM orders o
    `

	row := r.db.QueryRowxContext(ctx, summaryQuery)
	if err := row.Scan(&stats.TotalUsers, &stats.TotalOrders, &stats.TotalRevenue); err != nil {
		return nil, fmt.Errorf("error getting store summary: %w", err)
	}

	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / float64(stats.TotalOrders)
	}

	categoryQuery := `
        SELECT p.category, COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        JOIN orders o ON o.id = oi.order_id
        WHERE o.status <> 4
        GROUP BY p.category
        ORDER BY revenue DESC
    `

	if err := r.db.SelectContext(ctx, &stats.SalesByCategory, categoryQuery); err != nil {
		return nil, fmt.Errorf("error getting sales by category: %w", err)
	}

	topProductsQuery := `
        SELECT p.id AS product_id, p.name, COALESCE(SUM(oi.quantity), 0)::int AS sales
        FROM order_items oi
        JOIN products p ON p.id = oi.product_id
        JOIN orders o ON o.id = oi.order_id
        WHERE o.status <> 4
        GROUP BY p.id, p.name
        ORDER BY sales DESC
        LIMIT 5
    `

	if err := r.db.SelectContext(ctx, &stats.TopProducts, topProductsQuery); err != nil {
		return nil, fmt.Errorf("error getting top products: %w", err)
	}

	return stats, nil
}
