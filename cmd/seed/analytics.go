// cmd/seed/analytics.go
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/urfave/cli/v2"
)

// seedAnalytics regenerates the order history and daily sales aggregates for
// the last N days. Order volume ramps up mildly over the window so the
// regression has a visible slope to pick up.
func seedAnalytics(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	days := c.Int("days")
	if days <= 0 {
		days = 30
	}

	products, err := loadProducts(db)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("no products found; seed products first")
	}

	userID, err := ensureDemoUser(db)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(c.Context, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Regenerate from scratch so repeated runs stay consistent.
	if _, err := tx.ExecContext(c.Context, "DELETE FROM order_items"); err != nil {
		return fmt.Errorf("failed to clear order items: %w", err)
	}
	if _, err := tx.ExecContext(c.Context, "DELETE FROM orders"); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	if _, err := tx.ExecContext(c.Context, "DELETE FROM daily_sales"); err != nil {
		return fmt.Errorf("failed to clear daily sales: %w", err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	totalOrders := 0

	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		// 5 to 15 orders per day, rising slightly over the window
		baseOrders := 5 + (days-1-i)/5
		numOrders := baseOrders + rand.Intn(5)

		var dayRevenue float64
		subCategoryCounts := make(map[string]int)

		for j := 0; j < numOrders; j++ {
			placedAt := date.Add(time.Duration(9+rand.Intn(12)) * time.Hour).
				Add(time.Duration(rand.Intn(60)) * time.Minute)

			numItems := rand.Intn(4) + 1
			var orderTotal float64

			type line struct {
				product seedProduct
				qty     int
			}
			lines := make([]line, 0, numItems)
			for k := 0; k < numItems; k++ {
				p := products[rand.Intn(len(products))]
				qty := rand.Intn(3) + 1
				lines = append(lines, line{product: p, qty: qty})
				orderTotal += p.price * float64(qty)
				subCategoryCounts[p.subCategory] += qty
			}

			// Mostly delivered, occasionally cancelled
			status := 3
			if rand.Float64() < 0.1 {
				status = 4
			}

			var orderID int64
			err := tx.QueryRowContext(c.Context, `
                INSERT INTO orders (order_number, user_id, total, status, placed_at, delivered_at)
                VALUES ($1, $2, $3, $4, $5, CASE WHEN $4 = 3 THEN $5 ELSE NULL END)
                RETURNING id
            `, uuid.NewString(), userID, orderTotal, status, placedAt).Scan(&orderID)
			if err != nil {
				return fmt.Errorf("failed to insert order: %w", err)
			}

			for _, l := range lines {
				size := ""
				if len(l.product.sizes) > 0 {
					size = l.product.sizes[0]
				}
				color := ""
				if len(l.product.colors) > 0 {
					color = l.product.colors[0]
				}
				if _, err := tx.ExecContext(c.Context, `
                    INSERT INTO order_items (order_id, product_id, size, color, quantity, price)
                    VALUES ($1, $2, $3, $4, $5, $6)
                `, orderID, l.product.id, size, color, l.qty, l.product.price); err != nil {
					return fmt.Errorf("failed to insert order item: %w", err)
				}
			}

			if status != 4 {
				dayRevenue += orderTotal
			}
			totalOrders++
		}

		topSubCategory := sql.NullString{}
		maxCount := 0
		for subCat, count := range subCategoryCounts {
			if count > maxCount {
				maxCount = count
				topSubCategory = sql.NullString{String: subCat, Valid: true}
			}
		}

		if _, err := tx.ExecContext(c.Context, `
            INSERT INTO daily_sales (date, total_revenue, top_selling_sub_category)
            VALUES ($1, $2, $3)
            ON CONFLICT (date) DO UPDATE SET
                total_revenue = EXCLUDED.total_revenue,
                top_selling_sub_category = EXCLUDED.top_selling_sub_category
        `, date, dayRevenue, topSubCategory); err != nil {
			return fmt.Errorf("failed to insert daily sales: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Successfully seeded %d orders across %d days", totalOrders, days)
	return nil
}

type seedProduct struct {
	id          int64
	price       float64
	subCategory string
	sizes       []string
	colors      []string
}

func loadProducts(db *sql.DB) ([]seedProduct, error) {
	rows, err := db.Query("SELECT id, price, sub_category, sizes, colors FROM products")
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()

	var products []seedProduct
	for rows.Next() {
		var p seedProduct
		var sizes, colors pq.StringArray
		if err := rows.Scan(&p.id, &p.price, &p.subCategory, &sizes, &colors); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.sizes = []string(sizes)
		p.colors = []string(colors)
		products = append(products, p)
	}

	return products, rows.Err()
}

func ensureDemoUser(db *sql.DB) (int64, error) {
	var id int64
	err := db.QueryRow(`
        WITH new_user AS (
            INSERT INTO users (name, email, password_hash, is_admin)
            VALUES ('Demo User', 'demo@example.com', '', FALSE)
            ON CONFLICT (email) DO NOTHING
            RETURNING id
        ) SELECT id FROM new_user
        UNION ALL
        SELECT id FROM users WHERE email = 'demo@example.com'
        LIMIT 1
    `).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to ensure demo user: %w", err)
	}

	return id, nil
}
