// internal/repository/sales_repository.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stylesense/backend/internal/domain"
)

// SalesRepository reads the daily sales aggregates written by the out-of-band
// aggregation job. Records come back ordered ascending by date, one per day.
type SalesRepository interface {
	DailySalesSince(ctx context.Context, since time.Time) ([]domain.DailySalesRecord, error)
}

type salesRepository struct {
	db *sqlx.DB
}

func NewSalesRepository(db *sqlx.DB) SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) DailySalesSince(ctx context.Context, since time.Time) ([]domain.DailySalesRecord, error) {
	query := `
        SELECT
            date,
            total_revenue,
            COALESCE(top_selling_sub_category, '') AS top_selling_sub_category
        FROM daily_sales
        WHERE date >= $1
        ORDER BY date ASC
    `

	var records []domain.DailySalesRecord
	if err := r.db.SelectContext(ctx, &records, query, since); err != nil {
		return nil, fmt.Errorf("error getting daily sales: %w", err)
	}

	return records, nil
}
