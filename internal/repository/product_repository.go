// internal/repository/product_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stylesense/backend/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

// productRow carries the array columns that sqlx cannot scan into []string
// directly.
type productRow struct {
	domain.Product
	SizesArr  pq.StringArray `db:"sizes"`
	ColorsArr pq.StringArray `db:"colors"`
}

func (row *productRow) toDomain() domain.Product {
	p := row.Product
	p.Sizes = []string(row.SizesArr)
	p.Colors = []string(row.ColorsArr)
	return p
}

const productColumns = `
    id, name, price, category, sub_category, sizes, colors,
    image, stock, is_trending, created_at, updated_at
`

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE 1=1"

	var args []interface{}
	var conditions []string
	argCounter := 1

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCounter))
		args = append(args, filter.Category)
		argCounter++
	}

	if filter.SubCategory != "" {
		conditions = append(conditions, fmt.Sprintf("sub_category = $%d", argCounter))
		args = append(args, filter.SubCategory)
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id ASC"

	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	var row productRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting product %d: %w", id, err)
	}

	p := row.toDomain()
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
        INSERT INTO products (
            name, price, category, sub_category, sizes, colors,
            image, stock, is_trending, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
        RETURNING id, created_at, updated_at
    `

	err := r.db.QueryRowxContext(ctx, query,
		p.Name, p.Price, p.Category, p.SubCategory,
		pq.StringArray(p.Sizes), pq.StringArray(p.Colors),
		p.Image, p.Stock, p.IsTrending,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating product: %w", err)
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
        UPDATE products SET
            name = $1, price = $2, category = $3, sub_category = $4,
            sizes = $5, colors = $6, image = $7, stock = $8,
            is_trending = $9, updated_at = NOW()
        WHERE id = $10
        RETURNING updated_at
    `

	err := r.db.QueryRowxContext(ctx, query,
		p.Name, p.Price, p.Category, p.SubCategory,
		pq.StringArray(p.Sizes), pq.StringArray(p.Colors),
		p.Image, p.Stock, p.IsTrending, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("error updating product %d: %w", p.ID, err)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting product %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error deleting product %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
