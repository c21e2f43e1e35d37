// internal/domain/models.go
package domain

import "time"

// Product represents a catalog item
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	Category    string    `json:"category" db:"category"`
	SubCategory string    `json:"subCategory" db:"sub_category"`
	Sizes       []string  `json:"sizes" db:"-"`
	Colors      []string  `json:"colors" db:"-"`
	Image       string    `json:"image" db:"image"`
	Stock       int       `json:"stock" db:"stock"`
	IsTrending  bool      `json:"isTrending" db:"is_trending"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductFilter represents filters for catalog queries
type ProductFilter struct {
	Category    string `json:"category"`
	SubCategory string `json:"sub_category"`
}

// DailySalesRecord is one day's aggregated revenue. Records are produced by
// an external aggregation process; the server only reads them, ordered by
// date ascending.
type DailySalesRecord struct {
	Date                  time.Time `json:"date" db:"date"`
	TotalRevenue          float64   `json:"total_revenue" db:"total_revenue"`
	TopSellingSubCategory string    `json:"top_selling_sub_category" db:"top_selling_sub_category"`
}

// User represents a registered customer or admin
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Order represents a placed order
type Order struct {
	ID          int64       `json:"id" db:"id"`
	OrderNumber string      `json:"order_number" db:"order_number"`
	UserID      int64       `json:"user_id" db:"user_id"`
	UserName    string      `json:"user_name" db:"user_name"`
	Items       []OrderItem `json:"items" db:"-"`
	Total       float64     `json:"total" db:"total"`
	Status      int         `json:"status" db:"status"`
	StatusLabel string      `json:"status_label" db:"-"`
	PlacedAt    time.Time   `json:"placed_at" db:"placed_at"`
	DeliveredAt *time.Time  `json:"delivered_at,omitempty" db:"delivered_at"`
}

// OrderItem represents a single line of an order
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"order_id" db:"order_id"`
	ProductID int64   `json:"product_id" db:"product_id"`
	Size      string  `json:"size" db:"size"`
	Color     string  `json:"color" db:"color"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`
}
