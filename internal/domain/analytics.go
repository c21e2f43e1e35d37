package domain

// PredictionPoint is a single projected day of revenue.
type PredictionPoint struct {
	Date             string `json:"date"`
	PredictedRevenue int64  `json:"predictedRevenue"`
}

// StockRisk flags a product whose projected demand exceeds its on-hand stock.
type StockRisk struct {
	ProductID       int64  `json:"productId"`
	Name            string `json:"name"`
	Image           string `json:"image"`
	CurrentStock    int    `json:"currentStock"`
	PredictedDemand int    `json:"predictedDemand"`
	ShortageAmount  int    `json:"shortageAmount"`
}

// AnalyticsReport is the combined forecast payload served to the admin
// dashboard: a 7-day revenue projection, the trending subcategory of the
// recent window, and the products at risk of stocking out.
type AnalyticsReport struct {
	Predictions []PredictionPoint `json:"predictions"`
	TrendAlert  string            `json:"trendAlert"`
	StockRisks  []StockRisk       `json:"stockRisks"`
}

// CategorySales is revenue grouped by top-level category.
type CategorySales struct {
	Category string  `json:"category" db:"category"`
	Revenue  float64 `json:"revenue" db:"revenue"`
}

// TopProduct is a best-seller entry ranked by units sold.
type TopProduct struct {
	ProductID int64  `json:"product_id" db:"product_id"`
	Name      string `json:"name" db:"name"`
	Sales     int    `json:"sales" db:"sales"`
}

// StoreStats aggregates the storefront KPI cards.
type StoreStats struct {
	TotalUsers        int             `json:"totalUsers"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      float64         `json:"totalRevenue"`
	AverageOrderValue float64         `json:"averageOrderValue"`
	SalesByCategory   []CategorySales `json:"salesByCategory"`
	TopProducts       []TopProduct    `json:"topProducts"`
}
