package forecast

import (
	"math"

	"github.com/stylesense/backend/internal/domain"
)

// Daily demand rates for the stockout heuristic. The rates are additive: every
// product sells at the base rate, curated-trending products add
// TrendingRateBoost, and products whose subcategory matches the current trend
// label add TrendMatchRateBoost on top.
const (
	BaseDailyRate       = 0.5
	TrendingRateBoost   = 1.5
	TrendMatchRateBoost = 2.0
)

// RiskEstimator projects short-horizon unit demand per product and flags
// shortfalls against current stock. This is a fixed heuristic, not a fitted
// model; the rates have no learned parameters.
type RiskEstimator struct {
	baseRate        float64
	trendingBoost   float64
	trendMatchBoost float64
	horizon         int
}

func NewRiskEstimator(horizonDays int) *RiskEstimator {
	if horizonDays <= 0 {
		horizonDays = HorizonDays
	}
	return &RiskEstimator{
		baseRate:        BaseDailyRate,
		trendingBoost:   TrendingRateBoost,
		trendMatchBoost: TrendMatchRateBoost,
		horizon:         horizonDays,
	}
}

// PredictedDemand estimates units demanded over the horizon for one product.
// Partial units cannot be stocked, so the total rounds up.
func (e *RiskEstimator) PredictedDemand(p domain.Product, trendLabel string) int {
	rate := e.baseRate
	if p.IsTrending {
		rate += e.trendingBoost
	}
	if trendLabel != TrendNone && trendLabel == p.SubCategory {
		rate += e.trendMatchBoost
	}

	return int(math.Ceil(rate * float64(e.horizon)))
}

// EstimateRisks returns a StockRisk entry for every product whose predicted
// demand exceeds its current stock, preserving catalog order. Products that
// can cover the demand are omitted.
func (e *RiskEstimator) EstimateRisks(products []domain.Product, trendLabel string) []domain.StockRisk {
	risks := make([]domain.StockRisk, 0)
	for _, p := range products {
		demand := e.PredictedDemand(p, trendLabel)
		if demand <= p.Stock {
			continue
		}

		risks = append(risks, domain.StockRisk{
			ProductID:       p.ID,
			Name:            p.Name,
			Image:           p.Image,
			CurrentStock:    p.Stock,
			PredictedDemand: demand,
			ShortageAmount:  demand - p.Stock,
		})
	}

	return risks
}
