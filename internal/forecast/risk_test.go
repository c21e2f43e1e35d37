package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylesense/backend/internal/domain"
)

func TestPredictedDemand(t *testing.T) {
	est := NewRiskEstimator(HorizonDays)

	trendingMatch := domain.Product{IsTrending: true, SubCategory: "Jeans"}
	// 0.5 + 1.5 + 2.0 = 4.0 units/day over 7 days
	assert.Equal(t, 28, est.PredictedDemand(trendingMatch, "Jeans"))

	baseline := domain.Product{SubCategory: "Jackets"}
	// 0.5 units/day over 7 days, rounded up
	assert.Equal(t, 4, est.PredictedDemand(baseline, "Jeans"))

	trendingOnly := domain.Product{IsTrending: true, SubCategory: "Jackets"}
	assert.Equal(t, 14, est.PredictedDemand(trendingOnly, "Jeans"))
}

func TestPredictedDemandIgnoresSentinelTrend(t *testing.T) {
	est := NewRiskEstimator(HorizonDays)

	// A product whose subcategory literally matches the sentinel must not get
	// the trend-match boost.
	p := domain.Product{SubCategory: TrendNone}
	assert.Equal(t, 4, est.PredictedDemand(p, TrendNone))
}

func TestEstimateRisks(t *testing.T) {
	est := NewRiskEstimator(HorizonDays)

	products := []domain.Product{
		{ID: 1, Name: "Slim Jeans", Image: "jeans.jpg", Stock: 5, IsTrending: true, SubCategory: "Jeans"},
		{ID: 2, Name: "Rain Jacket", Stock: 10, SubCategory: "Jackets"},
	}

	risks := est.EstimateRisks(products, "Jeans")
	require.Len(t, risks, 1)

	assert.Equal(t, int64(1), risks[0].ProductID)
	assert.Equal(t, "Slim Jeans", risks[0].Name)
	assert.Equal(t, "jeans.jpg", risks[0].Image)
	assert.Equal(t, 5, risks[0].CurrentStock)
	assert.Equal(t, 28, risks[0].PredictedDemand)
	assert.Equal(t, 23, risks[0].ShortageAmount)
}

func TestEstimateRisksExactCoverExcluded(t *testing.T) {
	est := NewRiskEstimator(HorizonDays)

	// demand == stock is covered, not a shortage
	products := []domain.Product{
		{ID: 7, Stock: 4, SubCategory: "Dresses"},
	}
	assert.Empty(t, est.EstimateRisks(products, TrendNone))
}

func TestEstimateRisksPreservesCatalogOrder(t *testing.T) {
	est := NewRiskEstimator(HorizonDays)

	products := []domain.Product{
		{ID: 3, Stock: 0, SubCategory: "Dresses"},
		{ID: 1, Stock: 0, SubCategory: "Jeans"},
		{ID: 2, Stock: 0, SubCategory: "Jackets"},
	}

	risks := est.EstimateRisks(products, TrendNone)
	require.Len(t, risks, 3)
	assert.Equal(t, int64(3), risks[0].ProductID)
	assert.Equal(t, int64(1), risks[1].ProductID)
	assert.Equal(t, int64(2), risks[2].ProductID)
}
