package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylesense/backend/internal/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func salesSeries(t *testing.T, start string, revenues ...float64) []domain.DailySalesRecord {
	t.Helper()
	first := day(t, start)
	records := make([]domain.DailySalesRecord, 0, len(revenues))
	for i, rev := range revenues {
		records = append(records, domain.DailySalesRecord{
			Date:         first.AddDate(0, 0, i),
			TotalRevenue: rev,
		})
	}
	return records
}

func TestFitRevenueLine(t *testing.T) {
	records := salesSeries(t, "2025-06-01", 100, 200, 300)

	line, err := FitRevenueLine(records)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, line.Slope, 1e-9)
	assert.InDelta(t, 100.0, line.Intercept, 1e-9)
	assert.InDelta(t, 400.0, line.At(3), 1e-9)
}

func TestFitRevenueLineInsufficientData(t *testing.T) {
	_, err := FitRevenueLine(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = FitRevenueLine(salesSeries(t, "2025-06-01", 500))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestProjectContinuesIndexSequence(t *testing.T) {
	records := salesSeries(t, "2025-06-01", 100, 200, 300)

	points, err := NewForecaster(HorizonDays).Project(records)
	require.NoError(t, err)
	require.Len(t, points, 7)

	// Index continues at N-1+i, so day one past the window predicts 400.
	assert.Equal(t, int64(400), points[0].PredictedRevenue)
	assert.Equal(t, int64(1000), points[6].PredictedRevenue)
}

func TestProjectDatesAreConsecutive(t *testing.T) {
	records := salesSeries(t, "2025-06-01", 100, 200, 300)

	points, err := NewForecaster(HorizonDays).Project(records)
	require.NoError(t, err)

	last := day(t, "2025-06-03")
	for i, p := range points {
		assert.Equal(t, last.AddDate(0, 0, i+1).Format("2006-01-02"), p.Date)
	}
}

func TestProjectClampsNegativeProjection(t *testing.T) {
	// Steep decline: the line goes negative well inside the horizon.
	records := salesSeries(t, "2025-06-01", 1000, 500, 0)

	points, err := NewForecaster(HorizonDays).Project(records)
	require.NoError(t, err)

	for _, p := range points {
		assert.GreaterOrEqual(t, p.PredictedRevenue, int64(0))
	}
	assert.Equal(t, int64(0), points[6].PredictedRevenue)
}

func TestProjectFlatSeries(t *testing.T) {
	records := salesSeries(t, "2025-06-01", 250, 250, 250, 250)

	points, err := NewForecaster(HorizonDays).Project(records)
	require.NoError(t, err)

	for _, p := range points {
		assert.Equal(t, int64(250), p.PredictedRevenue)
	}
}

func TestProjectRoundsHalfAwayFromZero(t *testing.T) {
	// Slope 0.5, intercept 0: index 2 onward projects x/2.
	records := salesSeries(t, "2025-06-01", 0, 0.5)

	points, err := NewForecaster(HorizonDays).Project(records)
	require.NoError(t, err)

	// At index 2 the line gives 1.0; at index 3, 1.5, which rounds to 2.
	assert.Equal(t, int64(1), points[0].PredictedRevenue)
	assert.Equal(t, int64(2), points[1].PredictedRevenue)
}

func TestClampRevenueNonFinite(t *testing.T) {
	assert.Equal(t, int64(0), clampRevenue(math.NaN()))
	assert.Equal(t, int64(0), clampRevenue(math.Inf(1)))
	assert.Equal(t, int64(0), clampRevenue(math.Inf(-1)))
}

func TestTrendLabel(t *testing.T) {
	first := day(t, "2025-06-20")
	records := []domain.DailySalesRecord{
		{Date: first, TotalRevenue: 100, TopSellingSubCategory: "Jeans"},
		{Date: first.AddDate(0, 0, 1), TotalRevenue: 120, TopSellingSubCategory: "Jeans"},
		{Date: first.AddDate(0, 0, 2), TotalRevenue: 90, TopSellingSubCategory: "Dresses"},
	}

	assert.Equal(t, "Jeans", TrendLabel(records))
}

func TestTrendLabelEmptyWindow(t *testing.T) {
	assert.Equal(t, TrendNone, TrendLabel(nil))

	records := salesSeries(t, "2025-06-20", 100, 200)
	assert.Equal(t, TrendNone, TrendLabel(records))
}

func TestTrendLabelSkipsSentinel(t *testing.T) {
	first := day(t, "2025-06-20")
	records := []domain.DailySalesRecord{
		{Date: first, TopSellingSubCategory: "N/A"},
		{Date: first.AddDate(0, 0, 1), TopSellingSubCategory: "N/A"},
		{Date: first.AddDate(0, 0, 2), TopSellingSubCategory: "Jackets"},
	}

	assert.Equal(t, "Jackets", TrendLabel(records))
}

func TestWindowStart(t *testing.T) {
	now := day(t, "2025-06-30")
	assert.Equal(t, day(t, "2025-05-31"), WindowStart(now, LookbackDays))
	assert.Equal(t, day(t, "2025-06-23"), WindowStart(now, TrendWindowDays))
}
