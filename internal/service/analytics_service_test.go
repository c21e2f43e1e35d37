package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/forecast"
)

type fakeSalesRepo struct {
	mu      sync.Mutex
	records []domain.DailySalesRecord
	err     error
	calls   []time.Time
}

func (f *fakeSalesRepo) DailySalesSince(_ context.Context, since time.Time) ([]domain.DailySalesRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, since)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	var out []domain.DailySalesRecord
	for _, rec := range f.records {
		if !rec.Date.Before(since) {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products []domain.Product
	err      error
}

func (f *fakeProductRepo) List(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	return f.products, f.err
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			return &f.products[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = int64(len(f.products) + 1)
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) Update(context.Context, *domain.Product) error { return nil }
func (f *fakeProductRepo) Delete(context.Context, int64) error           { return nil }

type fakeOrderRepo struct {
	orders []domain.Order
	stats  *domain.StoreStats
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	order.ID = int64(len(f.orders) + 1)
	order.PlacedAt = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) List(context.Context) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status int) (*domain.Order, error) {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			f.orders[i].StatusLabel = domain.OrderStatusLabel(status)
			return &f.orders[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrderRepo) GetStoreStats(context.Context) (*domain.StoreStats, error) {
	return f.stats, nil
}

func fixedClock(t *testing.T, s string) func() time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return func() time.Time { return d }
}

func rampSales(start time.Time, days int) []domain.DailySalesRecord {
	records := make([]domain.DailySalesRecord, 0, days)
	for i := 0; i < days; i++ {
		records = append(records, domain.DailySalesRecord{
			Date:                  start.AddDate(0, 0, i),
			TotalRevenue:          float64(1000 + 100*i),
			TopSellingSubCategory: "Jeans",
		})
	}
	return records
}

func TestGetPredictionsAndRisks(t *testing.T) {
	now := fixedClock(t, "2025-06-30")
	sales := &fakeSalesRepo{records: rampSales(now().AddDate(0, 0, -29), 30)}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 1, Name: "Slim Fit Jeans", Stock: 5, IsTrending: true, SubCategory: "Jeans"},
		{ID: 2, Name: "Rain Jacket", Stock: 50, SubCategory: "Jackets"},
	}}

	svc := NewAnalyticsService(sales, products, &fakeOrderRepo{}, nil)
	svc.now = now

	report, err := svc.GetPredictionsAndRisks(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Predictions, 7)
	assert.Equal(t, "2025-07-01", report.Predictions[0].Date)
	assert.Equal(t, "2025-07-07", report.Predictions[6].Date)
	// slope 100/day continuing from 3900 at the last observed index
	assert.Equal(t, int64(4000), report.Predictions[0].PredictedRevenue)

	assert.Equal(t, "Jeans", report.TrendAlert)

	require.Len(t, report.StockRisks, 1)
	assert.Equal(t, int64(1), report.StockRisks[0].ProductID)
	assert.Equal(t, 28, report.StockRisks[0].PredictedDemand)
	assert.Equal(t, 23, report.StockRisks[0].ShortageAmount)
}

func TestGetPredictionsAndRisksWindows(t *testing.T) {
	now := fixedClock(t, "2025-06-30")
	sales := &fakeSalesRepo{records: rampSales(now().AddDate(0, 0, -29), 30)}

	svc := NewAnalyticsService(sales, &fakeProductRepo{}, &fakeOrderRepo{}, nil)
	svc.now = now

	_, err := svc.GetPredictionsAndRisks(context.Background())
	require.NoError(t, err)

	// Two independent sales fetches: the 30-day look-back and the 7-day
	// trend window. Order is not fixed since they run concurrently.
	require.Len(t, sales.calls, 2)
	assert.ElementsMatch(t, []time.Time{
		now().AddDate(0, 0, -forecast.LookbackDays),
		now().AddDate(0, 0, -forecast.TrendWindowDays),
	}, sales.calls)
}

func TestGetPredictionsAndRisksInsufficientData(t *testing.T) {
	now := fixedClock(t, "2025-06-30")
	sales := &fakeSalesRepo{records: rampSales(now(), 1)}

	svc := NewAnalyticsService(sales, &fakeProductRepo{}, &fakeOrderRepo{}, nil)
	svc.now = now

	report, err := svc.GetPredictionsAndRisks(context.Background())
	assert.ErrorIs(t, err, forecast.ErrInsufficientData)
	assert.Nil(t, report)
}

func TestGetPredictionsAndRisksUpstreamFailure(t *testing.T) {
	now := fixedClock(t, "2025-06-30")
	sales := &fakeSalesRepo{err: errors.New("connection refused")}

	svc := NewAnalyticsService(sales, &fakeProductRepo{}, &fakeOrderRepo{}, nil)
	svc.now = now

	_, err := svc.GetPredictionsAndRisks(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, forecast.ErrInsufficientData)
}

func TestGetPredictionsAndRisksIdempotent(t *testing.T) {
	now := fixedClock(t, "2025-06-30")
	sales := &fakeSalesRepo{records: rampSales(now().AddDate(0, 0, -29), 30)}
	products := &fakeProductRepo{products: []domain.Product{
		{ID: 1, Stock: 2, IsTrending: true, SubCategory: "Jeans"},
	}}

	svc := NewAnalyticsService(sales, products, &fakeOrderRepo{}, nil)
	svc.now = now

	first, err := svc.GetPredictionsAndRisks(context.Background())
	require.NoError(t, err)
	second, err := svc.GetPredictionsAndRisks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetStats(t *testing.T) {
	stats := &domain.StoreStats{
		TotalUsers:        12,
		TotalOrders:       40,
		TotalRevenue:      100000,
		AverageOrderValue: 2500,
	}

	svc := NewAnalyticsService(&fakeSalesRepo{}, &fakeProductRepo{}, &fakeOrderRepo{stats: stats}, nil)

	got, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stats, got)
}
