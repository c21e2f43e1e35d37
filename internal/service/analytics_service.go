// internal/service/analytics_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stylesense/backend/internal/cache"
	"github.com/stylesense/backend/internal/domain"
	"github.com/stylesense/backend/internal/forecast"
	"github.com/stylesense/backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService assembles the sales-forecast dashboard payloads. The
// computation itself is pure; all state lives in the repositories and the
// report cache.
type AnalyticsService struct {
	sales      repository.SalesRepository
	products   repository.ProductRepository
	orders     repository.OrderRepository
	cache      cache.AnalyticsCache
	forecaster *forecast.Forecaster
	risk       *forecast.RiskEstimator
	now        func() time.Time
}

func NewAnalyticsService(
	sales repository.SalesRepository,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	cacheImpl cache.AnalyticsCache,
) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalyticsCache()
	}
	return &AnalyticsService{
		sales:      sales,
		products:   products,
		orders:     orders,
		cache:      cacheImpl,
		forecaster: forecast.NewForecaster(forecast.HorizonDays),
		risk:       forecast.NewRiskEstimator(forecast.HorizonDays),
		now:        time.Now,
	}
}

// GetPredictionsAndRisks runs the regression over the look-back window,
// derives the trend label from the recent window, and flags stockout risks
// across the catalog snapshot. The three reads are independent and issued
// concurrently; computation starts once all are materialized.
//
// Returns forecast.ErrInsufficientData when the look-back window holds fewer
// than two records; callers map that to a client error, not a system fault.
func (s *AnalyticsService) GetPredictionsAndRisks(ctx context.Context) (*domain.AnalyticsReport, error) {
	now := s.now()

	if report, ok, err := s.cache.GetReport(ctx, now); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("analytics: cache get report failed")
	}

	var (
		lookback []domain.DailySalesRecord
		recent   []domain.DailySalesRecord
		catalog  []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lookback, err = s.sales.DailySalesSince(gctx, forecast.WindowStart(now, forecast.LookbackDays))
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.sales.DailySalesSince(gctx, forecast.WindowStart(now, forecast.TrendWindowDays))
		return err
	})
	g.Go(func() error {
		var err error
		catalog, err = s.products.List(gctx, domain.ProductFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	predictions, err := s.forecaster.Project(lookback)
	if err != nil {
		return nil, err
	}

	trend := forecast.TrendLabel(recent)

	report := &domain.AnalyticsReport{
		Predictions: predictions,
		TrendAlert:  trend,
		StockRisks:  s.risk.EstimateRisks(catalog, trend),
	}

	if err := s.cache.SetReport(ctx, now, report); err != nil {
		log.Warn().Err(err).Msg("analytics: cache set report failed")
	}

	return report, nil
}

// GetStats returns the storefront KPI aggregates for the admin dashboard.
func (s *AnalyticsService) GetStats(ctx context.Context) (*domain.StoreStats, error) {
	return s.orders.GetStoreStats(ctx)
}
