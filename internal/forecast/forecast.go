// internal/forecast/forecast.go
package forecast

import (
	"errors"
	"math"
	"time"

	"github.com/stylesense/backend/internal/domain"
)

// Window sizes in days. The look-back window feeds the regression, the trend
// window feeds the subcategory tally, and the horizon is how far ahead the
// projection runs.
const (
	LookbackDays    = 30
	TrendWindowDays = 7
	HorizonDays     = 7
)

// TrendNone is the trend label when no record in the window carries a
// top-selling subcategory.
const TrendNone = "N/A"

// ErrInsufficientData is returned when the look-back window holds fewer than
// two sales records. Not retryable: more data has to accumulate first.
var ErrInsufficientData = errors.New("not enough sales data for prediction")

// RegressionLine is an ordinary least-squares fit of daily revenue over the
// zero-based day index of the look-back window. Recomputed per request, never
// persisted.
type RegressionLine struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at the given day index.
func (l RegressionLine) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// FitRevenueLine fits revenue = slope*dayIndex + intercept over the records,
// which must be sorted ascending by date. The day index is each record's rank
// in the window, so gaps in the calendar do not stretch the x axis.
func FitRevenueLine(records []domain.DailySalesRecord) (RegressionLine, error) {
	n := len(records)
	if n < 2 {
		return RegressionLine{}, ErrInsufficientData
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, rec := range records {
		x := float64(i)
		sumX += x
		sumY += rec.TotalRevenue
		sumXY += x * rec.TotalRevenue
		sumXX += x * x
	}

	fn := float64(n)
	meanX := sumX / fn
	meanY := sumY / fn

	// variance(x) is always positive for n >= 2 sequential indices; the
	// guard keeps a degenerate input from producing NaN.
	varX := sumXX - fn*meanX*meanX
	if varX == 0 {
		return RegressionLine{Slope: 0, Intercept: meanY}, nil
	}

	slope := (sumXY - fn*meanX*meanY) / varX
	return RegressionLine{
		Slope:     slope,
		Intercept: meanY - slope*meanX,
	}, nil
}

// Forecaster produces short-horizon revenue projections from historical daily
// sales aggregates.
type Forecaster struct {
	horizon int
}

func NewForecaster(horizonDays int) *Forecaster {
	if horizonDays <= 0 {
		horizonDays = HorizonDays
	}
	return &Forecaster{horizon: horizonDays}
}

// Project fits the regression over the look-back records and extends the line
// past the last observed day. Each projected value is rounded (half away from
// zero) and clamped at zero; a non-finite value from a degenerate fit also
// clamps to zero rather than propagating.
func (f *Forecaster) Project(records []domain.DailySalesRecord) ([]domain.PredictionPoint, error) {
	line, err := FitRevenueLine(records)
	if err != nil {
		return nil, err
	}

	lastIndex := len(records) - 1
	lastDate := records[lastIndex].Date

	points := make([]domain.PredictionPoint, 0, f.horizon)
	for i := 1; i <= f.horizon; i++ {
		value := line.At(float64(lastIndex + i))

		points = append(points, domain.PredictionPoint{
			Date:             lastDate.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedRevenue: clampRevenue(value),
		})
	}

	return points, nil
}

// TrendLabel tallies the top-selling subcategory over the trend-window records
// and returns the one with the strictly highest count. Records without a
// subcategory are skipped; if none carry one the label is TrendNone. Ties go
// to the first subcategory encountered.
func TrendLabel(records []domain.DailySalesRecord) string {
	counts := make(map[string]int)

	label := TrendNone
	maxCount := 0
	for _, rec := range records {
		sub := rec.TopSellingSubCategory
		if sub == "" || sub == TrendNone {
			continue
		}
		counts[sub]++
		if counts[sub] > maxCount {
			maxCount = counts[sub]
			label = sub
		}
	}

	return label
}

func clampRevenue(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	rounded := math.Round(v)
	if rounded < 0 {
		return 0
	}
	return int64(rounded)
}

// WindowStart returns the inclusive lower bound of a look-back window of the
// given length, anchored at now.
func WindowStart(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}
