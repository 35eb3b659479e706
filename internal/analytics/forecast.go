package analytics

import (
	"fmt"
	"time"
)

// ForecastPoint is one predicted future day.
type ForecastPoint struct {
	Date  time.Time
	Value float64
}

// Forecast extends the fitted trend line beyond the last observed date.
type Forecast struct {
	Trend  Trend
	Points []ForecastPoint
}

// ForecastSales extrapolates the OLS fit over the date-ascending daily series
// horizon steps forward. Step k predicts slope*(n-1+k) + intercept on day
// lastDate + k, clamped at zero since sales cannot be negative.
func ForecastSales(series []Point, horizon int) (Forecast, error) {
	if horizon <= 0 {
		return Forecast{}, fmt.Errorf("forecast: %w: horizon must be positive, got %d", ErrInvalidArgument, horizon)
	}
	trend, err := FitTrend(series)
	if err != nil {
		return Forecast{}, err
	}

	n := len(series)
	last := series[n-1].Date
	points := make([]ForecastPoint, 0, horizon)
	for k := 1; k <= horizon; k++ {
		pred := trend.Slope*float64(n-1+k) + trend.Intercept
		if pred < 0 {
			pred = 0
		}
		points = append(points, ForecastPoint{
			Date:  last.AddDate(0, 0, k),
			Value: pred,
		})
	}
	return Forecast{Trend: trend, Points: points}, nil
}
