package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForecastHorizonAndDates(t *testing.T) {
	series := linearSeries(t, 7, 2, 50)

	fc, err := ForecastSales(series, 5)
	require.NoError(t, err)
	require.Len(t, fc.Points, 5)

	last := series[len(series)-1].Date
	for i, p := range fc.Points {
		require.Equal(t, last.AddDate(0, 0, i+1), p.Date)
		require.GreaterOrEqual(t, p.Value, 0.0)
	}
	for i := 1; i < len(fc.Points); i++ {
		require.Equal(t, fc.Points[i-1].Date.AddDate(0, 0, 1), fc.Points[i].Date)
	}
}

func TestForecastContinuesOrdinalIndex(t *testing.T) {
	// 10 days rising by exactly 10 starting at 100: day 11 predicts 200,
	// day 15 predicts 240.
	series := linearSeries(t, 10, 10, 100)

	fc, err := ForecastSales(series, 5)
	require.NoError(t, err)
	require.InDelta(t, 10.0, fc.Trend.Slope, 1e-9)
	require.InDelta(t, 200.0, fc.Points[0].Value, 1e-9)
	require.InDelta(t, 210.0, fc.Points[1].Value, 1e-9)
	require.InDelta(t, 220.0, fc.Points[2].Value, 1e-9)
	require.InDelta(t, 230.0, fc.Points[3].Value, 1e-9)
	require.InDelta(t, 240.0, fc.Points[4].Value, 1e-9)
}

func TestForecastClampsNegativePredictions(t *testing.T) {
	// Steeply decreasing series crosses zero inside the horizon.
	series := linearSeries(t, 5, -40, 100)

	fc, err := ForecastSales(series, 6)
	require.NoError(t, err)
	for _, p := range fc.Points {
		require.GreaterOrEqual(t, p.Value, 0.0)
	}
	// Day n-1 holds -60; every later step clamps at zero.
	require.InDelta(t, 0.0, fc.Points[0].Value, 1e-9)
	require.InDelta(t, 0.0, fc.Points[5].Value, 1e-9)
}

func TestForecastInvalidHorizon(t *testing.T) {
	series := linearSeries(t, 5, 1, 10)

	_, err := ForecastSales(series, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ForecastSales(series, -3)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestForecastInsufficientSeries(t *testing.T) {
	_, err := ForecastSales(linearSeries(t, 1, 0, 5), 3)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestForecastIdempotent(t *testing.T) {
	series := linearSeries(t, 9, 3, 12)
	first, err := ForecastSales(series, 4)
	require.NoError(t, err)
	second, err := ForecastSales(series, 4)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
