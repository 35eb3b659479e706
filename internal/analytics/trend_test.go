package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func linearSeries(t *testing.T, n int, slope, intercept float64) []Point {
	t.Helper()
	start := day(t, "2024-03-01")
	series := make([]Point, n)
	for i := 0; i < n; i++ {
		series[i] = Point{Date: start.AddDate(0, 0, i), Value: slope*float64(i) + intercept}
	}
	return series
}

func TestFitTrendPerfectLine(t *testing.T) {
	tr, err := FitTrend(linearSeries(t, 10, 3, 7))
	require.NoError(t, err)

	require.InDelta(t, 3.0, tr.Slope, 1e-9)
	require.InDelta(t, 7.0, tr.Intercept, 1e-9)
	require.InDelta(t, 1.0, tr.RSquared, 1e-9)
	require.InDelta(t, 0.0, tr.PValue, 1e-9)
	require.InDelta(t, 0.0, tr.StdErr, 1e-9)
	require.Equal(t, "increasing", tr.Classification())
}

func TestFitTrendConstantSeries(t *testing.T) {
	tr, err := FitTrend(linearSeries(t, 8, 0, 42))
	require.NoError(t, err)

	require.InDelta(t, 0.0, tr.Slope, 1e-12)
	require.InDelta(t, 0.0, tr.RSquared, 1e-12)
	require.InDelta(t, 1.0, tr.PValue, 1e-12)
	require.InDelta(t, 0.0, tr.StdErr, 1e-12)
	require.Equal(t, "stable", tr.Classification())
}

func TestFitTrendDecreasing(t *testing.T) {
	tr, err := FitTrend(linearSeries(t, 6, -2.5, 100))
	require.NoError(t, err)
	require.InDelta(t, -2.5, tr.Slope, 1e-9)
	require.Equal(t, "decreasing", tr.Classification())
}

func TestFitTrendNoisySeriesStatistics(t *testing.T) {
	start := day(t, "2024-03-01")
	// y = 2x + noise; p-value should be small but nonzero, stderr positive.
	values := []float64{1, 2.9, 5.2, 6.8, 9.1, 10.9, 13.2, 14.8}
	series := make([]Point, len(values))
	for i, v := range values {
		series[i] = Point{Date: start.AddDate(0, 0, i), Value: v}
	}

	tr, err := FitTrend(series)
	require.NoError(t, err)
	require.InDelta(t, 2.0, tr.Slope, 0.1)
	require.Greater(t, tr.RSquared, 0.99)
	require.Greater(t, tr.StdErr, 0.0)
	require.Greater(t, tr.PValue, 0.0)
	require.Less(t, tr.PValue, 1e-6)
}

func TestFitTrendTwoPointsDegenerateDF(t *testing.T) {
	tr, err := FitTrend(linearSeries(t, 2, 5, 10))
	require.NoError(t, err)
	require.InDelta(t, 5.0, tr.Slope, 1e-9)
	require.True(t, math.IsNaN(tr.PValue))
	require.True(t, math.IsNaN(tr.StdErr))
}

func TestFitTrendInsufficientData(t *testing.T) {
	_, err := FitTrend(nil)
	require.ErrorIs(t, err, ErrInsufficientData)

	_, err = FitTrend([]Point{{Date: time.Now(), Value: 10}})
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitTrendIdempotent(t *testing.T) {
	series := linearSeries(t, 12, 1.5, 20)
	first, err := FitTrend(series)
	require.NoError(t, err)
	second, err := FitTrend(series)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
