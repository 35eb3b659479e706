package charts

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
)

func testSeries(t *testing.T, n int) []analytics.Point {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	series := make([]analytics.Point, n)
	for i := 0; i < n; i++ {
		series[i] = analytics.Point{Date: start.AddDate(0, 0, i), Value: 100 + 10*float64(i)}
	}
	return series
}

func requireRenderedPNG(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(t.TempDir(), DefaultStyle(), zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestTrendChart(t *testing.T) {
	r := newTestRenderer(t)
	series := testSeries(t, 10)
	trend, err := analytics.FitTrend(series)
	require.NoError(t, err)

	path, err := r.TrendChart(series, trend, "tendencia_ventas.png")
	require.NoError(t, err)
	requireRenderedPNG(t, path)
}

func TestForecastChart(t *testing.T) {
	r := newTestRenderer(t)
	series := testSeries(t, 10)
	fc, err := analytics.ForecastSales(series, 5)
	require.NoError(t, err)

	path, err := r.ForecastChart(series, fc, "prediccion_ventas.png")
	require.NoError(t, err)
	requireRenderedPNG(t, path)
}

func TestBarChart(t *testing.T) {
	r := newTestRenderer(t)
	agg := analytics.Aggregation{
		GroupBy: analytics.GroupCategory,
		Measure: analytics.MeasureSales,
		Reduce:  analytics.ReduceSum,
		Buckets: []analytics.Bucket{
			{Key: "Tech", Value: 3725},
			{Key: "Furniture", Value: 1080},
		},
	}

	path, err := r.BarChart(agg, "Ventas por Categoría", "Categoría", "Ventas ($)", "ventas_categoria.png")
	require.NoError(t, err)
	requireRenderedPNG(t, path)
}

func TestBoxPlot(t *testing.T) {
	r := newTestRenderer(t)

	path, err := r.BoxPlot([]float64{1, 2, 3, 4, 5, 100}, "Distribución de Ventas", "Ventas ($)", "outliers_ventas.png")
	require.NoError(t, err)
	requireRenderedPNG(t, path)
}

func TestHeatmapHandlesNaNCells(t *testing.T) {
	r := newTestRenderer(t)
	nan := math.NaN()
	m := analytics.CorrelationMatrix{
		Columns: []string{"sales_amount", "quantity", "category_code"},
		Values: [][]float64{
			{1, 0.8, nan},
			{0.8, 1, nan},
			{nan, nan, 1},
		},
	}

	path, err := r.Heatmap(m, "Matriz de Correlaciones", "correlaciones.png")
	require.NoError(t, err)
	requireRenderedPNG(t, path)
}

func TestStyleColorCyclesPalette(t *testing.T) {
	s := DefaultStyle()
	require.Equal(t, s.Color(0), s.Color(len(s.Palette)))

	c, err := parseHexColor("#FF6B6B")
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), c.R)
	require.Equal(t, uint8(0x6B), c.G)

	_, err = parseHexColor("red")
	require.Error(t, err)
}
