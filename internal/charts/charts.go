package charts

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
)

// Renderer writes chart PNGs into a single output directory.
type Renderer struct {
	style  Style
	outDir string
	log    zerolog.Logger
}

// NewRenderer creates the output directory and returns a renderer bound to it.
func NewRenderer(outDir string, style Style, log zerolog.Logger) (*Renderer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("charts: create output dir: %w", err)
	}
	return &Renderer{
		style:  style,
		outDir: outDir,
		log:    log.With().Str("component", "charts").Logger(),
	}, nil
}

// TrendChart plots the daily sales series with the fitted trend line overlaid.
func (r *Renderer) TrendChart(series []analytics.Point, trend analytics.Trend, filename string) (string, error) {
	p := r.newPlot("Análisis de Tendencia de Ventas", "Fecha", "Ventas ($)")
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	actual, err := plotter.NewLine(timeXYs(series))
	if err != nil {
		return "", fmt.Errorf("charts: trend series: %w", err)
	}
	actual.Width = vg.Points(2)
	actual.Color = r.style.Color(2)

	fitted := make(plotter.XYs, len(series))
	for i, pt := range series {
		fitted[i].X = float64(pt.Date.Unix())
		fitted[i].Y = trend.Slope*float64(i) + trend.Intercept
	}
	trendLine, err := plotter.NewLine(fitted)
	if err != nil {
		return "", fmt.Errorf("charts: trend line: %w", err)
	}
	trendLine.Width = vg.Points(2)
	trendLine.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	trendLine.Color = r.style.Color(0)

	p.Add(actual, trendLine)
	p.Legend.Add("Ventas reales", actual)
	p.Legend.Add("Tendencia", trendLine)
	p.Legend.Top = true

	return r.save(p, r.style.Wide, filename)
}

// ForecastChart plots the observed series followed by the predicted points.
func (r *Renderer) ForecastChart(series []analytics.Point, fc analytics.Forecast, filename string) (string, error) {
	title := fmt.Sprintf("Predicción de Ventas (Próximos %d días)", len(fc.Points))
	p := r.newPlot(title, "Fecha", "Ventas ($)")
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	actual, err := plotter.NewLine(timeXYs(series))
	if err != nil {
		return "", fmt.Errorf("charts: forecast actuals: %w", err)
	}
	actual.Width = vg.Points(2)
	actual.Color = r.style.Color(2)

	predicted := make(plotter.XYs, len(fc.Points))
	for i, pt := range fc.Points {
		predicted[i].X = float64(pt.Date.Unix())
		predicted[i].Y = pt.Value
	}
	predLine, err := plotter.NewLine(predicted)
	if err != nil {
		return "", fmt.Errorf("charts: forecast line: %w", err)
	}
	predLine.Width = vg.Points(2)
	predLine.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	predLine.Color = r.style.Color(0)

	marks, err := plotter.NewScatter(predicted)
	if err != nil {
		return "", fmt.Errorf("charts: forecast markers: %w", err)
	}
	marks.GlyphStyle = draw.GlyphStyle{
		Color:  r.style.Color(0),
		Radius: vg.Points(3),
		Shape:  draw.BoxGlyph{},
	}

	p.Add(actual, predLine, marks)
	p.Legend.Add("Ventas reales", actual)
	p.Legend.Add("Predicciones", predLine)
	p.Legend.Top = true

	return r.save(p, r.style.Wide, filename)
}

// BarChart renders an aggregation as vertical bars in bucket order.
func (r *Renderer) BarChart(agg analytics.Aggregation, title, xLabel, yLabel, filename string) (string, error) {
	p := r.newPlot(title, xLabel, yLabel)

	values := make(plotter.Values, len(agg.Buckets))
	labels := make([]string, len(agg.Buckets))
	for i, b := range agg.Buckets {
		values[i] = b.Value
		labels[i] = b.Key
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return "", fmt.Errorf("charts: bar chart: %w", err)
	}
	bars.Color = r.style.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalX(labels...)

	return r.save(p, r.style.Standard, filename)
}

// BoxPlot renders the distribution of a numeric column, the visual companion
// of the IQR outlier report.
func (r *Renderer) BoxPlot(values []float64, title, yLabel, filename string) (string, error) {
	p := r.newPlot(title, "", yLabel)

	box, err := plotter.NewBoxPlot(vg.Points(60), 0, plotter.Values(values))
	if err != nil {
		return "", fmt.Errorf("charts: box plot: %w", err)
	}
	p.Add(box)
	p.NominalX("ventas")

	return r.save(p, r.style.Standard, filename)
}

// Heatmap renders a correlation matrix with a diverging palette centered on
// zero. NaN cells (zero-variance columns) are drawn as zero.
func (r *Renderer) Heatmap(m analytics.CorrelationMatrix, title, filename string) (string, error) {
	p := r.newPlot(title, "", "")

	grid := matrixGrid{columns: m.Columns, values: m.Values}
	hm := plotter.NewHeatMap(grid, moreland.SmoothBlueRed().Palette(256))
	hm.Min, hm.Max = -1, 1

	p.Add(hm)
	p.NominalX(m.Columns...)
	p.NominalY(m.Columns...)

	return r.save(p, r.style.Standard, filename)
}

func (r *Renderer) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func (r *Renderer) save(p *plot.Plot, size Size, filename string) (string, error) {
	path := filepath.Join(r.outDir, filename)
	if err := p.Save(vg.Length(size.Width)*vg.Inch, vg.Length(size.Height)*vg.Inch, path); err != nil {
		return "", fmt.Errorf("charts: save %s: %w", filename, err)
	}
	r.log.Info().Str("file", path).Msg("chart saved")
	return path, nil
}

func timeXYs(series []analytics.Point) plotter.XYs {
	xys := make(plotter.XYs, len(series))
	for i, pt := range series {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.Value
	}
	return xys
}

// matrixGrid adapts a correlation matrix to plotter.GridXYZ. Row 0 is drawn
// at the bottom.
type matrixGrid struct {
	columns []string
	values  [][]float64
}

func (g matrixGrid) Dims() (int, int) { return len(g.columns), len(g.columns) }
func (g matrixGrid) X(c int) float64  { return float64(c) }
func (g matrixGrid) Y(r int) float64  { return float64(r) }

func (g matrixGrid) Z(c, r int) float64 {
	v := g.values[r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}
