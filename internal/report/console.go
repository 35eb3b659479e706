package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
)

// Console renders engine outputs as readable terminal reports.
type Console struct {
	out     io.Writer
	heading *color.Color
	accent  *color.Color
}

// NewConsole builds a presenter writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		accent:  color.New(color.FgGreen),
	}
}

// FormatCurrency renders a value as dollars with thousands separators,
// e.g. $1,234.56 (negatives as $-1,234.56, matching the reference reports).
func FormatCurrency(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return "$" + sign + sb.String() + "." + parts[1]
}

func (c *Console) title(text string) {
	fmt.Fprintln(c.out)
	c.heading.Fprintln(c.out, strings.Repeat("=", 50))
	c.heading.Fprintln(c.out, text)
	c.heading.Fprintln(c.out, strings.Repeat("=", 50))
}

// Summary prints the descriptive overview.
func (c *Console) Summary(s analytics.Summary) {
	c.title("RESUMEN ESTADÍSTICO DE VENTAS")
	fmt.Fprintf(c.out, "Total de ventas:        %s\n", FormatCurrency(s.TotalSales))
	fmt.Fprintf(c.out, "Promedio por venta:     %s\n", FormatCurrency(s.MeanSales))
	fmt.Fprintf(c.out, "Mediana de ventas:      %s\n", FormatCurrency(s.MedianSales))
	fmt.Fprintf(c.out, "Venta máxima:           %s\n", FormatCurrency(s.MaxSales))
	fmt.Fprintf(c.out, "Venta mínima:           %s\n", FormatCurrency(s.MinSales))
	if !math.IsNaN(s.StdDevSales) {
		fmt.Fprintf(c.out, "Desviación estándar:    %s\n", FormatCurrency(s.StdDevSales))
	}
	fmt.Fprintf(c.out, "Unidades vendidas:      %.0f\n", s.TotalQuantity)
	fmt.Fprintf(c.out, "Transacciones:          %d\n", s.Transactions)
}

// Aggregation prints a grouped reduction as a two-column table. Sales
// measures are formatted as currency.
func (c *Console) Aggregation(heading string, agg analytics.Aggregation) {
	c.title(heading)
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{string(agg.GroupBy), string(agg.Reduce) + " " + string(agg.Measure)})
	table.SetAutoFormatHeaders(false)
	for _, b := range agg.Buckets {
		table.Append([]string{b.Key, c.measureCell(agg, b.Value)})
	}
	table.Render()
}

func (c *Console) measureCell(agg analytics.Aggregation, v float64) string {
	if agg.Measure == analytics.MeasureSales && agg.Reduce != analytics.ReduceCount {
		return FormatCurrency(v)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Trend prints the regression metrics and direction.
func (c *Console) Trend(t analytics.Trend) {
	c.title("ANÁLISIS DE TENDENCIAS")
	fmt.Fprintf(c.out, "Pendiente:       %.4f\n", t.Slope)
	fmt.Fprintf(c.out, "Intercepto:      %.4f\n", t.Intercept)
	fmt.Fprintf(c.out, "R²:              %.4f\n", t.RSquared)
	fmt.Fprintf(c.out, "Valor p:         %.6f\n", t.PValue)
	fmt.Fprintf(c.out, "Error estándar:  %.4f\n", t.StdErr)
	c.accent.Fprintf(c.out, "Tendencia: %s\n", trendLabel(t))
}

func trendLabel(t analytics.Trend) string {
	switch t.Classification() {
	case "increasing":
		return "creciente 📈"
	case "decreasing":
		return "decreciente 📉"
	default:
		return "estable ➡️"
	}
}

// Outliers prints the IQR fences and every flagged row.
func (c *Console) Outliers(rep analytics.OutlierReport) {
	c.title("DETECCIÓN DE OUTLIERS")
	fmt.Fprintf(c.out, "Q1: %.2f  Q3: %.2f  IQR: %.2f\n", rep.Q1, rep.Q3, rep.IQR)
	fmt.Fprintf(c.out, "Límites: [%.2f, %.2f]\n", rep.Lower, rep.Upper)
	if len(rep.Rows) == 0 {
		c.accent.Fprintln(c.out, "Sin outliers detectados")
		return
	}
	fmt.Fprintf(c.out, "Outliers detectados: %d\n", len(rep.Rows))

	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Fecha", "Producto", "Región", "Ventas"})
	table.SetAutoFormatHeaders(false)
	for _, row := range rep.Rows {
		table.Append([]string{
			row.Date.Format("2006-01-02"),
			row.Product,
			row.Region,
			FormatCurrency(row.Sales),
		})
	}
	table.Render()
}

// Forecast prints predicted values per future date.
func (c *Console) Forecast(fc analytics.Forecast) {
	c.title(fmt.Sprintf("PREDICCIÓN DE VENTAS (%d días)", len(fc.Points)))
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Fecha", "Predicción"})
	table.SetAutoFormatHeaders(false)
	for _, p := range fc.Points {
		table.Append([]string{p.Date.Format("2006-01-02"), FormatCurrency(p.Value)})
	}
	table.Render()
	c.accent.Fprintf(c.out, "Tendencia base: %s\n", trendLabel(fc.Trend))
}

// Correlation prints the Pearson matrix plus the categorical encodings used.
func (c *Console) Correlation(m analytics.CorrelationMatrix) {
	c.title("MATRIZ DE CORRELACIONES")
	table := tablewriter.NewWriter(c.out)
	table.SetHeader(append([]string{""}, m.Columns...))
	table.SetAutoFormatHeaders(false)
	for i, col := range m.Columns {
		row := []string{col}
		for j := range m.Columns {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				row = append(row, "NaN")
			} else {
				row = append(row, strconv.FormatFloat(v, 'f', 3, 64))
			}
		}
		table.Append(row)
	}
	table.Render()

	for _, col := range m.Columns {
		if labels, ok := m.Encodings[col]; ok {
			fmt.Fprintf(c.out, "%s: %s\n", col, strings.Join(labels, ", "))
		}
	}
}

// Full prints the complete bundle in reference-report order.
func (c *Console) Full(b *Bundle) {
	c.Summary(b.Summary)
	c.Aggregation("VENTAS POR CATEGORÍA", groupSummaryAggregation(b.ByCategory, analytics.GroupCategory))
	c.Aggregation("VENTAS POR REGIÓN", groupSummaryAggregation(b.ByRegion, analytics.GroupRegion))
	c.Aggregation("PRODUCTOS MÁS VENDIDOS", b.TopProducts)
	c.Trend(b.Trend)
	c.Outliers(b.Outliers)
	c.Forecast(b.Forecast)
	c.Correlation(b.Correlation)
}

func groupSummaryAggregation(groups []GroupSummary, by analytics.GroupKey) analytics.Aggregation {
	agg := analytics.Aggregation{GroupBy: by, Measure: analytics.MeasureSales, Reduce: analytics.ReduceSum}
	for _, g := range groups {
		agg.Buckets = append(agg.Buckets, analytics.Bucket{Key: g.Key, Value: g.SalesTotal})
	}
	return agg
}
