// Package dashboard provides the interactive terminal menu. Each option runs
// one engine against the loaded dataset; engine failures are reported and the
// loop continues.
package dashboard

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/mercurytc75/analisis-ventas/config"
	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/charts"
	"github.com/mercurytc75/analisis-ventas/internal/dataset"
	"github.com/mercurytc75/analisis-ventas/internal/export"
	"github.com/mercurytc75/analisis-ventas/internal/report"
)

// Options tunes forecast horizon, ranking size and export destination.
type Options struct {
	Horizon int
	TopN    int
	OutDir  string
}

// Dashboard drives the menu loop over one immutable dataset.
type Dashboard struct {
	data     *dataset.Dataset
	opts     Options
	console  *report.Console
	renderer *charts.Renderer
	exporter *export.Exporter
	in       io.Reader
	out      io.Writer
	errColor *color.Color
	log      zerolog.Logger
}

// New wires a dashboard over the dataset, reading menu choices from in and
// writing reports to out.
func New(ds *dataset.Dataset, opts Options, in io.Reader, out io.Writer, log zerolog.Logger) (*Dashboard, error) {
	if opts.Horizon <= 0 {
		opts.Horizon = config.DefaultForecastHorizon
	}
	if opts.TopN <= 0 {
		opts.TopN = config.DefaultTopProducts
	}
	if opts.OutDir == "" {
		opts.OutDir = config.DefaultOutputDir
	}
	renderer, err := charts.NewRenderer(opts.OutDir, charts.DefaultStyle(), log)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		data:     ds,
		opts:     opts,
		console:  report.NewConsole(out),
		renderer: renderer,
		exporter: export.NewExporter(opts.OutDir, log),
		in:       in,
		out:      out,
		errColor: color.New(color.FgRed),
		log:      log.With().Str("component", "dashboard").Logger(),
	}, nil
}

// Run loops until the user picks exit or input ends.
func (d *Dashboard) Run() error {
	scanner := bufio.NewScanner(d.in)
	for {
		d.menu()
		if !scanner.Scan() {
			return scanner.Err()
		}
		choice := strings.TrimSpace(scanner.Text())
		if choice == "0" {
			fmt.Fprintln(d.out, "¡Hasta luego!")
			return nil
		}
		if err := d.dispatch(choice); err != nil {
			d.errColor.Fprintf(d.out, "Error: %v\n", err)
			d.log.Warn().Err(err).Str("choice", choice).Msg("menu option failed")
		}
	}
}

func (d *Dashboard) menu() {
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "=== ANÁLISIS DE VENTAS ===")
	fmt.Fprintln(d.out, "1. Resumen estadístico")
	fmt.Fprintln(d.out, "2. Análisis de tendencia")
	fmt.Fprintln(d.out, "3. Estacionalidad")
	fmt.Fprintln(d.out, "4. Matriz de correlaciones")
	fmt.Fprintln(d.out, "5. Detección de outliers")
	fmt.Fprintln(d.out, "6. Predicción de ventas")
	fmt.Fprintln(d.out, "7. Reporte completo")
	fmt.Fprintln(d.out, "8. Exportar resultados")
	fmt.Fprintln(d.out, "0. Salir")
	fmt.Fprint(d.out, "Opción: ")
}

func (d *Dashboard) dispatch(choice string) error {
	switch choice {
	case "1":
		return d.summary()
	case "2":
		return d.trend()
	case "3":
		return d.seasonality()
	case "4":
		return d.correlations()
	case "5":
		return d.outliers()
	case "6":
		return d.forecast()
	case "7":
		return d.fullReport()
	case "8":
		return d.export()
	default:
		return fmt.Errorf("opción no válida: %q", choice)
	}
}

func (d *Dashboard) summary() error {
	s, err := analytics.Summarize(d.data)
	if err != nil {
		return err
	}
	d.console.Summary(s)
	return nil
}

func (d *Dashboard) trend() error {
	daily, err := analytics.DailySales(d.data)
	if err != nil {
		return err
	}
	t, err := analytics.FitTrend(daily)
	if err != nil {
		return err
	}
	d.console.Trend(t)
	path, err := d.renderer.TrendChart(daily, t, "tendencia_ventas.png")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Gráfico guardado: %s\n", path)
	return nil
}

func (d *Dashboard) seasonality() error {
	weekday, err := analytics.SalesByWeekday(d.data)
	if err != nil {
		return err
	}
	monthly, err := analytics.SalesByMonth(d.data)
	if err != nil {
		return err
	}
	d.console.Aggregation("VENTAS POR DÍA DE LA SEMANA", weekday)
	d.console.Aggregation("VENTAS POR MES", monthly)
	path, err := d.renderer.BarChart(weekday, "Ventas por Día de la Semana", "Día", "Ventas ($)", "ventas_dia_semana.png")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Gráfico guardado: %s\n", path)
	return nil
}

func (d *Dashboard) correlations() error {
	m, err := analytics.Correlate(d.data, nil)
	if err != nil {
		return err
	}
	d.console.Correlation(m)
	path, err := d.renderer.Heatmap(m, "Matriz de Correlaciones", "correlaciones.png")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Gráfico guardado: %s\n", path)
	return nil
}

func (d *Dashboard) outliers() error {
	rep, err := analytics.DetectOutliers(d.data, analytics.MeasureSales)
	if err != nil {
		return err
	}
	d.console.Outliers(rep)
	path, err := d.renderer.BoxPlot(d.data.Sales(), "Distribución de Ventas", "Ventas ($)", "outliers_ventas.png")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Gráfico guardado: %s\n", path)
	return nil
}

func (d *Dashboard) forecast() error {
	daily, err := analytics.DailySales(d.data)
	if err != nil {
		return err
	}
	fc, err := analytics.ForecastSales(daily, d.opts.Horizon)
	if err != nil {
		return err
	}
	d.console.Forecast(fc)
	path, err := d.renderer.ForecastChart(daily, fc, "prediccion_ventas.png")
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Gráfico guardado: %s\n", path)
	return nil
}

func (d *Dashboard) fullReport() error {
	b, err := report.Build(d.data, d.opts.Horizon, d.opts.TopN)
	if err != nil {
		return err
	}
	d.console.Full(b)
	return nil
}

func (d *Dashboard) export() error {
	b, err := report.Build(d.data, d.opts.Horizon, d.opts.TopN)
	if err != nil {
		return err
	}
	wb, err := d.exporter.Workbook(b, config.DefaultWorkbookName)
	if err != nil {
		return err
	}
	csvPath, err := d.exporter.CSV(b.Data, config.DefaultCSVName)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "Workbook guardado: %s\n", wb)
	fmt.Fprintf(d.out, "CSV guardado: %s\n", csvPath)
	return nil
}
