package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/mercurytc75/analisis-ventas/config"
	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/charts"
	"github.com/mercurytc75/analisis-ventas/internal/export"
	"github.com/mercurytc75/analisis-ventas/internal/report"
	"github.com/mercurytc75/analisis-ventas/pkg/validation"
)

type reportOptions struct {
	Days int `validate:"gt=0"`
	Top  int `validate:"gt=0"`
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Ejecuta todos los análisis y exporta gráficos, Excel y CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("days") {
			reportOpts.Days = viper.GetInt("horizon")
		}
		if !cmd.Flags().Changed("top") {
			reportOpts.Top = viper.GetInt("top_n")
		}
		if msg := validation.ValidateStruct(reportOpts); msg != "" {
			return errors.New(msg)
		}

		ds, err := loadDataset()
		if err != nil {
			return err
		}
		b, err := report.Build(ds, reportOpts.Days, reportOpts.Top)
		if err != nil {
			return err
		}

		log := logger()
		renderer, err := charts.NewRenderer(resolvedOutDir(), chartStyle(), log)
		if err != nil {
			return err
		}
		exporter := export.NewExporter(resolvedOutDir(), log)

		// Renders and exports are independent; fan out and fail on the first
		// error.
		var g errgroup.Group
		g.Go(func() error {
			_, err := renderer.TrendChart(b.Daily, b.Trend, "tendencia_ventas.png")
			return err
		})
		g.Go(func() error {
			_, err := renderer.ForecastChart(b.Daily, b.Forecast, "prediccion_ventas.png")
			return err
		})
		g.Go(func() error {
			_, err := renderer.BarChart(b.Weekday, "Ventas por Día de la Semana", "Día", "Ventas ($)", "ventas_dia_semana.png")
			return err
		})
		g.Go(func() error {
			_, err := renderer.BarChart(b.TopProducts, "Productos Más Vendidos", "Producto", measureLabel(b.TopProducts.Measure), "productos_top.png")
			return err
		})
		g.Go(func() error {
			_, err := renderer.BoxPlot(b.Data.Sales(), "Distribución de Ventas", "Ventas ($)", "outliers_ventas.png")
			return err
		})
		g.Go(func() error {
			_, err := renderer.Heatmap(b.Correlation, "Matriz de Correlaciones", "correlaciones.png")
			return err
		})
		g.Go(func() error {
			_, err := exporter.Workbook(b, config.DefaultWorkbookName)
			return err
		})
		g.Go(func() error {
			_, err := exporter.CSV(b.Data, config.DefaultCSVName)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		report.NewConsole(os.Stdout).Full(b)
		fmt.Printf("\nResultados en: %s\n", resolvedOutDir())
		return nil
	},
}

// measureLabel returns the y-axis label for a chart of the given measure.
func measureLabel(m analytics.Measure) string {
	if m == analytics.MeasureQuantity {
		return "Cantidad Vendida"
	}
	return "Ventas ($)"
}

// chartStyle applies an optional palette override from configuration.
func chartStyle() charts.Style {
	style := charts.DefaultStyle()
	if p := viper.GetStringSlice("palette"); len(p) > 0 {
		style.Palette = p
	}
	return style
}

func init() {
	reportCmd.Flags().IntVar(&reportOpts.Days, "days", 0, "días a predecir (por defecto el valor de configuración)")
	reportCmd.Flags().IntVar(&reportOpts.Top, "top", 0, "productos en el ranking (por defecto el valor de configuración)")
	rootCmd.AddCommand(reportCmd)
}
