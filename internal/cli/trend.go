package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/charts"
	"github.com/mercurytc75/analisis-ventas/internal/report"
)

var trendChart bool

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Ajusta una regresión lineal a las ventas diarias",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		daily, err := analytics.DailySales(ds)
		if err != nil {
			return err
		}
		t, err := analytics.FitTrend(daily)
		if err != nil {
			return err
		}
		report.NewConsole(os.Stdout).Trend(t)
		if !trendChart {
			return nil
		}
		r, err := charts.NewRenderer(resolvedOutDir(), charts.DefaultStyle(), logger())
		if err != nil {
			return err
		}
		path, err := r.TrendChart(daily, t, "tendencia_ventas.png")
		if err != nil {
			return err
		}
		fmt.Printf("Gráfico guardado: %s\n", path)
		return nil
	},
}

func init() {
	trendCmd.Flags().BoolVar(&trendChart, "chart", false, "genera el gráfico de tendencia")
	rootCmd.AddCommand(trendCmd)
}
