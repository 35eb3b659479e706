package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/charts"
	"github.com/mercurytc75/analisis-ventas/internal/report"
)

var correlateChart bool

var correlateCmd = &cobra.Command{
	Use:   "correlate",
	Short: "Matriz de correlaciones de Pearson",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		m, err := analytics.Correlate(ds, nil)
		if err != nil {
			return err
		}
		report.NewConsole(os.Stdout).Correlation(m)
		if !correlateChart {
			return nil
		}
		r, err := charts.NewRenderer(resolvedOutDir(), charts.DefaultStyle(), logger())
		if err != nil {
			return err
		}
		path, err := r.Heatmap(m, "Matriz de Correlaciones", "correlaciones.png")
		if err != nil {
			return err
		}
		fmt.Printf("Gráfico guardado: %s\n", path)
		return nil
	},
}

func init() {
	correlateCmd.Flags().BoolVar(&correlateChart, "chart", false, "genera el mapa de calor")
	rootCmd.AddCommand(correlateCmd)
}
