package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/charts"
	"github.com/mercurytc75/analisis-ventas/internal/report"
	"github.com/mercurytc75/analisis-ventas/pkg/validation"
)

type outlierOptions struct {
	Column string `validate:"required,oneof=sales_amount quantity"`
	Chart  bool
}

var outlierOpts outlierOptions

var outliersCmd = &cobra.Command{
	Use:   "outliers",
	Short: "Detecta valores atípicos con el método IQR",
	RunE: func(cmd *cobra.Command, args []string) error {
		if msg := validation.ValidateStruct(outlierOpts); msg != "" {
			return errors.New(msg)
		}
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		rep, err := analytics.DetectOutliers(ds, analytics.Measure(outlierOpts.Column))
		if err != nil {
			return err
		}
		report.NewConsole(os.Stdout).Outliers(rep)
		if !outlierOpts.Chart {
			return nil
		}
		r, err := charts.NewRenderer(resolvedOutDir(), charts.DefaultStyle(), logger())
		if err != nil {
			return err
		}
		column := analytics.Measure(outlierOpts.Column)
		values := ds.Sales()
		if column == analytics.MeasureQuantity {
			values = ds.Quantities()
		}
		title, filename := boxPlotSpec(column)
		path, err := r.BoxPlot(values, title, measureLabel(column), filename)
		if err != nil {
			return err
		}
		fmt.Printf("Gráfico guardado: %s\n", path)
		return nil
	},
}

// boxPlotSpec picks the chart title and file name for the selected column.
func boxPlotSpec(m analytics.Measure) (title, filename string) {
	if m == analytics.MeasureQuantity {
		return "Distribución de Cantidades", "outliers_cantidad.png"
	}
	return "Distribución de Ventas", "outliers_ventas.png"
}

func init() {
	outliersCmd.Flags().StringVar(&outlierOpts.Column, "column", "sales_amount", "columna numérica: sales_amount o quantity")
	outliersCmd.Flags().BoolVar(&outlierOpts.Chart, "chart", false, "genera el diagrama de caja")
	rootCmd.AddCommand(outliersCmd)
}
