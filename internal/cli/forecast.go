package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/charts"
	"github.com/mercurytc75/analisis-ventas/internal/report"
	"github.com/mercurytc75/analisis-ventas/pkg/validation"
)

type forecastOptions struct {
	Days  int `validate:"gt=0"`
	Chart bool
}

var forecastOpts forecastOptions

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Proyecta las ventas diarias con la tendencia lineal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("days") {
			forecastOpts.Days = viper.GetInt("horizon")
		}
		if msg := validation.ValidateStruct(forecastOpts); msg != "" {
			return errors.New(msg)
		}
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		daily, err := analytics.DailySales(ds)
		if err != nil {
			return err
		}
		fc, err := analytics.ForecastSales(daily, forecastOpts.Days)
		if err != nil {
			return err
		}
		report.NewConsole(os.Stdout).Forecast(fc)
		if !forecastOpts.Chart {
			return nil
		}
		r, err := charts.NewRenderer(resolvedOutDir(), charts.DefaultStyle(), logger())
		if err != nil {
			return err
		}
		path, err := r.ForecastChart(daily, fc, "prediccion_ventas.png")
		if err != nil {
			return err
		}
		fmt.Printf("Gráfico guardado: %s\n", path)
		return nil
	},
}

func init() {
	forecastCmd.Flags().IntVar(&forecastOpts.Days, "days", 0, "días a predecir (por defecto el valor de configuración)")
	forecastCmd.Flags().BoolVar(&forecastOpts.Chart, "chart", false, "genera el gráfico de predicción")
	rootCmd.AddCommand(forecastCmd)
}
