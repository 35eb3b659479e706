package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/dataset"
	"github.com/mercurytc75/analisis-ventas/internal/report"
	"github.com/mercurytc75/analisis-ventas/pkg/validation"
)

type aggregateOptions struct {
	By      string `validate:"required,oneof=category region product date weekday month"`
	Measure string `validate:"required,oneof=sales_amount quantity"`
	Reducer string `validate:"required,oneof=sum mean count"`
	Top     int    `validate:"gte=0"`
}

var aggOpts aggregateOptions

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Agrupa y reduce las ventas por una dimensión",
	RunE: func(cmd *cobra.Command, args []string) error {
		if msg := validation.ValidateStruct(aggOpts); msg != "" {
			return errors.New(msg)
		}
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		agg, err := runAggregate(ds)
		if err != nil {
			return err
		}
		if aggOpts.Top > 0 {
			agg = agg.Head(aggOpts.Top)
		}
		heading := fmt.Sprintf("VENTAS POR %s", aggOpts.By)
		report.NewConsole(os.Stdout).Aggregation(heading, agg)
		return nil
	},
}

// runAggregate dispatches to the right engine for the dimension. The derived
// weekday/month dimensions are fixed sales totals, so they reject any other
// measure or reducer.
func runAggregate(ds *dataset.Dataset) (analytics.Aggregation, error) {
	switch aggOpts.By {
	case string(analytics.GroupWeekday), string(analytics.GroupMonth):
		if aggOpts.Measure != string(analytics.MeasureSales) || aggOpts.Reducer != string(analytics.ReduceSum) {
			return analytics.Aggregation{}, fmt.Errorf(
				"--by %s solo admite --measure sales_amount y --reducer sum", aggOpts.By)
		}
		if aggOpts.By == string(analytics.GroupWeekday) {
			return analytics.SalesByWeekday(ds)
		}
		return analytics.SalesByMonth(ds)
	}
	return analytics.Aggregate(ds,
		analytics.GroupKey(aggOpts.By),
		analytics.Measure(aggOpts.Measure),
		analytics.Reducer(aggOpts.Reducer))
}

func init() {
	aggregateCmd.Flags().StringVar(&aggOpts.By, "by", "category", "dimensión: category, region, product, date, weekday, month")
	aggregateCmd.Flags().StringVar(&aggOpts.Measure, "measure", "sales_amount", "medida: sales_amount o quantity")
	aggregateCmd.Flags().StringVar(&aggOpts.Reducer, "reducer", "sum", "reducción: sum, mean o count")
	aggregateCmd.Flags().IntVar(&aggOpts.Top, "top", 0, "limita la salida a los N grupos con más ventas (0 = todos)")
	rootCmd.AddCommand(aggregateCmd)
}
