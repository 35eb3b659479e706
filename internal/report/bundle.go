// Package report assembles engine outputs into presentable bundles and
// renders them on the console. Spreadsheet and chart rendering consume the
// same bundle from their own packages.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

// GroupSummary joins the sum/mean/count reductions of one group, the shape
// the spreadsheet summary sheets are built from.
type GroupSummary struct {
	Key           string
	SalesTotal    float64
	SalesMean     float64
	Transactions  int
	QuantityTotal float64
}

// Bundle is one full report run: every engine executed once against the same
// immutable dataset.
type Bundle struct {
	RunID       string
	GeneratedAt time.Time
	Horizon     int

	Data        *dataset.Dataset
	Summary     analytics.Summary
	Daily       []analytics.Point
	Trend       analytics.Trend
	Forecast    analytics.Forecast
	Outliers    analytics.OutlierReport
	Correlation analytics.CorrelationMatrix

	ByCategory  []GroupSummary
	ByRegion    []GroupSummary
	ByProduct   []GroupSummary
	Weekday     analytics.Aggregation
	Monthly     analytics.Aggregation
	TopProducts analytics.Aggregation
}

// Build runs every engine against the dataset. Any engine failure aborts the
// build; callers wanting report-and-continue semantics invoke engines
// individually (as the dashboard does).
func Build(ds *dataset.Dataset, horizon, topN int) (*Bundle, error) {
	b := &Bundle{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Horizon:     horizon,
		Data:        ds,
	}

	var err error
	if b.Summary, err = analytics.Summarize(ds); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Daily, err = analytics.DailySales(ds); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Trend, err = analytics.FitTrend(b.Daily); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Forecast, err = analytics.ForecastSales(b.Daily, horizon); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Outliers, err = analytics.DetectOutliers(ds, analytics.MeasureSales); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Correlation, err = analytics.Correlate(ds, nil); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.ByCategory, err = groupSummaries(ds, analytics.GroupCategory); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.ByRegion, err = groupSummaries(ds, analytics.GroupRegion); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.ByProduct, err = groupSummaries(ds, analytics.GroupProduct); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Weekday, err = analytics.SalesByWeekday(ds); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.Monthly, err = analytics.SalesByMonth(ds); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	if b.TopProducts, err = analytics.TopProducts(ds, topN); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return b, nil
}

// groupSummaries runs the sum/mean/count reducers for one group key and joins
// them per group, ordered by descending sales total.
func groupSummaries(ds *dataset.Dataset, by analytics.GroupKey) ([]GroupSummary, error) {
	sum, err := analytics.Aggregate(ds, by, analytics.MeasureSales, analytics.ReduceSum)
	if err != nil {
		return nil, err
	}
	mean, err := analytics.Aggregate(ds, by, analytics.MeasureSales, analytics.ReduceMean)
	if err != nil {
		return nil, err
	}
	count, err := analytics.Aggregate(ds, by, analytics.MeasureSales, analytics.ReduceCount)
	if err != nil {
		return nil, err
	}
	qty, err := analytics.Aggregate(ds, by, analytics.MeasureQuantity, analytics.ReduceSum)
	if err != nil {
		return nil, err
	}

	meanOf := bucketIndex(mean)
	countOf := bucketIndex(count)
	qtyOf := bucketIndex(qty)

	out := make([]GroupSummary, 0, len(sum.Buckets))
	for _, b := range sum.Buckets {
		out = append(out, GroupSummary{
			Key:           b.Key,
			SalesTotal:    b.Value,
			SalesMean:     meanOf[b.Key],
			Transactions:  int(countOf[b.Key]),
			QuantityTotal: qtyOf[b.Key],
		})
	}
	return out, nil
}

func bucketIndex(a analytics.Aggregation) map[string]float64 {
	m := make(map[string]float64, len(a.Buckets))
	for _, b := range a.Buckets {
		m[b.Key] = b.Value
	}
	return m
}
