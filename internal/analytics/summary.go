package analytics

import (
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

// Summary is the descriptive overview of the sales column plus quantity
// totals. StdDev is the sample standard deviation and is NaN for a single
// transaction.
type Summary struct {
	Transactions  int
	TotalSales    float64
	MeanSales     float64
	MedianSales   float64
	MaxSales      float64
	MinSales      float64
	StdDevSales   float64
	TotalQuantity float64
	MeanQuantity  float64
}

// Summarize computes the descriptive summary of a dataset.
func Summarize(ds *dataset.Dataset) (Summary, error) {
	if ds == nil || ds.Len() == 0 {
		return Summary{}, fmt.Errorf("summary: %w: empty dataset", ErrInsufficientData)
	}
	sales := ds.Sales()
	qty := ds.Quantities()

	sorted := append([]float64(nil), sales...)
	sort.Float64s(sorted)

	s := Summary{
		Transactions:  ds.Len(),
		MeanSales:     stat.Mean(sales, nil),
		MedianSales:   percentile(sorted, 0.5),
		MinSales:      sorted[0],
		MaxSales:      sorted[len(sorted)-1],
		StdDevSales:   stat.StdDev(sales, nil),
		MeanQuantity:  stat.Mean(qty, nil),
	}
	for i := range sales {
		s.TotalSales += sales[i]
		s.TotalQuantity += qty[i]
	}
	return s, nil
}

// weekdayOrder presents Monday first, matching the reference reports.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// SalesByWeekday totals sales per day of week, Monday-first; absent days are
// omitted.
func SalesByWeekday(ds *dataset.Dataset) (Aggregation, error) {
	agg := Aggregation{GroupBy: GroupWeekday, Measure: MeasureSales, Reduce: ReduceSum}
	if ds == nil || ds.Len() == 0 {
		return agg, fmt.Errorf("seasonality: %w: empty dataset", ErrInsufficientData)
	}
	totals := make(map[time.Weekday]float64)
	seen := make(map[time.Weekday]bool)
	for _, row := range ds.Rows() {
		wd := row.Date.Weekday()
		totals[wd] += row.Sales
		seen[wd] = true
	}
	for _, wd := range weekdayOrder {
		if seen[wd] {
			agg.Buckets = append(agg.Buckets, Bucket{Key: wd.String(), Value: totals[wd]})
		}
	}
	return agg, nil
}

// SalesByMonth totals sales per calendar month (January-first); absent months
// are omitted.
func SalesByMonth(ds *dataset.Dataset) (Aggregation, error) {
	agg := Aggregation{GroupBy: GroupMonth, Measure: MeasureSales, Reduce: ReduceSum}
	if ds == nil || ds.Len() == 0 {
		return agg, fmt.Errorf("seasonality: %w: empty dataset", ErrInsufficientData)
	}
	totals := make(map[time.Month]float64)
	seen := make(map[time.Month]bool)
	for _, row := range ds.Rows() {
		m := row.Date.Month()
		totals[m] += row.Sales
		seen[m] = true
	}
	for m := time.January; m <= time.December; m++ {
		if seen[m] {
			agg.Buckets = append(agg.Buckets, Bucket{Key: m.String(), Value: totals[m]})
		}
	}
	return agg, nil
}

// TopProducts ranks products by total quantity sold, descending, limited to n
// (all products when n <= 0).
func TopProducts(ds *dataset.Dataset, n int) (Aggregation, error) {
	agg, err := Aggregate(ds, GroupProduct, MeasureQuantity, ReduceSum)
	if err != nil {
		return agg, err
	}
	return agg.Head(n), nil
}
