// Package analytics implements the statistical engines of the sales toolkit:
// aggregation, linear-trend regression, IQR outlier detection, naive
// forecasting, Pearson correlation, and descriptive summaries. Every engine
// is a pure, synchronous function of an immutable Dataset.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

// GroupKey selects the grouping dimension of an aggregation.
type GroupKey string

const (
	GroupCategory GroupKey = "category"
	GroupRegion   GroupKey = "region"
	GroupProduct  GroupKey = "product"
	GroupDate     GroupKey = "date"

	// Derived groupings produced by the seasonality helpers only; Aggregate
	// itself accepts the four ledger keys above.
	GroupWeekday GroupKey = "weekday"
	GroupMonth   GroupKey = "month"
)

// Measure selects the numeric column being reduced.
type Measure string

const (
	MeasureSales    Measure = "sales_amount"
	MeasureQuantity Measure = "quantity"
)

// Reducer selects the reduction applied per group.
type Reducer string

const (
	ReduceSum   Reducer = "sum"
	ReduceMean  Reducer = "mean"
	ReduceCount Reducer = "count"
)

// Bucket is one group of an aggregation. Date is set for temporal groupings.
type Bucket struct {
	Key   string
	Date  time.Time
	Value float64
}

// Aggregation is an ordered grouped reduction: descending by value for label
// groupings (stable on first-seen key order), chronological for dates.
type Aggregation struct {
	GroupBy GroupKey
	Measure Measure
	Reduce  Reducer
	Buckets []Bucket
}

// Head returns a copy limited to the first n buckets (all when n <= 0 or
// beyond the bucket count).
func (a Aggregation) Head(n int) Aggregation {
	if n <= 0 || n >= len(a.Buckets) {
		return a
	}
	out := a
	out.Buckets = a.Buckets[:n]
	return out
}

// Aggregate groups the dataset by the given key and reduces the measure
// column. Groups with zero matching rows never appear.
func Aggregate(ds *dataset.Dataset, by GroupKey, m Measure, r Reducer) (Aggregation, error) {
	agg := Aggregation{GroupBy: by, Measure: m, Reduce: r}
	if ds == nil || ds.Len() == 0 {
		return agg, fmt.Errorf("aggregate: %w: empty dataset", ErrInsufficientData)
	}
	keyOf, err := keyFunc(by)
	if err != nil {
		return agg, err
	}
	valueOf, err := measureFunc(m)
	if err != nil {
		return agg, err
	}
	if r != ReduceSum && r != ReduceMean && r != ReduceCount {
		return agg, fmt.Errorf("aggregate: %w: unknown reducer %q", ErrInvalidArgument, r)
	}

	type acc struct {
		sum   float64
		count int
		date  time.Time
	}
	order := make([]string, 0)
	groups := make(map[string]*acc)
	for _, row := range ds.Rows() {
		k := keyOf(row)
		g, ok := groups[k]
		if !ok {
			g = &acc{date: row.Date}
			groups[k] = g
			order = append(order, k)
		}
		g.sum += valueOf(row)
		g.count++
	}

	buckets := make([]Bucket, 0, len(order))
	for _, k := range order {
		g := groups[k]
		b := Bucket{Key: k}
		if by == GroupDate {
			b.Date = g.date
		}
		switch r {
		case ReduceSum:
			b.Value = g.sum
		case ReduceMean:
			b.Value = g.sum / float64(g.count)
		case ReduceCount:
			b.Value = float64(g.count)
		}
		buckets = append(buckets, b)
	}

	if by == GroupDate {
		sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Date.Before(buckets[j].Date) })
	} else {
		sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Value > buckets[j].Value })
	}
	agg.Buckets = buckets
	return agg, nil
}

// Point is one step of the daily sales series consumed by the trend and
// forecast engines.
type Point struct {
	Date  time.Time
	Value float64
}

// DailySales aggregates total sales per distinct date, ascending. Calendar
// gaps are not filled; each recorded date is one unit step.
func DailySales(ds *dataset.Dataset) ([]Point, error) {
	agg, err := Aggregate(ds, GroupDate, MeasureSales, ReduceSum)
	if err != nil {
		return nil, err
	}
	series := make([]Point, len(agg.Buckets))
	for i, b := range agg.Buckets {
		series[i] = Point{Date: b.Date, Value: b.Value}
	}
	return series, nil
}

func keyFunc(by GroupKey) (func(dataset.Transaction) string, error) {
	switch by {
	case GroupCategory:
		return func(t dataset.Transaction) string { return t.Category }, nil
	case GroupRegion:
		return func(t dataset.Transaction) string { return t.Region }, nil
	case GroupProduct:
		return func(t dataset.Transaction) string { return t.Product }, nil
	case GroupDate:
		return func(t dataset.Transaction) string { return t.Date.Format("2006-01-02") }, nil
	default:
		return nil, fmt.Errorf("aggregate: %w: unknown group key %q", ErrInvalidArgument, by)
	}
}

func measureFunc(m Measure) (func(dataset.Transaction) float64, error) {
	switch m {
	case MeasureSales:
		return func(t dataset.Transaction) float64 { return t.Sales }, nil
	case MeasureQuantity:
		return func(t dataset.Transaction) float64 { return t.Quantity }, nil
	default:
		return nil, fmt.Errorf("aggregate: %w: unknown measure %q", ErrInvalidArgument, m)
	}
}
