package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

// OutlierReport carries the IQR fences of a numeric column plus every row
// falling strictly outside them, in original dataset order.
type OutlierReport struct {
	Column Measure
	Q1     float64
	Q3     float64
	IQR    float64
	Lower  float64
	Upper  float64
	Rows   []dataset.Transaction
}

// DetectOutliers computes Q1/Q3 with linear interpolation between order
// statistics, fences at 1.5*IQR, and partitions rows by strict comparison
// (boundary values are inliers).
//
// When the column is constant IQR == 0 and both fences collapse onto Q1, so
// any differing value is flagged. That boundary behavior is intentional.
func DetectOutliers(ds *dataset.Dataset, column Measure) (OutlierReport, error) {
	rep := OutlierReport{Column: column}
	if ds == nil || ds.Len() == 0 {
		return rep, fmt.Errorf("outliers: %w: empty dataset", ErrInsufficientData)
	}
	valueOf, err := measureFunc(column)
	if err != nil {
		return rep, fmt.Errorf("outliers: %w: unknown column %q", ErrInvalidArgument, column)
	}

	values := make([]float64, 0, ds.Len())
	for _, row := range ds.Rows() {
		values = append(values, valueOf(row))
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	rep.Q1 = percentile(sorted, 0.25)
	rep.Q3 = percentile(sorted, 0.75)
	rep.IQR = rep.Q3 - rep.Q1
	rep.Lower = rep.Q1 - 1.5*rep.IQR
	rep.Upper = rep.Q3 + 1.5*rep.IQR

	for _, row := range ds.Rows() {
		v := valueOf(row)
		if v < rep.Lower || v > rep.Upper {
			rep.Rows = append(rep.Rows, row)
		}
	}
	return rep, nil
}

// percentile interpolates linearly between order statistics of an ascending
// slice (h = (n-1)*p), the pandas/numpy default definition.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
