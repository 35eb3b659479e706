package analytics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Trend describes the ordinary-least-squares line fitted to a daily sales
// series indexed by zero-based day ordinal.
type Trend struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	PValue    float64
	StdErr    float64
	N         int
}

// Classification labels the fitted direction. Stability is exact slope == 0
// equality, preserved from the reference behavior.
func (t Trend) Classification() string {
	switch {
	case t.Slope > 0:
		return "increasing"
	case t.Slope < 0:
		return "decreasing"
	default:
		return "stable"
	}
}

// FitTrend fits y = slope*i + intercept over the date-ascending daily series,
// mapping each distinct date to its ordinal position. It also reports r²,
// the two-sided p-value for the null hypothesis slope == 0, and the standard
// error of the slope estimate.
//
// A constant series yields slope 0, r² 0, p 1 and stderr 0. With exactly two
// points the fit has zero degrees of freedom, so p and stderr are NaN.
func FitTrend(series []Point) (Trend, error) {
	n := len(series)
	if n < 2 {
		return Trend{}, fmt.Errorf("trend: %w: need at least 2 distinct dates, have %d", ErrInsufficientData, n)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range series {
		xs[i] = float64(i)
		ys[i] = p.Value
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Zero variance in y; the flat fit explains nothing.
		r = 0
	}

	t := Trend{Slope: slope, Intercept: intercept, RSquared: r * r, N: n}

	df := float64(n - 2)
	if df <= 0 {
		t.PValue = math.NaN()
		t.StdErr = math.NaN()
		return t, nil
	}

	var sse, sxx float64
	meanX := stat.Mean(xs, nil)
	for i := range xs {
		resid := ys[i] - (slope*xs[i] + intercept)
		sse += resid * resid
		dx := xs[i] - meanX
		sxx += dx * dx
	}
	t.StdErr = math.Sqrt(sse / df / sxx)

	switch {
	case t.StdErr == 0 && slope == 0:
		t.PValue = 1
	case t.StdErr == 0:
		t.PValue = 0
	default:
		dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		t.PValue = 2 * dist.CDF(-math.Abs(slope/t.StdErr))
	}
	return t, nil
}
