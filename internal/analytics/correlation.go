package analytics

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

// Correlatable column names. The *_code columns are integer encodings of the
// categorical ledger columns.
const (
	CorrSales        = "sales_amount"
	CorrQuantity     = "quantity"
	CorrCategoryCode = "category_code"
	CorrRegionCode   = "region_code"
)

// DefaultCorrelationColumns is the column set of the standard correlation
// report.
var DefaultCorrelationColumns = []string{CorrSales, CorrQuantity, CorrCategoryCode, CorrRegionCode}

// CorrelationMatrix is a square symmetric Pearson matrix indexed by the
// requested column names. Encodings records, per encoded column, the labels
// in code order (code i == Encodings[col][i]) so results stay reproducible
// and explainable.
type CorrelationMatrix struct {
	Columns   []string
	Values    [][]float64
	Encodings map[string][]string
}

// At returns the coefficient for a column pair by name.
func (m CorrelationMatrix) At(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, c := range m.Columns {
		if c == a {
			ia = i
		}
		if c == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return m.Values[ia][ib], true
}

// Correlate computes pairwise Pearson correlation over the requested columns,
// integer-encoding the categorical ones by first-appearance order. The
// diagonal is pinned to 1; a zero-variance column yields NaN for its
// off-diagonal cells rather than an error.
func Correlate(ds *dataset.Dataset, columns []string) (CorrelationMatrix, error) {
	if ds == nil || ds.Len() < 2 {
		return CorrelationMatrix{}, fmt.Errorf("correlation: %w: need at least 2 rows", ErrInsufficientData)
	}
	if len(columns) == 0 {
		columns = DefaultCorrelationColumns
	}

	m := CorrelationMatrix{
		Columns:   append([]string(nil), columns...),
		Encodings: make(map[string][]string),
	}

	vectors := make([][]float64, len(columns))
	for i, col := range columns {
		vec, labels, err := columnVector(ds, col)
		if err != nil {
			return CorrelationMatrix{}, err
		}
		vectors[i] = vec
		if labels != nil {
			m.Encodings[col] = labels
		}
	}

	k := len(columns)
	m.Values = make([][]float64, k)
	for i := range m.Values {
		m.Values[i] = make([]float64, k)
		m.Values[i][i] = 1
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			// gonum yields NaN when either column has zero variance.
			r := stat.Correlation(vectors[i], vectors[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// columnVector materializes a correlatable column, returning the label table
// when the column is an encoding of a categorical field.
func columnVector(ds *dataset.Dataset, col string) ([]float64, []string, error) {
	rows := ds.Rows()
	switch col {
	case CorrSales:
		return ds.Sales(), nil, nil
	case CorrQuantity:
		return ds.Quantities(), nil, nil
	case CorrCategoryCode:
		vec, labels := encodeCategorical(rows, func(t dataset.Transaction) string { return t.Category })
		return vec, labels, nil
	case CorrRegionCode:
		vec, labels := encodeCategorical(rows, func(t dataset.Transaction) string { return t.Region })
		return vec, labels, nil
	default:
		return nil, nil, fmt.Errorf("correlation: %w: unknown column %q", ErrInvalidArgument, col)
	}
}

// encodeCategorical assigns integer codes by first appearance in row order.
func encodeCategorical(rows []dataset.Transaction, value func(dataset.Transaction) string) ([]float64, []string) {
	codes := make(map[string]int)
	labels := make([]string, 0)
	vec := make([]float64, len(rows))
	for i, row := range rows {
		v := value(row)
		code, ok := codes[v]
		if !ok {
			code = len(labels)
			codes[v] = code
			labels = append(labels, v)
		}
		vec[i] = float64(code)
	}
	return vec, labels
}
