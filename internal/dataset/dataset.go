// Package dataset defines the validated in-memory sales ledger consumed by
// the analytics engines. A Dataset is built once by the Loader and treated as
// immutable afterwards; engines only read from it.
package dataset

import (
	"fmt"
	"time"
)

// Canonical column names of the sales ledger schema.
const (
	ColDate     = "date"
	ColProduct  = "product"
	ColCategory = "category"
	ColQuantity = "quantity"
	ColSales    = "sales_amount"
	ColRegion   = "region"
)

// RequiredColumns lists every column a source file must provide.
var RequiredColumns = []string{ColDate, ColProduct, ColCategory, ColQuantity, ColSales, ColRegion}

// Transaction is one retained sales record. Date, Quantity and Sales are
// guaranteed non-null by the Loader; the string fields may be arbitrary.
type Transaction struct {
	Date     time.Time
	Product  string
	Category string
	Region   string
	Quantity float64
	Sales    float64
}

// Dataset is an ordered, non-empty collection of transactions sharing the
// ledger schema.
type Dataset struct {
	rows []Transaction
}

// ErrNoRows reports that no valid transactions survived loading/validation.
var ErrNoRows = fmt.Errorf("dataset: no valid rows")

// New wraps validated rows into a Dataset. It rejects an empty slice so that
// the non-empty invariant holds for every engine downstream.
func New(rows []Transaction) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return &Dataset{rows: rows}, nil
}

// Len returns the number of transactions.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns the transactions in load order. Callers must not mutate the
// returned slice.
func (d *Dataset) Rows() []Transaction { return d.rows }

// Sales returns the sales_amount column in row order.
func (d *Dataset) Sales() []float64 {
	out := make([]float64, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Sales
	}
	return out
}

// Quantities returns the quantity column in row order.
func (d *Dataset) Quantities() []float64 {
	out := make([]float64, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Quantity
	}
	return out
}

// SchemaError reports a violation of the required-column contract.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: column %q %s", e.Column, e.Reason)
}
