package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// headerAliases maps legacy Spanish ledger headers onto the canonical schema
// so the original data files load unchanged.
var headerAliases = map[string]string{
	"fecha":     ColDate,
	"producto":  ColProduct,
	"categoria": ColCategory,
	"cantidad":  ColQuantity,
	"ventas":    ColSales,
	"sales":     ColSales,
}

// dateLayouts are tried in order when coercing the date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// Loader reads a delimited sales ledger and enforces the schema contract:
// required columns present, date/quantity/sales coerced, rows with missing
// critical values dropped with a warning, negative amounts flagged but kept.
type Loader struct {
	path string
	log  zerolog.Logger
}

// NewLoader constructs a Loader for the given CSV path.
func NewLoader(path string, log zerolog.Logger) *Loader {
	return &Loader{path: path, log: log.With().Str("component", "loader").Str("path", path).Logger()}
}

// Load reads, validates and coerces the source file into a Dataset.
func (l *Loader) Load() (*Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()
	return l.read(f)
}

func (l *Loader) read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Column: ColDate, Reason: "is required (empty file)"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var (
		rows          []Transaction
		droppedDates  int
		droppedValues int
		negSales      int
		negQuantity   int
		qtyParsed     int
		salesParsed   int
		total         int
	)

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		total++

		qty, qok := parseNumber(field(rec, idx[ColQuantity]))
		if qok {
			qtyParsed++
		}
		sales, sok := parseNumber(field(rec, idx[ColSales]))
		if sok {
			salesParsed++
		}
		date, ok := parseDate(field(rec, idx[ColDate]))
		if !ok {
			droppedDates++
			continue
		}
		if !qok || !sok {
			droppedValues++
			continue
		}
		if sales < 0 {
			negSales++
		}
		if qty < 0 {
			negQuantity++
		}
		rows = append(rows, Transaction{
			Date:     date,
			Product:  field(rec, idx[ColProduct]),
			Category: field(rec, idx[ColCategory]),
			Region:   field(rec, idx[ColRegion]),
			Quantity: qty,
			Sales:    sales,
		})
	}

	// A column that never parses is a schema violation, not row noise.
	if total > 0 && qtyParsed == 0 {
		return nil, &SchemaError{Column: ColQuantity, Reason: "must be numeric"}
	}
	if total > 0 && salesParsed == 0 {
		return nil, &SchemaError{Column: ColSales, Reason: "must be numeric"}
	}

	if droppedDates > 0 {
		l.log.Warn().Int("rows", droppedDates).Msg("dropped rows with unparsable dates")
	}
	if droppedValues > 0 {
		l.log.Warn().Int("rows", droppedValues).Msg("dropped rows with missing critical values")
	}
	if negSales > 0 {
		l.log.Warn().Int("rows", negSales).Msg("negative sales amounts present")
	}
	if negQuantity > 0 {
		l.log.Warn().Int("rows", negQuantity).Msg("negative quantities present")
	}

	ds, err := New(rows)
	if err != nil {
		return nil, err
	}
	l.log.Info().Int("rows", ds.Len()).Int("read", total).Msg("ledger loaded")
	return ds, nil
}

// columnIndex resolves canonical column positions, honoring header aliases.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(RequiredColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := headerAliases[name]; ok {
			name = canonical
		}
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Column: col, Reason: "is required"}
		}
	}
	return idx, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// parseDate truncates to calendar-day precision; grouping and forecasting
// operate on whole days.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
