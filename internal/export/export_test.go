package export

import (
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
	"github.com/mercurytc75/analisis-ventas/internal/report"
)

func exportBundle(t *testing.T) *report.Bundle {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)

	var rows []dataset.Transaction
	for i := 0; i < 8; i++ {
		rows = append(rows, dataset.Transaction{
			Date:     start.AddDate(0, 0, i),
			Product:  "Laptop",
			Category: []string{"Tech", "Furniture"}[i%2],
			Region:   []string{"North", "South"}[i%2],
			Quantity: float64(1 + i%3),
			Sales:    200 + 5*float64(i),
		})
	}
	ds, err := dataset.New(rows)
	require.NoError(t, err)

	b, err := report.Build(ds, 3, 5)
	require.NoError(t, err)
	return b
}

func TestWorkbookExport(t *testing.T) {
	b := exportBundle(t)
	dir := t.TempDir()

	path, err := NewExporter(dir, zerolog.Nop()).Workbook(b, "reporte_ventas.xlsx")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	for _, want := range []string{
		SheetRawData, SheetByCategory, SheetByRegion, SheetByProduct,
		SheetTrend, SheetOutliers, SheetCorrelation,
	} {
		require.Contains(t, sheets, want)
	}
	require.NotContains(t, sheets, "Sheet1")

	// Raw data keeps every transaction plus a header row.
	rawRows, err := f.GetRows(SheetRawData)
	require.NoError(t, err)
	require.Len(t, rawRows, b.Data.Len()+1)

	first, err := f.GetCellValue(SheetByCategory, "A2")
	require.NoError(t, err)
	require.Equal(t, b.ByCategory[0].Key, first)

	slopeLabel, err := f.GetCellValue(SheetTrend, "A2")
	require.NoError(t, err)
	require.Equal(t, "pendiente", slopeLabel)

	props, err := f.GetDocProps()
	require.NoError(t, err)
	require.Equal(t, b.RunID, props.Identifier)
}

func TestCSVExportRoundTrips(t *testing.T) {
	b := exportBundle(t)
	dir := t.TempDir()

	path, err := NewExporter(dir, zerolog.Nop()).CSV(b.Data, "datos_procesados.csv")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, b.Data.Len()+1)
	require.Equal(t, dataset.RequiredColumns, records[0])
	require.Equal(t, "2024-01-01", records[1][0])
}
