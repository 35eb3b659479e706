// Package export persists report bundles as spreadsheet workbooks and CSV
// files. It only consumes engine outputs; no analytics happen here.
package export

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/mercurytc75/analisis-ventas/internal/report"
)

// Sheet names mirror the reference workbook layout.
const (
	SheetRawData     = "Datos_Originales"
	SheetByCategory  = "Resumen_Categoria"
	SheetByRegion    = "Resumen_Region"
	SheetByProduct   = "Resumen_Producto"
	SheetTrend       = "Tendencia"
	SheetOutliers    = "Outliers"
	SheetCorrelation = "Correlaciones"
)

// Exporter writes workbooks into a fixed output directory.
type Exporter struct {
	outDir string
	log    zerolog.Logger
}

// NewExporter binds an exporter to an output directory (created by the
// caller or the chart renderer; SaveAs fails loudly if it is missing).
func NewExporter(outDir string, log zerolog.Logger) *Exporter {
	return &Exporter{outDir: outDir, log: log.With().Str("component", "export").Logger()}
}

// Workbook writes the full report bundle as one xlsx file and returns its
// path.
func (e *Exporter) Workbook(b *report.Bundle, filename string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return "", fmt.Errorf("export: header style: %w", err)
	}

	if err := e.writeRawData(f, b, headerStyle); err != nil {
		return "", err
	}
	for _, s := range []struct {
		sheet  string
		groups []report.GroupSummary
	}{
		{SheetByCategory, b.ByCategory},
		{SheetByRegion, b.ByRegion},
		{SheetByProduct, b.ByProduct},
	} {
		if err := e.writeGroupSummary(f, s.sheet, s.groups, headerStyle); err != nil {
			return "", err
		}
	}
	if err := e.writeTrend(f, b, headerStyle); err != nil {
		return "", err
	}
	if err := e.writeOutliers(f, b, headerStyle); err != nil {
		return "", err
	}
	if err := e.writeCorrelation(f, b, headerStyle); err != nil {
		return "", err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return "", fmt.Errorf("export: drop default sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Creator:     "analisis-ventas",
		Title:       "Reporte de Ventas",
		Identifier:  b.RunID,
		Created:     b.GeneratedAt.Format("2006-01-02T15:04:05Z"),
		Description: fmt.Sprintf("Reporte generado por analisis-ventas (run %s)", b.RunID),
	}); err != nil {
		return "", fmt.Errorf("export: doc props: %w", err)
	}

	path := filepath.Join(e.outDir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("export: save workbook: %w", err)
	}
	e.log.Info().Str("file", path).Str("run_id", b.RunID).Msg("workbook exported")
	return path, nil
}

func (e *Exporter) writeRawData(f *excelize.File, b *report.Bundle, headerStyle int) error {
	if _, err := f.NewSheet(SheetRawData); err != nil {
		return fmt.Errorf("export: sheet %s: %w", SheetRawData, err)
	}
	header := []interface{}{"fecha", "producto", "categoria", "region", "cantidad", "ventas"}
	if err := f.SetSheetRow(SheetRawData, "A1", &header); err != nil {
		return fmt.Errorf("export: %s header: %w", SheetRawData, err)
	}
	for i, row := range b.Data.Rows() {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.Date.Format("2006-01-02"), row.Product, row.Category,
			row.Region, row.Quantity, row.Sales,
		}
		if err := f.SetSheetRow(SheetRawData, cell, &values); err != nil {
			return fmt.Errorf("export: %s row %d: %w", SheetRawData, i, err)
		}
	}
	return e.styleHeader(f, SheetRawData, len(header), headerStyle)
}

func (e *Exporter) writeGroupSummary(f *excelize.File, sheet string, groups []report.GroupSummary, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("export: sheet %s: %w", sheet, err)
	}
	header := []interface{}{"grupo", "ventas_total", "ventas_media", "transacciones", "cantidad_total"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: %s header: %w", sheet, err)
	}
	for i, g := range groups {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{g.Key, round2(g.SalesTotal), round2(g.SalesMean), g.Transactions, g.QuantityTotal}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i, err)
		}
	}
	return e.styleHeader(f, sheet, len(header), headerStyle)
}

func (e *Exporter) writeTrend(f *excelize.File, b *report.Bundle, headerStyle int) error {
	if _, err := f.NewSheet(SheetTrend); err != nil {
		return fmt.Errorf("export: sheet %s: %w", SheetTrend, err)
	}
	rows := [][]interface{}{
		{"métrica", "valor"},
		{"pendiente", b.Trend.Slope},
		{"intercepto", b.Trend.Intercept},
		{"r_cuadrado", b.Trend.RSquared},
		{"valor_p", cellValue(b.Trend.PValue)},
		{"error_estandar", cellValue(b.Trend.StdErr)},
		{"clasificacion", b.Trend.Classification()},
		{},
		{"fecha", "prediccion"},
	}
	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		if err := f.SetSheetRow(SheetTrend, fmt.Sprintf("A%d", i+1), &rows[i]); err != nil {
			return fmt.Errorf("export: %s row %d: %w", SheetTrend, i, err)
		}
	}
	base := len(rows) + 1
	for i, p := range b.Forecast.Points {
		values := []interface{}{p.Date.Format("2006-01-02"), round2(p.Value)}
		if err := f.SetSheetRow(SheetTrend, fmt.Sprintf("A%d", base+i), &values); err != nil {
			return fmt.Errorf("export: %s forecast row %d: %w", SheetTrend, i, err)
		}
	}
	return e.styleHeader(f, SheetTrend, 2, headerStyle)
}

func (e *Exporter) writeOutliers(f *excelize.File, b *report.Bundle, headerStyle int) error {
	if _, err := f.NewSheet(SheetOutliers); err != nil {
		return fmt.Errorf("export: sheet %s: %w", SheetOutliers, err)
	}
	meta := [][]interface{}{
		{"Q1", b.Outliers.Q1},
		{"Q3", b.Outliers.Q3},
		{"IQR", b.Outliers.IQR},
		{"limite_inferior", b.Outliers.Lower},
		{"limite_superior", b.Outliers.Upper},
		{},
		{"fecha", "producto", "region", "ventas"},
	}
	for i := range meta {
		if len(meta[i]) == 0 {
			continue
		}
		if err := f.SetSheetRow(SheetOutliers, fmt.Sprintf("A%d", i+1), &meta[i]); err != nil {
			return fmt.Errorf("export: %s row %d: %w", SheetOutliers, i, err)
		}
	}
	base := len(meta) + 1
	for i, row := range b.Outliers.Rows {
		values := []interface{}{row.Date.Format("2006-01-02"), row.Product, row.Region, row.Sales}
		if err := f.SetSheetRow(SheetOutliers, fmt.Sprintf("A%d", base+i), &values); err != nil {
			return fmt.Errorf("export: %s outlier row %d: %w", SheetOutliers, i, err)
		}
	}
	return e.styleHeader(f, SheetOutliers, 4, headerStyle)
}

func (e *Exporter) writeCorrelation(f *excelize.File, b *report.Bundle, headerStyle int) error {
	if _, err := f.NewSheet(SheetCorrelation); err != nil {
		return fmt.Errorf("export: sheet %s: %w", SheetCorrelation, err)
	}
	header := make([]interface{}, 0, len(b.Correlation.Columns)+1)
	header = append(header, "")
	for _, c := range b.Correlation.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetCorrelation, "A1", &header); err != nil {
		return fmt.Errorf("export: %s header: %w", SheetCorrelation, err)
	}
	for i, col := range b.Correlation.Columns {
		values := make([]interface{}, 0, len(b.Correlation.Columns)+1)
		values = append(values, col)
		for j := range b.Correlation.Columns {
			values = append(values, cellValue(b.Correlation.Values[i][j]))
		}
		if err := f.SetSheetRow(SheetCorrelation, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return fmt.Errorf("export: %s row %d: %w", SheetCorrelation, i, err)
		}
	}
	return e.styleHeader(f, SheetCorrelation, len(b.Correlation.Columns)+1, headerStyle)
}

func (e *Exporter) styleHeader(f *excelize.File, sheet string, cols, style int) error {
	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("export: %s header range: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("export: %s header style: %w", sheet, err)
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return fmt.Errorf("export: %s column name: %w", sheet, err)
	}
	if err := f.SetColWidth(sheet, "A", last, 16); err != nil {
		return fmt.Errorf("export: %s column width: %w", sheet, err)
	}
	return nil
}

// cellValue keeps NaN metrics readable in spreadsheets, which have no NaN
// literal.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) {
		return "NaN"
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
