package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

// CSV writes the validated dataset back out with canonical headers and
// returns the file path.
func (e *Exporter) CSV(ds *dataset.Dataset, filename string) (string, error) {
	path := filepath.Join(e.outDir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dataset.RequiredColumns); err != nil {
		return "", fmt.Errorf("export: csv header: %w", err)
	}
	for _, row := range ds.Rows() {
		record := []string{
			row.Date.Format("2006-01-02"),
			row.Product,
			row.Category,
			strconv.FormatFloat(row.Quantity, 'f', -1, 64),
			strconv.FormatFloat(row.Sales, 'f', -1, 64),
			row.Region,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("export: csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("export: flush csv: %w", err)
	}
	e.log.Info().Str("file", path).Int("rows", ds.Len()).Msg("csv exported")
	return path, nil
}
