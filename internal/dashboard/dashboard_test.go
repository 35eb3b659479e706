package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mercurytc75/analisis-ventas/internal/dataset"
)

func dashboardDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-03-01")
	require.NoError(t, err)

	var rows []dataset.Transaction
	for i := 0; i < 10; i++ {
		rows = append(rows, dataset.Transaction{
			Date:     start.AddDate(0, 0, i),
			Product:  []string{"Laptop", "Mouse"}[i%2],
			Category: []string{"Tech", "Accesorios"}[i%2],
			Region:   []string{"Norte", "Sur"}[i%2],
			Quantity: float64(1 + i%4),
			Sales:    150 + 10*float64(i),
		})
	}
	ds, err := dataset.New(rows)
	require.NoError(t, err)
	return ds
}

func runDashboard(t *testing.T, input string, opts Options) string {
	t.Helper()
	if opts.OutDir == "" {
		opts.OutDir = t.TempDir()
	}
	var out bytes.Buffer
	d, err := New(dashboardDataset(t), opts, strings.NewReader(input), &out, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, d.Run())
	return out.String()
}

func TestDashboardSummaryThenExit(t *testing.T) {
	out := runDashboard(t, "1\n0\n", Options{})
	require.Contains(t, out, "RESUMEN ESTADÍSTICO DE VENTAS")
	require.Contains(t, out, "Transacciones:          10")
	require.Contains(t, out, "¡Hasta luego!")
}

func TestDashboardInvalidOptionKeepsRunning(t *testing.T) {
	out := runDashboard(t, "9\n1\n0\n", Options{})
	require.Contains(t, out, "opción no válida")
	require.Contains(t, out, "RESUMEN ESTADÍSTICO DE VENTAS")
}

func TestDashboardFullReport(t *testing.T) {
	out := runDashboard(t, "7\n0\n", Options{Horizon: 3, TopN: 2})
	require.Contains(t, out, "ANÁLISIS DE TENDENCIAS")
	require.Contains(t, out, "PREDICCIÓN DE VENTAS (3 días)")
	require.Contains(t, out, "MATRIZ DE CORRELACIONES")
}

func TestDashboardExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out := runDashboard(t, "8\n0\n", Options{OutDir: dir})
	require.Contains(t, out, "Workbook guardado")

	for _, name := range []string{"reporte_ventas.xlsx", "datos_procesados.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}

func TestDashboardEOFExitsCleanly(t *testing.T) {
	out := runDashboard(t, "", Options{})
	require.Contains(t, out, "Opción: ")
}
