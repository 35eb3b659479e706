package config

// Default knobs for the sales analytics toolkit. Values here are fallbacks;
// the CLI layer can override them via config file, environment, or flags.

const (
	// Analysis
	DefaultForecastHorizon = 5
	DefaultTopProducts     = 5
	DefaultOutlierColumn   = "sales_amount"

	// Output
	DefaultOutputDir    = "analytics-out"
	DefaultWorkbookName = "reporte_ventas.xlsx"
	DefaultCSVName      = "datos_procesados.csv"
)

// EnvPrefix is the prefix for environment variable overrides (e.g. VENTAS_OUTPUT_DIR).
const EnvPrefix = "VENTAS"
