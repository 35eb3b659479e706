// Package cli wires the cobra command tree: one subcommand per analysis
// engine plus the full report and the interactive dashboard.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mercurytc75/analisis-ventas/config"
	"github.com/mercurytc75/analisis-ventas/internal/dataset"
	"github.com/mercurytc75/analisis-ventas/pkg/validation"
	"github.com/mercurytc75/analisis-ventas/pkg/version"
)

var (
	cfgFile   string
	dataFile  string
	outputDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:           "ventas",
	Short:         "Analizador estadístico de ventas",
	Long:          "Carga un libro de ventas CSV y calcula resúmenes, tendencias, outliers, predicciones y correlaciones.",
	Version:       version.Version(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command; errors exit non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "ruta al CSV de ventas")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "archivo de configuración (por defecto ./ventas.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "directorio para gráficos y exportaciones")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "logging de depuración")
}

// initConfig layers defaults, an optional config file and VENTAS_* env vars,
// then flags on top.
func initConfig() {
	viper.SetDefault("output_dir", config.DefaultOutputDir)
	viper.SetDefault("horizon", config.DefaultForecastHorizon)
	viper.SetDefault("top_n", config.DefaultTopProducts)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ventas")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		zlog.Debug().Str("file", viper.ConfigFileUsed()).Msg("config file loaded")
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Error: no se pudo leer %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
	if outputDir != "" {
		viper.Set("output_dir", outputDir)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func logger() zerolog.Logger {
	return zlog.With().Str("service", "analisis-ventas").Logger()
}

type loadOptions struct {
	Data string `validate:"required,csvfile"`
}

// loadDataset validates the --data flag and loads the ledger.
func loadDataset() (*dataset.Dataset, error) {
	if msg := validation.ValidateStruct(loadOptions{Data: dataFile}); msg != "" {
		return nil, fmt.Errorf("%s (use --data archivo.csv)", msg)
	}
	return dataset.NewLoader(dataFile, logger()).Load()
}

func resolvedOutDir() string {
	return viper.GetString("output_dir")
}
