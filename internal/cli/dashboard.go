package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mercurytc75/analisis-ventas/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Menú interactivo de análisis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		d, err := dashboard.New(ds, dashboard.Options{
			Horizon: viper.GetInt("horizon"),
			TopN:    viper.GetInt("top_n"),
			OutDir:  resolvedOutDir(),
		}, os.Stdin, os.Stdout, logger())
		if err != nil {
			return err
		}
		return d.Run()
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
