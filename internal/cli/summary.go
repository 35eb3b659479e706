package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mercurytc75/analisis-ventas/internal/analytics"
	"github.com/mercurytc75/analisis-ventas/internal/report"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Resumen estadístico del libro de ventas",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		s, err := analytics.Summarize(ds)
		if err != nil {
			return err
		}
		report.NewConsole(os.Stdout).Summary(s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
