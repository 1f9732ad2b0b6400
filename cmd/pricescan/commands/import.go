package commands

import (
	"pricescan/pkg/app"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|dir>...",
	Short: "Import code,price CSV files into the ledger",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		ctx, closer := signalContext()
		defer closer()

		cfg, err := loadTerminalConfig()
		if err != nil {
			return err
		}

		return app.RunImport(ctx, cfg, args)
	},
}
