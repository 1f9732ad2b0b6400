package commands

import (
	"os"
	"pricescan/pkg/app"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the price terminal over a keyboard-wedge barcode scanner",
	RunE: func(c *cobra.Command, args []string) error {
		ctx, closer := signalContext()
		defer closer()

		cfg, err := loadTerminalConfig()
		if err != nil {
			return err
		}

		return app.RunTerminal(ctx, cfg, os.Stdin, c.OutOrStdout())
	},
}
