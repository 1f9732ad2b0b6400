package commands

import (
	"pricescan/pkg/app"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every saved price",
	RunE: func(c *cobra.Command, args []string) error {
		cfg, err := loadTerminalConfig()
		if err != nil {
			return err
		}

		return app.RunList(c.Context(), cfg, c.OutOrStdout())
	},
}
