package commands

import (
	"pricescan/pkg/app"
	"pricescan/pkg/config"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web app, its price API and the offline asset cache",
	RunE: func(c *cobra.Command, args []string) error {
		ctx, closer := signalContext()
		defer closer()

		cfg := &config.Server{}
		cfg, err := cfg.LoadConfig(configsDir, "server_app")
		if err != nil {
			return err
		}

		return app.RunServer(ctx, cfg)
	},
}
