package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"pricescan/pkg/config"
	"syscall"

	"github.com/spf13/cobra"
)

var configsDir string

var rootCmd = &cobra.Command{
	Use:          "pricescan",
	Short:        "Scan barcodes and keep their prices",
	SilenceUsage: true,
	Run:          func(c *cobra.Command, args []string) {},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configsDir, "configs", config.DefaultDir, "directory with the yaml configs")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed: %s\n", err)
		os.Exit(1)
	}
}

// signalContext - context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, closer := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-ch:
			closer()
		case <-ctx.Done():
		}
		signal.Stop(ch)
	}()
	return ctx, closer
}

func loadTerminalConfig() (*config.Terminal, error) {
	cfg := &config.Terminal{}
	return cfg.LoadConfig(configsDir, "terminal_app")
}
