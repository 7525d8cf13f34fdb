// Command tco compares housing candidates by their commute-weighted total
// cost of ownership from the command line.
package main

import (
	"commute-tco-service/internal/app"
	"commute-tco-service/internal/config"
	"commute-tco-service/internal/platform/logging"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "tco",
	Short:         "Commute-weighted total cost of ownership for housing candidates",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./configs/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log adapter activity to stderr")

	rootCmd.AddCommand(compareCmd, resolveCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildApp loads configuration and wires the engine. Logs stay quiet unless
// --verbose is set so they do not interleave with the table.
func buildApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = logging.New(cfg.Logging.Level, "console"); err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}
	zap.ReplaceGlobals(logger)

	return app.Build(ctx, cfg, logger)
}
