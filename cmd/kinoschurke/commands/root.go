package commands

import (
	"context"
	"fmt"
	"os"

	"kinoschurke/internal/pipeline"
	"kinoschurke/lib/configutil"
	"kinoschurke/lib/serviceutil"
	"kinoschurke/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "kinoschurke",
	Short: "kinoschurke scrapes the Tübingen cinema program and publishes JSON views of it.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// every sub-config has working defaults, a missing config file is fine
func readConfig() pipeline.Config {
	cfg, err := configutil.ReadConfig[pipeline.Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}
