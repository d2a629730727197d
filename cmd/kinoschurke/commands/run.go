package commands

import (
	"log/slog"
	"time"

	"kinoschurke/internal/pipeline"
	"kinoschurke/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(liveCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the full pipeline: scrape, merge, transform, write views.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		t1 := time.Now()
		err := pipeline.Run(cmd.Context(), cfg)
		if err != nil {
			serviceutil.Fatal("pipeline failed", err)
		}
		slog.Info("pipeline time", "seconds", time.Since(t1).Seconds())
	},
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Runs the pipeline against the booking-system API instead of scraping.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		err := pipeline.RunLive(cmd.Context(), cfg)
		if err != nil {
			serviceutil.Fatal("live pipeline failed", err)
		}
	},
}
