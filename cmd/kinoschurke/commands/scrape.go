package commands

import (
	"log/slog"
	"time"

	"kinoschurke/internal/pipeline"
	"kinoschurke/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(transformCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrapes all three sources, merges them and writes the source data file.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		t1 := time.Now()
		err := pipeline.Scrape(cmd.Context(), cfg)
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())
	},
}

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Rebuilds the JSON views from previously scraped source data.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		err := pipeline.Transform(cmd.Context(), cfg)
		if err != nil {
			serviceutil.Fatal("transform failed", err)
		}
	},
}
