package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "horizon",
		Short: "IPO prospectus briefing service",
		Long: `Horizon turns SEC EDGAR IPO filings into structured briefings.

It fetches S-1, F-1, and 424B4 prospectuses, segments them into their
standard sections, extracts verbatim excerpts, and computes linguistic
metrics over conditional versus definitive phrasing.`,
		Version: version,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(filingsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
