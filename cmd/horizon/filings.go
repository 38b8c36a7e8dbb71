package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OatyQuinoa/horizon/internal/config"
	"github.com/OatyQuinoa/horizon/internal/edgar"
)

func filingsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "filings <cik>",
		Short: "List a company's recent IPO filings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := slog.New(slog.NewTextHandler(io.Discard, nil))
			client := edgar.NewClient(cfg.EdgarUserAgent, cfg.EdgarMinInterval, log)

			name, filings, err := client.IPOFilings(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"company": name, "filings": filings})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", name)
			if len(filings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no IPO filings found")
				return nil
			}
			for _, f := range filings {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s  %s\n", f.FormType, f.FilingDate, f.AccessionNumber)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the filings as JSON")
	return cmd
}
