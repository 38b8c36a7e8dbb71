package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OatyQuinoa/horizon/internal/analysis"
	"github.com/OatyQuinoa/horizon/internal/config"
	"github.com/OatyQuinoa/horizon/internal/parser"
	"github.com/OatyQuinoa/horizon/internal/render"
)

func analyzeCmd() *cobra.Command {
	var (
		company  string
		formType string
		htmlOut  string
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Build a briefing from a local prospectus file",
		Long: `Analyze reads a prospectus (.htm, .html, .txt, .pdf, or .docx) and
prints the briefing as JSON. With --html, it also writes the standalone
HTML report to the given path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			p, err := parser.ForFile(path, parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext})
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			text, err := p.Parse(f, path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}

			meta := analysis.FilingMeta{
				CompanyName: company,
				FormType:    formType,
			}
			briefing := analysis.BuildBriefing(text, meta, cfg.Thresholds)

			if htmlOut != "" {
				page, err := render.HTML(&briefing)
				if err != nil {
					return fmt.Errorf("render html: %w", err)
				}
				if err := os.WriteFile(htmlOut, []byte(page), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", htmlOut, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", htmlOut)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(briefing)
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "issuer name for the briefing header")
	cmd.Flags().StringVar(&formType, "form", "", "form type (S-1, F-1, 424B4)")
	cmd.Flags().StringVar(&htmlOut, "html", "", "also write the standalone HTML report to this path")
	return cmd
}
