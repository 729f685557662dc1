package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-prep/internal/ingestion"
	"github.com/jonathan/interview-prep/internal/observability"
)

type scrapeOptions struct {
	company string
	job     string
	outDir  string
}

func (a *app) scrapeCommand() *cobra.Command {
	var opts scrapeOptions
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Extract text from a company website or job posting",
		Long:  "Fetch a company website or job posting, extract its text and print it. With --out the text and metadata are also written to disk.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runScrape(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.company, "company", "", "Company website URL")
	cmd.Flags().StringVar(&opts.job, "job", "", "Job posting URL")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory for <kind>.txt and <kind>.meta.json")
	cmd.MarkFlagsMutuallyExclusive("company", "job")
	cmd.MarkFlagsOneRequired("company", "job")
	return cmd
}

func (a *app) runScrape(cmd *cobra.Command, opts scrapeOptions) error {
	extractor := newExtractor(a.cfg, a.logger)

	var (
		text  string
		meta  *ingestion.Metadata
		err   error
		title string
	)
	if opts.company != "" {
		title = "COMPANY: " + opts.company
		text, meta, err = extractor.ScrapeCompany(cmd.Context(), opts.company)
	} else {
		title = "JOB POSTING: " + opts.job
		text, meta, err = extractor.ExtractJob(cmd.Context(), opts.job)
	}
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintExtraction(title, text)

	if opts.outDir != "" {
		if err := ingestion.WriteOutput(opts.outDir, string(meta.Kind), text, meta); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s/%s.txt and %s/%s.meta.json\n", opts.outDir, meta.Kind, opts.outDir, meta.Kind)
	}
	return nil
}
