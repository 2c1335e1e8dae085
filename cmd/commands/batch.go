package commands

import (
	"fmt"
	"time"

	"daysquare/internal/batch"
	"daysquare/internal/catalog"
	"daysquare/internal/reporter"

	"github.com/spf13/cobra"
)

// NewBatchCmd creates the batch command
func NewBatchCmd(opts *rootOptions) *cobra.Command {
	var (
		outputDir string
		formats   []string
		workers   int
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Parse every line of an endpoint catalog and write a report",
		Long: `Parse every entry of an endpoint catalog concurrently and write a report.

FILE is either a YAML catalog:

	endpoints:
	  - name: artist
	    line: https://api.spotify.com|v1/artists/{id,string}

or a text file with one endpoint line per row (# starts a comment).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(true)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Reporting.OutputDir = outputDir
			}
			if len(formats) > 0 {
				cfg.Reporting.Format = formats
			}
			if workers > 0 {
				cfg.Batch.MaxWorkers = workers
			}

			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Close()

			entries, err := catalog.NewLoader("").Load(args[0])
			if err != nil {
				return err
			}
			log.Infof("Loaded %d endpoint lines", len(entries))

			if timeout <= 0 {
				timeout = time.Duration(cfg.Batch.Timeout) * time.Second
			}
			runner := batch.NewRunner(batch.Config{
				MaxWorkers: cfg.Batch.MaxWorkers,
				Timeout:    timeout,
			}, log)
			results, err := runner.Run(cmd.Context(), entries)
			if err != nil {
				return fmt.Errorf("batch parsing interrupted: %w", err)
			}

			rep := reporter.NewReporter(reporter.ReportingConfig{
				Format:    cfg.Reporting.Format,
				OutputDir: cfg.Reporting.OutputDir,
			})
			report := rep.BuildReport(results)
			paths, err := rep.GenerateReport(results)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Parsed %d/%d endpoint lines\n", report.ParsedLines, report.TotalLines)
			for _, p := range paths {
				fmt.Fprintf(out, "Report written to %s\n", p)
			}
			if report.FailedLines > 0 {
				return fmt.Errorf("%d endpoint lines rejected", report.FailedLines)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for reports (overrides reporting.output_dir)")
	cmd.Flags().StringSliceVar(&formats, "format", nil, "Report formats, json and/or yaml (overrides reporting.format)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Maximum concurrent parsers (overrides batch.max_workers)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Time limit for the whole run (overrides batch.timeout)")
	return cmd
}
