package commands

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"daysquare/internal/catalog"
	"daysquare/internal/openapi"
	"daysquare/internal/parser"

	"github.com/spf13/cobra"
)

// NewOpenAPICmd creates the openapi command
func NewOpenAPICmd(opts *rootOptions) *cobra.Command {
	var (
		title  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "openapi FILE",
		Short: "Export an endpoint catalog as an OpenAPI document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			entries, err := catalog.NewLoader("").Load(args[0])
			if err != nil {
				return err
			}

			exported := make([]openapi.Entry, 0, len(entries))
			for _, e := range entries {
				desc, err := parser.Parse(e.Line)
				if err != nil {
					return fmt.Errorf("endpoint %s: %w", e.Name, err)
				}
				exported = append(exported, openapi.Entry{Name: e.Name, Descriptor: desc})
			}

			doc, err := openapi.Export(cmd.Context(), title, exported)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, doc)
		},
	}

	cmd.Flags().StringVar(&title, "title", "daysquare catalog", "Document title")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json|yaml)")
	return cmd
}

// NewImportCmd creates the import command
func NewImportCmd(opts *rootOptions) *cobra.Command {
	var (
		save    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "import URL",
		Short: "Convert a remote OpenAPI document into endpoint lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(true)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			doc, err := openapi.Fetch(ctx, &http.Client{}, args[0])
			if err != nil {
				return err
			}

			imported, errs := openapi.Import(doc)
			for _, err := range errs {
				log.WithError(err).Warn("Skipped path")
			}

			entries := make([]catalog.Entry, 0, len(imported))
			out := cmd.OutOrStdout()
			for _, im := range imported {
				line := im.Descriptor.String()
				entries = append(entries, catalog.Entry{Name: im.Name, Line: line})
				if save == "" {
					fmt.Fprintln(out, line)
				}
			}

			if save != "" {
				if err := catalog.NewLoader("").Save(save, entries); err != nil {
					return err
				}
				fmt.Fprintf(out, "Catalog with %d endpoints written to %s\n", len(entries), save)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&save, "save", "", "Write a YAML catalog to this path instead of printing lines")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Fetch timeout")
	return cmd
}
