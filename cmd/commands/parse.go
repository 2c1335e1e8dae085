package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"daysquare/internal/catalog"
	"daysquare/internal/logger"
	"daysquare/internal/parser"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewParseCmd creates the parse command
func NewParseCmd(opts *rootOptions) *cobra.Command {
	var (
		output      string
		catalogFile string
	)

	cmd := &cobra.Command{
		Use:   "parse LINE...",
		Short: "Parse endpoint lines and print their descriptors",
		Long: `Parse endpoint lines and print their descriptors.

With --catalog, the arguments are entry names looked up in that catalog
instead of endpoint lines.`,
		Example: `  daysquare parse 'https://spotify.com|v4/hello-world/{artist,world}?bonvoyage=3&john=3'
  daysquare parse --output yaml 'http://spotify.com|v1/helloworld/myman'
  daysquare parse --catalog endpoints.yaml artist`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			cfg, err := opts.loadConfig(true)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Close()

			lines := args
			if catalogFile != "" {
				lines, err = catalogLines(catalogFile, args)
				if err != nil {
					return err
				}
			}
			return runParse(cmd.OutOrStdout(), log, output, lines)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json|yaml)")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Resolve arguments as entry names in this catalog")
	return cmd
}

func catalogLines(file string, names []string) ([]string, error) {
	loader := catalog.NewLoader("")
	lines := make([]string, 0, len(names))
	for _, name := range names {
		entry, err := loader.Get(file, name)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entry.Line)
	}
	return lines, nil
}

func runParse(out io.Writer, log *logger.Logger, output string, lines []string) error {
	descriptors := make([]*parser.EndpointDescriptor, 0, len(lines))
	failed := 0
	for _, line := range lines {
		desc, err := parser.Parse(line)
		log.LogParse(line, desc, err)
		if err != nil {
			failed++
			continue
		}
		descriptors = append(descriptors, desc)
	}

	if len(descriptors) > 0 {
		var v interface{} = descriptors
		if len(descriptors) == 1 {
			v = descriptors[0]
		}
		if err := encode(out, output, v); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lines rejected", failed, len(lines))
	}
	return nil
}

func checkFormat(format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

func encode(out io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
