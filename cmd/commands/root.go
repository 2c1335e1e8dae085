package commands

import (
	"fmt"
	"io"
	"os"

	"daysquare/internal/config"
	"daysquare/internal/logger"

	"github.com/spf13/cobra"
)

var (
	// Version will be set during build
	Version = "dev"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "daysquare",
		Short: "Parse and register compact API endpoint descriptions",
		Long: `daysquare parses one-line API endpoint descriptions such as

	https://api.spotify.com|v1/artists/{id,string}?market=string

into base URL, version, path segments and query parameters, and keeps a
registry of services that expose them.
`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(
		NewServeCmd(opts),
		NewMigrateCmd(opts),
		NewParseCmd(opts),
		NewBatchCmd(opts),
		NewOpenAPICmd(opts),
		NewImportCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), Version)
			},
		},
	)

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file. When optional is set and no --config
// flag was given, a missing default file falls back to defaults.
func (o *rootOptions) loadConfig(optional bool) (*config.Config, error) {
	path := o.configPath
	if path == "" && optional {
		if _, err := os.Stat(config.DefaultPath); os.IsNotExist(err) {
			cfg, err := config.FromEnv()
			if err != nil {
				return nil, fmt.Errorf("failed to load configuration: %w", err)
			}
			return o.withOverrides(cfg), nil
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return o.withOverrides(cfg), nil
}

func (o *rootOptions) withOverrides(cfg *config.Config) *config.Config {
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg
}

func newLogger(cfg *config.Config, out io.Writer) (*logger.Logger, error) {
	log, err := logger.NewLoggerWithOutput(cfg.Log, out)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
