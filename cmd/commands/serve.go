package commands

import (
	"os/signal"
	"syscall"

	"daysquare/internal/server"
	"daysquare/internal/store"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(false)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := store.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(ctx); err != nil {
				return err
			}

			log.WithField("database", cfg.Database.Type).Info("Service registry ready")
			return server.New(cfg, log, st).Run(ctx)
		},
	}
}

// NewMigrateCmd creates the migrate command
func NewMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the service registry tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(false)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer log.Close()

			ctx := cmd.Context()
			st, err := store.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Migrate(ctx); err != nil {
				return err
			}
			log.WithField("database", cfg.Database.Type).Info("Migration complete")
			return nil
		},
	}
}
