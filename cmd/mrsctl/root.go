package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/motech/mrs/internal/config"
	"github.com/motech/mrs/pkg/database"
	"github.com/motech/mrs/pkg/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mrsctl",
		Short: "Administer the MOTECH MRS service",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
	}

	root.PersistentFlags().String("config", ".", "Directory containing config.toml")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newRoutesCmd(),
	)

	return root
}

// env is the configuration and connection shared by database commands.
type env struct {
	cfg    *config.Config
	db     *sql.DB
	logger *slog.Logger
}

func openEnv(cmd *cobra.Command) (*env, error) {
	dir, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}

	logger := logging.NewWithWriter(&cfg.Logging, cmd.ErrOrStderr())

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.ConnTimeoutDuration())
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		db.Connection().Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &env{cfg: cfg, db: db.Connection(), logger: logger}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}
