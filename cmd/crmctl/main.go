// crmctl is the operator CLI for the tenant data lifecycle: demo
// seeding, snapshot export/import, and the deal line item backfill.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/parsa-dev/crm-pro/internal/infrastructure/postgres"
	"github.com/parsa-dev/crm-pro/pkg/config"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "crmctl",
	Short:         "Tenant data lifecycle tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// runtime bundles what every subcommand needs.
type runtime struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

func (r *runtime) close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// setup loads configuration, builds the logger, and opens the pool.
func setup(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	return &runtime{cfg: cfg, log: log, pool: pool}, nil
}

func main() {
	rootCmd.AddCommand(seedCmd, exportCmd, importCmd, backfillCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
