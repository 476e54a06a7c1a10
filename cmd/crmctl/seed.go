package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parsa-dev/crm-pro/internal/application/seed"
	"github.com/parsa-dev/crm-pro/internal/infrastructure/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or repair the demo tenant fixture",
	Long: `Create the demo tenant with its owner user, pipeline, subscription and
sample CRM records. Safe to re-run: existing records are kept, missing
pipeline stages are appended.

Refuses to run with APP_ENV=production unless ALLOW_DEMO_SEED=true.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	if err := seed.Guard(rt.cfg.App.Env, os.Getenv("ALLOW_DEMO_SEED")); err != nil {
		return err
	}

	uc := seed.NewUseCase(
		postgres.NewTenantRepository(rt.pool),
		postgres.NewUserRepository(rt.pool),
		postgres.NewMembershipRepository(rt.pool),
		postgres.NewPipelineRepository(rt.pool),
		postgres.NewSubscriptionRepository(rt.pool),
		postgres.NewCompanyRepository(rt.pool),
		postgres.NewContactRepository(rt.pool),
		postgres.NewDealRepository(rt.pool),
		postgres.NewTaskRepository(rt.pool),
		postgres.NewActivityRepository(rt.pool),
		rt.log,
	)
	return uc.Run()
}
