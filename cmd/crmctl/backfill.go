package main

import (
	"github.com/spf13/cobra"

	"github.com/parsa-dev/crm-pro/internal/application/backfill"
	"github.com/parsa-dev/crm-pro/internal/infrastructure/postgres"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill-deal-items [tenant-slug]",
	Short: "Generate line items for deals that have none",
	Long: `Give every empty deal of a tenant three synthetic line items priced
from the tenant's product catalog, and recompute the deal totals. Deals
that already have items are left untouched. Each deal commits in its own
transaction, so a re-run after a failure picks up where it stopped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackfill,
}

func runBackfill(cmd *cobra.Command, args []string) error {
	slug := "demo"
	if len(args) == 1 {
		slug = args[0]
	}

	ctx := cmd.Context()
	rt, err := setup(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	uc := backfill.NewUseCase(
		postgres.NewTenantRepository(rt.pool),
		postgres.NewDealRepository(rt.pool),
		postgres.NewAuditLogRepository(rt.pool),
		postgres.NewTxRunner(rt.pool),
		rt.log,
	)
	res, err := uc.Run(ctx, slug)
	if err != nil {
		return err
	}
	rt.log.Info().
		Str("tenant", slug).
		Int("deals_updated", res.DealsUpdated).
		Int("lines_inserted", res.LinesInserted).
		Msg("backfill finished")
	return nil
}
