package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parsa-dev/crm-pro/internal/application/transfer"
	"github.com/parsa-dev/crm-pro/internal/infrastructure/postgres"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Destructively restore a tenant from a snapshot file",
	Long: `Replace a tenant's entire data graph with the contents of a snapshot
file. An existing tenant with the same slug is purged first.

Destructive: requires ALLOW_PROD_IMPORT=true in every environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := transfer.ImportGuard(os.Getenv("ALLOW_PROD_IMPORT")); err != nil {
		return err
	}

	path := "data/crm-snapshot.json"
	if len(args) == 1 {
		path = args[0]
	}

	rt, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	uc := transfer.NewImportUseCase(postgres.NewSnapshotStore(rt.pool), rt.log)
	res, err := uc.RunFile(path)
	if err != nil {
		return err
	}
	rt.log.Info().
		Str("tenant", res.TenantSlug).
		Bool("purged", res.Purged).
		Int("rows_restored", res.RowsRestored).
		Msg("import finished")
	return nil
}
