package main

import (
	"github.com/spf13/cobra"

	"github.com/parsa-dev/crm-pro/internal/application/transfer"
	"github.com/parsa-dev/crm-pro/internal/infrastructure/postgres"
)

var (
	exportTenant          string
	exportOut             string
	exportIncludeSessions bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a tenant snapshot to a JSON file",
	Long: `Export one tenant's complete data graph (or every tenant's) to a
snapshot file. The file is the input of the import command.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportTenant, "tenant", "", "tenant slug to export (empty = all tenants)")
	exportCmd.Flags().StringVar(&exportOut, "out", "data/crm-snapshot.json", "output file path")
	exportCmd.Flags().BoolVar(&exportIncludeSessions, "include-sessions", false, "include session rows in the snapshot")
}

func runExport(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	uc := transfer.NewExportUseCase(postgres.NewSnapshotStore(rt.pool), rt.log)
	_, err = uc.ExportToFile(transfer.ExportOptions{
		TenantSlug:      exportTenant,
		IncludeSessions: exportIncludeSessions,
	}, exportOut)
	return err
}
