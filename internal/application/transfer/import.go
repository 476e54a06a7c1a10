package transfer

import (
	"fmt"
	"os"

	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/snapshot"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

// ImportGuard refuses a restore unless ALLOW_PROD_IMPORT is exactly
// "true". The import is destructive, so the guard is stricter than the
// seeder's: there is no environment in which it runs implicitly.
func ImportGuard(allowProdImport string) error {
	if allowProdImport != "true" {
		return fmt.Errorf("%w: set ALLOW_PROD_IMPORT=true to run a destructive import", domain.ErrGuardRejected)
	}
	return nil
}

// ImportResult reports what a restore did.
type ImportResult struct {
	TenantSlug   string
	Purged       bool // an existing tenant with the same slug was deleted first
	RowsRestored int
}

// ImportUseCase destructively replaces one tenant's entire data graph
// with the contents of a snapshot document.
type ImportUseCase struct {
	target Target
	log    *logger.Logger
}

// NewImportUseCase wires the importer.
func NewImportUseCase(target Target, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{target: target, log: log}
}

// RunFile loads the document from path and restores it.
func (uc *ImportUseCase) RunFile(path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	defer f.Close()

	doc, err := snapshot.Decode(f)
	if err != nil {
		return nil, err
	}
	return uc.Run(doc)
}

// Run validates the document, purges a pre-existing tenant with the same
// slug, then recreates every row. Purge and recreate each run in their
// own transaction: a failed purge leaves the original tenant intact, a
// failed recreate rolls the restore back instead of leaving a
// half-restored tenant behind.
func (uc *ImportUseCase) Run(doc *snapshot.Document) (*ImportResult, error) {
	if err := doc.ValidateForImport(); err != nil {
		return nil, err
	}
	slug := doc.Tables.Tenant[0].Slug

	id, exists, err := uc.target.FindTenantIDBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant %q: %w", slug, err)
	}
	if exists {
		if err := uc.target.Purge(id); err != nil {
			return nil, fmt.Errorf("purge tenant %q: %w", slug, err)
		}
		uc.log.Info().Str("slug", slug).Str("tenant_id", id).Msg("existing tenant purged")
	}

	if err := uc.target.Restore(&doc.Tables); err != nil {
		return nil, fmt.Errorf("restore tenant %q: %w", slug, err)
	}

	res := &ImportResult{
		TenantSlug:   slug,
		Purged:       exists,
		RowsRestored: doc.TotalRows(),
	}
	uc.log.Info().
		Str("slug", slug).
		Bool("purged", res.Purged).
		Int("rows", res.RowsRestored).
		Msg("tenant restored")
	return res, nil
}
