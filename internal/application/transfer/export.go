package transfer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/snapshot"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

// ExportOptions selects what goes into a snapshot.
type ExportOptions struct {
	TenantSlug      string // empty = all tenants
	IncludeSessions bool   // sessions are ephemeral/sensitive, off by default
}

// ExportUseCase builds a complete, self-contained snapshot of one tenant
// (or all tenants), suitable as input to ImportUseCase.
type ExportUseCase struct {
	src Source
	log *logger.Logger
}

// NewExportUseCase wires the exporter.
func NewExportUseCase(src Source, log *logger.Logger) *ExportUseCase {
	return &ExportUseCase{src: src, log: log}
}

// Export resolves the tenant id set and reads every table, parents before
// children.
func (uc *ExportUseCase) Export(opts ExportOptions) (*snapshot.Document, error) {
	tenants, err := uc.src.ListTenants(opts.TenantSlug)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	if opts.TenantSlug != "" && len(tenants) == 0 {
		return nil, fmt.Errorf("%w: slug %q", domain.ErrTenantNotFound, opts.TenantSlug)
	}

	tenantIDs := make([]string, len(tenants))
	for i, t := range tenants {
		tenantIDs[i] = t.ID
	}

	doc := &snapshot.Document{
		ExportedAt: time.Now().UTC(),
		Options: snapshot.Options{
			TenantSlug:      nilIfEmpty(opts.TenantSlug),
			IncludeSessions: opts.IncludeSessions,
		},
	}
	t := &doc.Tables
	t.Tenant = tenants

	if t.Role, err = uc.src.ListRoles(tenantIDs); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	roleIDs := make([]string, len(t.Role))
	for i, r := range t.Role {
		roleIDs[i] = r.ID
	}
	if t.RolePermission, err = uc.src.ListRolePermissions(roleIDs); err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	if t.Permission, err = uc.src.ListPermissions(distinctPermissionIDs(t.RolePermission)); err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	if t.User, err = uc.src.ListUsers(tenantIDs); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if t.Membership, err = uc.src.ListMemberships(tenantIDs); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if opts.IncludeSessions {
		if t.Session, err = uc.src.ListSessions(tenantIDs); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
	}
	if t.Subscription, err = uc.src.ListSubscriptions(tenantIDs); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if t.Invoice, err = uc.src.ListInvoices(tenantIDs); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	if t.InvoiceItem, err = uc.src.ListInvoiceItems(tenantIDs); err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	if t.Pipeline, err = uc.src.ListPipelines(tenantIDs); err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	if t.PipelineStage, err = uc.src.ListPipelineStages(tenantIDs); err != nil {
		return nil, fmt.Errorf("list pipeline stages: %w", err)
	}
	if t.Company, err = uc.src.ListCompanies(tenantIDs); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	if t.Contact, err = uc.src.ListContacts(tenantIDs); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if t.Lead, err = uc.src.ListLeads(tenantIDs); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	if t.Deal, err = uc.src.ListDeals(tenantIDs); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	if t.DealItem, err = uc.src.ListDealItems(tenantIDs); err != nil {
		return nil, fmt.Errorf("list deal items: %w", err)
	}
	if t.Task, err = uc.src.ListTasks(tenantIDs); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if t.Activity, err = uc.src.ListActivities(tenantIDs); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if t.AuditLog, err = uc.src.ListAuditLogs(tenantIDs); err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}

	doc.Normalize()
	return doc, nil
}

// ExportToFile runs Export and writes the document to path, creating
// parent directories as needed. Per-table row counts are logged for the
// operator.
func (uc *ExportUseCase) ExportToFile(opts ExportOptions, path string) (*snapshot.Document, error) {
	doc, err := uc.Export(opts)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := doc.Encode(f); err != nil {
		return nil, err
	}

	for _, c := range doc.Counts() {
		uc.log.Info().Str("table", c.Table).Int("rows", c.Rows).Msg("exported")
	}
	uc.log.Info().Str("path", path).Int("total_rows", doc.TotalRows()).Msg("snapshot written")
	return doc, nil
}

func distinctPermissionIDs(links []snapshot.RolePermissionRow) []string {
	seen := make(map[string]bool, len(links))
	var ids []string
	for _, l := range links {
		if !seen[l.PermissionID] {
			seen[l.PermissionID] = true
			ids = append(ids, l.PermissionID)
		}
	}
	sort.Strings(ids)
	return ids
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
