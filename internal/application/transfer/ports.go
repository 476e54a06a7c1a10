package transfer

import "github.com/parsa-dev/crm-pro/internal/snapshot"

// Source reads snapshot rows table by table. Each List method issues one
// query filtered by the resolved tenant id set, ordered by a stable sort
// key, so re-exports of unchanged data are byte-identical modulo
// timestamps. Role permissions and permissions are reached through the
// relation graph, not a tenant column.
type Source interface {
	// ListTenants returns all tenants, or just the one matching slug
	// when slug is non-empty.
	ListTenants(slug string) ([]snapshot.TenantRow, error)
	ListRoles(tenantIDs []string) ([]snapshot.RoleRow, error)
	ListRolePermissions(roleIDs []string) ([]snapshot.RolePermissionRow, error)
	ListPermissions(permissionIDs []string) ([]snapshot.PermissionRow, error)
	// ListUsers returns the distinct users holding a membership in any of
	// the tenants.
	ListUsers(tenantIDs []string) ([]snapshot.UserRow, error)
	ListMemberships(tenantIDs []string) ([]snapshot.MembershipRow, error)
	ListSessions(tenantIDs []string) ([]snapshot.SessionRow, error)
	ListSubscriptions(tenantIDs []string) ([]snapshot.SubscriptionRow, error)
	ListInvoices(tenantIDs []string) ([]snapshot.InvoiceRow, error)
	// ListInvoiceItems reaches the tenant through the invoice.
	ListInvoiceItems(tenantIDs []string) ([]snapshot.InvoiceItemRow, error)
	ListPipelines(tenantIDs []string) ([]snapshot.PipelineRow, error)
	ListPipelineStages(tenantIDs []string) ([]snapshot.PipelineStageRow, error)
	ListCompanies(tenantIDs []string) ([]snapshot.CompanyRow, error)
	ListContacts(tenantIDs []string) ([]snapshot.ContactRow, error)
	ListLeads(tenantIDs []string) ([]snapshot.LeadRow, error)
	ListDeals(tenantIDs []string) ([]snapshot.DealRow, error)
	ListDealItems(tenantIDs []string) ([]snapshot.DealItemRow, error)
	ListTasks(tenantIDs []string) ([]snapshot.TaskRow, error)
	ListActivities(tenantIDs []string) ([]snapshot.ActivityRow, error)
	ListAuditLogs(tenantIDs []string) ([]snapshot.AuditLogRow, error)
}

// Target applies a snapshot to the database.
type Target interface {
	// FindTenantIDBySlug reports whether a tenant with the slug already
	// exists, and its id when it does.
	FindTenantIDBySlug(slug string) (string, bool, error)
	// Purge deletes the tenant and every dependent row in strict reverse
	// dependency order, inside a single transaction. A failure rolls the
	// whole purge back.
	Purge(tenantID string) error
	// Restore inserts all rows in forward dependency order inside a
	// single transaction, preserving exported ids. User rows are
	// upserted by id, never deleted: users are cross-tenant identities.
	Restore(tables *snapshot.Tables) error
}
