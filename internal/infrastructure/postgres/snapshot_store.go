package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parsa-dev/crm-pro/internal/application/transfer"
	"github.com/parsa-dev/crm-pro/internal/snapshot"
)

var (
	_ transfer.Source = (*SnapshotStore)(nil)
	_ transfer.Target = (*SnapshotStore)(nil)
)

// SnapshotStore reads and writes whole-tenant snapshots. Reads go through
// the pool one table at a time; Purge and Restore each run inside a single
// transaction so a half-applied import can never be observed.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// ---- Source ----

func (s *SnapshotStore) ListTenants(slug string) ([]snapshot.TenantRow, error) {
	query := `SELECT id, slug, name, status, created_at, updated_at FROM tenants`
	args := []any{}
	if slug != "" {
		query += ` WHERE slug = $1`
		args = append(args, slug)
	}
	query += ` ORDER BY slug`
	rows, err := s.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var out []snapshot.TenantRow
	for rows.Next() {
		var r snapshot.TenantRow
		if err := rows.Scan(&r.ID, &r.Slug, &r.Name, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListRoles(tenantIDs []string) ([]snapshot.RoleRow, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at, updated_at
		FROM roles WHERE tenant_id = ANY($1) ORDER BY tenant_id, name`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var out []snapshot.RoleRow
	for rows.Next() {
		var r snapshot.RoleRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Name, &r.Description, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListRolePermissions(roleIDs []string) ([]snapshot.RolePermissionRow, error) {
	query := `
		SELECT id, role_id, permission_id, created_at
		FROM role_permissions WHERE role_id = ANY($1) ORDER BY role_id, permission_id`
	rows, err := s.pool.Query(context.Background(), query, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	defer rows.Close()
	var out []snapshot.RolePermissionRow
	for rows.Next() {
		var r snapshot.RolePermissionRow
		if err := rows.Scan(&r.ID, &r.RoleID, &r.PermissionID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListPermissions(permissionIDs []string) ([]snapshot.PermissionRow, error) {
	query := `
		SELECT id, code, description, created_at
		FROM permissions WHERE id = ANY($1) ORDER BY code`
	rows, err := s.pool.Query(context.Background(), query, permissionIDs)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var out []snapshot.PermissionRow
	for rows.Next() {
		var r snapshot.PermissionRow
		if err := rows.Scan(&r.ID, &r.Code, &r.Description, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListUsers(tenantIDs []string) ([]snapshot.UserRow, error) {
	query := `
		SELECT DISTINCT u.id, u.email, u.password_hash, u.name, u.phone, u.created_at, u.updated_at
		FROM users u
		JOIN memberships m ON m.user_id = u.id
		WHERE m.tenant_id = ANY($1)
		ORDER BY u.email`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var out []snapshot.UserRow
	for rows.Next() {
		var r snapshot.UserRow
		if err := rows.Scan(&r.ID, &r.Email, &r.PasswordHash, &r.Name, &r.Phone, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListMemberships(tenantIDs []string) ([]snapshot.MembershipRow, error) {
	query := `
		SELECT id, tenant_id, user_id, role, status, created_at, updated_at
		FROM memberships WHERE tenant_id = ANY($1) ORDER BY tenant_id, user_id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var out []snapshot.MembershipRow
	for rows.Next() {
		var r snapshot.MembershipRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.UserID, &r.Role, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListSessions(tenantIDs []string) ([]snapshot.SessionRow, error) {
	query := `
		SELECT id, tenant_id, user_id, token_hash, expires_at, created_at
		FROM sessions WHERE tenant_id = ANY($1) ORDER BY created_at, id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var out []snapshot.SessionRow
	for rows.Next() {
		var r snapshot.SessionRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.UserID, &r.TokenHash, &r.ExpiresAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListSubscriptions(tenantIDs []string) ([]snapshot.SubscriptionRow, error) {
	query := `
		SELECT id, tenant_id, plan, status, seat_limit, price, starts_at, ends_at, created_at, updated_at
		FROM subscriptions WHERE tenant_id = ANY($1) ORDER BY tenant_id, starts_at`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var out []snapshot.SubscriptionRow
	for rows.Next() {
		var r snapshot.SubscriptionRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Plan, &r.Status, &r.SeatLimit, &r.Price,
			&r.StartsAt, &r.EndsAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListInvoices(tenantIDs []string) ([]snapshot.InvoiceRow, error) {
	query := `
		SELECT id, tenant_id, deal_id, number, status, subtotal, discount_amount, tax_amount, total,
			issued_at, due_at, created_at, updated_at
		FROM invoices WHERE tenant_id = ANY($1) ORDER BY tenant_id, number`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var out []snapshot.InvoiceRow
	for rows.Next() {
		var r snapshot.InvoiceRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.DealID, &r.Number, &r.Status,
			&r.Subtotal, &r.DiscountAmount, &r.TaxAmount, &r.Total,
			&r.IssuedAt, &r.DueAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListInvoiceItems(tenantIDs []string) ([]snapshot.InvoiceItemRow, error) {
	query := `
		SELECT it.id, it.invoice_id, it.title, it.quantity, it.unit_price, it.tax_pct, it.line_total,
			it.position, it.created_at
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		WHERE i.tenant_id = ANY($1)
		ORDER BY it.invoice_id, it.position`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var out []snapshot.InvoiceItemRow
	for rows.Next() {
		var r snapshot.InvoiceItemRow
		if err := rows.Scan(&r.ID, &r.InvoiceID, &r.Title, &r.Quantity, &r.UnitPrice, &r.TaxPct,
			&r.LineTotal, &r.Position, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListPipelines(tenantIDs []string) ([]snapshot.PipelineRow, error) {
	query := `
		SELECT id, tenant_id, name, is_default, created_at, updated_at
		FROM pipelines WHERE tenant_id = ANY($1) ORDER BY tenant_id, created_at`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()
	var out []snapshot.PipelineRow
	for rows.Next() {
		var r snapshot.PipelineRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Name, &r.IsDefault, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListPipelineStages(tenantIDs []string) ([]snapshot.PipelineStageRow, error) {
	query := `
		SELECT id, tenant_id, pipeline_id, name, sort_order, created_at, updated_at
		FROM pipeline_stages WHERE tenant_id = ANY($1) ORDER BY pipeline_id, sort_order`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list pipeline stages: %w", err)
	}
	defer rows.Close()
	var out []snapshot.PipelineStageRow
	for rows.Next() {
		var r snapshot.PipelineStageRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.PipelineID, &r.Name, &r.Order, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline stage: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListCompanies(tenantIDs []string) ([]snapshot.CompanyRow, error) {
	query := `
		SELECT id, tenant_id, name, phone, city, created_at, updated_at
		FROM companies WHERE tenant_id = ANY($1) ORDER BY tenant_id, name`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var out []snapshot.CompanyRow
	for rows.Next() {
		var r snapshot.CompanyRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Name, &r.Phone, &r.City, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListContacts(tenantIDs []string) ([]snapshot.ContactRow, error) {
	query := `
		SELECT id, tenant_id, company_id, first_name, last_name, email, phone, created_at, updated_at
		FROM contacts WHERE tenant_id = ANY($1) ORDER BY tenant_id, last_name, first_name`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()
	var out []snapshot.ContactRow
	for rows.Next() {
		var r snapshot.ContactRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.CompanyID, &r.FirstName, &r.LastName,
			&r.Email, &r.Phone, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListLeads(tenantIDs []string) ([]snapshot.LeadRow, error) {
	query := `
		SELECT id, tenant_id, contact_id, owner_id, title, source, status, created_at, updated_at
		FROM leads WHERE tenant_id = ANY($1) ORDER BY created_at, id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var out []snapshot.LeadRow
	for rows.Next() {
		var r snapshot.LeadRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.ContactID, &r.OwnerID, &r.Title,
			&r.Source, &r.Status, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListDeals(tenantIDs []string) ([]snapshot.DealRow, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals WHERE tenant_id = ANY($1) ORDER BY created_at, id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var out []snapshot.DealRow
	for rows.Next() {
		var r snapshot.DealRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.PipelineID, &r.StageID, &r.ContactID, &r.CompanyID,
			&r.OwnerID, &r.Title, &r.Status, &r.Subtotal, &r.DiscountAmount, &r.TaxAmount, &r.Amount,
			&r.ExpectedClose, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListDealItems(tenantIDs []string) ([]snapshot.DealItemRow, error) {
	query := `
		SELECT id, tenant_id, deal_id, product_code, product_name, unit,
			quantity, unit_price, discount_pct, tax_pct,
			line_subtotal, line_discount_amount, line_tax_amount, line_total, position, created_at
		FROM deal_items WHERE tenant_id = ANY($1) ORDER BY deal_id, position`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list deal items: %w", err)
	}
	defer rows.Close()
	var out []snapshot.DealItemRow
	for rows.Next() {
		var r snapshot.DealItemRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.DealID, &r.ProductCode, &r.ProductName, &r.Unit,
			&r.Quantity, &r.UnitPrice, &r.DiscountPct, &r.TaxPct,
			&r.LineSubtotal, &r.LineDiscountAmount, &r.LineTaxAmount, &r.LineTotal,
			&r.Position, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deal item: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListTasks(tenantIDs []string) ([]snapshot.TaskRow, error) {
	query := `
		SELECT id, tenant_id, deal_id, contact_id, assignee_id, title, status, due_at, created_at, updated_at
		FROM tasks WHERE tenant_id = ANY($1) ORDER BY created_at, id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var out []snapshot.TaskRow
	for rows.Next() {
		var r snapshot.TaskRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.DealID, &r.ContactID, &r.AssigneeID,
			&r.Title, &r.Status, &r.DueAt, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListActivities(tenantIDs []string) ([]snapshot.ActivityRow, error) {
	query := `
		SELECT id, tenant_id, deal_id, contact_id, user_id, type, subject, body, occurred_at, created_at
		FROM activities WHERE tenant_id = ANY($1) ORDER BY occurred_at, id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var out []snapshot.ActivityRow
	for rows.Next() {
		var r snapshot.ActivityRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.DealID, &r.ContactID, &r.UserID,
			&r.Type, &r.Subject, &r.Body, &r.OccurredAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SnapshotStore) ListAuditLogs(tenantIDs []string) ([]snapshot.AuditLogRow, error) {
	query := `
		SELECT id, tenant_id, entity_type, entity_id, action, meta, created_at
		FROM audit_logs WHERE tenant_id = ANY($1) ORDER BY created_at, id`
	rows, err := s.pool.Query(context.Background(), query, tenantIDs)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var out []snapshot.AuditLogRow
	for rows.Next() {
		var r snapshot.AuditLogRow
		if err := rows.Scan(&r.ID, &r.TenantID, &r.EntityType, &r.EntityID, &r.Action,
			&r.Meta, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ---- Target ----

func (s *SnapshotStore) FindTenantIDBySlug(slug string) (string, bool, error) {
	var id string
	err := s.pool.QueryRow(context.Background(),
		`SELECT id FROM tenants WHERE slug = $1`, slug,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find tenant by slug: %w", err)
	}
	return id, true, nil
}

// Purge deletes a tenant and everything hanging off it, children before
// parents. Users are intentionally absent from this list: they are
// cross-tenant identities and survive a purge.
func (s *SnapshotStore) Purge(tenantID string) error {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin purge tx: %w", err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM audit_logs WHERE tenant_id = $1`,
		`DELETE FROM activities WHERE tenant_id = $1`,
		`DELETE FROM tasks WHERE tenant_id = $1`,
		`DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices WHERE tenant_id = $1)`,
		`DELETE FROM invoices WHERE tenant_id = $1`,
		`DELETE FROM deal_items WHERE tenant_id = $1`,
		`DELETE FROM deals WHERE tenant_id = $1`,
		`DELETE FROM leads WHERE tenant_id = $1`,
		`DELETE FROM contacts WHERE tenant_id = $1`,
		`DELETE FROM companies WHERE tenant_id = $1`,
		`DELETE FROM pipeline_stages WHERE tenant_id = $1`,
		`DELETE FROM pipelines WHERE tenant_id = $1`,
		`DELETE FROM subscriptions WHERE tenant_id = $1`,
		`DELETE FROM sessions WHERE tenant_id = $1`,
		`DELETE FROM role_permissions WHERE role_id IN (SELECT id FROM roles WHERE tenant_id = $1)`,
		`DELETE FROM roles WHERE tenant_id = $1`,
		`DELETE FROM memberships WHERE tenant_id = $1`,
		`DELETE FROM tenants WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, tenantID); err != nil {
			return fmt.Errorf("purge tenant: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit purge tx: %w", err)
	}
	return nil
}

// Restore inserts every table in forward dependency order so foreign keys
// are always satisfied, all inside one transaction.
func (s *SnapshotStore) Restore(tables *snapshot.Tables) error {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restore tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := restoreAll(ctx, tx, tables); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit restore tx: %w", err)
	}
	return nil
}

func restoreAll(ctx context.Context, tx pgx.Tx, t *snapshot.Tables) error {
	for _, r := range t.Tenant {
		_, err := tx.Exec(ctx, `
			INSERT INTO tenants (id, slug, name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.Slug, r.Name, r.Status, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore tenant %s: %w", r.Slug, err)
		}
	}
	for _, r := range t.Role {
		_, err := tx.Exec(ctx, `
			INSERT INTO roles (id, tenant_id, name, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.TenantID, r.Name, r.Description, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore role %s: %w", r.Name, err)
		}
	}
	// Permissions are global reference data shared across tenants; a
	// restore into a database that already has them must not fail.
	for _, r := range t.Permission {
		_, err := tx.Exec(ctx, `
			INSERT INTO permissions (id, code, description, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING`,
			r.ID, r.Code, r.Description, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore permission %s: %w", r.Code, err)
		}
	}
	for _, r := range t.RolePermission {
		_, err := tx.Exec(ctx, `
			INSERT INTO role_permissions (id, role_id, permission_id, created_at)
			VALUES ($1, $2, $3, $4)`,
			r.ID, r.RoleID, r.PermissionID, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore role permission %s: %w", r.ID, err)
		}
	}
	// Users are upserted by id, never inserted blind: the same person can
	// belong to tenants that were never purged.
	for _, r := range t.User {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, email, password_hash, name, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				email = EXCLUDED.email,
				password_hash = EXCLUDED.password_hash,
				name = EXCLUDED.name,
				phone = EXCLUDED.phone,
				updated_at = EXCLUDED.updated_at`,
			r.ID, r.Email, r.PasswordHash, r.Name, r.Phone, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore user %s: %w", r.Email, err)
		}
	}
	for _, r := range t.Membership {
		_, err := tx.Exec(ctx, `
			INSERT INTO memberships (id, tenant_id, user_id, role, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.ID, r.TenantID, r.UserID, r.Role, r.Status, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore membership %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Session {
		_, err := tx.Exec(ctx, `
			INSERT INTO sessions (id, tenant_id, user_id, token_hash, expires_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.TenantID, r.UserID, r.TokenHash, r.ExpiresAt, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore session %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Subscription {
		_, err := tx.Exec(ctx, `
			INSERT INTO subscriptions (id, tenant_id, plan, status, seat_limit, price, starts_at, ends_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, r.TenantID, r.Plan, r.Status, r.SeatLimit, r.Price, r.StartsAt, r.EndsAt, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore subscription %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Pipeline {
		_, err := tx.Exec(ctx, `
			INSERT INTO pipelines (id, tenant_id, name, is_default, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			r.ID, r.TenantID, r.Name, r.IsDefault, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore pipeline %s: %w", r.Name, err)
		}
	}
	for _, r := range t.PipelineStage {
		_, err := tx.Exec(ctx, `
			INSERT INTO pipeline_stages (id, tenant_id, pipeline_id, name, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.ID, r.TenantID, r.PipelineID, r.Name, r.Order, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore pipeline stage %s: %w", r.Name, err)
		}
	}
	for _, r := range t.Company {
		_, err := tx.Exec(ctx, `
			INSERT INTO companies (id, tenant_id, name, phone, city, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.ID, r.TenantID, r.Name, r.Phone, r.City, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore company %s: %w", r.Name, err)
		}
	}
	for _, r := range t.Contact {
		_, err := tx.Exec(ctx, `
			INSERT INTO contacts (id, tenant_id, company_id, first_name, last_name, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			r.ID, r.TenantID, r.CompanyID, r.FirstName, r.LastName, r.Email, r.Phone, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore contact %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Lead {
		_, err := tx.Exec(ctx, `
			INSERT INTO leads (id, tenant_id, contact_id, owner_id, title, source, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			r.ID, r.TenantID, r.ContactID, r.OwnerID, r.Title, r.Source, r.Status, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore lead %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Deal {
		_, err := tx.Exec(ctx, `
			INSERT INTO deals (`+dealColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			r.ID, r.TenantID, r.PipelineID, r.StageID, r.ContactID, r.CompanyID, r.OwnerID,
			r.Title, r.Status, r.Subtotal, r.DiscountAmount, r.TaxAmount, r.Amount,
			r.ExpectedClose, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore deal %s: %w", r.ID, err)
		}
	}
	for _, r := range t.DealItem {
		_, err := tx.Exec(ctx, `
			INSERT INTO deal_items (id, tenant_id, deal_id, product_code, product_name, unit,
				quantity, unit_price, discount_pct, tax_pct,
				line_subtotal, line_discount_amount, line_tax_amount, line_total, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			r.ID, r.TenantID, r.DealID, r.ProductCode, r.ProductName, r.Unit,
			r.Quantity, r.UnitPrice, r.DiscountPct, r.TaxPct,
			r.LineSubtotal, r.LineDiscountAmount, r.LineTaxAmount, r.LineTotal, r.Position, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore deal item %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Invoice {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoices (id, tenant_id, deal_id, number, status, subtotal, discount_amount, tax_amount, total,
				issued_at, due_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			r.ID, r.TenantID, r.DealID, r.Number, r.Status, r.Subtotal, r.DiscountAmount, r.TaxAmount, r.Total,
			r.IssuedAt, r.DueAt, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore invoice %s: %w", r.Number, err)
		}
	}
	for _, r := range t.InvoiceItem {
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_items (id, invoice_id, title, quantity, unit_price, tax_pct, line_total, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			r.ID, r.InvoiceID, r.Title, r.Quantity, r.UnitPrice, r.TaxPct, r.LineTotal, r.Position, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore invoice item %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Task {
		_, err := tx.Exec(ctx, `
			INSERT INTO tasks (id, tenant_id, deal_id, contact_id, assignee_id, title, status, due_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, r.TenantID, r.DealID, r.ContactID, r.AssigneeID, r.Title, r.Status, r.DueAt, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("restore task %s: %w", r.ID, err)
		}
	}
	for _, r := range t.Activity {
		_, err := tx.Exec(ctx, `
			INSERT INTO activities (id, tenant_id, deal_id, contact_id, user_id, type, subject, body, occurred_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, r.TenantID, r.DealID, r.ContactID, r.UserID, r.Type, r.Subject, r.Body, r.OccurredAt, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore activity %s: %w", r.ID, err)
		}
	}
	for _, r := range t.AuditLog {
		_, err := tx.Exec(ctx, `
			INSERT INTO audit_logs (id, tenant_id, entity_type, entity_id, action, meta, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.ID, r.TenantID, r.EntityType, r.EntityID, r.Action, r.Meta, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("restore audit log %s: %w", r.ID, err)
		}
	}
	return nil
}
