package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/parsa-dev/crm-pro/internal/domain/catalog"
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
)

var (
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.ContactRepository  = (*ContactRepo)(nil)
	_ repository.TaskRepository     = (*TaskRepo)(nil)
	_ repository.ActivityRepository = (*ActivityRepo)(nil)
	_ repository.AuditLogRepository = (*AuditLogRepo)(nil)
)

// CompanyRepo implements CompanyRepository over PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository builds the adapter. Pass a pool or a tx.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func (r *CompanyRepo) Create(c *entity.Company) error {
	query := `
		INSERT INTO companies (id, tenant_id, name, phone, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TenantID, c.Name, c.Phone, c.City, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

func (r *CompanyRepo) GetByName(tenantID, name string) (*entity.Company, error) {
	query := `
		SELECT id, tenant_id, name, phone, city, created_at, updated_at
		FROM companies WHERE tenant_id = $1 AND name = $2 LIMIT 1`
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, tenantID, name).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.City, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by name: %w", err)
	}
	return &c, nil
}

// ContactRepo implements ContactRepository over PostgreSQL.
type ContactRepo struct {
	q Querier
}

// NewContactRepository builds the adapter. Pass a pool or a tx.
func NewContactRepository(q Querier) *ContactRepo {
	return &ContactRepo{q: q}
}

func (r *ContactRepo) Create(c *entity.Contact) error {
	query := `
		INSERT INTO contacts (id, tenant_id, company_id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TenantID, c.CompanyID, c.FirstName, c.LastName, c.Email, c.Phone,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) GetByName(tenantID, firstName, lastName string) (*entity.Contact, error) {
	query := `
		SELECT id, tenant_id, company_id, first_name, last_name, email, phone, created_at, updated_at
		FROM contacts WHERE tenant_id = $1 AND first_name = $2 AND last_name = $3 LIMIT 1`
	var c entity.Contact
	err := r.q.QueryRow(context.Background(), query, tenantID, firstName, lastName).Scan(
		&c.ID, &c.TenantID, &c.CompanyID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contact by name: %w", err)
	}
	return &c, nil
}

// TaskRepo implements TaskRepository over PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository builds the adapter. Pass a pool or a tx.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

func (r *TaskRepo) Create(t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, tenant_id, deal_id, contact_id, assignee_id, title, status, due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.TenantID, t.DealID, t.ContactID, t.AssigneeID, t.Title, t.Status, t.DueAt,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepo) GetByTitle(tenantID, title string) (*entity.Task, error) {
	query := `
		SELECT id, tenant_id, deal_id, contact_id, assignee_id, title, status, due_at, created_at, updated_at
		FROM tasks WHERE tenant_id = $1 AND title = $2 LIMIT 1`
	var t entity.Task
	err := r.q.QueryRow(context.Background(), query, tenantID, title).Scan(
		&t.ID, &t.TenantID, &t.DealID, &t.ContactID, &t.AssigneeID, &t.Title, &t.Status, &t.DueAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by title: %w", err)
	}
	return &t, nil
}

// ActivityRepo implements ActivityRepository over PostgreSQL.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository builds the adapter. Pass a pool or a tx.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

func (r *ActivityRepo) Create(a *entity.Activity) error {
	query := `
		INSERT INTO activities (id, tenant_id, deal_id, contact_id, user_id, type, subject, body, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TenantID, a.DealID, a.ContactID, a.UserID, a.Type, a.Subject, a.Body,
		a.OccurredAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *ActivityRepo) GetBySubject(tenantID, subject string) (*entity.Activity, error) {
	query := `
		SELECT id, tenant_id, deal_id, contact_id, user_id, type, subject, body, occurred_at, created_at
		FROM activities WHERE tenant_id = $1 AND subject = $2 LIMIT 1`
	var a entity.Activity
	err := r.q.QueryRow(context.Background(), query, tenantID, subject).Scan(
		&a.ID, &a.TenantID, &a.DealID, &a.ContactID, &a.UserID, &a.Type, &a.Subject, &a.Body,
		&a.OccurredAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity by subject: %w", err)
	}
	return &a, nil
}

// AuditLogRepo implements AuditLogRepository over PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository builds the adapter. Pass a pool or a tx.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// ListProductEvents returns the tenant's PRODUCT audit rows with a
// catalog action, newest first, ready for catalog.Reduce.
func (r *AuditLogRepo) ListProductEvents(tenantID string) ([]catalog.Event, error) {
	query := `
		SELECT action, meta
		FROM audit_logs
		WHERE tenant_id = $1
		  AND entity_type = $2
		  AND action IN ('UPSERT', 'CREATE', 'UPDATE')
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query, tenantID, entity.EntityTypeProduct)
	if err != nil {
		return nil, fmt.Errorf("list product events: %w", err)
	}
	defer rows.Close()
	var events []catalog.Event
	for rows.Next() {
		var ev catalog.Event
		if err := rows.Scan(&ev.Action, &ev.Meta); err != nil {
			return nil, fmt.Errorf("scan product event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
