// Package snapshot defines the tenant snapshot document: the JSON file
// produced by export and consumed by import. Every table is a typed row
// slice; monetary NUMERIC values travel as decimal strings, never as
// native JSON numbers.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parsa-dev/crm-pro/internal/domain"
)

// Options records what the export was asked for, so an operator can tell
// how a document was produced.
type Options struct {
	TenantSlug      *string `json:"tenantSlug"` // nil = all tenants
	IncludeSessions bool    `json:"includeSessions"`
}

// Document is the complete snapshot file.
type Document struct {
	ExportedAt time.Time `json:"exportedAt"`
	Options    Options   `json:"options"`
	Tables     Tables    `json:"tables"`
}

// Tables holds every exported table. All keys are always present in the
// JSON, even when empty; Normalize enforces that.
type Tables struct {
	Tenant         []TenantRow         `json:"tenant"`
	Role           []RoleRow           `json:"role"`
	Permission     []PermissionRow     `json:"permission"`
	RolePermission []RolePermissionRow `json:"rolePermission"`
	User           []UserRow           `json:"user"`
	Membership     []MembershipRow     `json:"membership"`
	Session        []SessionRow        `json:"session"`
	Subscription   []SubscriptionRow   `json:"subscription"`
	Invoice        []InvoiceRow        `json:"invoice"`
	InvoiceItem    []InvoiceItemRow    `json:"invoiceItem"`
	Pipeline       []PipelineRow       `json:"pipeline"`
	PipelineStage  []PipelineStageRow  `json:"pipelineStage"`
	Company        []CompanyRow        `json:"company"`
	Contact        []ContactRow        `json:"contact"`
	Lead           []LeadRow           `json:"lead"`
	Deal           []DealRow           `json:"deal"`
	DealItem       []DealItemRow       `json:"dealItem"`
	Task           []TaskRow           `json:"task"`
	Activity       []ActivityRow       `json:"activity"`
	AuditLog       []AuditLogRow       `json:"auditLog"`
}

type TenantRow struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RoleRow struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PermissionRow struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RolePermissionRow struct {
	ID           string    `json:"id"`
	RoleID       string    `json:"roleId"`
	PermissionID string    `json:"permissionId"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserRow struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type MembershipRow struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SessionRow struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"tokenHash"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubscriptionRow struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenantId"`
	Plan      string          `json:"plan"`
	Status    string          `json:"status"`
	SeatLimit int             `json:"seatLimit"`
	Price     decimal.Decimal `json:"price"`
	StartsAt  time.Time       `json:"startsAt"`
	EndsAt    time.Time       `json:"endsAt"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type InvoiceRow struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenantId"`
	DealID         *string         `json:"dealId"`
	Number         string          `json:"number"`
	Status         string          `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
	IssuedAt       *time.Time      `json:"issuedAt"`
	DueAt          *time.Time      `json:"dueAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type InvoiceItemRow struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoiceId"`
	Title     string          `json:"title"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	TaxPct    decimal.Decimal `json:"taxPct"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Position  int             `json:"position"`
	CreatedAt time.Time       `json:"createdAt"`
}

type PipelineRow struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type PipelineStageRow struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	PipelineID string    `json:"pipelineId"`
	Name       string    `json:"name"`
	Order      int       `json:"order"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CompanyRow struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactRow struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	CompanyID *string   `json:"companyId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LeadRow struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	ContactID *string   `json:"contactId"`
	OwnerID   *string   `json:"ownerId"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type DealRow struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenantId"`
	PipelineID     string          `json:"pipelineId"`
	StageID        string          `json:"stageId"`
	ContactID      *string         `json:"contactId"`
	CompanyID      *string         `json:"companyId"`
	OwnerID        *string         `json:"ownerId"`
	Title          string          `json:"title"`
	Status         string          `json:"status"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Amount         decimal.Decimal `json:"amount"`
	ExpectedClose  *time.Time      `json:"expectedCloseAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type DealItemRow struct {
	ID                 string          `json:"id"`
	TenantID           string          `json:"tenantId"`
	DealID             string          `json:"dealId"`
	ProductCode        string          `json:"productCode"`
	ProductName        string          `json:"productName"`
	Unit               string          `json:"unit"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	DiscountPct        decimal.Decimal `json:"discountPct"`
	TaxPct             decimal.Decimal `json:"taxPct"`
	LineSubtotal       decimal.Decimal `json:"lineSubtotal"`
	LineDiscountAmount decimal.Decimal `json:"lineDiscountAmount"`
	LineTaxAmount      decimal.Decimal `json:"lineTaxAmount"`
	LineTotal          decimal.Decimal `json:"lineTotal"`
	Position           int             `json:"position"`
	CreatedAt          time.Time       `json:"createdAt"`
}

type TaskRow struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenantId"`
	DealID     *string    `json:"dealId"`
	ContactID  *string    `json:"contactId"`
	AssigneeID *string    `json:"assigneeId"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	DueAt      *time.Time `json:"dueAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type ActivityRow struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	DealID     *string   `json:"dealId"`
	ContactID  *string   `json:"contactId"`
	UserID     *string   `json:"userId"`
	Type       string    `json:"type"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurredAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AuditLogRow struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenantId"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Action     string          `json:"action"`
	Meta       json.RawMessage `json:"meta"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Normalize replaces nil table slices with empty ones so every table key
// is serialized as [] rather than null.
func (d *Document) Normalize() {
	t := &d.Tables
	if t.Tenant == nil {
		t.Tenant = []TenantRow{}
	}
	if t.Role == nil {
		t.Role = []RoleRow{}
	}
	if t.Permission == nil {
		t.Permission = []PermissionRow{}
	}
	if t.RolePermission == nil {
		t.RolePermission = []RolePermissionRow{}
	}
	if t.User == nil {
		t.User = []UserRow{}
	}
	if t.Membership == nil {
		t.Membership = []MembershipRow{}
	}
	if t.Session == nil {
		t.Session = []SessionRow{}
	}
	if t.Subscription == nil {
		t.Subscription = []SubscriptionRow{}
	}
	if t.Invoice == nil {
		t.Invoice = []InvoiceRow{}
	}
	if t.InvoiceItem == nil {
		t.InvoiceItem = []InvoiceItemRow{}
	}
	if t.Pipeline == nil {
		t.Pipeline = []PipelineRow{}
	}
	if t.PipelineStage == nil {
		t.PipelineStage = []PipelineStageRow{}
	}
	if t.Company == nil {
		t.Company = []CompanyRow{}
	}
	if t.Contact == nil {
		t.Contact = []ContactRow{}
	}
	if t.Lead == nil {
		t.Lead = []LeadRow{}
	}
	if t.Deal == nil {
		t.Deal = []DealRow{}
	}
	if t.DealItem == nil {
		t.DealItem = []DealItemRow{}
	}
	if t.Task == nil {
		t.Task = []TaskRow{}
	}
	if t.Activity == nil {
		t.Activity = []ActivityRow{}
	}
	if t.AuditLog == nil {
		t.AuditLog = []AuditLogRow{}
	}
}

// Counts returns per-table row counts in a fixed, dependency-ordered list
// for operator reporting.
func (d *Document) Counts() []TableCount {
	t := &d.Tables
	return []TableCount{
		{"tenant", len(t.Tenant)},
		{"role", len(t.Role)},
		{"permission", len(t.Permission)},
		{"rolePermission", len(t.RolePermission)},
		{"user", len(t.User)},
		{"membership", len(t.Membership)},
		{"session", len(t.Session)},
		{"subscription", len(t.Subscription)},
		{"invoice", len(t.Invoice)},
		{"invoiceItem", len(t.InvoiceItem)},
		{"pipeline", len(t.Pipeline)},
		{"pipelineStage", len(t.PipelineStage)},
		{"company", len(t.Company)},
		{"contact", len(t.Contact)},
		{"lead", len(t.Lead)},
		{"deal", len(t.Deal)},
		{"dealItem", len(t.DealItem)},
		{"task", len(t.Task)},
		{"activity", len(t.Activity)},
		{"auditLog", len(t.AuditLog)},
	}
}

// TableCount is one entry of Counts.
type TableCount struct {
	Table string
	Rows  int
}

// TotalRows sums all table counts.
func (d *Document) TotalRows() int {
	total := 0
	for _, c := range d.Counts() {
		total += c.Rows
	}
	return total
}

// ValidateForImport checks the structural preconditions of a restore:
// at least one tenant row with a non-empty slug, and an id on every user
// row (user rows are upserted by id, a missing id would corrupt the
// cross-tenant identity table).
func (d *Document) ValidateForImport() error {
	if len(d.Tables.Tenant) == 0 {
		return fmt.Errorf("%w: no tenant rows", domain.ErrInvalidSnapshot)
	}
	if d.Tables.Tenant[0].Slug == "" {
		return fmt.Errorf("%w: tenant row has an empty slug", domain.ErrInvalidSnapshot)
	}
	for i, u := range d.Tables.User {
		if u.ID == "" {
			return fmt.Errorf("%w: user row %d (%s)", domain.ErrMissingRowID, i, u.Email)
		}
	}
	return nil
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	d.Normalize()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// Decode reads a document and normalizes its tables.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSnapshot, err)
	}
	d.Normalize()
	return &d, nil
}
