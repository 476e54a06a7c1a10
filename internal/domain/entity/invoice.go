package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceStatusDraft   = "DRAFT"
	InvoiceStatusIssued  = "ISSUED"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusVoided  = "VOIDED"
	InvoiceStatusOverdue = "OVERDUE"
)

// Invoice is a billing document raised from a deal (or standalone).
type Invoice struct {
	ID             string
	TenantID       string
	DealID         *string
	Number         string
	Status         string // see InvoiceStatus*
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
	IssuedAt       *time.Time
	DueAt          *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InvoiceItem is one line of an invoice. It has no tenant_id of its own;
// it reaches the tenant through its invoice.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	Title     string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxPct    decimal.Decimal
	LineTotal decimal.Decimal
	Position  int
	CreatedAt time.Time
}
