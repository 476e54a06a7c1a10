package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal statuses.
const (
	DealStatusOpen = "OPEN"
	DealStatusWon  = "WON"
	DealStatusLost = "LOST"
)

// Deal is an opportunity inside a pipeline stage. The four monetary
// aggregates are derived from its DealItems and must be recomputed
// whenever items change; there is no trigger doing this, callers are
// responsible.
type Deal struct {
	ID             string
	TenantID       string
	PipelineID     string
	StageID        string
	ContactID      *string
	CompanyID      *string
	OwnerID        *string
	Title          string
	Status         string // see DealStatus*
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Amount         decimal.Decimal // grand total, sum of line totals
	ExpectedClose  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DealItem is one line of a deal. Line amounts obey the compounding
// rounding law in domain/money: every intermediate value is rounded to a
// whole currency unit before the next step.
type DealItem struct {
	ID                 string
	TenantID           string
	DealID             string
	ProductCode        string
	ProductName        string
	Unit               string
	Quantity           decimal.Decimal // 3 decimal places, min 0.001
	UnitPrice          decimal.Decimal
	DiscountPct        decimal.Decimal // 2 decimal places
	TaxPct             decimal.Decimal // 2 decimal places
	LineSubtotal       decimal.Decimal
	LineDiscountAmount decimal.Decimal
	LineTaxAmount      decimal.Decimal
	LineTotal          decimal.Decimal
	Position           int
	CreatedAt          time.Time
}
