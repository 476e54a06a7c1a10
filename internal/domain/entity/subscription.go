package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription plans.
const (
	PlanTrial      = "TRIAL"
	PlanStarter    = "STARTER"
	PlanPro        = "PRO"
	PlanEnterprise = "ENTERPRISE"
)

// Subscription holds a tenant's plan window and seat limits. One-to-one
// with Tenant (tenant_id is unique).
type Subscription struct {
	ID        string
	TenantID  string
	Plan      string // see Plan*
	Status    string // ACTIVE, EXPIRED, CANCELED
	SeatLimit int
	Price     decimal.Decimal // per period, in IRR
	StartsAt  time.Time
	EndsAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
