package entity

import "time"

// Lead statuses.
const (
	LeadStatusNew       = "NEW"
	LeadStatusContacted = "CONTACTED"
	LeadStatusQualified = "QUALIFIED"
	LeadStatusLost      = "LOST"
)

// Lead is a potential deal before qualification.
type Lead struct {
	ID        string
	TenantID  string
	ContactID *string
	OwnerID   *string // user responsible for follow-up
	Title     string
	Source    string // e.g. WEBSITE, REFERRAL, SMS_CAMPAIGN
	Status    string // see LeadStatus*
	CreatedAt time.Time
	UpdatedAt time.Time
}
