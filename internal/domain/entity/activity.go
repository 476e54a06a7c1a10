package entity

import "time"

// Activity types.
const (
	ActivityTypeCall    = "CALL"
	ActivityTypeSMS     = "SMS"
	ActivityTypeNote    = "NOTE"
	ActivityTypeMeeting = "MEETING"
)

// Activity is a logged interaction (call, SMS, note, meeting), optionally
// linked to a deal and/or a contact.
type Activity struct {
	ID         string
	TenantID   string
	DealID     *string
	ContactID  *string
	UserID     *string
	Type       string // see ActivityType*
	Subject    string
	Body       string
	OccurredAt time.Time
	CreatedAt  time.Time
}
