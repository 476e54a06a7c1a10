package entity

import (
	"encoding/json"
	"time"
)

// Audit actions (the set is open; these are the ones the pipeline cares
// about).
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionUpsert = "UPSERT"
	AuditActionDelete = "DELETE"
)

// EntityTypeProduct marks audit rows carrying product catalog payloads.
// The backfill tool folds these into a current-catalog projection.
const EntityTypeProduct = "PRODUCT"

// AuditLog is an append-only event record. MetaJSON is the raw payload as
// written by the application; its shape depends on EntityType.
type AuditLog struct {
	ID         string
	TenantID   string
	EntityType string
	EntityID   string
	Action     string
	MetaJSON   json.RawMessage
	CreatedAt  time.Time
}
