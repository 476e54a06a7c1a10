package entity

import "time"

// Pipeline owns an ordered list of stages. Each tenant has exactly one
// default pipeline; the seeder enforces this by reuse, there is no DB
// constraint backing it.
type Pipeline struct {
	ID        string
	TenantID  string
	Name      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PipelineStage is one step of a pipeline. Order is zero-based and
// contiguous by convention only.
type PipelineStage struct {
	ID         string
	TenantID   string
	PipelineID string
	Name       string
	Order      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
