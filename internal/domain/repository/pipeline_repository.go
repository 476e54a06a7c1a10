package repository

import "github.com/parsa-dev/crm-pro/internal/domain/entity"

// PipelineRepository is the persistence port for Pipeline and its stages.
type PipelineRepository interface {
	Create(p *entity.Pipeline) error
	// GetDefaultByTenant returns the tenant's default pipeline, or the
	// oldest pipeline when none is flagged default, or nil.
	GetDefaultByTenant(tenantID string) (*entity.Pipeline, error)
	ListStages(pipelineID string) ([]*entity.PipelineStage, error)
	CreateStage(s *entity.PipelineStage) error
}

// SubscriptionRepository is the persistence port for Subscription.
type SubscriptionRepository interface {
	Create(s *entity.Subscription) error
	GetByTenant(tenantID string) (*entity.Subscription, error)
}
