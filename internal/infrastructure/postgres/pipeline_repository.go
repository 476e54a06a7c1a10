package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
)

var _ repository.PipelineRepository = (*PipelineRepo)(nil)

// PipelineRepo implements PipelineRepository over PostgreSQL.
type PipelineRepo struct {
	q Querier
}

// NewPipelineRepository builds the adapter. Pass a pool or a tx.
func NewPipelineRepository(q Querier) *PipelineRepo {
	return &PipelineRepo{q: q}
}

// Create persists a new pipeline.
func (r *PipelineRepo) Create(p *entity.Pipeline) error {
	query := `
		INSERT INTO pipelines (id, tenant_id, name, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.TenantID, p.Name, p.IsDefault, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pipeline: %w", err)
	}
	return nil
}

// GetDefaultByTenant returns the default pipeline, falling back to the
// oldest pipeline when none is flagged, or nil when the tenant has no
// pipeline at all.
func (r *PipelineRepo) GetDefaultByTenant(tenantID string) (*entity.Pipeline, error) {
	query := `
		SELECT id, tenant_id, name, is_default, created_at, updated_at
		FROM pipelines WHERE tenant_id = $1
		ORDER BY is_default DESC, created_at ASC
		LIMIT 1`
	var p entity.Pipeline
	err := r.q.QueryRow(context.Background(), query, tenantID).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default pipeline: %w", err)
	}
	return &p, nil
}

// ListStages returns the pipeline's stages ordered by sort_order.
func (r *PipelineRepo) ListStages(pipelineID string) ([]*entity.PipelineStage, error) {
	query := `
		SELECT id, tenant_id, pipeline_id, name, sort_order, created_at, updated_at
		FROM pipeline_stages WHERE pipeline_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(context.Background(), query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list pipeline stages: %w", err)
	}
	defer rows.Close()
	var list []*entity.PipelineStage
	for rows.Next() {
		var s entity.PipelineStage
		if err := rows.Scan(&s.ID, &s.TenantID, &s.PipelineID, &s.Name, &s.Order, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline stage: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreateStage persists a new stage.
func (r *PipelineRepo) CreateStage(s *entity.PipelineStage) error {
	query := `
		INSERT INTO pipeline_stages (id, tenant_id, pipeline_id, name, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.PipelineID, s.Name, s.Order, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pipeline stage: %w", err)
	}
	return nil
}

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implements SubscriptionRepository over PostgreSQL.
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository builds the adapter. Pass a pool or a tx.
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// Create persists a new subscription. tenant_id is unique: one
// subscription per tenant.
func (r *SubscriptionRepo) Create(s *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, tenant_id, plan, status, seat_limit, price, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.Plan, s.Status, s.SeatLimit, s.Price,
		s.StartsAt, s.EndsAt, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByTenant returns the tenant's subscription, or nil when absent.
func (r *SubscriptionRepo) GetByTenant(tenantID string) (*entity.Subscription, error) {
	query := `
		SELECT id, tenant_id, plan, status, seat_limit, price, starts_at, ends_at, created_at, updated_at
		FROM subscriptions WHERE tenant_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(context.Background(), query, tenantID).Scan(
		&s.ID, &s.TenantID, &s.Plan, &s.Status, &s.SeatLimit, &s.Price,
		&s.StartsAt, &s.EndsAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}
