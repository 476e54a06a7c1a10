// Package seed creates the demo tenant fixture. Every step is idempotent:
// re-running never duplicates rows and never destroys what a previous run
// (or the application itself) created.
package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

// Demo fixture constants.
const (
	DemoTenantSlug = "demo"
	DemoTenantName = "شرکت نمونه"
	DemoUserEmail  = "demo@crm-pro.ir"
	DemoUserName   = "کاربر نمونه"
	demoPassword   = "Demo@1234"

	demoPipelineName = "کاریز فروش"
	demoSeatLimit    = 5
)

// DefaultStageNames are the four stages of the demo pipeline, in order.
// Stage repair matches by exact name.
var DefaultStageNames = []string{
	"جدید",
	"در حال پیگیری",
	"پیشنهاد ارسال شد",
	"بسته شده",
}

// Guard refuses to seed a production database unless ALLOW_DEMO_SEED is
// explicitly set to "true".
func Guard(appEnv, allowDemoSeed string) error {
	if appEnv == "production" && allowDemoSeed != "true" {
		return fmt.Errorf("%w: refusing to seed demo data with APP_ENV=production (set ALLOW_DEMO_SEED=true to override)", domain.ErrGuardRejected)
	}
	return nil
}

// UseCase seeds the demo tenant and its fixture graph.
type UseCase struct {
	tenants       repository.TenantRepository
	users         repository.UserRepository
	memberships   repository.MembershipRepository
	pipelines     repository.PipelineRepository
	subscriptions repository.SubscriptionRepository
	companies     repository.CompanyRepository
	contacts      repository.ContactRepository
	deals         repository.DealRepository
	tasks         repository.TaskRepository
	activities    repository.ActivityRepository
	log           *logger.Logger
}

// NewUseCase wires the seeder.
func NewUseCase(
	tenants repository.TenantRepository,
	users repository.UserRepository,
	memberships repository.MembershipRepository,
	pipelines repository.PipelineRepository,
	subscriptions repository.SubscriptionRepository,
	companies repository.CompanyRepository,
	contacts repository.ContactRepository,
	deals repository.DealRepository,
	tasks repository.TaskRepository,
	activities repository.ActivityRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenants:       tenants,
		users:         users,
		memberships:   memberships,
		pipelines:     pipelines,
		subscriptions: subscriptions,
		companies:     companies,
		contacts:      contacts,
		deals:         deals,
		tasks:         tasks,
		activities:    activities,
		log:           log,
	}
}

// Run seeds the whole fixture. Each step commits independently; a failure
// aborts without rolling back earlier steps.
func (uc *UseCase) Run() error {
	tenant, err := uc.ensureTenant()
	if err != nil {
		return err
	}
	user, err := uc.ensureUser()
	if err != nil {
		return err
	}
	if err := uc.ensureMembership(tenant, user); err != nil {
		return err
	}
	pipeline, stages, err := uc.ensurePipeline(tenant)
	if err != nil {
		return err
	}
	if err := uc.ensureSubscription(tenant); err != nil {
		return err
	}
	company, err := uc.ensureCompany(tenant)
	if err != nil {
		return err
	}
	contact, err := uc.ensureContact(tenant, company)
	if err != nil {
		return err
	}
	deal, err := uc.ensureDeal(tenant, pipeline, stages, contact, company, user)
	if err != nil {
		return err
	}
	if err := uc.ensureTask(tenant, deal, contact, user); err != nil {
		return err
	}
	if err := uc.ensureActivity(tenant, deal, contact, user); err != nil {
		return err
	}

	uc.log.Info().Str("slug", tenant.Slug).Str("tenant_id", tenant.ID).Msg("demo tenant seeded")
	return nil
}

// ensureTenant locates the tenant by slug, creating it when absent. An
// existing tenant is left structurally unchanged.
func (uc *UseCase) ensureTenant() (*entity.Tenant, error) {
	tenant, err := uc.tenants.GetBySlug(DemoTenantSlug)
	if err != nil {
		return nil, fmt.Errorf("seed tenant: %w", err)
	}
	if tenant != nil {
		return tenant, nil
	}
	now := time.Now().UTC()
	tenant = &entity.Tenant{
		ID:        uuid.New().String(),
		Slug:      DemoTenantSlug,
		Name:      DemoTenantName,
		Status:    entity.TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenants.Create(tenant); err != nil {
		return nil, fmt.Errorf("seed tenant: %w", err)
	}
	return tenant, nil
}

// ensureUser locates the demo user by email. A missing user is created; an
// existing one gets its password hash refreshed unconditionally, which is
// the "reset demo password" semantics.
func (uc *UseCase) ensureUser() (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	user, err := uc.users.GetByEmail(DemoUserEmail)
	if err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	if user != nil {
		if err := uc.users.UpdatePasswordHash(user.ID, string(hash)); err != nil {
			return nil, fmt.Errorf("reset demo password: %w", err)
		}
		return user, nil
	}

	now := time.Now().UTC()
	user = &entity.User{
		ID:           uuid.New().String(),
		Email:        DemoUserEmail,
		PasswordHash: string(hash),
		Name:         DemoUserName,
		Phone:        "+989121234567",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

func (uc *UseCase) ensureMembership(tenant *entity.Tenant, user *entity.User) error {
	now := time.Now().UTC()
	m := &entity.Membership{
		ID:        uuid.New().String(),
		TenantID:  tenant.ID,
		UserID:    user.ID,
		Role:      entity.MembershipRoleOwner,
		Status:    entity.MembershipStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.memberships.Upsert(m); err != nil {
		return fmt.Errorf("seed membership: %w", err)
	}
	return nil
}

// ensurePipeline creates the default pipeline with its four stages, or
// additively repairs an existing pipeline: stages missing by exact name
// are appended after the current highest order, existing stages keep
// their order values untouched.
func (uc *UseCase) ensurePipeline(tenant *entity.Tenant) (*entity.Pipeline, []*entity.PipelineStage, error) {
	now := time.Now().UTC()

	pipeline, err := uc.pipelines.GetDefaultByTenant(tenant.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("seed pipeline: %w", err)
	}
	if pipeline == nil {
		pipeline = &entity.Pipeline{
			ID:        uuid.New().String(),
			TenantID:  tenant.ID,
			Name:      demoPipelineName,
			IsDefault: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.pipelines.Create(pipeline); err != nil {
			return nil, nil, fmt.Errorf("seed pipeline: %w", err)
		}
	}

	stages, err := uc.pipelines.ListStages(pipeline.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list pipeline stages: %w", err)
	}

	existing := make(map[string]bool, len(stages))
	nextOrder := 0
	for _, s := range stages {
		existing[s.Name] = true
		if s.Order >= nextOrder {
			nextOrder = s.Order + 1
		}
	}
	for _, name := range DefaultStageNames {
		if existing[name] {
			continue
		}
		stage := &entity.PipelineStage{
			ID:         uuid.New().String(),
			TenantID:   tenant.ID,
			PipelineID: pipeline.ID,
			Name:       name,
			Order:      nextOrder,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.pipelines.CreateStage(stage); err != nil {
			return nil, nil, fmt.Errorf("seed pipeline stage %q: %w", name, err)
		}
		stages = append(stages, stage)
		nextOrder++
	}

	return pipeline, stages, nil
}

// ensureSubscription creates the subscription only when absent; an
// existing one is never modified, whatever its plan window looks like.
func (uc *UseCase) ensureSubscription(tenant *entity.Tenant) error {
	sub, err := uc.subscriptions.GetByTenant(tenant.ID)
	if err != nil {
		return fmt.Errorf("seed subscription: %w", err)
	}
	if sub != nil {
		return nil
	}
	now := time.Now().UTC()
	sub = &entity.Subscription{
		ID:        uuid.New().String(),
		TenantID:  tenant.ID,
		Plan:      entity.PlanPro,
		Status:    "ACTIVE",
		SeatLimit: demoSeatLimit,
		Price:     decimal.NewFromInt(42_000_000),
		StartsAt:  now,
		EndsAt:    now.AddDate(1, 0, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.subscriptions.Create(sub); err != nil {
		return fmt.Errorf("seed subscription: %w", err)
	}
	return nil
}

func (uc *UseCase) ensureCompany(tenant *entity.Tenant) (*entity.Company, error) {
	const name = "آریا تجارت پارس"
	company, err := uc.companies.GetByName(tenant.ID, name)
	if err != nil {
		return nil, fmt.Errorf("seed company: %w", err)
	}
	if company != nil {
		return company, nil
	}
	now := time.Now().UTC()
	company = &entity.Company{
		ID:        uuid.New().String(),
		TenantID:  tenant.ID,
		Name:      name,
		Phone:     "+982188776655",
		City:      "تهران",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companies.Create(company); err != nil {
		return nil, fmt.Errorf("seed company: %w", err)
	}
	return company, nil
}

func (uc *UseCase) ensureContact(tenant *entity.Tenant, company *entity.Company) (*entity.Contact, error) {
	const (
		firstName = "سارا"
		lastName  = "محمدی"
	)
	contact, err := uc.contacts.GetByName(tenant.ID, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("seed contact: %w", err)
	}
	if contact != nil {
		return contact, nil
	}
	now := time.Now().UTC()
	contact = &entity.Contact{
		ID:        uuid.New().String(),
		TenantID:  tenant.ID,
		CompanyID: &company.ID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     "sara.mohammadi@example.ir",
		Phone:     "+989351112233",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.contacts.Create(contact); err != nil {
		return nil, fmt.Errorf("seed contact: %w", err)
	}
	return contact, nil
}

func (uc *UseCase) ensureDeal(
	tenant *entity.Tenant,
	pipeline *entity.Pipeline,
	stages []*entity.PipelineStage,
	contact *entity.Contact,
	company *entity.Company,
	owner *entity.User,
) (*entity.Deal, error) {
	const title = "استقرار CRM سازمانی"
	deal, err := uc.deals.GetByTitle(tenant.ID, title)
	if err != nil {
		return nil, fmt.Errorf("seed deal: %w", err)
	}
	if deal != nil {
		return deal, nil
	}

	stageID := firstStageID(stages)
	now := time.Now().UTC()
	deal = &entity.Deal{
		ID:             uuid.New().String(),
		TenantID:       tenant.ID,
		PipelineID:     pipeline.ID,
		StageID:        stageID,
		ContactID:      &contact.ID,
		CompanyID:      &company.ID,
		OwnerID:        &owner.ID,
		Title:          title,
		Status:         entity.DealStatusOpen,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		Amount:         decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.deals.Create(deal); err != nil {
		return nil, fmt.Errorf("seed deal: %w", err)
	}
	return deal, nil
}

func firstStageID(stages []*entity.PipelineStage) string {
	if len(stages) == 0 {
		return ""
	}
	first := stages[0]
	for _, s := range stages[1:] {
		if s.Order < first.Order {
			first = s
		}
	}
	return first.ID
}

func (uc *UseCase) ensureTask(tenant *entity.Tenant, deal *entity.Deal, contact *entity.Contact, assignee *entity.User) error {
	const title = "پیگیری تماس اولیه"
	task, err := uc.tasks.GetByTitle(tenant.ID, title)
	if err != nil {
		return fmt.Errorf("seed task: %w", err)
	}
	if task != nil {
		return nil
	}
	now := time.Now().UTC()
	due := now.AddDate(0, 0, 3)
	task = &entity.Task{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		DealID:     &deal.ID,
		ContactID:  &contact.ID,
		AssigneeID: &assignee.ID,
		Title:      title,
		Status:     entity.TaskStatusOpen,
		DueAt:      &due,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.tasks.Create(task); err != nil {
		return fmt.Errorf("seed task: %w", err)
	}
	return nil
}

func (uc *UseCase) ensureActivity(tenant *entity.Tenant, deal *entity.Deal, contact *entity.Contact, user *entity.User) error {
	const subject = "تماس معارفه"
	activity, err := uc.activities.GetBySubject(tenant.ID, subject)
	if err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	if activity != nil {
		return nil
	}
	now := time.Now().UTC()
	activity = &entity.Activity{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		DealID:     &deal.ID,
		ContactID:  &contact.ID,
		UserID:     &user.ID,
		Type:       entity.ActivityTypeCall,
		Subject:    subject,
		Body:       "معرفی محصول و هماهنگی جلسه دمو",
		OccurredAt: now,
		CreatedAt:  now,
	}
	if err := uc.activities.Create(activity); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	return nil
}
