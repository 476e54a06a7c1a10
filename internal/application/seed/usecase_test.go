package seed_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/parsa-dev/crm-pro/internal/application/seed"
	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/money"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

// memStore is an in-memory rendition of every repository the seeder
// touches, so idempotence can be asserted over two full runs.
type memStore struct {
	tenants       []*entity.Tenant
	users         []*entity.User
	memberships   map[string]*entity.Membership // tenantID+userID
	pipelines     []*entity.Pipeline
	stages        []*entity.PipelineStage
	subscriptions []*entity.Subscription
	companies     []*entity.Company
	contacts      []*entity.Contact
	deals         []*entity.Deal
	tasks         []*entity.Task
	activities    []*entity.Activity

	passwordResets int
}

func newMemStore() *memStore {
	return &memStore{memberships: map[string]*entity.Membership{}}
}

// Tenant repository.

type tenantStore struct{ *memStore }

func (s tenantStore) Create(t *entity.Tenant) error {
	s.memStore.tenants = append(s.memStore.tenants, t)
	return nil
}
func (s tenantStore) GetBySlug(slug string) (*entity.Tenant, error) {
	for _, t := range s.memStore.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}
func (s tenantStore) List() ([]*entity.Tenant, error) { return s.memStore.tenants, nil }

// User repository.

type userStore struct{ *memStore }

func (s userStore) Create(u *entity.User) error {
	s.memStore.users = append(s.memStore.users, u)
	return nil
}
func (s userStore) GetByEmail(email string) (*entity.User, error) {
	for _, u := range s.memStore.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (s userStore) UpdatePasswordHash(id, hash string) error {
	for _, u := range s.memStore.users {
		if u.ID == id {
			u.PasswordHash = hash
			s.memStore.passwordResets++
			return nil
		}
	}
	return domain.ErrNotFound
}

// Membership repository.

type membershipStore struct{ *memStore }

func (s membershipStore) Upsert(m *entity.Membership) error {
	s.memStore.memberships[m.TenantID+"/"+m.UserID] = m
	return nil
}
func (s membershipStore) GetByTenantAndUser(tenantID, userID string) (*entity.Membership, error) {
	return s.memStore.memberships[tenantID+"/"+userID], nil
}

// Pipeline repository.

type pipelineStore struct{ *memStore }

func (s pipelineStore) Create(p *entity.Pipeline) error {
	s.memStore.pipelines = append(s.memStore.pipelines, p)
	return nil
}
func (s pipelineStore) GetDefaultByTenant(tenantID string) (*entity.Pipeline, error) {
	for _, p := range s.memStore.pipelines {
		if p.TenantID == tenantID && p.IsDefault {
			return p, nil
		}
	}
	for _, p := range s.memStore.pipelines {
		if p.TenantID == tenantID {
			return p, nil
		}
	}
	return nil, nil
}
func (s pipelineStore) ListStages(pipelineID string) ([]*entity.PipelineStage, error) {
	var out []*entity.PipelineStage
	for _, st := range s.memStore.stages {
		if st.PipelineID == pipelineID {
			out = append(out, st)
		}
	}
	return out, nil
}
func (s pipelineStore) CreateStage(st *entity.PipelineStage) error {
	s.memStore.stages = append(s.memStore.stages, st)
	return nil
}

// Subscription repository.

type subscriptionStore struct{ *memStore }

func (s subscriptionStore) Create(sub *entity.Subscription) error {
	s.memStore.subscriptions = append(s.memStore.subscriptions, sub)
	return nil
}
func (s subscriptionStore) GetByTenant(tenantID string) (*entity.Subscription, error) {
	for _, sub := range s.memStore.subscriptions {
		if sub.TenantID == tenantID {
			return sub, nil
		}
	}
	return nil, nil
}

// CRM repositories.

type companyStore struct{ *memStore }

func (s companyStore) Create(c *entity.Company) error {
	s.memStore.companies = append(s.memStore.companies, c)
	return nil
}
func (s companyStore) GetByName(tenantID, name string) (*entity.Company, error) {
	for _, c := range s.memStore.companies {
		if c.TenantID == tenantID && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

type contactStore struct{ *memStore }

func (s contactStore) Create(c *entity.Contact) error {
	s.memStore.contacts = append(s.memStore.contacts, c)
	return nil
}
func (s contactStore) GetByName(tenantID, firstName, lastName string) (*entity.Contact, error) {
	for _, c := range s.memStore.contacts {
		if c.TenantID == tenantID && c.FirstName == firstName && c.LastName == lastName {
			return c, nil
		}
	}
	return nil, nil
}

type dealStore struct{ *memStore }

func (s dealStore) Create(d *entity.Deal) error {
	s.memStore.deals = append(s.memStore.deals, d)
	return nil
}
func (s dealStore) GetByTitle(tenantID, title string) (*entity.Deal, error) {
	for _, d := range s.memStore.deals {
		if d.TenantID == tenantID && d.Title == title {
			return d, nil
		}
	}
	return nil, nil
}
func (s dealStore) ListByTenant(tenantID string) ([]*entity.Deal, error) {
	return s.memStore.deals, nil
}
func (s dealStore) CountItems(dealID string) (int, error)            { return 0, nil }
func (s dealStore) CreateItem(item *entity.DealItem) error           { return nil }
func (s dealStore) UpdateTotals(id string, t money.DealTotals) error { return nil }

type taskStore struct{ *memStore }

func (s taskStore) Create(t *entity.Task) error {
	s.memStore.tasks = append(s.memStore.tasks, t)
	return nil
}
func (s taskStore) GetByTitle(tenantID, title string) (*entity.Task, error) {
	for _, t := range s.memStore.tasks {
		if t.TenantID == tenantID && t.Title == title {
			return t, nil
		}
	}
	return nil, nil
}

type activityStore struct{ *memStore }

func (s activityStore) Create(a *entity.Activity) error {
	s.memStore.activities = append(s.memStore.activities, a)
	return nil
}
func (s activityStore) GetBySubject(tenantID, subject string) (*entity.Activity, error) {
	for _, a := range s.memStore.activities {
		if a.TenantID == tenantID && a.Subject == subject {
			return a, nil
		}
	}
	return nil, nil
}

func buildSeeder(store *memStore) *seed.UseCase {
	return seed.NewUseCase(
		tenantStore{store},
		userStore{store},
		membershipStore{store},
		pipelineStore{store},
		subscriptionStore{store},
		companyStore{store},
		contactStore{store},
		dealStore{store},
		taskStore{store},
		activityStore{store},
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
}

func TestGuard(t *testing.T) {
	assert.NoError(t, seed.Guard("development", ""))
	assert.NoError(t, seed.Guard("staging", ""))
	assert.NoError(t, seed.Guard("production", "true"))

	err := seed.Guard("production", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGuardRejected)
	assert.ErrorIs(t, seed.Guard("production", "TRUE"), domain.ErrGuardRejected)
}

func TestRun_CreatesFullFixture(t *testing.T) {
	store := newMemStore()
	require.NoError(t, buildSeeder(store).Run())

	require.Len(t, store.tenants, 1)
	tenant := store.tenants[0]
	assert.Equal(t, seed.DemoTenantSlug, tenant.Slug)
	assert.Equal(t, seed.DemoTenantName, tenant.Name)

	require.Len(t, store.users, 1)
	user := store.users[0]
	assert.Equal(t, seed.DemoUserEmail, user.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Demo@1234")))

	m := store.memberships[tenant.ID+"/"+user.ID]
	require.NotNil(t, m)
	assert.Equal(t, entity.MembershipRoleOwner, m.Role)
	assert.Equal(t, entity.MembershipStatusActive, m.Status)

	require.Len(t, store.pipelines, 1)
	assert.True(t, store.pipelines[0].IsDefault)
	require.Len(t, store.stages, len(seed.DefaultStageNames))
	for i, st := range store.stages {
		assert.Equal(t, seed.DefaultStageNames[i], st.Name)
		assert.Equal(t, i, st.Order)
	}

	require.Len(t, store.subscriptions, 1)
	assert.Equal(t, entity.PlanPro, store.subscriptions[0].Plan)

	require.Len(t, store.deals, 1)
	deal := store.deals[0]
	assert.Equal(t, store.stages[0].ID, deal.StageID, "deal must sit in the first stage")
	assert.True(t, deal.Amount.IsZero())

	assert.Len(t, store.companies, 1)
	assert.Len(t, store.contacts, 1)
	assert.Len(t, store.tasks, 1)
	assert.Len(t, store.activities, 1)
}

func TestRun_IsIdempotent(t *testing.T) {
	store := newMemStore()
	uc := buildSeeder(store)

	require.NoError(t, uc.Run())
	firstStageIDs := make([]string, len(store.stages))
	for i, st := range store.stages {
		firstStageIDs[i] = st.ID
	}

	require.NoError(t, uc.Run())

	assert.Len(t, store.tenants, 1)
	assert.Len(t, store.users, 1)
	assert.Len(t, store.pipelines, 1)
	assert.Len(t, store.subscriptions, 1)
	assert.Len(t, store.companies, 1)
	assert.Len(t, store.contacts, 1)
	assert.Len(t, store.deals, 1)
	assert.Len(t, store.tasks, 1)
	assert.Len(t, store.activities, 1)

	require.Len(t, store.stages, len(seed.DefaultStageNames))
	for i, st := range store.stages {
		assert.Equal(t, firstStageIDs[i], st.ID, "existing stages must be kept")
	}

	// The demo password is re-hashed on every run.
	assert.Equal(t, 1, store.passwordResets)
}

func TestRun_RepairsMissingStagesAdditively(t *testing.T) {
	store := newMemStore()
	uc := buildSeeder(store)
	require.NoError(t, uc.Run())

	// An operator renamed one stage and dropped another; re-running must
	// append the missing names after the highest order without touching
	// what is there.
	store.stages[1].Name = "تماس گرفته شد"
	kept := store.stages[:3] // drop "بسته شده"
	store.stages = append([]*entity.PipelineStage{}, kept...)

	require.NoError(t, uc.Run())

	require.Len(t, store.stages, 5)
	assert.Equal(t, "تماس گرفته شد", store.stages[1].Name)
	assert.Equal(t, 1, store.stages[1].Order)

	appended := store.stages[3:]
	assert.Equal(t, "در حال پیگیری", appended[0].Name)
	assert.Equal(t, 3, appended[0].Order)
	assert.Equal(t, "بسته شده", appended[1].Name)
	assert.Equal(t, 4, appended[1].Order)
}
