package tenant

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/tenant"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/testfixtures"
)

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

type brokenRepo struct {
	domain.Repository
}

func (brokenRepo) TenantExists(context.Context, string) (bool, error) {
	return false, httperr.BackendUnavailable("backend_unavailable", errors.New("connection refused"))
}

func setup(t *testing.T) (*gorm.DB, *repository.TenantGormRepository, *recorder, *testfixtures.Clock) {
	t.Helper()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	db := testfixtures.NewSQLite(t, clock)
	return db, repository.NewTenantGormRepository(db), &recorder{}, clock
}

func validInput(key string) ProvisionTenantInput {
	return ProvisionTenantInput{
		Key:           key,
		Name:          "Barbearia do Zé",
		Phone:         "11988887777",
		OpeningTime:   "08:00",
		ClosingTime:   "18:00",
		OperatingDays: []int{1, 2, 3, 4, 5, 6},
		CreatedBy:     "user-1",
	}
}

func countRows(t *testing.T, db *gorm.DB, model any, key string) int64 {
	t.Helper()
	var n int64
	col := "tenant_key"
	if _, ok := model.(*models.Tenant); ok {
		col = "contribuinte"
	}
	require.NoError(t, db.Model(model).Where(col+" = ?", key).Count(&n).Error)
	return n
}

func TestProvisionCreatesTenantSentinelAndCatalog(t *testing.T) {
	db, repo, rec, clock := setup(t)
	uc := NewProvisionTenant(repo, rec, clock.Now)

	b, err := uc.Execute(context.Background(), validInput("12345678"))
	require.NoError(t, err)
	require.Len(t, b.Services, 3)

	var tenant models.Tenant
	require.NoError(t, db.Where("contribuinte = ?", "12345678").First(&tenant).Error)
	assert.Equal(t, "Barbearia do Zé", tenant.Name)
	assert.Equal(t, "user-1", tenant.CreatedBy)
	assert.Equal(t, "America/Sao_Paulo", tenant.Timezone)
	assert.True(t, tenant.Active)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, tenant.OperatingDays)

	var sentinel models.Employee
	require.NoError(t, db.Where("tenant_key = ? AND id = ?", "12345678", models.AllEmployeesID).First(&sentinel).Error)
	assert.Equal(t, domain.SentinelEmployeeName, sentinel.Name)

	var services []models.Service
	require.NoError(t, db.Where("tenant_key = ?", "12345678").Order("category ASC").Find(&services).Error)
	require.Len(t, services, 3)
	assert.Equal(t, "Barba", services[0].Name)
	assert.Equal(t, 20, services[0].DurationMin)
	assert.True(t, services[0].Price.Equal(domain.SeedServices()[1].Price))
	assert.Equal(t, "Corte", services[1].Category)
	assert.Equal(t, "Pacote", services[2].Category)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "tenant_provisioned", rec.events[0].Action)
}

func TestProvisionTwiceFailsWithAlreadyExists(t *testing.T) {
	db, repo, rec, clock := setup(t)
	uc := NewProvisionTenant(repo, rec, clock.Now)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validInput("12345678"))
	require.NoError(t, err)

	again := validInput("12345678")
	again.Name = "Outra"
	_, err = uc.Execute(ctx, again)
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindAlreadyExists))

	var tenant models.Tenant
	require.NoError(t, db.Where("contribuinte = ?", "12345678").First(&tenant).Error)
	assert.Equal(t, "Barbearia do Zé", tenant.Name)
	assert.EqualValues(t, 3, countRows(t, db, &models.Service{}, "12345678"))
	assert.EqualValues(t, 1, countRows(t, db, &models.Employee{}, "12345678"))
}

func TestProvisionRacingWriterHitsPrimaryKey(t *testing.T) {
	db, repo, _, clock := setup(t)
	ctx := context.Background()

	newID := func() func() string {
		n := 0
		return func() string {
			n++
			return string(rune('a' + n))
		}
	}

	first := domain.NewBootstrap(models.Tenant{Key: "87654321", Name: "A"}, "u", clock.Now(), newID())
	require.NoError(t, repo.Provision(ctx, first))

	second := domain.NewBootstrap(models.Tenant{Key: "87654321", Name: "B"}, "u", clock.Now(), newID())
	err := repo.Provision(ctx, second)
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindAlreadyExists))
	assert.EqualValues(t, 3, countRows(t, db, &models.Service{}, "87654321"))
}

func TestProvisionIsAllOrNothing(t *testing.T) {
	db, repo, rec, clock := setup(t)

	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_services", func(tx *gorm.DB) {
		if tx.Statement.Table == "services" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	uc := NewProvisionTenant(repo, rec, clock.Now)
	_, err := uc.Execute(context.Background(), validInput("12345678"))
	require.Error(t, err)

	assert.EqualValues(t, 0, countRows(t, db, &models.Tenant{}, "12345678"))
	assert.EqualValues(t, 0, countRows(t, db, &models.Employee{}, "12345678"))
	assert.EqualValues(t, 0, countRows(t, db, &models.Service{}, "12345678"))
	assert.Empty(t, rec.events)
}

func TestProvisionValidation(t *testing.T) {
	_, repo, rec, clock := setup(t)
	uc := NewProvisionTenant(repo, rec, clock.Now)

	tests := []struct {
		name   string
		mutate func(in *ProvisionTenantInput)
		code   string
	}{
		{name: "empty key", mutate: func(in *ProvisionTenantInput) { in.Key = "" }, code: "invalid_tenant"},
		{name: "missing name", mutate: func(in *ProvisionTenantInput) { in.Name = "" }, code: "invalid_tenant"},
		{name: "missing creator", mutate: func(in *ProvisionTenantInput) { in.CreatedBy = "" }, code: "invalid_tenant"},
		{name: "bad opening", mutate: func(in *ProvisionTenantInput) { in.OpeningTime = "8h" }, code: "invalid_tenant"},
		{name: "bad weekday", mutate: func(in *ProvisionTenantInput) { in.OperatingDays = []int{1, 9} }, code: "invalid_tenant"},
		{name: "closing before opening", mutate: func(in *ProvisionTenantInput) { in.ClosingTime = "07:00" }, code: "invalid_operating_hours"},
		{name: "unknown timezone", mutate: func(in *ProvisionTenantInput) { in.Timezone = "Mars/Base" }, code: "invalid_timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("12345678")
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, httperr.KindInvalidInput))
			assert.True(t, httperr.IsBusiness(err, tt.code))
		})
	}
}

func TestProvisionRefusesWhenExistenceUnknown(t *testing.T) {
	_, _, rec, clock := setup(t)
	uc := NewProvisionTenant(brokenRepo{}, rec, clock.Now)

	_, err := uc.Execute(context.Background(), validInput("12345678"))
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindBackendUnavailable))
}

func TestExistsTenant(t *testing.T) {
	_, repo, rec, clock := setup(t)
	ctx := context.Background()
	exists := NewExistsTenant(repo)

	assert.False(t, exists.Execute(ctx, "12345678"))
	assert.False(t, exists.Execute(ctx, "12345678"))

	_, err := NewProvisionTenant(repo, rec, clock.Now).Execute(ctx, validInput("12345678"))
	require.NoError(t, err)

	assert.True(t, exists.Execute(ctx, "12345678"))
	assert.True(t, exists.Execute(ctx, "12345678"))
	assert.False(t, exists.Execute(ctx, ""))

	// No normalisation: a padded key is a different key.
	assert.False(t, exists.Execute(ctx, " 12345678 "))
	ok, err := exists.Strict(ctx, "12345678 ")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsTenantSwallowsBackendFailure(t *testing.T) {
	exists := NewExistsTenant(brokenRepo{})

	assert.False(t, exists.Execute(context.Background(), "12345678"))

	_, err := exists.Strict(context.Background(), "12345678")
	assert.True(t, httperr.IsKind(err, httperr.KindBackendUnavailable))
}

func TestManageUpdateAndDeactivate(t *testing.T) {
	_, repo, rec, clock := setup(t)
	ctx := context.Background()

	_, err := NewProvisionTenant(repo, rec, clock.Now).Execute(ctx, validInput("12345678"))
	require.NoError(t, err)

	later := clock.Advance(time.Hour)
	m := NewManage(repo, rec, clock.Now)

	name := "Barbearia Nova"
	closing := "20:00"
	updated, err := m.Update(ctx, "12345678", UpdateTenantInput{Name: &name, ClosingTime: &closing})
	require.NoError(t, err)
	assert.Equal(t, "Barbearia Nova", updated.Name)
	assert.Equal(t, "20:00", updated.ClosingTime)
	assert.Equal(t, "08:00", updated.OpeningTime)
	assert.True(t, updated.UpdatedAt.Equal(later))

	early := "07:00"
	_, err = m.Update(ctx, "12345678", UpdateTenantInput{ClosingTime: &early})
	assert.True(t, httperr.IsBusiness(err, "invalid_operating_hours"))

	_, err = m.Update(ctx, "nope", UpdateTenantInput{Name: &name})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	require.NoError(t, m.Deactivate(ctx, "12345678"))
	got, err := m.Get(ctx, "12345678")
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.True(t, httperr.IsKind(m.Deactivate(ctx, "nope"), httperr.KindNotFound))
}
