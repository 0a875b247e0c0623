package directory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/testfixtures"
)

const key = "12345678"

type fixture struct {
	db    *gorm.DB
	seed  *testfixtures.Seed
	clock *testfixtures.Clock
}

func setup(t *testing.T) (*Directory, *fixture) {
	t.Helper()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	db := testfixtures.NewSQLite(t, clock)
	seed := testfixtures.NewSeed(t, db, key)
	seed.Tenant()
	d := New(repository.NewDirectoryGormRepository(db), audit.Nop{}, clock.Now)
	return d, &fixture{db: db, seed: seed, clock: clock}
}

func ptr[T any](v T) *T { return &v }

func TestEmployeesListedByNameWithoutSentinel(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	for _, name := range []string{"Carlos", "Ana", "Bruno"} {
		_, err := d.CreateEmployee(ctx, key, CreateEmployeeInput{Name: name})
		require.NoError(t, err)
	}

	list, err := d.ListEmployees(ctx, key)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Ana", "Bruno", "Carlos"}, names)
}

func TestEmployeesAreTenantScoped(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	_, err := d.CreateEmployee(ctx, key, CreateEmployeeInput{Name: "Ana"})
	require.NoError(t, err)

	list, err := d.ListEmployees(ctx, "99999999")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateRequiresActiveTenant(t *testing.T) {
	d, fx := setup(t)
	ctx := context.Background()

	_, err := d.CreateEmployee(ctx, "ghost", CreateEmployeeInput{Name: "Ana"})
	assert.True(t, httperr.IsBusiness(err, "tenant_not_found"))
	_, err = d.CreateClient(ctx, "ghost", CreateClientInput{Name: "João"})
	assert.True(t, httperr.IsBusiness(err, "tenant_not_found"))
	_, err = d.CreateService(ctx, "ghost", CreateServiceInput{
		Name: "Corte", DurationMin: 30, Price: decimal.RequireFromString("40.00"),
	})
	assert.True(t, httperr.IsBusiness(err, "tenant_not_found"))

	var count int64
	require.NoError(t, fx.db.Model(&models.Employee{}).Where("tenant_key = ?", "ghost").Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, fx.db.Model(&models.Tenant{}).
		Where("contribuinte = ?", key).
		Update("active", false).Error)

	_, err = d.CreateClient(ctx, key, CreateClientInput{Name: "João"})
	assert.True(t, httperr.IsBusiness(err, "tenant_inactive"))
	_, err = d.CreateEmployee(ctx, key, CreateEmployeeInput{Name: "Ana"})
	assert.True(t, httperr.IsBusiness(err, "tenant_inactive"))
}

func TestSentinelCannotBeEditedOrDeactivated(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	_, err := d.UpdateEmployee(ctx, key, models.AllEmployeesID, UpdateEmployeeInput{Name: ptr("X")})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	err = d.DeactivateEmployee(ctx, key, models.AllEmployeesID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = d.SetWorkingHours(ctx, key, models.AllEmployeesID, SetWorkingHoursInput{})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestUpdateIsPartialAndRefreshesTimestamp(t *testing.T) {
	d, fx := setup(t)
	ctx := context.Background()

	c, err := d.CreateClient(ctx, key, CreateClientInput{Name: "João", Phone: "11911112222", Email: "joao@example.com"})
	require.NoError(t, err)

	later := fx.clock.Advance(2 * time.Hour)
	updated, err := d.UpdateClient(ctx, key, c.ID, UpdateClientInput{Phone: ptr("11933334444")})
	require.NoError(t, err)

	assert.Equal(t, "João", updated.Name)
	assert.Equal(t, "joao@example.com", updated.Email)
	assert.Equal(t, "11933334444", updated.Phone)
	assert.True(t, updated.UpdatedAt.Equal(later))
}

func TestSoftDeleteNeverResurrects(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	s, err := d.CreateService(ctx, key, CreateServiceInput{
		Name:        "Sobrancelha",
		DurationMin: 10,
		Price:       decimal.RequireFromString("10.00"),
		Category:    "Extras",
	})
	require.NoError(t, err)

	require.NoError(t, d.DeactivateService(ctx, key, s.ID))

	_, err = d.UpdateService(ctx, key, s.ID, UpdateServiceInput{Name: ptr("Sobrancelha Premium")})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	err = d.DeactivateService(ctx, key, s.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	list, err := d.ListServices(ctx, key, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServicesSortedByCategoryThenName(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	in := []CreateServiceInput{
		{Name: "Degradê", DurationMin: 40, Price: decimal.NewFromInt(30), Category: "Corte"},
		{Name: "Barba Completa", DurationMin: 25, Price: decimal.NewFromInt(20), Category: "Barba"},
		{Name: "Americano", DurationMin: 30, Price: decimal.NewFromInt(25), Category: "Corte"},
	}
	for _, s := range in {
		_, err := d.CreateService(ctx, key, s)
		require.NoError(t, err)
	}

	list, err := d.ListServices(ctx, key, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Barba Completa", list[0].Name)
	assert.Equal(t, "Americano", list[1].Name)
	assert.Equal(t, "Degradê", list[2].Name)

	cortes, err := d.ListServices(ctx, key, "corte")
	require.NoError(t, err)
	assert.Len(t, cortes, 2)
}

func TestServiceValidation(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateServiceInput
		code string
	}{
		{name: "zero duration", in: CreateServiceInput{Name: "X", DurationMin: 0, Price: decimal.Zero}, code: "invalid_service"},
		{name: "negative duration", in: CreateServiceInput{Name: "X", DurationMin: -5, Price: decimal.Zero}, code: "invalid_service"},
		{name: "negative price", in: CreateServiceInput{Name: "X", DurationMin: 5, Price: decimal.NewFromInt(-1)}, code: "invalid_price"},
		{name: "missing name", in: CreateServiceInput{DurationMin: 5}, code: "invalid_service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.CreateService(ctx, key, tt.in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.code))
		})
	}
}

func TestClientSearch(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	_, err := d.CreateClient(ctx, key, CreateClientInput{Name: "Maria Souza", Phone: "11900000001"})
	require.NoError(t, err)
	_, err = d.CreateClient(ctx, key, CreateClientInput{Name: "Pedro Lima", Phone: "11900000002", Email: "pedro@example.com"})
	require.NoError(t, err)

	byName, err := d.ListClients(ctx, key, "souza")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Maria Souza", byName[0].Name)

	byEmail, err := d.ListClients(ctx, key, "PEDRO@")
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	all, err := d.ListClients(ctx, key, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = d.CreateClient(ctx, key, CreateClientInput{Name: "Ana", BirthDate: ptr("1990-02-31")})
	assert.True(t, httperr.IsBusiness(err, "invalid_client"))
}

func TestWorkingHoursReplace(t *testing.T) {
	d, _ := setup(t)
	ctx := context.Background()

	e, err := d.CreateEmployee(ctx, key, CreateEmployeeInput{Name: "Ana"})
	require.NoError(t, err)

	days, err := d.SetWorkingHours(ctx, key, e.ID, SetWorkingHoursInput{Days: []WorkingDayInput{
		{Weekday: 2, StartTime: "09:00", EndTime: "17:00", LunchStart: "12:00", LunchEnd: "13:00", Active: true},
		{Weekday: 1, StartTime: "10:00", EndTime: "16:00", Active: true},
	}})
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Weekday)

	days, err = d.SetWorkingHours(ctx, key, e.ID, SetWorkingHoursInput{Days: []WorkingDayInput{
		{Weekday: 5, StartTime: "08:00", EndTime: "12:00", Active: true},
	}})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 5, days[0].Weekday)

	invalid := []struct {
		name string
		day  WorkingDayInput
		code string
	}{
		{name: "end before start", day: WorkingDayInput{Weekday: 1, StartTime: "17:00", EndTime: "09:00"}, code: "invalid_working_hours"},
		{name: "lunch outside day", day: WorkingDayInput{Weekday: 1, StartTime: "09:00", EndTime: "12:00", LunchStart: "12:00", LunchEnd: "13:00"}, code: "invalid_lunch"},
		{name: "half lunch", day: WorkingDayInput{Weekday: 1, StartTime: "09:00", EndTime: "18:00", LunchStart: "12:00"}, code: "invalid_lunch"},
		{name: "bad weekday", day: WorkingDayInput{Weekday: 8, StartTime: "09:00", EndTime: "18:00"}, code: "invalid_working_hours"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.SetWorkingHours(ctx, key, e.ID, SetWorkingHoursInput{Days: []WorkingDayInput{tt.day}})
			assert.True(t, httperr.IsBusiness(err, tt.code))
		})
	}

	_, err = d.SetWorkingHours(ctx, key, e.ID, SetWorkingHoursInput{Days: []WorkingDayInput{
		{Weekday: 1, StartTime: "09:00", EndTime: "18:00"},
		{Weekday: 1, StartTime: "10:00", EndTime: "18:00"},
	}})
	assert.True(t, httperr.IsBusiness(err, "duplicate_weekday"))
}

func TestDeactivatedEmployeeKeepsHistory(t *testing.T) {
	d, fx := setup(t)
	ctx := context.Background()

	e := fx.seed.Employee("Ana")
	c := fx.seed.Client("João")
	ap := fx.seed.Appointment(e.ID, c.ID, "2026-03-10", "10:00", "10:30", "scheduled")

	require.NoError(t, d.DeactivateEmployee(ctx, key, e.ID))

	var stored models.Appointment
	require.NoError(t, fx.db.Where("tenant_key = ? AND id = ?", key, ap.ID).First(&stored).Error)
	assert.Equal(t, e.ID, stored.EmployeeID)
	assert.Equal(t, "scheduled", stored.Status)

	list, err := d.ListEmployees(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, list)
}
