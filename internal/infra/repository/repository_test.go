package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/testfixtures"
)

const key = "12345678"

func TestTranslate(t *testing.T) {
	notFound := httperr.NotFound("thing_not_found")

	tests := []struct {
		name string
		err  error
		kind httperr.Kind
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, kind: httperr.KindNotFound},
		{name: "deadline", err: context.DeadlineExceeded, kind: httperr.KindBackendUnavailable},
		{name: "connection exception", err: &pgconn.PgError{Code: "08006"}, kind: httperr.KindBackendUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, kind: httperr.KindBackendUnavailable},
		{name: "syntax error", err: &pgconn.PgError{Code: "42601"}, kind: ""},
		{name: "business kept", err: httperr.SlotConflict("time_conflict"), kind: httperr.KindSlotConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate("op", fmt.Errorf("wrapped: %w", tt.err), notFound)
			require.Error(t, got)
			assert.Equal(t, tt.kind, httperr.KindOf(got))
		})
	}

	assert.NoError(t, translate("op", nil, notFound))
	assert.False(t, httperr.IsKind(translate("op", gorm.ErrRecordNotFound, nil), httperr.KindNotFound))
}

func TestConstraintClassifiers(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("x: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, IsUniqueViolation(errors.New("other")))
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
}

func newDB(t *testing.T) (*gorm.DB, *testfixtures.Seed) {
	t.Helper()
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	db := testfixtures.NewSQLite(t, clock)
	seed := testfixtures.NewSeed(t, db, key)
	seed.Tenant()
	return db, seed
}

func TestSlotIndexRejectsSecondLiveBooking(t *testing.T) {
	db, seed := newDB(t)
	e := seed.Employee("Ana")
	c := seed.Client("João")

	seed.Appointment(e.ID, c.ID, "2024-06-10", "09:00", "09:30", string(domain.StatusScheduled))

	dup := models.Appointment{
		TenantKey: key, ID: "dup", EmployeeID: e.ID, ClientID: c.ID, ServiceIDs: []string{},
		Date: "2024-06-10", StartTime: "09:00", EndTime: "09:20", TotalPrice: decimal.Zero,
		Status: string(domain.StatusConfirmed),
	}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	// cancelled rows are outside the index
	seed.Appointment(e.ID, c.ID, "2024-06-10", "09:00", "09:30", string(domain.StatusCancelled))
}

func TestCreateAppointmentDetectsOverlap(t *testing.T) {
	db, seed := newDB(t)
	repo := NewAppointmentGormRepository(db)
	e := seed.Employee("Ana")
	c := seed.Client("João")
	seed.Appointment(e.ID, c.ID, "2024-06-10", "09:00", "09:30", string(domain.StatusScheduled))

	ap := &models.Appointment{
		TenantKey: key, ID: "new", EmployeeID: e.ID, ClientID: c.ID, ServiceIDs: []string{},
		Date: "2024-06-10", StartTime: "09:10", EndTime: "09:40", TotalPrice: decimal.Zero,
		Status: string(domain.StatusScheduled),
	}
	err := repo.CreateAppointment(context.Background(), ap)
	assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))

	_, err = repo.GetAppointment(context.Background(), key, "new")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestListAppointmentsFilters(t *testing.T) {
	db, seed := newDB(t)
	repo := NewAppointmentGormRepository(db)
	ana := seed.Employee("Ana")
	bruno := seed.Employee("Bruno")
	c := seed.Client("João")

	seed.Appointment(ana.ID, c.ID, "2024-06-11", "09:00", "09:30", string(domain.StatusScheduled))
	seed.Appointment(ana.ID, c.ID, "2024-06-10", "10:00", "10:30", string(domain.StatusCompleted))
	seed.Appointment(bruno.ID, c.ID, "2024-06-10", "08:00", "08:30", string(domain.StatusScheduled))

	ctx := context.Background()

	all, err := repo.ListAppointments(ctx, key, domain.Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "08:00", all[0].StartTime)
	assert.Equal(t, "2024-06-11", all[2].Date)

	sentinel, err := repo.ListAppointments(ctx, key, domain.Query{EmployeeID: models.AllEmployeesID})
	require.NoError(t, err)
	assert.Len(t, sentinel, 3)

	anaOnly, err := repo.ListAppointments(ctx, key, domain.Query{EmployeeID: ana.ID, DateFrom: "2024-06-10", DateTo: "2024-06-10"})
	require.NoError(t, err)
	require.Len(t, anaOnly, 1)
	assert.Equal(t, "10:00", anaOnly[0].StartTime)

	scheduled, err := repo.ListAppointments(ctx, key, domain.Query{Statuses: []domain.Status{domain.StatusScheduled}})
	require.NoError(t, err)
	assert.Len(t, scheduled, 2)
}

func TestGetActiveServicesKeepsRequestOrder(t *testing.T) {
	db, seed := newDB(t)
	repo := NewAppointmentGormRepository(db)
	a := seed.Service("A", 10, "1")
	b := seed.Service("B", 20, "2")

	got, err := repo.GetActiveServices(context.Background(), key, []string{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)

	_, err = repo.GetActiveServices(context.Background(), key, []string{a.ID, "missing"})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestTenantExists(t *testing.T) {
	db, _ := newDB(t)
	repo := NewTenantGormRepository(db)

	ok, err := repo.TenantExists(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TenantExists(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, ok)
}
