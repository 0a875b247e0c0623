package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/testfixtures"
)

const tenantKey = "12345678"

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type env struct {
	db    *gorm.DB
	clock *testfixtures.Clock
	seed  *testfixtures.Seed
	audit *recorder

	propose  *ProposeAppointment
	update   *UpdateAppointment
	avail    *GetAvailability
	calendar *Calendar

	tenant   *models.Tenant
	employee *models.Employee
	client   *models.Client
	corte    *models.Service // 30 min, 25.00
	barba    *models.Service // 20 min, 15.00
}

func newEnv(t *testing.T) *env {
	t.Helper()

	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	db := testfixtures.NewSQLite(t, clock)
	seed := testfixtures.NewSeed(t, db, tenantKey)

	repo := repository.NewAppointmentGormRepository(db)
	names := repository.NewDirectoryGormRepository(db)
	locker := lock.NewLocal()
	rec := &recorder{}

	e := &env{
		db:       db,
		clock:    clock,
		seed:     seed,
		audit:    rec,
		propose:  NewProposeAppointment(repo, locker, rec, clock.Now),
		update:   NewUpdateAppointment(repo, locker, rec, clock.Now),
		avail:    NewGetAvailability(repo, clock.Now),
		calendar: NewCalendar(repo, names, clock.Now),
	}
	e.tenant = seed.Tenant()
	e.employee = seed.Employee("Ana")
	e.client = seed.Client("João")
	e.corte = seed.Service("Corte", 30, "25.00")
	e.barba = seed.Service("Barba", 20, "15.00")
	return e
}

func (e *env) book(t *testing.T, employeeID, date, start string, serviceIDs ...string) (*models.Appointment, error) {
	t.Helper()
	return e.propose.Execute(context.Background(), ProposeAppointmentInput{
		TenantKey:  tenantKey,
		EmployeeID: employeeID,
		ClientID:   e.client.ID,
		ServiceIDs: serviceIDs,
		Date:       date,
		StartTime:  start,
	})
}

func (e *env) reload(t *testing.T, id string) models.Appointment {
	t.Helper()
	var ap models.Appointment
	require.NoError(t, e.db.Where("tenant_key = ? AND id = ?", tenantKey, id).First(&ap).Error)
	return ap
}

// requireNoOverlap checks every pair of live appointments of one employee
// on one date.
func requireNoOverlap(t *testing.T, db *gorm.DB) {
	t.Helper()

	var apps []models.Appointment
	require.NoError(t, db.Where("status <> ?", string(domain.StatusCancelled)).Find(&apps).Error)

	for i := range apps {
		for j := i + 1; j < len(apps); j++ {
			a, b := &apps[i], &apps[j]
			if a.TenantKey != b.TenantKey || a.EmployeeID != b.EmployeeID || a.Date != b.Date {
				continue
			}
			as, ae, err := domain.Interval(a)
			require.NoError(t, err)
			bs, be, err := domain.Interval(b)
			require.NoError(t, err)
			require.Falsef(t, domain.Overlaps(as, ae, bs, be),
				"%s %s-%s overlaps %s-%s", a.Date, a.StartTime, a.EndTime, b.StartTime, b.EndTime)
		}
	}
}
