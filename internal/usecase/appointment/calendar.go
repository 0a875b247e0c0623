package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/dto"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/timezone"
)

const (
	defaultUpcomingLimit = 5
	maxUpcomingLimit     = 100
)

// Calendar is the read side. Every call recomputes from the store; nothing
// is cached between writes.
type Calendar struct {
	repo  domain.Repository
	names Names
	now   func() time.Time
}

func NewCalendar(repo domain.Repository, names Names, now func() time.Time) *Calendar {
	if now == nil {
		now = time.Now
	}
	return &Calendar{repo: repo, names: names, now: now}
}

// Get returns one appointment with its names resolved.
func (uc *Calendar) Get(ctx context.Context, tenantKey, id string) (*dto.AppointmentView, error) {
	ap, err := uc.repo.GetAppointment(ctx, tenantKey, id)
	if err != nil {
		return nil, err
	}
	views, err := uc.views(ctx, tenantKey, []models.Appointment{*ap})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// AppointmentsOnDate lists the day by start time. An empty employeeID or the
// "all employees" id means every employee.
func (uc *Calendar) AppointmentsOnDate(ctx context.Context, tenantKey, date, employeeID string) ([]dto.AppointmentView, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	apps, err := uc.repo.ListAppointments(ctx, tenantKey, domain.Query{
		EmployeeID: employeeID,
		DateFrom:   date,
		DateTo:     date,
	})
	if err != nil {
		return nil, err
	}
	return uc.views(ctx, tenantKey, apps)
}

// CountsByDate maps each date to its number of appointments, for calendar
// badges. from and to are optional inclusive bounds.
func (uc *Calendar) CountsByDate(ctx context.Context, tenantKey, employeeID, from, to string) (map[string]int, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := domain.ParseDate(d); err != nil {
			return nil, err
		}
	}

	apps, err := uc.repo.ListAppointments(ctx, tenantKey, domain.Query{
		EmployeeID: employeeID,
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, ap := range apps {
		counts[ap.Date]++
	}
	return counts, nil
}

// Upcoming returns scheduled appointments at or after the tenant's current
// local time, earliest first.
func (uc *Calendar) Upcoming(ctx context.Context, tenantKey string, limit int) ([]dto.AppointmentView, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	if limit > maxUpcomingLimit {
		return nil, httperr.InvalidInput("invalid_limit")
	}

	tenant, err := uc.repo.GetTenant(ctx, tenantKey)
	if err != nil {
		return nil, err
	}
	local := timezone.In(uc.now(), tenant.Timezone)
	today := local.Format(domain.DateLayout)
	nowHM := local.Format(domain.ClockLayout)

	apps, err := uc.repo.ListAppointments(ctx, tenantKey, domain.Query{
		DateFrom: today,
		Statuses: []domain.Status{domain.StatusScheduled},
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Appointment, 0, limit)
	for _, ap := range apps {
		if ap.Date == today && ap.StartTime < nowHM {
			continue
		}
		out = append(out, ap)
		if len(out) == limit {
			break
		}
	}
	return uc.views(ctx, tenantKey, out)
}

// DailySummary is the dashboard for one date. Revenue counts completed
// appointments only.
func (uc *Calendar) DailySummary(ctx context.Context, tenantKey, date string) (*dto.DailySummary, error) {
	views, err := uc.AppointmentsOnDate(ctx, tenantKey, date, "")
	if err != nil {
		return nil, err
	}

	summary := &dto.DailySummary{
		Date:         date,
		Total:        len(views),
		ByStatus:     make(map[string]int, len(domain.AllStatuses())),
		Revenue:      decimal.Zero,
		Appointments: views,
	}
	for _, st := range domain.AllStatuses() {
		summary.ByStatus[string(st)] = 0
	}
	for _, v := range views {
		summary.ByStatus[v.Status]++
		if v.Status == string(domain.StatusCompleted) {
			summary.Revenue = summary.Revenue.Add(v.TotalPrice)
		}
	}
	return summary, nil
}

// views joins appointments with directory names. Missing records render as
// dto.NotFoundName instead of failing the read.
func (uc *Calendar) views(ctx context.Context, tenantKey string, apps []models.Appointment) ([]dto.AppointmentView, error) {
	out := make([]dto.AppointmentView, 0, len(apps))
	if len(apps) == 0 {
		return out, nil
	}

	var employeeIDs, clientIDs, serviceIDs []string
	for _, ap := range apps {
		employeeIDs = append(employeeIDs, ap.EmployeeID)
		clientIDs = append(clientIDs, ap.ClientID)
		serviceIDs = append(serviceIDs, ap.ServiceIDs...)
	}

	employees, err := uc.names.EmployeesByID(ctx, tenantKey, uniq(employeeIDs))
	if err != nil {
		return nil, err
	}
	clients, err := uc.names.ClientsByID(ctx, tenantKey, uniq(clientIDs))
	if err != nil {
		return nil, err
	}
	services, err := uc.names.ServicesByID(ctx, tenantKey, uniq(serviceIDs))
	if err != nil {
		return nil, err
	}

	for _, ap := range apps {
		v := dto.AppointmentView{
			ID:           ap.ID,
			Date:         ap.Date,
			StartTime:    ap.StartTime,
			EndTime:      ap.EndTime,
			Status:       ap.Status,
			Paid:         ap.Paid,
			Notes:        ap.Notes,
			TotalPrice:   ap.TotalPrice,
			EmployeeID:   ap.EmployeeID,
			EmployeeName: dto.NotFoundName,
			ClientID:     ap.ClientID,
			ClientName:   dto.NotFoundName,
			Services:     make([]dto.ServiceRef, 0, len(ap.ServiceIDs)),
			CreatedAt:    ap.CreatedAt,
			UpdatedAt:    ap.UpdatedAt,
		}
		if e, ok := employees[ap.EmployeeID]; ok {
			v.EmployeeName = e.Name
		}
		if c, ok := clients[ap.ClientID]; ok {
			v.ClientName = c.Name
			v.ClientPhone = c.Phone
		}
		for _, id := range ap.ServiceIDs {
			ref := dto.ServiceRef{ID: id, Name: dto.NotFoundName}
			if s, ok := services[id]; ok {
				ref.Name = s.Name
			}
			v.Services = append(v.Services, ref)
		}
		out = append(out, v)
	}
	return out, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
