package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// Query selects appointments for read-side projections. Empty fields do not
// filter.
type Query struct {
	EmployeeID string
	DateFrom   string
	DateTo     string
	Statuses   []Status
}

type UpdateOptions struct {
	// CheckSlot re-runs the conflict check for the appointment's (possibly
	// new) employee, date and interval, ignoring the appointment itself.
	CheckSlot bool
	// RecordVisit bumps the client's visit counter and last-visit time in the
	// same transaction.
	RecordVisit bool
	VisitAt     time.Time
}

type Repository interface {
	// -------- Tenant --------
	GetTenant(
		ctx context.Context,
		key string,
	) (*models.Tenant, error)

	// -------- References (live only) --------
	GetActiveEmployee(
		ctx context.Context,
		tenantKey string,
		employeeID string,
	) (*models.Employee, error)

	GetActiveClient(
		ctx context.Context,
		tenantKey string,
		clientID string,
	) (*models.Client, error)

	// GetActiveServices returns services in the order of ids.
	GetActiveServices(
		ctx context.Context,
		tenantKey string,
		ids []string,
	) ([]models.Service, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		tenantKey string,
		appointmentID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		opts UpdateOptions,
	) error

	// -------- Availability --------
	ListWorkingHours(
		ctx context.Context,
		tenantKey string,
		employeeID string,
	) ([]models.WorkingHours, error)

	ListAppointmentsForDay(
		ctx context.Context,
		tenantKey string,
		employeeID string,
		date string,
	) ([]models.Appointment, error)

	// -------- Projections --------
	ListAppointments(
		ctx context.Context,
		tenantKey string,
		q Query,
	) ([]models.Appointment, error)
}
