package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *AppointmentGormRepository) GetTenant(
	ctx context.Context,
	key string,
) (*models.Tenant, error) {
	return getTenant(ctx, r.db, key)
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveEmployee(
	ctx context.Context,
	tenantKey string,
	employeeID string,
) (*models.Employee, error) {

	if employeeID == models.AllEmployeesID {
		return nil, httperr.NotFound("employee_not_found")
	}

	var e models.Employee
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id = ? AND active = ?", tenantKey, employeeID, true).
		First(&e).Error; err != nil {
		return nil, translate("appointmentRepo.GetActiveEmployee", err, httperr.NotFound("employee_not_found"))
	}
	return &e, nil
}

func (r *AppointmentGormRepository) GetActiveClient(
	ctx context.Context,
	tenantKey string,
	clientID string,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id = ? AND active = ?", tenantKey, clientID, true).
		First(&c).Error; err != nil {
		return nil, translate("appointmentRepo.GetActiveClient", err, httperr.NotFound("client_not_found"))
	}
	return &c, nil
}

func (r *AppointmentGormRepository) GetActiveServices(
	ctx context.Context,
	tenantKey string,
	ids []string,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Service
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id IN ? AND active = ?", tenantKey, ids, true).
		Find(&rows).Error; err != nil {
		return nil, translate("appointmentRepo.GetActiveServices", err, nil)
	}

	byID := make(map[string]models.Service, len(rows))
	for _, s := range rows {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, httperr.NotFound("service_not_found")
		}
		out = append(out, s)
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// lockDay loads the live bookings of one employee on one date with row locks,
// inside the caller's transaction.
func lockDay(
	tx *gorm.DB,
	tenantKey string,
	employeeID string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"tenant_key = ? AND employee_id = ? AND date = ? AND status <> ?",
			tenantKey, employeeID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error
	return apps, err
}

func assertSlotFree(tx *gorm.DB, ap *models.Appointment) error {
	if ap.EmployeeID == models.AllEmployeesID {
		return nil
	}

	start, end, err := domain.Interval(ap)
	if err != nil {
		return err
	}

	existing, err := lockDay(tx, ap.TenantKey, ap.EmployeeID, ap.Date)
	if err != nil {
		return err
	}

	if c := domain.FindConflict(existing, ap.EmployeeID, start, end, ap.ID); c != nil {
		return httperr.SlotConflict("time_conflict")
	}
	return nil
}

// CreateAppointment runs the conflict read and the insert in one
// transaction. The slot unique index turns a racing duplicate into a
// conflict as well.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertSlotFree(tx, ap); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	if err != nil && (IsUniqueViolation(err) || IsExclusionConflict(err)) {
		return httperr.SlotConflict("time_conflict")
	}
	return translate("appointmentRepo.CreateAppointment", err, nil)
}

// --------------------------------------------------
// Appointment (update / status change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	tenantKey string,
	appointmentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id = ?", tenantKey, appointmentID).
		First(&ap).Error; err != nil {
		return nil, translate("appointmentRepo.GetAppointment", err, httperr.NotFound("appointment_not_found"))
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	opts domain.UpdateOptions,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.CheckSlot && domain.Status(ap.Status) != domain.StatusCancelled {
			if err := assertSlotFree(tx, ap); err != nil {
				return err
			}
		}

		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		if !opts.RecordVisit {
			return nil
		}

		res := tx.Model(&models.Client{}).
			Where("tenant_key = ? AND id = ?", ap.TenantKey, ap.ClientID).
			Updates(map[string]any{
				"visit_count":   gorm.Expr("visit_count + ?", 1),
				"last_visit_at": opts.VisitAt,
				"updated_at":    opts.VisitAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Warn().
				Str("contribuinte", ap.TenantKey).
				Str("client_id", ap.ClientID).
				Str("appointment_id", ap.ID).
				Msg("completed appointment references a missing client")
		}
		return nil
	})

	if err != nil && (IsUniqueViolation(err) || IsExclusionConflict(err)) {
		return httperr.SlotConflict("time_conflict")
	}
	return translate("appointmentRepo.UpdateAppointment", err, nil)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListWorkingHours(
	ctx context.Context,
	tenantKey string,
	employeeID string,
) ([]models.WorkingHours, error) {
	return listWorkingHours(ctx, r.db, tenantKey, employeeID)
}

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	tenantKey string,
	employeeID string,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"tenant_key = ? AND employee_id = ? AND date = ? AND status <> ?",
			tenantKey, employeeID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, translate("appointmentRepo.ListAppointmentsForDay", err, nil)
	}

	return apps, nil
}

// --------------------------------------------------
// Projections
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	tenantKey string,
	q domain.Query,
) ([]models.Appointment, error) {

	tx := r.db.WithContext(ctx).Where("tenant_key = ?", tenantKey)

	if q.EmployeeID != "" && q.EmployeeID != models.AllEmployeesID {
		tx = tx.Where("employee_id = ?", q.EmployeeID)
	}
	if q.DateFrom != "" {
		tx = tx.Where("date >= ?", q.DateFrom)
	}
	if q.DateTo != "" {
		tx = tx.Where("date <= ?", q.DateTo)
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, 0, len(q.Statuses))
		for _, s := range q.Statuses {
			statuses = append(statuses, string(s))
		}
		tx = tx.Where("status IN ?", statuses)
	}

	var apps []models.Appointment
	if err := tx.
		Order("date ASC").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, translate("appointmentRepo.ListAppointments", err, nil)
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
