package directory

import (
	"context"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/directory"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

type CreateEmployeeInput struct {
	Name        string   `validate:"required,max=100"`
	Email       string   `validate:"omitempty,email,max=100"`
	Phone       string   `validate:"max=20"`
	Specialties []string `validate:"dive,required,max=50"`
}

type UpdateEmployeeInput struct {
	Name        *string   `validate:"omitempty,min=1,max=100"`
	Email       *string   `validate:"omitempty,email,max=100"`
	Phone       *string   `validate:"omitempty,max=20"`
	Specialties *[]string `validate:"omitempty,dive,required,max=50"`
}

type WorkingDayInput struct {
	Weekday    int    `validate:"weekday"`
	StartTime  string `validate:"required,hhmm"`
	EndTime    string `validate:"required,hhmm"`
	LunchStart string `validate:"omitempty,hhmm"`
	LunchEnd   string `validate:"omitempty,hhmm"`
	Active     bool
}

type SetWorkingHoursInput struct {
	Days []WorkingDayInput `validate:"dive"`
}

func (d *Directory) CreateEmployee(ctx context.Context, tenantKey string, in CreateEmployeeInput) (*models.Employee, error) {
	if err := d.check(in, "invalid_employee"); err != nil {
		return nil, err
	}
	if err := d.openTenant(ctx, tenantKey); err != nil {
		return nil, err
	}

	specialties := in.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	now := d.now()
	e := &models.Employee{
		TenantKey:   tenantKey,
		ID:          d.newID(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Specialties: specialties,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := d.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}

	d.record(tenantKey, "employee_created", "employee", e.ID)
	return e, nil
}

func (d *Directory) UpdateEmployee(ctx context.Context, tenantKey, id string, in UpdateEmployeeInput) (*models.Employee, error) {
	if err := d.check(in, "invalid_employee"); err != nil {
		return nil, err
	}

	e, err := d.repo.UpdateEmployee(ctx, tenantKey, id, domain.EmployeePatch{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Specialties: in.Specialties,
	}, d.now())
	if err != nil {
		return nil, err
	}

	d.record(tenantKey, "employee_updated", "employee", id)
	return e, nil
}

// DeactivateEmployee leaves the employee's appointments untouched.
func (d *Directory) DeactivateEmployee(ctx context.Context, tenantKey, id string) error {
	if err := d.repo.DeactivateEmployee(ctx, tenantKey, id, d.now()); err != nil {
		return err
	}
	d.record(tenantKey, "employee_deactivated", "employee", id)
	return nil
}

func (d *Directory) ListEmployees(ctx context.Context, tenantKey string) ([]models.Employee, error) {
	return d.repo.ListEmployees(ctx, tenantKey)
}

// SetWorkingHours replaces the weekly schedule of an active employee. An
// empty list clears it, falling back to the tenant's opening hours.
func (d *Directory) SetWorkingHours(ctx context.Context, tenantKey, employeeID string, in SetWorkingHoursInput) ([]models.WorkingHours, error) {
	if err := d.check(in, "invalid_working_hours"); err != nil {
		return nil, err
	}

	e, err := d.repo.FindEmployee(ctx, tenantKey, employeeID)
	if err != nil {
		return nil, err
	}
	if !e.Active || e.IsSentinel() {
		return nil, httperr.NotFound("employee_not_found")
	}

	seen := make(map[int]bool, len(in.Days))
	days := make([]models.WorkingHours, 0, len(in.Days))
	for _, day := range in.Days {
		if seen[day.Weekday] {
			return nil, httperr.InvalidInput("duplicate_weekday")
		}
		seen[day.Weekday] = true

		if day.EndTime <= day.StartTime {
			return nil, httperr.InvalidInput("invalid_working_hours")
		}
		if (day.LunchStart == "") != (day.LunchEnd == "") {
			return nil, httperr.InvalidInput("invalid_lunch")
		}
		if day.LunchStart != "" &&
			(day.LunchEnd <= day.LunchStart || day.LunchStart < day.StartTime || day.LunchEnd > day.EndTime) {
			return nil, httperr.InvalidInput("invalid_lunch")
		}

		days = append(days, models.WorkingHours{
			Weekday:    day.Weekday,
			StartTime:  day.StartTime,
			EndTime:    day.EndTime,
			LunchStart: day.LunchStart,
			LunchEnd:   day.LunchEnd,
			Active:     day.Active,
		})
	}

	if err := d.repo.ReplaceWorkingHours(ctx, tenantKey, employeeID, days); err != nil {
		return nil, err
	}

	d.record(tenantKey, "working_hours_updated", "employee", employeeID)
	return d.repo.ListWorkingHours(ctx, tenantKey, employeeID)
}

func (d *Directory) GetWorkingHours(ctx context.Context, tenantKey, employeeID string) ([]models.WorkingHours, error) {
	if _, err := d.repo.FindEmployee(ctx, tenantKey, employeeID); err != nil {
		return nil, err
	}
	return d.repo.ListWorkingHours(ctx, tenantKey, employeeID)
}
