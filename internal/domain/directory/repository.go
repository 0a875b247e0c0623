package directory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// Patches are partial merges. None of them carries the active flag: updates
// never bring a soft-deleted record back.

type EmployeePatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Specialties *[]string
}

type ClientPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	BirthDate *string
}

type ServicePatch struct {
	Name        *string
	Description *string
	DurationMin *int
	Price       *decimal.Decimal
	Category    *string
}

type ClientFilter struct {
	Query string
}

type ServiceFilter struct {
	Category string
}

type Repository interface {
	// -------- Tenant --------
	GetTenant(ctx context.Context, tenantKey string) (*models.Tenant, error)

	// -------- Employees --------
	CreateEmployee(ctx context.Context, e *models.Employee) error
	UpdateEmployee(ctx context.Context, tenantKey, id string, p EmployeePatch, now time.Time) (*models.Employee, error)
	DeactivateEmployee(ctx context.Context, tenantKey, id string, now time.Time) error
	// ListEmployees returns active employees by name, without the sentinel.
	ListEmployees(ctx context.Context, tenantKey string) ([]models.Employee, error)
	// FindEmployee returns the record whatever its active flag, sentinel
	// included.
	FindEmployee(ctx context.Context, tenantKey, id string) (*models.Employee, error)
	ReplaceWorkingHours(ctx context.Context, tenantKey, employeeID string, days []models.WorkingHours) error
	ListWorkingHours(ctx context.Context, tenantKey, employeeID string) ([]models.WorkingHours, error)

	// -------- Clients --------
	CreateClient(ctx context.Context, c *models.Client) error
	UpdateClient(ctx context.Context, tenantKey, id string, p ClientPatch, now time.Time) (*models.Client, error)
	DeactivateClient(ctx context.Context, tenantKey, id string, now time.Time) error
	ListClients(ctx context.Context, tenantKey string, f ClientFilter) ([]models.Client, error)

	// -------- Services --------
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, tenantKey, id string, p ServicePatch, now time.Time) (*models.Service, error)
	DeactivateService(ctx context.Context, tenantKey, id string, now time.Time) error
	// ListServices returns active services by category, then name.
	ListServices(ctx context.Context, tenantKey string, f ServiceFilter) ([]models.Service, error)

	// -------- Lookups for views (inactive included) --------
	EmployeesByID(ctx context.Context, tenantKey string, ids []string) (map[string]models.Employee, error)
	ClientsByID(ctx context.Context, tenantKey string, ids []string) (map[string]models.Client, error)
	ServicesByID(ctx context.Context, tenantKey string, ids []string) (map[string]models.Service, error)
}
