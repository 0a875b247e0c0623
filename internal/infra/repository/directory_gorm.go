package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/directory"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

func (r *DirectoryGormRepository) GetTenant(
	ctx context.Context,
	tenantKey string,
) (*models.Tenant, error) {
	return getTenant(ctx, r.db, tenantKey)
}

// --------------------------------------------------
// Employees
// --------------------------------------------------

func (r *DirectoryGormRepository) CreateEmployee(
	ctx context.Context,
	e *models.Employee,
) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.AlreadyExists("employee_already_exists")
		}
		return translate("directoryRepo.CreateEmployee", err, nil)
	}
	return nil
}

func (r *DirectoryGormRepository) UpdateEmployee(
	ctx context.Context,
	tenantKey, id string,
	p domain.EmployeePatch,
	now time.Time,
) (*models.Employee, error) {

	if id == models.AllEmployeesID {
		return nil, httperr.NotFound("employee_not_found")
	}

	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Specialties != nil {
		raw, err := jsonColumn(*p.Specialties)
		if err != nil {
			return nil, translate("directoryRepo.UpdateEmployee", err, nil)
		}
		cols["specialties"] = raw
	}

	var e models.Employee
	if err := r.patch(ctx, &e, tenantKey, id, cols, now, "directoryRepo.UpdateEmployee", "employee_not_found"); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *DirectoryGormRepository) DeactivateEmployee(
	ctx context.Context,
	tenantKey, id string,
	now time.Time,
) error {
	if id == models.AllEmployeesID {
		return httperr.NotFound("employee_not_found")
	}
	return r.deactivate(ctx, &models.Employee{}, tenantKey, id, now, "employee_not_found")
}

func (r *DirectoryGormRepository) ListEmployees(
	ctx context.Context,
	tenantKey string,
) ([]models.Employee, error) {

	var out []models.Employee
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND active = ? AND id <> ?", tenantKey, true, models.AllEmployeesID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, translate("directoryRepo.ListEmployees", err, nil)
	}
	return out, nil
}

func (r *DirectoryGormRepository) FindEmployee(
	ctx context.Context,
	tenantKey, id string,
) (*models.Employee, error) {

	var e models.Employee
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id = ?", tenantKey, id).
		First(&e).Error; err != nil {
		return nil, translate("directoryRepo.FindEmployee", err, httperr.NotFound("employee_not_found"))
	}
	return &e, nil
}

func (r *DirectoryGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	tenantKey, employeeID string,
	days []models.WorkingHours,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("tenant_key = ? AND employee_id = ?", tenantKey, employeeID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		if len(days) == 0 {
			return nil
		}

		for i := range days {
			days[i].ID = 0
			days[i].TenantKey = tenantKey
			days[i].EmployeeID = employeeID
		}
		return tx.Create(&days).Error
	})

	return translate("directoryRepo.ReplaceWorkingHours", err, nil)
}

func (r *DirectoryGormRepository) ListWorkingHours(
	ctx context.Context,
	tenantKey, employeeID string,
) ([]models.WorkingHours, error) {
	return listWorkingHours(ctx, r.db, tenantKey, employeeID)
}

func listWorkingHours(ctx context.Context, db *gorm.DB, tenantKey, employeeID string) ([]models.WorkingHours, error) {
	var hours []models.WorkingHours
	if err := db.WithContext(ctx).
		Where("tenant_key = ? AND employee_id = ?", tenantKey, employeeID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, translate("directoryRepo.ListWorkingHours", err, nil)
	}
	return hours, nil
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *DirectoryGormRepository) CreateClient(
	ctx context.Context,
	c *models.Client,
) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translate("directoryRepo.CreateClient", err, nil)
	}
	return nil
}

func (r *DirectoryGormRepository) UpdateClient(
	ctx context.Context,
	tenantKey, id string,
	p domain.ClientPatch,
	now time.Time,
) (*models.Client, error) {

	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.BirthDate != nil {
		cols["birth_date"] = *p.BirthDate
	}

	var c models.Client
	if err := r.patch(ctx, &c, tenantKey, id, cols, now, "directoryRepo.UpdateClient", "client_not_found"); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *DirectoryGormRepository) DeactivateClient(
	ctx context.Context,
	tenantKey, id string,
	now time.Time,
) error {
	return r.deactivate(ctx, &models.Client{}, tenantKey, id, now, "client_not_found")
}

func (r *DirectoryGormRepository) ListClients(
	ctx context.Context,
	tenantKey string,
	f domain.ClientFilter,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).
		Where("tenant_key = ? AND active = ?", tenantKey, true)

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)",
			like, like, like,
		)
	}

	var out []models.Client
	if err := q.Order("name ASC").Find(&out).Error; err != nil {
		return nil, translate("directoryRepo.ListClients", err, nil)
	}
	return out, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *DirectoryGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return translate("directoryRepo.CreateService", err, nil)
	}
	return nil
}

func (r *DirectoryGormRepository) UpdateService(
	ctx context.Context,
	tenantKey, id string,
	p domain.ServicePatch,
	now time.Time,
) (*models.Service, error) {

	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.DurationMin != nil {
		cols["duration_min"] = *p.DurationMin
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.Category != nil {
		cols["category"] = *p.Category
	}

	var s models.Service
	if err := r.patch(ctx, &s, tenantKey, id, cols, now, "directoryRepo.UpdateService", "service_not_found"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *DirectoryGormRepository) DeactivateService(
	ctx context.Context,
	tenantKey, id string,
	now time.Time,
) error {
	return r.deactivate(ctx, &models.Service{}, tenantKey, id, now, "service_not_found")
}

func (r *DirectoryGormRepository) ListServices(
	ctx context.Context,
	tenantKey string,
	f domain.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).
		Where("tenant_key = ? AND active = ?", tenantKey, true)

	category := strings.ToLower(strings.TrimSpace(f.Category))
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var out []models.Service
	if err := q.Order("category ASC").Order("name ASC").Find(&out).Error; err != nil {
		return nil, translate("directoryRepo.ListServices", err, nil)
	}
	return out, nil
}

// --------------------------------------------------
// Lookups (inactive included)
// --------------------------------------------------

func (r *DirectoryGormRepository) EmployeesByID(
	ctx context.Context,
	tenantKey string,
	ids []string,
) (map[string]models.Employee, error) {

	out := make(map[string]models.Employee, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.Employee
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id IN ?", tenantKey, ids).
		Find(&rows).Error; err != nil {
		return nil, translate("directoryRepo.EmployeesByID", err, nil)
	}
	for _, e := range rows {
		out[e.ID] = e
	}
	return out, nil
}

func (r *DirectoryGormRepository) ClientsByID(
	ctx context.Context,
	tenantKey string,
	ids []string,
) (map[string]models.Client, error) {

	out := make(map[string]models.Client, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.Client
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id IN ?", tenantKey, ids).
		Find(&rows).Error; err != nil {
		return nil, translate("directoryRepo.ClientsByID", err, nil)
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

func (r *DirectoryGormRepository) ServicesByID(
	ctx context.Context,
	tenantKey string,
	ids []string,
) (map[string]models.Service, error) {

	out := make(map[string]models.Service, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []models.Service
	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id IN ?", tenantKey, ids).
		Find(&rows).Error; err != nil {
		return nil, translate("directoryRepo.ServicesByID", err, nil)
	}
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func (r *DirectoryGormRepository) activeScope(ctx context.Context, tenantKey, id string) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("tenant_key = ? AND id = ? AND active = ?", tenantKey, id, true)
}

// patch writes only the given columns (plus updated_at) of one active row,
// then loads the row into dest. Columns the patch does not name, such as
// visit counters or the active flag, are never rewritten.
func (r *DirectoryGormRepository) patch(
	ctx context.Context,
	dest any,
	tenantKey, id string,
	cols map[string]any,
	now time.Time,
	op, notFoundCode string,
) error {

	cols["updated_at"] = now

	res := r.activeScope(ctx, tenantKey, id).
		Model(dest).
		Updates(cols)
	if res.Error != nil {
		return translate(op, res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound(notFoundCode)
	}

	if err := r.db.WithContext(ctx).
		Where("tenant_key = ? AND id = ?", tenantKey, id).
		First(dest).Error; err != nil {
		return translate(op, err, httperr.NotFound(notFoundCode))
	}
	return nil
}

func (r *DirectoryGormRepository) deactivate(
	ctx context.Context,
	model any,
	tenantKey, id string,
	now time.Time,
	notFoundCode string,
) error {

	res := r.db.WithContext(ctx).
		Model(model).
		Where("tenant_key = ? AND id = ? AND active = ?", tenantKey, id, true).
		Updates(map[string]any{"active": false, "updated_at": now})
	if res.Error != nil {
		return translate("directoryRepo.deactivate", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound(notFoundCode)
	}
	return nil
}

// jsonColumn encodes a serializer:json field for a map update, which
// bypasses gorm serializers.
func jsonColumn(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compile-time check
var _ domain.Repository = (*DirectoryGormRepository)(nil)
