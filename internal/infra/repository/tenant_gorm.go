package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/tenant"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

type TenantGormRepository struct {
	db *gorm.DB
}

func NewTenantGormRepository(db *gorm.DB) *TenantGormRepository {
	return &TenantGormRepository{db: db}
}

func (r *TenantGormRepository) TenantExists(
	ctx context.Context,
	key string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("contribuinte = ?", key).
		Count(&count).Error; err != nil {
		return false, translate("tenantRepo.TenantExists", err, nil)
	}

	return count > 0, nil
}

func (r *TenantGormRepository) GetTenant(
	ctx context.Context,
	key string,
) (*models.Tenant, error) {
	return getTenant(ctx, r.db, key)
}

func getTenant(ctx context.Context, db *gorm.DB, key string) (*models.Tenant, error) {
	var t models.Tenant
	if err := db.WithContext(ctx).
		Where("contribuinte = ?", key).
		First(&t).Error; err != nil {
		return nil, translate("tenantRepo.GetTenant", err, httperr.NotFound("tenant_not_found"))
	}
	return &t, nil
}

// Provision commits tenant, sentinel employee and seed services as one unit.
func (r *TenantGormRepository) Provision(
	ctx context.Context,
	b domain.Bootstrap,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&b.Tenant).Error; err != nil {
			if IsUniqueViolation(err) {
				return httperr.AlreadyExists("tenant_already_exists")
			}
			return err
		}

		if err := tx.Create(&b.Sentinel).Error; err != nil {
			return err
		}

		if len(b.Services) > 0 {
			if err := tx.Create(&b.Services).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return translate("tenantRepo.Provision", err, nil)
}

func (r *TenantGormRepository) UpdateTenant(
	ctx context.Context,
	key string,
	p domain.Patch,
	now time.Time,
) (*models.Tenant, error) {

	cols := map[string]any{"updated_at": now}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.OpeningTime != nil {
		cols["opening_time"] = *p.OpeningTime
	}
	if p.ClosingTime != nil {
		cols["closing_time"] = *p.ClosingTime
	}
	if p.OperatingDays != nil {
		raw, err := jsonColumn(*p.OperatingDays)
		if err != nil {
			return nil, translate("tenantRepo.UpdateTenant", err, nil)
		}
		cols["operating_days"] = raw
	}
	if p.Timezone != nil {
		cols["timezone"] = *p.Timezone
	}

	res := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("contribuinte = ?", key).
		Updates(cols)
	if res.Error != nil {
		return nil, translate("tenantRepo.UpdateTenant", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.NotFound("tenant_not_found")
	}

	return getTenant(ctx, r.db, key)
}

func (r *TenantGormRepository) DeactivateTenant(
	ctx context.Context,
	key string,
	now time.Time,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("contribuinte = ?", key).
		Updates(map[string]any{"active": false, "updated_at": now})
	if res.Error != nil {
		return translate("tenantRepo.DeactivateTenant", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("tenant_not_found")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*TenantGormRepository)(nil)
