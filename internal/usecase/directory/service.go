package directory

import (
	"context"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/directory"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

type CreateServiceInput struct {
	Name        string `validate:"required,max=100"`
	Description string `validate:"max=255"`
	DurationMin int    `validate:"gt=0,lte=1440"`
	Price       decimal.Decimal
	Category    string `validate:"max=50"`
}

type UpdateServiceInput struct {
	Name        *string `validate:"omitempty,min=1,max=100"`
	Description *string `validate:"omitempty,max=255"`
	DurationMin *int    `validate:"omitempty,gt=0,lte=1440"`
	Price       *decimal.Decimal
	Category    *string `validate:"omitempty,max=50"`
}

func (d *Directory) CreateService(ctx context.Context, tenantKey string, in CreateServiceInput) (*models.Service, error) {
	if err := d.check(in, "invalid_service"); err != nil {
		return nil, err
	}
	if err := d.openTenant(ctx, tenantKey); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, httperr.InvalidInput("invalid_price")
	}

	now := d.now()
	s := &models.Service{
		TenantKey:   tenantKey,
		ID:          d.newID(),
		Name:        in.Name,
		Description: in.Description,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Category:    in.Category,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := d.repo.CreateService(ctx, s); err != nil {
		return nil, err
	}

	d.record(tenantKey, "service_created", "service", s.ID)
	return s, nil
}

func (d *Directory) UpdateService(ctx context.Context, tenantKey, id string, in UpdateServiceInput) (*models.Service, error) {
	if err := d.check(in, "invalid_service"); err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, httperr.InvalidInput("invalid_price")
	}

	s, err := d.repo.UpdateService(ctx, tenantKey, id, domain.ServicePatch{
		Name:        in.Name,
		Description: in.Description,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Category:    in.Category,
	}, d.now())
	if err != nil {
		return nil, err
	}

	d.record(tenantKey, "service_updated", "service", id)
	return s, nil
}

func (d *Directory) DeactivateService(ctx context.Context, tenantKey, id string) error {
	if err := d.repo.DeactivateService(ctx, tenantKey, id, d.now()); err != nil {
		return err
	}
	d.record(tenantKey, "service_deactivated", "service", id)
	return nil
}

func (d *Directory) ListServices(ctx context.Context, tenantKey, category string) ([]models.Service, error) {
	return d.repo.ListServices(ctx, tenantKey, domain.ServiceFilter{Category: category})
}
