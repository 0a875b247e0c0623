package directory

import (
	"context"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/directory"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

type CreateClientInput struct {
	Name      string  `validate:"required,max=100"`
	Phone     string  `validate:"max=20"`
	Email     string  `validate:"omitempty,email,max=100"`
	BirthDate *string `validate:"omitempty,isodate"`
}

type UpdateClientInput struct {
	Name      *string `validate:"omitempty,min=1,max=100"`
	Phone     *string `validate:"omitempty,max=20"`
	Email     *string `validate:"omitempty,email,max=100"`
	BirthDate *string `validate:"omitempty,isodate"`
}

func (d *Directory) CreateClient(ctx context.Context, tenantKey string, in CreateClientInput) (*models.Client, error) {
	if err := d.check(in, "invalid_client"); err != nil {
		return nil, err
	}
	if err := d.openTenant(ctx, tenantKey); err != nil {
		return nil, err
	}

	now := d.now()
	c := &models.Client{
		TenantKey: tenantKey,
		ID:        d.newID(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		BirthDate: in.BirthDate,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	d.record(tenantKey, "client_created", "client", c.ID)
	return c, nil
}

func (d *Directory) UpdateClient(ctx context.Context, tenantKey, id string, in UpdateClientInput) (*models.Client, error) {
	if err := d.check(in, "invalid_client"); err != nil {
		return nil, err
	}

	c, err := d.repo.UpdateClient(ctx, tenantKey, id, domain.ClientPatch{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
	}, d.now())
	if err != nil {
		return nil, err
	}

	d.record(tenantKey, "client_updated", "client", id)
	return c, nil
}

func (d *Directory) DeactivateClient(ctx context.Context, tenantKey, id string) error {
	if err := d.repo.DeactivateClient(ctx, tenantKey, id, d.now()); err != nil {
		return err
	}
	d.record(tenantKey, "client_deactivated", "client", id)
	return nil
}

func (d *Directory) ListClients(ctx context.Context, tenantKey, query string) ([]models.Client, error) {
	return d.repo.ListClients(ctx, tenantKey, domain.ClientFilter{Query: query})
}
