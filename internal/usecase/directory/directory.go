package directory

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/directory"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/validators"
)

// Directory is the per-tenant CRUD over employees, clients and services.
// Every read is active-only; deactivation is the only delete.
type Directory struct {
	repo     domain.Repository
	audit    audit.Auditor
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

func New(repo domain.Repository, auditor audit.Auditor, now func() time.Time) *Directory {
	if now == nil {
		now = time.Now
	}
	return &Directory{
		repo:     repo,
		audit:    auditor,
		validate: validators.New(),
		now:      now,
		newID:    uuid.NewString,
	}
}

func (d *Directory) check(in any, code string) error {
	if err := d.validate.Struct(in); err != nil {
		return httperr.InvalidInput(code)
	}
	return nil
}

// openTenant rejects writes for an unknown or deactivated barbershop.
func (d *Directory) openTenant(ctx context.Context, tenantKey string) error {
	t, err := d.repo.GetTenant(ctx, tenantKey)
	if err != nil {
		return err
	}
	if !t.Active {
		return httperr.InvalidInput("tenant_inactive")
	}
	return nil
}

func (d *Directory) record(tenantKey, action, entity, id string) {
	d.audit.Dispatch(audit.Event{
		TenantKey: tenantKey,
		Action:    action,
		Entity:    entity,
		EntityID:  id,
	})
}
