package tenant

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/tenant"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/timezone"
	"github.com/BruksfildServices01/barbearia-agenda/internal/validators"
)

type UpdateTenantInput struct {
	Name          *string `validate:"omitempty,min=1,max=100"`
	Phone         *string `validate:"omitempty,max=20"`
	Address       *string `validate:"omitempty,max=255"`
	OpeningTime   *string `validate:"omitempty,hhmm"`
	ClosingTime   *string `validate:"omitempty,hhmm"`
	OperatingDays *[]int  `validate:"omitempty,dive,weekday"`
	Timezone      *string
}

// Manage groups the tenant reads and edits that follow provisioning.
type Manage struct {
	repo     domain.Repository
	audit    audit.Auditor
	validate *validator.Validate
	now      func() time.Time
}

func NewManage(repo domain.Repository, auditor audit.Auditor, now func() time.Time) *Manage {
	if now == nil {
		now = time.Now
	}
	return &Manage{
		repo:     repo,
		audit:    auditor,
		validate: validators.New(),
		now:      now,
	}
}

func (uc *Manage) Get(ctx context.Context, key string) (*models.Tenant, error) {
	return uc.repo.GetTenant(ctx, key)
}

func (uc *Manage) Update(ctx context.Context, key string, in UpdateTenantInput) (*models.Tenant, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, httperr.InvalidInput("invalid_tenant")
	}
	if in.Timezone != nil && !timezone.IsValid(*in.Timezone) {
		return nil, httperr.InvalidInput("invalid_timezone")
	}

	if in.OpeningTime != nil || in.ClosingTime != nil {
		current, err := uc.repo.GetTenant(ctx, key)
		if err != nil {
			return nil, err
		}
		opening, closing := current.OpeningTime, current.ClosingTime
		if in.OpeningTime != nil {
			opening = *in.OpeningTime
		}
		if in.ClosingTime != nil {
			closing = *in.ClosingTime
		}
		if opening != "" && closing != "" && closing <= opening {
			return nil, httperr.InvalidInput("invalid_operating_hours")
		}
	}

	t, err := uc.repo.UpdateTenant(ctx, key, domain.Patch{
		Name:          in.Name,
		Phone:         in.Phone,
		Address:       in.Address,
		OpeningTime:   in.OpeningTime,
		ClosingTime:   in.ClosingTime,
		OperatingDays: in.OperatingDays,
		Timezone:      in.Timezone,
	}, uc.now())
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantKey: key,
		Action:    "tenant_updated",
		Entity:    "tenant",
		EntityID:  key,
	})
	return t, nil
}

func (uc *Manage) Deactivate(ctx context.Context, key string) error {
	if err := uc.repo.DeactivateTenant(ctx, key, uc.now()); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		TenantKey: key,
		Action:    "tenant_deactivated",
		Entity:    "tenant",
		EntityID:  key,
	})
	return nil
}
