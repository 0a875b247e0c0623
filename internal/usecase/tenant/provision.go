package tenant

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/tenant"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/timezone"
	"github.com/BruksfildServices01/barbearia-agenda/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ProvisionTenantInput struct {
	Key     string `validate:"required,contribuinte"`
	Name    string `validate:"required,max=100"`
	Phone   string `validate:"max=20"`
	Address string `validate:"max=255"`

	OpeningTime   string `validate:"omitempty,hhmm"`
	ClosingTime   string `validate:"omitempty,hhmm"`
	OperatingDays []int  `validate:"dive,weekday"`
	Timezone      string

	CreatedBy string `validate:"required,max=128"`
}

// ======================================================
// USE CASE
// ======================================================

type ProvisionTenant struct {
	repo     domain.Repository
	audit    audit.Auditor
	validate *validator.Validate
	now      func() time.Time
}

func NewProvisionTenant(
	repo domain.Repository,
	auditor audit.Auditor,
	now func() time.Time,
) *ProvisionTenant {
	if now == nil {
		now = time.Now
	}
	return &ProvisionTenant{
		repo:     repo,
		audit:    auditor,
		validate: validators.New(),
		now:      now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ProvisionTenant) Execute(
	ctx context.Context,
	in ProvisionTenantInput,
) (*domain.Bootstrap, error) {

	// --------------------------------------------------
	// 1️⃣ Entrada
	// --------------------------------------------------
	if err := uc.validate.Struct(in); err != nil {
		return nil, httperr.InvalidInput("invalid_tenant")
	}
	if in.OpeningTime != "" && in.ClosingTime != "" && in.ClosingTime <= in.OpeningTime {
		return nil, httperr.InvalidInput("invalid_operating_hours")
	}
	if in.Timezone != "" && !timezone.IsValid(in.Timezone) {
		return nil, httperr.InvalidInput("invalid_timezone")
	}

	// --------------------------------------------------
	// 2️⃣ Chave já usada?
	// --------------------------------------------------
	// A failed lookup stops provisioning: the outcome is unknown, so it is
	// surfaced instead of being read as "absent".
	exists, err := uc.repo.TenantExists(ctx, in.Key)
	if err != nil {
		if httperr.KindOf(err) == "" {
			err = httperr.BackendUnavailable("backend_unavailable", err)
		}
		return nil, err
	}
	if exists {
		return nil, httperr.AlreadyExists("tenant_already_exists")
	}

	// --------------------------------------------------
	// 3️⃣ Lote atômico
	// --------------------------------------------------
	tz := in.Timezone
	if tz == "" {
		tz = timezone.Location("").String()
	}
	days := in.OperatingDays
	if days == nil {
		days = []int{}
	}

	b := domain.NewBootstrap(models.Tenant{
		Key:           in.Key,
		Name:          in.Name,
		Phone:         in.Phone,
		Address:       in.Address,
		OpeningTime:   in.OpeningTime,
		ClosingTime:   in.ClosingTime,
		OperatingDays: days,
		Timezone:      tz,
	}, in.CreatedBy, uc.now(), uuid.NewString)

	if err := uc.repo.Provision(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("contribuinte", in.Key).
		Str("created_by", in.CreatedBy).
		Int("services", len(b.Services)).
		Msg("tenant provisioned")

	// --------------------------------------------------
	// 4️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		TenantKey: in.Key,
		Action:    "tenant_provisioned",
		Entity:    "tenant",
		EntityID:  in.Key,
		Metadata: map[string]any{
			"created_by": in.CreatedBy,
			"services":   len(b.Services),
		},
	})

	return &b, nil
}
