package appointment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbearia-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/infra/lock"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
	"github.com/BruksfildServices01/barbearia-agenda/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type ProposeAppointmentInput struct {
	TenantKey  string   `validate:"required"`
	EmployeeID string   `validate:"required"`
	ClientID   string   `validate:"required"`
	ServiceIDs []string `validate:"dive,required"`

	Date      string `validate:"required,isodate"`
	StartTime string `validate:"required,hhmm"`

	// PriceOverride replaces the summed service prices when set.
	PriceOverride *decimal.Decimal
	Notes         string `validate:"max=255"`
}

// ======================================================
// USE CASE
// ======================================================

type ProposeAppointment struct {
	repo     domain.Repository
	locker   lock.Locker
	audit    audit.Auditor
	validate *validator.Validate
	now      func() time.Time
}

func NewProposeAppointment(
	repo domain.Repository,
	locker lock.Locker,
	auditor audit.Auditor,
	now func() time.Time,
) *ProposeAppointment {
	if now == nil {
		now = time.Now
	}
	return &ProposeAppointment{
		repo:     repo,
		locker:   locker,
		audit:    auditor,
		validate: validators.New(),
		now:      now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ProposeAppointment) Execute(
	ctx context.Context,
	in ProposeAppointmentInput,
) (*models.Appointment, error) {

	if err := uc.validate.Struct(in); err != nil {
		return nil, httperr.InvalidInput("invalid_appointment")
	}
	start, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1️⃣ Referências (somente ativas)
	// --------------------------------------------------
	tenant, err := uc.repo.GetTenant(ctx, in.TenantKey)
	if err != nil {
		return nil, err
	}
	if !tenant.Active {
		return nil, httperr.InvalidInput("tenant_inactive")
	}

	if _, err := uc.repo.GetActiveEmployee(ctx, in.TenantKey, in.EmployeeID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetActiveClient(ctx, in.TenantKey, in.ClientID); err != nil {
		return nil, err
	}

	services, err := resolveServices(ctx, uc.repo, in.TenantKey, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2️⃣ Duração → fim
	// --------------------------------------------------
	end, err := domain.EndFor(start, totalDuration(services))
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Preço
	// --------------------------------------------------
	price := totalPrice(services)
	if in.PriceOverride != nil {
		if in.PriceOverride.IsNegative() {
			return nil, httperr.InvalidInput("invalid_price")
		}
		price = *in.PriceOverride
	}

	now := uc.now()
	ap := &models.Appointment{
		TenantKey:  in.TenantKey,
		ID:         uuid.NewString(),
		EmployeeID: in.EmployeeID,
		ClientID:   in.ClientID,
		ServiceIDs: append([]string(nil), in.ServiceIDs...),
		Date:       in.Date,
		StartTime:  start.String(),
		EndTime:    end.String(),
		TotalPrice: price,
		Status:     string(domain.InitialStatus()),
		Paid:       false,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// --------------------------------------------------
	// 4️⃣ Conflito e gravação sob o lock do dia
	// --------------------------------------------------
	unlock, err := lockSlots(ctx, uc.locker, lock.SlotKey(in.TenantKey, in.EmployeeID, in.Date))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsKind(err, httperr.KindSlotConflict) {
			uc.audit.Dispatch(audit.Event{
				TenantKey: in.TenantKey,
				Action:    "appointment_conflict",
				Entity:    "appointment",
				Metadata: map[string]any{
					"employee_id": in.EmployeeID,
					"date":        in.Date,
					"start_time":  ap.StartTime,
					"end_time":    ap.EndTime,
				},
			})
		}
		return nil, err
	}

	log.Info().
		Str("contribuinte", in.TenantKey).
		Str("appointment_id", ap.ID).
		Str("employee_id", ap.EmployeeID).
		Str("date", ap.Date).
		Str("start", ap.StartTime).
		Str("end", ap.EndTime).
		Msg("appointment created")

	uc.audit.Dispatch(audit.Event{
		TenantKey: in.TenantKey,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  ap.ID,
		Metadata: map[string]any{
			"employee_id": ap.EmployeeID,
			"client_id":   ap.ClientID,
			"date":        ap.Date,
			"start_time":  ap.StartTime,
		},
	})

	return ap, nil
}

// resolveServices loads every service, live only, in request order. An
// empty or repeated set is invalid.
func resolveServices(ctx context.Context, repo domain.Repository, tenantKey string, ids []string) ([]models.Service, error) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, httperr.InvalidInput("duplicate_service")
		}
		seen[id] = true
	}

	services, err := repo.GetActiveServices(ctx, tenantKey, ids)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, httperr.InvalidInput("empty_services")
	}
	return services, nil
}

func totalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMin
	}
	return total
}

func totalPrice(services []models.Service) decimal.Decimal {
	total := decimal.Zero
	for _, s := range services {
		total = total.Add(s.Price)
	}
	return total
}
