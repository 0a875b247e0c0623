package appointment

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
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

// UpdateAppointmentInput is a patch; nil fields are left as they are.
type UpdateAppointmentInput struct {
	TenantKey string `validate:"required"`
	ID        string `validate:"required"`

	Status *string

	EmployeeID *string   `validate:"omitempty,min=1"`
	ClientID   *string   `validate:"omitempty,min=1"`
	ServiceIDs *[]string `validate:"omitempty,dive,required"`
	Date       *string   `validate:"omitempty,isodate"`
	StartTime  *string   `validate:"omitempty,hhmm"`

	TotalPrice *decimal.Decimal
	Paid       *bool
	Notes      *string `validate:"omitempty,max=255"`
}

func (in UpdateAppointmentInput) empty() bool {
	return in.Status == nil && !in.changesFields()
}

func (in UpdateAppointmentInput) changesFields() bool {
	return in.EmployeeID != nil || in.ClientID != nil || in.ServiceIDs != nil ||
		in.Date != nil || in.StartTime != nil ||
		in.TotalPrice != nil || in.Paid != nil || in.Notes != nil
}

func (in UpdateAppointmentInput) changesSchedule() bool {
	return in.EmployeeID != nil || in.ServiceIDs != nil || in.Date != nil || in.StartTime != nil
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo     domain.Repository
	locker   lock.Locker
	audit    audit.Auditor
	validate *validator.Validate
	now      func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	auditor audit.Auditor,
	now func() time.Time,
) *UpdateAppointment {
	if now == nil {
		now = time.Now
	}
	return &UpdateAppointment{
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

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if err := uc.validate.Struct(in); err != nil {
		return nil, httperr.InvalidInput("invalid_appointment")
	}
	if in.empty() {
		return nil, httperr.InvalidInput("empty_update")
	}

	var target domain.Status
	if in.Status != nil {
		st, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		target = st
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return nil, httperr.InvalidInput("invalid_price")
	}

	// --------------------------------------------------
	// 1️⃣ Lock do(s) dia(s) afetado(s) e leitura
	// --------------------------------------------------
	ap, unlock, err := uc.lockAndLoad(ctx, in)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Terminal appointments take no edits; a status-only patch falls through
	// to the transition table, which rejects it.
	from := domain.Status(ap.Status)
	if from.IsTerminal() && in.changesFields() {
		return nil, httperr.IllegalTransition("appointment_closed")
	}

	// --------------------------------------------------
	// 2️⃣ Campos
	// --------------------------------------------------
	if in.changesSchedule() {
		if err := uc.reschedule(ctx, ap, in); err != nil {
			return nil, err
		}
	}
	if in.ClientID != nil && *in.ClientID != ap.ClientID {
		if _, err := uc.repo.GetActiveClient(ctx, in.TenantKey, *in.ClientID); err != nil {
			return nil, err
		}
		ap.ClientID = *in.ClientID
	}
	if in.TotalPrice != nil {
		ap.TotalPrice = *in.TotalPrice
	}
	if in.Paid != nil {
		ap.Paid = *in.Paid
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	now := uc.now()
	ap.UpdatedAt = now

	// --------------------------------------------------
	// 3️⃣ Status
	// --------------------------------------------------
	var effects domain.Effects
	if in.Status != nil {
		effects, err = domain.Transition(ap, target, now)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4️⃣ Gravação (conflito + visita na mesma transação)
	// --------------------------------------------------
	if err := uc.repo.UpdateAppointment(ctx, ap, domain.UpdateOptions{
		CheckSlot:   in.changesSchedule(),
		RecordVisit: effects.RecordVisit,
		VisitAt:     now,
	}); err != nil {
		return nil, err
	}

	uc.record(ap, in, from)
	return ap, nil
}

// lockAndLoad takes the slot locks for the appointment's current day and,
// when the patch moves it, the destination day. The appointment is read
// again under the locks; if another writer moved it in between, the locks
// are re-taken for its new position.
func (uc *UpdateAppointment) lockAndLoad(ctx context.Context, in UpdateAppointmentInput) (*models.Appointment, func(), error) {
	const attempts = 3

	for i := 0; i < attempts; i++ {
		before, err := uc.repo.GetAppointment(ctx, in.TenantKey, in.ID)
		if err != nil {
			return nil, nil, err
		}

		unlock, err := lockSlots(ctx, uc.locker, slotKeys(before, in)...)
		if err != nil {
			return nil, nil, err
		}

		ap, err := uc.repo.GetAppointment(ctx, in.TenantKey, in.ID)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if ap.EmployeeID == before.EmployeeID && ap.Date == before.Date {
			return ap, unlock, nil
		}
		unlock()
	}

	return nil, nil, httperr.BackendUnavailable("slot_lock_unavailable", nil)
}

func slotKeys(ap *models.Appointment, in UpdateAppointmentInput) []string {
	keys := []string{lock.SlotKey(ap.TenantKey, ap.EmployeeID, ap.Date)}

	employee, date := ap.EmployeeID, ap.Date
	if in.EmployeeID != nil {
		employee = *in.EmployeeID
	}
	if in.Date != nil {
		date = *in.Date
	}
	return append(keys, lock.SlotKey(ap.TenantKey, employee, date))
}

// reschedule applies employee, date, start and service changes, deriving the
// new end and, unless the patch sets one, the new price.
func (uc *UpdateAppointment) reschedule(ctx context.Context, ap *models.Appointment, in UpdateAppointmentInput) error {
	start, end, err := domain.Interval(ap)
	if err != nil {
		return err
	}
	duration := int(end - start)

	if in.EmployeeID != nil && *in.EmployeeID != ap.EmployeeID {
		if _, err := uc.repo.GetActiveEmployee(ctx, in.TenantKey, *in.EmployeeID); err != nil {
			return err
		}
		ap.EmployeeID = *in.EmployeeID
	}

	if in.ServiceIDs != nil {
		services, err := resolveServices(ctx, uc.repo, in.TenantKey, *in.ServiceIDs)
		if err != nil {
			return err
		}
		duration = totalDuration(services)
		ap.ServiceIDs = append([]string(nil), (*in.ServiceIDs)...)
		if in.TotalPrice == nil {
			ap.TotalPrice = totalPrice(services)
		}
	}

	if in.Date != nil {
		ap.Date = *in.Date
	}
	if in.StartTime != nil {
		if start, err = domain.ParseClock(*in.StartTime); err != nil {
			return err
		}
	}

	end, err = domain.EndFor(start, duration)
	if err != nil {
		return err
	}
	ap.StartTime = start.String()
	ap.EndTime = end.String()
	return nil
}

func (uc *UpdateAppointment) record(ap *models.Appointment, in UpdateAppointmentInput, from domain.Status) {
	if in.Status != nil {
		log.Info().
			Str("contribuinte", ap.TenantKey).
			Str("appointment_id", ap.ID).
			Str("from", string(from)).
			Str("to", ap.Status).
			Msg("appointment status changed")

		uc.audit.Dispatch(audit.Event{
			TenantKey: ap.TenantKey,
			Action:    "appointment_status_changed",
			Entity:    "appointment",
			EntityID:  ap.ID,
			Metadata: map[string]any{
				"from": string(from),
				"to":   ap.Status,
			},
		})
	}

	if in.changesFields() {
		uc.audit.Dispatch(audit.Event{
			TenantKey: ap.TenantKey,
			Action:    "appointment_updated",
			Entity:    "appointment",
			EntityID:  ap.ID,
			Metadata: map[string]any{
				"employee_id": ap.EmployeeID,
				"date":        ap.Date,
				"start_time":  ap.StartTime,
				"end_time":    ap.EndTime,
			},
		})
	}
}
