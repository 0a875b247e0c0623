package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbearia-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barbearia-agenda/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository, now func() time.Time) *GetAvailability {
	if now == nil {
		now = time.Now
	}
	return &GetAvailability{repo: repo, now: now}
}

// Execute lists the free slots of the combined service duration. The result
// is advisory; booking re-checks under the slot lock.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	day, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}

	tenant, err := uc.repo.GetTenant(ctx, in.TenantKey)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetActiveEmployee(ctx, in.TenantKey, in.EmployeeID); err != nil {
		return nil, err
	}
	services, err := resolveServices(ctx, uc.repo, in.TenantKey, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// dia já passado no fuso da barbearia
	local := timezone.In(uc.now(), tenant.Timezone)
	today := local.Format(domain.DateLayout)
	if in.Date < today {
		return []domain.TimeSlot{}, nil
	}

	hours, err := uc.repo.ListWorkingHours(ctx, in.TenantKey, in.EmployeeID)
	if err != nil {
		return nil, err
	}
	window, ok := domain.WindowFor(hours, tenant, int(day.Weekday()))
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListAppointmentsForDay(ctx, in.TenantKey, in.EmployeeID, in.Date)
	if err != nil {
		return nil, err
	}

	booked := make([][2]domain.Clock, 0, len(appointments))
	for i := range appointments {
		s, e, err := domain.Interval(&appointments[i])
		if err != nil {
			continue
		}
		booked = append(booked, [2]domain.Clock{s, e})
	}

	slots := domain.GenerateSlots(window, totalDuration(services), booked)

	if in.Date == today {
		nowClock := domain.Clock(local.Hour()*60 + local.Minute())
		upcoming := slots[:0]
		for _, s := range slots {
			if domain.MustClock(s.Start) >= nowClock {
				upcoming = append(upcoming, s)
			}
		}
		slots = upcoming
	}

	return slots, nil
}
