package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Effects lists what a transition requires beyond the appointment row.
type Effects struct {
	RecordVisit bool
}

// Transition moves ap to status to, stamping the matching timestamp.
// Completion also settles payment, whatever its prior value, and asks the
// caller to record a client visit in the same write.
func Transition(ap *models.Appointment, to Status, now time.Time) (Effects, error) {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return Effects{}, err
	}

	ap.Status = string(to)
	ap.UpdatedAt = now

	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusInProgress:
		ap.StartedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
		ap.Paid = true
		return Effects{RecordVisit: true}, nil
	}
	return Effects{}, nil
}

// Interval parses the stored start/end of ap.
func Interval(ap *models.Appointment) (Clock, Clock, error) {
	start, err := ParseClock(ap.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(ap.EndTime)
	if err != nil {
		if ap.EndTime != "24:00" {
			return 0, 0, err
		}
		end = EndOfDay
	}
	return start, end, nil
}

// FindConflict returns the first live appointment in existing whose interval
// intersects [start,end). excludeID skips the appointment being rescheduled.
// The "all employees" sentinel never conflicts.
func FindConflict(existing []models.Appointment, employeeID string, start, end Clock, excludeID string) *models.Appointment {
	if employeeID == models.AllEmployeesID {
		return nil
	}
	for i := range existing {
		ap := &existing[i]
		if ap.ID == excludeID || ap.EmployeeID != employeeID || Status(ap.Status) == StatusCancelled {
			continue
		}
		s, e, err := Interval(ap)
		if err != nil {
			continue
		}
		if Overlaps(start, end, s, e) {
			return ap
		}
	}
	return nil
}

// EndFor derives the end of a booking from its start and the summed service
// durations. Bookings may not cross midnight.
func EndFor(start Clock, totalMinutes int) (Clock, error) {
	if totalMinutes <= 0 {
		return 0, httperr.InvalidInput("invalid_duration")
	}
	end := start.Add(totalMinutes)
	if end > EndOfDay {
		return 0, httperr.InvalidInput("crosses_midnight")
	}
	return end, nil
}

