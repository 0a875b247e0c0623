package appointment

import "github.com/BruksfildServices01/barbearia-agenda/internal/models"

// WindowFor resolves the bookable window of a weekday: the employee's own
// schedule when one exists (a missing weekday means a day off), otherwise
// the tenant's opening hours on its operating days.
func WindowFor(hours []models.WorkingHours, tenant *models.Tenant, weekday int) (DayWindow, bool) {
	if len(hours) > 0 {
		for _, wh := range hours {
			if wh.Weekday != weekday {
				continue
			}
			if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
				return DayWindow{}, false
			}
			return windowFrom(wh.StartTime, wh.EndTime, wh.LunchStart, wh.LunchEnd)
		}
		return DayWindow{}, false
	}

	if tenant == nil || !tenant.OperatesOn(weekday) {
		return DayWindow{}, false
	}
	return windowFrom(tenant.OpeningTime, tenant.ClosingTime, "", "")
}

func windowFrom(start, end, lunchStart, lunchEnd string) (DayWindow, bool) {
	s, err := ParseClock(start)
	if err != nil {
		return DayWindow{}, false
	}
	e, err := ParseClock(end)
	if err != nil || e <= s {
		return DayWindow{}, false
	}

	w := DayWindow{Start: s, End: e}
	if lunchStart != "" && lunchEnd != "" {
		ls, err1 := ParseClock(lunchStart)
		le, err2 := ParseClock(lunchEnd)
		if err1 == nil && err2 == nil && le > ls {
			w.LunchStart, w.LunchEnd, w.HasLunch = ls, le, true
		}
	}
	return w, true
}
