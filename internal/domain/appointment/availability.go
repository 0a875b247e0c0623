package appointment

type AvailabilityInput struct {
	TenantKey  string
	EmployeeID string
	ServiceIDs []string
	Date       string
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayWindow is the bookable part of one day for one employee.
type DayWindow struct {
	Start      Clock
	End        Clock
	LunchStart Clock
	LunchEnd   Clock
	HasLunch   bool
}

// GenerateSlots walks the window in steps of duration and keeps every slot
// that avoids lunch and every booked interval.
func GenerateSlots(w DayWindow, duration int, booked [][2]Clock) []TimeSlot {
	slots := []TimeSlot{}
	if duration <= 0 {
		return slots
	}

	step := Clock(duration)
	for cur := w.Start; cur+step <= w.End; cur += step {
		slotStart := cur
		slotEnd := cur + step

		// almoço
		if w.HasLunch && Overlaps(slotStart, slotEnd, w.LunchStart, w.LunchEnd) {
			continue
		}

		conflict := false
		for _, b := range booked {
			if Overlaps(slotStart, slotEnd, b[0], b[1]) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: slotStart.String(),
				End:   slotEnd.String(),
			})
		}
	}

	return slots
}
