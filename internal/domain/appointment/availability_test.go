package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbearia-agenda/internal/models"
)

func TestGenerateSlots(t *testing.T) {
	w := DayWindow{
		Start:      MustClock("09:00"),
		End:        MustClock("12:00"),
		LunchStart: MustClock("10:30"),
		LunchEnd:   MustClock("11:00"),
		HasLunch:   true,
	}
	booked := [][2]Clock{{MustClock("09:30"), MustClock("10:00")}}

	slots := GenerateSlots(w, 30, booked)

	assert.Equal(t, []TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
		{Start: "11:00", End: "11:30"},
		{Start: "11:30", End: "12:00"},
	}, slots)

	assert.Empty(t, GenerateSlots(w, 0, nil))
	assert.Empty(t, GenerateSlots(w, 240, nil))
}

func TestWindowFor(t *testing.T) {
	tenant := &models.Tenant{OpeningTime: "08:00", ClosingTime: "18:00", OperatingDays: []int{1, 2, 3, 4, 5}}

	w, ok := WindowFor(nil, tenant, 3)
	assert.True(t, ok)
	assert.Equal(t, MustClock("08:00"), w.Start)
	assert.False(t, w.HasLunch)

	_, ok = WindowFor(nil, tenant, 0)
	assert.False(t, ok)

	hours := []models.WorkingHours{
		{Weekday: 1, StartTime: "10:00", EndTime: "16:00", LunchStart: "12:00", LunchEnd: "13:00", Active: true},
		{Weekday: 2, StartTime: "10:00", EndTime: "16:00", Active: false},
	}

	w, ok = WindowFor(hours, tenant, 1)
	assert.True(t, ok)
	assert.Equal(t, MustClock("10:00"), w.Start)
	assert.True(t, w.HasLunch)

	_, ok = WindowFor(hours, tenant, 2)
	assert.False(t, ok, "inactive day")

	_, ok = WindowFor(hours, tenant, 3)
	assert.False(t, ok, "day missing from the employee schedule")
}
