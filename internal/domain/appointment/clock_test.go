package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want Clock
		ok   bool
	}{
		{in: "00:00", want: 0, ok: true},
		{in: "09:30", want: 570, ok: true},
		{in: "23:59", want: 1439, ok: true},
		{in: "24:00", ok: false},
		{in: "9:30", ok: false},
		{in: "09:60", ok: false},
		{in: "0930", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}

	assert.Equal(t, "24:00", EndOfDay.String())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 1, int(d.Weekday()))

	for _, bad := range []string{"2024-6-10", "2024-02-30", "10/06/2024", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	nine, nineThirty, ten := MustClock("09:00"), MustClock("09:30"), MustClock("10:00")

	assert.True(t, Overlaps(nine, nineThirty, MustClock("09:15"), MustClock("09:45")))
	assert.True(t, Overlaps(nine, ten, MustClock("09:15"), MustClock("09:30")))
	assert.False(t, Overlaps(nine, nineThirty, nineThirty, ten))
	assert.False(t, Overlaps(nineThirty, ten, nine, nineThirty))
}
