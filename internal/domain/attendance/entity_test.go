package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 10, 5, hour, minute, 0, 0, time.UTC)
}

func closed(in, out time.Time) *Record {
	return &Record{ClockInTime: in, ClockOutTime: &out}
}

func TestFormatWorkingHours(t *testing.T) {
	tests := []struct {
		name   string
		record *Record
		want   string
	}{
		{name: "nil record", record: nil, want: Placeholder},
		{name: "open record", record: &Record{ClockInTime: at(9, 0)}, want: Placeholder},
		{name: "clock out before clock in", record: closed(at(17, 0), at(9, 0)), want: Placeholder},
		{name: "clock out equals clock in", record: closed(at(9, 0), at(9, 0)), want: Placeholder},
		{name: "missing clock in", record: closed(time.Time{}, at(17, 0)), want: Placeholder},
		{name: "normal span", record: closed(at(8, 15), at(17, 0)), want: "08:45"},
		{name: "seconds are truncated", record: closed(at(9, 0), at(9, 1).Add(59*time.Second)), want: "00:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWorkingHours(tt.record))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "00:00", FormatDuration(-time.Hour))
	assert.Equal(t, "01:05", FormatDuration(65*time.Minute))
	assert.Equal(t, "30:00", FormatDuration(30*time.Hour))
}

func TestFormatClock(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	ts := at(2, 30)

	assert.Equal(t, Placeholder, FormatClock(nil, jakarta))
	assert.Equal(t, Placeholder, FormatClock(&time.Time{}, jakarta))
	assert.Equal(t, "09:30", FormatClock(&ts, jakarta))
	assert.Equal(t, "02:30", FormatClock(&ts, nil))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, TodayStatus{}, StatusOf(nil))

	open := &Record{ClockInTime: at(9, 0)}
	st := StatusOf(open)
	assert.True(t, st.IsClockedIn)
	assert.False(t, st.IsClockedOut)
	assert.Same(t, open, st.Record)

	st = StatusOf(closed(at(9, 0), at(17, 0)))
	assert.True(t, st.IsClockedIn)
	assert.True(t, st.IsClockedOut)
}

func TestTotalWorkingHours_SkipsOpenAndInvertedRecords(t *testing.T) {
	records := []Record{
		*closed(at(9, 0), at(17, 0)),
		{ClockInTime: at(9, 0)},
		*closed(at(17, 0), at(9, 0)),
		*closed(at(13, 0), at(13, 30)),
	}

	assert.Equal(t, 8*time.Hour+30*time.Minute, TotalWorkingHours(records))
	assert.Zero(t, TotalWorkingHours(nil))
}
