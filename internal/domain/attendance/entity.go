package attendance

import (
	"fmt"
	"time"
)

// Placeholder is rendered for a time or duration that does not exist yet.
const Placeholder = "--:--"

// Record is one attendance day-record. At most one open record (no clock-out)
// exists per user per day.
type Record struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Date         string     `json:"date"`
	ClockInTime  time.Time  `json:"clockInTime"`
	ClockOutTime *time.Time `json:"clockOutTime"`
	Location     *string    `json:"location,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt,omitempty"`

	// Joined by admin listings
	UserName *string `json:"userName,omitempty"`
}

// IsOpen reports whether the record is still waiting for a clock-out.
func (r *Record) IsOpen() bool {
	return r.ClockOutTime == nil
}

// TodayStatus is a derived view of the current user's record for today.
type TodayStatus struct {
	IsClockedIn  bool    `json:"isClockedIn"`
	IsClockedOut bool    `json:"isClockedOut"`
	Record       *Record `json:"record"`
}

// StatusOf derives the today status from a (possibly nil) record.
func StatusOf(r *Record) TodayStatus {
	if r == nil {
		return TodayStatus{}
	}
	return TodayStatus{
		IsClockedIn:  !r.ClockInTime.IsZero(),
		IsClockedOut: r.ClockOutTime != nil,
		Record:       r,
	}
}

// WorkingDuration returns the clocked span. ok is false for an open record
// or a span that is not positive.
func WorkingDuration(r *Record) (d time.Duration, ok bool) {
	if r == nil || r.ClockOutTime == nil || r.ClockInTime.IsZero() {
		return 0, false
	}
	d = r.ClockOutTime.Sub(r.ClockInTime)
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// FormatWorkingHours renders the working duration as HH:MM, or Placeholder.
func FormatWorkingHours(r *Record) string {
	d, ok := WorkingDuration(r)
	if !ok {
		return Placeholder
	}
	return FormatDuration(d)
}

// FormatDuration renders d as HH:MM. Hours are not capped at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatClock renders a wall-clock time in loc as HH:MM, or Placeholder on nil.
func FormatClock(t *time.Time, loc *time.Location) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	if loc != nil {
		return t.In(loc).Format("15:04")
	}
	return t.Format("15:04")
}

// TotalWorkingHours sums the closed records, skipping open ones.
func TotalWorkingHours(records []Record) time.Duration {
	var total time.Duration
	for i := range records {
		if d, ok := WorkingDuration(&records[i]); ok {
			total += d
		}
	}
	return total
}
