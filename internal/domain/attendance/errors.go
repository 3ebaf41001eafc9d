package attendance

import "errors"

var (
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("clock-in required before clock-out")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
)
