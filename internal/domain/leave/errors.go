package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidStatusTransition      = errors.New("invalid leave status transition")
	ErrInvalidDateRange             = errors.New("start date must not be after end date")
)
