package leave

import (
	"fmt"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

type CreateRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	LeaveType Type   `json:"leaveType"`
	Reason    string `json:"reason"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StartDate) {
		errs.Add("startDate", "startDate is required")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("endDate", "endDate is required")
	}
	if !validator.IsEmpty(r.StartDate) && !validator.IsEmpty(r.EndDate) {
		validator.DateRange(&errs, "startDate", r.StartDate, "endDate", r.EndDate)
	}

	if !r.LeaveType.Valid() {
		errs.Add("leaveType", "leaveType must be one of PAID, UNPAID, SICK, OTHER")
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

// UpdateRequest is the requester's edit of a pending request
type UpdateRequest struct {
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// ValidateAgainst checks the edit merged onto current.
func (r *UpdateRequest) ValidateAgainst(current Request) error {
	var errs validator.ValidationErrors

	if r.StartDate == nil && r.EndDate == nil && r.Reason == nil {
		errs.Add("request", "at least one field must be provided")
	}

	start, end := current.StartDate, current.EndDate
	if r.StartDate != nil {
		start = *r.StartDate
	}
	if r.EndDate != nil {
		end = *r.EndDate
	}
	if r.StartDate != nil || r.EndDate != nil {
		validator.DateRange(&errs, "startDate", start, "endDate", end)
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs.Add("reason", "reason must not be empty")
	}

	return errs.Err()
}

// StatusUpdate is an admin decision on a request
type StatusUpdate struct {
	Status  Status  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

func (r *StatusUpdate) Validate() error {
	var errs validator.ValidationErrors
	if r.Status != StatusApproved && r.Status != StatusRejected {
		errs.Add("status", fmt.Sprintf("status must be %s or %s", StatusApproved, StatusRejected))
	}
	return errs.Err()
}
