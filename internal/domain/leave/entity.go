package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

type Type string

const (
	TypePaid   Type = "PAID"
	TypeUnpaid Type = "UNPAID"
	TypeSick   Type = "SICK"
	TypeOther  Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypePaid, TypeUnpaid, TypeSick, TypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// transitions is the only set of status changes a client may request.
var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

// CanTransition reports whether a request in status from may move to to.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsFinal reports whether no further transition exists from s.
func (s Status) IsFinal() bool {
	return len(transitions[s]) == 0
}

// Request is a leave request. StartDate and EndDate are YYYY-MM-DD.
type Request struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	LeaveType Type      `json:"leaveType"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	// Joined by admin listings
	UserName *string `json:"userName,omitempty"`
}

// Editable reports whether the requester may still change reason or dates.
func (r *Request) Editable() bool {
	return r.Status == StatusPending
}

// Days returns the inclusive day count of the request.
func (r *Request) Days() int {
	return CalculateDays(r.StartDate, r.EndDate)
}

// CalculateDays counts calendar days from start to end inclusive. Unparseable
// or inverted ranges count as zero.
func CalculateDays(start, end string) int {
	s, ok := validator.IsValidDate(start)
	if !ok {
		return 0
	}
	e, ok := validator.IsValidDate(end)
	if !ok || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
