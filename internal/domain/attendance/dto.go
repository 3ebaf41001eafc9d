package attendance

import (
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

type ClockInRequest struct {
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}
	if r.Location != nil && len(*r.Location) > 255 {
		errs.Add("location", "location must not exceed 255 characters")
	}
	return errs.Err()
}

type ClockOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs.Add("notes", "notes must not exceed 500 characters")
	}
	return errs.Err()
}

// ListFilter narrows attendance listings. Empty fields are not sent.
type ListFilter struct {
	StartDate string
	EndDate   string
	UserID    string
	Page      int
	Limit     int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.StartDate != "" && f.EndDate != "" {
		validator.DateRange(&errs, "startDate", f.StartDate, "endDate", f.EndDate)
	} else {
		if f.StartDate != "" {
			if _, ok := validator.IsValidDate(f.StartDate); !ok {
				errs.Add("startDate", "startDate must be a valid date (YYYY-MM-DD)")
			}
		}
		if f.EndDate != "" {
			if _, ok := validator.IsValidDate(f.EndDate); !ok {
				errs.Add("endDate", "endDate must be a valid date (YYYY-MM-DD)")
			}
		}
	}
	if f.Page < 0 {
		errs.Add("page", "page must not be negative")
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 0 and 100")
	}
	return errs.Err()
}

// Query encodes the filter as backend query parameters.
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
