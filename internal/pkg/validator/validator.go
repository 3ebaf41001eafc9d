package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; exists {
			result[err.Field] += "; " + err.Message
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

const (
	MsgPasswordLength    = "password must be at least 8 characters"
	MsgPasswordUppercase = "password must contain at least one uppercase letter"
	MsgPasswordLowercase = "password must contain at least one lowercase letter"
	MsgPasswordDigit     = "password must contain at least one number"
)

// PasswordIssues returns one message per unmet complexity rule, in a fixed order.
func PasswordIssues(password string) []string {
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	var issues []string
	if len([]rune(password)) < 8 {
		issues = append(issues, MsgPasswordLength)
	}
	if !hasUpper {
		issues = append(issues, MsgPasswordUppercase)
	}
	if !hasLower {
		issues = append(issues, MsgPasswordLowercase)
	}
	if !hasDigit {
		issues = append(issues, MsgPasswordDigit)
	}
	return issues
}

// ValidatePassword appends every password issue under field.
func ValidatePassword(errs *ValidationErrors, field, password string) {
	for _, msg := range PasswordIssues(password) {
		errs.Add(field, msg)
	}
}

// DateRange checks that both dates parse and that start is not after end.
// Equal dates are a valid single-day range.
func DateRange(errs *ValidationErrors, startField, start, endField, end string) {
	s, okStart := IsValidDate(start)
	if !okStart {
		errs.Add(startField, startField+" must be a valid date (YYYY-MM-DD)")
	}
	e, okEnd := IsValidDate(end)
	if !okEnd {
		errs.Add(endField, endField+" must be a valid date (YYYY-MM-DD)")
	}
	if okStart && okEnd && s.After(e) {
		errs.Add(endField, endField+" must not be before "+startField)
	}
}
