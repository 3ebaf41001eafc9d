package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidCompanyName = errors.New("company name cannot be empty")
	ErrSwitchNotPermitted = errors.New("switching company requires super admin privilege")
	ErrCompanyNotSelected = errors.New("no company selected")
)
