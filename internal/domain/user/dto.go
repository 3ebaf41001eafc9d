package user

import (
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

var validRoles = []string{string(RoleEmployee), string(RoleAdmin), string(RoleSuperAdmin)}

// CreateUserRequest represents an admin creating a user in the selected company
type CreateUserRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      Role    `json:"role"`
	CompanyID *string `json:"companyId,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	validator.ValidatePassword(&errs, "password", r.Password)

	if validator.IsEmpty(string(r.Role)) {
		errs.Add("role", "role is required")
	} else if !validator.IsInSlice(string(r.Role), validRoles) {
		errs.Add("role", "invalid role")
	}

	return errs.Err()
}

// UpdateUserRequest represents a privileged update of another user
type UpdateUserRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	CompanyID *string `json:"companyId,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Email == nil && r.Role == nil && r.CompanyID == nil {
		errs.Add("user", "at least one field must be provided")
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}

	if r.Email != nil {
		if validator.IsEmpty(*r.Email) {
			errs.Add("email", "email must not be empty")
		} else if !validator.IsValidEmail(*r.Email) {
			errs.Add("email", "invalid email format")
		}
	}

	if r.Role != nil && !r.Role.Valid() {
		errs.Add("role", "invalid role")
	}

	if r.CompanyID != nil && validator.IsEmpty(*r.CompanyID) {
		errs.Add("companyId", "companyId must not be empty")
	}

	return errs.Err()
}

// AssignCompanyRequest moves a user into a tenant
type AssignCompanyRequest struct {
	CompanyID string `json:"companyId"`
}

func (r *AssignCompanyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.CompanyID) {
		errs.Add("companyId", "companyId is required")
	}
	return errs.Err()
}

// CreateSuperAdminRequest represents the super-admin creation form
type CreateSuperAdminRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (r *CreateSuperAdminRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	validator.ValidatePassword(&errs, "password", r.Password)

	if r.Password != r.ConfirmPassword {
		errs.Add("confirmPassword", "passwords do not match")
	}

	return errs.Err()
}

// ListFilter narrows the admin user listing
type ListFilter struct {
	CompanyID string
	Role      Role
	Page      int
	Limit     int
}

// Query encodes the filter as backend query parameters.
func (f ListFilter) Query() url.Values {
	q := url.Values{}
	if f.CompanyID != "" {
		q.Set("companyId", f.CompanyID)
	}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
