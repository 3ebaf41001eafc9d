package auth

import (
	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}

	// Password
	validator.ValidatePassword(&errs, "password", r.Password)
	if r.Password != r.ConfirmPassword {
		errs.Add("confirmPassword", "passwords do not match")
	}

	return errs.Err()
}

// VerifyEmailRequest carries the one-shot token and user id from the verification link
type VerifyEmailRequest struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

func (r *VerifyEmailRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Token) {
		errs.Add("token", "token is required")
	}
	if validator.IsEmpty(r.UserID) {
		errs.Add("userId", "userId is required")
	}

	return errs.Err()
}

type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Email == nil {
		errs.Add("profile", "at least one field must be provided")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs.Add("email", "invalid email format")
	}

	return errs.Err()
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"-"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs.Add("currentPassword", "currentPassword is required")
	}
	validator.ValidatePassword(&errs, "newPassword", r.NewPassword)
	if r.NewPassword != r.ConfirmNewPassword {
		errs.Add("confirmNewPassword", "passwords do not match")
	}

	return errs.Err()
}

// AuthResult is the data payload of login, register and verify-email
type AuthResult struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}
