package auth

import (
	"context"

	"github.com/cmlabs-hris/hris-console-go/internal/domain/user"
)

// Store is the auth feature store. Actions report success as a boolean and
// keep the failure message in Error.
type Store interface {
	Login(ctx context.Context, req LoginRequest) bool
	Register(ctx context.Context, req RegisterRequest) bool
	VerifyEmail(ctx context.Context, req VerifyEmailRequest) bool
	Logout(ctx context.Context) bool
	FetchMe(ctx context.Context) (user.User, bool)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) bool
	ChangePassword(ctx context.Context, req ChangePasswordRequest) bool

	IsLoading() bool
	Error() string
	FieldErrors() map[string]string
	ClearError()
}
