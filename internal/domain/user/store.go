package user

import "context"

// AdminStore manages users of the selected company.
type AdminStore interface {
	FetchUsers(ctx context.Context, filter ListFilter) bool
	CreateUser(ctx context.Context, req CreateUserRequest) (User, bool)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) bool
	DeleteUser(ctx context.Context, id string) bool
	AssignCompany(ctx context.Context, id string, req AssignCompanyRequest) bool
	CreateSuperAdmin(ctx context.Context, req CreateSuperAdminRequest) (User, bool)

	Users() []User
	IsLoading() bool
	Error() string
	FieldErrors() map[string]string
	ClearError()
}
