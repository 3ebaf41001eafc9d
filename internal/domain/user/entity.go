package user

import "time"

type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"    // Regular employee
	RoleAdmin      Role = "ADMIN"       // Company administrator
	RoleSuperAdmin Role = "SUPER_ADMIN" // Operates across every company
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User is the client-held copy of a backend user.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CompanyID *string   `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// IsSuperAdmin checks if user operates across companies
func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}

// IsAdmin checks if user is admin or super admin
func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleSuperAdmin)
}

// HasCompany checks if user belongs to a tenant
func (u *User) HasCompany() bool {
	return u != nil && u.CompanyID != nil && *u.CompanyID != ""
}

// Can resolves a capability for the user's role. A nil user has none.
func (u *User) Can(permission Permission) bool {
	if u == nil {
		return false
	}
	return HasPermission(u.Role, permission)
}
