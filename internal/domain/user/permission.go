package user

import "sort"

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"

	// Administration
	PermissionAdminPanel Permission = "admin.panel"
	PermissionUserManage Permission = "user.manage"

	// Tenants
	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"
	PermissionCompanySwitch Permission = "company.switch"
	PermissionCompanyAssign Permission = "company.assign"

	PermissionSuperAdminCreate Permission = "super_admin.create"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionAttendanceClock,
	PermissionAttendanceViewOwn,
	PermissionLeaveCreate,
	PermissionLeaveViewOwn,
}

var adminPermissions = append(append([]Permission{}, employeePermissions...),
	PermissionAttendanceViewAll,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionReportsView,
	PermissionReportsExport,
	PermissionAdminPanel,
	PermissionUserManage,
	PermissionCompanyView,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: employeePermissions,
	RoleAdmin:    adminPermissions,
	RoleSuperAdmin: append(append([]Permission{}, adminPermissions...),
		// Super admin additionally owns every tenant
		PermissionCompanyManage,
		PermissionCompanySwitch,
		PermissionCompanyAssign,
		PermissionSuperAdminCreate,
	),
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}

// Capabilities returns the sorted permission set of role, empty for unknown roles.
func Capabilities(role Role) []Permission {
	perms := append([]Permission{}, RolePermissions[role]...)
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
