package rbac

// Permission is an atomic capability token. The set is closed: tokens outside
// this enumeration never grant anything and are rejected wherever permissions
// enter the system (role create/update, seeding).
type Permission string

const (
	PermApproveRequests      Permission = "can_approve_requests"
	PermAssignShifts         Permission = "can_assign_shifts"
	PermViewAnalytics        Permission = "can_view_analytics"
	PermManageRoles          Permission = "can_manage_roles"
	PermManageDepartments    Permission = "can_manage_departments"
	PermCreateAccounts       Permission = "can_create_accounts"
	PermDeleteAccounts       Permission = "can_delete_accounts"
	PermViewCompanyAnalytics Permission = "can_view_company_analytics"
	PermEditSchedules        Permission = "can_edit_schedules"
	PermViewAllEmployees     Permission = "can_view_all_employees"
	PermManageUnavailability Permission = "can_manage_unavailability"
	PermSwapShifts           Permission = "can_swap_shifts"
	PermRequestTimeOff       Permission = "can_request_time_off"
)

var allPermissions = []Permission{
	PermApproveRequests,
	PermAssignShifts,
	PermViewAnalytics,
	PermManageRoles,
	PermManageDepartments,
	PermCreateAccounts,
	PermDeleteAccounts,
	PermViewCompanyAnalytics,
	PermEditSchedules,
	PermViewAllEmployees,
	PermManageUnavailability,
	PermSwapShifts,
	PermRequestTimeOff,
}

var permissionDescriptions = map[Permission]string{
	PermApproveRequests:      "Approve or reject time-off and shift swap requests",
	PermAssignShifts:         "Assign shifts to employees",
	PermViewAnalytics:        "View team analytics",
	PermManageRoles:          "Create, edit and delete roles",
	PermManageDepartments:    "Create, edit and delete departments",
	PermCreateAccounts:       "Create employee accounts",
	PermDeleteAccounts:       "Deactivate employee accounts",
	PermViewCompanyAnalytics: "View company-wide analytics",
	PermEditSchedules:        "Edit and cancel schedules",
	PermViewAllEmployees:     "View all employees",
	PermManageUnavailability: "Manage unavailability periods",
	PermSwapShifts:           "Request shift swaps",
	PermRequestTimeOff:       "Request time off",
}

// AllPermissions returns the closed permission set in declaration order.
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

func (p Permission) String() string {
	return string(p)
}

func (p Permission) Valid() bool {
	_, ok := permissionDescriptions[p]
	return ok
}

// Describe returns the human-readable description of a known permission.
func (p Permission) Describe() string {
	return permissionDescriptions[p]
}

// ParsePermission converts a raw token to a Permission, reporting whether it
// belongs to the closed set.
func ParsePermission(raw string) (Permission, bool) {
	p := Permission(raw)
	return p, p.Valid()
}

// RoleClass is the coarse legacy grouping used for page-level layout
// decisions. Fine-grained permissions gate actions; classes gate surfaces.
type RoleClass string

const (
	RoleClassAdmin    RoleClass = "admin"
	RoleClassManager  RoleClass = "manager"
	RoleClassEmployee RoleClass = "employee"
)

func (c RoleClass) Valid() bool {
	switch c {
	case RoleClassAdmin, RoleClassManager, RoleClassEmployee:
		return true
	}
	return false
}

func (c RoleClass) String() string {
	return string(c)
}

// ParseRoleClass converts a raw value to a RoleClass, falling back to the
// employee class for anything unrecognized.
func ParseRoleClass(raw string) RoleClass {
	c := RoleClass(raw)
	if !c.Valid() {
		return RoleClassEmployee
	}
	return c
}
