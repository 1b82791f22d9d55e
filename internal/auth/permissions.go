package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions.
const (
	// PermDashboardView allows viewing the main dashboard.
	PermDashboardView = "dashboard.view"

	// PermAdminSettings allows managing platform-wide settings.
	PermAdminSettings = "admin.settings"
	// PermAdminTenants allows managing licensee tenants.
	PermAdminTenants = "admin.tenants"
	// PermAdminAudit allows reading the settings audit trail.
	PermAdminAudit = "admin.audit"
	// PermAdminUsers allows managing user accounts.
	PermAdminUsers = "admin.users"
	// PermAdminRoles allows managing roles and their permissions.
	PermAdminRoles = "admin.roles"

	// PermLicenseeSettings allows a licensee to manage their own tenant's
	// setting overrides.
	PermLicenseeSettings = "licensee.settings"
)
