// Package auth provides authentication and authorization functionality for the application.
//
// This package implements a Role-Based Access Control (RBAC) system
// with support for two authentication sources:
//   - Local database authentication with Argon2id password hashing
//   - OpenID Connect (OIDC) authentication with external identity providers
//
// # Authentication Providers
//
// LocalProvider handles traditional username/password authentication against
// the local database with secure Argon2id password hashing.
//
// OIDCProvider implements OAuth2/OIDC flows for authentication with external
// identity providers like Google, Okta, Keycloak, and Azure AD. OIDC users are
// created without a role on first login; an admin assigns one afterwards.
//
// # Authorization System
//
// The authorization system uses a simple permission model:
//   - Every user has a single role (hq_admin, licensee, director, coach)
//   - Roles contain a set of permissions
//   - Permissions are checked for resource access
//   - Licensee, director and coach accounts are additionally scoped to a tenant
//
// # Permission Checking
//
// The Service type provides methods for checking user permissions:
//   - HasPermission: Check if user has a specific permission
//   - HasAnyPermission: Check if user has at least one permission from a list
//   - HasAllPermissions: Check if user has all permissions from a list
//   - GetUserPermissions: Retrieve all permissions for a user
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequirePermission: Protect routes requiring a specific permission
//   - RequireAnyPermission: Protect routes requiring any of several permissions
//   - AddPermissionsToLocals: Add user permissions to the request context
//
// Example usage:
//
//	// Initialize auth service
//	authService := auth.NewService(db)
//
//	// Check permission in handler
//	hasPermission, err := authService.HasPermission(userID, auth.PermAdminSettings)
//
//	// Protect route with middleware
//	app.Get("/api/admin/settings",
//	    auth.RequirePermission(authService, auth.PermAdminSettings),
//	    handler,
//	)
package auth
