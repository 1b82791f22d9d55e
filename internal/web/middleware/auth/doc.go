// Package auth provides authentication middleware for the web application.
//
// The middleware handles session validation, user authentication checks,
// and automatic rejection of unauthenticated requests. It also adds the
// current user to the request context for use in handlers.
//
// The middleware performs the following tasks:
//   - Validates session cookies; unauthenticated API requests get a JSON 401,
//     everything else is redirected to login
//   - Adds current user information to fiber.Locals for handler access
//   - Allows public access to login, logout, OIDC and health endpoints
//   - Prevents redirect loops on authentication pages
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
//
// The middleware expects sessions to be managed by the session package.
package auth
