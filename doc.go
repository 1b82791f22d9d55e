// Package main provides the entry point for the camp management platform.
// It initializes and runs a web server using the Fiber framework that gives
// HQ staff and licensees a REST API for platform settings, tenants and the
// settings audit trail. The application uses gorm for data persistence and
// resolves every setting through a layered default, global and per-tenant
// scheme.
package main
