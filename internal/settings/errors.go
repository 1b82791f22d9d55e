package settings

import "errors"

var (
	// ErrUnknownSettingKey is returned when a caller references a key absent
	// from the registry.
	ErrUnknownSettingKey = errors.New("setting key is not registered")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrTenantRequired is returned when a tenant-scoped operation is called
	// without a tenant.
	ErrTenantRequired = errors.New("tenant id is required")
)
