// Package models contains database model definitions.
package models

import "time"

// SettingScope determines whether a setting row applies platform-wide or to one tenant.
type SettingScope string

const (
	// ScopeGlobal marks a setting row that applies to the whole platform.
	ScopeGlobal SettingScope = "GLOBAL"
	// ScopeTenant marks a setting row that applies to a single tenant.
	ScopeTenant SettingScope = "TENANT"
)

// ValueType tags the JSON value of a setting row for validation and display.
type ValueType string

const (
	// ValueTypeString marks a string-valued setting.
	ValueTypeString ValueType = "STRING"
	// ValueTypeNumber marks a numeric setting (stored as a JSON number).
	ValueTypeNumber ValueType = "NUMBER"
	// ValueTypeBoolean marks a boolean setting.
	ValueTypeBoolean ValueType = "BOOLEAN"
	// ValueTypeJSON marks a structured JSON setting.
	ValueTypeJSON ValueType = "JSON"
)

// Setting represents one persisted setting override.
// Registry defaults are compiled in; a row exists only once a value has been
// written for a scope. TenantID is 0 for GLOBAL rows so the composite unique
// index holds on engines where NULL values never collide.
type Setting struct {
	// ID is the unique identifier for the setting row.
	ID uint64 `gorm:"primaryKey"`
	// Scope is GLOBAL or TENANT.
	Scope SettingScope `gorm:"type:varchar(10);not null;uniqueIndex:idx_settings_scope_tenant_key"`
	// TenantID references the owning tenant, 0 when Scope is GLOBAL.
	TenantID uint64 `gorm:"not null;default:0;uniqueIndex:idx_settings_scope_tenant_key"`
	// Key is the registry key this row overrides. The column is named
	// setting_key because "key" is reserved on MySQL.
	Key string `gorm:"column:setting_key;size:100;not null;uniqueIndex:idx_settings_scope_tenant_key"`
	// Value is the JSON-encoded setting value.
	Value []byte `gorm:"type:json"`
	// ValueType mirrors the registry's declared type for the key.
	ValueType ValueType `gorm:"type:varchar(10);not null"`
	// Description is a denormalized copy of the registry description.
	Description string `gorm:"size:255"`
	// UpdatedAt is the timestamp of the last write (managed by GORM).
	UpdatedAt time.Time
	// UpdatedByUserID is the user who performed the last write.
	UpdatedByUserID uint64
}

// TableName specifies the database table name for the Setting model.
func (Setting) TableName() string {
	return "settings"
}
