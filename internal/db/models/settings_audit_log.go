package models

import "time"

// AuditSource identifies which surface produced a settings change.
type AuditSource string

const (
	// SourceAdminUI marks changes made through the HQ admin portal.
	SourceAdminUI AuditSource = "ADMIN_UI"
	// SourceLicenseeUI marks changes made through a licensee portal.
	SourceLicenseeUI AuditSource = "LICENSEE_UI"
	// SourceSystem marks changes made by internal system flows.
	SourceSystem AuditSource = "SYSTEM"
)

// SettingsAuditLog records one configuration change. Entries are immutable
// once written. Scope, TenantID and Key are denormalized copies so history
// survives deletion of the setting row it came from.
type SettingsAuditLog struct {
	// ID is the unique identifier for the audit entry.
	ID uint64 `gorm:"primaryKey"`
	// SettingID is a weak reference to the setting row; nil after a reset
	// deleted the row, or when the row was removed later.
	SettingID *uint64 `gorm:"index"`
	// Scope of the changed setting (GLOBAL or TENANT).
	Scope SettingScope `gorm:"type:varchar(10);not null"`
	// TenantID of the changed setting, nil for GLOBAL changes.
	TenantID *uint64 `gorm:"index"`
	// Key is the registry key that changed.
	Key string `gorm:"column:setting_key;size:100;not null;index"`
	// OldValue is the JSON value before the change, nil on first write.
	OldValue []byte `gorm:"type:json"`
	// NewValue is the JSON value after the change, nil on reset.
	NewValue []byte `gorm:"type:json"`
	// Source identifies the surface that made the change.
	Source AuditSource `gorm:"type:varchar(20);not null"`
	// ChangedAt is when the change happened.
	ChangedAt time.Time `gorm:"not null;index"`
	// ChangedByUserID is the acting user.
	ChangedByUserID uint64
}

// TableName specifies the database table name for the SettingsAuditLog model.
func (SettingsAuditLog) TableName() string {
	return "settings_audit_logs"
}
