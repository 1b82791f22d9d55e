// Package setting provides persistence for scoped setting rows.
//
// Rows are keyed by (scope, tenant_id, key). GLOBAL rows carry tenant_id 0.
// Effective-value layering and validation live in internal/settings; this
// package only reads and writes rows.
package setting

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

const (
	scopeTenantKeyQueryPattern = "scope = ? AND tenant_id = ? AND setting_key = ?"
	scopeTenantQueryPattern    = "scope = ? AND tenant_id = ?"
)

var (
	// ErrSettingNotFound is returned when no row exists for the requested scope and key.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to read or write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrTenantIDZero is returned when a tenant-scoped operation is attempted without a tenant.
	ErrTenantIDZero = errors.New("tenant id cannot be zero for tenant scope")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetGlobal retrieves the GLOBAL row for a key.
func GetGlobal(db *gorm.DB, key string) (*models.Setting, error) {
	return get(db, models.ScopeGlobal, 0, key)
}

// GetTenant retrieves the TENANT row for a tenant and key.
func GetTenant(db *gorm.DB, tenantID uint64, key string) (*models.Setting, error) {
	if tenantID == 0 {
		return nil, ErrTenantIDZero
	}

	return get(db, models.ScopeTenant, tenantID, key)
}

func get(db *gorm.DB, scope models.SettingScope, tenantID uint64, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var row models.Setting
	result := db.Where(scopeTenantKeyQueryPattern, scope, tenantID, key).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &row, nil
}

// ListGlobal retrieves all GLOBAL rows.
func ListGlobal(db *gorm.DB) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.Setting
	result := db.Where(scopeTenantQueryPattern, models.ScopeGlobal, 0).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// ListTenant retrieves all TENANT rows for one tenant.
func ListTenant(db *gorm.DB, tenantID uint64) ([]models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if tenantID == 0 {
		return nil, ErrTenantIDZero
	}

	var rows []models.Setting
	result := db.Where(scopeTenantQueryPattern, models.ScopeTenant, tenantID).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// UpsertGlobal creates or updates the GLOBAL row for a key in one statement.
func UpsertGlobal(
	db *gorm.DB,
	key string,
	value []byte,
	valueType models.ValueType,
	description string,
	userID uint64,
) (*models.Setting, error) {
	return upsert(db, models.ScopeGlobal, 0, key, value, valueType, description, userID)
}

// UpsertTenant creates or updates the TENANT row for a tenant and key in one statement.
func UpsertTenant(
	db *gorm.DB,
	tenantID uint64,
	key string,
	value []byte,
	valueType models.ValueType,
	description string,
	userID uint64,
) (*models.Setting, error) {
	if tenantID == 0 {
		return nil, ErrTenantIDZero
	}

	return upsert(db, models.ScopeTenant, tenantID, key, value, valueType, description, userID)
}

// upsert writes a row atomically on the (scope, tenant_id, key) unique index.
func upsert(
	db *gorm.DB,
	scope models.SettingScope,
	tenantID uint64,
	key string,
	value []byte,
	valueType models.ValueType,
	description string,
	userID uint64,
) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	row := &models.Setting{
		Scope:           scope,
		TenantID:        tenantID,
		Key:             key,
		Value:           value,
		ValueType:       valueType,
		Description:     description,
		UpdatedAt:       time.Now(),
		UpdatedByUserID: userID,
	}

	result := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "scope"}, {Name: "tenant_id"}, {Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns(
			[]string{"value", "value_type", "description", "updated_at", "updated_by_user_id"},
		),
	}).Create(row)
	if result.Error != nil {
		return nil, result.Error
	}

	// On conflict the returned ID can be stale on some engines; re-read for
	// callers that reference the row from audit entries.
	return get(db, scope, tenantID, key)
}

// DeleteTenant removes the TENANT row for a tenant and key.
// It reports whether a row was actually deleted, so callers can make
// reset-to-default idempotent.
func DeleteTenant(db *gorm.DB, tenantID uint64, key string) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}
	if key == "" {
		return false, ErrSettingKeyEmpty
	}
	if tenantID == 0 {
		return false, ErrTenantIDZero
	}

	result := db.Where(scopeTenantKeyQueryPattern, models.ScopeTenant, tenantID, key).
		Delete(&models.Setting{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
