// Package auditlog provides append and read access to the settings audit trail.
// Entries are written once and never updated or deleted.
package auditlog

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

const (
	// DefaultLimit is the page size used when no limit is given.
	DefaultLimit = 50
	// MaxLimit caps a single page of audit entries.
	MaxLimit = 500
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrEntryNil is returned when attempting to append a nil entry.
	ErrEntryNil = errors.New("audit entry is nil")
)

// Filter narrows an audit listing. TenantID and Key filter independently;
// a nil TenantID / empty Key leaves that dimension unfiltered.
type Filter struct {
	TenantID *uint64
	Key      string
	Limit    int
	Offset   int
}

// Append writes one audit entry. ChangedAt defaults to now when unset.
func Append(db *gorm.DB, entry *models.SettingsAuditLog) error {
	if db == nil {
		return ErrDBNil
	}
	if entry == nil {
		return ErrEntryNil
	}

	if entry.ChangedAt.IsZero() {
		entry.ChangedAt = time.Now()
	}

	return db.Create(entry).Error
}

// List returns audit entries newest-first, paginated via limit and offset.
func List(db *gorm.DB, filter Filter) ([]models.SettingsAuditLog, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	query := db.Model(&models.SettingsAuditLog{})

	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}

	if filter.Key != "" {
		query = query.Where("setting_key = ?", filter.Key)
	}

	var entries []models.SettingsAuditLog
	result := query.Order("changed_at DESC, id DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
