package settings

import (
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/auditlog"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

// AuditFilter narrows an audit history listing.
type AuditFilter = auditlog.Filter

// AuditHistory returns setting change history, newest first. Both filter
// dimensions are independent; offset/limit pagination is sufficient at
// administrative change volumes.
func AuditHistory(db *gorm.DB, filter AuditFilter) ([]models.SettingsAuditLog, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	return auditlog.List(db, filter)
}
