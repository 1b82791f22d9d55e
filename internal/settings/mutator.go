package settings

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/auditlog"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/setting"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

// Update is one proposed key/value change inside a batch.
type Update struct {
	Key   string `json:"key" validate:"required"`
	Value any    `json:"value"`
}

// UpdateGlobal validates and persists a batch of GLOBAL setting changes.
//
// Items with an unregistered key or a value that fails the key's rule are
// skipped with a warning and the batch continues, so one malformed field in an
// admin form does not block unrelated saves. Storage failures abort the whole
// call. Returns the number of items actually applied; each applied item
// appends exactly one audit entry.
func UpdateGlobal(
	db *gorm.DB,
	updates []Update,
	actorID uint64,
	source models.AuditSource,
) (int, error) {
	return applyBatch(db, 0, updates, actorID, source)
}

// UpdateTenant is UpdateGlobal for one tenant's overrides, with one extra
// gate: keys the registry marks non-overridable are skipped without writing
// or auditing. This is the write-side enforcement of the override policy;
// the resolver re-checks the same policy on read.
func UpdateTenant(
	db *gorm.DB,
	tenantID uint64,
	updates []Update,
	actorID uint64,
	source models.AuditSource,
) (int, error) {
	if tenantID == 0 {
		return 0, ErrTenantRequired
	}

	return applyBatch(db, tenantID, updates, actorID, source)
}

// applyBatch runs the shared batch loop. tenantID 0 targets GLOBAL scope.
func applyBatch(
	db *gorm.DB,
	tenantID uint64,
	updates []Update,
	actorID uint64,
	source models.AuditSource,
) (int, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	applied := 0

	for _, update := range updates {
		def, ok := Lookup(update.Key)
		if !ok {
			log.Warn().Str("key", update.Key).Msg("skipping update for unregistered setting key")
			continue
		}

		if tenantID != 0 && !def.TenantOverridable {
			log.Warn().Str("key", update.Key).Uint64("tenant_id", tenantID).
				Msg("skipping tenant update for non-overridable setting")
			continue
		}

		if err := def.Rule.Validate(update.Value); err != nil {
			log.Warn().Err(err).Str("key", update.Key).Msg("skipping update with invalid value")
			continue
		}

		encoded, err := encodeValue(update.Value)
		if err != nil {
			log.Warn().Err(err).Str("key", update.Key).Msg("skipping update that failed to encode")
			continue
		}

		// Read the previous value for the audit diff. Not transactional with
		// the upsert; concurrent writers can race here, which is acceptable
		// for low-frequency administrative changes.
		oldValue, err := previousValue(db, tenantID, update.Key)
		if err != nil {
			return applied, err
		}

		row, err := upsertScoped(db, tenantID, update.Key, encoded, def, actorID)
		if err != nil {
			return applied, err
		}

		entry := &models.SettingsAuditLog{
			SettingID:       &row.ID,
			Scope:           row.Scope,
			Key:             update.Key,
			OldValue:        oldValue,
			NewValue:        encoded,
			Source:          source,
			ChangedByUserID: actorID,
		}
		if tenantID != 0 {
			tid := tenantID
			entry.TenantID = &tid
		}

		if err := auditlog.Append(db, entry); err != nil {
			return applied, err
		}

		applied++
	}

	return applied, nil
}

func previousValue(db *gorm.DB, tenantID uint64, key string) ([]byte, error) {
	var (
		row *models.Setting
		err error
	)

	if tenantID == 0 {
		row, err = setting.GetGlobal(db, key)
	} else {
		row, err = setting.GetTenant(db, tenantID, key)
	}

	if errors.Is(err, setting.ErrSettingNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return row.Value, nil
}

func upsertScoped(
	db *gorm.DB,
	tenantID uint64,
	key string,
	encoded []byte,
	def Definition,
	actorID uint64,
) (*models.Setting, error) {
	if tenantID == 0 {
		return setting.UpsertGlobal(db, key, encoded, def.Type, def.Description, actorID)
	}

	return setting.UpsertTenant(db, tenantID, key, encoded, def.Type, def.Description, actorID)
}

// ResetTenant removes a tenant's override for one key, falling the effective
// value back to global/default. Resetting a key with no override succeeds as
// a no-op and writes no audit entry, making the operation idempotent. A real
// reset appends exactly one audit entry with a nil new value before the row
// is deleted.
func ResetTenant(db *gorm.DB, tenantID uint64, key string, actorID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}
	if tenantID == 0 {
		return false, ErrTenantRequired
	}

	if _, ok := Lookup(key); !ok {
		return false, ErrUnknownSettingKey
	}

	row, err := setting.GetTenant(db, tenantID, key)
	if errors.Is(err, setting.ErrSettingNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	tid := tenantID
	entry := &models.SettingsAuditLog{
		SettingID:       &row.ID,
		Scope:           models.ScopeTenant,
		TenantID:        &tid,
		Key:             key,
		OldValue:        row.Value,
		NewValue:        nil,
		Source:          models.SourceLicenseeUI,
		ChangedByUserID: actorID,
	}

	if err := auditlog.Append(db, entry); err != nil {
		return false, err
	}

	if _, err := setting.DeleteTenant(db, tenantID, key); err != nil {
		return false, err
	}

	return true, nil
}
