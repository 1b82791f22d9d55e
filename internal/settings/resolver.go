package settings

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/setting"
)

// Resolve computes the effective value of one setting. tenantID 0 resolves
// without a tenant context. Stored values are trusted as-is; they were
// validated when written.
func Resolve(db *gorm.DB, key string, tenantID uint64) (any, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	def, ok := Lookup(key)
	if !ok {
		return nil, ErrUnknownSettingKey
	}

	value := def.Default

	row, err := setting.GetGlobal(db, key)
	switch {
	case err == nil:
		if v, ok := decodeValue(row.Value, key); ok {
			value = v
		}
	case !errors.Is(err, setting.ErrSettingNotFound):
		return nil, err
	}

	// The override-permission gate is a policy check, not a data check: a
	// tenant row for a locked key is never consulted.
	if tenantID == 0 || !def.TenantOverridable {
		return value, nil
	}

	tenantRow, err := setting.GetTenant(db, tenantID, key)
	switch {
	case err == nil:
		if v, ok := decodeValue(tenantRow.Value, key); ok {
			value = v
		}
	case !errors.Is(err, setting.ErrSettingNotFound):
		return nil, err
	}

	return value, nil
}

// ResolveAll computes the effective value of every registered setting using
// two batched queries (all GLOBAL rows, then all TENANT rows for tenantID)
// instead of one round trip per key.
func ResolveAll(db *gorm.DB, tenantID uint64) (map[string]any, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	effective := make(map[string]any, len(registry))
	for key, def := range registry {
		effective[key] = def.Default
	}

	globalRows, err := setting.ListGlobal(db)
	if err != nil {
		return nil, err
	}

	for i := range globalRows {
		row := &globalRows[i]
		if _, ok := registry[row.Key]; !ok {
			// Rows for retired keys stay in the table but never resolve.
			continue
		}

		if v, ok := decodeValue(row.Value, row.Key); ok {
			effective[row.Key] = v
		}
	}

	if tenantID == 0 {
		return effective, nil
	}

	tenantRows, err := setting.ListTenant(db, tenantID)
	if err != nil {
		return nil, err
	}

	for i := range tenantRows {
		row := &tenantRows[i]

		def, ok := registry[row.Key]
		if !ok || !def.TenantOverridable {
			continue
		}

		if v, ok := decodeValue(row.Value, row.Key); ok {
			effective[row.Key] = v
		}
	}

	return effective, nil
}

// decodeValue unmarshals a stored JSON value. A row that fails to decode is
// skipped so one corrupt value cannot poison a full resolution.
func decodeValue(raw []byte, key string) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("skipping undecodable stored setting value")
		return nil, false
	}

	return value, true
}

// encodeValue marshals a value for storage.
func encodeValue(value any) ([]byte, error) {
	return json.Marshal(value)
}
