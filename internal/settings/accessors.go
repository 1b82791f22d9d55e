package settings

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// Convenience accessors for the flags the platform consults on nearly every
// request. Each falls back to a hardcoded safe value when resolution fails,
// since these gate critical behavior.

const fallbackMaxAthletes = 5

// MaintenanceMode reports whether public surfaces should be offline.
func MaintenanceMode(db *gorm.DB) bool {
	return boolSetting(db, KeyMaintenanceMode, 0, false)
}

// PaymentsEnabled reports whether card charges are allowed platform-wide.
func PaymentsEnabled(db *gorm.DB) bool {
	return boolSetting(db, KeyPaymentsEnabled, 0, true)
}

// DeveloperMode reports whether the platform runs in developer mode.
func DeveloperMode(db *gorm.DB) bool {
	return boolSetting(db, KeyDeveloperModeEnabled, 0, false)
}

// RegistrationOpen reports whether a tenant currently accepts registrations.
func RegistrationOpen(db *gorm.DB, tenantID uint64) bool {
	return boolSetting(db, KeyRegistrationOpen, tenantID, true)
}

// MaxAthletesPerRegistration returns the per-checkout athlete cap for a tenant.
func MaxAthletesPerRegistration(db *gorm.DB, tenantID uint64) int {
	value, err := Resolve(db, KeyMaxAthletesPerRegistration, tenantID)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to default athlete cap")
		return fallbackMaxAthletes
	}

	n, err := cast.ToIntE(value)
	if err != nil || n < 1 {
		return fallbackMaxAthletes
	}

	return n
}

// ActiveStripeMode returns the payment processor mode in effect. Developer
// mode forces SIMULATED regardless of the stored value, so a developer
// environment can never issue live charges.
func ActiveStripeMode(db *gorm.DB) string {
	if DeveloperMode(db) {
		return StripeModeSimulated
	}

	value, err := Resolve(db, KeyStripeMode, 0)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to simulated stripe mode")
		return StripeModeSimulated
	}

	mode := cast.ToString(value)
	switch mode {
	case StripeModeLive, StripeModeTest, StripeModeSimulated:
		return mode
	default:
		return StripeModeSimulated
	}
}

func boolSetting(db *gorm.DB, key string, tenantID uint64, fallback bool) bool {
	value, err := Resolve(db, key, tenantID)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("falling back to default setting value")
		return fallback
	}

	b, err := cast.ToBoolE(value)
	if err != nil {
		return fallback
	}

	return b
}
