package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

func TestBooleanAccessorDefaults(t *testing.T) {
	db := setupTestDB(t)

	assert.False(t, MaintenanceMode(db))
	assert.True(t, PaymentsEnabled(db))
	assert.False(t, DeveloperMode(db))
	assert.True(t, RegistrationOpen(db, testTenantID))
}

func TestBooleanAccessorsFollowStoredValues(t *testing.T) {
	db := setupTestDB(t)

	updated, err := UpdateGlobal(db, []Update{
		{Key: KeyMaintenanceMode, Value: true},
		{Key: KeyPaymentsEnabled, Value: false},
	}, testActorID, models.SourceAdminUI)
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	assert.True(t, MaintenanceMode(db))
	assert.False(t, PaymentsEnabled(db))
}

func TestMaxAthletesPerRegistration(t *testing.T) {
	db := setupTestDB(t)

	// Registry default with no stored rows.
	assert.Equal(t, 5, MaxAthletesPerRegistration(db, testTenantID))

	updated, err := UpdateGlobal(db, []Update{
		{Key: KeyMaxAthletesPerRegistration, Value: float64(8)},
	}, testActorID, models.SourceAdminUI)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	assert.Equal(t, 8, MaxAthletesPerRegistration(db, testTenantID))

	updated, err = UpdateTenant(db, testTenantID, []Update{
		{Key: KeyMaxAthletesPerRegistration, Value: float64(3)},
	}, testActorID, models.SourceAdminUI)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	assert.Equal(t, 3, MaxAthletesPerRegistration(db, testTenantID))
	assert.Equal(t, 8, MaxAthletesPerRegistration(db, testTenantID+1))
}

func TestActiveStripeMode(t *testing.T) {
	db := setupTestDB(t)

	// Registry default.
	assert.Equal(t, StripeModeTest, ActiveStripeMode(db))

	updated, err := UpdateGlobal(db, []Update{
		{Key: KeyStripeMode, Value: StripeModeLive},
	}, testActorID, models.SourceAdminUI)
	require.NoError(t, err)
	require.Equal(t, 1, updated)

	assert.Equal(t, StripeModeLive, ActiveStripeMode(db))
}

func TestDeveloperModeForcesSimulatedStripe(t *testing.T) {
	db := setupTestDB(t)

	updated, err := UpdateGlobal(db, []Update{
		{Key: KeyStripeMode, Value: StripeModeLive},
		{Key: KeyDeveloperModeEnabled, Value: true},
	}, testActorID, models.SourceAdminUI)
	require.NoError(t, err)
	require.Equal(t, 2, updated)

	// Developer mode wins over the stored mode so a sandboxed platform can
	// never reach the live payment backend.
	assert.Equal(t, StripeModeSimulated, ActiveStripeMode(db))

	mode, err := Resolve(db, KeyStripeMode, 0)
	require.NoError(t, err)
	assert.Equal(t, StripeModeLive, mode)
}
