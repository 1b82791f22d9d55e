package setting

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Setting{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedSettings inserts test data into the database.
func seedSettings(t *testing.T, db *gorm.DB, settings []models.Setting) {
	t.Helper()
	for _, setting := range settings {
		err := db.Create(&setting).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGetGlobal(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "siteName",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:    "tenant row does not satisfy global read",
			dbParam: db,
			key:     "siteName",
			seedData: []models.Setting{
				{Scope: models.ScopeTenant, TenantID: 7, Key: "siteName", Value: []byte(`"Tenant Camp"`), ValueType: models.ValueTypeString},
			},
			expectedError: ErrSettingNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			key:     "siteName",
			seedData: []models.Setting{
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "siteName", Value: []byte(`"Empowered Sports Camp"`), ValueType: models.ValueTypeString},
			},
			expectedValue: []byte(`"Empowered Sports Camp"`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := GetGlobal(tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, setting)
				assert.Equal(t, models.ScopeGlobal, setting.Scope)
				assert.Equal(t, tc.key, setting.Key)
				assert.Equal(t, tc.expectedValue, setting.Value)
			}
		})
	}
}

func TestGetTenant(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		tenantID      uint64
		key           string
		seedData      []models.Setting
		expectedError error
		expectedValue []byte
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			tenantID:      7,
			key:           "siteName",
			expectedError: ErrDBNil,
		},
		{
			name:          "zero tenant id",
			dbParam:       db,
			tenantID:      0,
			key:           "siteName",
			expectedError: ErrTenantIDZero,
		},
		{
			name:          "setting not found",
			dbParam:       db,
			tenantID:      7,
			key:           "nonexistent",
			expectedError: ErrSettingNotFound,
		},
		{
			name:     "other tenant's row does not leak",
			dbParam:  db,
			tenantID: 7,
			key:      "siteName",
			seedData: []models.Setting{
				{Scope: models.ScopeTenant, TenantID: 8, Key: "siteName", Value: []byte(`"Other Camp"`), ValueType: models.ValueTypeString},
			},
			expectedError: ErrSettingNotFound,
		},
		{
			name:     "successful get",
			dbParam:  db,
			tenantID: 7,
			key:      "siteName",
			seedData: []models.Setting{
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "siteName", Value: []byte(`"HQ"`), ValueType: models.ValueTypeString},
				{Scope: models.ScopeTenant, TenantID: 7, Key: "siteName", Value: []byte(`"Springfield Camp"`), ValueType: models.ValueTypeString},
			},
			expectedValue: []byte(`"Springfield Camp"`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := GetTenant(tc.dbParam, tc.tenantID, tc.key)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, setting)
				assert.Equal(t, models.ScopeTenant, setting.Scope)
				assert.Equal(t, tc.tenantID, setting.TenantID)
				assert.Equal(t, tc.expectedValue, setting.Value)
			}
		})
	}
}

func TestListGlobal(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		seedData      []models.Setting
		expectedError error
		expectedCount int
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			expectedError: ErrDBNil,
		},
		{
			name:          "empty database",
			dbParam:       db,
			expectedCount: 0,
		},
		{
			name:    "only global rows returned",
			dbParam: db,
			seedData: []models.Setting{
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "siteName", Value: []byte(`"HQ"`), ValueType: models.ValueTypeString},
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "maintenanceMode", Value: []byte(`true`), ValueType: models.ValueTypeBoolean},
				{Scope: models.ScopeTenant, TenantID: 7, Key: "siteName", Value: []byte(`"Camp"`), ValueType: models.ValueTypeString},
			},
			expectedCount: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			settings, err := ListGlobal(tc.dbParam)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, settings)
			} else {
				require.NoError(t, err)
				assert.Len(t, settings, tc.expectedCount)
				for _, setting := range settings {
					assert.Equal(t, models.ScopeGlobal, setting.Scope)
				}
			}
		})
	}
}

func TestListTenant(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		tenantID      uint64
		seedData      []models.Setting
		expectedError error
		expectedCount int
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			tenantID:      7,
			expectedError: ErrDBNil,
		},
		{
			name:          "zero tenant id",
			dbParam:       db,
			tenantID:      0,
			expectedError: ErrTenantIDZero,
		},
		{
			name:     "only the tenant's rows returned",
			dbParam:  db,
			tenantID: 7,
			seedData: []models.Setting{
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "siteName", Value: []byte(`"HQ"`), ValueType: models.ValueTypeString},
				{Scope: models.ScopeTenant, TenantID: 7, Key: "siteName", Value: []byte(`"Camp"`), ValueType: models.ValueTypeString},
				{Scope: models.ScopeTenant, TenantID: 7, Key: "waiverRequired", Value: []byte(`false`), ValueType: models.ValueTypeBoolean},
				{Scope: models.ScopeTenant, TenantID: 8, Key: "siteName", Value: []byte(`"Other"`), ValueType: models.ValueTypeString},
			},
			expectedCount: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			settings, err := ListTenant(tc.dbParam, tc.tenantID)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, settings)
			} else {
				require.NoError(t, err)
				assert.Len(t, settings, tc.expectedCount)
				for _, setting := range settings {
					assert.Equal(t, tc.tenantID, setting.TenantID)
				}
			}
		})
	}
}

func TestUpsertGlobal(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		value         []byte
		seedData      []models.Setting
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			key:           "siteName",
			value:         []byte(`"x"`),
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			key:           "",
			value:         []byte(`"x"`),
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:    "creates new row",
			dbParam: db,
			key:     "siteName",
			value:   []byte(`"Empowered Sports Camp"`),
		},
		{
			name:    "updates existing row in place",
			dbParam: db,
			key:     "siteName",
			value:   []byte(`"Renamed"`),
			seedData: []models.Setting{
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "siteName", Value: []byte(`"Old"`), ValueType: models.ValueTypeString},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			setting, err := UpsertGlobal(tc.dbParam, tc.key, tc.value, models.ValueTypeString, "", 1)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, setting)
			} else {
				require.NoError(t, err)
				require.NotNil(t, setting)
				assert.Equal(t, tc.value, setting.Value)
				assert.NotZero(t, setting.ID)

				// Upsert must never grow a second row for the same key.
				var count int64
				tc.dbParam.Model(&models.Setting{}).
					Where("scope = ? AND setting_key = ?", models.ScopeGlobal, tc.key).
					Count(&count)
				assert.EqualValues(t, 1, count)
			}
		})
	}
}

func TestUpsertTenant(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpsertTenant(db, 0, "siteName", []byte(`"x"`), models.ValueTypeString, "", 1)
	require.ErrorIs(t, err, ErrTenantIDZero)

	created, err := UpsertTenant(db, 7, "siteName", []byte(`"Camp"`), models.ValueTypeString, "", 1)
	require.NoError(t, err)
	assert.Equal(t, models.ScopeTenant, created.Scope)
	assert.EqualValues(t, 7, created.TenantID)

	// Same key for a second tenant is a distinct row.
	_, err = UpsertTenant(db, 8, "siteName", []byte(`"Other"`), models.ValueTypeString, "", 1)
	require.NoError(t, err)

	updated, err := UpsertTenant(db, 7, "siteName", []byte(`"Renamed"`), models.ValueTypeString, "", 2)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []byte(`"Renamed"`), updated.Value)

	var count int64
	db.Model(&models.Setting{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestDeleteTenant(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		tenantID      uint64
		key           string
		seedData      []models.Setting
		expectedError error
		expectDeleted bool
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			tenantID:      7,
			key:           "siteName",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty key",
			dbParam:       db,
			tenantID:      7,
			key:           "",
			expectedError: ErrSettingKeyEmpty,
		},
		{
			name:          "zero tenant id",
			dbParam:       db,
			tenantID:      0,
			key:           "siteName",
			expectedError: ErrTenantIDZero,
		},
		{
			name:          "no row reports false",
			dbParam:       db,
			tenantID:      7,
			key:           "siteName",
			expectDeleted: false,
		},
		{
			name:     "global row is not touched",
			dbParam:  db,
			tenantID: 7,
			key:      "siteName",
			seedData: []models.Setting{
				{Scope: models.ScopeGlobal, TenantID: 0, Key: "siteName", Value: []byte(`"HQ"`), ValueType: models.ValueTypeString},
			},
			expectDeleted: false,
		},
		{
			name:     "successful delete",
			dbParam:  db,
			tenantID: 7,
			key:      "siteName",
			seedData: []models.Setting{
				{Scope: models.ScopeTenant, TenantID: 7, Key: "siteName", Value: []byte(`"Camp"`), ValueType: models.ValueTypeString},
			},
			expectDeleted: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM settings")
			}

			if tc.seedData != nil {
				seedSettings(t, tc.dbParam, tc.seedData)
			}

			deleted, err := DeleteTenant(tc.dbParam, tc.tenantID, tc.key)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectDeleted, deleted)

				var count int64
				tc.dbParam.Model(&models.Setting{}).
					Where("scope = ? AND tenant_id = ? AND setting_key = ?", models.ScopeTenant, tc.tenantID, tc.key).
					Count(&count)
				assert.Zero(t, count)
			}
		})
	}
}
