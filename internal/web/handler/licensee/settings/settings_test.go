package settings

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/settings"
	websess "github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web/session"
)

const testTenantID = uint64(7)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
		&models.Setting{},
		&models.SettingsAuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	return db
}

// testStorage is a minimal in-memory implementation of fiber.Storage for tests.
type testStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ fiber.Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.data[key]
	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *testStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf

	return nil
}

func (s *testStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *testStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)

	return nil
}

func (s *testStorage) Close() error { return nil }

func newTestUser(t *testing.T, db *gorm.DB, username string, tenantID uint64, permissions ...string) (*models.User, string) {
	t.Helper()

	role := models.Role{Name: username + "_role"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("failed to create role: %v", err)
	}

	for _, permName := range permissions {
		perm := models.Permission{Name: permName, Resource: "test", Action: "test"}
		if err := db.Where("name = ?", permName).FirstOrCreate(&perm).Error; err != nil {
			t.Fatalf("failed to create permission: %v", err)
		}

		mapping := models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}
		if err := db.Omit("Role", "Permission").Create(&mapping).Error; err != nil {
			t.Fatalf("failed to map permission: %v", err)
		}
	}

	user := models.User{
		Username:   username,
		Email:      username + "@example.com",
		Active:     true,
		TenantID:   tenantID,
		RoleID:     role.ID,
		AuthSource: models.AuthSourceLocal,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	sessionID, err := websess.GenerateSessionID()
	if err != nil {
		t.Fatalf("failed to generate session id: %v", err)
	}

	sessData := websess.Data{User: user}
	if err := sessData.Write(sessionID, time.Minute); err != nil {
		t.Fatalf("failed to write session: %v", err)
	}

	return &user, sessionID
}

func newTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	websess.Init(&testStorage{data: make(map[string][]byte)})

	app := fiber.New()
	cfg := &config.Config{Webserver: config.Webserver{URL: "http://localhost", Port: 3000}}

	handler := Service{}
	handler.Init(app, cfg, db, auth.NewService(db))

	return app
}

func performRequest(t *testing.T, app *fiber.App, method, target, sessionID string, body any) *http.Response {
	t.Helper()

	reqBody := bytes.NewBuffer(nil)

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}

		reqBody = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, target, reqBody)
	req.Header.Set("Content-Type", "application/json")

	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: sessionID})
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}

func TestGetListsOnlyOverridableKeys(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	_, sessionID := newTestUser(t, db, "licensee", testTenantID, auth.PermLicenseeSettings)

	resp := performRequest(t, app, http.MethodGet, Path, sessionID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var views []SettingView
	if err := json.NewDecoder(resp.Body).Decode(&views); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(views) == 0 {
		t.Fatal("expected at least one overridable setting")
	}

	for _, view := range views {
		def, ok := settings.Lookup(view.Key)
		if !ok {
			t.Fatalf("unknown key %q in response", view.Key)
		}

		if !def.TenantOverridable {
			t.Fatalf("non-overridable key %q leaked into licensee view", view.Key)
		}
	}
}

func TestHQStaffForbidden(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	// tenant 0 means HQ staff; the licensee portal has nothing for them
	_, sessionID := newTestUser(t, db, "hqstaff", 0, auth.PermLicenseeSettings)

	resp := performRequest(t, app, http.MethodGet, Path, sessionID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.StatusCode)
	}
}

func TestPostWritesOwnTenantOverride(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	user, sessionID := newTestUser(t, db, "licensee", testTenantID, auth.PermLicenseeSettings)

	body := UpdateRequest{Updates: []settings.Update{
		{Key: settings.KeyRegistrationOpen, Value: false},
	}}

	resp := performRequest(t, app, http.MethodPost, Path, sessionID, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out UpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if out.Updated != 1 {
		t.Fatalf("expected 1 applied update, got %d", out.Updated)
	}

	if settings.RegistrationOpen(db, testTenantID) {
		t.Fatal("expected registration closed for the licensee's tenant")
	}

	// other tenants and the global scope keep the default
	if !settings.RegistrationOpen(db, testTenantID+1) {
		t.Fatal("expected registration still open for other tenants")
	}

	var entry models.SettingsAuditLog
	if err := db.First(&entry).Error; err != nil {
		t.Fatalf("failed to load audit entry: %v", err)
	}

	if entry.TenantID == nil || *entry.TenantID != testTenantID {
		t.Fatalf("expected audit entry for tenant %d, got %v", testTenantID, entry.TenantID)
	}

	if entry.Source != models.SourceLicenseeUI {
		t.Fatalf("expected audit source %q, got %q", models.SourceLicenseeUI, entry.Source)
	}

	if entry.ChangedByUserID != user.ID {
		t.Fatalf("expected audit actor %d, got %d", user.ID, entry.ChangedByUserID)
	}
}

func TestPostSkipsNonOverridableKey(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	_, sessionID := newTestUser(t, db, "licensee", testTenantID, auth.PermLicenseeSettings)

	body := UpdateRequest{Updates: []settings.Update{
		{Key: settings.KeyRoyaltyRatePercent, Value: 1.5},
	}}

	resp := performRequest(t, app, http.MethodPost, Path, sessionID, body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var out UpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if out.Updated != 0 {
		t.Fatalf("expected 0 applied updates, got %d", out.Updated)
	}
}

func TestDeleteResetsOverride(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	user, sessionID := newTestUser(t, db, "licensee", testTenantID, auth.PermLicenseeSettings)

	if _, err := settings.UpdateTenant(db, testTenantID, []settings.Update{
		{Key: settings.KeyRegistrationOpen, Value: false},
	}, user.ID, models.SourceLicenseeUI); err != nil {
		t.Fatalf("failed to seed override: %v", err)
	}

	resp := performRequest(t, app, http.MethodDelete, Path+"/"+settings.KeyRegistrationOpen, sessionID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	if !settings.RegistrationOpen(db, testTenantID) {
		t.Fatal("expected registration open again after reset")
	}
}

func TestDeleteUnknownKey(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	_, sessionID := newTestUser(t, db, "licensee", testTenantID, auth.PermLicenseeSettings)

	resp := performRequest(t, app, http.MethodDelete, Path+"/notARealSetting", sessionID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestAuditScopedToOwnTenant(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	user, sessionID := newTestUser(t, db, "licensee", testTenantID, auth.PermLicenseeSettings)

	otherTenant := testTenantID + 1

	if _, err := settings.UpdateTenant(db, testTenantID, []settings.Update{
		{Key: settings.KeyRegistrationOpen, Value: false},
	}, user.ID, models.SourceLicenseeUI); err != nil {
		t.Fatalf("failed to seed own tenant change: %v", err)
	}

	if _, err := settings.UpdateTenant(db, otherTenant, []settings.Update{
		{Key: settings.KeyRegistrationOpen, Value: false},
	}, user.ID, models.SourceLicenseeUI); err != nil {
		t.Fatalf("failed to seed other tenant change: %v", err)
	}

	resp := performRequest(t, app, http.MethodGet, Path+"/audit", sessionID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var entries []models.SettingsAuditLog
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}

	if entries[0].TenantID == nil || *entries[0].TenantID != testTenantID {
		t.Fatalf("expected entry scoped to tenant %d, got %v", testTenantID, entries[0].TenantID)
	}
}
