package tenant

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	tenantctrl "github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/controller/tenant"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
	websess "github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/web/session"
)

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
		&models.Tenant{},
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

func newAdminSession(t *testing.T, db *gorm.DB) string {
	t.Helper()

	role := models.Role{Name: "hq_admin"}
	if err := db.Create(&role).Error; err != nil {
		t.Fatalf("failed to create role: %v", err)
	}

	perm := models.Permission{Name: auth.PermAdminTenants, Resource: "admin", Action: "tenants"}
	if err := db.Create(&perm).Error; err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}

	mapping := models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}
	if err := db.Omit("Role", "Permission").Create(&mapping).Error; err != nil {
		t.Fatalf("failed to map permission: %v", err)
	}

	user := models.User{
		Username:   "admin",
		Email:      "admin@example.com",
		Active:     true,
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

	return sessionID
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

func TestListRequiresSession(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)

	resp := performRequest(t, app, http.MethodGet, Path, "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
}

func TestCreateAndList(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	sessionID := newAdminSession(t, db)

	body := CreateRequest{Slug: "austin-tx", Name: "Austin, TX", ContactEmail: "austin@example.com"}

	resp := performRequest(t, app, http.MethodPost, Path, sessionID, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var created models.Tenant
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if created.ID == 0 || created.Slug != "austin-tx" || !created.Active {
		t.Fatalf("unexpected created tenant: %+v", created)
	}

	resp = performRequest(t, app, http.MethodGet, Path, sessionID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var tenants []models.Tenant
	if err := json.NewDecoder(resp.Body).Decode(&tenants); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(tenants) != 1 || tenants[0].ID != created.ID {
		t.Fatalf("expected the created tenant in the list, got %+v", tenants)
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	sessionID := newAdminSession(t, db)

	if _, err := tenantctrl.Create(db, "austin-tx", "Austin, TX", ""); err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}

	body := CreateRequest{Slug: "austin-tx", Name: "Austin Again"}

	resp := performRequest(t, app, http.MethodPost, Path, sessionID, body)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}
}

func TestCreateMissingFields(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	sessionID := newAdminSession(t, db)

	resp := performRequest(t, app, http.MethodPost, Path, sessionID, CreateRequest{Slug: "no-name"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestActivateDeactivate(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	sessionID := newAdminSession(t, db)

	row, err := tenantctrl.Create(db, "austin-tx", "Austin, TX", "")
	if err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}

	target := Path + "/" + strconv.FormatUint(row.ID, 10) + "/active"

	resp := performRequest(t, app, http.MethodPut, target, sessionID, ActiveRequest{Active: false})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	updated, err := tenantctrl.GetByID(db, row.ID)
	if err != nil {
		t.Fatalf("failed to reload tenant: %v", err)
	}

	if updated.Active {
		t.Fatal("expected tenant to be deactivated")
	}
}

func TestActivateUnknownTenant(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	sessionID := newAdminSession(t, db)

	resp := performRequest(t, app, http.MethodPut, Path+"/999/active", sessionID, ActiveRequest{Active: true})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp(t, db)
	sessionID := newAdminSession(t, db)

	row, err := tenantctrl.Create(db, "austin-tx", "Austin, TX", "")
	if err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}

	target := Path + "/" + strconv.FormatUint(row.ID, 10)

	resp := performRequest(t, app, http.MethodDelete, target, sessionID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.StatusCode)
	}

	if _, err := tenantctrl.GetByID(db, row.ID); err == nil {
		t.Fatal("expected tenant to be gone after delete")
	}
}
