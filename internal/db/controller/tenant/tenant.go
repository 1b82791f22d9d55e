// Package tenant provides CRUD operations for managing camp licensees.
package tenant

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
)

const (
	slugQueryPattern = "slug = ?"
)

var (
	// ErrTenantNotFound is returned when a tenant is not found.
	ErrTenantNotFound = errors.New("tenant not found")
	// ErrTenantSlugEmpty is returned when attempting to create a tenant with an empty slug.
	ErrTenantSlugEmpty = errors.New("tenant slug cannot be empty")
	// ErrTenantNameEmpty is returned when attempting to create a tenant with an empty name.
	ErrTenantNameEmpty = errors.New("tenant name cannot be empty")
	// ErrTenantAlreadyExists is returned when a tenant with the same slug already exists.
	ErrTenantAlreadyExists = errors.New("tenant already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a tenant by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Tenant, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tenant models.Tenant
	result := db.First(&tenant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, result.Error
	}

	return &tenant, nil
}

// GetBySlug retrieves a tenant by its slug.
func GetBySlug(db *gorm.DB, slug string) (*models.Tenant, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if slug == "" {
		return nil, ErrTenantSlugEmpty
	}

	var tenant models.Tenant
	result := db.Where(slugQueryPattern, slug).First(&tenant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, result.Error
	}

	return &tenant, nil
}

// GetAll retrieves all tenants.
func GetAll(db *gorm.DB) ([]models.Tenant, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tenants []models.Tenant
	result := db.Order("slug").Find(&tenants)
	if result.Error != nil {
		return nil, result.Error
	}

	return tenants, nil
}

// Create creates a new tenant with a generated public UUID.
func Create(db *gorm.DB, slug, name, contactEmail string) (*models.Tenant, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if slug == "" {
		return nil, ErrTenantSlugEmpty
	}
	if name == "" {
		return nil, ErrTenantNameEmpty
	}

	var existing models.Tenant
	result := db.Where(slugQueryPattern, slug).First(&existing)
	if result.Error == nil {
		return nil, ErrTenantAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	tenant := &models.Tenant{
		PublicID:     uuid.NewString(),
		Slug:         slug,
		Name:         name,
		ContactEmail: contactEmail,
		Active:       true,
	}

	result = db.Create(tenant)
	if result.Error != nil {
		return nil, result.Error
	}

	return tenant, nil
}

// SetActive activates or deactivates a tenant.
func SetActive(db *gorm.DB, id uint64, active bool) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Tenant{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}

// Delete removes a tenant by ID. Its setting overrides are left in place;
// resolution for a removed tenant simply stops being requested.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Tenant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTenantNotFound
	}

	return nil
}
