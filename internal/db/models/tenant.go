package models

import "time"

// Tenant represents one camp licensee: an isolated organization unit that
// runs its own camps and may carry its own configuration overrides.
type Tenant struct {
	// ID is the unique identifier for the tenant.
	ID uint64 `gorm:"primaryKey"`
	// PublicID is the externally visible UUID for the tenant.
	PublicID string `gorm:"type:varchar(36);uniqueIndex;not null"`
	// Slug is the URL-safe short name used in portal paths.
	Slug string `gorm:"size:60;uniqueIndex;not null"`
	// Name is the licensee's display name.
	Name string `gorm:"size:255;not null"`
	// ContactEmail is the licensee's primary contact address.
	ContactEmail string `gorm:"size:255"`
	// Active indicates whether the tenant's portals accept traffic.
	Active bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the tenant was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the tenant was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted, managed by GORM).
	DeletedAt *time.Time
}

// TableName specifies the database table name for the Tenant model.
func (Tenant) TableName() string {
	return "tenants"
}
