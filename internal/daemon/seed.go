package daemon

import (
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/auth"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/config"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/db/models"
	"github.com/estroop3-gif/Empowered-Sports-Camp-sub009/internal/uniuri"
)

// seedPermissions lists every permission the application checks. Seeding is
// idempotent; rows are matched by name.
var seedPermissions = []models.Permission{
	{Name: auth.PermDashboardView, Resource: "dashboard", Action: "view", Description: "View the dashboard"},
	{Name: auth.PermAdminSettings, Resource: "admin", Action: "settings", Description: "Manage platform settings"},
	{Name: auth.PermAdminTenants, Resource: "admin", Action: "tenants", Description: "Manage licensee tenants"},
	{Name: auth.PermAdminAudit, Resource: "admin", Action: "audit", Description: "Read the settings audit trail"},
	{Name: auth.PermAdminUsers, Resource: "admin", Action: "users", Description: "Manage user accounts"},
	{Name: auth.PermAdminRoles, Resource: "admin", Action: "roles", Description: "Manage roles and permissions"},
	{Name: auth.PermLicenseeSettings, Resource: "licensee", Action: "settings", Description: "Manage own tenant settings"},
}

// seedRoles maps the built-in roles to their permissions. hq_admin gets every
// permission; tenant-scoped roles see the dashboard and, for licensees and
// directors, their own tenant's settings.
var seedRoles = map[string][]string{
	"hq_admin": {
		auth.PermDashboardView,
		auth.PermAdminSettings,
		auth.PermAdminTenants,
		auth.PermAdminAudit,
		auth.PermAdminUsers,
		auth.PermAdminRoles,
	},
	"licensee": {
		auth.PermDashboardView,
		auth.PermLicenseeSettings,
	},
	"director": {
		auth.PermDashboardView,
		auth.PermLicenseeSettings,
	},
	"coach": {
		auth.PermDashboardView,
	},
}

// seed creates the built-in roles and permissions and, on an empty user
// table, an initial admin account with a random password that is logged once.
func seed(_ *config.Config, db *gorm.DB) {
	permissionIDs := make(map[string]uint, len(seedPermissions))

	for _, perm := range seedPermissions {
		row := perm

		if err := db.Where("name = ?", perm.Name).
			Attrs(perm).
			FirstOrCreate(&row).Error; err != nil {
			log.Error().Err(err).Str("permission", perm.Name).Msg("failed to seed permission")
			continue
		}

		permissionIDs[perm.Name] = row.ID
	}

	for roleName, permissions := range seedRoles {
		role := models.Role{
			Name:        roleName,
			Description: "Built-in " + strings.ReplaceAll(roleName, "_", " ") + " role",
			IsSystem:    true,
		}

		if err := db.Where("name = ?", roleName).
			Attrs(role).
			FirstOrCreate(&role).Error; err != nil {
			log.Error().Err(err).Str("role", roleName).Msg("failed to seed role")
			continue
		}

		for _, permName := range permissions {
			permID, ok := permissionIDs[permName]
			if !ok {
				continue
			}

			mapping := models.RolePermission{RoleID: role.ID, PermissionID: permID}
			if err := db.Clauses(clause.OnConflict{DoNothing: true}).
				Omit("Role", "Permission").
				Create(&mapping).Error; err != nil {
				log.Error().Err(err).Str("role", roleName).Str("permission", permName).
					Msg("failed to seed role permission")
			}
		}
	}

	// Seed the initial admin account only on an empty user table
	var count int64

	db.Model(&models.User{}).Count(&count)
	if count != 0 {
		return
	}

	var adminRole models.Role
	if err := db.Where("name = ?", "hq_admin").First(&adminRole).Error; err != nil {
		log.Error().Err(err).Msg("failed to load hq_admin role for initial admin user")
		return
	}

	password := uniuri.NewLen(16)

	user := models.User{
		Username:   "admin",
		Email:      "admin@localhost",
		Password:   models.HashPassword(password),
		Active:     true,
		RoleID:     adminRole.ID,
		AuthSource: models.AuthSourceLocal,
	}

	if err := db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to seed initial admin user")
		return
	}

	// shown once; change it after first login
	log.Info().Str("username", user.Username).Str("password", password).
		Msg("created initial admin user")
}
