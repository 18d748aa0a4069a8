package config

import (
	"catalog-backend/models"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedAdminEmail = "admin@admin.com"

// SeedSuperAdmin creates the initial SUPERADMIN account if none exists.
// The password comes from SEED_ADMIN_PASSWORD so the default never ships.
func SeedSuperAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("role = ?", models.RoleSuperAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "Admin@123"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName: "Super",
		LastName:  "Admin",
		Email:     seedAdminEmail,
		Password:  string(hashedPassword),
		Role:      models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Super admin seeded: %s (ID: %d)", admin.Email, admin.ID)
	return nil
}
