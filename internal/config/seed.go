package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"

	"impound_manager/internal/models"
)

// SeedAdmin creates the initial admin account when the users table is empty.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD (with dev defaults);
// there is no self-registration path.
func SeedAdmin() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Fatalf("could not count users: %v", err)
	}
	if count > 0 {
		return
	}

	email := getEnv("ADMIN_EMAIL", "admin@impound.local")
	password := getEnv("ADMIN_PASSWORD", "changeme123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("could not hash seed password: %v", err)
	}

	admin := models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatalf("could not seed admin user: %v", err)
	}
	log.Printf("seeded initial admin account %s", email)
}
