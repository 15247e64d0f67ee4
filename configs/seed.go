package configs

import (
	"log"

	"github.com/insaroule/insaroule/entity"
	"golang.org/x/crypto/bcrypt"
)

// SeedModerator creates the initial moderator account once.
func SeedModerator() error {
	db := DB()
	email := getEnv("MOD_EMAIL", "")
	pass := getEnv("MOD_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding moderator: missing MOD_EMAIL/MOD_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("moderator already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	mod := entity.User{
		Email:         email,
		Password:      string(hash),
		FirstName:     "Mod",
		LastName:      "Seed",
		Role:          "moderator",
		EmailVerified: true,
	}
	if err := db.Create(&mod).Error; err != nil {
		return err
	}
	return db.Create(&entity.NotificationPreferences{
		UserID:                 mod.ID,
		UnreadMessages:         true,
		RideStatusUpdates:      true,
		RideSharingSuggestions: true,
	}).Error
}
