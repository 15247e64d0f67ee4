package repository

import (
	"time"

	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

// UserRepository only talks to the users/preferences tables.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	if err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts the user together with default notification preferences.
func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		prefs := entity.NotificationPreferences{
			UserID:                 user.ID,
			UnreadMessages:         true,
			RideStatusUpdates:      true,
			RideSharingSuggestions: true,
		}
		return tx.Create(&prefs).Error
	})
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var user entity.User
	if err := r.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) MarkVerificationSent(userID uint, at time.Time) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", userID).
		Update("last_verification_email_sent", at).Error
}

func (r *UserRepository) FindPreferences(userID uint) (*entity.NotificationPreferences, error) {
	var prefs entity.NotificationPreferences
	if err := r.DB.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *UserRepository) UpdatePreferences(userID uint, updates map[string]any) error {
	return r.DB.Model(&entity.NotificationPreferences{}).
		Where("user_id = ?", userID).Updates(updates).Error
}
