package entity

import (
	"gorm.io/gorm"
)

// NotificationPreferences is created together with its user; one row per user.
type NotificationPreferences struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `json:"-"`

	UnreadMessages         bool `gorm:"not null;default:true" json:"unreadMessages"`
	RideStatusUpdates      bool `gorm:"not null;default:true" json:"rideStatusUpdates"`
	RideSharingSuggestions bool `gorm:"not null;default:true" json:"rideSharingSuggestions"`
}
