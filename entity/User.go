package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `gorm:"not null;default:user" json:"role"`

	EmailVerified             bool       `json:"emailVerified"`
	LastVerificationEmailSent *time.Time `json:"-"`

	// Relations, preloaded only when needed.
	Vehicles      []Vehicle     `gorm:"foreignKey:DriverID" json:"-"`
	RidesAsDriver []Ride        `gorm:"foreignKey:DriverID" json:"-"`
	JoinRequests  []JoinRequest `gorm:"foreignKey:UserID" json:"-"`
	MessagesSent  []ChatMessage `gorm:"foreignKey:SenderID" json:"-"`

	NotificationPreferences *NotificationPreferences `gorm:"foreignKey:UserID" json:"-"`
}

// HasVerifyCooldown reports whether a verification email was sent less than
// window ago. Users inside the window may not request another one.
func (u *User) HasVerifyCooldown(window time.Duration) bool {
	if u.LastVerificationEmailSent == nil {
		return false
	}
	return time.Since(*u.LastVerificationEmailSent) < window
}
