package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is append-only: messages are never edited, only hidden by a
// moderator. Hidden messages stay in the table but are excluded from history
// reads.
type ChatMessage struct {
	gorm.Model
	Content string `gorm:"type:text;not null" json:"content"`

	SenderID uint `gorm:"index;not null" json:"senderId"`
	Sender   User `json:"-"`

	JoinRequestID uuid.UUID   `gorm:"type:uuid;index;not null;constraint:OnDelete:CASCADE" json:"joinRequestId"`
	JoinRequest   JoinRequest `json:"-"`

	// Server receive time, stamped before persisting.
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`

	Hidden bool `gorm:"not null;default:false" json:"hidden"`
}
