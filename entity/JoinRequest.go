package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "PENDING"
	JoinRequestAccepted JoinRequestStatus = "ACCEPTED"
	JoinRequestDeclined JoinRequestStatus = "DECLINED"
)

// JoinRequest is a rider's request to join a ride. It is also the scope of the
// chat channel between the rider and the driver: one request, one room.
type JoinRequest struct {
	UUID   uuid.UUID         `gorm:"type:uuid;primaryKey" json:"uuid"`
	Status JoinRequestStatus `gorm:"size:10;not null;default:PENDING" json:"status"`

	RideID uint `gorm:"index;not null;constraint:OnDelete:CASCADE" json:"rideId"`
	Ride   Ride `json:"-"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	CreatedAt time.Time `json:"createdAt"`

	Messages []ChatMessage `gorm:"foreignKey:JoinRequestID" json:"-"`
}

func (jr *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if jr.UUID == uuid.Nil {
		jr.UUID = uuid.New()
	}
	return nil
}
