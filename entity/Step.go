package entity

import (
	"gorm.io/gorm"
)

// Step is an ordered stopover of a ride. Steps only exist as part of a ride
// and are removed together with it.
type Step struct {
	gorm.Model
	Name  string `gorm:"size:50;not null" json:"name"`
	Order uint   `gorm:"not null" json:"order"` // 1-based position within the ride

	LocationID uint     `json:"locationId"`
	Location   Location `json:"location"`

	RideID uint `gorm:"index;constraint:OnDelete:CASCADE" json:"rideId"`
	Ride   Ride `json:"-"`
}
