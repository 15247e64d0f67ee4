package entity

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	PaymentCash   = "CASH"
	PaymentOnline = "ONLINE"
)

// ErrIdenticalLocations rejects zero-length rides (start == end by value).
var ErrIdenticalLocations = errors.New("start and end location are identical")

type Ride struct {
	gorm.Model
	DriverID uint `gorm:"index;not null" json:"driverId"`
	Driver   User `json:"-"`

	VehicleID uint    `json:"vehicleId"`
	Vehicle   Vehicle `json:"-"`

	StartDT     time.Time `gorm:"not null" json:"startDt"`
	EndDT       time.Time `gorm:"not null" json:"endDt"` // StartDT + duration, fixed at creation
	DurationSec int64     `json:"durationSec"`

	// Route path as a GeoJSON LineString, opaque to the backend.
	Geometry string `gorm:"type:text" json:"geometry"`

	StartLocID uint     `json:"startLocId"`
	StartLoc   Location `gorm:"foreignKey:StartLocID" json:"startLoc"`
	EndLocID   uint     `json:"endLocId"`
	EndLoc     Location `gorm:"foreignKey:EndLocID" json:"endLoc"`

	Comment       string `gorm:"type:text" json:"comment"`
	SeatsOffered  uint   `json:"seatsOffered"`
	PricePerSeat  int64  `json:"pricePerSeat"` // cents
	PaymentMethod string `gorm:"size:10" json:"paymentMethod"`

	Steps []Step `gorm:"foreignKey:RideID" json:"-"`

	// Accepted riders; membership follows join-request transitions.
	Riders []User `gorm:"many2many:ride_riders" json:"-"`

	JoinRequests []JoinRequest `gorm:"foreignKey:RideID" json:"-"`
}

func (r *Ride) Duration() time.Duration {
	return time.Duration(r.DurationSec) * time.Second
}

// Validate is the entity-level half of the identical-location invariant. The
// DTO layer checks the same thing on structured input; this runs again before
// commit so no code path can create a degenerate ride.
func (r *Ride) Validate() error {
	if r.StartLoc.SameAs(&r.EndLoc) {
		return ErrIdenticalLocations
	}
	return nil
}

// BeforeCreate loads both endpoints when only their IDs are set, then
// re-validates.
func (r *Ride) BeforeCreate(tx *gorm.DB) error {
	if r.StartLoc.ID == 0 && r.StartLocID != 0 {
		if err := tx.First(&r.StartLoc, r.StartLocID).Error; err != nil {
			return err
		}
	}
	if r.EndLoc.ID == 0 && r.EndLocID != 0 {
		if err := tx.First(&r.EndLoc, r.EndLocID).Error; err != nil {
			return err
		}
	}
	return r.Validate()
}
