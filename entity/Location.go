package entity

import (
	"errors"

	"gorm.io/gorm"
)

var ErrCoordinatesOutOfRange = errors.New("coordinates out of range")

// Location is a geocoded place. Rows are immutable once created and are looked
// up by exact attribute match (see repository.LocationRepository.GetOrCreate).
// There is deliberately no unique index: two users finalizing the same address
// at the same instant may create duplicate rows, which we tolerate.
type Location struct {
	gorm.Model
	Fulltext string  `gorm:"size:100;not null" json:"fulltext"`
	Street   string  `gorm:"size:200" json:"street"`
	Zipcode  string  `gorm:"size:10" json:"zipcode"`
	City     string  `gorm:"size:100" json:"city"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

func (l *Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 || l.Lng < -180 || l.Lng > 180 {
		return ErrCoordinatesOutOfRange
	}
	return nil
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	return l.Validate()
}

// SameAs compares by value: same label and same coordinates.
func (l *Location) SameAs(other *Location) bool {
	if other == nil {
		return false
	}
	return l.Fulltext == other.Fulltext && l.Lat == other.Lat && l.Lng == other.Lng
}
