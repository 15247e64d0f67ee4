package entity

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	Name  string `gorm:"size:50;not null" json:"name"`
	Seats uint   `gorm:"not null" json:"seats"` // >= 1, enforced at the DTO layer
	Color string `gorm:"size:50" json:"color"`

	DriverID uint `gorm:"index;not null" json:"driverId"`
	Driver   User `json:"-"`
}
