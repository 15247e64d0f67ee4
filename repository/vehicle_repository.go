package repository

import (
	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	DB *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

func (r *VehicleRepository) Create(v *entity.Vehicle) error {
	return r.DB.Create(v).Error
}

func (r *VehicleRepository) ListByDriver(driverID uint) ([]entity.Vehicle, error) {
	var vehicles []entity.Vehicle
	err := r.DB.Where("driver_id = ?", driverID).Find(&vehicles).Error
	return vehicles, err
}

// FindOwned loads a vehicle only if it belongs to the driver.
func (r *VehicleRepository) FindOwned(id, driverID uint) (*entity.Vehicle, error) {
	var v entity.Vehicle
	if err := r.DB.Where("id = ? AND driver_id = ?", id, driverID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}
