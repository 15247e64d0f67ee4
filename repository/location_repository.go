package repository

import (
	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

type LocationRepository struct {
	DB *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

// GetOrCreate resolves a location by exact attribute match, creating a row
// only when none matches. Two identical concurrent calls can both insert;
// duplicate rows are tolerated (no unique index on locations).
func (r *LocationRepository) GetOrCreate(tx *gorm.DB, loc *entity.Location) (*entity.Location, error) {
	if tx == nil {
		tx = r.DB
	}
	var found entity.Location
	// map conditions: struct conditions would skip empty street/zipcode/city
	err := tx.Where(map[string]any{
		"fulltext": loc.Fulltext,
		"street":   loc.Street,
		"zipcode":  loc.Zipcode,
		"city":     loc.City,
		"lat":      loc.Lat,
		"lng":      loc.Lng,
	}).First(&found).Error
	if err == nil {
		return &found, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := tx.Create(loc).Error; err != nil {
		return nil, err
	}
	return loc, nil
}

func (r *LocationRepository) FindByID(id uint) (*entity.Location, error) {
	var loc entity.Location
	if err := r.DB.First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}
