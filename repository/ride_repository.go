package repository

import (
	"fmt"

	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

type RideRepository struct {
	DB *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{DB: db}
}

func (r *RideRepository) Create(tx *gorm.DB, ride *entity.Ride) error {
	return tx.Create(ride).Error
}

func (r *RideRepository) CreateStep(tx *gorm.DB, step *entity.Step) error {
	return tx.Create(step).Error
}

func (r *RideRepository) List(limit int) ([]entity.Ride, error) {
	var rides []entity.Ride
	err := r.DB.
		Preload("StartLoc").
		Preload("EndLoc").
		Order("start_dt ASC").
		Limit(limit).
		Find(&rides).Error
	return rides, err
}

func (r *RideRepository) FindByID(id uint) (*entity.Ride, error) {
	var ride entity.Ride
	err := r.DB.
		Preload("StartLoc").
		Preload("EndLoc").
		Preload("Vehicle").
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("steps.\"order\" ASC") }).
		Preload("Steps.Location").
		First(&ride, id).Error
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

// Delete removes the ride with its steps, join requests and their messages.
func (r *RideRepository) Delete(rideID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var requestIDs []string
		if err := tx.Model(&entity.JoinRequest{}).
			Where("ride_id = ?", rideID).
			Pluck("uuid", &requestIDs).Error; err != nil {
			return err
		}
		if len(requestIDs) > 0 {
			if err := tx.Where("join_request_id IN ?", requestIDs).
				Delete(&entity.ChatMessage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("ride_id = ?", rideID).
				Delete(&entity.JoinRequest{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("ride_id = ?", rideID).Delete(&entity.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM ride_riders WHERE ride_id = ?", rideID).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Ride{}, rideID).Error
	})
}

// IsRider reports membership in the ride's rider set.
func (r *RideRepository) IsRider(rideID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Table("ride_riders").
		Where("ride_id = ? AND user_id = ?", rideID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddRider adds with set semantics: adding a present rider is a no-op.
func (r *RideRepository) AddRider(tx *gorm.DB, rideID, userID uint) error {
	var count int64
	if err := tx.Table("ride_riders").
		Where("ride_id = ? AND user_id = ?", rideID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Exec("INSERT INTO ride_riders (ride_id, user_id) VALUES (?, ?)", rideID, userID).Error
}

// RemoveRider tolerates absence.
func (r *RideRepository) RemoveRider(tx *gorm.DB, rideID, userID uint) error {
	return tx.Exec("DELETE FROM ride_riders WHERE ride_id = ? AND user_id = ?", rideID, userID).Error
}

// CountSharedRides counts rides where one of the two users drives and the
// other is in the rider set.
func (r *RideRepository) CountSharedRides(userA, userB uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Ride{}).
		Joins("JOIN ride_riders rr ON rr.ride_id = rides.id").
		Where("(rides.driver_id = ? AND rr.user_id = ?) OR (rides.driver_id = ? AND rr.user_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	return count, err
}

func (r *RideRepository) CountAll() (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Ride{}).Count(&count).Error
	return count, err
}

func (r *RideRepository) CountInMonth(year int, month int) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Ride{}).
		Where("strftime('%Y', start_dt) = ? AND strftime('%m', start_dt) = ?",
			fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month)).
		Count(&count).Error
	return count, err
}
