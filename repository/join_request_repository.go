package repository

import (
	"github.com/google/uuid"
	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

type JoinRequestRepository struct {
	DB *gorm.DB
}

func NewJoinRequestRepository(db *gorm.DB) *JoinRequestRepository {
	return &JoinRequestRepository{DB: db}
}

func (r *JoinRequestRepository) Create(jr *entity.JoinRequest) error {
	return r.DB.Create(jr).Error
}

func (r *JoinRequestRepository) FindByUUID(id uuid.UUID) (*entity.JoinRequest, error) {
	var jr entity.JoinRequest
	if err := r.DB.Preload("Ride").Preload("User").First(&jr, "uuid = ?", id).Error; err != nil {
		return nil, err
	}
	return &jr, nil
}

// ExistsForUserAndRide stops duplicate open requests from the same user.
func (r *JoinRequestRepository) ExistsForUserAndRide(userID, rideID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.JoinRequest{}).
		Where("user_id = ? AND ride_id = ?", userID, rideID).
		Count(&count).Error
	return count > 0, err
}

// ListOutgoing returns requests the user sent, newest first.
func (r *JoinRequestRepository) ListOutgoing(userID uint) ([]entity.JoinRequest, error) {
	var requests []entity.JoinRequest
	err := r.DB.
		Preload("Ride").
		Preload("Ride.StartLoc").
		Preload("Ride.EndLoc").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListIncoming returns requests against rides the user drives, newest first.
func (r *JoinRequestRepository) ListIncoming(driverID uint) ([]entity.JoinRequest, error) {
	var requests []entity.JoinRequest
	err := r.DB.
		Preload("Ride").
		Preload("Ride.StartLoc").
		Preload("Ride.EndLoc").
		Preload("User").
		Where("ride_id IN (?)",
			r.DB.Model(&entity.Ride{}).Select("id").Where("driver_id = ?", driverID)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *JoinRequestRepository) UpdateStatus(tx *gorm.DB, id uuid.UUID, status entity.JoinRequestStatus) error {
	return tx.Model(&entity.JoinRequest{}).
		Where("uuid = ?", id).
		Update("status", status).Error
}
