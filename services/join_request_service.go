package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/repository"

	"gorm.io/gorm"
)

var (
	ErrNotDriver        = errors.New("only the ride driver may change a join request")
	ErrInvalidAction    = errors.New("invalid action")
	ErrOwnRide          = errors.New("cannot request to join your own ride")
	ErrDuplicateRequest = errors.New("a request for this ride already exists")
)

type JoinRequestService struct {
	DB       *gorm.DB
	Repo     *repository.JoinRequestRepository
	RideRepo *repository.RideRepository
}

func NewJoinRequestService(
	db *gorm.DB,
	repo *repository.JoinRequestRepository,
	rideRepo *repository.RideRepository,
) *JoinRequestService {
	return &JoinRequestService{DB: db, Repo: repo, RideRepo: rideRepo}
}

// Create opens a PENDING request from user to ride.
func (s *JoinRequestService) Create(userID, rideID uint) (*entity.JoinRequest, error) {
	ride, err := s.RideRepo.FindByID(rideID)
	if err != nil {
		return nil, err
	}
	if ride.DriverID == userID {
		return nil, ErrOwnRide
	}
	exists, err := s.Repo.ExistsForUserAndRide(userID, rideID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateRequest
	}

	jr := &entity.JoinRequest{
		RideID: rideID,
		UserID: userID,
		Status: entity.JoinRequestPending,
	}
	if err := s.Repo.Create(jr); err != nil {
		return nil, err
	}
	return jr, nil
}

// ListForUser returns the chat index view: requests the user sent and
// requests against rides the user drives.
func (s *JoinRequestService) ListForUser(userID uint) (outgoing, incoming []entity.JoinRequest, err error) {
	outgoing, err = s.Repo.ListOutgoing(userID)
	if err != nil {
		return nil, nil, err
	}
	incoming, err = s.Repo.ListIncoming(userID)
	if err != nil {
		return nil, nil, err
	}
	return outgoing, incoming, nil
}

// Transition applies accept/decline with its ride-membership side effect.
// Only the ride's driver may act. Re-applying an action to an already
// resolved request is a no-op in effect: membership updates use set
// semantics, so a driver changing their mind is safe in either direction.
func (s *JoinRequestService) Transition(id uuid.UUID, action string, actingUserID uint) (*entity.JoinRequest, error) {
	jr, err := s.Repo.FindByUUID(id)
	if err != nil {
		return nil, err
	}
	if jr.Ride.DriverID != actingUserID {
		return nil, ErrNotDriver
	}

	switch action {
	case "accept":
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := s.Repo.UpdateStatus(tx, jr.UUID, entity.JoinRequestAccepted); err != nil {
				return err
			}
			return s.RideRepo.AddRider(tx, jr.RideID, jr.UserID)
		})
		if err != nil {
			return nil, err
		}
		jr.Status = entity.JoinRequestAccepted

	case "decline":
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := s.Repo.UpdateStatus(tx, jr.UUID, entity.JoinRequestDeclined); err != nil {
				return err
			}
			return s.RideRepo.RemoveRider(tx, jr.RideID, jr.UserID)
		})
		if err != nil {
			return nil, err
		}
		jr.Status = entity.JoinRequestDeclined

	default:
		return nil, ErrInvalidAction
	}

	logger.L().Infow("join request transitioned",
		"joinRequest", jr.UUID, "action", action, "by", actingUserID)
	return jr, nil
}
