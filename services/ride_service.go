package services

import (
	"errors"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/repository"

	"gorm.io/gorm"
)

var (
	ErrVehicleNotOwned = errors.New("vehicle does not belong to driver")
	ErrNotRideDriver   = errors.New("only the driver may do this")
)

type RideService struct {
	DB          *gorm.DB
	Repo        *repository.RideRepository
	LocRepo     *repository.LocationRepository
	VehicleRepo *repository.VehicleRepository
}

func NewRideService(
	db *gorm.DB,
	repo *repository.RideRepository,
	locRepo *repository.LocationRepository,
	vehicleRepo *repository.VehicleRepository,
) *RideService {
	return &RideService{DB: db, Repo: repo, LocRepo: locRepo, VehicleRepo: vehicleRepo}
}

// Step2Data is the validated payload of the final creation step.
type Step2Data struct {
	VehicleID     uint
	SeatsOffered  uint
	PricePerSeat  int64
	PaymentMethod string
	Comment       string
}

// Finalize materializes the accumulated draft as one logical unit: resolve or
// create all locations, build the ride and its ordered steps, attach the
// driver. Everything runs in a single transaction so a failing attempt
// creates nothing.
func (s *RideService) Finalize(driverID uint, step1 *DraftStep1, step2 *Step2Data) (*entity.Ride, error) {
	if _, err := s.VehicleRepo.FindOwned(step2.VehicleID, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotOwned
		}
		return nil, err
	}

	var ride *entity.Ride
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		departure, err := s.LocRepo.GetOrCreate(tx, &entity.Location{
			Fulltext: step1.DepFulltext,
			Street:   step1.DepStreet,
			Zipcode:  step1.DepZipcode,
			City:     step1.DepCity,
			Lat:      step1.DepLat,
			Lng:      step1.DepLng,
		})
		if err != nil {
			return err
		}
		arrival, err := s.LocRepo.GetOrCreate(tx, &entity.Location{
			Fulltext: step1.ArrFulltext,
			Street:   step1.ArrStreet,
			Zipcode:  step1.ArrZipcode,
			City:     step1.ArrCity,
			Lat:      step1.ArrLat,
			Lng:      step1.ArrLng,
		})
		if err != nil {
			return err
		}

		start := step1.DepartureDatetime
		duration := step1.Duration()

		r := &entity.Ride{
			DriverID:      driverID,
			VehicleID:     step2.VehicleID,
			StartDT:       start,
			EndDT:         start.Add(duration),
			DurationSec:   int64(duration.Seconds()),
			Geometry:      step1.Geometry,
			StartLocID:    departure.ID,
			StartLoc:      *departure,
			EndLocID:      arrival.ID,
			EndLoc:        *arrival,
			Comment:       step2.Comment,
			SeatsOffered:  step2.SeatsOffered,
			PricePerSeat:  step2.PricePerSeat,
			PaymentMethod: step2.PaymentMethod,
		}

		// entity-level half of the identical-location invariant; the
		// BeforeCreate hook repeats it as the last line of defense
		if err := r.Validate(); err != nil {
			return err
		}
		if err := s.Repo.Create(tx, r); err != nil {
			return err
		}

		for i, stop := range step1.Stopovers {
			loc, err := s.LocRepo.GetOrCreate(tx, &entity.Location{
				Fulltext: stop.Fulltext,
				Street:   stop.Street,
				Zipcode:  stop.Zipcode,
				City:     stop.City,
				Lat:      stop.Lat,
				Lng:      stop.Lng,
			})
			if err != nil {
				return err
			}
			step := &entity.Step{
				Name:       stop.Name,
				Order:      uint(i + 1),
				LocationID: loc.ID,
				RideID:     r.ID,
			}
			if err := s.Repo.CreateStep(tx, step); err != nil {
				return err
			}
		}

		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L().Infow("ride created", "rideId", ride.ID, "driverId", driverID)
	return ride, nil
}

func (s *RideService) List(limit int) ([]entity.Ride, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Repo.List(limit)
}

func (s *RideService) Detail(rideID uint) (*entity.Ride, error) {
	return s.Repo.FindByID(rideID)
}

// Delete is driver-only and cascades to steps, join requests and messages.
func (s *RideService) Delete(rideID, actingUserID uint) error {
	ride, err := s.Repo.FindByID(rideID)
	if err != nil {
		return err
	}
	if ride.DriverID != actingUserID {
		return ErrNotRideDriver
	}
	return s.Repo.Delete(rideID)
}
