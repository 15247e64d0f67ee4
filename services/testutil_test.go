package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The name is derived
// from the test so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{}, &entity.NotificationPreferences{},
		&entity.Location{}, &entity.Vehicle{},
		&entity.Ride{}, &entity.Step{},
		&entity.JoinRequest{}, &entity.ChatMessage{},
		&entity.Statistics{}, &entity.MonthlyStatistics{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := &entity.User{Email: email, Password: "x", Role: "user"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createVehicle(t *testing.T, db *gorm.DB, driverID uint) *entity.Vehicle {
	t.Helper()
	v := &entity.Vehicle{Name: "Clio", Seats: 4, Color: "red", DriverID: driverID}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create vehicle: %v", err)
	}
	return v
}

func createLocation(t *testing.T, db *gorm.DB, fulltext string, lat, lng float64) *entity.Location {
	t.Helper()
	loc := &entity.Location{Fulltext: fulltext, City: fulltext, Lat: lat, Lng: lng}
	if err := db.Create(loc).Error; err != nil {
		t.Fatalf("create location: %v", err)
	}
	return loc
}

func createRide(t *testing.T, db *gorm.DB, driverID, vehicleID uint) *entity.Ride {
	t.Helper()
	start := createLocation(t, db, fmt.Sprintf("start-%d", time.Now().UnixNano()), 48.8566, 2.3522)
	end := createLocation(t, db, fmt.Sprintf("end-%d", time.Now().UnixNano()), 45.7640, 4.8357)
	ride := &entity.Ride{
		DriverID:      driverID,
		VehicleID:     vehicleID,
		StartDT:       time.Now().Add(24 * time.Hour),
		EndDT:         time.Now().Add(28 * time.Hour),
		DurationSec:   4 * 3600,
		StartLocID:    start.ID,
		EndLocID:      end.ID,
		SeatsOffered:  3,
		PaymentMethod: entity.PaymentCash,
	}
	if err := db.Create(ride).Error; err != nil {
		t.Fatalf("create ride: %v", err)
	}
	return ride
}

func createJoinRequest(t *testing.T, db *gorm.DB, rideID, userID uint) *entity.JoinRequest {
	t.Helper()
	jr := &entity.JoinRequest{RideID: rideID, UserID: userID, Status: entity.JoinRequestPending}
	if err := db.Create(jr).Error; err != nil {
		t.Fatalf("create join request: %v", err)
	}
	return jr
}

func newDraft(depart, arrive string, depLat, depLng, arrLat, arrLng float64) *DraftStep1 {
	return &DraftStep1{
		DepFulltext: depart, DepCity: depart, DepLat: depLat, DepLng: depLng,
		ArrFulltext: arrive, ArrCity: arrive, ArrLat: arrLat, ArrLng: arrLng,
		Geometry:          `{"type":"LineString","coordinates":[[2.3522,48.8566],[4.8357,45.764]]}`,
		DurationHours:     4,
		DepartureDatetime: time.Now().Add(24 * time.Hour),
	}
}

func newRideService(db *gorm.DB) *RideService {
	return NewRideService(db,
		repository.NewRideRepository(db),
		repository.NewLocationRepository(db),
		repository.NewVehicleRepository(db))
}
