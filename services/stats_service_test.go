package services

import (
	"testing"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/repository"

	"gorm.io/gorm"
)

func newStatsService(db *gorm.DB) *StatsService {
	return NewStatsService(
		repository.NewStatsRepository(db),
		repository.NewRideRepository(db))
}

func TestComputeUpsertsTotals(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	createUser(t, db, "rider@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	ride := createRide(t, db, driver.ID, vehicle.ID)
	svc := newStatsService(db)

	// recompute twice; the singleton and the monthly row must not duplicate
	if err := svc.Compute(ride.StartDT); err != nil {
		t.Fatalf("first Compute: %v", err)
	}
	createRide(t, db, driver.ID, vehicle.ID)
	if err := svc.Compute(ride.StartDT); err != nil {
		t.Fatalf("second Compute: %v", err)
	}

	var totalRows, monthlyRows int64
	db.Model(&entity.Statistics{}).Count(&totalRows)
	db.Model(&entity.MonthlyStatistics{}).Count(&monthlyRows)
	if totalRows != 1 {
		t.Errorf("statistics rows = %d, want 1", totalRows)
	}
	if monthlyRows != 1 {
		t.Errorf("monthly rows = %d, want 1", monthlyRows)
	}

	totals, err := svc.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.TotalRides != 2 {
		t.Errorf("TotalRides = %d, want 2", totals.TotalRides)
	}
	if totals.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", totals.TotalUsers)
	}

	var monthly entity.MonthlyStatistics
	if err := db.First(&monthly).Error; err != nil {
		t.Fatalf("load monthly: %v", err)
	}
	if monthly.Month != int(ride.StartDT.Month()) || monthly.Year != ride.StartDT.Year() {
		t.Errorf("monthly key = %d/%d, want %d/%d",
			monthly.Month, monthly.Year, ride.StartDT.Month(), ride.StartDT.Year())
	}
	if monthly.TotalRides != 2 {
		t.Errorf("monthly TotalRides = %d, want 2", monthly.TotalRides)
	}
}
