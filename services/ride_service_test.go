package services

import (
	"errors"
	"testing"
	"time"

	"github.com/insaroule/insaroule/entity"
)

func TestFinalizeCreatesRideWithSteps(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	svc := newRideService(db)

	draft := newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357)
	draft.Stopovers = []DraftStopover{
		{Name: "Dijon", Fulltext: "Dijon", City: "Dijon", Lat: 47.322, Lng: 5.041},
		{Name: "Macon", Fulltext: "Macon", City: "Macon", Lat: 46.306, Lng: 4.828},
	}

	ride, err := svc.Finalize(driver.ID, draft, &Step2Data{
		VehicleID:     vehicle.ID,
		SeatsOffered:  3,
		PricePerSeat:  1500,
		PaymentMethod: entity.PaymentCash,
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	wantEnd := draft.DepartureDatetime.Add(4 * time.Hour)
	if !ride.EndDT.Equal(wantEnd) {
		t.Errorf("EndDT = %v, want %v", ride.EndDT, wantEnd)
	}
	if ride.DurationSec != 4*3600 {
		t.Errorf("DurationSec = %d, want %d", ride.DurationSec, 4*3600)
	}

	loaded, err := svc.Detail(ride.ID)
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if loaded.StartLoc.Fulltext != "Paris" || loaded.EndLoc.Fulltext != "Lyon" {
		t.Errorf("endpoints = %q -> %q", loaded.StartLoc.Fulltext, loaded.EndLoc.Fulltext)
	}
	if len(loaded.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(loaded.Steps))
	}
	if loaded.Steps[0].Name != "Dijon" || loaded.Steps[0].Order != 1 {
		t.Errorf("first step = %q order %d", loaded.Steps[0].Name, loaded.Steps[0].Order)
	}
	if loaded.Steps[1].Name != "Macon" || loaded.Steps[1].Order != 2 {
		t.Errorf("second step = %q order %d", loaded.Steps[1].Name, loaded.Steps[1].Order)
	}
}

func TestFinalizeRejectsIdenticalLocations(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	svc := newRideService(db)

	draft := newDraft("Paris", "Paris", 48.8566, 2.3522, 48.8566, 2.3522)
	_, err := svc.Finalize(driver.ID, draft, &Step2Data{
		VehicleID:     vehicle.ID,
		SeatsOffered:  3,
		PaymentMethod: entity.PaymentCash,
	})
	if !errors.Is(err, entity.ErrIdenticalLocations) {
		t.Fatalf("err = %v, want ErrIdenticalLocations", err)
	}

	// failed attempt must leave nothing behind
	var rides, locations int64
	db.Model(&entity.Ride{}).Count(&rides)
	db.Model(&entity.Location{}).Count(&locations)
	if rides != 0 {
		t.Errorf("rides = %d after failed finalize, want 0", rides)
	}
	if locations != 0 {
		t.Errorf("locations = %d after failed finalize, want 0", locations)
	}
}

func TestFinalizeRejectsForeignVehicle(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	other := createUser(t, db, "other@example.com")
	vehicle := createVehicle(t, db, other.ID)
	svc := newRideService(db)

	draft := newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357)
	_, err := svc.Finalize(driver.ID, draft, &Step2Data{
		VehicleID:     vehicle.ID,
		SeatsOffered:  3,
		PaymentMethod: entity.PaymentCash,
	})
	if !errors.Is(err, ErrVehicleNotOwned) {
		t.Fatalf("err = %v, want ErrVehicleNotOwned", err)
	}
}

func TestFinalizeReusesExistingLocations(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	svc := newRideService(db)

	step2 := &Step2Data{VehicleID: vehicle.ID, SeatsOffered: 3, PaymentMethod: entity.PaymentCash}
	if _, err := svc.Finalize(driver.ID, newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357), step2); err != nil {
		t.Fatalf("first Finalize: %v", err)
	}
	if _, err := svc.Finalize(driver.ID, newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357), step2); err != nil {
		t.Fatalf("second Finalize: %v", err)
	}

	var locations int64
	db.Model(&entity.Location{}).Count(&locations)
	if locations != 2 {
		t.Errorf("locations = %d after two identical rides, want 2", locations)
	}
}

func TestDeleteIsDriverOnly(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	ride := createRide(t, db, driver.ID, vehicle.ID)
	svc := newRideService(db)

	if err := svc.Delete(ride.ID, stranger.ID); !errors.Is(err, ErrNotRideDriver) {
		t.Fatalf("err = %v, want ErrNotRideDriver", err)
	}
	if err := svc.Delete(ride.ID, driver.ID); err != nil {
		t.Fatalf("Delete as driver: %v", err)
	}
	if _, err := svc.Detail(ride.ID); err == nil {
		t.Error("ride still found after delete")
	}
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	driver := createUser(t, db, "driver@example.com")
	rider := createUser(t, db, "rider@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	ride := createRide(t, db, driver.ID, vehicle.ID)
	jr := createJoinRequest(t, db, ride.ID, rider.ID)

	msg := &entity.ChatMessage{Content: "hi", SenderID: rider.ID, JoinRequestID: jr.UUID, Timestamp: time.Now()}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("create message: %v", err)
	}

	svc := newRideService(db)
	if err := svc.Delete(ride.ID, driver.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var requests, messages int64
	db.Model(&entity.JoinRequest{}).Count(&requests)
	db.Model(&entity.ChatMessage{}).Count(&messages)
	if requests != 0 || messages != 0 {
		t.Errorf("after delete: %d requests, %d messages, want 0/0", requests, messages)
	}
}

func TestDraftValidate(t *testing.T) {
	d := newDraft("Paris", "Paris", 48.8566, 2.3522, 48.8566, 2.3522)
	errs := d.Validate()
	if _, ok := errs["a_fulltext"]; !ok {
		t.Error("identical locations not reported on a_fulltext")
	}

	d = newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357)
	d.DepartureDatetime = time.Now().Add(-time.Hour)
	errs = d.Validate()
	if _, ok := errs["departure_datetime"]; !ok {
		t.Error("past departure not reported")
	}

	d = newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357)
	d.Stopovers = []DraftStopover{{Name: "bad", Lat: 123, Lng: 5}}
	errs = d.Validate()
	if _, ok := errs["stopovers"]; !ok {
		t.Error("out-of-range stopover not reported")
	}

	d = newDraft("Paris", "Lyon", 48.8566, 2.3522, 45.764, 4.8357)
	if errs := d.Validate(); len(errs) != 0 {
		t.Errorf("valid draft reported errors: %v", errs)
	}
}
