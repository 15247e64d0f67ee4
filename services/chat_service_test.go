package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/repository"

	"gorm.io/gorm"
)

func newChatService(db *gorm.DB) *ChatService {
	return NewChatService(
		repository.NewChatRepository(db),
		repository.NewJoinRequestRepository(db))
}

// chatFixture returns a pending request between a fresh driver and rider.
func chatFixture(t *testing.T, db *gorm.DB) (driver, rider *entity.User, jr *entity.JoinRequest) {
	t.Helper()
	driver = createUser(t, db, "driver@example.com")
	rider = createUser(t, db, "rider@example.com")
	vehicle := createVehicle(t, db, driver.ID)
	ride := createRide(t, db, driver.ID, vehicle.ID)
	jr = createJoinRequest(t, db, ride.ID, rider.ID)
	return driver, rider, jr
}

func seedMessages(t *testing.T, db *gorm.DB, jr *entity.JoinRequest, senderID uint, n int) {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 1; i <= n; i++ {
		msg := &entity.ChatMessage{
			Content:       fmt.Sprintf("msg %d", i),
			SenderID:      senderID,
			JoinRequestID: jr.UUID,
			Timestamp:     base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(msg).Error; err != nil {
			t.Fatalf("seed message %d: %v", i, err)
		}
	}
}

func TestHistoryReturnsMostRecentAscending(t *testing.T) {
	db := newTestDB(t)
	_, rider, jr := chatFixture(t, db)
	svc := newChatService(db)

	seedMessages(t, db, jr, rider.ID, 60)

	history, err := svc.History(jr.UUID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != HistoryLimit {
		t.Fatalf("len(history) = %d, want %d", len(history), HistoryLimit)
	}
	// the 10 oldest messages fall off; order is chronological
	if history[0].Content != "msg 11" {
		t.Errorf("first = %q, want %q", history[0].Content, "msg 11")
	}
	if history[len(history)-1].Content != "msg 60" {
		t.Errorf("last = %q, want %q", history[len(history)-1].Content, "msg 60")
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.Before(history[i-1].Timestamp) {
			t.Fatalf("history not ascending at index %d", i)
		}
	}
}

func TestHistoryExcludesHidden(t *testing.T) {
	db := newTestDB(t)
	_, rider, jr := chatFixture(t, db)
	svc := newChatService(db)

	seedMessages(t, db, jr, rider.ID, 3)
	if err := db.Model(&entity.ChatMessage{}).
		Where("content = ?", "msg 2").
		Update("hidden", true).Error; err != nil {
		t.Fatalf("hide message: %v", err)
	}

	history, err := svc.History(jr.UUID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("len(history) = %d, want 2", len(history))
	}
	for _, m := range history {
		if m.Content == "msg 2" {
			t.Error("hidden message present in history")
		}
	}
}

func TestSendMessageStampsServerTime(t *testing.T) {
	db := newTestDB(t)
	_, rider, jr := chatFixture(t, db)
	svc := newChatService(db)

	before := time.Now()
	msg, err := svc.SendMessage(jr.UUID, rider.ID, "hello")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.Timestamp.Before(before) || msg.Timestamp.After(time.Now()) {
		t.Errorf("Timestamp = %v outside send window", msg.Timestamp)
	}
	if msg.ID == 0 {
		t.Error("message not persisted")
	}
}

func TestCanAccessRoom(t *testing.T) {
	db := newTestDB(t)
	driver, rider, jrRef := chatFixture(t, db)
	stranger := createUser(t, db, "stranger@example.com")
	svc := newChatService(db)

	jr, err := svc.GetJoinRequest(jrRef.UUID)
	if err != nil {
		t.Fatalf("GetJoinRequest: %v", err)
	}
	if !svc.CanAccessRoom(driver.ID, jr) {
		t.Error("driver denied access to own room")
	}
	if !svc.CanAccessRoom(rider.ID, jr) {
		t.Error("requester denied access to own room")
	}
	if svc.CanAccessRoom(stranger.ID, jr) {
		t.Error("third party granted access")
	}
}

func TestCounterpart(t *testing.T) {
	db := newTestDB(t)
	driver, rider, jrRef := chatFixture(t, db)
	svc := newChatService(db)

	jr, err := svc.GetJoinRequest(jrRef.UUID)
	if err != nil {
		t.Fatalf("GetJoinRequest: %v", err)
	}
	if got := svc.Counterpart(jr, driver.ID); got != rider.ID {
		t.Errorf("Counterpart(driver) = %d, want %d", got, rider.ID)
	}
	if got := svc.Counterpart(jr, rider.ID); got != driver.ID {
		t.Errorf("Counterpart(rider) = %d, want %d", got, driver.ID)
	}
}
