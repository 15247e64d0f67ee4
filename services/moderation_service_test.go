package services

import (
	"testing"

	"github.com/insaroule/insaroule/repository"
)

func TestHideAndUnhide(t *testing.T) {
	db := newTestDB(t)
	_, rider, jr := chatFixture(t, db)
	chat := newChatService(db)
	mod := NewModerationService(repository.NewChatRepository(db))

	msg, err := chat.SendMessage(jr.UUID, rider.ID, "rude")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	hidden, err := mod.Hide(msg.ID, 99)
	if err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if !hidden.Hidden {
		t.Error("message not hidden after Hide")
	}

	// hiding again is a no-op, not an error
	if _, err := mod.Hide(msg.ID, 99); err != nil {
		t.Fatalf("second Hide: %v", err)
	}

	history, err := chat.History(jr.UUID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("hidden message visible in history, len = %d", len(history))
	}

	shown, err := mod.Unhide(msg.ID, 99)
	if err != nil {
		t.Fatalf("Unhide: %v", err)
	}
	if shown.Hidden {
		t.Error("message still hidden after Unhide")
	}

	history, err = chat.History(jr.UUID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("len(history) = %d after unhide, want 1", len(history))
	}
}
