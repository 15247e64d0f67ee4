// services/chat_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/repository"
)

// HistoryLimit caps the backfill sent on connect.
const HistoryLimit = 50

type ChatService struct {
	repo   *repository.ChatRepository
	jrRepo *repository.JoinRequestRepository
}

func NewChatService(repo *repository.ChatRepository, jrRepo *repository.JoinRequestRepository) *ChatService {
	return &ChatService{repo: repo, jrRepo: jrRepo}
}

func (s *ChatService) GetJoinRequest(id uuid.UUID) (*entity.JoinRequest, error) {
	return s.jrRepo.FindByUUID(id)
}

// CanAccessRoom: the room belongs to exactly two people, the ride's driver
// and the requester.
func (s *ChatService) CanAccessRoom(userID uint, jr *entity.JoinRequest) bool {
	return userID == jr.Ride.DriverID || userID == jr.UserID
}

// Counterpart returns the other participant of the room.
func (s *ChatService) Counterpart(jr *entity.JoinRequest, userID uint) uint {
	if userID == jr.Ride.DriverID {
		return jr.UserID
	}
	return jr.Ride.DriverID
}

// History returns up to HistoryLimit most recent visible messages, ascending.
func (s *ChatService) History(joinRequestID uuid.UUID) ([]entity.ChatMessage, error) {
	return s.repo.RecentMessages(joinRequestID, HistoryLimit)
}

// SendMessage stamps the server time and persists; broadcasting is the hub's
// job and happens after this returns, preserving persistence order.
func (s *ChatService) SendMessage(joinRequestID uuid.UUID, senderID uint, content string) (*entity.ChatMessage, error) {
	msg := &entity.ChatMessage{
		Content:       content,
		SenderID:      senderID,
		JoinRequestID: joinRequestID,
		Timestamp:     time.Now(),
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
