// repository/chat_repository.go
package repository

import (
	"github.com/google/uuid"
	"github.com/insaroule/insaroule/entity"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db}
}

func (r *ChatRepository) CreateMessage(msg *entity.ChatMessage) error {
	return r.db.Create(msg).Error
}

// RecentMessages returns the limit most recent non-hidden messages of a join
// request, in ascending timestamp order.
func (r *ChatRepository) RecentMessages(joinRequestID uuid.UUID, limit int) ([]entity.ChatMessage, error) {
	var msgs []entity.ChatMessage
	err := r.db.
		Preload("Sender").
		Where("join_request_id = ? AND hidden = ?", joinRequestID, false).
		Order("timestamp DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// the query walks backwards from the newest; flip to ascending
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *ChatRepository) FindMessage(id uint) (*entity.ChatMessage, error) {
	var msg entity.ChatMessage
	if err := r.db.First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *ChatRepository) SetHidden(id uint, hidden bool) error {
	return r.db.Model(&entity.ChatMessage{}).
		Where("id = ?", id).
		Update("hidden", hidden).Error
}
