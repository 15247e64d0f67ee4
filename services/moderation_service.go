package services

import (
	"github.com/insaroule/insaroule/entity"
	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/repository"
)

// ModerationService flips the hidden flag on persisted messages. It never
// touches the live channel: messages already delivered stay delivered, the
// flag only filters later history reads.
type ModerationService struct {
	repo *repository.ChatRepository
}

func NewModerationService(repo *repository.ChatRepository) *ModerationService {
	return &ModerationService{repo: repo}
}

func (s *ModerationService) Hide(messageID uint, byUserID uint) (*entity.ChatMessage, error) {
	return s.setHidden(messageID, byUserID, true)
}

func (s *ModerationService) Unhide(messageID uint, byUserID uint) (*entity.ChatMessage, error) {
	return s.setHidden(messageID, byUserID, false)
}

func (s *ModerationService) setHidden(messageID, byUserID uint, hidden bool) (*entity.ChatMessage, error) {
	msg, err := s.repo.FindMessage(messageID)
	if err != nil {
		return nil, err
	}
	if msg.Hidden == hidden {
		return msg, nil
	}
	if err := s.repo.SetHidden(messageID, hidden); err != nil {
		return nil, err
	}
	msg.Hidden = hidden
	logger.L().Infow("message moderation", "messageId", messageID, "hidden", hidden, "by", byUserID)
	return msg, nil
}
