// controllers/chat_controller.go
package controllers

import (
	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/repository"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/utils"
	"github.com/insaroule/insaroule/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatController struct {
	service  *services.ChatService
	rideRepo *repository.RideRepository
	userRepo *repository.UserRepository
}

func NewChatController(
	s *services.ChatService,
	rideRepo *repository.RideRepository,
	userRepo *repository.UserRepository,
) *ChatController {
	return &ChatController{service: s, rideRepo: rideRepo, userRepo: userRepo}
}

// GET /requests/:uuid/room: the REST side of the chat room: counterpart,
// shared ride count and visible history. The live stream is /ws/chat/:uuid.
func (ct *ChatController) Room(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		resp.NotFound(c, "join request not found")
		return
	}

	jr, err := ct.service.GetJoinRequest(id)
	if err != nil {
		resp.NotFound(c, "join request not found")
		return
	}

	userID := utils.CurrentUserID(c)
	if !ct.service.CanAccessRoom(userID, jr) {
		resp.Forbidden(c, "you are not a participant of this room")
		return
	}

	withUserID := ct.service.Counterpart(jr, userID)
	withUser, err := ct.userRepo.FindByID(withUserID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	sharedRides, err := ct.rideRepo.CountSharedRides(userID, withUserID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	history, err := ct.service.History(jr.UUID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	messages := make([]gin.H, 0, len(history))
	for _, m := range history {
		messages = append(messages, gin.H{
			"message":   m.Content,
			"timestamp": m.Timestamp,
			"dir":       ws.Direction(m.SenderID, userID),
		})
	}

	resp.OK(c, gin.H{
		"joinRequest": jr,
		"withUser": gin.H{
			"id": withUser.ID, "firstName": withUser.FirstName, "lastName": withUser.LastName,
		},
		"sharedRideCount": sharedRides,
		"messages":        messages,
	})
}
