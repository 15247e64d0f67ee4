package controllers

import (
	"errors"
	"strconv"

	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JoinRequestController struct {
	service *services.JoinRequestService
}

func NewJoinRequestController(s *services.JoinRequestService) *JoinRequestController {
	return &JoinRequestController{service: s}
}

// POST /rides/:id/join
func (j *JoinRequestController) Create(c *gin.Context) {
	rideID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid ride id")
		return
	}

	jr, err := j.service.Create(utils.CurrentUserID(c), uint(rideID))
	switch {
	case err == nil:
		resp.Created(c, jr)
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "ride not found")
	case errors.Is(err, services.ErrOwnRide), errors.Is(err, services.ErrDuplicateRequest):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}

// GET /requests: outgoing and incoming, the chat index
func (j *JoinRequestController) Index(c *gin.Context) {
	outgoing, incoming, err := j.service.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"outgoing": outgoing, "incoming": incoming})
}

type StatusRequest struct {
	Action string `json:"action" binding:"required"`
}

// POST /requests/:uuid/status: accept or decline, driver only
func (j *JoinRequestController) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		resp.NotFound(c, "join request not found")
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	jr, err := j.service.Transition(id, req.Action, utils.CurrentUserID(c))
	switch {
	case err == nil:
		resp.OK(c, jr)
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "join request not found")
	case errors.Is(err, services.ErrNotDriver):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidAction):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
