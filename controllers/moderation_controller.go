package controllers

import (
	"errors"
	"strconv"

	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ModerationController struct {
	service *services.ModerationService
}

func NewModerationController(s *services.ModerationService) *ModerationController {
	return &ModerationController{service: s}
}

// PATCH /mod/messages/:id/hide
func (m *ModerationController) Hide(c *gin.Context) {
	m.setHidden(c, true)
}

// PATCH /mod/messages/:id/unhide
func (m *ModerationController) Unhide(c *gin.Context) {
	m.setHidden(c, false)
}

func (m *ModerationController) setHidden(c *gin.Context, hidden bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid message id")
		return
	}

	var msg any
	if hidden {
		msg, err = m.service.Hide(uint(id), utils.CurrentUserID(c))
	} else {
		msg, err = m.service.Unhide(uint(id), utils.CurrentUserID(c))
	}
	switch {
	case err == nil:
		resp.OK(c, msg)
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "message not found")
	default:
		resp.ServerError(c, err)
	}
}
