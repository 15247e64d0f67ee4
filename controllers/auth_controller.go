package controllers

import (
	"errors"
	"net/http"

	"github.com/insaroule/insaroule/pkg/resp"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{service: s}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := a.service.Register(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}

	resp.Created(c, gin.H{
		"id": user.ID, "email": user.Email,
		"firstName": user.FirstName, "lastName": user.LastName, "role": user.Role,
	})
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := a.service.Login(req.Email, req.Password)
	if err != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"user": gin.H{
			"id": user.ID, "email": user.Email,
			"firstName": user.FirstName, "lastName": user.LastName, "role": user.Role,
		},
	})
}

// GET /auth/me
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.service.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "user not found")
		return
	}
	resp.OK(c, gin.H{
		"id": user.ID, "email": user.Email, "emailVerified": user.EmailVerified,
		"firstName": user.FirstName, "lastName": user.LastName, "role": user.Role,
	})
}

// POST /auth/verify/resend
func (a *AuthController) ResendVerification(c *gin.Context) {
	err := a.service.ResendVerification(utils.CurrentUserID(c))
	switch {
	case err == nil:
		resp.OK(c, gin.H{"sent": true})
	case errors.Is(err, services.ErrVerifyCooldown):
		resp.TooManyRequests(c, err.Error())
	case errors.Is(err, services.ErrAlreadyVerified):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "user not found")
	default:
		resp.ServerError(c, err)
	}
}

type PreferencesRequest struct {
	UnreadMessages         *bool `json:"unreadMessages"`
	RideStatusUpdates      *bool `json:"rideStatusUpdates"`
	RideSharingSuggestions *bool `json:"rideSharingSuggestions"`
}

// GET /settings/notifications
func (a *AuthController) GetPreferences(c *gin.Context) {
	prefs, err := a.service.GetPreferences(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "preferences not found")
		return
	}
	resp.OK(c, prefs)
}

// PATCH /settings/notifications: each toggle is independent, absent fields
// stay untouched.
func (a *AuthController) UpdatePreferences(c *gin.Context) {
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if req.UnreadMessages != nil {
		updates["unread_messages"] = *req.UnreadMessages
	}
	if req.RideStatusUpdates != nil {
		updates["ride_status_updates"] = *req.RideStatusUpdates
	}
	if req.RideSharingSuggestions != nil {
		updates["ride_sharing_suggestions"] = *req.RideSharingSuggestions
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}

	prefs, err := a.service.UpdatePreferences(utils.CurrentUserID(c), updates)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, prefs)
}
