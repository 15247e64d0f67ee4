package routes

import (
	"github.com/insaroule/insaroule/configs"
	"github.com/insaroule/insaroule/controllers"
	"github.com/insaroule/insaroule/middlewares"
	"github.com/insaroule/insaroule/ws"

	"github.com/gin-gonic/gin"
)

// Controllers groups everything RegisterRoutes wires up.
type Controllers struct {
	Auth        *controllers.AuthController
	Vehicle     *controllers.VehicleController
	Ride        *controllers.RideController
	JoinRequest *controllers.JoinRequestController
	Chat        *controllers.ChatController
	Moderation  *controllers.ModerationController
	Geo         *controllers.GeoController
	Stats       *controllers.StatsController
	Hub         *ws.ChatHub
}

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	secret := cfg.JWTSecret

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", ctrl.Auth.Register)
		a.POST("/login", ctrl.Auth.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(secret))
	{
		aAuth.GET("/me", ctrl.Auth.Me)
		aAuth.POST("/verify/resend", ctrl.Auth.ResendVerification)
	}

	// Notification settings
	settings := r.Group("/settings", middlewares.AuthMiddleware(secret))
	{
		settings.GET("/notifications", ctrl.Auth.GetPreferences)
		settings.PATCH("/notifications", ctrl.Auth.UpdatePreferences)
	}

	// Public
	r.GET("/rides", ctrl.Ride.List)
	r.GET("/rides/:id", ctrl.Ride.Detail)
	r.GET("/stats", ctrl.Stats.Totals)

	// Geocoding/routing proxy (must be logged in; the upstream is rate limited)
	g := r.Group("/geo", middlewares.AuthMiddleware(secret))
	{
		g.GET("/autocomplete", ctrl.Geo.Autocomplete)
		g.GET("/route", ctrl.Geo.Route)
	}

	// Vehicles
	v := r.Group("/vehicles", middlewares.AuthMiddleware(secret))
	{
		v.POST("", ctrl.Vehicle.Create)
		v.GET("", ctrl.Vehicle.List)
	}

	// Ride creation workflow + lifecycle
	u := r.Group("/", middlewares.AuthMiddleware(secret))
	{
		u.POST("/rides/draft/step1", ctrl.Ride.SubmitStep1)
		u.POST("/rides/draft/step2", ctrl.Ride.SubmitStep2)
		u.DELETE("/rides/draft", ctrl.Ride.AbandonDraft)
		u.DELETE("/rides/:id", ctrl.Ride.Delete)
		u.POST("/rides/:id/join", ctrl.JoinRequest.Create)
	}

	// Join requests + chat rooms
	req := r.Group("/requests", middlewares.AuthMiddleware(secret))
	{
		req.GET("", ctrl.JoinRequest.Index)
		req.POST("/:uuid/status", ctrl.JoinRequest.ChangeStatus)
		req.GET("/:uuid/room", ctrl.Chat.Room)
	}

	// Moderation (moderator/admin only)
	mod := r.Group("/mod", middlewares.AuthMiddleware(secret, "moderator", "admin"))
	{
		mod.PATCH("/messages/:id/hide", ctrl.Moderation.Hide)
		mod.PATCH("/messages/:id/unhide", ctrl.Moderation.Unhide)
	}

	// Live chat; token comes via query since browsers cannot set WS headers
	r.GET("/ws/chat/:uuid", middlewares.WSAuthMiddleware(secret), ctrl.Hub.HandleWebSocket)
}
