package main

import (
	"context"
	"fmt"
	"log"

	"github.com/insaroule/insaroule/configs"
	"github.com/insaroule/insaroule/controllers"
	"github.com/insaroule/insaroule/geo"
	"github.com/insaroule/insaroule/middlewares"
	"github.com/insaroule/insaroule/pkg/logger"
	"github.com/insaroule/insaroule/repository"
	"github.com/insaroule/insaroule/routes"
	"github.com/insaroule/insaroule/services"
	"github.com/insaroule/insaroule/ws"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := configs.LoadConfig()

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()
	if err := configs.SeedModerator(); err != nil {
		log.Fatalf("seed moderator failed: %v", err)
	}
	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	locRepo := repository.NewLocationRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	rideRepo := repository.NewRideRepository(db)
	jrRepo := repository.NewJoinRequestRepository(db)
	chatRepo := repository.NewChatRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.VerifyEmailCooldown)
	rideSvc := services.NewRideService(db, rideRepo, locRepo, vehicleRepo)
	jrSvc := services.NewJoinRequestService(db, jrRepo, rideRepo)
	chatSvc := services.NewChatService(chatRepo, jrRepo)
	modSvc := services.NewModerationService(chatRepo)
	statsSvc := services.NewStatsService(statsRepo, rideRepo)

	geoClient := geo.NewClient(cfg.GeoBaseURL, cfg.GeoTimeout)

	// Chat hub
	hub := ws.NewChatHub(chatSvc)
	go hub.Run()

	// Periodic statistics rollup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go statsSvc.Run(ctx, cfg.StatsInterval)

	// HTTP
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	// Sessions back the multi-step ride draft; MaxAge is the draft TTL.
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{MaxAge: int(cfg.DraftTTL.Seconds()), Path: "/", HttpOnly: true})
	r.Use(sessions.Sessions("insaroule", store))

	routes.RegisterRoutes(r, cfg, routes.Controllers{
		Auth:        controllers.NewAuthController(authSvc),
		Vehicle:     controllers.NewVehicleController(vehicleRepo),
		Ride:        controllers.NewRideController(rideSvc),
		JoinRequest: controllers.NewJoinRequestController(jrSvc),
		Chat:        controllers.NewChatController(chatSvc, rideRepo, userRepo),
		Moderation:  controllers.NewModerationController(modSvc),
		Geo:         controllers.NewGeoController(geoClient),
		Stats:       controllers.NewStatsController(statsSvc),
		Hub:         hub,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.L().Infow("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
