package main

import (
	"log"

	"twinclash-api/config"
	"twinclash-api/database"
	"twinclash-api/handlers/admin"
	"twinclash-api/handlers/duels"
	"twinclash-api/handlers/payments"
	"twinclash-api/handlers/profiles"
	"twinclash-api/handlers/push"
	"twinclash-api/middleware"
	"twinclash-api/realtime"
	v1 "twinclash-api/routes/v1"
	"twinclash-api/services"
	"twinclash-api/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}
	config.Init()
	database.InitDB()

	hub := realtime.NewHub()
	duelStore := store.NewPostgresDuelStore(database.DB)
	duelService := services.NewDuelService(duelStore, hub, config.DefaultDuelLimits)

	fcm := services.NewFCMClient(config.FCMServerKey)
	oneSignal := services.NewOneSignalClient(config.OneSignalAppID, config.OneSignalAPIKey, config.PublicSiteURL)
	pushService := services.NewPushService(database.DB, fcm, oneSignal)

	economyStore := store.NewPostgresEconomyStore(database.DB)
	profileService := services.NewProfileService(economyStore)
	paymentService := services.NewPaymentService(economyStore, profileService)

	if _, err := services.StartHousekeeping(duelService, pushService); err != nil {
		log.Fatalf("failed to start housekeeping scheduler: %v", err)
	}

	// Report memory and goroutine gauges in the background
	go middleware.UpdateSystemMetrics()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.ClientUrl},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "x-admin-key"},
		AllowCredentials: true,
	}))

	v1.Register(r, v1.Handlers{
		Duels:    duels.NewHandler(duelService, hub),
		Push:     push.NewHandler(pushService),
		Payments: payments.NewHandler(paymentService),
		Profiles: profiles.NewHandler(profileService),
		Admin:    admin.NewHandler(database.DB),
	})

	log.Printf("[server] listening on :%s", config.Port)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
