package main

import (
	"context"
	"fmt"
	"log"

	"workshopmailer/internal/config"
	"workshopmailer/internal/database"
	"workshopmailer/internal/handlers"
	"workshopmailer/internal/roster"
	"workshopmailer/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; in production everything comes from the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Configuration error: ", err)
	}

	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	fetcher, err := roster.NewSheetsFetcher(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize roster fetcher: ", err)
	}

	mailer, err := services.NewMailer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize mailer: ", err)
	}

	emailService := services.NewEmailService(mailer, cfg)
	store := services.NewGormSentStore(database.GetDB())

	worker := services.NewReminderWorker(fetcher, emailService, store, cfg.PollInterval, cfg.ReminderLead)
	worker.Start()
	defer worker.Stop()

	handlers.Init(fetcher, worker)

	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1"})
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Liveness
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Ops endpoints (token required)
	admin := router.Group("")
	admin.Use(handlers.AdminAuthMiddleware(cfg.AdminToken))
	{
		admin.GET("/roster", handlers.GetRoster)
		admin.GET("/sent", handlers.GetSentRecords)
		admin.GET("/email-logs", handlers.GetEmailLogs)
		admin.POST("/admin/tick", handlers.TriggerTick)
	}

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
