package handlers

import (
	"log"
	"net/http"

	"workshopmailer/internal/database"
	"workshopmailer/internal/models"
	"workshopmailer/internal/roster"
	"workshopmailer/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	rosterFetcher roster.Fetcher
	worker        *services.ReminderWorker
)

// Init wires the handlers to the running fetcher and worker
func Init(fetcher roster.Fetcher, w *services.ReminderWorker) {
	rosterFetcher = fetcher
	worker = w
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Workshop mailer is running")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// GetRoster returns the currently parsed candidate roster
func GetRoster(c *gin.Context) {
	candidates, err := rosterFetcher.Fetch(c.Request.Context())
	if err != nil {
		handleError(c, http.StatusBadGateway, "Failed to fetch roster", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(candidates), "candidates": candidates})
}

// GetSentRecords lists persisted sent records, newest first
func GetSentRecords(c *gin.Context) {
	var records []models.SentRecord
	if err := database.GetDB().Order("sent_at desc").Limit(200).Find(&records).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load sent records", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "records": records})
}

// GetEmailLogs lists recent send attempts, newest first
func GetEmailLogs(c *gin.Context) {
	var logs []models.EmailLog
	if err := database.GetDB().Order("created_at desc").Limit(200).Find(&logs).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to load email logs", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(logs), "logs": logs})
}

// TriggerTick forces a single worker pass outside the normal schedule
func TriggerTick(c *gin.Context) {
	stats, err := worker.RunOnce(c.Request.Context())
	if err != nil {
		handleError(c, http.StatusBadGateway, "Tick failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
