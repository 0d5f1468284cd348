package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/database"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db      *gorm.DB
	env     string
	started time.Time
}

func NewHealthHandler(db *gorm.DB, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env, started: time.Now()}
}

func (h *HealthHandler) Welcome(c *gin.Context) {
	utils.Success(c, gin.H{
		"name":    "Bangla Quotes API",
		"version": "v1",
		"docs":    "/api/v1",
	})
}

// Health is 200 while the database answers and 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	status := gin.H{
		"status":      "ok",
		"environment": h.env,
		"uptime":      time.Since(h.started).Round(time.Second).String(),
		"database":    "connected",
	}

	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		logrus.WithError(err).Warn("health check: database unreachable")
		status["status"] = "error"
		status["database"] = "disconnected"
		c.JSON(http.StatusServiceUnavailable, models.Response{
			Success:   false,
			Data:      status,
			Message:   "Database unavailable",
			Timestamp: utils.Timestamp(),
		})
		return
	}

	utils.Success(c, status)
}

func (h *HealthHandler) NotFound(c *gin.Context) {
	utils.NotFound(c, "Route "+c.Request.Method+" "+c.Request.URL.Path+" not found")
}
