package handler

import (
	"net/http"
	"time"

	"github.com/codewithomar/LPWC/internal/infrastructure/logger"
	"github.com/codewithomar/LPWC/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks a backing service
type Pinger interface {
	Ping() error
}

// HealthHandler reports liveness
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check pings the catalog database
// GET /healthz
func (h *HealthHandler) Check(c *gin.Context) {
	now := time.Now().Format(time.RFC3339)
	if err := h.db.Ping(); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unhealthy",
			Time:     now,
			Database: "error",
		})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "healthy",
		Time:     now,
		Database: "ok",
	})
}
