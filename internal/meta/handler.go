package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/library-circulation/go-api-server/internal/config"
	"github.com/library-circulation/go-api-server/internal/shared/database"
	"github.com/library-circulation/go-api-server/internal/shared/keylock"
	"github.com/library-circulation/go-api-server/internal/shared/notify"
)

// Handler handles meta endpoints (health check)
type Handler struct {
	cfg     *config.Config
	db      *database.DB
	locker  *keylock.Locker
	notices *notify.Dispatcher
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB, locker *keylock.Locker, notices *notify.Dispatcher) *Handler {
	return &Handler{
		cfg:     cfg,
		db:      db,
		locker:  locker,
		notices: notices,
	}
}

// Health checks database health and reports the circulation runtime state
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Check database connectivity
	dbStatus := "up"
	var dbError string
	start := time.Now()

	if err := h.db.HealthCheck(ctx); err != nil {
		dbStatus = "down"
		dbError = err.Error()
		slog.Error("Health check 실패", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"service": gin.H{
				"name":        h.cfg.App.Name,
				"environment": h.cfg.App.Env,
			},
			"checks": gin.H{
				"database": gin.H{
					"status": dbStatus,
					"error":  dbError,
				},
			},
		})
		return
	}

	dbLatency := time.Since(start).Milliseconds()

	dbCheck := gin.H{
		"status":     dbStatus,
		"driver":     h.cfg.Database.Driver,
		"latency_ms": dbLatency,
	}
	if stats, err := h.db.PoolStats(); err == nil {
		dbCheck["open_conns"] = stats.OpenConnections
		dbCheck["in_use"] = stats.InUse
	}

	// All checks passed
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
			"port":        h.cfg.App.Port,
		},
		"checks": gin.H{
			"database": dbCheck,
			"lending": gin.H{
				"held_locks":      h.locker.Len(),
				"min_reliability": h.cfg.Lending.MinReliability,
			},
			"notification": gin.H{
				"mode":    notificationMode(h.cfg),
				"pending": h.notices.Pending(),
			},
		},
	})
}

func notificationMode(cfg *config.Config) string {
	if cfg.IsMailEnabled() {
		return "smtp"
	}
	return "log"
}
