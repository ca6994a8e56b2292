package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check pings the database.
func (h *HealthController) Check(c *ctx.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		logger.WithCtx(c.Context()).Error("health check failed", "error", err)
		c.Error(http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.Success(map[string]string{"status": "ok"})
}
