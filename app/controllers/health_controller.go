package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/eduportal/pkg/ctx"
	"github.com/shashiranjanraj/eduportal/pkg/logger"
)

// Pinger checks a backing store.
type Pinger func(ctx context.Context) error

type HealthController struct {
	store Pinger
}

// NewHealthController reports the store through ping; nil means the store
// is in-process and always up.
func NewHealthController(ping Pinger) *HealthController {
	return &HealthController{store: ping}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (c *HealthController) Show(cx *ctx.Context) {
	if c.store == nil {
		cx.OK(healthResponse{Status: "ok", Database: "memory"})
		return
	}

	pingCtx, cancel := context.WithTimeout(cx.Context(), 2*time.Second)
	defer cancel()

	if err := c.store(pingCtx); err != nil {
		logger.WithCtx(cx.Context()).Error("health check failed", "error", err.Error())
		cx.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Database: "down"})
		return
	}
	cx.OK(healthResponse{Status: "ok", Database: "up"})
}
