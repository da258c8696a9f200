package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

const readinessTimeout = 2 * time.Second

type HealthController struct {
	Logger *slog.Logger
	Store  domain.HealthChecker
}

func NewHealthController(logger *slog.Logger, store domain.HealthChecker) *HealthController {
	return &HealthController{Logger: logger, Store: store}
}

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /healthz [get]
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz godoc
// @Summary Readiness probe
// @Description Pings the backing store.
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /readyz [get]
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	if err := c.Store.Ping(ctx); err != nil {
		c.Logger.WarnContext(r.Context(), "readiness check failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "store unavailable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}
