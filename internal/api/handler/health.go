package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves the health probes. Liveness answers immediately;
// Readiness pings MongoDB and Redis first, so an orchestrator stops routing
// traffic here when a backing store is down.
type HealthHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: db, redis: rdb}
}

type probeCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string                `json:"status"`
	Checks map[string]probeCheck `json:"checks"`
}

// Liveness handles GET /health.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready. Returns 503 with per-dependency
// detail when any backing store fails its ping.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := map[string]probeCheck{
		"mongodb": h.check(func() error { return h.mongo.Client().Ping(ctx, nil) }),
		"redis":   h.check(func() error { return h.redis.Ping(ctx).Err() }),
	}

	status, code := "ok", http.StatusOK
	for _, chk := range checks {
		if chk.Status != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
			break
		}
	}

	return c.JSON(code, readinessResponse{Status: status, Checks: checks})
}

func (h *HealthHandler) check(ping func() error) probeCheck {
	if err := ping(); err != nil {
		return probeCheck{Status: "unhealthy", Error: err.Error()}
	}
	return probeCheck{Status: "ok"}
}
