package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"barbershop-attendance/infrastructure/redis"
	"barbershop-attendance/infrastructure/storage"
	websocketManager "barbershop-attendance/infrastructure/websocket"
	"barbershop-attendance/pkg/scheduler"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.RedisClient
	photos      *storage.BunnyStorage
	scheduler   scheduler.EventScheduler
	websockets  *websocketManager.WebSocketManager
}

// NewHealthHandler creates a new health handler. Every dependency except db may be nil.
func NewHealthHandler(
	db *gorm.DB,
	redisClient *redis.RedisClient,
	photos *storage.BunnyStorage,
	eventScheduler scheduler.EventScheduler,
	websockets *websocketManager.WebSocketManager,
) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		photos:      photos,
		scheduler:   eventScheduler,
		websockets:  websockets,
	}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
	Metrics    *HealthMetrics             `json:"metrics,omitempty"`
}

type HealthMetrics struct {
	WebSocketClients int                           `json:"websocket_clients"`
	Jobs             map[string]*scheduler.JobInfo `json:"jobs,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"message": "Server is running",
		"service": "Barbershop Attendance API",
	})
}

// DetailedHealth reports database, redis and photo storage reachability.
// Only a database failure makes the service unhealthy.
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 10*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	allHealthy := true
	hasCriticalFailure := false

	dbHealth := h.checkDatabase(ctx)
	response.Components["database"] = dbHealth
	if dbHealth.Status != "ok" {
		hasCriticalFailure = true
	}

	redisHealth := h.checkRedis(ctx)
	response.Components["redis"] = redisHealth
	if redisHealth.Status == "error" {
		allHealthy = false
	}

	storageHealth := h.checkPhotoStorage(ctx)
	response.Components["photo_storage"] = storageHealth
	if storageHealth.Status == "error" {
		allHealthy = false
	}

	response.Metrics = h.getMetrics()
	for _, job := range response.Metrics.Jobs {
		if job.LastError != "" {
			allHealthy = false
		}
	}

	if hasCriticalFailure {
		response.Status = "unhealthy"
	} else if !allHealthy {
		response.Status = "degraded"
	} else {
		response.Status = "healthy"
	}

	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.db == nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database not configured",
		}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Failed to get database connection: " + err.Error(),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Database ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redisClient == nil {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Redis not configured, using in-process locks",
		}
	}

	if err := h.redisClient.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Connected",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) checkPhotoStorage(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.photos == nil || !h.photos.Enabled() {
		return ComponentHealth{
			Status:  "unavailable",
			Message: "Photo storage not configured",
		}
	}

	if err := h.photos.Ping(ctx); err != nil {
		return ComponentHealth{
			Status:  "error",
			Message: "Photo storage check failed: " + err.Error(),
		}
	}

	return ComponentHealth{
		Status:  "ok",
		Message: "Reachable",
		Latency: time.Since(start).String(),
	}
}

func (h *HealthHandler) getMetrics() *HealthMetrics {
	metrics := &HealthMetrics{}
	if h.websockets != nil {
		metrics.WebSocketClients = h.websockets.ClientCount()
	}
	if h.scheduler != nil {
		metrics.Jobs = h.scheduler.ListJobs()
	}
	return metrics
}
