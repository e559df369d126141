package v1

import (
	"twinclash-api/handlers/admin"
	"twinclash-api/handlers/duels"
	"twinclash-api/handlers/payments"
	"twinclash-api/handlers/profiles"
	"twinclash-api/handlers/push"
	"twinclash-api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers aggregates the per-area handlers registered under /api/v1
type Handlers struct {
	Duels    *duels.Handler
	Push     *push.Handler
	Payments *payments.Handler
	Profiles *profiles.Handler
	Admin    *admin.Handler
}

// Register the endpoints for the v1 API
func Register(r *gin.Engine, h Handlers) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500) // 100 requests per second, 150 burst
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	h.Duels.RegisterRoutes(v1)
	h.Push.RegisterRoutes(v1)
	h.Payments.RegisterRoutes(v1)
	h.Profiles.RegisterRoutes(v1)
	h.Admin.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
