package push

import (
	"twinclash-api/middleware"
	"twinclash-api/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the web-push endpoints
type Handler struct {
	push *services.PushService
}

func NewHandler(push *services.PushService) *Handler {
	return &Handler{push: push}
}

// RegisterRoutes registers all routes related to push notifications
// r: the RouterGroup to which the routes are added
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	registerRateLimiter := middleware.NewRateLimiter(15000, 1000)

	push := r.Group("/push")
	{
		push.POST("/register", middleware.RateLimiterMiddleware(registerRateLimiter), h.RegisterToken)
		push.POST("/send", middleware.AdminKeyMiddleware(), h.Send)
		push.POST("/daily-reminder", middleware.AdminKeyMiddleware(), h.DailyReminder)
	}
}
