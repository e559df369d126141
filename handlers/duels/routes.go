package duels

import (
	"twinclash-api/middleware"
	"twinclash-api/realtime"
	"twinclash-api/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the duel room endpoints
type Handler struct {
	duels *services.DuelService
	hub   *realtime.Hub
}

func NewHandler(duels *services.DuelService, hub *realtime.Hub) *Handler {
	return &Handler{duels: duels, hub: hub}
}

// RegisterRoutes registers all routes related to duel rooms
// r: the RouterGroup to which the routes are added
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Room creation is the most abuse-prone endpoint
	createRateLimiter := middleware.NewRateLimiter(15000, 1000)

	duels := r.Group("/duels")
	{
		duels.POST("", middleware.RateLimiterMiddleware(createRateLimiter), h.CreateRoom)
		duels.GET("/:code", h.GetRoom)
		duels.POST("/:code/join", h.JoinRoom)
		duels.POST("/:code/result", h.SubmitResult)
		duels.POST("/:code/cancel", h.CancelRoom)
		duels.GET("/:code/ws", h.ObserveRoom)
	}
}
