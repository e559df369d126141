package profiles

import (
	"twinclash-api/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the player profile endpoints
type Handler struct {
	profiles *services.ProfileService
}

func NewHandler(profiles *services.ProfileService) *Handler {
	return &Handler{profiles: profiles}
}

// RegisterRoutes registers all routes related to player profiles
// r: the RouterGroup to which the routes are added
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profiles := r.Group("/profiles")
	{
		profiles.GET("/:client_id", h.GetProfile)
		profiles.POST("/:client_id/unlock-world", h.UnlockWorld)
	}
}
