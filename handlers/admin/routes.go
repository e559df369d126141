package admin

import (
	"twinclash-api/middleware"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

// Handler serves the operator-only export endpoints
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RegisterRoutes registers all routes related to administration
// r: the RouterGroup to which the routes are added
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AdminKeyMiddleware())
	{
		admin.GET("/duels/export", h.ExportDuels)
		admin.GET("/transactions/export", h.ExportTransactions)
	}
}
