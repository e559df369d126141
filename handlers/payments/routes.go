package payments

import (
	"twinclash-api/middleware"
	"twinclash-api/services"

	"github.com/gin-gonic/gin"
)

// Handler serves the coin purchase endpoints
type Handler struct {
	payments *services.PaymentService
}

func NewHandler(payments *services.PaymentService) *Handler {
	return &Handler{payments: payments}
}

// RegisterRoutes registers all routes related to payments
// r: the RouterGroup to which the routes are added
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	checkoutRateLimiter := middleware.NewRateLimiter(15000, 1000)

	payments := r.Group("/payments")
	{
		payments.POST("/checkout", middleware.RateLimiterMiddleware(checkoutRateLimiter), h.Checkout)
		payments.POST("/webhook", h.Webhook)
		payments.POST("/verify", h.Verify)
	}
}
