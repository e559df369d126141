package push

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"twinclash-api/services"
	"twinclash-api/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	databaseTimeout = 5 * time.Second
	fanoutTimeout   = 2 * time.Minute
)

// RegisterToken upserts a push subscription token. Re-registering refreshes
// last_seen so the token stays inside the active window.
func (h *Handler) RegisterToken(c *gin.Context) {
	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidToken, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	err := h.push.RegisterToken(ctx, req.Token, req.ClientID, req.Platform, req.Locale, c.Request.UserAgent())
	if errors.Is(err, services.ErrInvalidToken) {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidToken, "Token appears to be invalid")
		return
	}
	if err != nil {
		log.Printf("[push] register failed: %v", err)
		response.ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "Could not register token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Send broadcasts a notification to every token seen in the last 30 days
func (h *Handler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInternalError, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), fanoutTimeout)
	defer cancel()

	sent, failed, err := h.push.Broadcast(ctx, services.Notification{
		Title: req.Title,
		Body:  req.Body,
		URL:   req.URL,
	})
	if err != nil {
		log.Printf("[push] broadcast failed: %v", err)
		response.ErrorCode(c, http.StatusBadGateway, CodeInternalError, "Broadcast failed")
		return
	}
	c.JSON(http.StatusOK, SendResponse{Ok: true, Sent: sent, Failed: failed})
}

// DailyReminder triggers the fixed re-engagement push through OneSignal
func (h *Handler) DailyReminder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), fanoutTimeout)
	defer cancel()

	recipients, err := h.push.SendDailyReminder(ctx)
	if err != nil {
		log.Printf("[push] daily reminder failed: %v", err)
		response.ErrorCode(c, http.StatusBadGateway, CodeInternalError, "Daily reminder failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "recipients": recipients})
}
