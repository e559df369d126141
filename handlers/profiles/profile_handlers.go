package profiles

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

const databaseTimeout = 5 * time.Second

// Error codes returned in the JSON error body
const (
	CodeInvalidClientID   = "INVALID_CLIENT_ID"
	CodeInvalidWorld      = "INVALID_WORLD"
	CodeInsufficientCoins = "INSUFFICIENT_COINS"
	CodeInternalError     = "INTERNAL_ERROR"
)

// UnlockWorldRequest is the body for buying access to a world
type UnlockWorldRequest struct {
	WorldID int `json:"world_id" binding:"required"`
}

// GetProfile returns a client's coins and unlocked worlds, creating the
// profile on first sight
func (h *Handler) GetProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	profile, err := h.profiles.GetOrCreate(ctx, c.Param("client_id"))
	if errors.Is(err, services.ErrInvalidClientID) {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidClientID, "Invalid client id")
		return
	}
	if err != nil {
		log.Printf("[profiles] fetch failed: %v", err)
		response.ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "Could not load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UnlockWorld spends coins to unlock a world for a client
func (h *Handler) UnlockWorld(c *gin.Context) {
	var req UnlockWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidWorld, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	profile, err := h.profiles.UnlockWorld(ctx, c.Param("client_id"), req.WorldID)
	switch {
	case errors.Is(err, services.ErrInvalidClientID):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidClientID, "Invalid client id")
	case errors.Is(err, services.ErrInvalidWorld):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidWorld, "Unknown world")
	case errors.Is(err, services.ErrInsufficientCoins):
		response.ErrorCode(c, http.StatusPaymentRequired, CodeInsufficientCoins, "Not enough coins")
	case err != nil:
		log.Printf("[profiles] unlock failed: %v", err)
		response.ErrorCode(c, http.StatusInternalServerError, CodeInternalError, "Could not unlock world")
	default:
		c.JSON(http.StatusOK, profile)
	}
}
