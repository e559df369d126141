package duels

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"twinclash-api/models"
	"twinclash-api/services"
	"twinclash-api/utils/response"

	"github.com/gin-gonic/gin"
)

const databaseTimeout = 5 * time.Second

// CreateRoom opens a duel room and returns it with its shareable code
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeFailedToCreateRoom, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	room, err := h.duels.CreateRoom(ctx, req.ClientID, req.WorldID, req.LevelNumber)
	if err != nil {
		h.duelError(c, err, CodeFailedToCreateRoom)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetRoom returns the current state of a room
func (h *Handler) GetRoom(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	room, err := h.duels.GetRoom(ctx, c.Param("code"))
	if err != nil {
		h.duelError(c, err, CodeDBError)
		return
	}
	c.JSON(http.StatusOK, room)
}

// JoinRoom claims the guest slot. Rejoining as the host returns the room
// unchanged.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidClientID, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	room, err := h.duels.JoinRoom(ctx, c.Param("code"), req.ClientID)
	if err != nil {
		h.duelError(c, err, CodeDBError)
		return
	}
	c.JSON(http.StatusOK, room)
}

// SubmitResult stores one side's run and finalizes the duel once both sides
// have reported
func (h *Handler) SubmitResult(c *gin.Context) {
	var req SubmitResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeFailedToSubmitResult, "Invalid request body")
		return
	}
	if req.TimeMs < 0 || req.Moves < 0 || req.PairsFound < 0 {
		response.ErrorCode(c, http.StatusBadRequest, CodeFailedToSubmitResult, "Result values cannot be negative")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	room, err := h.duels.SubmitResult(ctx, c.Param("code"), req.Role, models.DuelResult{
		Win:        req.Win,
		TimeMs:     req.TimeMs,
		Moves:      req.Moves,
		PairsFound: req.PairsFound,
	})
	if err != nil {
		h.duelError(c, err, CodeFailedToSubmitResult)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CancelRoom cancels a waiting or playing room on behalf of a participant
func (h *Handler) CancelRoom(c *gin.Context) {
	var req CancelRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidClientID, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	defer cancel()

	room, err := h.duels.CancelRoom(ctx, c.Param("code"), req.ClientID)
	if err != nil {
		h.duelError(c, err, CodeDBError)
		return
	}
	c.JSON(http.StatusOK, room)
}

// duelError maps service errors onto the HTTP error taxonomy. fallback is the
// code used for errors the taxonomy does not name.
func (h *Handler) duelError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidClientID):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidClientID, "Invalid client id")
	case errors.Is(err, services.ErrInvalidLevel):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidLevel, "Invalid world or level")
	case errors.Is(err, services.ErrInvalidRoomCode):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidRoomCode, "Invalid room code")
	case errors.Is(err, services.ErrInvalidRole):
		response.ErrorCode(c, http.StatusBadRequest, CodeInvalidRole, "Role must be host or guest")
	case errors.Is(err, services.ErrRoomNotFound):
		response.ErrorCode(c, http.StatusNotFound, CodeRoomNotFound, "Room not found")
	case errors.Is(err, services.ErrRoomNotWaiting):
		response.ErrorCode(c, http.StatusConflict, CodeRoomNotWaiting, "Room is not waiting for players")
	case errors.Is(err, services.ErrRoomFull):
		response.ErrorCode(c, http.StatusConflict, CodeRoomFull, "Room already has a guest")
	case errors.Is(err, services.ErrRoomNoLongerAvailable):
		response.ErrorCode(c, http.StatusConflict, CodeRoomNoLongerAvailable, "Room is no longer available")
	case errors.Is(err, services.ErrFailedToGenerateCode):
		response.ErrorCode(c, http.StatusServiceUnavailable, CodeFailedToGenerateCode, "Could not allocate a room code")
	case errors.Is(err, services.ErrNotParticipant):
		response.ErrorCode(c, http.StatusForbidden, CodeUnauthorized, "Client is not part of this room")
	default:
		log.Printf("[duels] %s %s: %v", c.Request.Method, c.FullPath(), err)
		response.ErrorCode(c, http.StatusInternalServerError, fallback, "Something went wrong")
	}
}
