package duels

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"twinclash-api/realtime"
	"twinclash-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ObserveRoom handles WebSocket observers for a specific duel room. The
// first frame is the current snapshot (null if the room does not exist);
// every later frame is a full replacement snapshot.
func (h *Handler) ObserveRoom(c *gin.Context) {
	// Subscriptions are keyed on the same canonical code rooms are
	// published under
	roomCode, err := services.NormalizeRoomCode(c.Param("code"))
	if err != nil {
		h.duelError(c, err, CodeDBError)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databaseTimeout)
	room, err := h.duels.GetRoom(ctx, roomCode)
	cancel()
	if err != nil && !errors.Is(err, services.ErrRoomNotFound) {
		h.duelError(c, err, CodeDBError)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[duels] WebSocket upgrade error: %v", err)
		return
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(realtime.RoomSnapshot{RoomCode: roomCode, Room: room}); err != nil {
		conn.Close()
		return
	}
	conn.SetWriteDeadline(time.Time{})

	h.hub.Subscribe(roomCode, conn)
	defer func() {
		h.hub.Unsubscribe(roomCode, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
