package duels

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"twinclash-api/config"
	"twinclash-api/models"
	"twinclash-api/realtime"
	"twinclash-api/services"
	"twinclash-api/store"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	hub := realtime.NewHub()
	svc := services.NewDuelService(store.NewMemoryDuelStore(), hub, config.DefaultDuelLimits)
	h := NewHandler(svc, hub)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeRoom(t *testing.T, w *httptest.ResponseRecorder) models.DuelRoom {
	t.Helper()
	var room models.DuelRoom
	if err := json.Unmarshal(w.Body.Bytes(), &room); err != nil {
		t.Fatalf("decoding room from %s: %v", w.Body.String(), err)
	}
	return room
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body from %s: %v", w.Body.String(), err)
	}
	return body.Code
}

func createRoom(t *testing.T, r *gin.Engine, host string) models.DuelRoom {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/duels", CreateRoomRequest{
		ClientID: host, WorldID: 1, LevelNumber: 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeRoom(t, w)
}

func TestCreateRoom_HTTP(t *testing.T) {
	r := newTestRouter()
	room := createRoom(t, r, "host-1")

	if room.Status != models.DuelStatusWaiting {
		t.Fatalf("want status waiting, got %s", room.Status)
	}
	if len(room.RoomCode) != 6 {
		t.Fatalf("want a 6-character room code, got %q", room.RoomCode)
	}
}

func TestCreateRoom_RejectsBadLevel(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/duels", CreateRoomRequest{
		ClientID: "host-1", WorldID: 99, LevelNumber: 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != CodeInvalidLevel {
		t.Fatalf("want %s, got %s", CodeInvalidLevel, code)
	}
}

func TestJoinRoom_HTTP(t *testing.T) {
	r := newTestRouter()
	room := createRoom(t, r, "host-1")

	w := doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/join", JoinRoomRequest{ClientID: "guest-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("join: want 200, got %d: %s", w.Code, w.Body.String())
	}
	joined := decodeRoom(t, w)
	if joined.Status != models.DuelStatusPlaying {
		t.Fatalf("want status playing, got %s", joined.Status)
	}

	// Unknown code
	w = doJSON(t, r, http.MethodPost, "/api/v1/duels/ZZZZZZ/join", JoinRoomRequest{ClientID: "guest-1"})
	if w.Code != http.StatusNotFound || errorCode(t, w) != CodeRoomNotFound {
		t.Fatalf("unknown code: want 404/%s, got %d/%s", CodeRoomNotFound, w.Code, errorCode(t, w))
	}

	// Third client on a playing room
	w = doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/join", JoinRoomRequest{ClientID: "guest-2"})
	if w.Code != http.StatusConflict || errorCode(t, w) != CodeRoomNotWaiting {
		t.Fatalf("full room: want 409/%s, got %d/%s", CodeRoomNotWaiting, w.Code, errorCode(t, w))
	}
}

func TestResultFlow_HTTP(t *testing.T) {
	r := newTestRouter()
	room := createRoom(t, r, "host-1")
	doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/join", JoinRoomRequest{ClientID: "guest-1"})

	w := doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/result", SubmitResultRequest{
		Role: models.DuelRoleHost, Win: true, TimeMs: 30000, Moves: 10, PairsFound: 8,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("host result: want 200, got %d: %s", w.Code, w.Body.String())
	}
	if decodeRoom(t, w).Status != models.DuelStatusPlaying {
		t.Fatal("room must stay playing until both results are in")
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/result", SubmitResultRequest{
		Role: models.DuelRoleGuest, Win: true, TimeMs: 45000, Moves: 8, PairsFound: 8,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("guest result: want 200, got %d: %s", w.Code, w.Body.String())
	}
	final := decodeRoom(t, w)
	if final.Status != models.DuelStatusFinished {
		t.Fatalf("want status finished, got %s", final.Status)
	}
	if final.WinnerClientID == nil || *final.WinnerClientID != "host-1" {
		t.Fatalf("want winner host-1, got %v", final.WinnerClientID)
	}

	// GET reflects the finished row
	w = doJSON(t, r, http.MethodGet, "/api/v1/duels/"+room.RoomCode, nil)
	if w.Code != http.StatusOK || decodeRoom(t, w).Status != models.DuelStatusFinished {
		t.Fatalf("get after finish: want finished row, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitResult_RejectsBadRole(t *testing.T) {
	r := newTestRouter()
	room := createRoom(t, r, "host-1")

	w := doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/result", SubmitResultRequest{
		Role: "spectator", TimeMs: 1000, Moves: 1, PairsFound: 1,
	})
	if w.Code != http.StatusBadRequest || errorCode(t, w) != CodeInvalidRole {
		t.Fatalf("want 400/%s, got %d/%s", CodeInvalidRole, w.Code, errorCode(t, w))
	}
}

func TestCancelRoom_HTTP(t *testing.T) {
	r := newTestRouter()
	room := createRoom(t, r, "host-1")

	w := doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/cancel", CancelRoomRequest{ClientID: "stranger"})
	if w.Code != http.StatusForbidden || errorCode(t, w) != CodeUnauthorized {
		t.Fatalf("stranger cancel: want 403/%s, got %d/%s", CodeUnauthorized, w.Code, errorCode(t, w))
	}

	w = doJSON(t, r, http.MethodPost, "/api/v1/duels/"+room.RoomCode+"/cancel", CancelRoomRequest{ClientID: "host-1"})
	if w.Code != http.StatusOK {
		t.Fatalf("host cancel: want 200, got %d: %s", w.Code, w.Body.String())
	}
	if decodeRoom(t, w).Status != models.DuelStatusCancelled {
		t.Fatal("want status cancelled")
	}
}

func TestGetRoom_BadCode(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/duels/%s", "short"), nil)
	if w.Code != http.StatusBadRequest || errorCode(t, w) != CodeInvalidRoomCode {
		t.Fatalf("want 400/%s, got %d/%s", CodeInvalidRoomCode, w.Code, errorCode(t, w))
	}
}
