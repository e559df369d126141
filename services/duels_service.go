package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"twinclash-api/config"
	"twinclash-api/metrics"
	"twinclash-api/models"
	"twinclash-api/store"

	"github.com/google/uuid"
)

// Room codes avoid characters that read ambiguously on a shared screen
// (I/O/0/1).
const (
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 6
)

var (
	ErrInvalidClientID       = errors.New("invalid client id")
	ErrInvalidLevel          = errors.New("invalid level")
	ErrInvalidRoomCode       = errors.New("invalid room code")
	ErrInvalidRole           = errors.New("invalid role")
	ErrRoomNotFound          = errors.New("room not found")
	ErrRoomNotWaiting        = errors.New("room is not waiting for players")
	ErrRoomFull              = errors.New("room already has a guest")
	ErrRoomNoLongerAvailable = errors.New("room no longer available")
	ErrFailedToGenerateCode  = errors.New("could not allocate a room code")
	ErrNotParticipant        = errors.New("client is not part of this room")
)

// RoomPublisher delivers row snapshots to realtime observers
type RoomPublisher interface {
	PublishRoom(roomCode string, room *models.DuelRoom)
}

// DuelService owns the duel room lifecycle: allocation, join, result
// submission and cancellation. All cross-client races are settled by the
// store's conditional updates, never by in-process locking.
type DuelService struct {
	store  store.DuelStore
	pub    RoomPublisher
	limits config.DuelLimitsConfig

	now      func() time.Time
	makeCode func() (string, error)
}

func NewDuelService(st store.DuelStore, pub RoomPublisher, limits config.DuelLimitsConfig) *DuelService {
	return &DuelService{
		store:    st,
		pub:      pub,
		limits:   limits,
		now:      time.Now,
		makeCode: GenerateRoomCode,
	}
}

// GenerateRoomCode produces a 6-character code from the fixed alphabet
func GenerateRoomCode() (string, error) {
	code := make([]byte, roomCodeLength)
	for i := 0; i < roomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomCodeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// CreateRoom allocates a fresh room for the host. Code collisions are retried
// up to the configured bound; exhaustion surfaces as ErrFailedToGenerateCode
// so the caller can tell it apart from a plain database failure.
func (s *DuelService) CreateRoom(ctx context.Context, hostClientID string, worldID, levelNumber int) (*models.DuelRoom, error) {
	if !validClientID(hostClientID) {
		return nil, ErrInvalidClientID
	}
	if worldID < 1 || worldID > s.limits.MaxWorldID || levelNumber < 1 || levelNumber > s.limits.MaxLevel {
		return nil, ErrInvalidLevel
	}

	now := s.now().UTC()
	for attempt := 0; attempt < s.limits.CodeAttempts; attempt++ {
		code, err := s.makeCode()
		if err != nil {
			return nil, ErrFailedToGenerateCode
		}

		room := &models.DuelRoom{
			RoomCode:     code,
			WorldID:      worldID,
			LevelNumber:  levelNumber,
			Seed:         fmt.Sprintf("duel-%s", uuid.New()),
			HostClientID: hostClientID,
			Status:       models.DuelStatusWaiting,
			CreatedAt:    now,
			ExpiresAt:    now.Add(s.limits.RoomLifetime),
		}

		err = s.store.Insert(ctx, room)
		if err == nil {
			metrics.DuelRoomsCreated.Inc()
			return room, nil
		}
		if errors.Is(err, store.ErrCodeTaken) {
			log.Printf("[duels] room code collision on %s, regenerating", code)
			continue
		}
		return nil, err
	}
	return nil, ErrFailedToGenerateCode
}

// GetRoom returns the current row for a code
func (s *DuelService) GetRoom(ctx context.Context, roomCode string) (*models.DuelRoom, error) {
	code, err := NormalizeRoomCode(roomCode)
	if err != nil {
		return nil, err
	}
	room, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// JoinRoom claims the guest slot. A rejoining host is an idempotent no-op.
// The claim itself is a conditional update; losing that race surfaces as
// ErrRoomNoLongerAvailable even if the precheck looked fine.
func (s *DuelService) JoinRoom(ctx context.Context, roomCode, clientID string) (*models.DuelRoom, error) {
	if !validClientID(clientID) {
		return nil, ErrInvalidClientID
	}
	code, err := NormalizeRoomCode(roomCode)
	if err != nil {
		return nil, err
	}

	room, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if room.HostClientID == clientID {
		// Host reconnect: return current state unchanged
		return room, nil
	}
	if room.GuestClientID != nil && *room.GuestClientID == clientID {
		// Guest reconnect after losing their session
		return room, nil
	}
	if room.Status != models.DuelStatusWaiting {
		return nil, ErrRoomNotWaiting
	}
	if room.GuestClientID != nil {
		return nil, ErrRoomFull
	}

	claimed, err := s.store.ClaimGuest(ctx, code, clientID)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrRoomNoLongerAvailable
		}
		return nil, err
	}

	s.publish(claimed)
	return claimed, nil
}

// SubmitResult records one side's result. Once both finish timestamps are
// present the winner is computed and the room finalized through a single
// conditional update, so two near-simultaneous submissions cannot
// double-compute the winner.
func (s *DuelService) SubmitResult(ctx context.Context, roomCode, role string, res models.DuelResult) (*models.DuelRoom, error) {
	if role != models.DuelRoleHost && role != models.DuelRoleGuest {
		return nil, ErrInvalidRole
	}
	code, err := NormalizeRoomCode(roomCode)
	if err != nil {
		return nil, err
	}

	room, err := s.store.SetResult(ctx, code, role, res, s.now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	hostRes, guestRes := room.HostResult(), room.GuestResult()
	winner, ok := DetermineWinner(hostRes, guestRes)
	if !ok {
		s.publish(room)
		return room, nil
	}

	var winnerClientID *string
	switch winner {
	case WinnerHost:
		winnerClientID = &room.HostClientID
	case WinnerGuest:
		winnerClientID = room.GuestClientID
	}

	final, transitioned, err := s.store.Finalize(ctx, code, winnerClientID)
	if err != nil {
		return nil, err
	}
	if transitioned {
		metrics.DuelsFinished.WithLabelValues(string(winner)).Inc()
		log.Printf("[duels] duel %s finished, outcome=%s", code, winner)
	}
	s.publish(final)
	return final, nil
}

// CancelRoom flips a waiting or playing room to cancelled. Only a
// participant may cancel; cancelling an already finished or cancelled room
// is a no-op.
func (s *DuelService) CancelRoom(ctx context.Context, roomCode, clientID string) (*models.DuelRoom, error) {
	code, err := NormalizeRoomCode(roomCode)
	if err != nil {
		return nil, err
	}

	room, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.HostClientID != clientID && (room.GuestClientID == nil || *room.GuestClientID != clientID) {
		return nil, ErrNotParticipant
	}

	cancelled, transitioned, err := s.store.Cancel(ctx, code)
	if err != nil {
		return nil, err
	}
	if transitioned {
		s.publish(cancelled)
	}
	return cancelled, nil
}

// ExpireStale cancels rooms past their lifetime and notifies their observers.
// Run periodically by housekeeping.
func (s *DuelService) ExpireStale(ctx context.Context) (int, error) {
	expired, err := s.store.ExpireBefore(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	for i := range expired {
		s.publish(&expired[i])
	}
	return len(expired), nil
}

func (s *DuelService) publish(room *models.DuelRoom) {
	if s.pub != nil && room != nil {
		s.pub.PublishRoom(room.RoomCode, room)
	}
}

func validClientID(clientID string) bool {
	return clientID != "" && len(clientID) <= 64
}

// NormalizeRoomCode canonicalizes a client-supplied room code. The result is
// the form rooms are stored and published under.
func NormalizeRoomCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != roomCodeLength {
		return "", ErrInvalidRoomCode
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(roomCodeAlphabet, rune(code[i])) {
			return "", ErrInvalidRoomCode
		}
	}
	return code, nil
}
