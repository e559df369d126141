package store

import (
	"context"
	"sync"
	"time"

	"twinclash-api/models"
)

// MemoryDuelStore is a mutex-guarded in-memory DuelStore with the same
// conditional-update semantics as the Postgres implementation. Used by tests.
type MemoryDuelStore struct {
	mu    sync.Mutex
	rooms map[string]*models.DuelRoom
}

func NewMemoryDuelStore() *MemoryDuelStore {
	return &MemoryDuelStore{rooms: make(map[string]*models.DuelRoom)}
}

func (s *MemoryDuelStore) Insert(ctx context.Context, room *models.DuelRoom) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[room.RoomCode]; exists {
		return ErrCodeTaken
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now().UTC()
	}
	cp := *room
	s.rooms[room.RoomCode] = &cp
	return nil
}

func (s *MemoryDuelStore) GetByCode(ctx context.Context, code string) (*models.DuelRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *room
	return &cp, nil
}

func (s *MemoryDuelStore) ClaimGuest(ctx context.Context, code, guestClientID string) (*models.DuelRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok || room.Status != models.DuelStatusWaiting || room.GuestClientID != nil {
		return nil, ErrConflict
	}
	guest := guestClientID
	room.GuestClientID = &guest
	room.Status = models.DuelStatusPlaying
	cp := *room
	return &cp, nil
}

func (s *MemoryDuelStore) SetResult(ctx context.Context, code, role string, res models.DuelResult, finishedAt time.Time) (*models.DuelRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}

	win, timeMs, moves, pairs, at := res.Win, res.TimeMs, res.Moves, res.PairsFound, finishedAt
	switch role {
	case models.DuelRoleHost:
		room.HostWin = &win
		room.HostTimeMs = &timeMs
		room.HostMoves = &moves
		room.HostPairsFound = &pairs
		room.HostFinishedAt = &at
	case models.DuelRoleGuest:
		room.GuestWin = &win
		room.GuestTimeMs = &timeMs
		room.GuestMoves = &moves
		room.GuestPairsFound = &pairs
		room.GuestFinishedAt = &at
	}
	cp := *room
	return &cp, nil
}

func (s *MemoryDuelStore) Finalize(ctx context.Context, code string, winnerClientID *string) (*models.DuelRoom, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	if room.Status != models.DuelStatusPlaying {
		cp := *room
		return &cp, false, nil
	}
	room.Status = models.DuelStatusFinished
	room.WinnerClientID = winnerClientID
	cp := *room
	return &cp, true, nil
}

func (s *MemoryDuelStore) Cancel(ctx context.Context, code string) (*models.DuelRoom, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[code]
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	if room.Status != models.DuelStatusWaiting && room.Status != models.DuelStatusPlaying {
		cp := *room
		return &cp, false, nil
	}
	room.Status = models.DuelStatusCancelled
	cp := *room
	return &cp, true, nil
}

func (s *MemoryDuelStore) ExpireBefore(ctx context.Context, cutoff time.Time) ([]models.DuelRoom, error) {
	s.mu.Lock()
	codes := make([]string, 0)
	for code, room := range s.rooms {
		if (room.Status == models.DuelStatusWaiting || room.Status == models.DuelStatusPlaying) &&
			room.ExpiresAt.Before(cutoff) {
			codes = append(codes, code)
		}
	}
	s.mu.Unlock()

	expired := make([]models.DuelRoom, 0, len(codes))
	for _, code := range codes {
		room, ok, err := s.Cancel(ctx, code)
		if err != nil {
			return expired, err
		}
		if ok {
			expired = append(expired, *room)
		}
	}
	return expired, nil
}
