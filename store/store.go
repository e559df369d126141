package store

import (
	"context"
	"errors"
	"time"

	"twinclash-api/models"
)

var (
	// ErrRoomNotFound is returned when no room exists for a code
	ErrRoomNotFound = errors.New("room not found")
	// ErrCodeTaken is returned when an insert hits the room_code unique index
	ErrCodeTaken = errors.New("room code already taken")
	// ErrConflict is returned when a conditional update matched zero rows
	ErrConflict = errors.New("conditional update matched no rows")
)

// DuelStore is the persistence surface for duel rooms. Every mutating call
// that guards on current row state does so inside a single conditional
// UPDATE; callers must treat ErrConflict as "lost the race", not retry
// blindly.
type DuelStore interface {
	Insert(ctx context.Context, room *models.DuelRoom) error
	GetByCode(ctx context.Context, code string) (*models.DuelRoom, error)

	// ClaimGuest sets the guest slot and flips status to playing, only if the
	// room is still waiting with an empty guest slot.
	ClaimGuest(ctx context.Context, code, guestClientID string) (*models.DuelRoom, error)

	// SetResult writes one side's result columns and finish timestamp
	SetResult(ctx context.Context, code, role string, res models.DuelResult, finishedAt time.Time) (*models.DuelRoom, error)

	// Finalize sets the winner and flips status to finished, only if the room
	// is still playing. The bool reports whether this call performed the
	// transition; false with a nil error means another writer finalized first.
	Finalize(ctx context.Context, code string, winnerClientID *string) (*models.DuelRoom, bool, error)

	// Cancel flips a waiting or playing room to cancelled
	Cancel(ctx context.Context, code string) (*models.DuelRoom, bool, error)

	// ExpireBefore cancels rooms whose expiry passed and returns the rooms it
	// transitioned
	ExpireBefore(ctx context.Context, cutoff time.Time) ([]models.DuelRoom, error)
}
