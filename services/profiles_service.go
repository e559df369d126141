package services

import (
	"context"
	"errors"

	"twinclash-api/config"
	"twinclash-api/models"
	"twinclash-api/store"
)

var (
	ErrInvalidWorld      = errors.New("invalid world id")
	ErrInsufficientCoins = errors.New("not enough coins")
)

// ProfileService owns the per-client economy state: coin balance and
// unlocked worlds
type ProfileService struct {
	store store.EconomyStore
}

func NewProfileService(st store.EconomyStore) *ProfileService {
	return &ProfileService{store: st}
}

// GetOrCreate returns the profile for a client id, creating it with the
// first world unlocked on first sight
func (s *ProfileService) GetOrCreate(ctx context.Context, clientID string) (*models.Profile, error) {
	if !validClientID(clientID) {
		return nil, ErrInvalidClientID
	}
	return s.store.GetOrCreateProfile(ctx, &models.Profile{
		ClientID:       clientID,
		UnlockedWorlds: []int{1},
	})
}

// CreditCoins adds coins to a profile, creating it if missing. The increment
// is a single atomic UPDATE so concurrent credits cannot lose updates.
func (s *ProfileService) CreditCoins(ctx context.Context, clientID string, amount int64) (*models.Profile, error) {
	if _, err := s.GetOrCreate(ctx, clientID); err != nil {
		return nil, err
	}
	if err := s.store.CreditCoins(ctx, clientID, amount); err != nil {
		return nil, err
	}
	return s.GetOrCreate(ctx, clientID)
}

// UnlockWorld debits the world's coin cost and records the unlock. Each
// world has its own price; world 1 is free. Idempotent if the world is
// already unlocked; the row is locked for the check-and-debit so two
// concurrent unlocks cannot double-spend.
func (s *ProfileService) UnlockWorld(ctx context.Context, clientID string, worldID int) (*models.Profile, error) {
	cost, ok := config.WorldCosts[worldID]
	if !ok {
		return nil, ErrInvalidWorld
	}
	if _, err := s.GetOrCreate(ctx, clientID); err != nil {
		return nil, err
	}

	profile, _, err := s.store.SpendOnWorld(ctx, clientID, worldID, cost)
	if errors.Is(err, store.ErrInsufficientCoins) {
		return nil, ErrInsufficientCoins
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
