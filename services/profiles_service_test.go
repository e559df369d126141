package services

import (
	"context"
	"errors"
	"testing"

	"twinclash-api/config"
	"twinclash-api/store"
)

func newTestProfiles() *ProfileService {
	return NewProfileService(store.NewMemoryEconomyStore())
}

func TestGetOrCreate_Defaults(t *testing.T) {
	svc := newTestProfiles()

	profile, err := svc.GetOrCreate(context.Background(), "client-a")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if profile.Coins != 0 {
		t.Fatalf("want 0 starting coins, got %d", profile.Coins)
	}
	if !profile.HasWorld(1) {
		t.Fatal("want world 1 unlocked on first sight")
	}
	if len(profile.UnlockedWorlds) != 1 {
		t.Fatalf("want only world 1 unlocked, got %v", profile.UnlockedWorlds)
	}

	if _, err := svc.GetOrCreate(context.Background(), ""); !errors.Is(err, ErrInvalidClientID) {
		t.Fatalf("want ErrInvalidClientID for empty client id, got %v", err)
	}
}

func TestCreditCoins_Accumulates(t *testing.T) {
	svc := newTestProfiles()

	if _, err := svc.CreditCoins(context.Background(), "client-a", 550); err != nil {
		t.Fatalf("CreditCoins failed: %v", err)
	}
	profile, err := svc.CreditCoins(context.Background(), "client-a", 100)
	if err != nil {
		t.Fatalf("CreditCoins failed: %v", err)
	}
	if profile.Coins != 650 {
		t.Fatalf("want 650 coins, got %d", profile.Coins)
	}
}

func TestUnlockWorld_DebitsPerWorldCost(t *testing.T) {
	svc := newTestProfiles()
	ctx := context.Background()

	if _, err := svc.CreditCoins(ctx, "client-a", 800); err != nil {
		t.Fatalf("CreditCoins failed: %v", err)
	}

	// World 2 costs 300, world 3 costs 500
	profile, err := svc.UnlockWorld(ctx, "client-a", 2)
	if err != nil {
		t.Fatalf("UnlockWorld(2) failed: %v", err)
	}
	if profile.Coins != 500 {
		t.Fatalf("want 500 coins after 300 debit, got %d", profile.Coins)
	}
	if !profile.HasWorld(2) {
		t.Fatal("want world 2 unlocked")
	}

	profile, err = svc.UnlockWorld(ctx, "client-a", 3)
	if err != nil {
		t.Fatalf("UnlockWorld(3) failed: %v", err)
	}
	if profile.Coins != 0 {
		t.Fatalf("want 0 coins after 500 debit, got %d", profile.Coins)
	}
}

func TestUnlockWorld_InsufficientCoins(t *testing.T) {
	svc := newTestProfiles()
	ctx := context.Background()

	if _, err := svc.CreditCoins(ctx, "client-a", 299); err != nil {
		t.Fatalf("CreditCoins failed: %v", err)
	}

	if _, err := svc.UnlockWorld(ctx, "client-a", 2); !errors.Is(err, ErrInsufficientCoins) {
		t.Fatalf("want ErrInsufficientCoins with 299 coins for a 300 world, got %v", err)
	}

	// The failed attempt must not touch the balance
	profile, err := svc.GetOrCreate(ctx, "client-a")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if profile.Coins != 299 {
		t.Fatalf("want 299 coins untouched, got %d", profile.Coins)
	}
	if profile.HasWorld(2) {
		t.Fatal("world 2 must stay locked after a failed debit")
	}
}

func TestUnlockWorld_AlreadyUnlockedIsIdempotent(t *testing.T) {
	svc := newTestProfiles()
	ctx := context.Background()

	if _, err := svc.CreditCoins(ctx, "client-a", 1000); err != nil {
		t.Fatalf("CreditCoins failed: %v", err)
	}
	first, err := svc.UnlockWorld(ctx, "client-a", 2)
	if err != nil {
		t.Fatalf("UnlockWorld failed: %v", err)
	}

	second, err := svc.UnlockWorld(ctx, "client-a", 2)
	if err != nil {
		t.Fatalf("repeat UnlockWorld failed: %v", err)
	}
	if second.Coins != first.Coins {
		t.Fatalf("repeat unlock debited again: %d then %d coins", first.Coins, second.Coins)
	}
}

func TestUnlockWorld_FirstWorldIsFree(t *testing.T) {
	svc := newTestProfiles()

	// World 1 is unlocked at creation; asking again costs nothing
	profile, err := svc.UnlockWorld(context.Background(), "client-a", 1)
	if err != nil {
		t.Fatalf("UnlockWorld(1) failed: %v", err)
	}
	if profile.Coins != 0 || !profile.HasWorld(1) {
		t.Fatalf("want free world 1 with 0 coins, got %d coins, worlds %v", profile.Coins, profile.UnlockedWorlds)
	}
}

func TestUnlockWorld_UnknownWorld(t *testing.T) {
	svc := newTestProfiles()
	for _, worldID := range []int{0, -1, len(config.WorldCosts) + 1} {
		if _, err := svc.UnlockWorld(context.Background(), "client-a", worldID); !errors.Is(err, ErrInvalidWorld) {
			t.Fatalf("want ErrInvalidWorld for world %d, got %v", worldID, err)
		}
	}
}
