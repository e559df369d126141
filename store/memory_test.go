package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"twinclash-api/models"
)

func seedRoom(t *testing.T, s *MemoryDuelStore, code string) *models.DuelRoom {
	t.Helper()
	room := &models.DuelRoom{
		RoomCode:     code,
		HostClientID: "host-1",
		Status:       models.DuelStatusWaiting,
		ExpiresAt:    time.Now().Add(30 * time.Minute),
	}
	if err := s.Insert(context.Background(), room); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	return room
}

func TestMemoryStore_InsertDuplicateCode(t *testing.T) {
	s := NewMemoryDuelStore()
	seedRoom(t, s, "AAAAAA")

	err := s.Insert(context.Background(), &models.DuelRoom{RoomCode: "AAAAAA", HostClientID: "host-2"})
	if !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("want ErrCodeTaken, got %v", err)
	}
}

func TestMemoryStore_ClaimGuestIsConditional(t *testing.T) {
	s := NewMemoryDuelStore()
	ctx := context.Background()
	seedRoom(t, s, "AAAAAA")

	claimed, err := s.ClaimGuest(ctx, "AAAAAA", "guest-1")
	if err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	if claimed.Status != models.DuelStatusPlaying || claimed.GuestClientID == nil {
		t.Fatalf("claim must set guest and flip to playing, got %+v", claimed)
	}

	if _, err := s.ClaimGuest(ctx, "AAAAAA", "guest-2"); !errors.Is(err, ErrConflict) {
		t.Fatalf("second claim: want ErrConflict, got %v", err)
	}
}

func TestMemoryStore_FinalizeIsSingleShot(t *testing.T) {
	s := NewMemoryDuelStore()
	ctx := context.Background()
	seedRoom(t, s, "AAAAAA")
	if _, err := s.ClaimGuest(ctx, "AAAAAA", "guest-1"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	winner := "host-1"
	_, transitioned, err := s.Finalize(ctx, "AAAAAA", &winner)
	if err != nil || !transitioned {
		t.Fatalf("first finalize: want transition, got transitioned=%v err=%v", transitioned, err)
	}

	other := "guest-1"
	room, transitioned, err := s.Finalize(ctx, "AAAAAA", &other)
	if err != nil {
		t.Fatalf("second finalize errored: %v", err)
	}
	if transitioned {
		t.Fatal("second finalize must not transition again")
	}
	if room.WinnerClientID == nil || *room.WinnerClientID != "host-1" {
		t.Fatalf("winner must stay host-1, got %v", room.WinnerClientID)
	}
}

func TestMemoryStore_CancelOnlyActiveRooms(t *testing.T) {
	s := NewMemoryDuelStore()
	ctx := context.Background()
	seedRoom(t, s, "AAAAAA")

	_, transitioned, err := s.Cancel(ctx, "AAAAAA")
	if err != nil || !transitioned {
		t.Fatalf("cancel of waiting room: want transition, got transitioned=%v err=%v", transitioned, err)
	}

	room, transitioned, err := s.Cancel(ctx, "AAAAAA")
	if err != nil {
		t.Fatalf("repeat cancel errored: %v", err)
	}
	if transitioned || room.Status != models.DuelStatusCancelled {
		t.Fatalf("repeat cancel must be a no-op, got transitioned=%v status=%s", transitioned, room.Status)
	}
}

func TestMemoryStore_ExpireBefore(t *testing.T) {
	s := NewMemoryDuelStore()
	ctx := context.Background()

	if err := s.Insert(ctx, &models.DuelRoom{
		RoomCode:     "AAAAAA",
		HostClientID: "host-1",
		Status:       models.DuelStatusWaiting,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	seedRoom(t, s, "BBBBBB")

	expired, err := s.ExpireBefore(ctx, time.Now())
	if err != nil {
		t.Fatalf("ExpireBefore failed: %v", err)
	}
	if len(expired) != 1 || expired[0].RoomCode != "AAAAAA" {
		t.Fatalf("want only AAAAAA expired, got %v", expired)
	}
	if expired[0].Status != models.DuelStatusCancelled {
		t.Fatalf("expired room must be cancelled, got %s", expired[0].Status)
	}
}
