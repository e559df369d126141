package models

import "time"

// Duel room lifecycle. Transitions only move forward:
// waiting -> playing -> finished, or waiting/playing -> cancelled.
const (
	DuelStatusWaiting   = "waiting"
	DuelStatusPlaying   = "playing"
	DuelStatusFinished  = "finished"
	DuelStatusCancelled = "cancelled"
)

// Duel participant roles
const (
	DuelRoleHost  = "host"
	DuelRoleGuest = "guest"
)

// DuelRoom represents a live two-player duel session identified by a short
// shareable room code. Both sides play the same level instance (level + seed)
// and submit their result independently; the winner columns are derived once
// both result slots are present.
type DuelRoom struct {
	ID            string  `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	RoomCode      string  `gorm:"type:varchar(6);uniqueIndex;not null;column:room_code" json:"room_code"`
	WorldID       int     `gorm:"type:integer;not null;column:world_id" json:"world_id"`
	LevelNumber   int     `gorm:"type:integer;not null;column:level_number" json:"level_number"`
	Seed          string  `gorm:"type:varchar(64);not null" json:"seed"`
	HostClientID  string  `gorm:"type:varchar(64);not null;column:host_client_id" json:"host_client_id"`
	GuestClientID *string `gorm:"type:varchar(64);column:guest_client_id" json:"guest_client_id"`
	Status        string  `gorm:"type:varchar(16);not null;default:'waiting'" json:"status"`

	HostWin        *bool      `gorm:"column:host_win" json:"host_win"`
	HostTimeMs     *int64     `gorm:"column:host_time_ms" json:"host_time_ms"`
	HostMoves      *int       `gorm:"column:host_moves" json:"host_moves"`
	HostPairsFound *int       `gorm:"column:host_pairs_found" json:"host_pairs_found"`
	HostFinishedAt *time.Time `gorm:"column:host_finished_at" json:"host_finished_at"`

	GuestWin        *bool      `gorm:"column:guest_win" json:"guest_win"`
	GuestTimeMs     *int64     `gorm:"column:guest_time_ms" json:"guest_time_ms"`
	GuestMoves      *int       `gorm:"column:guest_moves" json:"guest_moves"`
	GuestPairsFound *int       `gorm:"column:guest_pairs_found" json:"guest_pairs_found"`
	GuestFinishedAt *time.Time `gorm:"column:guest_finished_at" json:"guest_finished_at"`

	WinnerClientID *string   `gorm:"type:varchar(64);column:winner_client_id" json:"winner_client_id"`
	CreatedAt      time.Time `gorm:"not null;column:created_at" json:"created_at"`
	ExpiresAt      time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
}

// DuelResult is one side's outcome of a duel level
type DuelResult struct {
	Win        bool  `json:"win"`
	TimeMs     int64 `json:"time_ms"`
	Moves      int   `json:"moves"`
	PairsFound int   `json:"pairs_found"`
}

// HostResult returns the host's result, or nil if the host has not finished
func (r *DuelRoom) HostResult() *DuelResult {
	if r.HostFinishedAt == nil {
		return nil
	}
	return &DuelResult{
		Win:        derefBool(r.HostWin),
		TimeMs:     derefInt64(r.HostTimeMs),
		Moves:      derefInt(r.HostMoves),
		PairsFound: derefInt(r.HostPairsFound),
	}
}

// GuestResult returns the guest's result, or nil if the guest has not finished
func (r *DuelRoom) GuestResult() *DuelResult {
	if r.GuestFinishedAt == nil {
		return nil
	}
	return &DuelResult{
		Win:        derefBool(r.GuestWin),
		TimeMs:     derefInt64(r.GuestTimeMs),
		Moves:      derefInt(r.GuestMoves),
		PairsFound: derefInt(r.GuestPairsFound),
	}
}

// IsExpired reports whether the room is past its lifetime
func (r *DuelRoom) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && now.After(r.ExpiresAt)
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt64(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
