package models

import "time"

// Profile holds a player's server-side economy state, keyed by the opaque
// anonymous client id the app generates on first launch
type Profile struct {
	ID             string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	ClientID       string    `gorm:"type:varchar(64);uniqueIndex;not null;column:client_id" json:"client_id"`
	Coins          int64     `gorm:"type:bigint;not null;default:0" json:"coins"`
	UnlockedWorlds []int     `gorm:"serializer:json;type:jsonb;column:unlocked_worlds" json:"unlocked_worlds"`
	CreatedAt      time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}

// HasWorld reports whether the given world is already unlocked
func (p *Profile) HasWorld(worldID int) bool {
	for _, w := range p.UnlockedWorlds {
		if w == worldID {
			return true
		}
	}
	return false
}
