package config

import "time"

// Duel lifecycle limits
type DuelLimitsConfig struct {
	CodeAttempts int           // Bounded retries when a generated room code collides
	RoomLifetime time.Duration // A room past this age is cancelled by housekeeping
	MaxWorldID   int           // Highest world a duel level can come from
	MaxLevel     int           // Highest level number inside a world
}

var DefaultDuelLimits = DuelLimitsConfig{
	CodeAttempts: 3,
	RoomLifetime: 30 * time.Minute,
	MaxWorldID:   12,
	MaxLevel:     20,
}
