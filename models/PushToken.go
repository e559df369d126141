package models

import "time"

// PushToken is one registered push subscription. Tokens are upserted on the
// token value itself; last_seen is refreshed on every registration so stale
// subscriptions age out of the fan-out window.
type PushToken struct {
	Token     string    `gorm:"type:varchar(512);primary_key" json:"token"`
	ClientID  *string   `gorm:"type:varchar(64);column:client_id" json:"client_id"`
	Platform  string    `gorm:"type:varchar(16);not null;default:'web'" json:"platform"`
	Locale    *string   `gorm:"type:varchar(16)" json:"locale"`
	UserAgent string    `gorm:"type:varchar(512);column:user_agent" json:"user_agent"`
	LastSeen  time.Time `gorm:"not null;index;column:last_seen" json:"last_seen"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}
