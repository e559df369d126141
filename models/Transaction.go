package models

import "time"

// Transaction statuses
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

// Transaction records one checkout session and its settlement. The session id
// is unique so webhook retries cannot credit coins twice.
type Transaction struct {
	ID                  string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	SessionID           string    `gorm:"type:varchar(255);uniqueIndex;not null;column:session_id" json:"session_id"`
	ClientID            string    `gorm:"type:varchar(64);not null;column:client_id" json:"client_id"`
	PackageID           string    `gorm:"type:varchar(32);not null;column:package_id" json:"package_id"`
	Coins               int64     `gorm:"type:bigint;not null" json:"coins"`
	AmountCents         int64     `gorm:"type:bigint;not null;column:amount_cents" json:"amount_cents"`
	Status              string    `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	StripePaymentStatus string    `gorm:"type:varchar(32);column:stripe_payment_status" json:"stripe_payment_status"`
	CreatedAt           time.Time `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;column:updated_at" json:"updated_at"`
}
