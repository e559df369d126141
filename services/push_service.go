package services

import (
	"context"
	"errors"
	"log"
	"time"

	"twinclash-api/metrics"
	"twinclash-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// Tokens not seen within this window are skipped by broadcasts
	pushActiveWindow = 30 * 24 * time.Hour
	// FCM batch size per multicast call
	pushBatchSize  = 500
	minTokenLength = 20
)

var ErrInvalidToken = errors.New("push token appears to be invalid")

// Messenger is the multicast side of a push provider
type Messenger interface {
	SendMulticast(ctx context.Context, tokens []string, n Notification) (*MulticastResult, error)
}

// ReminderSender is the broadcast-to-segment side of a push provider
type ReminderSender interface {
	SendDailyReminder(ctx context.Context) (int, error)
}

// PushService owns push token registration and fan-out
type PushService struct {
	db       *gorm.DB
	fcm      Messenger
	reminder ReminderSender
}

func NewPushService(db *gorm.DB, fcm Messenger, reminder ReminderSender) *PushService {
	return &PushService{db: db, fcm: fcm, reminder: reminder}
}

// RegisterToken upserts a push subscription keyed on the token value,
// refreshing last_seen. Optional fields only overwrite when provided.
func (s *PushService) RegisterToken(ctx context.Context, token, clientID, platform, locale, userAgent string) error {
	if len(token) < minTokenLength {
		return ErrInvalidToken
	}
	if platform == "" {
		platform = "web"
	}

	now := time.Now().UTC()
	record := models.PushToken{
		Token:     token,
		Platform:  platform,
		UserAgent: userAgent,
		LastSeen:  now,
		CreatedAt: now,
	}
	assignments := map[string]interface{}{
		"platform":   platform,
		"user_agent": userAgent,
		"last_seen":  now,
	}
	if clientID != "" {
		record.ClientID = &clientID
		assignments["client_id"] = clientID
	}
	if locale != "" {
		record.Locale = &locale
		assignments["locale"] = locale
	}

	start := time.Now()
	defer metrics.RecordDBOperation("upsert", "push_tokens", start)

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&record).Error
}

// Broadcast fans one notification out to every token seen within the active
// window, in batches. Tokens the provider reports as gone are deleted.
func (s *PushService) Broadcast(ctx context.Context, n Notification) (sent, failed int, err error) {
	cutoff := time.Now().UTC().Add(-pushActiveWindow)

	var tokens []string
	if err := s.db.WithContext(ctx).Model(&models.PushToken{}).
		Where("last_seen >= ?", cutoff).
		Pluck("token", &tokens).Error; err != nil {
		return 0, 0, err
	}
	if len(tokens) == 0 {
		return 0, 0, nil
	}

	log.Printf("[push] broadcasting to %d tokens", len(tokens))

	var invalid []string
	for _, batch := range chunkTokens(tokens, pushBatchSize) {
		res, err := s.fcm.SendMulticast(ctx, batch, n)
		if err != nil {
			// A failed batch counts wholesale; later batches still go out
			log.Printf("[push] batch send failed: %v", err)
			failed += len(batch)
			metrics.PushNotificationsSent.WithLabelValues("fcm", "error").Add(float64(len(batch)))
			continue
		}
		sent += res.Success
		failed += res.Failure
		invalid = append(invalid, res.InvalidTokens...)
		metrics.PushNotificationsSent.WithLabelValues("fcm", "ok").Add(float64(res.Success))
		metrics.PushNotificationsSent.WithLabelValues("fcm", "error").Add(float64(res.Failure))
	}

	if len(invalid) > 0 {
		log.Printf("[push] removing %d invalid tokens", len(invalid))
		if err := s.db.WithContext(ctx).Where("token IN ?", invalid).
			Delete(&models.PushToken{}).Error; err != nil {
			log.Printf("[push] failed to remove invalid tokens: %v", err)
		}
	}

	return sent, failed, nil
}

// SendDailyReminder triggers the fixed come-back notification through the
// segment provider
func (s *PushService) SendDailyReminder(ctx context.Context) (int, error) {
	recipients, err := s.reminder.SendDailyReminder(ctx)
	if err != nil {
		metrics.PushNotificationsSent.WithLabelValues("onesignal", "error").Inc()
		return 0, err
	}
	metrics.PushNotificationsSent.WithLabelValues("onesignal", "ok").Add(float64(recipients))
	return recipients, nil
}

// PruneStaleTokens deletes tokens not seen since the cutoff
func (s *PushService) PruneStaleTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).Where("last_seen < ?", cutoff).Delete(&models.PushToken{})
	return tx.RowsAffected, tx.Error
}

func chunkTokens(tokens []string, size int) [][]string {
	if size <= 0 {
		return [][]string{tokens}
	}
	var chunks [][]string
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[start:end])
	}
	return chunks
}
