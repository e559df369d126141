package store

import (
	"context"
	"errors"
	"time"

	"twinclash-api/metrics"
	"twinclash-api/models"

	"gorm.io/gorm"
)

// PostgresDuelStore persists duel rooms through gorm. Conditional updates
// lean on Postgres row-level atomicity: the WHERE clause re-checks the guard
// at write time and RowsAffected tells us whether we won.
type PostgresDuelStore struct {
	db *gorm.DB
}

func NewPostgresDuelStore(db *gorm.DB) *PostgresDuelStore {
	return &PostgresDuelStore{db: db}
}

func (s *PostgresDuelStore) Insert(ctx context.Context, room *models.DuelRoom) error {
	start := time.Now()
	defer metrics.RecordDBOperation("insert", "duel_rooms", start)

	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCodeTaken
		}
		return err
	}
	return nil
}

func (s *PostgresDuelStore) GetByCode(ctx context.Context, code string) (*models.DuelRoom, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("select", "duel_rooms", start)

	var room models.DuelRoom
	err := s.db.WithContext(ctx).Where("room_code = ?", code).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *PostgresDuelStore) ClaimGuest(ctx context.Context, code, guestClientID string) (*models.DuelRoom, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "duel_rooms", start)

	tx := s.db.WithContext(ctx).Model(&models.DuelRoom{}).
		Where("room_code = ? AND status = ? AND guest_client_id IS NULL", code, models.DuelStatusWaiting).
		Updates(map[string]interface{}{
			"guest_client_id": guestClientID,
			"status":          models.DuelStatusPlaying,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrConflict
	}
	return s.GetByCode(ctx, code)
}

func (s *PostgresDuelStore) SetResult(ctx context.Context, code, role string, res models.DuelResult, finishedAt time.Time) (*models.DuelRoom, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "duel_rooms", start)

	var updates map[string]interface{}
	switch role {
	case models.DuelRoleHost:
		updates = map[string]interface{}{
			"host_win":         res.Win,
			"host_time_ms":     res.TimeMs,
			"host_moves":       res.Moves,
			"host_pairs_found": res.PairsFound,
			"host_finished_at": finishedAt,
		}
	case models.DuelRoleGuest:
		updates = map[string]interface{}{
			"guest_win":         res.Win,
			"guest_time_ms":     res.TimeMs,
			"guest_moves":       res.Moves,
			"guest_pairs_found": res.PairsFound,
			"guest_finished_at": finishedAt,
		}
	default:
		return nil, errors.New("unknown duel role: " + role)
	}

	tx := s.db.WithContext(ctx).Model(&models.DuelRoom{}).
		Where("room_code = ?", code).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrRoomNotFound
	}
	return s.GetByCode(ctx, code)
}

func (s *PostgresDuelStore) Finalize(ctx context.Context, code string, winnerClientID *string) (*models.DuelRoom, bool, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "duel_rooms", start)

	tx := s.db.WithContext(ctx).Model(&models.DuelRoom{}).
		Where("room_code = ? AND status = ?", code, models.DuelStatusPlaying).
		Updates(map[string]interface{}{
			"status":           models.DuelStatusFinished,
			"winner_client_id": winnerClientID,
		})
	if tx.Error != nil {
		return nil, false, tx.Error
	}

	room, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}
	return room, tx.RowsAffected > 0, nil
}

func (s *PostgresDuelStore) Cancel(ctx context.Context, code string) (*models.DuelRoom, bool, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "duel_rooms", start)

	tx := s.db.WithContext(ctx).Model(&models.DuelRoom{}).
		Where("room_code = ? AND status IN ?", code, []string{models.DuelStatusWaiting, models.DuelStatusPlaying}).
		Update("status", models.DuelStatusCancelled)
	if tx.Error != nil {
		return nil, false, tx.Error
	}

	room, err := s.GetByCode(ctx, code)
	if err != nil {
		return nil, false, err
	}
	return room, tx.RowsAffected > 0, nil
}

func (s *PostgresDuelStore) ExpireBefore(ctx context.Context, cutoff time.Time) ([]models.DuelRoom, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "duel_rooms", start)

	var stale []models.DuelRoom
	err := s.db.WithContext(ctx).
		Where("status IN ? AND expires_at < ?", []string{models.DuelStatusWaiting, models.DuelStatusPlaying}, cutoff).
		Find(&stale).Error
	if err != nil {
		return nil, err
	}

	expired := make([]models.DuelRoom, 0, len(stale))
	for _, room := range stale {
		// Guarded per-row so a room finishing mid-sweep is left alone
		updated, ok, err := s.Cancel(ctx, room.RoomCode)
		if err != nil {
			return expired, err
		}
		if ok {
			expired = append(expired, *updated)
		}
	}
	return expired, nil
}
