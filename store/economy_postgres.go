package store

import (
	"context"
	"errors"
	"time"

	"twinclash-api/metrics"
	"twinclash-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresEconomyStore persists economy state through gorm. The coin credit
// is a single atomic UPDATE, the world debit runs under SELECT FOR UPDATE and
// the transaction flip is a guarded UPDATE checked via RowsAffected.
type PostgresEconomyStore struct {
	db *gorm.DB
}

func NewPostgresEconomyStore(db *gorm.DB) *PostgresEconomyStore {
	return &PostgresEconomyStore{db: db}
}

func (s *PostgresEconomyStore) GetOrCreateProfile(ctx context.Context, proto *models.Profile) (*models.Profile, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("upsert", "profiles", start)

	profile := *proto
	err := s.db.WithContext(ctx).
		Where(models.Profile{ClientID: proto.ClientID}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *PostgresEconomyStore) CreditCoins(ctx context.Context, clientID string, amount int64) error {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "profiles", start)

	tx := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("client_id = ?", clientID).
		Update("coins", gorm.Expr("coins + ?", amount))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *PostgresEconomyStore) SpendOnWorld(ctx context.Context, clientID string, worldID int, cost int64) (*models.Profile, bool, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "profiles", start)

	var result models.Profile
	spent := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("client_id = ?", clientID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		if profile.HasWorld(worldID) {
			result = profile
			return nil
		}
		if profile.Coins < cost {
			return ErrInsufficientCoins
		}

		profile.Coins -= cost
		profile.UnlockedWorlds = append(profile.UnlockedWorlds, worldID)
		if err := tx.Model(&models.Profile{}).
			Where("client_id = ?", clientID).
			Updates(map[string]interface{}{
				"coins":           profile.Coins,
				"unlocked_worlds": profile.UnlockedWorlds,
			}).Error; err != nil {
			return err
		}
		result = profile
		spent = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &result, spent, nil
}

func (s *PostgresEconomyStore) PackageByID(ctx context.Context, packageID string) (*models.CoinPackage, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("select", "coin_packages", start)

	var pkg models.CoinPackage
	err := s.db.WithContext(ctx).Where("package_id = ?", packageID).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *PostgresEconomyStore) InsertPendingTransaction(ctx context.Context, tx *models.Transaction) error {
	start := time.Now()
	defer metrics.RecordDBOperation("insert", "transactions", start)

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoNothing: true,
	}).Create(tx).Error
}

func (s *PostgresEconomyStore) GetTransaction(ctx context.Context, sessionID string) (*models.Transaction, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("select", "transactions", start)

	var tx models.Transaction
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *PostgresEconomyStore) CompleteTransaction(ctx context.Context, sessionID, paymentStatus string) (bool, error) {
	start := time.Now()
	defer metrics.RecordDBOperation("update", "transactions", start)

	res := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("session_id = ? AND status <> ?", sessionID, models.TransactionCompleted).
		Updates(map[string]interface{}{
			"status":                models.TransactionCompleted,
			"stripe_payment_status": paymentStatus,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
