package store

import (
	"context"
	"sync"
	"time"

	"twinclash-api/models"
)

// MemoryEconomyStore is a mutex-guarded in-memory EconomyStore with the same
// conditional-write semantics as the Postgres implementation. Used by tests.
// It is seeded with the default coin package catalog.
type MemoryEconomyStore struct {
	mu           sync.Mutex
	profiles     map[string]*models.Profile
	transactions map[string]*models.Transaction
	packages     map[string]models.CoinPackage
}

func NewMemoryEconomyStore() *MemoryEconomyStore {
	packages := make(map[string]models.CoinPackage, len(models.DefaultCoinPackages))
	for _, pkg := range models.DefaultCoinPackages {
		packages[pkg.PackageID] = pkg
	}
	return &MemoryEconomyStore{
		profiles:     make(map[string]*models.Profile),
		transactions: make(map[string]*models.Transaction),
		packages:     packages,
	}
}

func (s *MemoryEconomyStore) GetOrCreateProfile(ctx context.Context, proto *models.Profile) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[proto.ClientID]
	if !ok {
		cp := *proto
		cp.UnlockedWorlds = append([]int(nil), proto.UnlockedWorlds...)
		cp.CreatedAt = time.Now().UTC()
		s.profiles[proto.ClientID] = &cp
		profile = &cp
	}
	return copyProfile(profile), nil
}

func (s *MemoryEconomyStore) CreditCoins(ctx context.Context, clientID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[clientID]
	if !ok {
		return ErrProfileNotFound
	}
	profile.Coins += amount
	return nil
}

func (s *MemoryEconomyStore) SpendOnWorld(ctx context.Context, clientID string, worldID int, cost int64) (*models.Profile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[clientID]
	if !ok {
		return nil, false, ErrProfileNotFound
	}
	if profile.HasWorld(worldID) {
		return copyProfile(profile), false, nil
	}
	if profile.Coins < cost {
		return nil, false, ErrInsufficientCoins
	}
	profile.Coins -= cost
	profile.UnlockedWorlds = append(profile.UnlockedWorlds, worldID)
	return copyProfile(profile), true, nil
}

func (s *MemoryEconomyStore) PackageByID(ctx context.Context, packageID string) (*models.CoinPackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pkg, ok := s.packages[packageID]
	if !ok {
		return nil, ErrPackageNotFound
	}
	cp := pkg
	return &cp, nil
}

func (s *MemoryEconomyStore) InsertPendingTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[tx.SessionID]; exists {
		return nil
	}
	cp := *tx
	cp.CreatedAt = time.Now().UTC()
	s.transactions[tx.SessionID] = &cp
	return nil
}

func (s *MemoryEconomyStore) GetTransaction(ctx context.Context, sessionID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[sessionID]
	if !ok {
		return nil, ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (s *MemoryEconomyStore) CompleteTransaction(ctx context.Context, sessionID, paymentStatus string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[sessionID]
	if !ok || tx.Status == models.TransactionCompleted {
		return false, nil
	}
	tx.Status = models.TransactionCompleted
	tx.StripePaymentStatus = paymentStatus
	return true, nil
}

func copyProfile(p *models.Profile) *models.Profile {
	cp := *p
	cp.UnlockedWorlds = append([]int(nil), p.UnlockedWorlds...)
	return &cp
}
