package store

import (
	"context"
	"errors"

	"twinclash-api/models"
)

var (
	// ErrProfileNotFound is returned when no profile exists for a client id
	ErrProfileNotFound = errors.New("profile not found")
	// ErrPackageNotFound is returned when no coin package exists for an id
	ErrPackageNotFound = errors.New("coin package not found")
	// ErrTransactionNotFound is returned when no transaction exists for a session id
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInsufficientCoins is returned when a debit would drop coins below zero
	ErrInsufficientCoins = errors.New("insufficient coins")
)

// EconomyStore is the persistence surface for profiles, coin packages and
// checkout transactions. As with DuelStore, every state-guarded mutation is a
// single conditional write so concurrent callers cannot double-apply it.
type EconomyStore interface {
	// GetOrCreateProfile returns the profile for clientID, inserting the given
	// prototype on first sight.
	GetOrCreateProfile(ctx context.Context, proto *models.Profile) (*models.Profile, error)

	// CreditCoins atomically increments a profile's coin balance
	CreditCoins(ctx context.Context, clientID string, amount int64) error

	// SpendOnWorld debits cost and appends worldID under a row lock, only if
	// the world is not yet unlocked and the balance covers the cost. The bool
	// reports whether this call performed the debit; false with a nil error
	// means the world was already unlocked.
	SpendOnWorld(ctx context.Context, clientID string, worldID int, cost int64) (*models.Profile, bool, error)

	// PackageByID looks up a purchasable coin package
	PackageByID(ctx context.Context, packageID string) (*models.CoinPackage, error)

	// InsertPendingTransaction records a transaction, ignoring a session id
	// already on file
	InsertPendingTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction fetches a transaction by checkout session id
	GetTransaction(ctx context.Context, sessionID string) (*models.Transaction, error)

	// CompleteTransaction flips a transaction to completed, only if it is not
	// completed yet. The bool reports whether this call performed the flip;
	// a redelivered webhook gets false and must not credit again.
	CompleteTransaction(ctx context.Context, sessionID, paymentStatus string) (bool, error)
}
