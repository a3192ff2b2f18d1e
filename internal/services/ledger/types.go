package ledger

import (
	"context"
	"time"

	"fitcoin/internal/models"
)

// Service defines the ledger operations. The acting user is always an
// explicit parameter; nothing is read from ambient request state.
type Service interface {
	// RedeemChallenge pays out a challenge's coin reward at most once per
	// user, crediting the wallet and recording a reward transaction in one
	// database transaction.
	RedeemChallenge(ctx context.Context, userID, challengeID uint) (*RedeemResult, error)

	// SpendCoins debits the wallet and records a spend transaction.
	SpendCoins(ctx context.Context, userID uint, amount int64, reference string) (*SpendResult, error)

	// RedeemReward purchases a catalog reward: the stock reservation, the
	// spend and the redemption record share one database transaction.
	RedeemReward(ctx context.Context, userID, rewardID uint) (*SpendResult, error)

	// AddCoins is the administrative grant path. Like every other mutation
	// it records a transaction, so the history stays a complete audit trail.
	AddCoins(ctx context.Context, userID uint, amount int64) (*CreditResult, error)

	// GetBalance returns the current wallet balance.
	GetBalance(ctx context.Context, userID uint) (int64, error)

	// GetHistory returns the user's transactions, newest first.
	GetHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error)
}

// RedeemResult is returned by a successful challenge redemption.
type RedeemResult struct {
	Challenge   *models.ChallengeView `json:"challenge"`
	NewBalance  int64                 `json:"new_balance"`
	Transaction *models.Transaction   `json:"transaction"`
}

// SpendResult is returned by a successful spend or reward redemption.
type SpendResult struct {
	NewBalance  int64               `json:"new_balance"`
	Transaction *models.Transaction `json:"transaction"`
}

// CreditResult is returned by a successful administrative credit.
type CreditResult struct {
	NewBalance  int64               `json:"new_balance"`
	Transaction *models.Transaction `json:"transaction"`
}

// CacheOperator defines the caching operations the ledger needs.
type CacheOperator interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(entityType, keyType string, value interface{}) string
}
