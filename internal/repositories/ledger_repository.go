package repositories

import (
	"errors"

	"fitcoin/internal/models"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyRedeemed     = errors.New("challenge already redeemed")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrRewardNotFound      = errors.New("reward not found")
	ErrOutOfStock          = errors.New("reward out of stock")
)

// LedgerRepository defines the storage operations behind the ledger service.
// Balance mutations are expressed as conditional single-statement updates so
// two concurrent requests can never produce a lost update, and
// ExecuteInTransaction groups the writes of one ledger operation into a
// single database transaction.
type LedgerRepository interface {
	// Wallet operations
	CreateWallet(wallet *models.Wallet) error
	GetWalletByUserID(userID uint) (*models.Wallet, error)
	// CreditWallet atomically adds amount to the wallet balance.
	CreditWallet(userID uint, amount int64) error
	// DebitWallet atomically subtracts amount, but only while the balance
	// stays non-negative. Returns ErrInsufficientBalance otherwise.
	DebitWallet(userID uint, amount int64) error

	// Transaction records
	CreateTransaction(tx *models.Transaction) error
	GetTransactionHistory(userID uint, limit, offset int) ([]models.Transaction, int64, error)

	// Redemption bookkeeping
	// AddChallengeRedemption inserts the (challenge, user) pair and returns
	// ErrAlreadyRedeemed when the pair already exists.
	AddChallengeRedemption(challengeID, userID uint) error
	AddRewardRedemption(redemption *models.RewardRedemption) error
	// DecrementRewardStock reserves one unit of a limited reward, returning
	// ErrOutOfStock when none is left. Unlimited rewards are untouched.
	DecrementRewardStock(rewardID uint) error

	// ExecuteInTransaction runs fn against a repository bound to a single
	// database transaction, committing on nil and rolling back on error.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
