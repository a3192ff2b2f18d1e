package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitcoin/internal/models"
	"fitcoin/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	repo       repositories.LedgerRepository
	users      repositories.UserRepository
	challenges repositories.ChallengeRepository
	rewards    repositories.RewardRepository
	cache      CacheOperator
	metrics    MetricsCollector
}

// NewService creates a new ledger service
func NewService(
	repo repositories.LedgerRepository,
	users repositories.UserRepository,
	challenges repositories.ChallengeRepository,
	rewards repositories.RewardRepository,
	cache CacheOperator,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if users == nil {
		panic("user repository is required")
	}
	if challenges == nil {
		panic("challenge repository is required")
	}
	if rewards == nil {
		panic("reward repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:       repo,
		users:      users,
		challenges: challenges,
		rewards:    rewards,
		cache:      cache,
		metrics:    metrics,
	}
}

func (s *service) RedeemChallenge(ctx context.Context, userID, challengeID uint) (*RedeemResult, error) {
	challenge, err := s.challenges.GetByID(challengeID)
	if err != nil {
		if errors.Is(err, repositories.ErrChallengeNotFound) {
			s.metrics.RecordError(OpRedeemChallenge, "challenge_not_found")
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	var (
		txn        *models.Transaction
		newBalance int64
	)
	err = s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		// The unique index on (challenge_id, user_id) makes this the
		// duplicate-redemption guard; no prior read is needed.
		if err := tx.AddChallengeRedemption(challenge.ID, userID); err != nil {
			return err
		}
		if err := s.creditWithInit(tx, userID, challenge.Reward); err != nil {
			return err
		}
		txn = s.newTransaction(userID, models.TransactionTypeReward, challenge.Reward, challenge.Title)
		txn.ChallengeID = &challenge.ID
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}
		wallet, err := tx.GetWalletByUserID(userID)
		if err != nil {
			return err
		}
		newBalance = wallet.Balance
		return nil
	})
	if err != nil {
		return nil, s.mapLedgerErr(OpRedeemChallenge, err)
	}

	s.invalidateBalance(ctx, userID)
	// The user's cached challenge list now carries a stale is_redeemed flag.
	s.cache.Delete(ctx, s.cache.GenerateKey("challenge", "list", userID))
	s.metrics.RecordOperationResult(OpRedeemChallenge, "success")
	s.metrics.RecordTransaction(models.TransactionTypeReward, challenge.Reward)

	return &RedeemResult{
		Challenge:   &models.ChallengeView{Challenge: *challenge, IsRedeemed: true},
		NewBalance:  newBalance,
		Transaction: txn,
	}, nil
}

func (s *service) SpendCoins(ctx context.Context, userID uint, amount int64, reference string) (*SpendResult, error) {
	if amount <= 0 {
		s.metrics.RecordError(OpSpend, "invalid_amount")
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(reference) == "" {
		s.metrics.RecordError(OpSpend, "empty_reference")
		return nil, ErrEmptyReference
	}

	return s.spend(ctx, OpSpend, userID, amount, reference, nil)
}

func (s *service) RedeemReward(ctx context.Context, userID, rewardID uint) (*SpendResult, error) {
	reward, err := s.rewards.GetByID(rewardID)
	if err != nil {
		if errors.Is(err, repositories.ErrRewardNotFound) {
			s.metrics.RecordError(OpRedeemReward, "reward_not_found")
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to load reward: %w", err)
	}

	reference := "Redeemed reward: " + reward.Title
	return s.spend(ctx, OpRedeemReward, userID, reward.Cost, reference,
		func(tx repositories.LedgerRepository, txn *models.Transaction) error {
			if err := tx.DecrementRewardStock(reward.ID); err != nil {
				return err
			}
			txn.RewardID = &reward.ID
			return tx.AddRewardRedemption(&models.RewardRedemption{
				RewardID:      reward.ID,
				UserID:        userID,
				TransactionID: txn.TransactionID,
			})
		})
}

func (s *service) AddCoins(ctx context.Context, userID uint, amount int64) (*CreditResult, error) {
	if amount <= 0 {
		s.metrics.RecordError(OpAddCoins, "invalid_amount")
		return nil, ErrInvalidAmount
	}

	var (
		txn        *models.Transaction
		newBalance int64
	)
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		if err := s.creditWithInit(tx, userID, amount); err != nil {
			return err
		}
		txn = s.newTransaction(userID, models.TransactionTypeEarn, amount, "Administrative credit")
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}
		wallet, err := tx.GetWalletByUserID(userID)
		if err != nil {
			return err
		}
		newBalance = wallet.Balance
		return nil
	})
	if err != nil {
		return nil, s.mapLedgerErr(OpAddCoins, err)
	}

	s.invalidateBalance(ctx, userID)
	s.metrics.RecordOperationResult(OpAddCoins, "success")
	s.metrics.RecordTransaction(models.TransactionTypeEarn, amount)

	return &CreditResult{NewBalance: newBalance, Transaction: txn}, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (int64, error) {
	key := s.balanceKey(userID)

	var balance int64
	if found, _ := s.cache.Get(ctx, key, &balance); found {
		return balance, nil
	}

	wallet, err := s.repo.GetWalletByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			s.metrics.RecordError(OpGetBalance, "wallet_not_found")
			return 0, ErrWalletNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	s.cache.SetWithTTL(ctx, key, wallet.Balance, BalanceCacheTTL)
	return wallet.Balance, nil
}

func (s *service) GetHistory(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.GetTransactionHistory(userID, limit, offset)
}

// spend performs the debit half of the ledger in one database transaction:
// conditional balance decrement, optional extra bookkeeping, spend record.
func (s *service) spend(ctx context.Context, op string, userID uint, amount int64, reference string,
	within func(repositories.LedgerRepository, *models.Transaction) error) (*SpendResult, error) {

	var (
		txn        *models.Transaction
		newBalance int64
	)
	err := s.repo.ExecuteInTransaction(func(tx repositories.LedgerRepository) error {
		if err := tx.DebitWallet(userID, amount); err != nil {
			if errors.Is(err, repositories.ErrWalletNotFound) {
				// Distinguish an unknown user from a user whose wallet
				// was never initialized.
				if _, uerr := s.users.GetByID(userID); uerr != nil {
					return uerr
				}
			}
			return err
		}
		txn = s.newTransaction(userID, models.TransactionTypeSpend, amount, reference)
		if within != nil {
			if err := within(tx, txn); err != nil {
				return err
			}
		}
		if err := tx.CreateTransaction(txn); err != nil {
			return err
		}
		wallet, err := tx.GetWalletByUserID(userID)
		if err != nil {
			return err
		}
		newBalance = wallet.Balance
		return nil
	})
	if err != nil {
		return nil, s.mapLedgerErr(op, err)
	}

	s.invalidateBalance(ctx, userID)
	s.metrics.RecordOperationResult(op, "success")
	s.metrics.RecordTransaction(models.TransactionTypeSpend, amount)

	return &SpendResult{NewBalance: newBalance, Transaction: txn}, nil
}

// creditWithInit credits the wallet, creating a zero-balance wallet first
// when the user exists but has none yet.
func (s *service) creditWithInit(tx repositories.LedgerRepository, userID uint, amount int64) error {
	err := tx.CreditWallet(userID, amount)
	if !errors.Is(err, repositories.ErrWalletNotFound) {
		return err
	}

	if _, uerr := s.users.GetByID(userID); uerr != nil {
		return uerr
	}
	if cerr := tx.CreateWallet(&models.Wallet{UserID: userID}); cerr != nil &&
		!errors.Is(cerr, repositories.ErrDuplicateWallet) {
		return cerr
	}
	return tx.CreditWallet(userID, amount)
}

func (s *service) newTransaction(userID uint, txType string, amount int64, reference string) *models.Transaction {
	return &models.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Reference:     reference,
		Status:        models.TransactionStatusCompleted,
	}
}

func (s *service) balanceKey(userID uint) string {
	return s.cache.GenerateKey("wallet", BalanceCacheKind, userID)
}

func (s *service) invalidateBalance(ctx context.Context, userID uint) {
	s.cache.Delete(ctx, s.balanceKey(userID))
}

// mapLedgerErr converts repository failures into the service's sentinel
// errors and records them.
func (s *service) mapLedgerErr(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrAlreadyRedeemed):
		s.metrics.RecordError(op, "already_redeemed")
		return ErrAlreadyRedeemed
	case errors.Is(err, repositories.ErrInsufficientBalance):
		s.metrics.RecordError(op, "insufficient_balance")
		return ErrInsufficientBalance
	case errors.Is(err, repositories.ErrUserNotFound):
		s.metrics.RecordError(op, "user_not_found")
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrWalletNotFound):
		s.metrics.RecordError(op, "wallet_not_found")
		return ErrWalletNotFound
	case errors.Is(err, repositories.ErrOutOfStock):
		s.metrics.RecordError(op, "out_of_stock")
		return ErrOutOfStock
	case errors.Is(err, repositories.ErrRewardNotFound):
		s.metrics.RecordError(op, "reward_not_found")
		return ErrRewardNotFound
	default:
		s.metrics.RecordError(op, "persistence")
		return fmt.Errorf("ledger operation failed: %w", err)
	}
}
