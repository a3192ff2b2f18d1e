package ledger

import (
	"context"
	"testing"
	"time"

	"fitcoin/internal/models"
	"fitcoin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedgerRepo is an in-memory LedgerRepository mirroring the conditional
// SQL semantics of the real one, including transaction rollback.
type fakeLedgerRepo struct {
	wallets           map[uint]int64
	transactions      []models.Transaction
	redemptions       map[[2]uint]bool
	rewardRedemptions []models.RewardRedemption
	stock             map[uint]int64
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		wallets:     make(map[uint]int64),
		redemptions: make(map[[2]uint]bool),
		stock:       make(map[uint]int64),
	}
}

func (f *fakeLedgerRepo) CreateWallet(w *models.Wallet) error {
	if _, ok := f.wallets[w.UserID]; ok {
		return repositories.ErrDuplicateWallet
	}
	f.wallets[w.UserID] = 0
	return nil
}

func (f *fakeLedgerRepo) GetWalletByUserID(userID uint) (*models.Wallet, error) {
	balance, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	return &models.Wallet{UserID: userID, Balance: balance}, nil
}

func (f *fakeLedgerRepo) CreditWallet(userID uint, amount int64) error {
	if _, ok := f.wallets[userID]; !ok {
		return repositories.ErrWalletNotFound
	}
	f.wallets[userID] += amount
	return nil
}

func (f *fakeLedgerRepo) DebitWallet(userID uint, amount int64) error {
	balance, ok := f.wallets[userID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	if balance < amount {
		return repositories.ErrInsufficientBalance
	}
	f.wallets[userID] = balance - amount
	return nil
}

func (f *fakeLedgerRepo) CreateTransaction(tx *models.Transaction) error {
	tx.ID = uint(len(f.transactions) + 1)
	tx.CreatedAt = time.Now()
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeLedgerRepo) GetTransactionHistory(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var all []models.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			all = append(all, tx)
		}
	}
	total := int64(len(all))
	if offset > len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeLedgerRepo) AddChallengeRedemption(challengeID, userID uint) error {
	key := [2]uint{challengeID, userID}
	if f.redemptions[key] {
		return repositories.ErrAlreadyRedeemed
	}
	f.redemptions[key] = true
	return nil
}

func (f *fakeLedgerRepo) AddRewardRedemption(r *models.RewardRedemption) error {
	f.rewardRedemptions = append(f.rewardRedemptions, *r)
	return nil
}

func (f *fakeLedgerRepo) DecrementRewardStock(rewardID uint) error {
	stock, ok := f.stock[rewardID]
	if !ok {
		return repositories.ErrRewardNotFound
	}
	if stock == models.UnlimitedStock {
		return nil
	}
	if stock == 0 {
		return repositories.ErrOutOfStock
	}
	f.stock[rewardID] = stock - 1
	return nil
}

func (f *fakeLedgerRepo) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	snapshot := f.clone()
	if err := fn(f); err != nil {
		*f = *snapshot
		return err
	}
	return nil
}

func (f *fakeLedgerRepo) clone() *fakeLedgerRepo {
	c := newFakeLedgerRepo()
	for k, v := range f.wallets {
		c.wallets[k] = v
	}
	for k, v := range f.redemptions {
		c.redemptions[k] = v
	}
	for k, v := range f.stock {
		c.stock[k] = v
	}
	c.transactions = append(c.transactions, f.transactions...)
	c.rewardRedemptions = append(c.rewardRedemptions, f.rewardRedemptions...)
	return c
}

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) GetByEmail(string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) GetByProvider(string, string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) Update(*models.User) error { return nil }
func (f *fakeUserRepo) IncrementTokenVersion(uint) error { return nil }
func (f *fakeUserRepo) GetTokenVersion(uint) (int, error) { return 1, nil }

type fakeChallengeRepo struct {
	challenges map[uint]*models.Challenge
}

func (f *fakeChallengeRepo) Create(c *models.Challenge) error { f.challenges[c.ID] = c; return nil }
func (f *fakeChallengeRepo) GetByID(id uint) (*models.Challenge, error) {
	c, ok := f.challenges[id]
	if !ok {
		return nil, repositories.ErrChallengeNotFound
	}
	return c, nil
}
func (f *fakeChallengeRepo) List() ([]models.Challenge, error) { return nil, nil }
func (f *fakeChallengeRepo) ListRedeemedIDs(uint) ([]uint, error) { return nil, nil }
func (f *fakeChallengeRepo) IsRedeemed(uint, uint) (bool, error) { return false, nil }

type fakeRewardRepo struct {
	rewards map[uint]*models.Reward
}

func (f *fakeRewardRepo) Create(r *models.Reward) error { f.rewards[r.ID] = r; return nil }
func (f *fakeRewardRepo) GetByID(id uint) (*models.Reward, error) {
	r, ok := f.rewards[id]
	if !ok {
		return nil, repositories.ErrRewardNotFound
	}
	return r, nil
}
func (f *fakeRewardRepo) List() ([]models.Reward, error) { return nil, nil }
func (f *fakeRewardRepo) ListRedemptions(uint) ([]models.RewardRedemption, error) {
	return nil, nil
}

// noopCache always misses so tests observe the store directly.
type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) SetWithTTL(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopCache) Delete(context.Context, ...string) error { return nil }
func (noopCache) GenerateKey(entityType, keyType string, value interface{}) string {
	return entityType
}

type testEnv struct {
	svc        Service
	repo       *fakeLedgerRepo
	users      *fakeUserRepo
	challenges *fakeChallengeRepo
	rewards    *fakeRewardRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:       newFakeLedgerRepo(),
		users:      &fakeUserRepo{users: make(map[uint]*models.User)},
		challenges: &fakeChallengeRepo{challenges: make(map[uint]*models.Challenge)},
		rewards:    &fakeRewardRepo{rewards: make(map[uint]*models.Reward)},
	}
	env.svc = NewService(env.repo, env.users, env.challenges, env.rewards, noopCache{}, nil)
	return env
}

func (e *testEnv) addUser(id uint, balance int64) {
	u := &models.User{Email: "user@example.com", Name: "Test User"}
	u.ID = id
	e.users.users[id] = u
	e.repo.wallets[id] = balance
}

func TestRedeemChallenge(t *testing.T) {
	ctx := context.Background()

	t.Run("credits reward and records one transaction", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 0)
		env.challenges.challenges[10] = &models.Challenge{ID: 10, Title: "10k Steps", Metric: "steps", Target: 10000, Reward: 50}

		result, err := env.svc.RedeemChallenge(ctx, 1, 10)
		require.NoError(t, err)

		assert.Equal(t, int64(50), result.NewBalance)
		assert.Equal(t, int64(50), env.repo.wallets[1])
		assert.True(t, result.Challenge.IsRedeemed)

		require.Len(t, env.repo.transactions, 1)
		txn := env.repo.transactions[0]
		assert.Equal(t, models.TransactionTypeReward, txn.Type)
		assert.Equal(t, int64(50), txn.Amount)
		assert.Equal(t, "10k Steps", txn.Reference)
		assert.Equal(t, models.TransactionStatusCompleted, txn.Status)
		require.NotNil(t, txn.ChallengeID)
		assert.Equal(t, uint(10), *txn.ChallengeID)
	})

	t.Run("second redemption fails and leaves balance unchanged", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 0)
		env.challenges.challenges[10] = &models.Challenge{ID: 10, Title: "10k Steps", Reward: 50}

		_, err := env.svc.RedeemChallenge(ctx, 1, 10)
		require.NoError(t, err)

		_, err = env.svc.RedeemChallenge(ctx, 1, 10)
		assert.ErrorIs(t, err, ErrAlreadyRedeemed)
		assert.Equal(t, int64(50), env.repo.wallets[1])
		assert.Len(t, env.repo.transactions, 1)
	})

	t.Run("initializes a missing wallet with zero balance", func(t *testing.T) {
		env := newTestEnv()
		u := &models.User{}
		u.ID = 2
		env.users.users[2] = u // user exists, no wallet yet
		env.challenges.challenges[10] = &models.Challenge{ID: 10, Title: "10k Steps", Reward: 25}

		result, err := env.svc.RedeemChallenge(ctx, 2, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(25), result.NewBalance)
	})

	t.Run("unknown challenge", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 0)

		_, err := env.svc.RedeemChallenge(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("unknown user rolls back the redemption mark", func(t *testing.T) {
		env := newTestEnv()
		env.challenges.challenges[10] = &models.Challenge{ID: 10, Title: "10k Steps", Reward: 50}

		_, err := env.svc.RedeemChallenge(ctx, 7, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
		// A later redemption by a real user with the same ID must still work.
		assert.False(t, env.repo.redemptions[[2]uint{10, 7}])
		assert.Empty(t, env.repo.transactions)
	})
}

func TestSpendCoins(t *testing.T) {
	ctx := context.Background()

	t.Run("debits balance and records one spend", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 50)

		result, err := env.svc.SpendCoins(ctx, 1, 30, "Redeemed reward: Coffee Voucher")
		require.NoError(t, err)

		assert.Equal(t, int64(20), result.NewBalance)
		assert.Equal(t, int64(20), env.repo.wallets[1])

		require.Len(t, env.repo.transactions, 1)
		txn := env.repo.transactions[0]
		assert.Equal(t, models.TransactionTypeSpend, txn.Type)
		assert.Equal(t, int64(30), txn.Amount)
		assert.Equal(t, "Redeemed reward: Coffee Voucher", txn.Reference)
	})

	t.Run("insufficient balance leaves state untouched", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 20)

		_, err := env.svc.SpendCoins(ctx, 1, 25, "too expensive")
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, int64(20), env.repo.wallets[1])
		assert.Empty(t, env.repo.transactions)
	})

	t.Run("rejects non-positive amounts before touching storage", func(t *testing.T) {
		for _, amount := range []int64{0, -1, -50} {
			env := newTestEnv()
			env.addUser(1, 100)

			_, err := env.svc.SpendCoins(ctx, 1, amount, "ref")
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.Equal(t, int64(100), env.repo.wallets[1])
			assert.Empty(t, env.repo.transactions)
		}
	})

	t.Run("rejects blank reference", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 100)

		_, err := env.svc.SpendCoins(ctx, 1, 10, "   ")
		assert.ErrorIs(t, err, ErrEmptyReference)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.SpendCoins(ctx, 42, 10, "ref")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("user without wallet", func(t *testing.T) {
		env := newTestEnv()
		u := &models.User{}
		u.ID = 3
		env.users.users[3] = u

		_, err := env.svc.SpendCoins(ctx, 3, 10, "ref")
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})
}

func TestRedeemReward(t *testing.T) {
	ctx := context.Background()

	t.Run("spend and redemption are recorded together", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 100)
		env.rewards.rewards[5] = &models.Reward{ID: 5, Title: "Coffee Voucher", Cost: 30}
		env.repo.stock[5] = 2

		result, err := env.svc.RedeemReward(ctx, 1, 5)
		require.NoError(t, err)

		assert.Equal(t, int64(70), result.NewBalance)
		assert.Equal(t, int64(1), env.repo.stock[5])

		require.Len(t, env.repo.transactions, 1)
		txn := env.repo.transactions[0]
		assert.Equal(t, models.TransactionTypeSpend, txn.Type)
		assert.Equal(t, "Redeemed reward: Coffee Voucher", txn.Reference)
		require.NotNil(t, txn.RewardID)
		assert.Equal(t, uint(5), *txn.RewardID)

		require.Len(t, env.repo.rewardRedemptions, 1)
		assert.Equal(t, txn.TransactionID, env.repo.rewardRedemptions[0].TransactionID)
	})

	t.Run("out of stock rolls back the debit", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 100)
		env.rewards.rewards[5] = &models.Reward{ID: 5, Title: "Coffee Voucher", Cost: 30}
		env.repo.stock[5] = 0

		_, err := env.svc.RedeemReward(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Equal(t, int64(100), env.repo.wallets[1])
		assert.Empty(t, env.repo.transactions)
		assert.Empty(t, env.repo.rewardRedemptions)
	})

	t.Run("insufficient balance leaves stock untouched", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 10)
		env.rewards.rewards[5] = &models.Reward{ID: 5, Title: "Coffee Voucher", Cost: 30}
		env.repo.stock[5] = 2

		_, err := env.svc.RedeemReward(ctx, 1, 5)
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, int64(2), env.repo.stock[5])
		assert.Equal(t, int64(10), env.repo.wallets[1])
	})

	t.Run("unknown reward", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 100)

		_, err := env.svc.RedeemReward(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrRewardNotFound)
	})
}

func TestAddCoins(t *testing.T) {
	ctx := context.Background()

	t.Run("credits and always records an earn transaction", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 10)

		result, err := env.svc.AddCoins(ctx, 1, 40)
		require.NoError(t, err)

		assert.Equal(t, int64(50), result.NewBalance)
		require.Len(t, env.repo.transactions, 1)
		assert.Equal(t, models.TransactionTypeEarn, env.repo.transactions[0].Type)
		assert.Equal(t, int64(40), env.repo.transactions[0].Amount)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 10)

		_, err := env.svc.AddCoins(ctx, 1, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.AddCoins(ctx, 9, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("returns current balance", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(1, 75)

		balance, err := env.svc.GetBalance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(75), balance)
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.GetBalance(ctx, 404)
		assert.ErrorIs(t, err, ErrWalletNotFound)
	})
}

func TestGetHistory(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv()
	env.addUser(1, 1000)
	for i := 0; i < 3; i++ {
		_, err := env.svc.SpendCoins(ctx, 1, 10, "spend")
		require.NoError(t, err)
	}

	txs, total, err := env.svc.GetHistory(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, txs, 2)

	// Zero limit falls back to the default page size.
	txs, _, err = env.svc.GetHistory(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 3)
}
