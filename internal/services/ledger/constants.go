package ledger

import "time"

// Ledger operations, used as metric labels.
const (
	OpRedeemChallenge = "redeem_challenge"
	OpRedeemReward    = "redeem_reward"
	OpSpend           = "spend"
	OpAddCoins        = "add_coins"
	OpGetBalance      = "get_balance"
)

// Cache keys and durations
const (
	BalanceCacheKind = "balance"
	BalanceCacheTTL  = 5 * time.Minute
)

// History pagination bounds
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)
