/*
Package ledger performs all validated coin balance mutations.

Every balance change goes through exactly one code path per operation and
always produces a Transaction row, so the transaction list is a complete
audit trail. The operations are:

	// Redeem a challenge's coin reward, at most once per user
	result, err := svc.RedeemChallenge(ctx, userID, challengeID)

	// Spend coins against a free-text reference
	result, err := svc.SpendCoins(ctx, userID, 30, "Redeemed reward: Coffee Voucher")

	// Purchase a catalog reward (spend + redemption record, atomically)
	result, err := svc.RedeemReward(ctx, userID, rewardID)

	// Administrative grant
	result, err := svc.AddCoins(ctx, userID, 50)

	// Reads
	balance, err := svc.GetBalance(ctx, userID)
	txs, total, err := svc.GetHistory(ctx, userID, limit, offset)

Concurrency:

Mutations never read-modify-write a balance. Credits and debits are single
conditional SQL statements ("decrement only if balance >= amount"), and the
duplicate-redemption guard is a unique-index insert, so concurrent requests
for the same user serialize at the storage layer. All writes belonging to one
operation share a single database transaction; there is no partial-commit
window between a challenge being marked redeemed and the wallet credit.

Error Handling:

The service returns sentinel errors the HTTP layer maps onto statuses:
ErrInvalidAmount, ErrEmptyReference, ErrUserNotFound, ErrWalletNotFound,
ErrChallengeNotFound, ErrRewardNotFound, ErrAlreadyRedeemed,
ErrInsufficientBalance, ErrOutOfStock.
*/
package ledger
