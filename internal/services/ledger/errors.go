package ledger

import "errors"

// Service errors
var (
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrEmptyReference      = errors.New("reference must not be empty")
	ErrUserNotFound        = errors.New("user not found")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrRewardNotFound      = errors.New("reward not found")
	ErrAlreadyRedeemed     = errors.New("challenge already redeemed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrOutOfStock          = errors.New("reward out of stock")
)
