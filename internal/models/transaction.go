package models

import (
	"time"
)

// Transaction types
const (
	TransactionTypeEarn     = "earn"
	TransactionTypeSpend    = "spend"
	TransactionTypeReward   = "reward"
	TransactionTypeTransfer = "transfer"
)

// Transaction statuses
const (
	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

// Transaction is an append-only audit record of a single balance change.
// Rows are never updated or deleted once written.
type Transaction struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	TransactionID string `gorm:"uniqueIndex;not null" json:"transaction_id"` // external reference, a uuid
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	Type          string `gorm:"not null" json:"type"`
	Amount        int64  `gorm:"not null" json:"amount"`
	ChallengeID   *uint  `gorm:"index" json:"challenge_id,omitempty"`
	RewardID      *uint  `gorm:"index" json:"reward_id,omitempty"`
	Reference     string `json:"reference"`
	Status        string `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
