package models

import (
	"time"
)

// UnlimitedStock marks a catalog reward with no stock limit.
const UnlimitedStock = -1

// Reward is a catalog item purchasable with coins.
type Reward struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Cost        int64  `gorm:"not null" json:"cost"`
	Stock       int64  `gorm:"not null;default:-1" json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RewardRedemption links a catalog redemption to the spend transaction that
// paid for it. Both rows are written in the same database transaction, so a
// redeemed reward always has exactly one matching spend.
type RewardRedemption struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	RewardID      uint   `gorm:"not null;index" json:"reward_id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	TransactionID string `gorm:"not null" json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}
