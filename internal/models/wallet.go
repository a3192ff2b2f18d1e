package models

import (
	"time"

	"gorm.io/gorm"
)

// Wallet holds a user's coin balance. The balance is only ever changed by the
// ledger service, and every change is paired with exactly one Transaction row.
type Wallet struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	UserID    uint  `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   int64 `gorm:"not null;default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// Wallets always start empty regardless of what the caller set.
	w.Balance = 0
	return nil
}
