package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Password     string  `gorm:"not null" json:"-"`
	Name         string  `gorm:"not null" json:"name"`
	Provider     string  `gorm:"default:'local';index:idx_provider_identity,unique" json:"provider"`
	ProviderID   string  `gorm:"default:'';index:idx_provider_identity,unique" json:"-"`
	Role         string  `gorm:"default:'user'" json:"role"`
	Status       string  `gorm:"default:'active'" json:"status"`
	TokenVersion int     `gorm:"default:1" json:"-"`
	WalletID     *uint   `gorm:"unique;default:null" json:"wallet_id,omitempty"`
	Wallet       *Wallet `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
}

// CreateUserInput is the payload accepted by the registration endpoint.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
