package models

import (
	"time"
)

// Challenge is a fitness target that pays out coins once per user.
type Challenge struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Metric      string    `gorm:"not null" json:"metric"` // e.g. "steps", "calories"
	Target      int64     `gorm:"not null" json:"target"`
	Unit        string    `json:"unit"`
	Reward      int64     `gorm:"not null" json:"reward"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChallengeRedemption marks a challenge as claimed by a user. The composite
// unique index is what enforces at-most-one redemption per (challenge, user):
// redeeming is a conditional insert, not a read-then-write.
type ChallengeRedemption struct {
	ID          uint `gorm:"primarykey"`
	ChallengeID uint `gorm:"not null;index:idx_challenge_user,unique"`
	UserID      uint `gorm:"not null;index:idx_challenge_user,unique"`
	CreatedAt   time.Time
}

// ChallengeView is a challenge annotated with the caller's redemption state.
type ChallengeView struct {
	Challenge
	IsRedeemed bool `json:"is_redeemed"`
}
