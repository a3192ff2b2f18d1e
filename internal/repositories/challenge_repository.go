package repositories

import (
	"fitcoin/internal/models"
)

// ChallengeRepository defines the interface for challenge catalog reads and
// administrative writes. Redemption writes go through the LedgerRepository.
type ChallengeRepository interface {
	Create(challenge *models.Challenge) error
	GetByID(id uint) (*models.Challenge, error)
	List() ([]models.Challenge, error)
	// ListRedeemedIDs returns the IDs of all challenges the user has redeemed.
	ListRedeemedIDs(userID uint) ([]uint, error)
	IsRedeemed(challengeID, userID uint) (bool, error)
}
