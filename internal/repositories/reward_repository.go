package repositories

import (
	"errors"
	"fmt"

	"fitcoin/internal/models"

	"gorm.io/gorm"
)

// RewardRepository defines the interface for the reward catalog.
// Stock reservation and redemption rows are written by the LedgerRepository
// so they share the spend's database transaction.
type RewardRepository interface {
	Create(reward *models.Reward) error
	GetByID(id uint) (*models.Reward, error)
	List() ([]models.Reward, error)
	ListRedemptions(userID uint) ([]models.RewardRedemption, error)
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) Create(reward *models.Reward) error {
	if err := r.db.Create(reward).Error; err != nil {
		return fmt.Errorf("failed to create reward: %w", err)
	}
	return nil
}

func (r *rewardRepository) GetByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}
	return &reward, nil
}

func (r *rewardRepository) List() ([]models.Reward, error) {
	var rewards []models.Reward
	if err := r.db.Order("id").Find(&rewards).Error; err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	return rewards, nil
}

func (r *rewardRepository) ListRedemptions(userID uint) ([]models.RewardRedemption, error) {
	var redemptions []models.RewardRedemption
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&redemptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reward redemptions: %w", err)
	}
	return redemptions, nil
}
