package repositories

import (
	"errors"
	"fmt"

	"fitcoin/internal/models"

	"gorm.io/gorm"
)

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(challenge *models.Challenge) error {
	if err := r.db.Create(challenge).Error; err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}
	return nil
}

func (r *challengeRepository) GetByID(id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &challenge, nil
}

func (r *challengeRepository) List() ([]models.Challenge, error) {
	var challenges []models.Challenge
	if err := r.db.Order("id").Find(&challenges).Error; err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

func (r *challengeRepository) ListRedeemedIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ChallengeRedemption{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list redemptions: %w", err)
	}
	return ids, nil
}

func (r *challengeRepository) IsRedeemed(challengeID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChallengeRedemption{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check redemption: %w", err)
	}
	return count > 0, nil
}
