// Package reward serves the reward catalog. Purchasing a reward is a ledger
// operation so the spend and the redemption record stay atomic.
package reward

import (
	"context"
	"errors"

	"fitcoin/internal/models"
	"fitcoin/internal/repositories"
)

var ErrNotFound = errors.New("reward not found")

type Service interface {
	List(ctx context.Context) ([]models.Reward, error)
	GetByID(ctx context.Context, id uint) (*models.Reward, error)
	Create(ctx context.Context, reward *models.Reward) error
	// ListRedemptions returns the user's past catalog redemptions.
	ListRedemptions(ctx context.Context, userID uint) ([]models.RewardRedemption, error)
}

type service struct {
	repo repositories.RewardRepository
}

func NewService(repo repositories.RewardRepository) Service {
	if repo == nil {
		panic("reward repository is required")
	}
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]models.Reward, error) {
	return s.repo.List()
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Reward, error) {
	reward, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRewardNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reward, nil
}

func (s *service) Create(ctx context.Context, reward *models.Reward) error {
	if reward.Title == "" {
		return errors.New("title is required")
	}
	if reward.Cost <= 0 {
		return errors.New("cost must be positive")
	}
	if reward.Stock < models.UnlimitedStock {
		return errors.New("stock must be -1 (unlimited) or non-negative")
	}
	return s.repo.Create(reward)
}

func (s *service) ListRedemptions(ctx context.Context, userID uint) ([]models.RewardRedemption, error) {
	return s.repo.ListRedemptions(userID)
}
