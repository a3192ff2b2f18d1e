// Package challenge serves the challenge catalog, annotating each entry with
// the caller's redemption state. Redemption itself is a ledger operation.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitcoin/internal/models"
	"fitcoin/internal/repositories"
)

var ErrNotFound = errors.New("challenge not found")

const listCacheTTL = 5 * time.Minute

type Service interface {
	// List returns every challenge, each flagged is_redeemed for userID.
	List(ctx context.Context, userID uint) ([]models.ChallengeView, error)
	GetByID(ctx context.Context, id uint) (*models.Challenge, error)
	Create(ctx context.Context, challenge *models.Challenge) error
}

// Cache is the subset of cache operations the catalog uses. The ledger
// deletes the same per-user list key after a redemption.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	GenerateKey(entityType, keyType string, value interface{}) string
}

type service struct {
	repo  repositories.ChallengeRepository
	cache Cache
}

func NewService(repo repositories.ChallengeRepository, cache Cache) Service {
	if repo == nil {
		panic("challenge repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) List(ctx context.Context, userID uint) ([]models.ChallengeView, error) {
	key := s.cache.GenerateKey("challenge", "list", userID)

	var cached []models.ChallengeView
	if found, _ := s.cache.Get(ctx, key, &cached); found {
		return cached, nil
	}

	challenges, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	redeemedIDs, err := s.repo.ListRedeemedIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load redemptions: %w", err)
	}
	redeemed := make(map[uint]bool, len(redeemedIDs))
	for _, id := range redeemedIDs {
		redeemed[id] = true
	}

	views := make([]models.ChallengeView, len(challenges))
	for i, c := range challenges {
		views[i] = models.ChallengeView{Challenge: c, IsRedeemed: redeemed[c.ID]}
	}

	s.cache.SetWithTTL(ctx, key, views, listCacheTTL)
	return views, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Challenge, error) {
	challenge, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrChallengeNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (s *service) Create(ctx context.Context, challenge *models.Challenge) error {
	if challenge.Title == "" {
		return errors.New("title is required")
	}
	if challenge.Target <= 0 {
		return errors.New("target must be positive")
	}
	if challenge.Reward <= 0 {
		return errors.New("reward must be positive")
	}
	return s.repo.Create(challenge)
}
