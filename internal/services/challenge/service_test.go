package challenge

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fitcoin/internal/models"
	"fitcoin/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) SetWithTTL(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopCache) Delete(context.Context, ...string) error { return nil }
func (noopCache) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

type fakeChallengeRepo struct {
	challenges map[uint]*models.Challenge
	redeemed   map[uint][]uint // userID -> challenge IDs
	nextID     uint
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{
		challenges: make(map[uint]*models.Challenge),
		redeemed:   make(map[uint][]uint),
		nextID:     1,
	}
}

func (f *fakeChallengeRepo) Create(c *models.Challenge) error {
	c.ID = f.nextID
	f.nextID++
	f.challenges[c.ID] = c
	return nil
}

func (f *fakeChallengeRepo) GetByID(id uint) (*models.Challenge, error) {
	c, ok := f.challenges[id]
	if !ok {
		return nil, repositories.ErrChallengeNotFound
	}
	return c, nil
}

func (f *fakeChallengeRepo) List() ([]models.Challenge, error) {
	out := make([]models.Challenge, 0, len(f.challenges))
	for id := uint(1); id < f.nextID; id++ {
		if c, ok := f.challenges[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeChallengeRepo) ListRedeemedIDs(userID uint) ([]uint, error) {
	return f.redeemed[userID], nil
}

func (f *fakeChallengeRepo) IsRedeemed(challengeID, userID uint) (bool, error) {
	for _, id := range f.redeemed[userID] {
		if id == challengeID {
			return true, nil
		}
	}
	return false, nil
}

func seedChallenge(t *testing.T, repo *fakeChallengeRepo, title string, reward int64) *models.Challenge {
	t.Helper()
	c := &models.Challenge{
		Title:  title,
		Metric: "steps",
		Target: 10000,
		Unit:   "steps",
		Reward: reward,
	}
	require.NoError(t, repo.Create(c))
	return c
}

func TestList(t *testing.T) {
	repo := newFakeChallengeRepo()
	svc := NewService(repo, noopCache{})
	ctx := context.Background()

	first := seedChallenge(t, repo, "10K Steps", 120)
	second := seedChallenge(t, repo, "Morning Run", 150)
	repo.redeemed[7] = []uint{first.ID}

	views, err := svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, first.ID, views[0].ID)
	assert.True(t, views[0].IsRedeemed)
	assert.Equal(t, second.ID, views[1].ID)
	assert.False(t, views[1].IsRedeemed)
}

func TestListOtherUserUnaffected(t *testing.T) {
	repo := newFakeChallengeRepo()
	svc := NewService(repo, noopCache{})

	c := seedChallenge(t, repo, "10K Steps", 120)
	repo.redeemed[7] = []uint{c.ID}

	views, err := svc.List(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].IsRedeemed)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(newFakeChallengeRepo(), noopCache{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeChallengeRepo()
	svc := NewService(repo, noopCache{})
	ctx := context.Background()

	tests := []struct {
		name      string
		challenge models.Challenge
		wantErr   string
	}{
		{"missing title", models.Challenge{Target: 10, Reward: 5}, "title is required"},
		{"zero target", models.Challenge{Title: "x", Reward: 5}, "target must be positive"},
		{"zero reward", models.Challenge{Title: "x", Target: 10}, "reward must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, &tt.challenge)
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	valid := models.Challenge{Title: "10K Steps", Target: 10000, Reward: 120}
	require.NoError(t, svc.Create(ctx, &valid))
	assert.NotZero(t, valid.ID)
}
