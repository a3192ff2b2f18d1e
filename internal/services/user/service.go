package user

import (
	"errors"

	"fitcoin/internal/models"
	"fitcoin/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	Create(input *models.CreateUserInput) (*models.User, error)
	Update(user *models.User) error
}

type service struct {
	repo    repositories.UserRepository
	wallets repositories.LedgerRepository
}

func NewService(repo repositories.UserRepository, wallets repositories.LedgerRepository) Service {
	return &service{
		repo:    repo,
		wallets: wallets,
	}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// Create registers a new user with an empty wallet.
func (s *service) Create(input *models.CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}

	existingUser, _ := s.repo.GetByEmail(input.Email)
	if existingUser != nil {
		return nil, errors.New("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Provider: "local",
		Role:     role,
		Status:   "active",
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	wallet := &models.Wallet{UserID: user.ID}
	if err := s.wallets.CreateWallet(wallet); err != nil {
		return nil, err
	}

	user.WalletID = &wallet.ID
	user.Wallet = wallet
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) Update(user *models.User) error {
	return s.repo.Update(user)
}
