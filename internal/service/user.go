package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

var (
	ErrUserNotFound   = repository.ErrUserNotFound
	ErrClientNotFound = repository.ErrClientNotFound
	ErrInvalidStatus  = errors.New("invalid user status")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	UpdateStatus(ctx context.Context, userID uint, status domain.UserStatus) error
	CreateClient(ctx context.Context, client domain.Client) (domain.Client, error)
	FindClientByUserID(ctx context.Context, userID uint) (domain.Client, error)
	FindClientByEmail(ctx context.Context, email string) (domain.Client, error)
	FindClientByTelefono(ctx context.Context, telefono string) (domain.Client, error)
	FindAllClients(ctx context.Context) ([]domain.Client, error)
}

type UserService struct {
	repo  UserRepository
	table greencoins.Table
}

func NewUserService(repo UserRepository, table greencoins.Table) *UserService {
	return &UserService{
		repo:  repo,
		table: table,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) FindAllUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// SetUserStatus activates or deactivates an account. Deactivated users
// keep their balance and records but cannot log in.
func (s *UserService) SetUserStatus(ctx context.Context, userID uint, status domain.UserStatus) error {
	if status != domain.UserActive && status != domain.UserInactive {
		return ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return nil
}

// CreateUserWithClient is the admin path for onboarding an account with
// its profile in one call.
func (s *UserService) CreateUserWithClient(ctx context.Context, user domain.User, client domain.Client) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	user.Status = domain.UserActive
	user.GreenCoins = 0
	user.Gamification = s.table.SnapshotFor(0)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	client.UserID = created.ID
	if _, err = s.repo.CreateClient(ctx, client); err != nil {
		return domain.User{}, fmt.Errorf("s.repo.CreateClient -> %w", err)
	}

	return created, nil
}

func (s *UserService) GetClient(ctx context.Context, userID uint) (domain.Client, error) {
	client, err := s.repo.FindClientByUserID(ctx, userID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("s.repo.FindClientByUserID -> %w", err)
	}

	return client, nil
}

// LookupClient resolves a profile by email or phone number, the two
// identifiers the receipt pipeline knows about.
func (s *UserService) LookupClient(ctx context.Context, email, telefono string) (domain.Client, error) {
	if email != "" {
		client, err := s.repo.FindClientByEmail(ctx, email)
		if err != nil {
			return domain.Client{}, fmt.Errorf("s.repo.FindClientByEmail -> %w", err)
		}

		return client, nil
	}

	client, err := s.repo.FindClientByTelefono(ctx, telefono)
	if err != nil {
		return domain.Client{}, fmt.Errorf("s.repo.FindClientByTelefono -> %w", err)
	}

	return client, nil
}

func (s *UserService) FindAllClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.FindAllClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllClients -> %w", err)
	}

	return clients, nil
}
