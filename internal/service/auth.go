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
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrWrongPassword   = errors.New("wrong password")
	ErrUserInactive    = errors.New("user is inactive")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	CreateClient(ctx context.Context, client domain.Client) (domain.Client, error)
}

type AuthService struct {
	repo  AuthUserRepository
	table greencoins.Table
}

func NewAuthService(repo AuthUserRepository, table greencoins.Table) *AuthService {
	return &AuthService{
		repo:  repo,
		table: table,
	}
}

// Signup registers a user at the base level with a zero balance. The
// balance only ever moves through record approvals and redemptions.
func (s *AuthService) Signup(ctx context.Context, user domain.User, client domain.Client) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}
	user.Password = string(hash)

	user.IsAdmin = false
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

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	if user.Status == domain.UserInactive {
		return domain.User{}, ErrUserInactive
	}

	return user, nil
}
