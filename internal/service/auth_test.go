package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository"
)

type fakeAuthRepo struct {
	usersByEmail map[string]domain.User
	clients      []domain.Client
	nextID       uint
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{usersByEmail: make(map[string]domain.User), nextID: 1}
}

func (f *fakeAuthRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, exists := f.usersByEmail[user.Email]; exists {
		return domain.User{}, repository.ErrUserEmailExists
	}
	user.ID = f.nextID
	f.nextID++
	f.usersByEmail[user.Email] = user
	return user, nil
}

func (f *fakeAuthRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) CreateClient(_ context.Context, client domain.Client) (domain.Client, error) {
	client.ID = uint(len(f.clients) + 1)
	f.clients = append(f.clients, client)
	return client, nil
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, greencoins.DefaultTable())

	created, err := svc.Signup(ctx,
		domain.User{Email: "ana@example.com", Password: "secreto123", DisplayName: "Ana"},
		domain.Client{Nombre: "Ana", Apellido: "García"},
	)
	require.NoError(t, err)

	assert.False(t, created.IsAdmin)
	assert.Equal(t, domain.UserActive, created.Status)
	assert.Zero(t, created.GreenCoins)
	assert.Equal(t, 1, created.Gamification.Level)
	assert.Equal(t, "Explorador Ecológico", created.Gamification.Title)
	assert.Equal(t, 500, created.Gamification.NextLevelPoints)

	stored := repo.usersByEmail["ana@example.com"]
	assert.NotEqual(t, "secreto123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secreto123")))

	require.Len(t, repo.clients, 1)
	assert.Equal(t, created.ID, repo.clients[0].UserID)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, greencoins.DefaultTable())

	_, err := svc.Signup(ctx, domain.User{Email: "ana@example.com", Password: "secreto123"}, domain.Client{})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.User{Email: "ana@example.com", Password: "otra456"}, domain.Client{})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, greencoins.DefaultTable())

	_, err := svc.Signup(ctx, domain.User{Email: "ana@example.com", Password: "secreto123"}, domain.Client{})
	require.NoError(t, err)

	user, err := svc.Login(ctx, "ana@example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)

	_, err = svc.Login(ctx, "ana@example.com", "incorrecta")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nadie@example.com", "secreto123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_LoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, greencoins.DefaultTable())

	_, err := svc.Signup(ctx, domain.User{Email: "ana@example.com", Password: "secreto123"}, domain.Client{})
	require.NoError(t, err)

	user := repo.usersByEmail["ana@example.com"]
	user.Status = domain.UserInactive
	repo.usersByEmail["ana@example.com"] = user

	_, err = svc.Login(ctx, "ana@example.com", "secreto123")
	assert.ErrorIs(t, err, ErrUserInactive)
}
