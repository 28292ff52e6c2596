package repository

import (
	"context"
	"fmt"

	"github.com/gea-verde/gea-api/internal/domain"
	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
	"github.com/gea-verde/gea-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound
	ErrClientNotFound  = dao.ErrClientNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	FindAllIDs(ctx context.Context) ([]uint, error)
	UpdateGamification(ctx context.Context, userID uint, greenCoins int, snapshot dao.GamificationSnapshot) error
	UpdateStatus(ctx context.Context, userID uint, status string) error
	InsertClient(ctx context.Context, client dao.Client) (dao.Client, error)
	FindClientByUserID(ctx context.Context, userID uint) (dao.Client, error)
	FindClientBy(ctx context.Context, field, value string) (dao.Client, error)
	FindAllClients(ctx context.Context) ([]dao.Client, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, u := range found {
		users[i] = r.daoToDomain(u)
	}

	return users, nil
}

func (r *UserRepository) FindAllIDs(ctx context.Context) ([]uint, error) {
	ids, err := r.dao.FindAllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllIDs -> %w", err)
	}

	return ids, nil
}

func (r *UserRepository) UpdateGamification(ctx context.Context, userID uint, greenCoins int, snapshot greencoins.Snapshot) error {
	err := r.dao.UpdateGamification(ctx, userID, greenCoins, dao.GamificationSnapshot{
		Level:           snapshot.Level,
		Title:           snapshot.Title,
		Points:          snapshot.Points,
		NextLevelPoints: snapshot.NextLevelPoints,
	})
	if err != nil {
		return fmt.Errorf("r.dao.UpdateGamification -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, userID uint, status domain.UserStatus) error {
	if err := r.dao.UpdateStatus(ctx, userID, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *UserRepository) CreateClient(ctx context.Context, client domain.Client) (domain.Client, error) {
	created, err := r.dao.InsertClient(ctx, r.clientDomainToDao(client))
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.InsertClient -> %w", err)
	}

	return r.clientDaoToDomain(created), nil
}

func (r *UserRepository) FindClientByUserID(ctx context.Context, userID uint) (domain.Client, error) {
	found, err := r.dao.FindClientByUserID(ctx, userID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.FindClientByUserID -> %w", err)
	}

	return r.clientDaoToDomain(found), nil
}

// FindClientByEmail resolves the user by email first because the email
// lives on the users table, not the client profile.
func (r *UserRepository) FindClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	user, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	found, err := r.dao.FindClientByUserID(ctx, user.ID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.FindClientByUserID -> %w", err)
	}

	return r.clientDaoToDomain(found), nil
}

func (r *UserRepository) FindClientByTelefono(ctx context.Context, telefono string) (domain.Client, error) {
	found, err := r.dao.FindClientBy(ctx, "telefono", telefono)
	if err != nil {
		return domain.Client{}, fmt.Errorf("r.dao.FindClientBy -> %w", err)
	}

	return r.clientDaoToDomain(found), nil
}

func (r *UserRepository) FindAllClients(ctx context.Context) ([]domain.Client, error) {
	found, err := r.dao.FindAllClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllClients -> %w", err)
	}

	clients := make([]domain.Client, len(found))
	for i, c := range found {
		clients[i] = r.clientDaoToDomain(c)
	}

	return clients, nil
}

func (r *UserRepository) domainToDao(u domain.User) dao.User {
	return dao.User{
		ID:          u.ID,
		Email:       u.Email,
		Password:    u.Password,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		IsAdmin:     u.IsAdmin,
		Status:      string(u.Status),
		GreenCoins:  u.GreenCoins,
		Gamification: dao.GamificationSnapshot{
			Level:           u.Gamification.Level,
			Title:           u.Gamification.Title,
			Points:          u.Gamification.Points,
			NextLevelPoints: u.Gamification.NextLevelPoints,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:          u.ID,
		Email:       u.Email,
		Password:    u.Password,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		IsAdmin:     u.IsAdmin,
		Status:      domain.UserStatus(u.Status),
		GreenCoins:  u.GreenCoins,
		Gamification: greencoins.Snapshot{
			Level:           u.Gamification.Level,
			Title:           u.Gamification.Title,
			Points:          u.Gamification.Points,
			NextLevelPoints: u.Gamification.NextLevelPoints,
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) clientDomainToDao(c domain.Client) dao.Client {
	return dao.Client{
		ID:              c.ID,
		UserID:          c.UserID,
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		FechaNacimiento: c.FechaNacimiento,
		Documento:       c.Documento,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (r *UserRepository) clientDaoToDomain(c dao.Client) domain.Client {
	return domain.Client{
		ID:              c.ID,
		UserID:          c.UserID,
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		Telefono:        c.Telefono,
		Direccion:       c.Direccion,
		FechaNacimiento: c.FechaNacimiento,
		Documento:       c.Documento,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
