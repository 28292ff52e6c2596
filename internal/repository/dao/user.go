package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrClientNotFound  = errors.New("client not found")
)

// GamificationSnapshot is the cached level state stored inline on the
// users table. It is derived data, recomputed by the record handler.
type GamificationSnapshot struct {
	Level           int    `gorm:"not null;default:1"`
	Title           string `gorm:"not null;default:''"`
	Points          int    `gorm:"not null;default:0"`
	NextLevelPoints int    `gorm:"not null;default:0"`
}

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	DisplayName string
	PhotoURL    string
	IsAdmin     bool   `gorm:"not null;default:false"`
	Status      string `gorm:"not null;default:'active'"`

	GreenCoins   int                  `gorm:"not null;default:0"`
	Gamification GamificationSnapshot `gorm:"embedded;embeddedPrefix:gamification_"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Client struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	Nombre          string `gorm:"not null"`
	Apellido        string
	Telefono        string `gorm:"index"`
	Direccion       string
	FechaNacimiento string
	Documento       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// FindAllIDs returns every user ID, for the balance repair walk.
func (d *UserDAO) FindAllIDs(ctx context.Context) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).Model(&User{}).Order("id").Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// UpdateGamification persists the recomputed balance and snapshot. It is
// the only write path for the derived columns outside a redemption.
func (d *UserDAO) UpdateGamification(ctx context.Context, userID uint, greenCoins int, snapshot GamificationSnapshot) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Updates(map[string]any{
		"green_coins":                   greenCoins,
		"gamification_level":            snapshot.Level,
		"gamification_title":            snapshot.Title,
		"gamification_points":           snapshot.Points,
		"gamification_next_level_points": snapshot.NextLevelPoints,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdateStatus(ctx context.Context, userID uint, status string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) InsertClient(ctx context.Context, client Client) (Client, error) {
	result := d.db.WithContext(ctx).Create(&client)
	if result.Error != nil {
		return Client{}, result.Error
	}

	return client, nil
}

func (d *UserDAO) FindClientByUserID(ctx context.Context, userID uint) (Client, error) {
	var client Client

	result := d.db.WithContext(ctx).First(&client, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Client{}, ErrClientNotFound
		}

		return Client{}, result.Error
	}

	return client, nil
}

// FindClientBy looks a client up by one of the whitelisted contact
// fields. Used by the integration API.
func (d *UserDAO) FindClientBy(ctx context.Context, field, value string) (Client, error) {
	if field != "telefono" && field != "documento" {
		return Client{}, ErrClientNotFound
	}

	var client Client
	result := d.db.WithContext(ctx).First(&client, field+" = ?", value)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Client{}, ErrClientNotFound
		}

		return Client{}, result.Error
	}

	return client, nil
}

func (d *UserDAO) FindAllClients(ctx context.Context) ([]Client, error) {
	var clients []Client

	result := d.db.WithContext(ctx).Order("id").Find(&clients)
	if result.Error != nil {
		return nil, result.Error
	}

	return clients, nil
}
