package domain

import (
	"time"

	"github.com/gea-verde/gea-api/internal/pkg/greencoins"
)

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

// User is the coin-holding identity. GreenCoins and Gamification are
// derived caches recomputed from the user's approved records; the record
// set is the source of truth. They are only written by the aggregation
// recompute, a redemption debit, or an admin override.
type User struct {
	ID           uint                `json:"id"`
	Email        string              `json:"email"`
	Password     string              `json:"-"`
	DisplayName  string              `json:"display_name"`
	PhotoURL     string              `json:"photo_url,omitempty"`
	IsAdmin      bool                `json:"is_admin"`
	Status       UserStatus          `json:"status"`
	GreenCoins   int                 `json:"green_coins"`
	Gamification greencoins.Snapshot `json:"gamification"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// Client is the personal profile linked 1:1 to a user, kept apart from
// the auth identity.
type Client struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	Telefono        string    `json:"telefono"`
	Direccion       string    `json:"direccion"`
	FechaNacimiento string    `json:"fecha_nacimiento,omitempty"`
	Documento       string    `json:"documento,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
