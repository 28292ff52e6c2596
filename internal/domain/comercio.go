package domain

import "time"

// Comercio is a registered green business. IsSustainable is copied onto
// records created against the business, which is what makes a purchase
// earn coins.
type Comercio struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url,omitempty"`
	Tags          []string  `json:"tags"`
	Rubro         string    `json:"rubro"`
	Lat           float64   `json:"lat"`
	Lng           float64   `json:"lng"`
	IsSustainable bool      `json:"is_sustainable"`
	CUIT          string    `json:"cuit,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
