package domain

import "time"

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product is a redeemable catalog item. Stock never goes below 0; it is
// only decremented inside the redemption transaction.
const validityLayout = "2006-01-02"

type Product struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Rubro         string        `json:"rubro"`
	CoinsRequired int           `json:"coins_required"`
	Stock         int           `json:"stock"`
	ImageURL      string        `json:"image_url,omitempty"`
	Status        ProductStatus `json:"status"`
	ValidFrom     string        `json:"valid_from,omitempty"`
	ValidTo       string        `json:"valid_to,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// RedeemableAt reports whether t falls inside the validity window.
// ValidTo is inclusive through the whole day; a blank bound does not
// constrain.
func (p Product) RedeemableAt(t time.Time) bool {
	if p.ValidFrom != "" {
		if from, err := time.Parse(validityLayout, p.ValidFrom); err == nil && t.Before(from) {
			return false
		}
	}
	if p.ValidTo != "" {
		if to, err := time.Parse(validityLayout, p.ValidTo); err == nil && !t.Before(to.AddDate(0, 0, 1)) {
			return false
		}
	}

	return true
}
