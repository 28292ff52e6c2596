package domain

import "time"

// Redemption is the immutable receipt of a completed exchange. Product
// name and cost are snapshotted at redemption time and survive later
// catalog edits. AttemptKey deduplicates retries of the same attempt
// after an ambiguous timeout.
type Redemption struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	CoinsSpent  int       `json:"coins_spent"`
	AttemptKey  string    `json:"-"`
	RedeemedAt  time.Time `json:"redeemed_at"`
}
