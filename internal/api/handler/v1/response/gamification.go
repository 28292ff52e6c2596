package response

import "github.com/gea-verde/gea-api/internal/pkg/greencoins"

// MyGamificationResponse is the caller's progression snapshot plus the
// full level table, so clients can render the whole ladder.
type MyGamificationResponse struct {
	GreenCoins   int                 `json:"green_coins"`
	Gamification greencoins.Snapshot `json:"gamification"`
	Levels       []greencoins.Level  `json:"levels"`
}
